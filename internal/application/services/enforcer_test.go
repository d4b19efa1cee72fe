package services

import (
	"testing"

	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
	"github.com/stretchr/testify/assert"
)

func TestEnforce_SuspendsUnpermittedViolators(t *testing.T) {
	host := newFakeHost()
	comps := host.add("mod://plugins/A", 3)
	enforcer := NewEnforcer(host)

	sets := NewWorkingSets()
	sets.Violators["mod://plugins/A"] = modules.MustNewIdentity("mod://plugins/A")
	sets.Permitted["mod://plugins/A"] = false

	suspended := enforcer.Enforce(sets)

	assert.Equal(t, 3, suspended)
	for _, c := range comps {
		assert.True(t, c.isSuspended)
		assert.True(t, c.tornDown, "teardown hook must run on suspension")
	}
}

func TestEnforce_LeavesPermittedViolatorsAlone(t *testing.T) {
	host := newFakeHost()
	comps := host.add("mod://plugins/A", 2)
	enforcer := NewEnforcer(host)

	sets := NewWorkingSets()
	sets.Violators["mod://plugins/A"] = modules.MustNewIdentity("mod://plugins/A")
	sets.Permitted["mod://plugins/A"] = true

	assert.Equal(t, 0, enforcer.Enforce(sets))
	for _, c := range comps {
		assert.False(t, c.isSuspended)
	}
}

func TestEnforce_Idempotent(t *testing.T) {
	host := newFakeHost()
	comps := host.add("mod://plugins/A", 2)
	enforcer := NewEnforcer(host)

	sets := NewWorkingSets()
	sets.Violators["mod://plugins/A"] = modules.MustNewIdentity("mod://plugins/A")

	enforcer.Enforce(sets)
	enforcer.Enforce(sets)

	for _, c := range comps {
		assert.True(t, c.isSuspended)
		assert.Equal(t, 1, c.suspended, "re-suspension must be a no-op")
	}
}

func TestEnforce_IgnoresNonViolators(t *testing.T) {
	host := newFakeHost()
	comps := host.add("mod://plugins/clean", 1)
	enforcer := NewEnforcer(host)

	assert.Equal(t, 0, enforcer.Enforce(NewWorkingSets()))
	assert.False(t, comps[0].isSuspended)
}
