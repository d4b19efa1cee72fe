package modules

// OpKind classifies call-like instructions in a module image.
type OpKind int

const (
	// OpCall is a direct method call.
	OpCall OpKind = iota
	// OpCallVirt is a virtual (dynamically dispatched) call.
	OpCallVirt
	// OpNewObj is an object-construction call.
	OpNewObj
	// OpOther is any instruction the scanner does not inspect.
	OpOther
)

// Instruction is one decoded instruction in a method body. Only call-like
// instructions carry a Target; for anything else Target is empty and the
// instruction is skipped during scanning.
type Instruction struct {
	Op     OpKind
	Target string // fully qualified call target, empty if unresolvable
}

// IsCallLike reports whether the instruction is a call the scanner inspects.
func (in Instruction) IsCallLike() bool {
	switch in.Op {
	case OpCall, OpCallVirt, OpNewObj:
		return true
	default:
		return false
	}
}

// Method is one method body declared directly on a type.
type Method struct {
	Name string
	// Body is nil when the method body could not be read; the scanner
	// treats that as "no violation found for this unit".
	Body []Instruction
}

// Type is one type defined in a module. Methods holds only methods declared
// directly on the type; inherited methods belong to their defining module
// and are analyzed there.
type Type struct {
	Name    string
	Methods []Method
}

// Image is the parsed instruction stream of a compiled module. It is built
// by an infrastructure loader and consumed read-only by the scanner.
type Image struct {
	Types []Type
}

// Snapshot is the transient per-scan view of one candidate module. It is
// rebuilt every run from the currently loaded binary and never persisted.
type Snapshot struct {
	Identity Identity
	Content  []byte
	Image    *Image // nil when the binary could not be parsed
}
