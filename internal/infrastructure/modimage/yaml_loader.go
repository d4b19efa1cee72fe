// Package modimage builds domain module images from on-disk module
// representations: YAML module-image documents exported by a host, and
// compiled WASM plugins.
package modimage

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/ragzilla/GetOffMyNetwork/internal/domain/modules"
)

// imageDocument is the YAML shape of an exported module image.
type imageDocument struct {
	Types []struct {
		Name    string `yaml:"name"`
		Methods []struct {
			Name         string `yaml:"name"`
			Instructions []struct {
				Op     string `yaml:"op"`
				Target string `yaml:"target"`
			} `yaml:"instructions"`
		} `yaml:"methods"`
	} `yaml:"types"`
}

// ParseImageDocument decodes a YAML module-image document into a domain
// image. Unknown op names decode to OpOther, so documents from newer host
// exporters still load.
func ParseImageDocument(data []byte) (*modules.Image, error) {
	var doc imageDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing module image document: %w", err)
	}

	image := &modules.Image{}
	for _, t := range doc.Types {
		typ := modules.Type{Name: t.Name}
		for _, m := range t.Methods {
			method := modules.Method{Name: m.Name, Body: []modules.Instruction{}}
			for _, in := range m.Instructions {
				method.Body = append(method.Body, modules.Instruction{
					Op:     parseOp(in.Op),
					Target: in.Target,
				})
			}
			typ.Methods = append(typ.Methods, method)
		}
		image.Types = append(image.Types, typ)
	}
	return image, nil
}

func parseOp(op string) modules.OpKind {
	switch op {
	case "call":
		return modules.OpCall
	case "callvirt":
		return modules.OpCallVirt
	case "newobj":
		return modules.OpNewObj
	default:
		return modules.OpOther
	}
}
