package tools

import (
	"github.com/greyflux/greymcp/pkg/adapters/codesearch"
	"github.com/greyflux/greymcp/pkg/tool"
)

// RegisterAll registers the four tool definitions on reg, in the fixed
// order discovery clients see them.
func RegisterAll(reg *tool.Registry, search codesearch.Client) error {
	defs := []tool.Definition{
		Search(search),
		Transpile(),
		Validate(),
		Generate(),
	}
	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}
