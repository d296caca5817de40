package dtsdoc

import (
	"context"

	"github.com/nieomylnieja/dtsdoc/internal/partition"
)

// SymbolGroup describes the declarations documented under one top-level name.
type SymbolGroup struct {
	Name string `json:"name"`
	// Kinds holds the kind of every declaration in the group, in declaration order.
	Kinds []string `json:"kinds"`
	// Origins holds the short path of the module declaring each member of Kinds.
	Origins []string `json:"origins"`
}

// Symbols extracts the symbol groups of text without rendering them.
func Symbols(ctx context.Context, text string, opts ...GenerateOption) ([]SymbolGroup, error) {
	options := newGenerateOptions(opts)
	nodes, main, err := extractNodes(ctx, text, options)
	if err != nil {
		return nil, err
	}
	groups := partition.ByName(nodes, main)
	result := make([]SymbolGroup, 0, groups.Len())
	for name, members := range groups.All() {
		group := SymbolGroup{Name: name}
		for _, n := range members {
			group.Kinds = append(group.Kinds, string(n.Kind()))
			group.Origins = append(group.Origins, n.Origin.Path)
		}
		result = append(result, group)
	}
	return result, nil
}
