// Package partition groups extracted symbols for navigation.
//
// Groups keep the extraction order of their nodes. A node is never dropped
// for sharing its key with another one: overloads and declaration merging
// are intentional groups.
package partition

import (
	"iter"
	"slices"

	"github.com/nieomylnieja/dtsdoc/internal/extract"
)

// Partition is an insertion ordered mapping from a key to nodes sharing it.
type Partition[K comparable] struct {
	keys   []K
	groups map[K][]extract.NodeWithOrigin
}

func newPartition[K comparable]() *Partition[K] {
	return &Partition[K]{groups: make(map[K][]extract.NodeWithOrigin)}
}

func (p *Partition[K]) add(key K, node extract.NodeWithOrigin) {
	if _, ok := p.groups[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.groups[key] = append(p.groups[key], node)
}

// Keys returns the keys in the order groups were created.
func (p *Partition[K]) Keys() []K {
	return slices.Clone(p.keys)
}

// Get returns the group of key, nil if there is none.
func (p *Partition[K]) Get(key K) []extract.NodeWithOrigin {
	return p.groups[key]
}

func (p *Partition[K]) Len() int {
	return len(p.keys)
}

// All iterates over the groups in key order.
func (p *Partition[K]) All() iter.Seq2[K, []extract.NodeWithOrigin] {
	return func(yield func(K, []extract.NodeWithOrigin) bool) {
		for _, key := range p.keys {
			if !yield(key, p.groups[key]) {
				return
			}
		}
	}
}

// ByKind groups nodes by kind. Groups are ordered by [extract.Kinds] rather
// than by appearance, so the index lists sections in a fixed order.
// Every input node lands in exactly one group.
func ByKind(nodes []extract.NodeWithOrigin) *Partition[extract.Kind] {
	p := newPartition[extract.Kind]()
	for _, node := range nodes {
		p.add(node.Kind(), node)
	}
	slices.SortStableFunc(p.keys, func(a, b extract.Kind) int {
		return kindRank(a) - kindRank(b)
	})
	return p
}

func kindRank(k extract.Kind) int {
	if i := slices.Index(extract.Kinds, k); i >= 0 {
		return i
	}
	return len(extract.Kinds)
}

// ByName groups the top-level symbols by their exported name in order of
// first appearance. Module documentation is not a symbol and is skipped.
// Nodes without an origin are attributed to shortPath.
func ByName(nodes []extract.NodeWithOrigin, shortPath extract.ShortPath) *Partition[string] {
	p := newPartition[string]()
	for _, node := range nodes {
		if node.Kind() == extract.KindModuleDoc {
			continue
		}
		if node.Origin.Path == "" {
			node.Origin = shortPath
		}
		p.add(node.Name, node)
	}
	return p
}
