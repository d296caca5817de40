package partition

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nieomylnieja/dtsdoc/internal/extract"
)

func TestByKind(t *testing.T) {
	nodes := []extract.NodeWithOrigin{
		node("greet", extract.KindFunction),
		node("Box", extract.KindInterface),
		node("", extract.KindModuleDoc),
		node("Box", extract.KindFunction),
		node("Deno", extract.KindNamespace),
	}

	p := ByKind(nodes)

	assert.Equal(t, []extract.Kind{
		extract.KindModuleDoc,
		extract.KindNamespace,
		extract.KindFunction,
		extract.KindInterface,
	}, p.Keys())
	assert.Equal(t, []string{"greet", "Box"}, names(p.Get(extract.KindFunction)))

	t.Run("total disjoint cover", func(t *testing.T) {
		var covered []extract.NodeWithOrigin
		for _, group := range p.All() {
			covered = append(covered, group...)
		}
		assert.ElementsMatch(t, nodes, covered)
	})
}

func TestByName(t *testing.T) {
	main := extract.ShortPath{Path: "deno_types", Specifier: "asset://deno_types", IsMain: true}
	other := extract.ShortPath{Path: "lib/other", Specifier: "asset://lib/other.d.ts"}
	nodes := []extract.NodeWithOrigin{
		node("", extract.KindModuleDoc),
		node("Box", extract.KindInterface),
		node("print", extract.KindFunction),
		node("Box", extract.KindFunction),
		node("print", extract.KindFunction),
		{Name: "Other", Origin: other, Node: &extract.DocNode{Kind: extract.KindClass, Name: "Other"}},
	}

	p := ByName(nodes, main)

	require.Equal(t, []string{"Box", "print", "Other"}, p.Keys())
	box := p.Get("Box")
	require.Len(t, box, 2)
	assert.Equal(t, extract.KindInterface, box[0].Kind())
	assert.Equal(t, extract.KindFunction, box[1].Kind())
	assert.Equal(t, main, box[0].Origin)
	assert.Equal(t, other, p.Get("Other")[0].Origin)
	assert.Len(t, p.Get("print"), 2)
	assert.Nil(t, p.Get("missing"))
}

func TestByName_GroupingIgnoresOrder(t *testing.T) {
	nodes := []extract.NodeWithOrigin{
		node("a", extract.KindFunction),
		node("b", extract.KindClass),
		node("c", extract.KindVariable),
		node("d", extract.KindEnum),
		node("e", extract.KindTypeAlias),
	}
	expected := groupSizes(ByName(nodes, extract.ShortPath{}))

	rng := rand.New(rand.NewPCG(1, 2))
	for range 10 {
		shuffled := append([]extract.NodeWithOrigin(nil), nodes...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		assert.Equal(t, expected, groupSizes(ByName(shuffled, extract.ShortPath{})))
	}
}

func node(name string, kind extract.Kind) extract.NodeWithOrigin {
	return extract.NodeWithOrigin{
		Name:   name,
		Origin: extract.ShortPath{},
		Node:   &extract.DocNode{Kind: kind, Name: name},
	}
}

func names(nodes []extract.NodeWithOrigin) []string {
	result := make([]string, 0, len(nodes))
	for _, n := range nodes {
		result = append(result, n.Name)
	}
	return result
}

func groupSizes(p *Partition[string]) map[string]int {
	sizes := make(map[string]int, p.Len())
	for name, group := range p.All() {
		sizes[name] = len(group)
	}
	return sizes
}
