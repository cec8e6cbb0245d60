package nfa

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"bnfplay/internal/dot"
)

func TestExportBreadthFirst(t *testing.T) {
	got := MustCompile("<r> ::= [0-9]*").Export()
	want := []dot.Node{
		{ID: 0, Label: "program", Children: []int{1}},
		{ID: 1, Label: "r", Children: []int{2, 3}},
		{ID: 2, Label: "ε-0", Children: []int{4}},
		{ID: 3, Label: "ε-1", Children: []int{2, 5}},
		{ID: 4, Label: "range<0-9>", Children: []int{3}},
		{ID: 5, Label: "ε-2", Children: []int{6}},
		{ID: 6, Label: "END", Shape: dot.ShapeTerminal},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportDeduplicatesChildren(t *testing.T) {
	// Both declarations hang off the same rule state, so the root links to it
	// twice.
	nodes := MustCompile("<r> ::= \"a\"\n<r> ::= \"b\"\n").Export()
	assert.Equal(t, []int{1}, nodes[0].Children)
}

func TestExportBackReferenceIsLeafEdge(t *testing.T) {
	sub, err := MustCompile(varListGrammar).SubProgram("var_list")
	assert.NoError(t, err)

	nodes := sub.Export()
	assert.Equal(t, "var_list", nodes[0].Label)
	for _, n := range nodes {
		// The shared var_name body is not reachable through transitions from
		// var_list, only through back-references.
		assert.NotEqual(t, "range<a-z>", n.Label)
	}
}
