package dot

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Node {
	return []Node{
		{ID: 0, Label: "program", Children: []int{1}},
		{ID: 1, Label: `text<">`, Children: []int{2, 2}},
		{ID: 2, Label: "END", Shape: ShapeTerminal},
	}
}

func TestWrite(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Write(&b, sample(), Options{}))

	want := `digraph G {
    rankdir=TB;
    n0 [label="program", shape=ellipse];
    n0 -> n1;
    n1 [label="text<\">", shape=ellipse];
    n1 -> n2;
    n2 [label="END", shape=doublecircle];
}
`
	assert.Equal(t, want, b.String())
}

func TestWriteOptions(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, Write(&b, sample(), Options{Title: "expr\ngrammar", RankDir: RankLR}))

	out := b.String()
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `label="expr\ngrammar";`)
	assert.Contains(t, out, `labelloc="t";`)
}

func TestAddChild(t *testing.T) {
	var n Node
	n.AddChild(3)
	n.AddChild(1)
	n.AddChild(3)
	assert.Equal(t, []int{3, 1}, n.Children)
}

func TestRender(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("graphviz not installed")
	}
	var src bytes.Buffer
	require.NoError(t, Write(&src, sample(), Options{}))

	var out bytes.Buffer
	require.NoError(t, Render(context.Background(), src.Bytes(), "svg", &out))
	assert.True(t, strings.Contains(out.String(), "<svg"))
}

func TestRenderBadFormat(t *testing.T) {
	if _, err := exec.LookPath("dot"); err != nil {
		t.Skip("graphviz not installed")
	}
	err := Render(context.Background(), []byte("digraph G {}"), "no-such-format", &bytes.Buffer{})
	assert.Error(t, err)
}
