// Package dot writes generic labeled graphs in Graphviz format.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	RankLR = "LR" // left to right
	RankTB = "TB" // top to bottom

	ShapeTerminal = "doublecircle"
)

// Node is a read-only snapshot of one graph node. Children holds node ids.
type Node struct {
	ID       int
	Label    string
	Shape    string
	Children []int
}

// AddChild appends id unless it is already a child.
func (n *Node) AddChild(id int) {
	for _, c := range n.Children {
		if c == id {
			return
		}
	}
	n.Children = append(n.Children, id)
}

type Options struct {
	Title   string
	RankDir string
}

// Write prints the Graphviz representation of nodes to w. Edges are written
// once per (from, to) pair.
func Write(w io.Writer, nodes []Node, opts Options) error {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = RankTB
	}

	var b bytes.Buffer
	fmt.Fprintln(&b, "digraph G {")
	fmt.Fprintf(&b, "    rankdir=%s;\n", rankdir)
	if opts.Title != "" {
		fmt.Fprintf(&b, "    labelloc=\"t\";\n    label=%s;\n", quote(opts.Title))
	}

	seen := map[[2]int]bool{}
	for _, n := range nodes {
		shape := n.Shape
		if shape == "" {
			shape = "ellipse"
		}
		fmt.Fprintf(&b, "    n%d [label=%s, shape=%s];\n", n.ID, quote(n.Label), shape)
		for _, c := range n.Children {
			edge := [2]int{n.ID, c}
			if seen[edge] {
				continue
			}
			seen[edge] = true
			fmt.Fprintf(&b, "    n%d -> n%d;\n", n.ID, c)
		}
	}
	fmt.Fprintln(&b, "}")

	_, err := w.Write(b.Bytes())
	return err
}

// quote returns s as a Graphviz double-quoted string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// Render pipes Graphviz source through `dot -T<format>` into out.
func Render(ctx context.Context, src []byte, format string, out io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "dot", "-T"+format)
	cmd.Stdin = bytes.NewReader(src)
	cmd.Stdout = out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("dot -T%s: %w: %s", format, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
