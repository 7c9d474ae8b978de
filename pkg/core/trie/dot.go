package trie

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the trie.
//
// Internal nodes are drawn as small circles, stored paths end in a
// double-circled leaf, and each edge is labeled with its value. Only intended
// for small tries: every node and leaf becomes a DOT statement.
//
// Example:
//
//	t, _ := trie.New(5, 3)
//	t.Insert([]int{1, 2, 4})
//	t.Insert([]int{1, 3, 5})
//	dot := t.ToDOT()
func (t *Trie) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph Trie {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=12, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none, fontname=\"SF Mono, Menlo, monospace\", fontsize=11];\n\n")
	buf.WriteString("  n0 [label=\"root\", shape=box, style=\"filled,rounded\"];\n")

	t.writeDOTNode(&buf, rootID, 0, 1)

	buf.WriteString("}\n")
	return buf.String()
}

func (t *Trie) writeDOTNode(buf *bytes.Buffer, node NodeID, id, next int) int {
	t.store.Each(node, func(v int, child NodeID) bool {
		childID := next
		next++
		if child == leafID {
			fmt.Fprintf(buf, "  n%d [label=\"\", shape=doublecircle, width=0.15, fillcolor=\"#cde\"];\n", childID)
		} else {
			fmt.Fprintf(buf, "  n%d [label=\"\", shape=circle, width=0.15];\n", childID)
		}
		fmt.Fprintf(buf, "  n%d -> n%d [label=\"%d\"];\n", id, childID, v)
		if child != leafID {
			next = t.writeDOTNode(buf, child, childID, next)
		}
		return true
	})
	return next
}

// RenderSVG renders the trie as an SVG image using Graphviz.
//
// All errors are wrapped with context using fmt.Errorf with %w.
func (t *Trie) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := t.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
