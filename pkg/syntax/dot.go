package syntax

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of t.
//
// Constituents are drawn as ellipses labelled with their label, tokens as
// rounded boxes labelled with their text. Children are laid out left to right
// in tree order.
func ToDOT(t *Tree) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Tree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if t != nil {
		writeDOTNode(&buf, t, 0)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *Tree, id int) int {
	nodeID := fmt.Sprintf("n%d", id)
	next := id + 1

	if n.token {
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", nodeID, n.Text)
		return next
	}

	fmt.Fprintf(buf, "  %s [label=%q, shape=ellipse];\n", nodeID, n.Label)
	for _, c := range n.children {
		fmt.Fprintf(buf, "  %s -> n%d;\n", nodeID, next)
		next = writeDOTNode(buf, c, next)
	}
	return next
}

// RenderSVG renders t as an SVG document using Graphviz.
//
// Errors are returned if Graphviz cannot initialize, the generated DOT cannot
// be parsed, or rendering fails.
func RenderSVG(ctx context.Context, t *Tree) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(ToDOT(t)))
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
