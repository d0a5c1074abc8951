package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"
)

var statusColors = map[Status]string{
	StatusUsed:         "palegreen",
	StatusUnneeded:     "lightsalmon",
	StatusShouldBeTest: "khaki",
	StatusUnneededTest: "lightpink",
	StatusIgnored:      "lightgrey",
}

// ToDOT converts the report to a Graphviz reconciliation graph. Declared
// requirements point at the used names they satisfy; missing names stand
// alone with a dashed red outline.
func ToDOT(r *Report) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", r.Package)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	var used []string
	for _, req := range r.Requirements {
		label := req.Name
		if req.Extra != "" {
			label += "\n[" + req.Extra + "]"
		}
		fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=%s];\n", nodeID("req", req.Name), label, statusColors[req.Status])
		used = append(used, req.Satisfies...)
	}

	slices.Sort(used)
	for _, name := range slices.Compact(used) {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse];\n", nodeID("use", name), name)
	}

	for _, kind := range []Kind{KindMissing, KindMissingTest} {
		for _, e := range r.Section(kind).Entries {
			label := e.Name
			if kind == KindMissingTest {
				label += "\n(test)"
			}
			fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, style=\"filled,dashed\", color=red];\n", nodeID(string(kind), e.Name), label)
		}
	}

	buf.WriteString("\n")
	for _, req := range r.Requirements {
		for _, name := range req.Satisfies {
			fmt.Fprintf(&buf, "  %q -> %q;\n", nodeID("req", req.Name), nodeID("use", name))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(kind, name string) string {
	return kind + ":" + strings.ToLower(name)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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

// WriteDOT writes the reconciliation graph as DOT source.
func WriteDOT(w io.Writer, r *Report) error {
	_, err := io.WriteString(w, ToDOT(r))
	return err
}

// WriteSVG writes the rendered reconciliation graph.
func WriteSVG(ctx context.Context, w io.Writer, r *Report) error {
	svg, err := RenderSVG(ctx, ToDOT(r))
	if err != nil {
		return err
	}
	_, err = w.Write(svg)
	return err
}
