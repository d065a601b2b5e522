package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wiregraph/pkg/wire"
)

// Options configures DOT generation.
type Options struct {
	// Scale converts world units to points. Zero means 1.
	Scale float64
	// ShowIDs labels free vertices with their IDs.
	ShowIDs bool
}

var palette = []string{
	"#1f77b4", "#d62728", "#2ca02c", "#9467bd",
	"#ff7f0e", "#17becf", "#8c564b", "#e377c2",
}

// ToDOT converts a graph to an undirected Graphviz graph with pinned node
// positions. The y axis is flipped so the schematic's downward y renders
// downward.
func ToDOT(g wire.View, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	colors := make(map[wire.ClusterID]string)
	color := func(c wire.ClusterID) string {
		if col, ok := colors[c]; ok {
			return col
		}
		col := palette[len(colors)%len(palette)]
		colors[c] = col
		return col
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=point, width=0.06, label=\"\", fontsize=10];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := []string{fmt.Sprintf("pos=\"%s,%s!\"", num(v.Point.X*scale), num(-v.Point.Y*scale))}
		attrs = append(attrs, vertexAttrs(v, opts)...)
		if v.Label != "" {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", v.Label))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", v.ID.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		start, _ := g.Vertex(e.Start)
		attrs := []string{fmt.Sprintf("color=%q", color(start.Cluster))}
		if e.Meta.Width > 0 {
			attrs = append(attrs, fmt.Sprintf("penwidth=%s", num(max(1, e.Meta.Width*scale))))
		}
		if e.Meta.Layer != "" {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", e.Meta.Layer))
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Start.String(), e.End.String(), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func vertexAttrs(v wire.Vertex, opts Options) []string {
	switch {
	case v.IsPin():
		return []string{"shape=box", "width=0", "height=0", "margin=\"0.04,0.02\"", fmt.Sprintf("label=%q", v.Pin.String())}
	case v.Degree >= 3:
		return []string{"width=0.12", "color=black"}
	case opts.ShowIDs:
		return []string{fmt.Sprintf("xlabel=%q", v.ID.String())}
	}
	return nil
}

func num(f float64) string {
	if f == 0 {
		f = 0 // no "-0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG lays out DOT source with neato, honouring pinned positions, and
// returns the SVG bytes.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in plain user units so the SVG scales when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
