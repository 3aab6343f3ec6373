package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the status and date range to project labels.
	// When false, only the title is shown.
	Detailed bool
}

// ToDOT converts projects and their tech stacks to Graphviz DOT format.
// Blank tech entries are skipped and repeated entries produce one edge.
func ToDOT(projects []*project.Project, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	techs := map[string]string{}
	type edge struct{ from, to string }
	var edges []edge
	for _, p := range projects {
		id := projectNode(p)
		attrs := []string{
			fmt.Sprintf("label=%q", fmtLabel(p, opts.Detailed)),
			fmt.Sprintf("fillcolor=%q", render.StatusColor(p.Status)),
			"fontcolor=white",
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

		seen := map[string]bool{}
		for _, t := range p.TechStack {
			if project.IsBlank(t) {
				continue
			}
			key := techNode(t)
			if _, ok := techs[key]; !ok {
				techs[key] = strings.TrimSpace(t)
			}
			if !seen[key] {
				seen[key] = true
				edges = append(edges, edge{id, key})
			}
		}
	}

	for _, key := range slices.Sorted(maps.Keys(techs)) {
		fmt.Fprintf(&buf, "  %q [label=%q, style=\"filled\", fillcolor=\"#f3f4f6\"];\n", key, techs[key])
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.from, e.to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func projectNode(p *project.Project) string { return "project:" + p.ID.String() }

func techNode(t string) string { return "tech:" + strings.ToLower(strings.TrimSpace(t)) }

func fmtLabel(p *project.Project, detailed bool) string {
	if !detailed {
		return p.Title
	}
	return p.Title + "\n" + p.Status.Label() + "\n" + p.DateRangeText()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
