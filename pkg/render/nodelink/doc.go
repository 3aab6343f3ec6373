// Package nodelink renders the project to tech relationship as a node-link
// diagram.
//
// # Overview
//
// Every project becomes a rounded box filled with its status colour, every
// distinct tech stack entry becomes a plain box, and an edge runs from each
// project to each technology it lists. Technologies are matched without
// regard to case, so "Go" and "go" share one node.
//
// # Usage
//
//	dot := nodelink.ToDOT(projects, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: project labels also carry the status and date range
//
// # DOT Format
//
// [ToDOT] produces Graphviz DOT source that can be rendered here with
// [RenderSVG] (go-graphviz, no external binary needed) or piped to the dot
// command line tool.
//
// [RenderSVG] rewrites the root svg element so the document scales with
// its viewBox instead of Graphviz's point-based width and height.
package nodelink
