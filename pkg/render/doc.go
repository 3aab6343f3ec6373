// Package render draws projects as standalone SVG documents.
//
// # Overview
//
// Three views are available:
//
//   - [Chips]: tag or tech labels drawn as rounded pills, wrapped onto as
//     many lines as the width allows
//   - [Card]: a project summary with a status badge, the date range, tech
//     chips and every active section in canonical order
//   - [Timeline]: projects grouped by start year along a vertical connector,
//     each marked with a status-coloured dot
//
// Chip and word wrapping both go through [flow.Pack]. Text is measured in
// terminal cells with go-runewidth so that wide CJK runes and emoji get
// twice the room of Latin letters.
//
//	svg := render.Card(p, time.Now(), render.WithWidth(480))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the project to tech relationship as a
// Graphviz diagram.
//
// [flow.Pack]: github.com/milestone-dev/milestone/pkg/flow.Pack
// [nodelink]: github.com/milestone-dev/milestone/pkg/render/nodelink
package render
