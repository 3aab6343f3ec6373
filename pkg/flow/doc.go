// Package flow packs fixed-size items into wrapped lines.
//
// # Overview
//
// The packer implements the "chip wrap" layout used for tag and tech-stack
// badges: items are placed left to right and a new line is started whenever
// the next item would cross the maximum line width. It is a single greedy
// pass that never reorders items, so the output is stable with respect to
// input order.
//
// # Algorithm
//
// Starting from x = 0, y = 0 and a line height of 0, each item is handled in
// turn:
//
//  1. If the item is not the first on its line (x > 0) and x + width would
//     exceed the maximum width, the line wraps: x returns to 0 and y advances
//     by the line height plus spacing.
//  2. The item is placed at (x, y).
//  3. The line height grows to the item height if needed and x advances by
//     the item width plus spacing.
//
// The packed block is maxWidth wide and y + lineHeight tall.
//
// # Edge Cases
//
// An item wider than the maximum width is placed alone at x = 0 and allowed
// to overflow; the x > 0 guard keeps it from wrapping against itself. An
// empty input has zero height. A maximum width of zero or less degenerates to
// one item per line.
//
// # Usage
//
//	res := flow.Pack(320, 8, []flow.Size{{W: 64, H: 24}, {W: 80, H: 24}})
//	for i, p := range res.Placements {
//	    fmt.Printf("item %d at (%.0f, %.0f)\n", i, p.X, p.Y)
//	}
//
// Pack keeps no state between calls; it is safe to call on every resize.
package flow
