package flow

// Size is the intrinsic size of one item, measured by the caller.
type Size struct {
	W, H float64
}

// Placement is the position assigned to one item, relative to the packing
// origin, together with the item's size.
type Placement struct {
	X, Y float64
	W, H float64
	Line int
}

// Right returns the x coordinate of the item's right edge.
func (p Placement) Right() float64 { return p.X + p.W }

// Bottom returns the y coordinate of the item's bottom edge.
func (p Placement) Bottom() float64 { return p.Y + p.H }

// CenterX returns the horizontal center point of the item.
func (p Placement) CenterX() float64 { return p.X + p.W/2 }

// CenterY returns the vertical center point of the item.
func (p Placement) CenterY() float64 { return p.Y + p.H/2 }

// Result is the outcome of packing a sequence of items.
type Result struct {
	// Placements holds one entry per input item, in input order.
	Placements []Placement

	// Width is the caller-supplied maximum width.
	Width float64

	// Height is the sum of line heights plus the spacing between lines.
	Height float64

	// Lines is the number of lines used; zero for an empty input.
	Lines int
}

// Pack lays items out left to right, wrapping to a new line when an item
// would cross maxWidth. Spacing separates adjacent items on a line and
// adjacent lines. Negative spacing is treated as zero.
func Pack(maxWidth, spacing float64, items []Size) Result {
	if spacing < 0 {
		spacing = 0
	}

	res := Result{
		Placements: make([]Placement, 0, len(items)),
		Width:      maxWidth,
	}
	if len(items) == 0 {
		return res
	}

	var x, y, lineHeight float64
	line := 0
	for _, it := range items {
		if x > 0 && x+it.W > maxWidth {
			x = 0
			y += lineHeight + spacing
			lineHeight = 0
			line++
		}

		res.Placements = append(res.Placements, Placement{X: x, Y: y, W: it.W, H: it.H, Line: line})
		lineHeight = max(lineHeight, it.H)
		x += it.W + spacing
	}

	res.Height = y + lineHeight
	res.Lines = line + 1
	return res
}

// LineHeights returns the height of each line in res, indexed by line.
func LineHeights(res Result) []float64 {
	heights := make([]float64, res.Lines)
	for _, p := range res.Placements {
		heights[p.Line] = max(heights[p.Line], p.H)
	}
	return heights
}
