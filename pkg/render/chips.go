package render

import (
	"bytes"
	"fmt"

	"github.com/milestone-dev/milestone/pkg/flow"
	"github.com/milestone-dev/milestone/pkg/project"
)

// Chip is one laid-out label.
type Chip struct {
	Label string
	flow.Placement
}

// ChipSize returns the pill size for label at fontSize.
func ChipSize(label string, fontSize float64) flow.Size {
	padX := fontSize * 2 / 3
	return flow.Size{
		W: TextWidth(label, fontSize) + 2*padX,
		H: fontSize * 5 / 3,
	}
}

// LayoutChips packs labels into lines no wider than maxWidth. Blank labels
// are skipped. Labels wider than maxWidth are truncated to fit.
func LayoutChips(labels []string, maxWidth, spacing, fontSize float64) ([]Chip, float64) {
	var (
		kept  []string
		sizes []flow.Size
	)
	padX := fontSize * 2 / 3
	for _, l := range labels {
		if project.IsBlank(l) {
			continue
		}
		if maxWidth > 2*padX {
			l = Truncate(l, maxWidth-2*padX, fontSize)
		}
		kept = append(kept, l)
		sizes = append(sizes, ChipSize(l, fontSize))
	}

	res := flow.Pack(maxWidth, spacing, sizes)
	chips := make([]Chip, len(kept))
	for i, pl := range res.Placements {
		chips[i] = Chip{Label: kept[i], Placement: pl}
	}
	return chips, res.Height
}

// Chips renders labels as wrapped pills.
func Chips(labels []string, opts ...Option) []byte {
	r := newRenderer(opts...)
	chips, height := LayoutChips(labels, r.width, r.spacing, r.fontSize)

	var buf bytes.Buffer
	writeHeader(&buf, r.width, height)
	writeChips(&buf, 0, 0, chips, r.fontSize)
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeChips(buf *bytes.Buffer, x0, y0 float64, chips []Chip, fontSize float64) {
	for _, c := range chips {
		fmt.Fprintf(buf, `  <rect class="chip" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" stroke="%s"/>`+"\n",
			x0+c.X, y0+c.Y, c.W, c.H, c.H/2, colorChip, colorBorder)
		writeText(buf, x0+c.CenterX(), y0+c.CenterY(), fontSize,
			` text-anchor="middle" dominant-baseline="central"`, c.Label)
	}
}
