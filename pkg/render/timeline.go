package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/timeline"
)

type timelineDot struct {
	x, y  float64
	entry timeline.Entry
}

// Timeline renders years along a single vertical connector. Each entry gets
// a dot in its status colour.
func Timeline(years []timeline.Year, opts ...Option) []byte {
	r := newRenderer(opts...)
	pad := r.padding()
	fs := r.fontSize
	lh := r.lineHeight()

	labelW := TextWidth("Sep 30", fs*0.9)
	dotX := pad + labelW + r.spacing*2
	textX := dotX + r.spacing*2
	textW := r.width - textX - pad
	dotR := fs / 3

	var (
		body bytes.Buffer
		dots []timelineDot
	)
	y := pad
	if timeline.Len(years) == 0 {
		y += lh
		writeText(&body, pad, y, fs, fmt.Sprintf(` style="fill: %s"`, colorMuted), "No projects yet")
	}
	for _, yr := range years {
		y += lh * 1.4
		writeText(&body, pad, y, fs*1.3, ` font-weight="bold"`, strconv.Itoa(yr.Year))
		y += r.spacing / 2
		for _, e := range yr.Entries {
			top := y + r.spacing
			y = top + lh
			dots = append(dots, timelineDot{x: dotX, y: y - fs/3, entry: e})
			writeText(&body, dotX-r.spacing*2, y, fs*0.9,
				fmt.Sprintf(` text-anchor="end" style="fill: %s"`, colorMuted), e.DateLabel)
			writeText(&body, textX, y, fs, ` font-weight="bold"`, Truncate(e.Title, textW, fs))

			y += lh
			writeText(&body, textX, y, fs*0.9, fmt.Sprintf(` style="fill: %s"`, colorMuted),
				Truncate(entryMeta(e), textW, fs*0.9))
		}
	}

	height := y + pad
	var buf bytes.Buffer
	writeHeader(&buf, r.width, height)
	if len(dots) > 1 {
		first, last := dots[0], dots[len(dots)-1]
		fmt.Fprintf(&buf, `  <line class="connector" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			first.x, first.y, last.x, last.y, colorBorder)
	}
	for _, d := range dots {
		fmt.Fprintf(&buf, `  <circle class="dot" cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
			d.x, d.y, dotR, StatusColor(d.entry.Status), EscapeXML(d.entry.Status.Label()))
	}
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func entryMeta(e timeline.Entry) string {
	parts := []string{e.Status.Label()}
	if e.Duration != "" {
		parts = append(parts, e.Duration)
	}
	if !project.IsBlank(e.Tagline) {
		parts = append(parts, e.Tagline)
	}
	return strings.Join(parts, " · ")
}
