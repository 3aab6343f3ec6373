package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/milestone-dev/milestone/pkg/flow"
	"github.com/milestone-dev/milestone/pkg/project"
)

const (
	fontFamily    = "system-ui, -apple-system, Segoe UI, sans-serif"
	fontCharWidth = 0.6
)

// Status colours.
const (
	colorInProgress = "#f59e0b"
	colorCompleted  = "#10b981"
	colorLaunched   = "#3b82f6"
	colorUnknown    = "#9ca3af"

	colorText    = "#111827"
	colorMuted   = "#6b7280"
	colorBorder  = "#e5e7eb"
	colorChip    = "#f3f4f6"
	colorSurface = "#ffffff"
)

// StatusColor returns the fill colour used for s.
func StatusColor(s project.Status) string {
	switch s {
	case project.StatusInProgress:
		return colorInProgress
	case project.StatusCompleted:
		return colorCompleted
	case project.StatusLaunched:
		return colorLaunched
	}
	return colorUnknown
}

// TextWidth estimates the rendered width of s at fontSize.
func TextWidth(s string, fontSize float64) float64 {
	return float64(runewidth.StringWidth(s)) * fontSize * fontCharWidth
}

// Truncate shortens s with a trailing ellipsis so that it fits in maxWidth.
func Truncate(s string, maxWidth, fontSize float64) string {
	if TextWidth(s, fontSize) <= maxWidth {
		return s
	}
	cells := int(maxWidth / (fontSize * fontCharWidth))
	if cells < 2 {
		cells = 2
	}
	return runewidth.Truncate(s, cells, "…")
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// Wrap splits s into lines no wider than maxWidth. Existing line breaks are
// kept; blank paragraphs are dropped.
func Wrap(s string, maxWidth, fontSize float64) []string {
	var lines []string
	space := TextWidth(" ", fontSize)
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			continue
		}
		sizes := make([]flow.Size, len(words))
		for i, w := range words {
			sizes[i] = flow.Size{W: TextWidth(w, fontSize), H: fontSize}
		}
		res := flow.Pack(maxWidth, space, sizes)
		grouped := make([][]string, res.Lines)
		for i, pl := range res.Placements {
			grouped[pl.Line] = append(grouped[pl.Line], words[i])
		}
		for _, g := range grouped {
			lines = append(lines, Truncate(strings.Join(g, " "), maxWidth, fontSize))
		}
	}
	return lines
}

func writeHeader(buf *bytes.Buffer, w, h float64) {
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(buf, `  <style>text { font-family: %s; fill: %s; }</style>`+"\n", fontFamily, colorText)
}

func writeText(buf *bytes.Buffer, x, y, size float64, attrs, s string) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%.1f"%s>%s</text>`+"\n", x, y, size, attrs, EscapeXML(s))
}

func wrapURL(buf *bytes.Buffer, url string, fn func()) {
	if url != "" {
		fmt.Fprintf(buf, `  <a href="%s" target="_blank">`+"\n", EscapeXML(url))
	}
	fn()
	if url != "" {
		buf.WriteString("  </a>\n")
	}
}
