package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/section"
)

// Card renders a summary of p. Sections are drawn in canonical order and
// only when active.
func Card(p *project.Project, now time.Time, opts ...Option) []byte {
	r := newRenderer(opts...)
	pad := r.padding()
	inner := r.width - 2*pad
	fs := r.fontSize

	var body bytes.Buffer
	y := pad

	badge := p.Status.Label()
	badgeSize := ChipSize(badge, fs*0.9)
	titleSize := fs * 1.5
	y += titleSize
	writeText(&body, pad, y, titleSize, ` font-weight="bold"`,
		Truncate(p.Title, inner-badgeSize.W-r.spacing, titleSize))
	fmt.Fprintf(&body, `  <rect class="status" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s"/>`+"\n",
		r.width-pad-badgeSize.W, y-titleSize*0.8, badgeSize.W, badgeSize.H, badgeSize.H/2, StatusColor(p.Status))
	fmt.Fprintf(&body, `  <text x="%.1f" y="%.1f" font-size="%.1f" text-anchor="middle" dominant-baseline="central" style="fill: %s">%s</text>`+"\n",
		r.width-pad-badgeSize.W/2, y-titleSize*0.8+badgeSize.H/2, fs*0.9, colorSurface, EscapeXML(badge))

	if !project.IsBlank(p.Tagline) {
		y += r.lineHeight()
		writeText(&body, pad, y, fs, fmt.Sprintf(` style="fill: %s"`, colorMuted), Truncate(p.Tagline, inner, fs))
	}

	y += r.lineHeight()
	dates := p.DateRangeText() + " · " + p.DurationText(now)
	writeText(&body, pad, y, fs*0.9, fmt.Sprintf(` style="fill: %s"`, colorMuted), Truncate(dates, inner, fs*0.9))

	if chips, h := LayoutChips(p.TechStack, inner, r.spacing, fs*0.9); len(chips) > 0 {
		y += r.spacing
		writeChips(&body, pad, y, chips, fs*0.9)
		y += h
	}

	for _, id := range section.Active(p) {
		y += r.spacing + r.lineHeight()
		fmt.Fprintf(&body, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
			pad, y-r.lineHeight(), r.width-pad, y-r.lineHeight(), colorBorder)
		writeText(&body, pad, y, fs*1.1, ` font-weight="bold"`, id.Title())
		y = r.writeSection(&body, p, id, pad, y, inner)
	}

	height := y + pad
	var buf bytes.Buffer
	writeHeader(&buf, r.width, height)
	fmt.Fprintf(&buf, `  <rect x="0.5" y="0.5" width="%.1f" height="%.1f" rx="8" fill="%s" stroke="%s"/>`+"\n",
		r.width-1, height-1, colorSurface, colorBorder)
	buf.Write(body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// writeSection draws the body of one section below y and returns the new y.
func (r renderer) writeSection(buf *bytes.Buffer, p *project.Project, id section.ID, x, y, width float64) float64 {
	fs := r.fontSize
	lines := func(prefix, text string) {
		if project.IsBlank(text) {
			return
		}
		for _, l := range Wrap(prefix+text, width, fs) {
			y += r.lineHeight()
			writeText(buf, x, y, fs, "", l)
		}
	}

	switch id {
	case section.Overview:
		lines("Problem: ", p.Problem)
		lines("Solution: ", p.Solution)
		lines("Goals: ", p.Goals)
	case section.Details:
		if !project.IsBlank(p.Role) || !project.IsBlank(p.TeamSize) {
			var parts []string
			if !project.IsBlank(p.Role) {
				parts = append(parts, "Role: "+p.Role)
			}
			if !project.IsBlank(p.TeamSize) {
				parts = append(parts, "Team: "+p.TeamSize)
			}
			lines("", strings.Join(parts, " · "))
		}
		for _, f := range p.KeyFeatures {
			lines("• ", f)
		}
		lines("Challenges: ", p.Challenges)
	case section.Visuals:
		n := len(p.Images)
		text := fmt.Sprintf("%d image", n)
		if n != 1 {
			text += "s"
		}
		if len(p.Thumbnail) > 0 {
			text += " + thumbnail"
		}
		lines("", text)
	case section.Links:
		for _, kind := range project.LinkKinds {
			url, ok := p.Link(kind)
			if !ok {
				continue
			}
			y += r.lineHeight()
			wrapURL(buf, url, func() {
				writeText(buf, x, y, fs, fmt.Sprintf(` style="fill: %s"`, colorLaunched),
					Truncate(kind.Label()+": "+url, width, fs))
			})
		}
	case section.Notes:
		lines("", p.Notes)
	case section.Tags:
		if chips, h := LayoutChips(p.Tags, width, r.spacing, fs*0.9); len(chips) > 0 {
			y += r.spacing
			writeChips(buf, x, y, chips, fs*0.9)
			y += h
		}
	}
	return y
}
