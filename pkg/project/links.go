package project

import (
	"strings"

	"github.com/milestone-dev/milestone/pkg/errors"
)

// LinkKind names one of the three optional link fields.
type LinkKind string

const (
	LinkGitHub LinkKind = "github"
	LinkLive   LinkKind = "live"
	LinkFigma  LinkKind = "figma"
)

// LinkKinds lists the link fields in display order.
var LinkKinds = []LinkKind{LinkGitHub, LinkLive, LinkFigma}

// Label returns the display name of the link.
func (k LinkKind) Label() string {
	switch k {
	case LinkGitHub:
		return "GitHub"
	case LinkLive:
		return "Live"
	case LinkFigma:
		return "Figma"
	}
	return string(k)
}

// ParseLinkKind parses a link field name.
func ParseLinkKind(s string) (LinkKind, error) {
	k := LinkKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range LinkKinds {
		if k == known {
			return k, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown link %q (want github, live or figma)", s)
}

func (p *Project) linkField(kind LinkKind) **string {
	switch kind {
	case LinkGitHub:
		return &p.GitHubURL
	case LinkLive:
		return &p.LiveURL
	case LinkFigma:
		return &p.FigmaURL
	}
	return nil
}

// SetLink stores raw in the given link field. Surrounding whitespace is
// trimmed and a blank value clears the link.
func (p *Project) SetLink(kind LinkKind, raw string) {
	field := p.linkField(kind)
	if field == nil {
		return
	}
	v := strings.TrimSpace(raw)
	if v == "" {
		*field = nil
		return
	}
	*field = &v
}

// Link returns the value of a link field and whether it is set.
func (p *Project) Link(kind LinkKind) (string, bool) {
	field := p.linkField(kind)
	if field == nil || *field == nil || IsBlank(**field) {
		return "", false
	}
	return **field, true
}

// HasLinks reports whether any link field holds a non-blank value.
func (p *Project) HasLinks() bool {
	for _, k := range LinkKinds {
		if _, ok := p.Link(k); ok {
			return true
		}
	}
	return false
}

// ClearLinks sets every link field to absent.
func (p *Project) ClearLinks() {
	p.GitHubURL = nil
	p.LiveURL = nil
	p.FigmaURL = nil
}
