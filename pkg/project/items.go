package project

import (
	"strings"

	"github.com/milestone-dev/milestone/pkg/errors"
)

// Field names one of the editable string lists of a project.
type Field string

const (
	FieldTechStack   Field = "tech"
	FieldKeyFeatures Field = "features"
	FieldTags        Field = "tags"
)

// Fields lists every string list field.
var Fields = []Field{FieldTechStack, FieldKeyFeatures, FieldTags}

// ParseField parses a list field name. Long forms such as "tech_stack" and
// "key_features" are accepted as aliases.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tech", "tech_stack", "techstack", "stack":
		return FieldTechStack, nil
	case "features", "key_features", "keyfeatures", "feature":
		return FieldKeyFeatures, nil
	case "tags", "tag":
		return FieldTags, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown list field %q (want tech, features or tags)", s)
}

func (p *Project) list(f Field) *[]string {
	switch f {
	case FieldTechStack:
		return &p.TechStack
	case FieldKeyFeatures:
		return &p.KeyFeatures
	case FieldTags:
		return &p.Tags
	}
	return nil
}

// Items returns the current contents of a list field.
func (p *Project) Items(f Field) []string {
	if l := p.list(f); l != nil {
		return *l
	}
	return nil
}

// AppendItem adds v to the end of a list field. Blank values are kept; they
// are pruned when editing ends.
func (p *Project) AppendItem(f Field, v string) {
	if l := p.list(f); l != nil {
		*l = append(*l, v)
	}
}

// UpdateItem replaces the entry at i. It reports false and changes nothing
// when i is out of range.
func (p *Project) UpdateItem(f Field, i int, v string) bool {
	l := p.list(f)
	if l == nil || i < 0 || i >= len(*l) {
		return false
	}
	(*l)[i] = v
	return true
}

// RemoveItem deletes the entry at i. It reports false and changes nothing
// when i is out of range.
func (p *Project) RemoveItem(f Field, i int) bool {
	l := p.list(f)
	if l == nil || i < 0 || i >= len(*l) {
		return false
	}
	*l = append((*l)[:i:i], (*l)[i+1:]...)
	return true
}

// RemoveImage deletes the image at i, with the same out-of-range rule as
// RemoveItem.
func (p *Project) RemoveImage(i int) bool {
	if i < 0 || i >= len(p.Images) {
		return false
	}
	p.Images = append(p.Images[:i:i], p.Images[i+1:]...)
	return true
}

// PruneBlankItems drops entries that are blank after trimming from the tech
// stack, key features and tags. It reports whether anything was removed.
func (p *Project) PruneBlankItems() bool {
	changed := false
	for _, f := range Fields {
		l := p.list(f)
		kept := make([]string, 0, len(*l))
		for _, v := range *l {
			if !IsBlank(v) {
				kept = append(kept, v)
			}
		}
		if len(kept) != len(*l) {
			changed = true
			*l = kept
		}
	}
	return changed
}
