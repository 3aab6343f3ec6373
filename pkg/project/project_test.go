package project

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/milestone-dev/milestone/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew(t *testing.T) {
	start := date(2024, 3, 1)
	p := New("Tracker", "Habit tracker", start)

	if p.ID == uuid.Nil {
		t.Error("New() did not assign an ID")
	}
	if p.Status != StatusInProgress {
		t.Errorf("Status = %q, want %q", p.Status, StatusInProgress)
	}
	if p.Type != TypePersonal {
		t.Errorf("Type = %q, want %q", p.Type, TypePersonal)
	}
	if p.TechStack == nil || len(p.TechStack) != 0 {
		t.Errorf("TechStack = %v, want empty non-nil", p.TechStack)
	}
	if p.EndDate != nil || p.GitHubURL != nil {
		t.Error("optional fields should start absent")
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if New("a", "", start).ID == p.ID {
		t.Error("two projects share an ID")
	}
}

func TestValidate(t *testing.T) {
	start := date(2024, 3, 1)
	before := date(2024, 2, 1)

	tests := []struct {
		name   string
		mutate func(p *Project)
		code   errors.Code
	}{
		{"valid", func(p *Project) {}, ""},
		{"nil id", func(p *Project) { p.ID = uuid.Nil }, errors.ErrCodeInvalidInput},
		{"blank title", func(p *Project) { p.Title = "   " }, errors.ErrCodeInvalidInput},
		{"zero start", func(p *Project) { p.StartDate = time.Time{} }, errors.ErrCodeInvalidInput},
		{"end before start", func(p *Project) { p.EndDate = &before }, errors.ErrCodeInvalidInput},
		{"bad status", func(p *Project) { p.Status = "paused" }, errors.ErrCodeInvalidStatus},
		{"bad type", func(p *Project) { p.Type = "company" }, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New("Tracker", "", start)
			tt.mutate(p)
			err := p.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"in_progress", StatusInProgress, true},
		{"In-Progress", StatusInProgress, true},
		{" launched ", StatusLaunched, true},
		{"COMPLETED", StatusCompleted, true},
		{"paused", "", false},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseStatus(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSetLink(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))

	p.SetLink(LinkGitHub, "  https://github.com/me/tracker  ")
	if got, ok := p.Link(LinkGitHub); !ok || got != "https://github.com/me/tracker" {
		t.Errorf("Link(github) = %q, %v", got, ok)
	}
	if !p.HasLinks() {
		t.Error("HasLinks() = false after setting a link")
	}

	p.SetLink(LinkGitHub, "   ")
	if p.GitHubURL != nil {
		t.Errorf("blank link stored as %q, want nil", *p.GitHubURL)
	}
	if p.HasLinks() {
		t.Error("HasLinks() = true after clearing the only link")
	}

	blank := "  "
	p.FigmaURL = &blank
	if p.HasLinks() {
		t.Error("a whitespace link must not count as present")
	}
}

func TestListEdits(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))
	p.AppendItem(FieldTechStack, "Go")
	p.AppendItem(FieldTechStack, "Redis")
	p.AppendItem(FieldTechStack, "Go")

	if !reflect.DeepEqual(p.TechStack, []string{"Go", "Redis", "Go"}) {
		t.Fatalf("TechStack = %v", p.TechStack)
	}

	if !p.UpdateItem(FieldTechStack, 1, "Mongo") {
		t.Error("UpdateItem(1) = false")
	}
	if p.UpdateItem(FieldTechStack, 3, "x") || p.UpdateItem(FieldTechStack, -1, "x") {
		t.Error("out-of-range UpdateItem reported success")
	}
	if !p.RemoveItem(FieldTechStack, 0) {
		t.Error("RemoveItem(0) = false")
	}
	if p.RemoveItem(FieldTechStack, 2) {
		t.Error("out-of-range RemoveItem reported success")
	}

	want := []string{"Mongo", "Go"}
	if !reflect.DeepEqual(p.TechStack, want) {
		t.Errorf("TechStack = %v, want %v", p.TechStack, want)
	}
}

func TestRemoveItemDoesNotAliasClone(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))
	p.Tags = []string{"a", "b", "c"}
	c := p.Clone()
	p.RemoveItem(FieldTags, 0)
	if !reflect.DeepEqual(c.Tags, []string{"a", "b", "c"}) {
		t.Errorf("clone changed to %v", c.Tags)
	}
}

func TestPruneBlankItems(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))
	p.TechStack = []string{"Swift", "  ", ""}
	p.KeyFeatures = []string{""}
	p.Tags = []string{"ios", "\t"}

	if !p.PruneBlankItems() {
		t.Error("PruneBlankItems() = false, want true")
	}
	if !reflect.DeepEqual(p.TechStack, []string{"Swift"}) {
		t.Errorf("TechStack = %v, want [Swift]", p.TechStack)
	}
	if len(p.KeyFeatures) != 0 {
		t.Errorf("KeyFeatures = %v, want empty", p.KeyFeatures)
	}
	if !reflect.DeepEqual(p.Tags, []string{"ios"}) {
		t.Errorf("Tags = %v, want [ios]", p.Tags)
	}
	if p.PruneBlankItems() {
		t.Error("second PruneBlankItems() reported a change")
	}
}

func TestFormatDays(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{0, "same day"},
		{1, "1 day"},
		{29, "29 days"},
		{30, "1 month"},
		{95, "3 months"},
		{364, "12 months"},
		{365, "1 year"},
		{400, "1 year 1 month"},
		{800, "2 years 2 months"},
		{730, "2 years"},
	}
	for _, tt := range tests {
		if got := FormatDays(tt.days); got != tt.want {
			t.Errorf("FormatDays(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestDurationText(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))
	now := date(2024, 1, 11)

	if got := p.DurationText(now); got != "10 days" {
		t.Errorf("ongoing DurationText = %q, want %q", got, "10 days")
	}

	end := date(2024, 1, 1)
	p.EndDate = &end
	if got := p.DurationText(now); got != "same day" {
		t.Errorf("DurationText = %q, want %q", got, "same day")
	}
}

func TestDateRangeText(t *testing.T) {
	p := New("Tracker", "", date(2023, 11, 5))
	if got := p.DateRangeText(); got != "2023.11 - present" {
		t.Errorf("DateRangeText() = %q", got)
	}
	end := date(2024, 2, 1)
	p.EndDate = &end
	if got := p.DateRangeText(); got != "2023.11 - 2024.02" {
		t.Errorf("DateRangeText() = %q", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", date(2024, 3, 15)},
		{"2024.03", date(2024, 3, 1)},
		{"2024-03", date(2024, 3, 1)},
		{"2024-03-15T00:00:00Z", date(2024, 3, 15)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Errorf("ParseDate(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseDate("March"); err == nil {
		t.Error("ParseDate(March) should fail")
	}
}

func TestCloneKeepsEmptyLists(t *testing.T) {
	p := New("Empty", "", date(2024, 1, 1))
	c := p.Clone()
	for name, l := range map[string][]string{
		"TechStack":       c.TechStack,
		"KeyFeatures":     c.KeyFeatures,
		"Tags":            c.Tags,
		"EnabledSections": c.EnabledSections,
	} {
		if l == nil {
			t.Errorf("%s = nil, want empty slice", name)
		}
	}

	var bare Project
	if bare.Clone().Tags != nil {
		t.Error("nil list became non-nil")
	}
}

func TestClone(t *testing.T) {
	end := date(2024, 6, 1)
	p := New("Tracker", "", date(2024, 1, 1))
	p.EndDate = &end
	p.Images = [][]byte{{1, 2, 3}}
	p.Thumbnail = []byte{9}
	p.SetLink(LinkLive, "https://tracker.app")
	p.EnabledSections = []string{"links"}

	c := p.Clone()
	if !reflect.DeepEqual(p, c) {
		t.Fatal("clone differs from original")
	}

	c.Images[0][0] = 7
	c.Thumbnail[0] = 0
	*c.LiveURL = "changed"
	*c.EndDate = date(2030, 1, 1)
	c.EnabledSections[0] = "tags"

	if p.Images[0][0] != 1 || p.Thumbnail[0] != 9 {
		t.Error("clone shares blob memory")
	}
	if *p.LiveURL != "https://tracker.app" || !p.EndDate.Equal(end) {
		t.Error("clone shares pointer fields")
	}
	if p.EnabledSections[0] != "links" {
		t.Error("clone shares EnabledSections")
	}
}

func TestPatchApply(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))
	end := date(2024, 5, 1)
	p.EndDate = &end
	p.SetLink(LinkGitHub, "https://github.com/me/tracker")

	title := "Habit Tracker"
	status := StatusLaunched
	gh := ""
	tags := []string{"ios"}
	pt := Patch{Title: &title, Status: &status, GitHubURL: &gh, Tags: &tags, ClearEndDate: true}

	if err := pt.Apply(p); err != nil {
		t.Fatalf("Apply() = %v", err)
	}
	if p.Title != title || p.Status != StatusLaunched {
		t.Errorf("got title %q status %q", p.Title, p.Status)
	}
	if p.GitHubURL != nil {
		t.Error("empty link in patch should clear the link")
	}
	if p.EndDate != nil {
		t.Error("ClearEndDate did not clear the end date")
	}
	tags[0] = "changed"
	if p.Tags[0] != "ios" {
		t.Error("patch slice aliased into project")
	}
}

func TestPatchRejectsBadStatusWithoutChanges(t *testing.T) {
	p := New("Tracker", "", date(2024, 1, 1))
	title := "Other"
	bad := Status("paused")
	err := Patch{Title: &title, Status: &bad}.Apply(p)
	if !errors.Is(err, errors.ErrCodeInvalidStatus) {
		t.Fatalf("Apply() = %v, want INVALID_STATUS", err)
	}
	if p.Title != "Tracker" {
		t.Errorf("Title changed to %q on a rejected patch", p.Title)
	}
}

func TestParseField(t *testing.T) {
	tests := map[string]Field{
		"tech":         FieldTechStack,
		"tech_stack":   FieldTechStack,
		"features":     FieldKeyFeatures,
		"key_features": FieldKeyFeatures,
		"Tags":         FieldTags,
	}
	for in, want := range tests {
		got, err := ParseField(in)
		if err != nil || got != want {
			t.Errorf("ParseField(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseField("images"); err == nil {
		t.Error("ParseField(images) should fail")
	}
}
