package timeline

import (
	"testing"
	"time"

	"github.com/milestone-dev/milestone/pkg/project"
)

func TestBuild(t *testing.T) {
	mk := func(title string, start time.Time) *project.Project {
		return project.New(title, "", start)
	}
	a := mk("a", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	b := mk("b", time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC))
	c := mk("c", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
	end := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	a.EndDate = &end

	years := Build([]*project.Project{a, b, c})

	if len(years) != 2 {
		t.Fatalf("len(years) = %d, want 2", len(years))
	}
	if years[0].Year != 2023 || years[1].Year != 2024 {
		t.Errorf("years = %d, %d; want 2023, 2024", years[0].Year, years[1].Year)
	}
	if got := len(years[1].Entries); got != 2 {
		t.Fatalf("2024 entries = %d, want 2", got)
	}
	if years[1].Entries[0].Title != "c" || years[1].Entries[1].Title != "a" {
		t.Errorf("2024 order = %s, %s; want c, a", years[1].Entries[0].Title, years[1].Entries[1].Title)
	}

	first := years[0].Entries[0]
	if !first.IsFirst || first.IsLast {
		t.Errorf("first entry flags = %v/%v", first.IsFirst, first.IsLast)
	}
	if first.DateLabel != "Nov 20" {
		t.Errorf("DateLabel = %q, want Nov 20", first.DateLabel)
	}
	if first.Duration != "" {
		t.Errorf("ongoing project has duration %q", first.Duration)
	}

	last := years[1].Entries[1]
	if !last.IsLast || last.IsFirst {
		t.Errorf("last entry flags = %v/%v", last.IsFirst, last.IsLast)
	}
	if last.Duration != "10 days" {
		t.Errorf("Duration = %q, want 10 days", last.Duration)
	}
	if mid := years[1].Entries[0]; mid.IsFirst || mid.IsLast {
		t.Error("middle entry marked as an end")
	}

	if Len(years) != 3 {
		t.Errorf("Len() = %d, want 3", Len(years))
	}
}

func TestBuildEmpty(t *testing.T) {
	years := Build(nil)
	if years == nil || len(years) != 0 {
		t.Errorf("Build(nil) = %v, want empty non-nil", years)
	}
}

func TestBuildSingle(t *testing.T) {
	p := project.New("solo", "", time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC))
	years := Build([]*project.Project{p})
	e := years[0].Entries[0]
	if !e.IsFirst || !e.IsLast {
		t.Error("single entry should be both first and last")
	}
}

func TestBuildSameDayOrder(t *testing.T) {
	day := time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC)
	a := project.New("apollo", "", day)
	b := project.New("Borealis", "", day)
	c := project.New("comet", "", day)

	want := []string{"apollo", "Borealis", "comet"}
	for _, in := range [][]*project.Project{{a, b, c}, {c, b, a}, {b, c, a}} {
		entries := Build(in)[0].Entries
		for i, e := range entries {
			if e.Title != want[i] {
				t.Errorf("entry %d = %q, want %q", i, e.Title, want[i])
			}
		}
		if !entries[0].IsFirst || !entries[2].IsLast {
			t.Error("first/last flags follow input order, want sorted order")
		}
	}
}
