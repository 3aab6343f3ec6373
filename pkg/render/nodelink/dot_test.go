package nodelink

import (
	"strings"
	"testing"
	"time"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/render"
)

func TestToDOT(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	a := project.New("Alpha", "", start)
	a.TechStack = []string{"Go", "go", " ", "Redis"}
	b := project.New("Beta", "", start)
	b.TechStack = []string{"Go"}
	b.Status = project.StatusLaunched

	dot := ToDOT([]*project.Project{a, b}, Options{})

	if !strings.HasPrefix(dot, "digraph G {\n") || !strings.HasSuffix(dot, "}\n") {
		t.Fatalf("not a digraph:\n%s", dot)
	}
	if n := strings.Count(dot, `"tech:go" [`); n != 1 {
		t.Errorf("tech:go declared %d times, want 1", n)
	}
	if n := strings.Count(dot, `-> "tech:go"`); n != 2 {
		t.Errorf("edges to tech:go = %d, want 2", n)
	}
	if strings.Count(dot, "->") != 3 {
		t.Errorf("edge count = %d, want 3", strings.Count(dot, "->"))
	}
	if !strings.Contains(dot, `label="Go"`) {
		t.Error("first spelling should label the tech node")
	}
	if !strings.Contains(dot, render.StatusColor(project.StatusLaunched)) {
		t.Error("launched project not coloured")
	}
	if strings.Index(dot, `"tech:go" [`) > strings.Index(dot, `"tech:redis" [`) {
		t.Error("tech nodes not sorted")
	}
}

func TestToDOTDetailed(t *testing.T) {
	p := project.New("Alpha", "", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	dot := ToDOT([]*project.Project{p}, Options{Detailed: true})
	if !strings.Contains(dot, `label="Alpha\nIn progress\n2024.03 - present"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
