package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/observability"
	"github.com/milestone-dev/milestone/pkg/pipeline"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/store"
)

// testEnv points the CLI at a temporary data directory with caching off.
func testEnv(t *testing.T) (dataDir, configPath string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	t.Setenv("MILESTONE_DATA_DIR", dataDir)
	t.Setenv("MILESTONE_STORAGE", "file")
	t.Setenv("MILESTONE_CACHE", "none")
	t.Setenv("MILESTONE_API_TOKEN", "")
	return dataDir, filepath.Join(dir, "config.toml")
}

func runCLI(t *testing.T, configPath string, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", configPath}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func listProjects(t *testing.T, dataDir string) []*project.Project {
	t.Helper()
	s, err := store.NewFileStore(dataDir)
	if err != nil {
		t.Fatal(err)
	}
	all, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return all
}

func onlyProject(t *testing.T, dataDir string) *project.Project {
	t.Helper()
	all := listProjects(t, dataDir)
	if len(all) != 1 {
		t.Fatalf("store holds %d projects, want 1", len(all))
	}
	return all[0]
}

func TestRootCommandTree(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"project", "section", "item", "timeline", "render", "resume", "serve", "cache", "config", "completion"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	for _, name := range want {
		if !slices.Contains(got, name) {
			t.Errorf("root is missing %q (have %v)", name, got)
		}
	}

	sub, _, err := root.Find([]string{"render", "chips"})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Flags().Lookup("field") == nil {
		t.Error("render chips has no --field flag")
	}
}

func TestProjectAddAndEdit(t *testing.T) {
	dataDir, cfg := testEnv(t)

	err := runCLI(t, cfg, "project", "add", "Portfolio",
		"--start", "2024-03-01", "--status", "launched", "--tech", "Go,Redis", "--github", "https://github.com/me/portfolio")
	if err != nil {
		t.Fatalf("project add: %v", err)
	}

	p := onlyProject(t, dataDir)
	if p.Title != "Portfolio" {
		t.Errorf("Title = %q, want Portfolio", p.Title)
	}
	if p.Status != project.StatusLaunched {
		t.Errorf("Status = %q, want launched", p.Status)
	}
	if p.StartDate.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("StartDate = %v", p.StartDate)
	}
	if !slices.Equal(p.TechStack, []string{"Go", "Redis"}) {
		t.Errorf("TechStack = %v", p.TechStack)
	}
	if url, ok := p.Link(project.LinkGitHub); !ok || url != "https://github.com/me/portfolio" {
		t.Errorf("GitHub link = %q, %v", url, ok)
	}

	// Blank entries are dropped when the edit session ends.
	if err := runCLI(t, cfg, "project", "edit", p.ShortID(), "--tech", "Go, ,Svelte", "--tagline", "My site"); err != nil {
		t.Fatalf("project edit: %v", err)
	}
	p = onlyProject(t, dataDir)
	if !slices.Equal(p.TechStack, []string{"Go", "Svelte"}) {
		t.Errorf("TechStack after edit = %v, want [Go Svelte]", p.TechStack)
	}
	if p.Tagline != "My site" {
		t.Errorf("Tagline = %q", p.Tagline)
	}

	if err := runCLI(t, cfg, "project", "edit", p.ShortID(), "--status", "abandoned"); err == nil {
		t.Error("edit accepted an unknown status")
	}
	if got := onlyProject(t, dataDir).Status; got != project.StatusLaunched {
		t.Errorf("Status after rejected edit = %q, want launched", got)
	}

	// Re-applying the current tagline saves nothing.
	before := onlyProject(t, dataDir)
	if err := runCLI(t, cfg, "project", "edit", p.ShortID(), "--tagline", "My site"); err != nil {
		t.Fatalf("project edit: %v", err)
	}
	after := onlyProject(t, dataDir)
	if after.Revision != before.Revision || !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Errorf("no-op edit saved: revision %d -> %d, updated %v -> %v",
			before.Revision, after.Revision, before.UpdatedAt, after.UpdatedAt)
	}
}

func TestProjectCommands(t *testing.T) {
	dataDir, cfg := testEnv(t)
	if err := runCLI(t, cfg, "project", "add", "Notes app", "--start", "2023-06-01"); err != nil {
		t.Fatal(err)
	}
	id := onlyProject(t, dataDir).ID.String()

	steps := [][]string{
		{"project", "favorite", id},
		{"section", "add", id, "notes"},
		{"item", "add", id, "tags", "web"},
		{"item", "remove", id, "tech", "5"},
		{"project", "list", "--favorites"},
		{"project", "show", id},
		{"timeline"},
	}
	for _, args := range steps {
		if err := runCLI(t, cfg, args...); err != nil {
			t.Fatalf("%s: %v", strings.Join(args, " "), err)
		}
	}

	p := onlyProject(t, dataDir)
	if !p.Favorite {
		t.Error("favorite was not toggled on")
	}
	if !slices.Contains(p.EnabledSections, "notes") {
		t.Errorf("EnabledSections = %v, want notes", p.EnabledSections)
	}
	if !slices.Equal(p.Tags, []string{"web"}) {
		t.Errorf("Tags = %v, want [web]", p.Tags)
	}

	if err := runCLI(t, cfg, "section", "add", id, "gallery"); err == nil {
		t.Error("section add accepted an unknown section")
	}
	if err := runCLI(t, cfg, "item", "add", id, "colors", "red"); err == nil {
		t.Error("item add accepted an unknown field")
	}

	if err := runCLI(t, cfg, "project", "delete", id); err != nil {
		t.Fatal(err)
	}
	if n := len(listProjects(t, dataDir)); n != 0 {
		t.Errorf("store holds %d projects after delete, want 0", n)
	}
	if err := runCLI(t, cfg, "project", "show", id); !errors.Is(err, errors.ErrCodeNotFound) && !errors.Is(err, errors.ErrCodeProjectNotFound) {
		t.Errorf("show after delete = %v, want not found", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dataDir, cfg := testEnv(t)
	if err := runCLI(t, cfg, "project", "add", "Card", "--start", "2024-01-01", "--tech", "Go"); err != nil {
		t.Fatal(err)
	}
	id := onlyProject(t, dataDir).ShortID()

	out := filepath.Join(t.TempDir(), "card.svg")
	if err := runCLI(t, cfg, "render", "card", id, "-o", out, "--width", "480"); err != nil {
		t.Fatalf("render card: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") || !strings.Contains(string(data), `width="480"`) {
		t.Errorf("card.svg = %.80q", data)
	}

	if err := runCLI(t, cfg, "render", "chips", id, "--field", "features"); err == nil {
		t.Error("render chips accepted the features field")
	}
	if err := runCLI(t, cfg, "render", "card", id, "--width", "-1"); err == nil {
		t.Error("render accepted a negative width")
	}
}

func TestRenderRequestDefaultsFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg.Render.Width = 640
	c.cfg.Render.FontSize = 14

	var opts renderOpts
	cmd := c.renderProjectCommand(pipeline.KindCard, "card <id>", "")
	if err := cmd.ParseFlags([]string{"--font-size", "10"}); err != nil {
		t.Fatal(err)
	}
	opts.fontSize = 10

	req := c.renderRequest(cmd, pipeline.KindCard, &opts)
	if req.Width != 640 {
		t.Errorf("Width = %v, want 640 from config", req.Width)
	}
	if req.FontSize != 10 {
		t.Errorf("FontSize = %v, want 10 from flag", req.FontSize)
	}
}

func TestResumeCommands(t *testing.T) {
	_, cfg := testEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "cv.txt")
	if err := os.WriteFile(bad, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, cfg, "resume", "import", bad); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("import of text file = %v, want INVALID_FORMAT", err)
	}

	pdf := filepath.Join(dir, "cv.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.7 resume"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := runCLI(t, cfg, "resume", "import", pdf); err != nil {
		t.Fatalf("import: %v", err)
	}

	out := filepath.Join(dir, "out.pdf")
	if err := runCLI(t, cfg, "resume", "export", "-o", out); err != nil {
		t.Fatalf("export: %v", err)
	}
	got, _ := os.ReadFile(out)
	if string(got) != "%PDF-1.7 resume" {
		t.Errorf("exported %q", got)
	}
}

func TestConfigFileIsRead(t *testing.T) {
	_, cfg := testEnv(t)
	if err := os.WriteFile(cfg, []byte("[storage]\nbackend = \"sqlite\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MILESTONE_STORAGE", "")
	if err := runCLI(t, cfg, "config", "show"); err == nil {
		t.Error("an unknown storage backend in the config file was accepted")
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := mustTime(t, "2025-06-15T12:00:00Z")
	tests := []struct {
		at   string
		want string
	}{
		{"2025-06-15T11:59:30Z", "just now"},
		{"2025-06-15T11:15:00Z", "45m ago"},
		{"2025-06-15T07:00:00Z", "5h ago"},
		{"2025-06-12T12:00:00Z", "3d ago"},
		{"2025-05-01T12:00:00Z", "May 1, 2025"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(mustTime(t, tt.at), now); got != tt.want {
			t.Errorf("formatRelativeTime(%s) = %q, want %q", tt.at, got, tt.want)
		}
	}
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestSetLogLevelInstallsHooks(t *testing.T) {
	t.Cleanup(observability.Reset)

	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output at info level: %q", buf.String())
	}

	c.SetLogLevel(LogDebug)
	observability.Cache().OnCacheMiss(context.Background(), "card")
	if !strings.Contains(buf.String(), "card") {
		t.Errorf("cache hook did not log, got %q", buf.String())
	}
}
