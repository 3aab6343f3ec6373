package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/catalog"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/store"
)

// List styles
var (
	listDimStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	listFavStyle  = lipgloss.NewStyle().Foreground(colorFavorite)
	listHintStyle = lipgloss.NewStyle().Foreground(colorLabel)
)

// =============================================================================
// ProjectListModel - Interactive project selection
// =============================================================================

// ProjectListModel is the bubbletea model for interactive project selection.
// "f" narrows the list to favorites and back.
type ProjectListModel struct {
	All       []*project.Project
	Projects  []*project.Project
	Cursor    int
	Offset    int
	Height    int
	Favorites bool
	Selected  *project.Project
}

// NewProjectListModel creates a new project list model.
func NewProjectListModel(projects []*project.Project) ProjectListModel {
	return ProjectListModel{
		All:      projects,
		Projects: projects,
		Height:   15,
	}
}

func (m ProjectListModel) Init() tea.Cmd {
	return nil
}

func (m ProjectListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Projects)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "f":
			m.Favorites = !m.Favorites
			m.Projects = catalog.Filter(m.All, catalog.Query{Favorites: m.Favorites})
			m.Cursor, m.Offset = 0, 0
		case "enter":
			if len(m.Projects) == 0 {
				return m, nil
			}
			m.Selected = m.Projects[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ProjectListModel) View() string {
	var b strings.Builder

	title := "Select Project"
	if m.Favorites {
		title += " " + listFavStyle.Render("★ favorites")
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listHintStyle.Render("↑/↓ navigate  f favorites  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Projects) == 0 {
		b.WriteString(listDimStyle.Render("  nothing to show"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Projects) {
		end = len(m.Projects)
	}
	b.WriteString(projectTable(m.Projects[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] updated %s",
		m.Cursor+1, len(m.Projects), formatRelativeTime(m.Projects[m.Cursor].UpdatedAt, time.Now()))))

	return b.String()
}

// =============================================================================
// project pick
// =============================================================================

func (c *CLI) projectPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a project interactively and show it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				all, err := s.List(ctx)
				if err != nil {
					return err
				}
				if len(all) == 0 {
					printInfo("No projects yet")
					printNextStep("Add one", appName+` project add "My project"`)
					return nil
				}

				list := catalog.Filter(all, catalog.Query{})
				final, err := tea.NewProgram(NewProjectListModel(list), tea.WithAltScreen()).Run()
				if err != nil {
					return err
				}
				m, ok := final.(ProjectListModel)
				if !ok || m.Selected == nil {
					return nil
				}
				printProject(m.Selected, time.Now())
				return nil
			})
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
