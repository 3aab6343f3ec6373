package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/catalog"
	"github.com/milestone-dev/milestone/pkg/editor"
	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/section"
	"github.com/milestone-dev/milestone/pkg/store"
)

// projectCommand creates the project management command.
func (c *CLI) projectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Add, list, show and edit projects",
	}

	cmd.AddCommand(c.projectAddCommand())
	cmd.AddCommand(c.projectListCommand())
	cmd.AddCommand(c.projectShowCommand())
	cmd.AddCommand(c.projectEditCommand())
	cmd.AddCommand(c.projectDeleteCommand())
	cmd.AddCommand(c.projectFavoriteCommand())
	cmd.AddCommand(c.projectPickCommand())

	return cmd
}

// =============================================================================
// Patch Flags
// =============================================================================

// patchFlags holds the field flags shared by "project add" and "project edit".
type patchFlags struct {
	title, tagline, description, role, teamSize string
	start, end                                  string
	clearEnd                                    bool
	status, kind                                string
	favorite                                    bool
	tech, features, tags                        []string
	github, live, figma                         string
	problem, solution, goals, challenges, notes string
}

func (f *patchFlags) register(cmd *cobra.Command, withTitle bool) {
	fs := cmd.Flags()
	if withTitle {
		fs.StringVar(&f.title, "title", "", "project title")
	}
	fs.StringVar(&f.tagline, "tagline", "", "one-line pitch")
	fs.StringVarP(&f.description, "desc", "d", "", "description")
	fs.StringVar(&f.role, "role", "", "your role")
	fs.StringVar(&f.teamSize, "team-size", "", "team size")
	fs.StringVar(&f.start, "start", "", "start date (2006-01-02 or 2006.01)")
	fs.StringVar(&f.end, "end", "", "end date (2006-01-02 or 2006.01)")
	fs.BoolVar(&f.clearEnd, "ongoing", false, "clear the end date")
	fs.StringVar(&f.status, "status", "", "in_progress, completed or launched")
	fs.StringVar(&f.kind, "type", "", "personal or team")
	fs.BoolVar(&f.favorite, "favorite", false, "mark as favorite")
	fs.StringSliceVar(&f.tech, "tech", nil, "tech stack (comma-separated, replaces the list)")
	fs.StringSliceVar(&f.features, "features", nil, "key features (replaces the list)")
	fs.StringSliceVar(&f.tags, "tags", nil, "tags (replaces the list)")
	fs.StringVar(&f.github, "github", "", "GitHub URL (empty removes)")
	fs.StringVar(&f.live, "live", "", "live site URL (empty removes)")
	fs.StringVar(&f.figma, "figma", "", "Figma URL (empty removes)")
	fs.StringVar(&f.problem, "problem", "", "overview: problem")
	fs.StringVar(&f.solution, "solution", "", "overview: solution")
	fs.StringVar(&f.goals, "goals", "", "overview: goals")
	fs.StringVar(&f.challenges, "challenges", "", "details: challenges")
	fs.StringVar(&f.notes, "notes", "", "free-form notes")
}

// patch builds a Patch from the flags the user actually set.
func (f *patchFlags) patch(cmd *cobra.Command) (project.Patch, error) {
	var pt project.Patch
	changed := cmd.Flags().Changed

	strs := []struct {
		name string
		val  *string
		dst  **string
	}{
		{"title", &f.title, &pt.Title},
		{"tagline", &f.tagline, &pt.Tagline},
		{"desc", &f.description, &pt.Description},
		{"role", &f.role, &pt.Role},
		{"team-size", &f.teamSize, &pt.TeamSize},
		{"github", &f.github, &pt.GitHubURL},
		{"live", &f.live, &pt.LiveURL},
		{"figma", &f.figma, &pt.FigmaURL},
		{"problem", &f.problem, &pt.Problem},
		{"solution", &f.solution, &pt.Solution},
		{"goals", &f.goals, &pt.Goals},
		{"challenges", &f.challenges, &pt.Challenges},
		{"notes", &f.notes, &pt.Notes},
	}
	for _, s := range strs {
		if changed(s.name) {
			*s.dst = s.val
		}
	}

	lists := []struct {
		name string
		val  *[]string
		dst  **[]string
	}{
		{"tech", &f.tech, &pt.TechStack},
		{"features", &f.features, &pt.KeyFeatures},
		{"tags", &f.tags, &pt.Tags},
	}
	for _, l := range lists {
		if changed(l.name) {
			*l.dst = l.val
		}
	}

	if changed("start") {
		t, err := project.ParseDate(f.start)
		if err != nil {
			return pt, err
		}
		pt.StartDate = &t
	}
	if changed("end") {
		t, err := project.ParseDate(f.end)
		if err != nil {
			return pt, err
		}
		pt.EndDate = &t
	}
	pt.ClearEndDate = f.clearEnd
	if changed("status") {
		st, err := project.ParseStatus(f.status)
		if err != nil {
			return pt, err
		}
		pt.Status = &st
	}
	if changed("type") {
		ty, err := project.ParseType(f.kind)
		if err != nil {
			return pt, err
		}
		pt.Type = &ty
	}
	if changed("favorite") {
		pt.Favorite = &f.favorite
	}
	return pt, nil
}

// warnLinks prints a warning for links that are not http(s) URLs.
func warnLinks(p *project.Project) {
	for _, kind := range project.LinkKinds {
		if url, ok := p.Link(kind); ok {
			if err := errors.ValidateURL(url); err != nil {
				printWarning("%s link: %s", kind.Label(), errors.UserMessage(err))
			}
		}
	}
}

// =============================================================================
// project add
// =============================================================================

func (c *CLI) projectAddCommand() *cobra.Command {
	var f patchFlags
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pt, err := f.patch(cmd)
			if err != nil {
				return err
			}
			start := time.Now()
			if pt.StartDate != nil {
				start = *pt.StartDate
			}

			p := project.New(args[0], "", start)
			if err := pt.Apply(p); err != nil {
				return err
			}
			warnLinks(p)

			return c.withStore(ctx, func(s store.Store) error {
				if err := s.Put(ctx, p); err != nil {
					return err
				}
				loggerFromContext(ctx).Debug("saved project", "id", p.ID)
				printSuccess("Added %s %s", StyleValue.Render(p.Title), StyleDim.Render(p.ShortID()))
				printNextStep("Show it", fmt.Sprintf("%s project show %s", appName, p.ShortID()))
				return nil
			})
		},
	}
	f.register(cmd, false)
	return cmd
}

// =============================================================================
// project list
// =============================================================================

func (c *CLI) projectListCommand() *cobra.Command {
	var (
		q             catalog.Query
		status, order string
		asJSON        bool
	)
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if status != "" {
				st, err := project.ParseStatus(status)
				if err != nil {
					return err
				}
				q.Status = st
			}
			sort, err := catalog.ParseSort(order)
			if err != nil {
				return err
			}
			q.Sort = sort

			return c.withStore(ctx, func(s store.Store) error {
				all, err := s.List(ctx)
				if err != nil {
					return err
				}
				list := catalog.Filter(all, q)
				if asJSON {
					return writeJSON(list)
				}
				if len(list) == 0 {
					printInfo("No projects match")
					return nil
				}
				fmt.Println(projectTable(list, -1))
				printCounts(catalog.Count(all), len(list))
				return nil
			})
		},
	}
	fs := cmd.Flags()
	fs.BoolVarP(&q.Favorites, "favorites", "f", false, "only favorites")
	fs.StringVar(&q.Tag, "tag", "", "only projects with this tag")
	fs.StringVar(&q.Tech, "tech", "", "only projects using this technology")
	fs.StringVar(&status, "status", "", "only projects with this status")
	fs.StringVarP(&q.Search, "search", "s", "", "search title, tagline and description")
	fs.StringVar(&order, "sort", "", "start_desc (default), start_asc or title")
	fs.BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// projectTable renders projects as a table. The row at cursor is
// highlighted; pass -1 for none.
func projectTable(list []*project.Project, cursor int) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
	rows := make([][]string, len(list))
	for i, p := range list {
		fav := ""
		if p.Favorite {
			fav = "★"
		}
		rows[i] = []string{
			p.ShortID(),
			fav,
			p.Title,
			p.Status.Label(),
			p.DateRangeText(),
			catalog.StackSummary(p, catalog.DefaultStackItems),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("ID", "", "Title", "Status", "Dates", "Stack").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == cursor {
				base = base.Bold(true)
			}
			switch col {
			case 0, 4, 5:
				return base.Foreground(colorMuted)
			case 1:
				return base.Foreground(colorFavorite)
			case 3:
				return statusStyle(list[row].Status).Inherit(base)
			}
			if row == cursor {
				return base.Foreground(colorAccent)
			}
			return base
		})
	return t.Render()
}

func printCounts(c catalog.Counts, shown int) {
	parts := []string{fmt.Sprintf("%d of %d shown", shown, c.Total)}
	if c.Favorites > 0 {
		parts = append(parts, fmt.Sprintf("%d ★", c.Favorites))
	}
	for _, st := range project.Statuses {
		if n := c.ByStatus[st]; n > 0 {
			parts = append(parts, statusStyle(st).Render(fmt.Sprintf("%d %s", n, strings.ToLower(st.Label()))))
		}
	}
	parts = append(parts, fmt.Sprintf("%d technologies", c.UniqueTech))
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// =============================================================================
// project show
// =============================================================================

func (c *CLI) projectShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(p)
				}
				printProject(p, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printProject(p *project.Project, now time.Time) {
	title := StyleTitle.Render(p.Title)
	if p.Favorite {
		title += " " + StyleWarning.Render("★")
	}
	fmt.Println(title)
	if !project.IsBlank(p.Tagline) {
		fmt.Println(StyleDim.Render(p.Tagline))
	}
	printNewline()

	printKeyValue("ID", p.ID.String())
	printKeyValue("Status", statusStyle(p.Status).Render(p.Status.Label()))
	printKeyValue("Type", string(p.Type))
	printKeyValue("Dates", p.DateRangeText()+" ("+p.DurationText(now)+")")
	if !project.IsBlank(p.Role) {
		printKeyValue("Role", p.Role)
	}
	if !project.IsBlank(p.TeamSize) {
		printKeyValue("Team", p.TeamSize)
	}
	if len(p.TechStack) > 0 {
		printKeyValue("Stack", strings.Join(p.TechStack, ", "))
	}
	if !project.IsBlank(p.Description) {
		printNewline()
		fmt.Println(p.Description)
	}

	for _, id := range section.Active(p) {
		printNewline()
		fmt.Println(StyleHighlight.Render(id.Title()))
		printSection(p, id)
	}
}

func printSection(p *project.Project, id section.ID) {
	line := func(label, v string) {
		if !project.IsBlank(v) {
			printKeyValue(label, v)
		}
	}
	switch id {
	case section.Overview:
		line("Problem", p.Problem)
		line("Solution", p.Solution)
		line("Goals", p.Goals)
	case section.Details:
		for i, f := range p.KeyFeatures {
			fmt.Printf("  %s %s\n", StyleDim.Render(fmt.Sprintf("%d.", i)), f)
		}
		line("Challenges", p.Challenges)
	case section.Visuals:
		printDetail("%d image(s)", len(p.Images))
	case section.Links:
		for _, kind := range project.LinkKinds {
			if url, ok := p.Link(kind); ok {
				printKeyValue(kind.Label(), StyleLink.Render(url))
			}
		}
	case section.Notes:
		fmt.Println(p.Notes)
	case section.Tags:
		tags := make([]string, len(p.Tags))
		for i, t := range p.Tags {
			tags[i] = "#" + t
		}
		fmt.Println(StyleDim.Render(strings.Join(tags, " ")))
	}
}

// =============================================================================
// project edit
// =============================================================================

func (c *CLI) projectEditCommand() *cobra.Command {
	var f patchFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit project fields",
		Long: `Edit project fields. Only the flags you pass are changed.

Edits run as one edit session: blank entries left in the tech stack, key
features or tags are dropped when the session ends.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pt, err := f.patch(cmd)
			if err != nil {
				return err
			}
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				changed := false
				saved, err := s.Update(ctx, p.ID, func(p *project.Project) error {
					var err error
					changed, err = editSession(p, c, pt)
					if err == nil && !changed {
						return store.ErrNoChange
					}
					return err
				})
				if err != nil {
					return err
				}
				if !changed {
					printInfo("Nothing to change")
					return nil
				}
				warnLinks(saved)
				printSuccess("Updated %s", StyleValue.Render(saved.Title))
				return nil
			})
		},
	}
	f.register(cmd, true)
	return cmd
}

// editSession applies pt to p with edit mode on, then leaves edit mode so
// blank list entries are pruned. It reports whether anything changed.
func editSession(p *project.Project, c *CLI, pt project.Patch) (bool, error) {
	sess := editor.New(p, editor.WithLogger(c.Logger))
	sess.SetEditing(true)
	if err := sess.Apply(pt); err != nil {
		return false, err
	}
	sess.SetEditing(false)
	if !sess.Dirty() {
		return false, nil
	}
	snap := sess.Snapshot()
	if reflect.DeepEqual(snap, p) {
		return false, nil
	}
	snap.Revision = p.Revision
	*p = *snap
	return true, nil
}

// =============================================================================
// project delete / favorite
// =============================================================================

func (c *CLI) projectDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				if err := s.Delete(ctx, p.ID); err != nil {
					return err
				}
				printSuccess("Deleted %s", StyleValue.Render(p.Title))
				return nil
			})
		},
	}
}

func (c *CLI) projectFavoriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "favorite <id>",
		Aliases: []string{"fav"},
		Short:   "Toggle the favorite flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				saved, err := s.Update(ctx, p.ID, func(p *project.Project) error {
					p.Favorite = !p.Favorite
					return nil
				})
				if err != nil {
					return err
				}
				if saved.Favorite {
					printSuccess("%s is now a favorite", StyleValue.Render(saved.Title))
				} else {
					printSuccess("%s is no longer a favorite", StyleValue.Render(saved.Title))
				}
				return nil
			})
		},
	}
}
