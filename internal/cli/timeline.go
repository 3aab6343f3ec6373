package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/store"
	"github.com/milestone-dev/milestone/pkg/timeline"
)

// timelineCommand prints every project in chronological order, grouped by year.
func (c *CLI) timelineCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Show projects in chronological order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				all, err := s.List(ctx)
				if err != nil {
					return err
				}
				years := timeline.Build(all)
				if asJSON {
					return writeJSON(years)
				}
				if len(years) == 0 {
					printInfo("No projects yet")
					return nil
				}
				printTimeline(years)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printTimeline(years []timeline.Year) {
	for i, y := range years {
		if i > 0 {
			printNewline()
		}
		fmt.Println(StyleTitle.Render(fmt.Sprint(y.Year)))
		for _, e := range y.Entries {
			rail := "│"
			if e.IsLast {
				rail = " "
			}
			meta := []string{statusStyle(e.Status).Render(e.Status.Label())}
			if e.Duration != "" {
				meta = append(meta, e.Duration)
			}
			if len(e.TechStack) > 0 {
				meta = append(meta, strings.Join(e.TechStack, ", "))
			}
			fmt.Printf("  %s %s %s\n", StyleDim.Render(fmt.Sprintf("%-6s", e.DateLabel)), statusStyle(e.Status).Render("●"), StyleValue.Render(e.Title))
			fmt.Printf("  %s %s %s\n", strings.Repeat(" ", 6), StyleDim.Render(rail), StyleDim.Render(strings.Join(meta, " · ")))
		}
	}
}
