package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/section"
	"github.com/milestone-dev/milestone/pkg/store"
)

// sectionCommand creates the section management command.
func (c *CLI) sectionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sec"},
		Short:   "Show, add and delete the optional sections of a project",
		Long: `Show, add and delete the optional sections of a project.

Sections: overview, details, visuals, links, notes, tags.

A section is active when it holds content or was added explicitly. Deleting a
section clears every field it owns.`,
	}
	cmd.AddCommand(c.sectionListCommand())
	cmd.AddCommand(c.sectionChangeCommand("add", "Add a section", section.Add))
	cmd.AddCommand(c.sectionChangeCommand("delete", "Delete a section and clear its fields", section.Delete))
	return cmd
}

func (c *CLI) sectionListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list <id>",
		Aliases: []string{"ls"},
		Short:   "List active and available sections",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				printVisibility(section.Recompute(p))
				return nil
			})
		},
	}
}

func (c *CLI) sectionChangeCommand(use, short string, change func(*project.Project, section.ID) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id> <section>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := section.Parse(args[1])
			if err != nil {
				return err
			}
			return c.withStore(ctx, func(s store.Store) error {
				p, err := resolve(ctx, s, args[0])
				if err != nil {
					return err
				}
				saved, err := s.Update(ctx, p.ID, func(p *project.Project) error {
					return change(p, id)
				})
				if err != nil {
					return err
				}
				printSuccess("%s: %s %s", StyleValue.Render(saved.Title), use, id.Title())
				printVisibility(section.Recompute(saved))
				return nil
			})
		},
	}
}

func printVisibility(v section.Visibility) {
	active, available := v.Names()
	show := func(label string, ids []string) {
		if len(ids) == 0 {
			printKeyValue(label, StyleDim.Render("none"))
			return
		}
		printKeyValue(label, strings.Join(ids, ", "))
	}
	show("Active", active)
	show("Available", available)
	if len(available) > 0 {
		fmt.Println(StyleDim.Render("  add one with: " + appName + " section add <id> <section>"))
	}
}
