package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/errors"
	"github.com/milestone-dev/milestone/pkg/project"
	"github.com/milestone-dev/milestone/pkg/store"
)

// itemCommand creates the list-entry command for tech stack, key features and tags.
func (c *CLI) itemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, change and remove tech, feature and tag entries",
		Long: `Add, change and remove single entries of a project's lists.

Fields: tech, features, tags. Indices start at 0; an index past the end of
the list changes nothing.`,
	}
	cmd.AddCommand(c.itemAddCommand())
	cmd.AddCommand(c.itemSetCommand())
	cmd.AddCommand(c.itemRemoveCommand())
	return cmd
}

func (c *CLI) itemAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <field> <value>",
		Short: "Append an entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editItems(cmd, args[0], args[1], func(p *project.Project, f project.Field) bool {
				p.AppendItem(f, args[2])
				return true
			})
		},
	}
}

func (c *CLI) itemSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <index> <value>",
		Short: "Replace an entry",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			return c.editItems(cmd, args[0], args[1], func(p *project.Project, f project.Field) bool {
				return p.UpdateItem(f, i, args[3])
			})
		},
	}
}

func (c *CLI) itemRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id> <field> <index>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[2])
			if err != nil {
				return err
			}
			return c.editItems(cmd, args[0], args[1], func(p *project.Project, f project.Field) bool {
				return p.RemoveItem(f, i)
			})
		},
	}
}

// editItems resolves the project and field, applies fn inside a store update
// and prints the resulting list.
func (c *CLI) editItems(cmd *cobra.Command, ref, field string, fn func(*project.Project, project.Field) bool) error {
	ctx := cmd.Context()
	f, err := project.ParseField(field)
	if err != nil {
		return err
	}
	return c.withStore(ctx, func(s store.Store) error {
		p, err := resolve(ctx, s, ref)
		if err != nil {
			return err
		}
		changed := false
		saved, err := s.Update(ctx, p.ID, func(p *project.Project) error {
			changed = fn(p, f)
			return nil
		})
		if err != nil {
			return err
		}
		if !changed {
			printWarning("index out of range, %s unchanged", f)
		}
		printItems(saved, f)
		return nil
	})
}

func printItems(p *project.Project, f project.Field) {
	items := p.Items(f)
	if len(items) == 0 {
		printKeyValue(string(f), StyleDim.Render("empty"))
		return
	}
	for i, v := range items {
		printKeyValue(strconv.Itoa(i), v)
	}
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "index must be a non-negative integer, got %q", s)
	}
	return i, nil
}
