package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/milestone-dev/milestone/pkg/resume"
	"github.com/milestone-dev/milestone/pkg/store"
)

// resumeCommand manages the single résumé PDF.
func (c *CLI) resumeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Import and export your résumé PDF",
	}
	cmd.AddCommand(c.resumeImportCommand())
	cmd.AddCommand(c.resumeExportCommand())
	return cmd
}

func (c *CLI) resumeImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.pdf>",
		Short: "Store a PDF as the résumé, replacing the previous one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			return c.withStore(ctx, func(s store.Store) error {
				n, err := resume.Import(ctx, s, f)
				if err != nil {
					return err
				}
				printSuccess("Imported résumé %s", StyleDim.Render(fmt.Sprintf("(%d bytes)", n)))
				return nil
			})
		},
	}
}

func (c *CLI) resumeExportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored résumé to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(ctx, func(s store.Store) error {
				data, err := resume.Load(ctx, s)
				if err != nil {
					return err
				}
				if output == "" {
					_, err := cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Exported résumé")
				printFile(output)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
