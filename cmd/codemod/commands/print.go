package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemod/pkg/printer"
	"github.com/Sumatoshi-tech/codemod/pkg/treeio"
)

// NewPrintCommand creates the print command.
func NewPrintCommand() *cobra.Command {
	var outline bool

	cmd := &cobra.Command{
		Use:   "print <tree-document>",
		Short: "Print the source text of a tree document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cu, err := treeio.ReadFile(args[0])
			if err != nil {
				return err
			}

			if outline {
				return printer.Outline(cmd.OutOrStdout(), cu)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), printer.Print(cu))
			if err != nil {
				return fmt.Errorf("print %s: %w", args[0], err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&outline, "outline", false, "Print the node hierarchy instead of source")

	return cmd
}
