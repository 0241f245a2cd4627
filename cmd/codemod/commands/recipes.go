package commands

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemod/pkg/recipes"
)

// NewRecipesCommand creates the recipes listing command.
func NewRecipesCommand() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "List available recipes and their options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := recipesTable(recipes.Default().All())
			tbl.SetOutputMirror(cmd.OutOrStdout())

			if markdown {
				tbl.RenderMarkdown()
			} else {
				tbl.Render()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render the listing as a Markdown table")

	return cmd
}

func recipesTable(descriptors []recipes.Descriptor) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Name", "Description", "Options"})

	for _, descriptor := range descriptors {
		options := "-"
		if len(descriptor.Options) > 0 {
			options = strings.Join(descriptor.Options, ", ")
		}

		tbl.AppendRow(table.Row{descriptor.Name, descriptor.Description, options})
	}

	return tbl
}
