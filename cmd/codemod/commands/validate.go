package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codemod/pkg/treeio"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <tree-document>",
		Short: "Validate a tree document against the tree schema",
		Long: `Validate a tree document against the embedded tree schema, then decode it.

JSON documents are validated as written; other formats are validated after
decoding.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validateDocument(args[0])
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.OutOrStdout(), "%s is invalid\n", args[0])

				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])

			return nil
		},
	}
}

func validateDocument(path string) error {
	codec, err := treeio.CodecFor(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read tree document: %w", err)
	}

	if _, plainJSON := codec.(treeio.JSONCodec); plainJSON {
		err = treeio.ValidateJSON(data)
		if err != nil {
			return err
		}
	}

	doc, err := codec.Unmarshal(data)
	if err != nil {
		return err
	}

	err = treeio.ValidateDocument(doc)
	if err != nil {
		return err
	}

	_, err = treeio.DecodeUnit(doc)

	return err
}
