package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/paraphraser/pkg/errors"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// Output formats of the visualize command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// visualizeCommand creates the visualize command for drawing a tree.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "visualize [tree]",
		Short: "Draw a syntax tree as Graphviz DOT or SVG",
		Long: `Draw a syntax tree as Graphviz DOT or SVG.

The tree is read like in 'paraphrase'. Pipe the output of
'paraphrase --limit 1' into this command to see a paraphrase.`,
		Example: `  paraphraser visualize "(NP (DT the) (NN cat))" -o cat.svg
  paraphraser paraphrase tree.txt -n 1 | paraphraser visualize --format dot`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", format)
			}
			input, err := readTree(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), cmd.OutOrStdout(), input, format, output)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, stdout io.Writer, input, format, output string) error {
	if err := perrors.ValidateTreeString(input); err != nil {
		return err
	}
	tree, err := syntax.Parse(input)
	if err != nil {
		return perrors.Wrap(perrors.ErrCodeInvalidTree, err, "invalid syntax tree: %v", err)
	}

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(syntax.ToDOT(tree))
	case formatSVG:
		prog := newProgress(c.Logger)
		data, err = syntax.RenderSVG(ctx, tree)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		prog.done("Rendered SVG")
	}

	if output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Wrote %s", format)
	printFile(output)
	return nil
}
