package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paraphraser/pkg/paraphrase"
)

// methodsCommand creates the methods command listing transformation methods.
func (c *CLI) methodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List transformation methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), methodsTable(paraphrase.Methods()))
			return nil
		},
	}
}

func methodsTable(methods []paraphrase.Method) string {
	rows := make([][]string, len(methods))
	for i, m := range methods {
		aliases := strings.Join(m.Aliases(), ", ")
		if aliases == "" {
			aliases = "-"
		}
		rows[i] = []string{m.String(), aliases, m.Description()}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Method", "Aliases", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
