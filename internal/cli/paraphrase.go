package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/paraphraser/pkg/api"
	"github.com/matzehuels/paraphraser/pkg/paraphrase"
	"github.com/matzehuels/paraphraser/pkg/pipeline"
	"github.com/matzehuels/paraphraser/pkg/syntax"
)

// paraphraseFlags holds the flags of the paraphrase command.
type paraphraseFlags struct {
	limit           int
	methods         []string
	seed            uint64
	maxCombinations int
	nested          string
	jsonOut         bool
	sentences       bool
	interactive     bool
	noCache         bool
	refresh         bool
}

// paraphraseCommand creates the paraphrase command.
func (c *CLI) paraphraseCommand() *cobra.Command {
	var flags paraphraseFlags

	cmd := &cobra.Command{
		Use:   "paraphrase [tree]",
		Short: "Generate paraphrases of a syntax tree",
		Long: `Generate paraphrases of a bracketed syntax tree.

The tree is read from the argument, or from stdin if the argument is
missing or "-". Every paraphrase is printed on its own line in bracketed
form, or as the sentence it spells with --sentences.

Expansions are cached, so sampling the same tree again with a different
--limit or --seed is fast.`,
		Example: `  paraphraser paraphrase "(NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog)))"
  echo "(NP ...)" | paraphraser paraphrase --limit 1 --sentences
  paraphraser paraphrase tree.txt -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readTree(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runParaphrase(cmd.Context(), cmd.OutOrStdout(), input, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "number of paraphrases to sample (0 prints all)")
	cmd.Flags().StringArrayVarP(&flags.methods, "method", "m", nil, `transformation method, repeatable (default "noun phrases")`)
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "random seed for sampling (0 picks one)")
	cmd.Flags().IntVar(&flags.maxCombinations, "max-combinations", 0, "refuse expansions larger than this (0 uses the config value, -1 removes the cap)")
	cmd.Flags().StringVar(&flags.nested, "nested", "", "nested match policy: reject, outermost, compose (default from config)")
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "print the HTTP API's JSON response format")
	cmd.Flags().BoolVar(&flags.sentences, "sentences", false, "print the words of each tree instead of the bracketed form")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "browse paraphrases and print the selected one")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even if the expansion is cached")

	return cmd
}

// readTree returns the tree named by args: the argument itself, the content
// of the file it names, or stdin for no argument or "-".
func readTree(args []string, stdin io.Reader) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	arg := args[0]
	if strings.HasPrefix(strings.TrimSpace(arg), "(") {
		return arg, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", fmt.Errorf("read tree: %w", err)
	}
	return string(data), nil
}

func (c *CLI) runParaphrase(ctx context.Context, w io.Writer, input string, flags paraphraseFlags) error {
	opts, err := c.paraphraseOptions(input, flags)
	if err != nil {
		return err
	}

	runner, store, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer store.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Expanding tree...")
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Expanded %d paraphrases", res.Total))

	switch {
	case flags.interactive:
		return browseParaphrases(ctx, w, res)
	case flags.jsonOut:
		return writeParaphrasesJSON(w, res)
	default:
		return writeParaphrases(w, res, flags.sentences)
	}
}

// paraphraseOptions merges flags over the loaded configuration.
func (c *CLI) paraphraseOptions(input string, flags paraphraseFlags) (pipeline.Options, error) {
	nested := c.Config.NestedPolicy()
	if flags.nested != "" {
		p, err := paraphrase.ParseNestedPolicy(flags.nested)
		if err != nil {
			return pipeline.Options{}, err
		}
		nested = p
	}
	maxCombinations := flags.maxCombinations
	if maxCombinations == 0 {
		maxCombinations = c.Config.CombinationCap()
	}
	return pipeline.Options{
		Tree:            input,
		Methods:         flags.methods,
		Limit:           flags.limit,
		Seed:            flags.seed,
		MaxCombinations: maxCombinations,
		Nested:          nested,
		Refresh:         flags.refresh,
	}, nil
}

func writeParaphrases(w io.Writer, res *pipeline.Result, sentences bool) error {
	for _, t := range res.Trees {
		line := t
		if sentences {
			line = sentence(t)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeParaphrasesJSON prints the HTTP API's response body.
func writeParaphrasesJSON(w io.Writer, res *pipeline.Result) error {
	out := api.ParaphraseResponse{
		Paraphrases: make([]api.Paraphrase, len(res.Trees)),
		Total:       res.Total,
	}
	for i, t := range res.Trees {
		out.Paraphrases[i] = api.Paraphrase{Tree: t}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// sentence returns the words of a bracketed tree separated by spaces. Trees
// produced by the pipeline always parse; anything else is returned as is.
func sentence(tree string) string {
	t, err := syntax.Parse(tree)
	if err != nil {
		return tree
	}
	return strings.Join(t.Leaves(), " ")
}

// browseParaphrases runs the interactive list and prints the selection.
func browseParaphrases(ctx context.Context, w io.Writer, res *pipeline.Result) error {
	model := NewParaphraseListModel(res.Trees, res.Total)
	final, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return fmt.Errorf("interactive list: %w", err)
	}
	if m, ok := final.(ParaphraseListModel); ok && m.Selected >= 0 {
		_, err := fmt.Fprintln(w, m.Trees[m.Selected])
		return err
	}
	return nil
}
