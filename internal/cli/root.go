package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/paraphraser/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// The configuration file is loaded in PersistentPreRunE, so subcommands can
// rely on c.Config. Flags given on the command line override file values.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Paraphraser rewrites syntax trees into equivalent word orders",
		Long: `Paraphraser generates paraphrases of a sentence by reordering the
constituents of its syntax tree. The input is a bracketed constituency tree,
for example:

  (S (NP (NP (DT the) (NN cat)) (CC and) (NP (DT a) (NN dog))) (VP (VBD slept)))

Coordinated noun phrases are permuted, producing "a dog and the cat slept".`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/paraphraser/config.toml)")

	root.AddCommand(c.paraphraseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.methodsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
