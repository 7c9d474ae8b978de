package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rowminer/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rowminer finds the rows a dataset never drew",
		Long: `rowminer enumerates every ascending selection of K distinct numbers from
1..N and reports the selections that do not occur in a dataset of observed
rows, such as the historical draws of a lottery.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file with run options")

	root.AddCommand(c.mineCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.trieCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
