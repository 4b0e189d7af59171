package main

import (
	"github.com/spf13/cobra"

	"github.com/soundgraph/agdl/internal/diag"
)

// globalFlags holds the persistent flags shared by every subcommand,
// declared with pflag directly (rather than cobra's wrapper) for the leaf
// flags, mirroring the teacher's own cmd/tqi/main.go flag declarations.
type globalFlags struct {
	debug      *bool
	configFile *string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "agdlrun",
		Short:         "Parse, link, and run AGDL audio dataflow graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			diag.SetupLogging(*flags.debug)
		},
	}

	pf := root.PersistentFlags()
	flags.debug = pf.BoolP("debug", "d", false, "enable debug-level logging, which shows the diagnostics of nodes configured with <DEBUG>")
	flags.configFile = pf.String("config", ".agdlrun.toml", "path to an optional TOML file of scheduler defaults")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newValidateCmd(flags))
	root.AddCommand(newExplainCmd(flags))
	root.AddCommand(newVersionCmd())

	return root
}
