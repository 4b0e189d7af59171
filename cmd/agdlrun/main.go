/*
Agdlrun parses, links, and executes an AGDL (Audio Graph Description
Language) source file.

Usage:

	agdlrun run <source.agdl> <report.yaml> [flags]
	agdlrun validate <source.agdl> [flags]
	agdlrun explain <source.agdl> [flags]
	agdlrun version

See each subcommand's --help for its flags.
*/
package main

import (
	"fmt"
	"os"

	"github.com/soundgraph/agdl/internal/agdlerrors"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "agdlrun: %s\n", err.Error())
		os.Exit(agdlerrors.ExitCode(err))
	}
}
