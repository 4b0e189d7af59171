package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"github.com/spf13/cobra"

	"github.com/soundgraph/agdl/internal/agdl/linker"
	"github.com/soundgraph/agdl/internal/agdl/nodes"
	"github.com/soundgraph/agdl/internal/agdl/parser"
	"github.com/soundgraph/agdl/internal/agdl/registry"
	"github.com/soundgraph/agdl/internal/diag"
)

func newValidateCmd(globals *globalFlags) *cobra.Command {
	var dumpASTPath string

	cmd := &cobra.Command{
		Use:   "validate <source.agdl>",
		Short: "Parse and link an AGDL source file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			graph, err := parser.Parse(string(src))
			if err != nil {
				return err
			}

			if dumpASTPath != "" {
				encoded := rezi.EncBinary(graph)
				if err := os.WriteFile(dumpASTPath, encoded, 0o644); err != nil {
					return fmt.Errorf("dump ast: %w", err)
				}
			}

			reg := registry.New()
			nodes.Register(reg)
			linked, err := linker.Link(graph, reg)
			if err != nil {
				return err
			}

			if dangling := linker.DanglingInputsSummary(graph); dangling != "" {
				diag.Warn("dangling inputs will never become ready", "inputs", dangling)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d transformers, %d roots\n", len(linked.Instances), len(linked.Roots))
			return nil
		},
	}

	cmd.Flags().StringVar(&dumpASTPath, "dump-ast", "", "write the parsed AST to this path via REZI's binary encoding")
	return cmd
}
