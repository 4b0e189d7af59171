package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/soundgraph/agdl/internal/agdl/ast"
	"github.com/soundgraph/agdl/internal/agdl/linker"
	"github.com/soundgraph/agdl/internal/agdl/nodes"
	"github.com/soundgraph/agdl/internal/agdl/parser"
	"github.com/soundgraph/agdl/internal/agdl/registry"
	"github.com/soundgraph/agdl/internal/agdl/scheduler"
	"github.com/soundgraph/agdl/internal/config"
	"github.com/soundgraph/agdl/internal/diag"
)

// runReport is the YAML document written to the output artifact path: the
// run ID and cycle count from the terminal summary, captured in a file for
// scripting and CI.
type runReport struct {
	RunID  string `yaml:"run_id"`
	Cycles int    `yaml:"cycles"`
}

func newRunCmd(globals *globalFlags) *cobra.Command {
	var cachedASTPath string
	var maxCycles int
	var progressEvery int

	cmd := &cobra.Command{
		Use:   "run <source.agdl> <report.yaml>",
		Short: "Parse, link, and run an AGDL graph to completion",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, reportPath := args[0], args[1]

			defaults, err := config.Load(*globals.configFile)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-cycles") {
				maxCycles = defaults.MaxCycles
			}
			if !cmd.Flags().Changed("progress-every") {
				progressEvery = defaults.ProgressEvery
			}

			graph, err := loadGraph(sourcePath, cachedASTPath)
			if err != nil {
				return err
			}

			reg := registry.New()
			nodes.Register(reg)
			linked, err := linker.Link(graph, reg)
			if err != nil {
				return err
			}
			defer scheduler.Close(linked)

			result, err := scheduler.Run(context.Background(), linked, scheduler.Options{
				MaxCycles:     maxCycles,
				ProgressEvery: progressEvery,
			})
			if err != nil {
				return err
			}

			report := runReport{RunID: result.RunID, Cycles: result.Cycles}
			encoded, err := yaml.Marshal(report)
			if err != nil {
				return err
			}
			if err := os.WriteFile(reportPath, encoded, 0o644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), diag.Summary(
				"Completed graph execution",
				fmt.Sprintf("run %s finished after %d cycles. Report written to %s.", result.RunID, result.Cycles, reportPath),
				true,
			))
			return nil
		},
	}

	addSchedulerFlags(cmd.Flags(), &cachedASTPath, &maxCycles, &progressEvery)
	return cmd
}

// addSchedulerFlags declares run's leaf-level flags directly against the
// *pflag.FlagSet cobra builds its commands on, mirroring the teacher's own
// cmd/tqi/main.go use of spf13/pflag for flag declaration.
func addSchedulerFlags(fs *pflag.FlagSet, cachedASTPath *string, maxCycles, progressEvery *int) {
	fs.StringVar(cachedASTPath, "cached-ast", "", "skip lexing and parsing, loading a REZI-encoded AST previously written by validate --dump-ast")
	fs.IntVar(maxCycles, "max-cycles", 0, "abort with NonTerminating if the graph has not quiesced after this many cycles (0 = unbounded)")
	fs.IntVar(progressEvery, "progress-every", 0, "log a progress message every N cycles (0 = disabled)")
}

// loadGraph parses sourcePath into an ast.Graph, or, if cachedASTPath is
// set, decodes a previously dumped AST instead and skips lexing/parsing
// entirely.
func loadGraph(sourcePath, cachedASTPath string) (ast.Graph, error) {
	if cachedASTPath != "" {
		data, err := os.ReadFile(cachedASTPath)
		if err != nil {
			return ast.Graph{}, err
		}
		var graph ast.Graph
		if _, err := rezi.DecBinary(data, &graph); err != nil {
			return ast.Graph{}, fmt.Errorf("decode cached ast: %w", err)
		}
		return graph, nil
	}

	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return ast.Graph{}, err
	}
	return parser.Parse(string(src))
}
