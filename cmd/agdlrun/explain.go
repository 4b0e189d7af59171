package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/soundgraph/agdl/internal/agdl/linker"
	"github.com/soundgraph/agdl/internal/agdl/nodes"
	"github.com/soundgraph/agdl/internal/agdl/parser"
	"github.com/soundgraph/agdl/internal/agdl/registry"
)

// explainDoc is the YAML shape rendered by `agdlrun explain`: every
// declared transformer (class, instance name, its signal-level input/output
// links and its config tags, straight from the AST; config values are not
// rendered) plus the linker's root list.
type explainDoc struct {
	Transformers []explainTransformer `yaml:"transformers"`
	Roots        []string             `yaml:"roots"`
}

type explainTransformer struct {
	Instance string   `yaml:"instance"`
	Class    string   `yaml:"class"`
	Inputs   []string `yaml:"inputs,omitempty"`
	Outputs  []string `yaml:"outputs,omitempty"`
	Configs  []string `yaml:"configs,omitempty"`
}

func newExplainCmd(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <source.agdl>",
		Short: "Render a linked graph's instances, signals, and roots as YAML",
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

			reg := registry.New()
			nodes.Register(reg)
			linked, err := linker.Link(graph, reg)
			if err != nil {
				return err
			}

			doc := explainDoc{}
			for i, tfm := range graph.Transformers {
				et := explainTransformer{
					Instance: linked.Instances[i].Name,
					Class:    tfm.ClassName,
				}
				if tfm.Content.Inputs != nil {
					for _, l := range tfm.Content.Inputs.Links {
						et.Inputs = append(et.Inputs, fmt.Sprintf("<%s> %s", l.Tag, l.Name))
					}
				}
				if tfm.Content.Outputs != nil {
					for _, l := range tfm.Content.Outputs.Links {
						et.Outputs = append(et.Outputs, fmt.Sprintf("<%s> %s", l.Tag, l.Name))
					}
				}
				if tfm.Content.Configs != nil {
					for _, l := range tfm.Content.Configs.Links {
						et.Configs = append(et.Configs, fmt.Sprintf("<%s>", l.Tag))
					}
				}
				doc.Transformers = append(doc.Transformers, et)
			}
			for _, r := range linked.Roots {
				doc.Roots = append(doc.Roots, r.Name)
			}

			encoded, err := yaml.Marshal(doc)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(encoded)
			return err
		},
	}
}
