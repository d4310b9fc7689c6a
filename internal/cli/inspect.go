package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bracketlab/core/internal/bracket"
	"github.com/bracketlab/core/internal/ruleset"
)

// NewInspectCommand creates the 'inspect' subcommand.
func NewInspectCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <ruleset-file>",
		Short: "Summarize a ruleset's bracket structure",
		Long: `Import a ruleset and print its structure: layers, matches, seed
assignments, and progression wiring, with content hashes for comparing
two files structurally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runInspect(formatter, args[0])
		},
	}
	return cmd
}

// inspectInfo is the JSON payload for inspect.
type inspectInfo struct {
	File      string        `json:"file"`
	SeedCount int           `json:"seed_count"`
	Layers    int           `json:"layers"`
	Nodes     int           `json:"nodes"`
	Edges     int           `json:"edges"`
	GraphHash string        `json:"graph_hash"`
	Detail    []layerDetail `json:"detail"`
}

type layerDetail struct {
	Label string   `json:"label"`
	Nodes []string `json:"nodes"`
}

func runInspect(formatter *OutputFormatter, path string) error {
	r, err := ruleset.Load(path)
	if err != nil {
		formatter.Error(ErrCodeLoad, fmt.Sprintf("load %s: %v", path, err), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	g := ruleset.FromRuleset(*r)
	hash, err := bracket.GraphHash(&g)
	if err != nil {
		formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	info := inspectInfo{
		File:      path,
		SeedCount: g.SeedCount,
		Layers:    len(g.Layers),
		Nodes:     g.NodeCount(),
		Edges:     len(g.Edges),
		GraphHash: hash,
	}
	for _, layer := range g.Layers {
		detail := layerDetail{Label: layer.Label}
		for i := range layer.Nodes {
			node := &layer.Nodes[i]
			detail.Nodes = append(detail.Nodes, fmt.Sprintf("%s %q [%s] home=%s away=%s",
				node.ID, node.Label, node.Category,
				describeSlot(&g, node, bracket.PortHome),
				describeSlot(&g, node, bracket.PortAway)))
		}
		info.Detail = append(info.Detail, detail)
	}

	if formatter.Format == "json" {
		return formatter.Success(info)
	}

	fmt.Fprintf(formatter.Writer, "%s\n", info.File)
	fmt.Fprintf(formatter.Writer, "  seeds: %d  layers: %d  nodes: %d  edges: %d\n",
		info.SeedCount, info.Layers, info.Nodes, info.Edges)
	fmt.Fprintf(formatter.Writer, "  hash: %s\n", info.GraphHash)
	for i, detail := range info.Detail {
		fmt.Fprintf(formatter.Writer, "  layer %d: %s\n", i, detail.Label)
		for _, line := range detail.Nodes {
			fmt.Fprintf(formatter.Writer, "    %s\n", line)
		}
	}
	return nil
}

// describeSlot renders a slot binding for humans: the seed rank, the edge
// source, or "unbound".
func describeSlot(g *bracket.Graph, node *bracket.Node, port bracket.InputPort) string {
	slot := node.Input(port)
	switch {
	case slot.HasSeed():
		return fmt.Sprintf("seed:%d", slot.SeedRank)
	case slot.HasEdge():
		if edge, ok := g.Edge(slot.EdgeID); ok {
			return fmt.Sprintf("%s:%s", edge.FromNode, edge.FromPort)
		}
		return "dangling"
	default:
		return "unbound"
	}
}
