package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dagcheck/pkg/graph"
	"github.com/matzehuels/dagcheck/pkg/pipeline"
)

// ErrInvalidGraph is returned by the validate command when the graph fails
// a rule, so the process exits non-zero after the status has been printed.
var ErrInvalidGraph = errors.New("graph is not a valid DAG")

type validateOpts struct {
	json    bool
	strict  bool
	noCache bool
	refresh bool
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOpts

	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Check a graph export against the DAG rules",
		Long: `Validate reads a graph exported from the editor ({"nodes":[...],"edges":[...]})
and reports the first rule it breaks: fewer than two nodes, a node without
any edge, or a cycle. Reads stdin when the file is "-" or omitted.

Exits with status 1 when the graph is invalid.`,
		Example: `  dagcheck validate graph.json
  cat graph.json | dagcheck validate --json
  dagcheck validate --strict graph.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return c.runValidate(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject duplicate node ids and edges with unknown endpoints")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results but store the new one")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, path string, opts validateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := readGraph(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	runner, closeCache, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer closeCache()

	prog := newProgress(logger)
	out, err := runner.Validate(ctx, g, pipeline.Options{
		Strict:  opts.strict || cfg.Validation.Strict,
		Refresh: opts.refresh,
		TTL:     cfg.Cache.TTL.Duration,
	})
	if err != nil {
		return err
	}
	logger.Debug("graph key", "key", out.GraphKey)
	if !opts.json {
		prog.done(fmt.Sprintf("Validated %d nodes, %d edges", out.NodeCount, out.EdgeCount))
	}

	w := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out.Result); err != nil {
			return err
		}
	} else {
		printStatus(w, out.Result)
		printStats(w, out.NodeCount, out.EdgeCount, out.Cached)
	}

	if !out.Result.Valid {
		return ErrInvalidGraph
	}
	return nil
}

func readGraph(in io.Reader, path string) (graph.Graph, error) {
	if path == "-" {
		return graph.ReadJSON(in)
	}
	return graph.ImportJSON(path)
}
