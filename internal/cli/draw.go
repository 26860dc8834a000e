package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sphaso/treap/pkg/errors"
	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/treap"
	"github.com/sphaso/treap/pkg/treapio"
)

// drawOpts holds the command-line flags for the draw command.
type drawOpts struct {
	input   string // tree document to load instead of building
	name    string // named tree to load from the store
	style   string // label style: compact or verbose
	seed    uint64 // random seed for priority generation
	output  string // output file path (stdout if empty)
	noCache bool   // disable caching
	refresh bool   // rebuild even if cached
}

// drawCommand creates the draw command, the main entry point for rendering
// a treap as tree art.
func (c *CLI) drawCommand() *cobra.Command {
	opts := drawOpts{}

	cmd := &cobra.Command{
		Use:   "draw [key[=value]...]",
		Short: "Draw a treap as Unicode tree art",
		Long: `Draw a treap as Unicode tree art.

The tree comes from one of three sources: key/value arguments (or stdin
lines when no arguments are given), a JSON tree document via --input, or a
named tree from the store via --name. Built trees use random priorities
from the seed; loaded documents reproduce their recorded shape exactly.

Every parent is centered above its children and the drawing never places
two labels closer than one column apart.

Examples:
  treap draw m f t b j q            # Build from keys and draw
  treap draw --style verbose m f t  # (k: key, p: prio) -> value labels
  treap draw --input tree.json      # Draw a saved document
  treap draw --name mytree          # Draw a stored tree`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.style != "" {
				if err := pipeline.ValidateStyle(opts.style); err != nil {
					return err
				}
			}
			return c.runDraw(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "tree document to draw (instead of building)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "stored tree to draw (instead of building)")
	cmd.Flags().StringVar(&opts.style, "style", "", "label style: compact (default), verbose")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")
	cmd.MarkFlagsMutuallyExclusive("input", "name")

	return cmd
}

// runDraw resolves the tree, renders it, and writes the art.
func (c *CLI) runDraw(cmd *cobra.Command, args []string, opts drawOpts) error {
	ctx := cmd.Context()

	popts := c.pipelineOptions()
	popts.Refresh = opts.refresh
	if opts.style != "" {
		popts.Style = opts.style
	}
	if opts.seed != 0 {
		popts.Seed = opts.seed
	}

	runner, err := c.newRunner(cmd, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, buildHit, err := c.resolveTree(cmd, args, opts.input, opts.name, &popts, runner)
	if err != nil {
		return err
	}

	art, _, err := runner.ArtWithCacheInfo(ctx, t, popts)
	if err != nil {
		return fmt.Errorf("render art: %w", err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := fmt.Fprintln(out, art); err != nil {
		return err
	}

	if opts.output != "" {
		printSuccess("Drawing complete")
		printFile(opts.output)
		printStats(t.Len(), t.Height(), buildHit)
	} else {
		loggerFromContext(ctx).Debugf("Drew %d nodes, height %d", t.Len(), t.Height())
	}
	return nil
}

// resolveTree produces the treap to render: a document from --input, a
// stored tree from --name, or a fresh build from key arguments. The returned
// bool reports whether a build came from the cache (always false for loads).
func (c *CLI) resolveTree(cmd *cobra.Command, args []string, input, name string, popts *pipeline.Options, runner *pipeline.Runner) (*treap.Treap[string, string], bool, error) {
	ctx := cmd.Context()

	switch {
	case input != "":
		t, err := treapio.ImportJSON(input)
		if err != nil {
			return nil, false, fmt.Errorf("load tree %s: %w", input, err)
		}
		return t, false, nil

	case name != "":
		st, err := c.openStore(ctx)
		if err != nil {
			return nil, false, err
		}
		defer st.Close()
		rec, err := st.Get(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("load tree %s: %w", name, err)
		}
		if rec == nil {
			return nil, false, errors.New(errors.ErrCodeTreeNotFound, "tree %s not found", name)
		}
		t, err := treapio.Unmarshal(rec.Tree)
		if err != nil {
			return nil, false, fmt.Errorf("decode stored tree %s: %w", name, err)
		}
		return t, false, nil

	default:
		keys, values, err := readKeyArgs(cmd, args)
		if err != nil {
			return nil, false, err
		}
		popts.Keys = keys
		popts.Values = values

		spinner := newSpinnerWithContext(ctx, "Building treap...")
		spinner.Start()
		t, hit, err := runner.BuildWithCacheInfo(ctx, *popts)
		if err != nil {
			spinner.StopWithError("Build failed")
			return nil, false, fmt.Errorf("build: %w", err)
		}
		spinner.Stop()
		return t, hit, nil
	}
}
