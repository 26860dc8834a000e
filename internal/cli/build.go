package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/store"
	"github.com/sphaso/treap/pkg/treap"
	"github.com/sphaso/treap/pkg/treapio"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	seed    uint64 // random seed for priority generation
	output  string // output file path (stdout if empty)
	name    string // store the tree under this name in the tree store
	refresh bool   // bypass the build cache
}

// buildCommand creates the build command for constructing tree documents.
// The resulting JSON document records every node's priority, so a tree can
// be re-imported later with exactly the same shape.
func (c *CLI) buildCommand() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build [key[=value]...]",
		Short: "Build a treap and write its JSON document",
		Long: `Build a treap from key/value pairs and write its JSON document.

Keys are given as arguments, or one per line on stdin when no arguments are
provided. A key without '=value' uses the key as its own value. Keys are
inserted in the order given; the seed fixes the random priorities, so the
same input and seed always produce the same tree.

Examples:
  treap build m f t b j            # Write the document to stdout
  treap build -o tree.json m f t   # Write to a file
  treap build -n mytree m f t      # Store under a name for 'serve'
  shuf words.txt | treap build     # Keys from stdin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, values, err := readKeyArgs(cmd, args)
			if err != nil {
				return err
			}
			return c.runBuild(cmd, keys, values, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "store the tree under this name")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")

	return cmd
}

// runBuild constructs the tree and writes it to the output and, when a name
// is given, to the tree store.
func (c *CLI) runBuild(cmd *cobra.Command, keys, values []string, opts buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := c.pipelineOptions()
	popts.Keys = keys
	popts.Values = values
	popts.Refresh = opts.refresh
	if opts.seed != 0 {
		popts.Seed = opts.seed
	}

	prog := newProgress(logger)
	t, err := pipeline.Build(popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %d nodes, height %d", t.Len(), t.Height()))

	if err := writeTree(t, opts.output, logger); err != nil {
		return err
	}

	if opts.name != "" {
		doc, err := treapio.Marshal(t)
		if err != nil {
			return fmt.Errorf("serialize tree: %w", err)
		}
		st, err := c.openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Put(ctx, store.NewRecord(opts.name, doc)); err != nil {
			return fmt.Errorf("store tree %s: %w", opts.name, err)
		}
		printSuccess("Stored tree %q", opts.name)
	}

	if opts.output != "" {
		printNewline()
		printNextStep("Draw it", "treap draw --input "+opts.output)
	}
	return nil
}

// readKeyArgs collects key[=value] pairs from the arguments, or from stdin
// (one per line, blank lines skipped) when no arguments are given.
func readKeyArgs(cmd *cobra.Command, args []string) (keys, values []string, err error) {
	if len(args) == 0 {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			args = append(args, line)
		}
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("read stdin: %w", err)
		}
	}
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("no keys given (pass them as arguments or on stdin)")
	}

	keys = make([]string, 0, len(args))
	values = make([]string, 0, len(args))
	for _, arg := range args {
		k, v := parseKeyValue(arg)
		keys = append(keys, k)
		values = append(values, v)
	}
	return keys, values, nil
}

// parseKeyValue splits a key[=value] argument. A bare key is its own value.
func parseKeyValue(arg string) (key, value string) {
	if k, v, ok := strings.Cut(arg, "="); ok {
		return k, v
	}
	return arg, arg
}

// writeTree serializes t as indented JSON to the specified path (or stdout
// if empty). The logger is notified on success with the output path.
func writeTree(t *treap.Treap[string, string], path string, logger *log.Logger) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if err := treapio.WriteJSON(t, out); err != nil {
		return err
	}
	if path != "" {
		logger.Infof("Wrote tree to %s", path)
	}
	return nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
