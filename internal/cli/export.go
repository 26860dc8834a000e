package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sphaso/treap/pkg/pipeline"
	"github.com/sphaso/treap/pkg/render/dot"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	input    string  // tree document to load instead of building
	name     string  // named tree to load from the store
	output   string  // output file (single format) or base path (multiple)
	style    string  // label style for the text format
	seed     uint64  // random seed for priority generation
	detailed bool    // multi-line node labels in DOT-derived formats
	rankSep  float64 // vertical rank separation in DOT layout
	fontName string  // font for DOT-derived formats
	noCache  bool    // disable caching
	refresh  bool    // rebuild even if cached
}

// exportCommand creates the export command for rendering trees to files.
func (c *CLI) exportCommand() *cobra.Command {
	var formatsStr string
	opts := exportOpts{
		rankSep:  dot.DefaultRankSep,
		fontName: dot.DefaultFontName,
	}

	cmd := &cobra.Command{
		Use:   "export [key[=value]...]",
		Short: "Export a treap to text, DOT, SVG, PNG, PDF, or JSON",
		Long: `Export a treap to one or more file formats.

Like draw, the tree comes from key/value arguments, --input, or --name.
Formats are comma-separated; dot, svg, png, and pdf share one Graphviz
layout, text uses the Unicode renderer, and json writes the tree document.

With one format the output path is used as-is; with several it is the base
path and each file gets the format as its extension.

Results are cached locally for faster subsequent runs.

Examples:
  treap export -f svg m f t b j        # tree.svg
  treap export -f svg,png -o mytree m f t
  treap export -f pdf --input tree.json
  treap export -f json --name mytree -o backup.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := c.parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if opts.style != "" {
				if err := pipeline.ValidateStyle(opts.style); err != nil {
					return err
				}
			}
			return c.runExport(cmd, args, formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "tree document to export (instead of building)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "stored tree to export (instead of building)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): text (default), dot, svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.style, "style", "", "label style: compact (default), verbose")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "multi-line node labels in graph formats")
	cmd.Flags().Float64Var(&opts.rankSep, "ranksep", opts.rankSep, "vertical distance between tree levels")
	cmd.Flags().StringVar(&opts.fontName, "font", opts.fontName, "font for graph formats")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "rebuild even if cached")
	cmd.MarkFlagsMutuallyExclusive("input", "name")

	return cmd
}

// runExport resolves the tree, renders the requested formats, and writes
// one file per format.
func (c *CLI) runExport(cmd *cobra.Command, args []string, formats []string, opts exportOpts) error {
	ctx := cmd.Context()

	popts := c.pipelineOptions()
	popts.Formats = formats
	popts.Refresh = opts.refresh
	popts.Detailed = opts.detailed
	popts.RankSep = opts.rankSep
	popts.FontName = opts.fontName
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

	t, _, err := c.resolveTree(cmd, args, opts.input, opts.name, &popts, runner)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting %s...", strings.Join(formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.ArtifactsWithCacheInfo(ctx, t, popts)
	if err != nil {
		spinner.StopWithError("Export failed")
		return fmt.Errorf("export: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   formats,
		input:     opts.input,
		output:    opts.output,
		nodeCount: t.Len(),
		height:    t.Height(),
		cacheHit:  cacheHit,
	})
}

// artifactWriteParams bundles the arguments for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte // rendered data keyed by format
	formats   []string          // formats in user-requested order
	input     string            // input path, used to derive output names
	output    string            // output file or base path
	nodeCount int
	height    int
	cacheHit  bool
}

// writeArtifacts writes each rendered format to its own file and prints a
// summary. A single format with an explicit output goes exactly there;
// otherwise paths are derived as base.format.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	var files []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("no artifact rendered for format %s", format)
		}

		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(data); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		files = append(files, path)
	}

	printSuccess("Export complete")
	for _, f := range files {
		printFile(f)
	}
	printStats(p.nodeCount, p.height, p.cacheHit)

	if _, ok := p.artifacts[pipeline.FormatJSON]; ok {
		jsonPath := base + "." + pipeline.FormatJSON
		if len(p.formats) == 1 && p.output != "" {
			jsonPath = p.output
		}
		printNewline()
		printNextStep("Draw it", "treap draw --input "+jsonPath)
	}

	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input, falling back to
// "tree" when the tree was built from arguments. If output ends in a format
// extension (.svg, .json, ...), that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return "tree"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
