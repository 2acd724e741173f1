package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchgrid/pkg/cache"
	"github.com/matzehuels/sketchgrid/pkg/codec"
	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
	"github.com/matzehuels/sketchgrid/pkg/render/artifact"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path, derived from the sketch path when empty
	format    string  // svg, png, pdf, dot or graph; guessed from output when empty
	mode      string  // whole or subgrid
	scale     float64 // pixels per cell
	lineWidth float64 // stroke width in cells
	palette   string  // dark or paper
	noGuides  bool    // omit unlit edges
	labels    bool    // label graph nodes with grid coordinates
	noCache   bool    // bypass the artifact cache
}

// renderCommand renders a sketch file.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a sketch to SVG, PNG, PDF or Graphviz",
		Long: `Render a sketch file.

Formats:
  svg    vector image (default)
  png    raster image
  pdf    vector document, needs rsvg-convert on PATH
  dot    Graphviz source of the lit edges
  graph  node-link SVG of the lit edges laid out by Graphviz

The whole mode draws the full grid; the subgrid mode draws the focus
division and half a division around it. Rendered files are cached by
sketch content and options.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	r := c.cfg.Render
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: next to the sketch)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(artifact.Formats, ", "))
	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "whole", "view: whole or subgrid")
	cmd.Flags().Float64Var(&opts.scale, "scale", r.Scale, "pixels per cell (default from config)")
	cmd.Flags().Float64Var(&opts.lineWidth, "line-width", r.LineWidth, "stroke width in cells (default from config)")
	cmd.Flags().StringVar(&opts.palette, "palette", r.Palette, "colours: dark or paper (default from config)")
	cmd.Flags().BoolVar(&opts.noGuides, "no-guides", false, "omit unlit edges")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label graph nodes with grid coordinates")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "skip the artifact cache")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	o, err := c.artifactOptions(cmd, opts)
	if err != nil {
		return err
	}
	out := opts.output
	if out == "" {
		out = outputPath(path, o.Format)
	}

	s, err := c.openSketch(path)
	if err != nil {
		return err
	}

	// State and scene come from one lock so the key matches the pixels.
	var state []byte
	var scene render.Scene
	_ = s.Do(func(g *grid.Grid) error {
		state = codec.MarshalBinary(g)
		scene = render.Build(g, o.Mode)
		return nil
	})

	store, err := newCache(c.cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	prog := newProgress(logger)
	data, hit, err := artifact.Cached(ctx, store, newKeyer(c.cfg.Cache), cache.Hash(state), scene, o, c.cfg.Cache.TTL.Duration,
		func(err error) { logger.Warn("cache unavailable", "err", err) })
	if err != nil {
		return err
	}
	if err := writeOutput(out, data); err != nil {
		return err
	}
	prog.done("rendered", "file", filepath.Base(out), "bytes", len(data), "cached", hit)

	snap := s.Snapshot()
	printSuccess("Rendered %s (%s)", o.Format, o.Mode)
	printFile(out)
	printStats(snap.OnCount, len(snap.Started), snap.Divisions, hit)
	return nil
}

// artifactOptions validates the flags and merges the config.
func (c *CLI) artifactOptions(cmd *cobra.Command, opts renderOpts) (artifact.Options, error) {
	o := artifact.Options{
		Format:    opts.format,
		Scale:     opts.scale,
		LineWidth: opts.lineWidth,
		Palette:   opts.palette,
		Guides:    !opts.noGuides,
		Labels:    opts.labels,
	}
	// Flag defaults were bound before the config file was read.
	r, flags := c.cfg.Render, cmd.Flags()
	if !flags.Changed("scale") {
		o.Scale = r.Scale
	}
	if !flags.Changed("line-width") {
		o.LineWidth = r.LineWidth
	}
	if !flags.Changed("palette") {
		o.Palette = r.Palette
	}

	if o.Format == "" {
		o.Format = artifact.FormatSVG
		if opts.output != "" {
			f, ok := artifact.FormatFromPath(opts.output)
			if !ok {
				return o, apperr.New(apperr.ErrCodeInvalidFormat, "cannot tell the format of %s (use --format)", opts.output)
			}
			o.Format = f
		}
	}
	var err error
	if o.Mode, err = render.ParseMode(opts.mode); err != nil {
		return o, err
	}
	return o, o.Validate()
}

// outputPath derives the artifact path from the sketch path.
func outputPath(sketch, format string) string {
	base := strings.TrimSuffix(sketch, filepath.Ext(sketch))
	if format == artifact.FormatGraph {
		return base + ".graph.svg"
	}
	return base + "." + format
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
