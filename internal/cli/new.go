package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

// newOpts holds the flags of the new command. Zero values mean "use the
// config".
type newOpts struct {
	size          int
	divisions     int
	onProbability float64
	seed          uint64
	boundarySkip  bool
	force         bool
}

// newCommand creates a sketch file.
func (c *CLI) newCommand() *cobra.Command {
	var opts newOpts

	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a sketch file",
		Long: `Create a sketch file. Files ending in .sgb are written in the compact
binary form; anything else is JSON.

Grid size, divisions and the starting edge density default to the [grid]
section of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !opts.force {
				if _, err := os.Stat(path); err == nil {
					return apperr.New(apperr.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("stat %s: %w", path, err)
				}
			}

			size, divisions, gopts := c.newGridOptions(cmd, opts)
			s, err := session.New(size, divisions, gopts...)
			if err != nil {
				return err
			}
			if err := c.saveSketch(path, s); err != nil {
				return err
			}

			snap := s.Snapshot()
			printSuccess("Created %dx%d sketch with %d divisions", size, size, divisions*divisions)
			printFile(path)
			printStats(snap.OnCount, len(snap.Started), divisions, false)
			printNextStep("Edit it", fmt.Sprintf("%s edit %s", appName, path))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.size, "size", 0, "grid side length in cells (default from config)")
	cmd.Flags().IntVar(&opts.divisions, "divisions", 0, "divisions per side (default from config)")
	cmd.Flags().Float64Var(&opts.onProbability, "on-probability", 0, "probability that each edge starts lit (default from config)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed for reproducible sketches")
	cmd.Flags().BoolVar(&opts.boundarySkip, "boundary-skip", false, "do not mark divisions started by toggles on their boundary")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing file")

	return cmd
}

// newGridOptions merges flags over the [grid] config section.
func (c *CLI) newGridOptions(cmd *cobra.Command, opts newOpts) (size, divisions int, gopts []grid.Option) {
	g := c.cfg.Grid
	flags := cmd.Flags()
	if flags.Changed("size") {
		g.Size = opts.size
	}
	if flags.Changed("divisions") {
		g.Divisions = opts.divisions
	}
	if flags.Changed("on-probability") {
		g.OnProbability = opts.onProbability
	}
	if flags.Changed("boundary-skip") {
		g.BoundarySkip = opts.boundarySkip
	}

	gopts = append(gopts, grid.WithOnProbability(g.OnProbability))
	if flags.Changed("seed") {
		gopts = append(gopts, grid.WithSeed(opts.seed))
	}
	if g.BoundarySkip {
		gopts = append(gopts, grid.WithBoundarySkip())
	}
	return g.Size, g.Divisions, gopts
}
