package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

// toggleCommand flips the edges along a path of grid nodes.
func (c *CLI) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle FILE X,Y X,Y [X,Y...]",
		Short: "Toggle the edges along a path of grid nodes",
		Long: `Toggle the edge between each pair of consecutive nodes. Nodes must be
neighbours (including diagonals); coordinates wrap around the grid.

  sketchgrid toggle art.json 0,0 1,0 2,1`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			nodes, err := parseNodes(args[1:])
			if err != nil {
				return err
			}
			s, err := c.openSketch(path)
			if err != nil {
				return err
			}

			edits, err := togglePath(s, nodes)
			if err != nil {
				return err
			}
			if err := c.saveSketch(path, s); err != nil {
				return err
			}

			for _, e := range edits {
				loggerFromContext(cmd.Context()).Debug("toggled edge", "layer", e.Layer, "cell", e.Cell)
			}
			snap := s.Snapshot()
			printSuccess("Toggled %d edges", len(edits))
			printFile(path)
			printStats(snap.OnCount, len(snap.Started), snap.Divisions, false)
			return nil
		},
	}
}

// togglePath toggles every step of nodes. It stops at the first step that
// is not a single edge; earlier steps stay applied.
func togglePath(s *session.Session, nodes []grid.Point) ([]session.Edit, error) {
	edits := make([]session.Edit, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		a, b := nodes[i-1], nodes[i]
		e, err := s.Toggle(a.X, a.Y, b.X, b.Y)
		if err != nil {
			return edits, apperr.Wrap(apperr.GetCode(err), err, "step %d %s→%s", i, a, b)
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// parseNodes parses "x,y" arguments.
func parseNodes(args []string) ([]grid.Point, error) {
	nodes := make([]grid.Point, 0, len(args))
	for _, arg := range args {
		p, err := parseNode(arg)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, p)
	}
	return nodes, nil
}

func parseNode(arg string) (grid.Point, error) {
	xs, ys, ok := strings.Cut(arg, ",")
	if !ok {
		return grid.Point{}, apperr.New(apperr.ErrCodeInvalidInput, "node %q: want X,Y", arg)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return grid.Point{}, apperr.New(apperr.ErrCodeInvalidInput, "node %q: coordinates must be integers", arg)
	}
	return grid.Point{X: x, Y: y}, nil
}
