package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchgrid/pkg/grid"
	"github.com/matzehuels/sketchgrid/pkg/render"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

// showCommand prints a summary of a sketch file.
func (c *CLI) showCommand() *cobra.Command {
	var drawCanvas bool
	var mode string

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print a summary of a sketch",
		Long: `Print the grid dimensions, focus and progress of a sketch, and a map of
its divisions: ■ started, · untouched, ◆ focus. With --canvas, also draw
the sketch in the terminal.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := render.ParseMode(mode)
			if err != nil {
				return err
			}
			s, err := c.openSketch(args[0])
			if err != nil {
				return err
			}

			snap := s.Snapshot()
			fmt.Fprintln(stdout, StyleTitle.Render(args[0]))
			printKeyValue("Size", fmt.Sprintf("%d×%d cells", snap.Size, snap.Size))
			printKeyValue("Divisions", fmt.Sprintf("%d×%d of %d cells", snap.Divisions, snap.Divisions, snap.Size/snap.Divisions))
			printKeyValue("Focus", snap.Focus.String())
			printKeyValue("Lit edges", strconv.Itoa(snap.OnCount))
			printKeyValue("Started", fmt.Sprintf("%d of %d divisions", len(snap.Started), snap.Divisions*snap.Divisions))
			fmt.Fprintln(stdout, divisionTable(snap))

			if drawCanvas {
				fmt.Fprint(stdout, newCanvas(s.Scene(m)).String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&drawCanvas, "canvas", false, "draw the sketch")
	cmd.Flags().StringVarP(&mode, "mode", "m", "subgrid", "canvas view: whole or subgrid")
	return cmd
}

// divisionTable maps the started divisions, x across and y down.
func divisionTable(snap session.Snapshot) string {
	started := make(map[grid.Point]bool, len(snap.Started))
	for _, d := range snap.Started {
		started[d] = true
	}

	headers := make([]string, snap.Divisions+1)
	for x := range snap.Divisions {
		headers[x+1] = strconv.Itoa(x)
	}
	rows := make([][]string, snap.Divisions)
	for y := range snap.Divisions {
		row := make([]string, snap.Divisions+1)
		row[0] = strconv.Itoa(y)
		for x := range snap.Divisions {
			d := grid.Point{X: x, Y: y}
			switch {
			case d == snap.Focus:
				row[x+1] = "◆"
			case started[d]:
				row[x+1] = "■"
			default:
				row[x+1] = "·"
			}
		}
		rows[y] = row
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 || col == 0 {
				return headerStyle
			}
			switch rows[row][col] {
			case "◆":
				return lipgloss.NewStyle().Foreground(colorRed).Bold(true)
			case "■":
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorDim)
		}).
		Render()
}
