package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
	"github.com/matzehuels/sketchgrid/pkg/session"
)

// editCommand opens the interactive editor.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit FILE",
		Short: "Edit a sketch in the terminal",
		Long: `Open a sketch in the terminal editor, creating it from the [grid] config
when it does not exist yet.

Keys:
  h j k l / arrows   move the cursor
  y u b n            move diagonally
  space              lift or lower the pen; moving with the pen down
                     toggles the edge crossed
  t                  switch between the focus and whole-grid views
  f                  move the focus next to started work
  c                  clear every edge
  w                  write the file
  q                  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, err := c.openSketch(path)
			if apperr.Is(err, apperr.ErrCodeNotFound) {
				g := c.cfg.Grid
				s, err = session.New(g.Size, g.Divisions, c.gridOptions()...)
				if err == nil {
					printInfo("New sketch %s", path)
				}
			}
			if err != nil {
				return err
			}

			model := NewEditorModel(s, path, c.cfg.Render.CellWidth, c.saveSketch)
			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("editor: %w", err)
			}
			if m, ok := final.(EditorModel); ok && m.Dirty {
				printWarning("Quit with unsaved changes to %s", path)
				return nil
			}
			printSuccess("Closed %s", path)
			return nil
		},
	}
}
