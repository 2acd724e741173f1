package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/sketchgrid/pkg/errors"
)

// focusCommand shows or moves the focus division.
func (c *CLI) focusCommand() *cobra.Command {
	var random bool

	cmd := &cobra.Command{
		Use:   "focus FILE [X Y]",
		Short: "Show or move the focus division",
		Long: `Without coordinates, print the focus division. With X and Y, move the
focus there; values one step outside the grid wrap around. With --random,
pick a division next to the work done so far.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return apperr.New(apperr.ErrCodeInvalidInput, "want FILE or FILE X Y, got %d arguments", len(args))
			}
			if random && len(args) == 3 {
				return apperr.New(apperr.ErrCodeInvalidInput, "--random does not take coordinates")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, err := c.openSketch(path)
			if err != nil {
				return err
			}

			switch {
			case random:
				f := s.RandomFocus()
				printSuccess("Focus moved to %s", StyleNumber.Render(f.String()))
			case len(args) == 3:
				x, errX := strconv.Atoi(args[1])
				y, errY := strconv.Atoi(args[2])
				if errX != nil || errY != nil {
					return apperr.New(apperr.ErrCodeInvalidInput, "focus coordinates must be integers")
				}
				f := s.SetFocus(x, y)
				printSuccess("Focus moved to %s", StyleNumber.Render(f.String()))
			default:
				printKeyValue("Focus", s.Focus().String())
				return nil
			}
			if err := c.saveSketch(path, s); err != nil {
				return err
			}
			printFile(path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&random, "random", "r", false, "move to a random division next to started work")
	return cmd
}
