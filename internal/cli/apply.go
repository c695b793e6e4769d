package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var applyAnimate bool

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply moves to a solved cube and print the result",
	Long: `Apply a sequence of moves in standard notation to a solved cube and
print the resulting net.

Examples:
  cubesim apply "R U R' U'"
  cubesim apply R U2 "F'" --animate`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyAnimate, "animate", false, "Play the moves through the animation engine instead of applying them instantly")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	moves, err := cubesim.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}

	db, j, err := openJournal(storage.SourceScript, "")
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		defer j.Close()
	}

	c, err := newCube(j, nil)
	if err != nil {
		return err
	}
	if applyAnimate {
		if err := playHeadless(c, moves); err != nil {
			return err
		}
	} else if err := c.Apply(moves...); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Moves: %s\n\n", cubesim.FormatMoves(moves))
	fmt.Fprint(out, newNetView(c).String())
	fmt.Fprintln(out)
	if c.IsSolved() {
		fmt.Fprintln(out, turnStyle.Render("SOLVED"))
	}
	if j != nil {
		fmt.Fprintf(out, "Journal session: %s\n", j.SessionID())
	}
	return nil
}

// playHeadless runs moves through a Sequencer with fixed frame steps.
func playHeadless(c *cubesim.RubiksCube, moves []cubesim.Move) error {
	seq := cubesim.NewSequencer()
	seq.Push(moves...)
	dt := cfg.FrameInterval()
	for seq.Len() > 0 || c.Busy() {
		if _, err := seq.Feed(c); err != nil {
			return err
		}
		if err := c.Tick(dt); err != nil {
			return err
		}
	}
	return nil
}
