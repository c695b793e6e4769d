package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var (
	historyLimit  int
	historyReplay bool
	historyNote   string
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List journal sessions or show one session's turns",
	Long: `Without arguments, list the most recent journal sessions.

With a session ID (or "last"), print that session's turns. --replay plays
them on a fresh cube, after the session's scramble, and prints the final
net. --note attaches a note to the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of sessions to list")
	historyCmd.Flags().BoolVar(&historyReplay, "replay", false, "Replay the session's turns on a fresh cube")
	historyCmd.Flags().StringVar(&historyNote, "note", "", "Attach a note to the session")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	db, err := storage.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := storage.NewSessionRepository(db)
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		list, err := sessions.List(historyLimit)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(out, "No sessions recorded. Run with --journal to record one.")
			return nil
		}
		for _, s := range list {
			fmt.Fprintf(out, "%s  %s  %-8s  %4d turns  %s\n",
				s.SessionID[:8], s.StartedAt.Local().Format(time.DateTime), s.Source, s.TurnCount, formatDuration(s.Duration()))
		}
		return nil
	}

	var s *storage.Session
	if args[0] == "last" {
		s, err = sessions.GetLast()
	} else {
		s, err = findSession(sessions, args[0])
	}
	if err != nil {
		return err
	}

	if historyNote != "" {
		if err := sessions.SetNotes(s.SessionID, historyNote); err != nil {
			return err
		}
		s.Notes = &historyNote
	}

	moves, err := storage.NewTurnRepository(db).Moves(s.SessionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Session:  %s\n", s.SessionID)
	fmt.Fprintf(out, "Started:  %s\n", s.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(out, "Source:   %s\n", s.Source)
	if s.Scramble != nil {
		fmt.Fprintf(out, "Scramble: %s\n", *s.Scramble)
	}
	if s.Notes != nil {
		fmt.Fprintf(out, "Notes:    %s\n", *s.Notes)
	}
	fmt.Fprintf(out, "Turns:    %d\n\n", len(moves))
	fmt.Fprintln(out, moveStyle.Render(cubesim.FormatMoves(moves)))

	if historyReplay {
		c, err := replaySession(s, moves)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, newNetView(c).String())
	}
	return nil
}

// replaySession rebuilds the final state of a session: its scramble, then
// its recorded turns.
func replaySession(s *storage.Session, moves []cubesim.Move) (*cubesim.RubiksCube, error) {
	c := cubesim.New(cubesim.WithLogger(logger))
	if s.Scramble != nil {
		if err := c.ApplyNotation(*s.Scramble); err != nil {
			return nil, fmt.Errorf("scramble: %w", err)
		}
	}
	if err := c.Apply(moves...); err != nil {
		return nil, err
	}
	return c, nil
}

// findSession accepts a full ID or a unique prefix of one.
func findSession(repo *storage.SessionRepository, id string) (*storage.Session, error) {
	if s, err := repo.Get(id); err == nil {
		return s, nil
	}
	list, err := repo.List(1000)
	if err != nil {
		return nil, err
	}
	var match *storage.Session
	for i := range list {
		if len(id) <= len(list[i].SessionID) && list[i].SessionID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("session prefix %q is ambiguous", id)
			}
			match = &list[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: session %s", storage.ErrNotFound, id)
	}
	return match, nil
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "open"
	}
	return d.Round(time.Second).String()
}
