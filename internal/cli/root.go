// Package cli implements the cubesim command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
	journal    bool

	// Set up before every command runs.
	cfg       *config.Config
	logger    *logrus.Logger
	logCloser io.Closer
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesim",
	Short: "Rubik's cube simulator",
	Long: `cubesim - an animated 3x3x3 Rubik's cube in the terminal.

Turn layers from the keyboard, apply algorithms in standard notation,
mirror a GoCube smart cube over Bluetooth, and keep an optional journal
of every turn in a local SQLite database.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.cubesim/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Journal database path (default: ~/.cubesim/cubesim.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail")
	rootCmd.PersistentFlags().BoolVar(&journal, "journal", false, "Record turns to the journal database")
}

// setup loads the config, applies flag overrides and opens the log.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if f := cmd.Flag("journal"); f != nil && f.Changed {
		c.Journal = journal
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	cfg = c

	l, closer, err := openLogger(cfg, verbose)
	if err != nil {
		return err
	}
	logger, logCloser = l, closer
	logger.WithFields(logrus.Fields{
		"command": cmd.Name(),
		"config":  path,
	}).Debug("starting")
	return nil
}

// resolveDBPath returns the journal path from config, flag or default.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return storage.DefaultDBPath()
}

// openJournal starts a journal session when journaling is on. Both return
// values are nil when it is off.
func openJournal(source, scramble string) (*storage.DB, *storage.Journal, error) {
	if !cfg.Journal {
		return nil, nil, nil
	}
	path, err := resolveDBPath()
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, nil, err
	}
	j, err := storage.StartJournal(db, source, scramble, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, j, nil
}

// newCube builds a cube from the config, wired to the log and journal.
// scramble is applied before the journal starts recording, since the
// session already stores it.
func newCube(j *storage.Journal, scramble []cubesim.Move) (*cubesim.RubiksCube, error) {
	recording := false
	opts := []cubesim.Option{
		cubesim.WithTurnDuration(cfg.TurnDuration()),
		cubesim.WithLogger(logger),
	}
	if j != nil {
		opts = append(opts, cubesim.WithTurnCallback(func(m cubesim.Move) {
			if recording {
				j.Record(m)
			}
		}))
	}
	c := cubesim.New(opts...)
	if err := c.Apply(scramble...); err != nil {
		return nil, err
	}
	recording = true
	return c, nil
}
