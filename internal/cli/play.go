package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/input"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

var playScramble int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Turn the cube interactively",
	Long: `Start the interactive simulator.

Keyboard:
  r l u d f b     - turn that face clockwise
  R L U D F B     - turn it counter-clockwise
  m e s / M E S   - middle slices
  space           - scramble
  backspace       - reset to solved
  esc / ctrl+c    - quit

A key pressed while a turn is still animating is ignored. Bindings can
be changed in the [keys] table of the config file.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playScramble, "scramble", 0, "Start from a random scramble of this many moves")
	rootCmd.AddCommand(playCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	turnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// scrambleLength is the scramble pushed by the space key.
const scrambleLength = 20

// Messages
type frameMsg time.Time
type mirrorMoveMsg struct{ move cubesim.Move }
type mirrorClosedMsg struct{}

// playModel is the frame loop. Key messages start turns as they arrive;
// each frame message feeds scripted moves, then advances the animation.
type playModel struct {
	cube     *cubesim.RubiksCube
	keys     *input.Keymap
	repeat   *input.RepeatFilter
	script   *cubesim.Sequencer
	interval time.Duration
	log      logrus.FieldLogger

	mirror     <-chan cubesim.Move
	deviceName string
	battery    func() int

	lastFrame time.Time
	history   []cubesim.Move
	err       error
	quitting  bool
}

func newPlayModel(c *cubesim.RubiksCube, keys *input.Keymap, interval time.Duration, log logrus.FieldLogger) *playModel {
	return &playModel{
		cube:     c,
		keys:     keys,
		repeat:   input.NewRepeatFilter(input.DefaultHold),
		script:   cubesim.NewSequencer(),
		interval: interval,
		log:      log,
	}
}

// withMirror makes the model relay moves from a smart cube.
func (m *playModel) withMirror(moves <-chan cubesim.Move, name string, battery func() int) *playModel {
	m.mirror = moves
	m.deviceName = name
	m.battery = battery
	return m
}

func (m *playModel) Init() tea.Cmd {
	m.lastFrame = time.Now()
	cmds := []tea.Cmd{m.frameCmd()}
	if m.mirror != nil {
		cmds = append(cmds, m.listenMirror())
	}
	return tea.Batch(cmds...)
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) listenMirror() tea.Cmd {
	return func() tea.Msg {
		mv, ok := <-m.mirror
		if !ok {
			return mirrorClosedMsg{}
		}
		return mirrorMoveMsg{move: mv}
	}
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case frameMsg:
		now := time.Time(msg)
		dt := now.Sub(m.lastFrame)
		m.lastFrame = now
		if err := m.frame(dt); err != nil {
			m.err = err
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.frameCmd()

	case mirrorMoveMsg:
		m.script.Push(msg.move)
		return m, m.listenMirror()

	case mirrorClosedMsg:
		m.log.Info("mirror closed")
		m.mirror = nil
	}

	return m, nil
}

func (m *playModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit
	case " ":
		if !m.cube.Busy() && m.script.Len() == 0 {
			m.script.Push(cubesim.Scramble(scrambleLength, nil)...)
		}
		return nil
	case "backspace":
		if err := m.cube.Reset(); err == nil {
			m.script.Clear()
			m.history = nil
		}
		return nil
	}

	mv, ok := m.keys.Lookup(key)
	if !ok || !m.repeat.Accept(key, time.Now()) {
		return nil
	}
	m.turn(mv)
	return nil
}

// turn starts mv. A turn requested mid-animation is dropped.
func (m *playModel) turn(mv cubesim.Move) {
	err := m.cube.BeginMove(mv)
	switch {
	case errors.Is(err, cubesim.ErrRotationBusy):
		m.log.WithField("move", mv.Notation()).Debug("dropped, turn in progress")
	case err != nil:
		m.log.WithError(err).Warn("turn rejected")
	default:
		m.history = append(m.history, mv)
	}
}

// frame advances one frame: scripted input first, then the animation.
func (m *playModel) frame(dt time.Duration) error {
	if !m.cube.Busy() && m.script.Len() > 0 {
		next := m.script.Pending()[0]
		started, err := m.script.Feed(m.cube)
		if err != nil {
			m.log.WithError(err).Warn("scripted move rejected")
		}
		if started {
			m.history = append(m.history, next)
		}
	}
	if err := m.cube.Tick(dt); err != nil {
		return fmt.Errorf("frame loop: %w", err)
	}
	return nil
}

func (m *playModel) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(m.err.Error()) + "\n"
		}
		return "Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("cubesim"))
	b.WriteString("\n\n")

	if m.battery != nil {
		status := fmt.Sprintf("Mirroring: %s", m.deviceName)
		if level := m.battery(); level >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", level)
		}
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n\n")
	}

	b.WriteString(newNetView(m.cube).String())
	b.WriteString("\n")

	switch a, ok := m.cube.Active(); {
	case ok:
		b.WriteString(fmt.Sprintf("Turning: %s %3.0f°\n", turnStyle.Render(a.Move.Notation()), a.Angle))
	case m.cube.IsSolved():
		b.WriteString(fmt.Sprintf("State: %s\n", turnStyle.Render("SOLVED")))
	default:
		b.WriteString(fmt.Sprintf("State: %s\n", statusStyle.Render("idle")))
	}
	if n := m.script.Len(); n > 0 {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Queued: %d", n)))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("Turns: %d\n", len(m.history)))
	if len(m.history) > 0 {
		start := 0
		b.WriteString("Last: ")
		if len(m.history) > 20 {
			start = len(m.history) - 20
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(cubesim.FormatMoves(m.history[start:])))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space scramble · backspace reset · esc quit"))
	b.WriteString("\n")
	return b.String()
}

func loadKeymap() (*input.Keymap, error) {
	keys := input.DefaultKeymap()
	if err := keys.Override(cfg.Keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	keys, err := loadKeymap()
	if err != nil {
		return err
	}

	var scramble []cubesim.Move
	if playScramble > 0 {
		scramble = cubesim.Scramble(playScramble, nil)
	}

	db, j, err := openJournal(storage.SourceKeyboard, cubesim.FormatMoves(scramble))
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		defer j.Close()
	}

	c, err := newCube(j, scramble)
	if err != nil {
		return err
	}

	model := newPlayModel(c, keys, cfg.FrameInterval(), logger)
	return runProgram(model)
}

func runProgram(model *playModel) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return model.err
}
