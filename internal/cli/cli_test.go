package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/config"
	"github.com/SeamusWaldron/cubesim/internal/input"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

func useTestConfig(t *testing.T) {
	t.Helper()
	cfg = config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "journal.db")
	logger = logrus.New()
	logger.SetOutput(io.Discard)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) *playModel {
	t.Helper()
	useTestConfig(t)
	c, err := newCube(nil, nil)
	require.NoError(t, err)
	return newPlayModel(c, input.DefaultKeymap(), cfg.FrameInterval(), logger)
}

func TestPlayKeyStartsTurn(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("r"))

	a, ok := m.cube.Active()
	require.True(t, ok)
	assert.Equal(t, cubesim.R, a.Move)
	assert.Equal(t, []cubesim.Move{cubesim.R}, m.history)
}

func TestPlayBusyKeyIsDropped(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("r"))
	m.Update(keyMsg("u"))

	a, _ := m.cube.Active()
	assert.Equal(t, cubesim.R, a.Move)
	assert.Len(t, m.history, 1)
}

func TestPlayFrameCompletesTurn(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("F"))

	start := time.Now()
	m.lastFrame = start
	_, cmd := m.Update(frameMsg(start.Add(100 * time.Millisecond)))
	assert.NotNil(t, cmd)
	a, ok := m.cube.Active()
	require.True(t, ok)
	assert.InDelta(t, 36.0, a.Angle, 1e-9)

	m.Update(frameMsg(start.Add(time.Second)))
	assert.False(t, m.cube.Busy())

	want := cubesim.New()
	require.NoError(t, want.Apply(cubesim.FPrime))
	assert.Equal(t, want.Net(), m.cube.Net())
}

func TestPlayBackwardsFrameIsFatal(t *testing.T) {
	m := newTestModel(t)
	m.Update(keyMsg("r"))

	m.lastFrame = time.Now()
	m.Update(frameMsg(m.lastFrame.Add(-time.Millisecond)))
	assert.ErrorIs(t, m.err, cubesim.ErrInvalidTimeDelta)
	assert.True(t, m.quitting)
}

func TestPlayScrambleAndReset(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Greater(t, m.script.Len(), 0)

	now := time.Now()
	m.lastFrame = now
	for i := 1; m.script.Len() > 0 || m.cube.Busy(); i++ {
		require.Less(t, i, 10000)
		m.Update(frameMsg(now.Add(time.Duration(i) * 50 * time.Millisecond)))
	}
	assert.GreaterOrEqual(t, len(m.history), scrambleLength)

	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, m.cube.IsSolved())
	assert.Empty(t, m.history)
}

func TestPlayMirrorMoves(t *testing.T) {
	m := newTestModel(t)
	ch := make(chan cubesim.Move, 4)
	m.withMirror(ch, "GoCube_test", func() int { return 80 })

	ch <- cubesim.U
	msg := m.listenMirror()()
	_, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.script.Len())

	m.lastFrame = time.Now()
	m.Update(frameMsg(m.lastFrame.Add(time.Millisecond)))
	a, ok := m.cube.Active()
	require.True(t, ok)
	assert.Equal(t, cubesim.U, a.Move)

	close(ch)
	m.Update(m.listenMirror()())
	assert.Nil(t, m.mirror)

	assert.Contains(t, m.View(), "GoCube_test")
	assert.Contains(t, m.View(), "80%")
}

func TestPlayView(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "SOLVED")
	m.Update(keyMsg("d"))
	assert.Contains(t, m.View(), "Turning")
}

func TestNetViewHighlightsTurningLayer(t *testing.T) {
	useTestConfig(t)
	c, err := newCube(nil, nil)
	require.NoError(t, err)
	require.NoError(t, c.BeginMove(cubesim.R))

	v := newNetView(c)
	assert.InDelta(t, highlight, v.amount, 1e-9)
	assert.Equal(t, cubesim.Layer{Axis: cubesim.AxisX, Slice: 2}, v.layer)
	assert.Len(t, strings.Split(strings.TrimRight(v.String(), "\n"), "\n"), 11)

	require.NoError(t, c.Snap())
	assert.Zero(t, newNetView(c).amount)
}

func TestPlayHeadlessMatchesApply(t *testing.T) {
	useTestConfig(t)
	moves, err := cubesim.ParseMoves("R U2 F' M")
	require.NoError(t, err)

	animated, err := newCube(nil, nil)
	require.NoError(t, err)
	require.NoError(t, playHeadless(animated, moves))

	instant := cubesim.New()
	require.NoError(t, instant.Apply(moves...))
	assert.Equal(t, instant.Net(), animated.Net())
}

func TestApplyCommandWithJournal(t *testing.T) {
	useTestConfig(t)
	cfg.Journal = true

	var out bytes.Buffer
	applyCmd.SetOut(&out)
	require.NoError(t, runApply(applyCmd, []string{"R", "R'"}))
	assert.Contains(t, out.String(), "Moves: R R'")
	assert.Contains(t, out.String(), "SOLVED")
	assert.Contains(t, out.String(), "Journal session:")

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()

	s, err := storage.NewSessionRepository(db).GetLast()
	require.NoError(t, err)
	assert.Equal(t, storage.SourceScript, s.Source)
	assert.Equal(t, 2, s.TurnCount)

	found, err := findSession(storage.NewSessionRepository(db), s.SessionID[:6])
	require.NoError(t, err)
	assert.Equal(t, s.SessionID, found.SessionID)

	_, err = findSession(storage.NewSessionRepository(db), "zzzz")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestApplyCommandRejectsBadNotation(t *testing.T) {
	useTestConfig(t)
	err := runApply(applyCmd, []string{"R", "Q"})
	assert.ErrorIs(t, err, cubesim.ErrInvalidNotation)
}

func TestLoadKeymapFromConfig(t *testing.T) {
	useTestConfig(t)
	cfg.Keys = map[string]string{"j": "U"}
	keys, err := loadKeymap()
	require.NoError(t, err)
	m, ok := keys.Lookup("j")
	require.True(t, ok)
	assert.Equal(t, cubesim.U, m)

	cfg.Keys = map[string]string{"j": "U2"}
	_, err = loadKeymap()
	assert.ErrorIs(t, err, input.ErrHalfTurn)
}

func TestScrambleIsNotJournaledAsTurns(t *testing.T) {
	useTestConfig(t)
	cfg.Journal = true

	scramble, err := cubesim.ParseMoves("R U2 F'")
	require.NoError(t, err)
	db, j, err := openJournal(storage.SourceKeyboard, cubesim.FormatMoves(scramble))
	require.NoError(t, err)
	defer db.Close()

	c, err := newCube(j, scramble)
	require.NoError(t, err)
	assert.False(t, c.IsSolved())
	assert.Zero(t, j.Len())

	require.NoError(t, c.Apply(cubesim.B))
	assert.Equal(t, 1, j.Len())
	require.NoError(t, j.Close())

	sessions := storage.NewSessionRepository(db)
	s, err := sessions.Get(j.SessionID())
	require.NoError(t, err)
	assert.Equal(t, 1, s.TurnCount)
	require.NotNil(t, s.Scramble)
	assert.Equal(t, "R U2 F'", *s.Scramble)

	moves, err := storage.NewTurnRepository(db).Moves(s.SessionID)
	require.NoError(t, err)
	replayed, err := replaySession(s, moves)
	require.NoError(t, err)
	assert.Equal(t, c.Net(), replayed.Net())
}

func TestHistoryNoteAndReplay(t *testing.T) {
	useTestConfig(t)
	cfg.Journal = true
	require.NoError(t, runApply(applyCmd, []string{"R", "U"}))

	historyNote = "warm-up"
	historyReplay = true
	t.Cleanup(func() {
		historyNote = ""
		historyReplay = false
	})

	var out bytes.Buffer
	historyCmd.SetOut(&out)
	require.NoError(t, runHistory(historyCmd, []string{"last"}))
	assert.Contains(t, out.String(), "Notes:    warm-up")
	assert.Contains(t, out.String(), "R U")

	db, err := storage.Open(cfg.DBPath)
	require.NoError(t, err)
	defer db.Close()
	s, err := storage.NewSessionRepository(db).GetLast()
	require.NoError(t, err)
	require.NotNil(t, s.Notes)
	assert.Equal(t, "warm-up", *s.Notes)
}
