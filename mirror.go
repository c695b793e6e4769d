package cubesim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubesim/internal/ble"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

// ErrDeviceNotFound is returned when a scan finds no GoCube.
var ErrDeviceNotFound = errors.New("cubesim: no GoCube found")

// mirrorBuffer bounds the moves waiting for the frame loop.
const mirrorBuffer = 64

// Device is a GoCube found by ScanDevices.
type Device struct {
	Name string
	RSSI int16 // dBm, higher is stronger

	result ble.ScanResult
}

// deviceClient is the part of the BLE client a Mirror drives.
type deviceClient interface {
	SetMessageCallback(cb func(*protocol.Message))
	Scan(ctx context.Context, timeout time.Duration) ([]ble.ScanResult, error)
	Connect(ctx context.Context, r ble.ScanResult) error
	Disconnect() error
	DeviceName() string
	Battery() int
	FlashBacklight() error
}

// newDeviceClient opens the system Bluetooth adapter.
var newDeviceClient = func(log logrus.FieldLogger) (deviceClient, error) {
	return ble.NewClient(log)
}

// Mirror relays turns made on a physical GoCube to the simulator. Moves
// arrive on the BLE driver's goroutine and are handed to the host through
// the Moves channel; the host pushes them into a Sequencer from its frame
// loop so the cube is only ever touched there.
type Mirror struct {
	client deviceClient
	log    logrus.FieldLogger

	mu     sync.Mutex
	moves  chan Move
	closed bool
}

// ScanDevices discovers nearby GoCubes.
func ScanDevices(ctx context.Context, timeout time.Duration, opts ...Option) ([]Device, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := newDeviceClient(cfg.logger)
	if err != nil {
		return nil, err
	}
	defer client.Disconnect()

	results, err := client.Scan(ctx, timeout)
	if err != nil {
		return nil, err
	}
	devices := make([]Device, len(results))
	for i, r := range results {
		devices[i] = Device{Name: r.Name, RSSI: r.RSSI, result: r}
	}
	return devices, nil
}

// ConnectMirror connects to a GoCube and starts relaying its turns.
func ConnectMirror(ctx context.Context, d Device, opts ...Option) (*Mirror, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	client, err := newDeviceClient(cfg.logger)
	if err != nil {
		return nil, err
	}
	m := &Mirror{
		client: client,
		log:    cfg.logger.WithField("device", d.Name),
		moves:  make(chan Move, mirrorBuffer),
	}
	client.SetMessageCallback(m.handleMessage)

	if err := client.Connect(ctx, d.result); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// ConnectFirstMirror scans for ten seconds and connects to the first
// GoCube found.
func ConnectFirstMirror(ctx context.Context, opts ...Option) (*Mirror, error) {
	devices, err := ScanDevices(ctx, 10*time.Second, opts...)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}
	return ConnectMirror(ctx, devices[0], opts...)
}

// Moves returns the channel of turns made on the cube. It is closed by
// Close.
func (m *Mirror) Moves() <-chan Move {
	return m.moves
}

// DeviceName returns the connected cube's name.
func (m *Mirror) DeviceName() string {
	return m.client.DeviceName()
}

// Battery returns the last reported battery level, or -1 if unknown.
func (m *Mirror) Battery() int {
	return m.client.Battery()
}

// FlashBacklight flashes the cube backlight.
func (m *Mirror) FlashBacklight() error {
	return m.client.FlashBacklight()
}

// Close disconnects and closes the Moves channel.
func (m *Mirror) Close() error {
	err := m.client.Disconnect()
	m.mu.Lock()
	if !m.closed {
		m.closed = true
		close(m.moves)
	}
	m.mu.Unlock()
	return err
}

func (m *Mirror) handleMessage(msg *protocol.Message) {
	if msg.Type != protocol.MsgTypeRotation {
		return
	}
	moves, err := MovesFromRotation(msg.Payload, time.Now())
	if err != nil {
		m.log.WithError(err).Warn("bad rotation payload")
		return
	}
	m.publish(moves)
}

func (m *Mirror) publish(moves []Move) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	for _, mv := range moves {
		select {
		case m.moves <- mv:
		default:
			m.log.WithField("move", mv.Notation()).Warn("move dropped, frame loop is behind")
		}
	}
}

// centerFaces maps a center color to the face it sits on when solved.
var centerFaces = map[Color]Face{
	cube.White:  FaceU,
	cube.Yellow: FaceD,
	cube.Green:  FaceF,
	cube.Blue:   FaceB,
	cube.Red:    FaceR,
	cube.Orange: FaceL,
}

// MovesFromRotation converts a GoCube rotation payload into moves stamped
// with t.
func MovesFromRotation(payload []byte, t time.Time) ([]Move, error) {
	rots, err := protocol.DecodeRotation(payload)
	if err != nil {
		return nil, err
	}
	moves := make([]Move, 0, len(rots))
	for _, r := range rots {
		face, ok := centerFaces[r.Color]
		if !ok {
			return nil, fmt.Errorf("cubesim: no face for center %s", r.Color.Name())
		}
		turn := CW
		if !r.Clockwise {
			turn = CCW
		}
		moves = append(moves, Move{Face: face, Turn: turn, Time: t})
	}
	return moves, nil
}
