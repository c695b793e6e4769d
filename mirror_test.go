package cubesim

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubesim/internal/ble"
	"github.com/SeamusWaldron/cubesim/internal/cube"
	"github.com/SeamusWaldron/cubesim/internal/protocol"
)

type fakeClient struct {
	results     []ble.ScanResult
	connectErr  error
	connected   bool
	disconnects int
	onMessage   func(*protocol.Message)
}

func (f *fakeClient) SetMessageCallback(cb func(*protocol.Message)) { f.onMessage = cb }

func (f *fakeClient) Scan(ctx context.Context, timeout time.Duration) ([]ble.ScanResult, error) {
	return f.results, nil
}

func (f *fakeClient) Connect(ctx context.Context, r ble.ScanResult) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeClient) Disconnect() error {
	f.disconnects++
	f.connected = false
	return nil
}

func (f *fakeClient) DeviceName() string    { return "GoCube_fake" }
func (f *fakeClient) Battery() int          { return 55 }
func (f *fakeClient) FlashBacklight() error { return nil }

func useFakeClient(t *testing.T, f *fakeClient) {
	t.Helper()
	prev := newDeviceClient
	newDeviceClient = func(logrus.FieldLogger) (deviceClient, error) { return f, nil }
	t.Cleanup(func() { newDeviceClient = prev })
}

func TestMovesFromRotation(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// red cw, white ccw, green cw, blue ccw
	moves, err := MovesFromRotation([]byte{0x08, 0, 0x05, 0, 0x02, 0, 0x01, 0}, at)
	require.NoError(t, err)
	assert.Equal(t, "R U' F B'", FormatMoves(moves))
	for _, m := range moves {
		assert.Equal(t, at, m.Time)
	}

	_, err = MovesFromRotation([]byte{0x0F, 0}, at)
	assert.ErrorIs(t, err, protocol.ErrUnknownFace)
}

func TestMirrorFramesDriveCube(t *testing.T) {
	c := New()
	seq := NewSequencer()

	for _, mv := range SexyMove {
		payload, err := protocol.EncodeRotation(faceCenter(t, mv.Face), mv.Turn == CW)
		require.NoError(t, err)

		msg, err := protocol.Parse(protocol.Encode(protocol.MsgTypeRotation, payload))
		require.NoError(t, err)
		moves, err := MovesFromRotation(msg.Payload, time.Now())
		require.NoError(t, err)
		seq.Push(moves...)
	}
	assert.Equal(t, 4, seq.Len())

	for seq.Len() > 0 || c.Busy() {
		_, err := seq.Feed(c)
		require.NoError(t, err)
		require.NoError(t, c.Tick(c.TurnDuration()))
	}

	want := New()
	require.NoError(t, want.Apply(SexyMove...))
	assert.Equal(t, want.Net(), c.Net())
}

func TestMirrorPublishDropsWhenFull(t *testing.T) {
	m := &Mirror{log: New().log, moves: make(chan Move, 2)}
	m.publish([]Move{R, U, F})
	assert.Len(t, m.moves, 2)

	m.mu.Lock()
	m.closed = true
	close(m.moves)
	m.mu.Unlock()
	m.publish([]Move{R})

	var got []Move
	for mv := range m.Moves() {
		got = append(got, mv)
	}
	assert.Equal(t, []Move{R, U}, got)
}

func faceCenter(t *testing.T, f Face) Color {
	t.Helper()
	for c, face := range centerFaces {
		if face == f {
			return c
		}
	}
	t.Fatalf("no center for %s", f)
	return 0
}

func TestScanDevicesReleasesClient(t *testing.T) {
	f := &fakeClient{results: []ble.ScanResult{{Name: "GoCube_1", RSSI: -60}}}
	useFakeClient(t, f)

	devices, err := ScanDevices(context.Background(), time.Second)
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "GoCube_1", devices[0].Name)
	assert.Equal(t, int16(-60), devices[0].RSSI)
	assert.Equal(t, 1, f.disconnects)
}

func TestConnectMirrorReleasesClientOnFailure(t *testing.T) {
	boom := errors.New("connect failed")
	f := &fakeClient{connectErr: boom}
	useFakeClient(t, f)

	m, err := ConnectMirror(context.Background(), Device{Name: "GoCube_1"})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, m)
	assert.Equal(t, 1, f.disconnects)
}

func TestConnectFirstMirrorNoDevice(t *testing.T) {
	useFakeClient(t, &fakeClient{})
	_, err := ConnectFirstMirror(context.Background())
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestConnectMirrorRelaysRotations(t *testing.T) {
	f := &fakeClient{}
	useFakeClient(t, f)

	m, err := ConnectMirror(context.Background(), Device{Name: "GoCube_1"})
	require.NoError(t, err)
	assert.True(t, f.connected)
	assert.Equal(t, "GoCube_fake", m.DeviceName())
	assert.Equal(t, 55, m.Battery())

	payload, err := protocol.EncodeRotation(cube.Red, false)
	require.NoError(t, err)
	msg, err := protocol.Parse(protocol.Encode(protocol.MsgTypeRotation, payload))
	require.NoError(t, err)
	f.onMessage(msg)
	f.onMessage(&protocol.Message{Type: protocol.MsgTypeBattery, Payload: []byte{0x40}})

	require.NoError(t, m.Close())
	var got []Move
	for mv := range m.Moves() {
		got = append(got, mv)
	}
	assert.Equal(t, "R'", FormatMoves(got))
	assert.Equal(t, 1, f.disconnects)
}
