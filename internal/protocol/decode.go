package protocol

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubesim/internal/cube"
)

var ErrUnknownFace = errors.New("protocol: unknown face code")

// Rotation is a single face turn reported by the cube.
type Rotation struct {
	FaceCode          byte // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte
	Clockwise         bool
	Color             cube.Color // Center color of the turned face
}

// Center colors indexed by FaceCode/2.
var wireColors = [...]cube.Color{
	0: cube.Blue,
	1: cube.Green,
	2: cube.White,
	3: cube.Yellow,
	4: cube.Red,
	5: cube.Orange,
}

// DecodeRotation decodes a rotation payload. Payloads hold pairs of bytes:
// [face_dir] [center_orientation].
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("protocol: rotation payload must have even length, got %d", len(payload))
	}

	out := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]

		// Even codes are clockwise, odd counter-clockwise.
		idx := int(code / 2)
		if idx >= len(wireColors) {
			return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownFace, code)
		}

		out = append(out, Rotation{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Clockwise:         code%2 == 0,
			Color:             wireColors[idx],
		})
	}
	return out, nil
}

// EncodeRotation is the inverse of DecodeRotation for a single turn.
func EncodeRotation(color cube.Color, clockwise bool) ([]byte, error) {
	for i, c := range wireColors {
		if c != color {
			continue
		}
		code := byte(i * 2)
		if !clockwise {
			code++
		}
		return []byte{code, 0}, nil
	}
	return nil, fmt.Errorf("%w: color %d", ErrUnknownFace, color)
}

// DecodeBattery decodes a battery payload into a 0-100 level.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("protocol: battery payload too short")
	}
	return int(payload[0]), nil
}
