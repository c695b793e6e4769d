package cubesim

import "math/rand/v2"

// scrambleFaces are the outer faces a scramble draws from.
var scrambleFaces = []Face{FaceR, FaceL, FaceU, FaceD, FaceF, FaceB}

// Scramble returns n random outer-face moves. No face is turned twice in a
// row. A nil r uses the global source.
func Scramble(n int, r *rand.Rand) []Move {
	intn := rand.IntN
	if r != nil {
		intn = r.IntN
	}
	turns := []Turn{CW, CCW, Double}

	moves := make([]Move, 0, n)
	var prev Face
	for len(moves) < n {
		f := scrambleFaces[intn(len(scrambleFaces))]
		if f == prev {
			continue
		}
		prev = f
		moves = append(moves, Move{Face: f, Turn: turns[intn(len(turns))]})
	}
	return moves
}
