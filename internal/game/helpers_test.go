package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func place(id PieceID, team Team, x, y int) PlacedPiece {
	return PlacedPiece{Pos: XY(x, y), Piece: NewPiece(id, team)}
}

func newTestEngine(t *testing.T, size Coord, pieces ...PlacedPiece) *Engine {
	t.Helper()
	eng, err := New(Config{Size: size, Pieces: pieces})
	require.NoError(t, err)
	return eng
}

func size8() Coord { return Coord{X: 8, Y: 8, Z: 1, W: 1} }

func destinations(moves []Move) []Coord {
	out := make([]Coord, len(moves))
	for i, m := range moves {
		out[i] = m.To
	}
	return out
}

// scanOccupied derives the occupancy set by visiting every cell, the slow
// way the index is supposed to mirror.
func scanOccupied(e *Engine) []PlacedPiece {
	var out []PlacedPiece
	e.ForEach(func(pos Coord, pc *Piece) {
		if pc != nil {
			out = append(out, PlacedPiece{Pos: pos, Piece: pc})
		}
	})
	return out
}
