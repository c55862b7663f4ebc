package game

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardRejectsBadSize(t *testing.T) {
	tests := []Coord{
		{X: 0, Y: 8, Z: 1, W: 1},
		{X: 8, Y: -1, Z: 1, W: 1},
		{X: 8, Y: 8, Z: 0, W: 1},
		{X: 8, Y: 8, Z: 1, W: 0},
	}
	for _, size := range tests {
		_, err := NewBoard(size)
		assert.True(t, errors.Is(err, ErrBadSize), "size %s", size)
	}
}

func TestBoardInBounds(t *testing.T) {
	b, err := NewBoard(Coord{X: 4, Y: 4, Z: 2, W: 1})
	require.NoError(t, err)

	assert.True(t, b.InBounds(Coord{}))
	assert.True(t, b.InBounds(Coord{X: 3, Y: 3, Z: 1, W: 0}))
	assert.False(t, b.InBounds(Coord{X: 4}))
	assert.False(t, b.InBounds(Coord{X: -1}))
	assert.False(t, b.InBounds(Coord{Z: 2}))
	assert.False(t, b.InBounds(Coord{W: 1}))
}

func TestBoardPieceAtOutOfBounds(t *testing.T) {
	b, err := NewBoard(size8())
	require.NoError(t, err)

	_, err = b.PieceAt(Coord{X: 8})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestBoardSetPieceReturnsPrior(t *testing.T) {
	b, err := NewBoard(size8())
	require.NoError(t, err)

	first := NewPiece(Rook, 0)
	prior, err := b.SetPiece(XY(2, 2), first)
	require.NoError(t, err)
	assert.Nil(t, prior)

	second := NewPiece(Queen, 1)
	prior, err = b.SetPiece(XY(2, 2), second)
	require.NoError(t, err)
	assert.Same(t, first, prior)

	got, err := b.PieceAt(XY(2, 2))
	require.NoError(t, err)
	assert.Same(t, second, got)
}

// The occupancy index must stay a faithful mirror of the cells through an
// arbitrary sequence of placements, captures and clears.
func TestBoardOccupiedTracksCells(t *testing.T) {
	b, err := NewBoard(size8())
	require.NoError(t, err)

	check := func() {
		t.Helper()
		var scanned []PlacedPiece
		for _, pp := range b.Occupied() {
			scanned = append(scanned, pp)
		}
		var walked []PlacedPiece
		b.ForEach(func(pos Coord, pc *Piece) {
			if pc != nil {
				walked = append(walked, PlacedPiece{Pos: pos, Piece: pc})
			}
		})
		require.ElementsMatch(t, walked, scanned)
	}

	set := func(pos Coord, pc *Piece) {
		t.Helper()
		_, err := b.SetPiece(pos, pc)
		require.NoError(t, err)
	}

	set(XY(0, 0), NewPiece(Rook, 0))
	check()
	set(XY(1, 1), NewPiece(Pawn, 0))
	check()
	set(XY(1, 1), NewPiece(Knight, 1)) // replace
	check()
	set(XY(0, 0), nil) // clear
	check()
	set(XY(7, 7), NewPiece(King, 1))
	check()
	set(XY(3, 3), nil) // clearing an empty square is a no-op
	check()
}

func TestBoardOccupiedIsACopy(t *testing.T) {
	b, err := NewBoard(size8())
	require.NoError(t, err)
	_, err = b.SetPiece(XY(0, 0), NewPiece(Rook, 0))
	require.NoError(t, err)

	snap := b.Occupied()
	require.Len(t, snap, 1)
	snap[0] = PlacedPiece{Pos: XY(5, 5), Piece: NewPiece(Queen, 1)}

	again := b.Occupied()
	require.Len(t, again, 1)
	assert.Equal(t, XY(0, 0), again[0].Pos)
}

func TestBoardForEachOrder(t *testing.T) {
	b, err := NewBoard(Coord{X: 2, Y: 2, Z: 1, W: 2})
	require.NoError(t, err)

	var visited []Coord
	b.ForEach(func(pos Coord, _ *Piece) {
		visited = append(visited, pos)
	})
	want := []Coord{
		{X: 0, Y: 0, Z: 0, W: 0},
		{X: 0, Y: 0, Z: 0, W: 1},
		{X: 0, Y: 1, Z: 0, W: 0},
		{X: 0, Y: 1, Z: 0, W: 1},
		{X: 1, Y: 0, Z: 0, W: 0},
		{X: 1, Y: 0, Z: 0, W: 1},
		{X: 1, Y: 1, Z: 0, W: 0},
		{X: 1, Y: 1, Z: 0, W: 1},
	}
	assert.Equal(t, want, visited)
}

func TestSimulationRestoresExactPieces(t *testing.T) {
	b, err := NewBoard(size8())
	require.NoError(t, err)

	rook := NewPiece(Rook, 0)
	pawn := NewPiece(Pawn, 1)
	_, err = b.SetPiece(XY(0, 0), rook)
	require.NoError(t, err)
	_, err = b.SetPiece(XY(0, 5), pawn)
	require.NoError(t, err)

	undo := b.beginSimulation(Move{From: XY(0, 0), To: XY(0, 5)})
	moved, err := b.PieceAt(XY(0, 5))
	require.NoError(t, err)
	assert.Same(t, rook, moved)
	empty, err := b.PieceAt(XY(0, 0))
	require.NoError(t, err)
	assert.Nil(t, empty)

	b.endSimulation(undo)

	back, err := b.PieceAt(XY(0, 0))
	require.NoError(t, err)
	assert.Same(t, rook, back)
	victim, err := b.PieceAt(XY(0, 5))
	require.NoError(t, err)
	assert.Same(t, pawn, victim)
	assert.Len(t, b.Occupied(), 2)
}
