package game

import "github.com/pkg/errors"

// PlacedPiece is one entry of the occupancy index: an occupied position and
// the piece standing on it.
type PlacedPiece struct {
	Pos   Coord
	Piece *Piece
}

// Board is a dense 4-axis grid of optional pieces with a sparse occupancy
// index mirroring the occupied cells. Every mutation keeps cells and index
// synchronized; the index is never derived lazily.
type Board struct {
	size     Coord
	cells    [][][][]*Piece
	occupied []PlacedPiece
}

// NewBoard allocates an empty board of the given extents.
func NewBoard(size Coord) (*Board, error) {
	if size.X < 1 || size.Y < 1 || size.Z < 1 || size.W < 1 {
		return nil, errors.Wrapf(ErrBadSize, "size %s", size)
	}
	cells := make([][][][]*Piece, size.X)
	for x := range cells {
		cells[x] = make([][][]*Piece, size.Y)
		for y := range cells[x] {
			cells[x][y] = make([][]*Piece, size.Z)
			for z := range cells[x][y] {
				cells[x][y][z] = make([]*Piece, size.W)
			}
		}
	}
	return &Board{size: size, cells: cells}, nil
}

func (b *Board) Size() Coord { return b.size }

// InBounds reports whether every axis component lies in [0, size).
func (b *Board) InBounds(pos Coord) bool {
	return pos.X >= 0 && pos.X < b.size.X &&
		pos.Y >= 0 && pos.Y < b.size.Y &&
		pos.Z >= 0 && pos.Z < b.size.Z &&
		pos.W >= 0 && pos.W < b.size.W
}

// PieceAt returns the occupant of pos, or nil for an empty cell.
func (b *Board) PieceAt(pos Coord) (*Piece, error) {
	if !b.InBounds(pos) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%s", pos)
	}
	return b.pieceAt(pos), nil
}

// pieceAt reads a cell without a bounds check; callers validate first.
func (b *Board) pieceAt(pos Coord) *Piece {
	return b.cells[pos.X][pos.Y][pos.Z][pos.W]
}

// SetPiece replaces the contents of pos and returns the prior occupant.
// Passing nil clears the cell. The occupancy index is refreshed in the same
// operation: the stale entry for pos is dropped and a fresh one inserted
// when the new value is non-nil.
func (b *Board) SetPiece(pos Coord, pc *Piece) (*Piece, error) {
	if !b.InBounds(pos) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%s", pos)
	}
	prior := b.pieceAt(pos)
	b.setCell(pos, pc)
	return prior, nil
}

// setCell writes a cell and keeps the occupancy index exact.
func (b *Board) setCell(pos Coord, pc *Piece) {
	b.cells[pos.X][pos.Y][pos.Z][pos.W] = pc
	b.indexRemove(pos)
	if pc != nil {
		b.occupied = append(b.occupied, PlacedPiece{Pos: pos, Piece: pc})
	}
}

func (b *Board) indexRemove(pos Coord) {
	for i := range b.occupied {
		if b.occupied[i].Pos == pos {
			last := len(b.occupied) - 1
			b.occupied[i] = b.occupied[last]
			b.occupied = b.occupied[:last]
			return
		}
	}
}

// Occupied returns a snapshot of the occupancy index. The copy is the
// caller's; it does not track further mutation.
func (b *Board) Occupied() []PlacedPiece {
	out := make([]PlacedPiece, len(b.occupied))
	copy(out, b.occupied)
	return out
}

// ForEach visits every cell in a fixed nested order: x outermost, then y,
// z, w.
func (b *Board) ForEach(fn func(pos Coord, pc *Piece)) {
	for x := 0; x < b.size.X; x++ {
		for y := 0; y < b.size.Y; y++ {
			for z := 0; z < b.size.Z; z++ {
				for w := 0; w < b.size.W; w++ {
					pos := Coord{X: x, Y: y, Z: z, W: w}
					fn(pos, b.pieceAt(pos))
				}
			}
		}
	}
}

// undoRecord captures the two cells touched by a simulated relocation.
type undoRecord struct {
	src, dst        Coord
	moved, captured *Piece
}

// beginSimulation applies a raw relocation: the occupant of From moves to
// To, overwriting whatever stood there. No flag bookkeeping happens here;
// that belongs to the real apply path. The returned record restores both
// cells exactly.
func (b *Board) beginSimulation(m Move) undoRecord {
	moved := b.pieceAt(m.From)
	captured := b.pieceAt(m.To)
	b.setCell(m.From, nil)
	b.setCell(m.To, moved)
	return undoRecord{src: m.From, dst: m.To, moved: moved, captured: captured}
}

// endSimulation puts both touched cells back, restoring piece identity.
func (b *Board) endSimulation(rec undoRecord) {
	b.setCell(rec.dst, rec.captured)
	b.setCell(rec.src, rec.moved)
}
