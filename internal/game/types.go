package game

import "fmt"

// Team identifies a side. Built-in layouts use 0 and 1, but nothing in the
// engine assumes exactly two teams: the legality filter treats every other
// team as the opponent.
type Team int

func (t Team) String() string { return fmt.Sprintf("team %d", t) }

// PieceID tags a piece type and keys its entry in the rule set.
type PieceID string

const (
	Rook   PieceID = "R"
	Knight PieceID = "N"
	Bishop PieceID = "B"
	Queen  PieceID = "Q"
	King   PieceID = "K"
	Pawn   PieceID = "P"
)

// Flag encodes per-piece variant state, e.g. whether a pawn may still take
// its double step.
type Flag uint8

const (
	FlagFirstMove Flag = iota
	FlagCastleShort
	FlagCastleLong
)

func (f Flag) String() string {
	switch f {
	case FlagFirstMove:
		return "FirstMove"
	case FlagCastleShort:
		return "CastleShort"
	case FlagCastleLong:
		return "CastleLong"
	default:
		return fmt.Sprintf("flag(%d)", f)
	}
}

// FlagList is a small set of flags stored as a slice.
type FlagList []Flag

func (fl FlagList) Contains(target Flag) bool {
	for _, f := range fl {
		if f == target {
			return true
		}
	}
	return false
}

func (fl FlagList) Without(target Flag) FlagList {
	if len(fl) == 0 {
		return nil
	}
	out := make(FlagList, 0, len(fl))
	for _, f := range fl {
		if f != target {
			out = append(out, f)
		}
	}
	return out
}

func (fl FlagList) Clone() FlagList {
	if len(fl) == 0 {
		return nil
	}
	out := make(FlagList, len(fl))
	copy(out, fl)
	return out
}

func (fl FlagList) Strings() []string {
	if len(fl) == 0 {
		return nil
	}
	out := make([]string, len(fl))
	for i, f := range fl {
		out[i] = f.String()
	}
	return out
}

// Piece is a single piece instance. It is owned by exactly one board cell
// at a time; relocations move the same instance, never a copy.
type Piece struct {
	ID    PieceID
	Team  Team
	Flags FlagList
}

// NewPiece builds a piece carrying the initial flags for its id.
func NewPiece(id PieceID, team Team) *Piece {
	return &Piece{ID: id, Team: team, Flags: InitialFlags(id)}
}

func (p *Piece) HasFlag(f Flag) bool { return p.Flags.Contains(f) }

func (p *Piece) ClearFlag(f Flag) { p.Flags = p.Flags.Without(f) }

func (p *Piece) clone() *Piece {
	if p == nil {
		return nil
	}
	out := *p
	out.Flags = p.Flags.Clone()
	return &out
}

// Move relocates the occupant of From to To. Waypoints are reserved for
// multi-leg moves; generation never fills them.
type Move struct {
	From      Coord
	To        Coord
	Waypoints []Coord
}
