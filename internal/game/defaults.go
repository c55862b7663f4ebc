package game

// Built-in rule trees for the six classic piece ids, generalized to four
// axes. On boards of extent 1 in z or w the extra directions leave the
// board immediately, so the 8x8x1x1 subset plays standard chess minus
// castling and en passant.

// InitialFlags returns the flags a freshly created piece of the given id
// starts with.
func InitialFlags(id PieceID) FlagList {
	switch id {
	case Pawn:
		return FlagList{FlagFirstMove}
	case King:
		return FlagList{FlagCastleShort, FlagCastleLong}
	default:
		return nil
	}
}

// DefaultRules builds the rule dictionary for the built-in piece ids.
func DefaultRules() RuleSet {
	return RuleSet{
		Rook:   {slide(axisDirections())},
		Bishop: {slide(diagonalDirections())},
		Queen:  {&PathNode{Branches: []Branch{Ref(Rook), Ref(Bishop)}}},
		King:   {&PathNode{Repeat: BoundOf(1), Branches: []Branch{Ref(Rook), Ref(Bishop)}}},
		Knight: {leaps(knightDirections())},
		Pawn:   {pawnTree(0, 1), pawnTree(1, -1)},
	}
}

// slide fans a set of directions out as unbounded rays; the repeat bound on
// the root is inherited by every leaf.
func slide(dirs []Coord) *PathNode {
	return &PathNode{Repeat: Unbounded(), Branches: steps(dirs)}
}

// leaps fans a set of directions out as single steps.
func leaps(dirs []Coord) *PathNode {
	return &PathNode{Repeat: BoundOf(1), Branches: steps(dirs)}
}

func steps(dirs []Coord) []Branch {
	branches := make([]Branch, len(dirs))
	for i := range dirs {
		d := dirs[i]
		branches[i] = Sub(&PathNode{Direction: &d})
	}
	return branches
}

// pawnTree builds one team's pawn alternative: a non-capturing forward
// push, a flag-gated double step that a blocker one square ahead cancels,
// and two diagonal captures gated on an enemy actually standing there.
func pawnTree(team Team, forward int) *PathNode {
	fwd := Coord{Y: forward}
	dbl := Coord{Y: 2 * forward}
	capL := Coord{X: -1, Y: forward}
	capR := Coord{X: 1, Y: forward}
	return &PathNode{
		Conditions: []Condition{TeamIs(team)},
		Branches: []Branch{
			Sub(&PathNode{Repeat: BoundOf(1), Attack: BoundOf(0), Direction: &fwd}),
			Sub(&PathNode{
				Repeat:     BoundOf(1),
				Attack:     BoundOf(0),
				Direction:  &dbl,
				Conditions: []Condition{HasFlag(FlagFirstMove), PieceAt(fwd).Negated()},
			}),
			Sub(&PathNode{
				Repeat:     BoundOf(1),
				Attack:     BoundOf(1),
				Direction:  &capL,
				Conditions: []Condition{EnemyAt(capL)},
			}),
			Sub(&PathNode{
				Repeat:     BoundOf(1),
				Attack:     BoundOf(1),
				Direction:  &capR,
				Conditions: []Condition{EnemyAt(capR)},
			}),
		},
	}
}

var axes = [4]Coord{{X: 1}, {Y: 1}, {Z: 1}, {W: 1}}

// axisDirections enumerates the 8 single-axis unit directions.
func axisDirections() []Coord {
	out := make([]Coord, 0, 8)
	for _, axis := range axes {
		out = append(out, axis, axis.Scale(-1))
	}
	return out
}

// diagonalDirections enumerates the 24 two-axis diagonals: every unordered
// axis pair with every sign combination.
func diagonalDirections() []Coord {
	out := make([]Coord, 0, 24)
	for i := 0; i < len(axes); i++ {
		for j := i + 1; j < len(axes); j++ {
			for _, si := range [2]int{1, -1} {
				for _, sj := range [2]int{1, -1} {
					out = append(out, axes[i].Scale(si).Add(axes[j].Scale(sj)))
				}
			}
		}
	}
	return out
}

// knightDirections enumerates every (2,1) leap within an ordered axis pair.
func knightDirections() []Coord {
	var out []Coord
	for i := 0; i < len(axes); i++ {
		for j := 0; j < len(axes); j++ {
			if i == j {
				continue
			}
			for _, si := range [2]int{1, -1} {
				for _, sj := range [2]int{1, -1} {
					out = append(out, axes[i].Scale(2*si).Add(axes[j].Scale(sj)))
				}
			}
		}
	}
	return out
}

// defaultPlacements lays out the standard two-team arrangement on an
// 8x8x1x1 board.
func defaultPlacements() []PlacedPiece {
	order := []PieceID{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	var out []PlacedPiece
	setup := func(team Team, backRank, pawnRank int) {
		for file, id := range order {
			out = append(out, PlacedPiece{Pos: XY(file, backRank), Piece: NewPiece(id, team)})
		}
		for file := 0; file < 8; file++ {
			out = append(out, PlacedPiece{Pos: XY(file, pawnRank), Piece: NewPiece(Pawn, team)})
		}
	}
	setup(0, 0, 1)
	setup(1, 7, 6)
	return out
}
