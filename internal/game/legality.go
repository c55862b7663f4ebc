package game

// King-safety filtering and the per-origin move cache. A candidate is legal
// when, after playing it, no opposing candidate reply lands on one of the
// mover's royal squares.

// royalSquares locates every royal piece belonging to the team in the
// current position.
func (e *Engine) royalSquares(team Team) []Coord {
	var out []Coord
	for _, entry := range e.board.occupied {
		if entry.Piece.Team == team && entry.Piece.ID == e.royal {
			out = append(out, entry.Pos)
		}
	}
	return out
}

// leavesRoyalExposed simulates the candidate on the live board, regenerates
// every other team's unfiltered replies, and tests whether any reply
// captures a royal piece. The simulation is reverted exactly before
// returning, including on error.
func (e *Engine) leavesRoyalExposed(pc *Piece, m Move) (bool, error) {
	rec := e.board.beginSimulation(m)
	defer e.board.endSimulation(rec)

	royals := e.royalSquares(pc.Team)
	if len(royals) == 0 {
		return false, nil
	}

	for _, entry := range e.board.Occupied() {
		if entry.Piece.Team == pc.Team {
			continue
		}
		replies, err := e.candidateMoves(entry.Piece, entry.Pos)
		if err != nil {
			return false, err
		}
		for _, reply := range replies {
			for _, sq := range royals {
				if reply.To == sq {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

// legalMovesAt returns the king-checked move list for one origin, serving
// and filling the per-origin cache. The cache holds until any mutation
// wipes it wholesale.
func (e *Engine) legalMovesAt(origin Coord) ([]Move, error) {
	if cached, ok := e.cache[origin]; ok {
		return cloneMoves(cached), nil
	}

	pc, err := e.board.PieceAt(origin)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return nil, nil
	}

	candidates, err := e.candidateMoves(pc, origin)
	if err != nil {
		return nil, err
	}
	legal := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		exposed, err := e.leavesRoyalExposed(pc, m)
		if err != nil {
			return nil, err
		}
		if !exposed {
			legal = append(legal, m)
		}
	}

	e.cache[origin] = legal
	return cloneMoves(legal), nil
}

// invalidateCache drops every cached list. Coarse on purpose: correctness
// over precision.
func (e *Engine) invalidateCache() {
	e.cache = make(map[Coord][]Move)
}

func cloneMoves(moves []Move) []Move {
	out := make([]Move, len(moves))
	copy(out, moves)
	return out
}
