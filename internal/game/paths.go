package game

// Path evaluation: the recursive interpreter turning a piece's rule tree
// into candidate destination moves. Recursion depth is bounded by the rule
// tree, not the board.

// budgets carries the repeat and attack bounds inherited from enclosing
// nodes. A value set further out is never overwritten further in.
type budgets struct {
	repeat Bound
	attack Bound
}

// candidateMoves enumerates every square reachable by at least one path in
// the piece's rule tree, without king-safety filtering. The list may
// contain duplicates.
func (e *Engine) candidateMoves(pc *Piece, origin Coord) ([]Move, error) {
	roots, err := e.rules.Lookup(pc.ID)
	if err != nil {
		return nil, err
	}
	var moves []Move
	for _, node := range roots {
		more, err := e.walkPath(pc, origin, node, budgets{})
		if err != nil {
			return nil, err
		}
		moves = append(moves, more...)
	}
	return moves, nil
}

func (e *Engine) walkPath(pc *Piece, origin Coord, node *PathNode, inherited budgets) ([]Move, error) {
	for _, cond := range node.Conditions {
		if !cond.holds(e.board, pc, origin) {
			return nil, nil
		}
	}

	if !inherited.repeat.Set() && node.Repeat.Set() {
		inherited.repeat = node.Repeat
	}
	if !inherited.attack.Set() && node.Attack.Set() {
		inherited.attack = node.Attack
	}

	switch {
	case node.Direction != nil:
		return e.walkRay(pc, origin, *node.Direction, inherited), nil
	case len(node.Branches) > 0:
		var moves []Move
		for _, br := range node.Branches {
			more, err := e.walkBranch(pc, origin, br, inherited)
			if err != nil {
				return nil, err
			}
			moves = append(moves, more...)
		}
		return moves, nil
	default:
		return nil, nil
	}
}

func (e *Engine) walkBranch(pc *Piece, origin Coord, br Branch, inherited budgets) ([]Move, error) {
	if !br.IsRef() {
		return e.walkPath(pc, origin, br.Node(), inherited)
	}
	if br.Ref() == pc.ID {
		// Self-reference yields nothing; this is the cycle guard.
		return nil, nil
	}
	roots, err := e.rules.Lookup(br.Ref())
	if err != nil {
		return nil, err
	}
	var moves []Move
	for _, sub := range roots {
		more, err := e.walkPath(pc, origin, sub, inherited)
		if err != nil {
			return nil, err
		}
		moves = append(moves, more...)
	}
	return moves, nil
}

// walkRay steps repeatedly along one direction. Empty cells record a move
// and continue; an ally stops the ray cold; an enemy records a move only
// while the attack budget has room, then stops the ray regardless.
func (e *Engine) walkRay(pc *Piece, origin, dir Coord, bud budgets) []Move {
	var moves []Move
	captures := 0
	for step := 1; bud.repeat.allowsStep(step); step++ {
		pos := origin.Add(dir.Scale(step))
		if !e.board.InBounds(pos) {
			break
		}
		occ := e.board.pieceAt(pos)
		if occ == nil {
			moves = append(moves, Move{From: origin, To: pos})
			continue
		}
		if occ.Team == pc.Team {
			break
		}
		if bud.attack.allowsCapture(captures) {
			moves = append(moves, Move{From: origin, To: pos})
			captures++
		}
		break
	}
	return moves
}
