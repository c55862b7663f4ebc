package game

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Bound is an optional numeric budget for a path node: absent, unbounded,
// or a concrete count.
type Bound struct {
	n         int
	unbounded bool
	set       bool
}

// BoundOf fixes a budget at n.
func BoundOf(n int) Bound { return Bound{n: n, set: true} }

// Unbounded marks a budget with no limit (a slide).
func Unbounded() Bound { return Bound{unbounded: true, set: true} }

// NoBound leaves the budget unset so it can be inherited.
func NoBound() Bound { return Bound{} }

func (b Bound) Set() bool { return b.set }

func (b Bound) IsUnbounded() bool { return b.set && b.unbounded }

// allowsStep reports whether a ray may take its step-th step under this
// repeat bound. An unset bound permits exactly one step.
func (b Bound) allowsStep(step int) bool {
	if !b.set {
		return step <= 1
	}
	if b.unbounded {
		return true
	}
	return step <= b.n
}

// allowsCapture reports whether another capture fits under this attack
// bound given the captures already recorded along the ray. An unset bound
// permits any number.
func (b Bound) allowsCapture(used int) bool {
	if !b.set || b.unbounded {
		return true
	}
	return used < b.n
}

type conditionKind uint8

const (
	condTeam conditionKind = iota
	condFlag
	condPieceAt
	condEnemyAt
)

// Condition is one precondition on a path node. All conditions on a node
// must hold for the node to yield moves; negation inverts only the
// condition's own test.
type Condition struct {
	kind   conditionKind
	team   Team
	flag   Flag
	offset Coord
	negate bool
}

// TeamIs holds when the moving piece belongs to the given team.
func TeamIs(t Team) Condition { return Condition{kind: condTeam, team: t} }

// HasFlag holds when the moving piece carries the flag.
func HasFlag(f Flag) Condition { return Condition{kind: condFlag, flag: f} }

// PieceAt holds when the cell at the relative offset from the origin is
// occupied. Out-of-bounds cells count as empty.
func PieceAt(offset Coord) Condition { return Condition{kind: condPieceAt, offset: offset} }

// EnemyAt holds when the cell at the relative offset holds a piece of a
// different team.
func EnemyAt(offset Coord) Condition { return Condition{kind: condEnemyAt, offset: offset} }

// Negated returns the condition with its test inverted.
func (c Condition) Negated() Condition {
	c.negate = !c.negate
	return c
}

func (c Condition) holds(b *Board, pc *Piece, origin Coord) bool {
	var ok bool
	switch c.kind {
	case condTeam:
		ok = pc.Team == c.team
	case condFlag:
		ok = pc.HasFlag(c.flag)
	case condPieceAt:
		cell := origin.Add(c.offset)
		ok = b.InBounds(cell) && b.pieceAt(cell) != nil
	case condEnemyAt:
		cell := origin.Add(c.offset)
		if b.InBounds(cell) {
			occ := b.pieceAt(cell)
			ok = occ != nil && occ.Team != pc.Team
		}
	}
	if c.negate {
		return !ok
	}
	return ok
}

// Branch is one alternative under a branching path node: either a nested
// sub-path or a reference to another piece type's entire rule tree.
type Branch struct {
	sub *PathNode
	ref PieceID
}

// Sub wraps a nested path node.
func Sub(node *PathNode) Branch { return Branch{sub: node} }

// Ref points at another piece type's rule tree, expressing union and
// inheritance (queen = rook + bishop).
func Ref(id PieceID) Branch { return Branch{ref: id} }

func (br Branch) IsRef() bool { return br.sub == nil }

func (br Branch) Ref() PieceID { return br.ref }

func (br Branch) Node() *PathNode { return br.sub }

// PathNode is one node of a movement rule tree. A node either steps in a
// direction (leaf) or fans out into branches; its repeat and attack budgets
// bind the node and every descendant that has not already inherited a
// value from further out.
type PathNode struct {
	Repeat     Bound
	Attack     Bound
	Conditions []Condition
	Direction  *Coord
	Branches   []Branch
}

// RuleSet maps piece ids to their ordered root path alternatives. It is
// treated as immutable once an engine is built on it.
type RuleSet map[PieceID][]*PathNode

// Lookup finds the rule tree for id; a missing entry is the lazy
// missing-rule failure.
func (rs RuleSet) Lookup(id PieceID) ([]*PathNode, error) {
	roots, ok := rs[id]
	if !ok {
		return nil, errors.Wrapf(ErrMissingRule, "%q", string(id))
	}
	return roots, nil
}

// IDs lists the known piece ids in sorted order.
func (rs RuleSet) IDs() []PieceID {
	ids := maps.Keys(rs)
	slices.Sort(ids)
	return ids
}

// Merge overlays custom entries onto the receiver, returning a new set.
// A custom entry replaces the whole tree for its id.
func (rs RuleSet) Merge(custom RuleSet) RuleSet {
	out := make(RuleSet, len(rs)+len(custom))
	for id, roots := range rs {
		out[id] = roots
	}
	for id, roots := range custom {
		out[id] = roots
	}
	return out
}
