package game

import "github.com/pkg/errors"

// ---------------------------
// Engine & construction
// ---------------------------

// Config describes everything an engine is built from. Rules are merged
// over the defaults; Royal names the king-type id the legality filter
// protects and defaults to King.
type Config struct {
	Size   Coord
	Pieces []PlacedPiece
	Rules  RuleSet
	Royal  PieceID
}

// Engine owns the board, its occupancy index, the rule dictionary, and the
// move cache, and is the single entry point for queries and mutation. It is
// not safe for concurrent use; board, index, and cache move as one unit.
type Engine struct {
	board   *Board
	rules   RuleSet
	royal   PieceID
	size    Coord
	setup   []PlacedPiece
	cache   map[Coord][]Move
	history []undoEntry
}

// New builds an engine from a configuration. The engine clones the
// configured pieces, so the caller's placements stay pristine and Reset can
// restore them.
func New(cfg Config) (*Engine, error) {
	if cfg.Royal == "" {
		cfg.Royal = King
	}
	rules := DefaultRules()
	if cfg.Rules != nil {
		rules = rules.Merge(cfg.Rules)
	}
	e := &Engine{
		rules: rules,
		royal: cfg.Royal,
		size:  cfg.Size,
		setup: clonePlacements(cfg.Pieces),
	}
	if err := e.rebuild(); err != nil {
		return nil, err
	}
	return e, nil
}

// NewDefault builds an engine with the standard two-team arrangement on an
// 8x8x1x1 board and the default rules.
func NewDefault() *Engine {
	e, err := New(Config{Size: Coord{X: 8, Y: 8, Z: 1, W: 1}, Pieces: defaultPlacements()})
	if err != nil {
		panic(err) // standard setup cannot fail
	}
	return e
}

func clonePlacements(src []PlacedPiece) []PlacedPiece {
	out := make([]PlacedPiece, len(src))
	for i, pl := range src {
		out[i] = PlacedPiece{Pos: pl.Pos, Piece: pl.Piece.clone()}
	}
	return out
}

func (e *Engine) rebuild() error {
	b, err := NewBoard(e.size)
	if err != nil {
		return err
	}
	for _, pl := range e.setup {
		if !b.InBounds(pl.Pos) {
			return errors.Wrapf(ErrOutOfBounds, "placement %s", pl.Pos)
		}
		b.setCell(pl.Pos, pl.Piece.clone())
	}
	e.board = b
	e.history = nil
	e.invalidateCache()
	return nil
}

// Reset restores the construction layout.
func (e *Engine) Reset() error { return e.rebuild() }

// ---------------------------
// Queries
// ---------------------------

func (e *Engine) Size() Coord { return e.board.Size() }

func (e *Engine) InBounds(pos Coord) bool { return e.board.InBounds(pos) }

// PieceAt returns the occupant of pos, nil for an empty cell.
func (e *Engine) PieceAt(pos Coord) (*Piece, error) { return e.board.PieceAt(pos) }

// Occupied returns a snapshot of every occupied square.
func (e *Engine) Occupied() []PlacedPiece { return e.board.Occupied() }

// ForEach visits every cell in the board's deterministic nested order.
func (e *Engine) ForEach(fn func(pos Coord, pc *Piece)) { e.board.ForEach(fn) }

// RuleIDs lists the piece ids the rule dictionary knows, sorted.
func (e *Engine) RuleIDs() []PieceID { return e.rules.IDs() }

// Royal reports the king-type id the legality filter protects.
func (e *Engine) Royal() PieceID { return e.royal }

// LegalMovesAt returns the king-checked moves for the piece at origin. An
// empty square yields an empty list.
func (e *Engine) LegalMovesAt(origin Coord) ([]Move, error) {
	return e.legalMovesAt(origin)
}

// CandidateMovesAt returns the unfiltered moves for the piece at origin,
// skipping the king-safety check.
func (e *Engine) CandidateMovesAt(origin Coord) ([]Move, error) {
	pc, err := e.board.PieceAt(origin)
	if err != nil || pc == nil {
		return nil, err
	}
	return e.candidateMoves(pc, origin)
}

// LegalMovesForTeam concatenates the legal moves of every piece the team
// has on the board, in board visit order.
func (e *Engine) LegalMovesForTeam(team Team) ([]Move, error) {
	return e.teamMoves(team, e.legalMovesAt)
}

// CandidateMovesForTeam is the unchecked variant of LegalMovesForTeam.
func (e *Engine) CandidateMovesForTeam(team Team) ([]Move, error) {
	return e.teamMoves(team, e.CandidateMovesAt)
}

func (e *Engine) teamMoves(team Team, at func(Coord) ([]Move, error)) ([]Move, error) {
	var moves []Move
	var walkErr error
	e.board.ForEach(func(pos Coord, pc *Piece) {
		if walkErr != nil || pc == nil || pc.Team != team {
			return
		}
		more, err := at(pos)
		if err != nil {
			walkErr = err
			return
		}
		moves = append(moves, more...)
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return moves, nil
}

// ValidateMove reports whether m is legal for the piece at its origin.
// Out-of-bounds coordinates and empty origins are ordinary failures, not
// errors.
func (e *Engine) ValidateMove(m Move) (bool, error) {
	if !e.board.InBounds(m.From) || !e.board.InBounds(m.To) {
		return false, nil
	}
	if e.board.pieceAt(m.From) == nil {
		return false, nil
	}
	legal, err := e.legalMovesAt(m.From)
	if err != nil {
		return false, err
	}
	for _, lm := range legal {
		if lm.To == m.To {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------
// Mutation
// ---------------------------

// SetPiece places pc at pos (nil removes) and returns the prior occupant.
// Every mutation invalidates the whole move cache.
func (e *Engine) SetPiece(pos Coord, pc *Piece) (*Piece, error) {
	prior, err := e.board.SetPiece(pos, pc)
	if err != nil {
		return nil, err
	}
	e.history = append(e.history, placeUndo{pos: pos, prior: prior})
	e.invalidateCache()
	return prior, nil
}

// RemovePiece clears pos and returns what stood there.
func (e *Engine) RemovePiece(pos Coord) (*Piece, error) { return e.SetPiece(pos, nil) }

// ApplyMove relocates the occupant of m.From to m.To unconditionally,
// overwriting the destination, and returns the captured occupant. The
// first-move flag is cleared after any move, legal or not.
func (e *Engine) ApplyMove(m Move) (*Piece, error) {
	if !e.board.InBounds(m.From) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%s", m.From)
	}
	if !e.board.InBounds(m.To) {
		return nil, errors.Wrapf(ErrOutOfBounds, "%s", m.To)
	}
	pc := e.board.pieceAt(m.From)
	if pc == nil {
		return nil, errors.Wrapf(ErrEmptySquare, "%s", m.From)
	}

	hadFirst := pc.HasFlag(FlagFirstMove)
	captured := e.board.pieceAt(m.To)
	e.board.setCell(m.From, nil)
	e.board.setCell(m.To, pc)
	pc.ClearFlag(FlagFirstMove)

	e.history = append(e.history, moveUndo{m: m, moved: pc, captured: captured, hadFirstMove: hadFirst})
	e.invalidateCache()
	return captured, nil
}

// TryMove applies m only when it is legal. An illegal move mutates nothing
// and reports false.
func (e *Engine) TryMove(m Move) (bool, error) {
	ok, err := e.ValidateMove(m)
	if err != nil || !ok {
		return false, err
	}
	if _, err := e.ApplyMove(m); err != nil {
		return false, err
	}
	return true, nil
}

// Undo reverts the most recent successful mutation exactly, captured
// pieces and flags included.
func (e *Engine) Undo() error {
	if len(e.history) == 0 {
		return ErrNoHistory
	}
	last := len(e.history) - 1
	entry := e.history[last]
	e.history = e.history[:last]
	entry.revert(e)
	e.invalidateCache()
	return nil
}

// ---------------------------
// Undo log
// ---------------------------

type undoEntry interface {
	revert(e *Engine)
}

type moveUndo struct {
	m            Move
	moved        *Piece
	captured     *Piece
	hadFirstMove bool
}

func (u moveUndo) revert(e *Engine) {
	e.board.setCell(u.m.To, u.captured)
	e.board.setCell(u.m.From, u.moved)
	if u.hadFirstMove && !u.moved.HasFlag(FlagFirstMove) {
		u.moved.Flags = append(u.moved.Flags, FlagFirstMove)
	}
}

type placeUndo struct {
	pos   Coord
	prior *Piece
}

func (u placeUndo) revert(e *Engine) {
	e.board.setCell(u.pos, u.prior)
}

// ---------------------------
// Serializable state
// ---------------------------

// PieceState is a serializable representation of one placed piece.
type PieceState struct {
	ID    PieceID  `json:"id"`
	Team  Team     `json:"team"`
	Pos   Coord    `json:"pos"`
	Flags []string `json:"flags,omitempty"`
}

// BoardState is a serializable snapshot of the whole position.
type BoardState struct {
	Size   Coord        `json:"size"`
	Royal  PieceID      `json:"royal"`
	Pieces []PieceState `json:"pieces"`
}

// State renders the current position in board visit order.
func (e *Engine) State() BoardState {
	state := BoardState{Size: e.board.Size(), Royal: e.royal}
	e.board.ForEach(func(pos Coord, pc *Piece) {
		if pc == nil {
			return
		}
		state.Pieces = append(state.Pieces, PieceState{
			ID:    pc.ID,
			Team:  pc.Team,
			Pos:   pos,
			Flags: pc.Flags.Strings(),
		})
	})
	return state
}
