package game

import "errors"

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrMissingRule = errors.New("no movement rule for piece id")
	ErrEmptySquare = errors.New("no piece at square")
	ErrNoHistory   = errors.New("no move to undo")
	ErrBadSize     = errors.New("board size must be at least 1 on every axis")
)
