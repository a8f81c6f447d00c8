// internal/board/types.go
//
// Core type definitions for the memory game board engine.
// Defines:
//   - Coord:  a 0-based grid position.
//   - Cell:   value + visibility of one grid position.
//   - Reason: why a selection was rejected.
//   - Board:  the grid and its counters.

package board

import "errors"

// Construction errors. Both abort board creation.
var (
	ErrInvalidDimensions  = errors.New("board: invalid dimensions")
	ErrInsufficientValues = errors.New("board: not enough distinct values")
)

// Selection and mutation errors.
var (
	ErrOutOfBounds    = errors.New("board: coordinates out of bounds")
	ErrAlreadyFaceUp  = errors.New("board: cell is already face-up")
	ErrFaceDown       = errors.New("board: cell is face-down")
	ErrSameCell       = errors.New("board: both coordinates name the same cell")
	ErrNotAMatch      = errors.New("board: cells do not match")
	ErrAlreadyMatched = errors.New("board: cell is already matched")
)

// Coord addresses a cell. Row and Col are 0-based.
type Coord struct {
	Row int
	Col int
}

// Cell holds the state of one grid position.
type Cell struct {
	Value   string // Value drawn from the category pool.
	FaceUp  bool   // True while the value is visible.
	Matched bool   // True once the cell is part of a confirmed pair.
}

// Reason explains why IsValidSelection refused a coordinate.
// Possible values:
//   - "":                selection is valid.
//   - "out_of_bounds":   row or column outside the grid.
//   - "already_face_up": the cell is already showing its value.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonOutOfBounds   Reason = "out_of_bounds"
	ReasonAlreadyFaceUp Reason = "already_face_up"
)

// Err maps the reason to its sentinel error, or nil for ReasonNone.
func (r Reason) Err() error {
	switch r {
	case ReasonOutOfBounds:
		return ErrOutOfBounds
	case ReasonAlreadyFaceUp:
		return ErrAlreadyFaceUp
	}
	return nil
}

// Message is the text shown to a player who has to pick again.
func (r Reason) Message() string {
	switch r {
	case ReasonOutOfBounds:
		return "Coordinates out of bounds."
	case ReasonAlreadyFaceUp:
		return "That cell is already face-up."
	}
	return ""
}

// Board holds the state of a single memory game.
type Board struct {
	ID       string // Unique board identifier (uuid), used to correlate logs.
	Rows     int    // Number of rows in the grid.
	Cols     int    // Number of columns in the grid.
	Category string // Name of the category the values were drawn from.

	cells      []Cell // Row-major, len == Rows*Cols.
	pairsFound int
	guesses    int
}
