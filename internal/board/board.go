// internal/board/board.go
//
// Board engine for a single memory game.
// Responsibilities:
//   - Build a shuffled grid where every selected value appears exactly twice.
//   - Answer selection/match/game-over queries without side effects.
//   - Apply flips, confirmed matches and reverts, keeping the counters honest.
//
// Notes:
//   - The engine performs no I/O and holds no locks; one goroutine drives it.
//   - The turn protocol (pick, pick, count, check, match-or-hide) belongs to
//     the caller; see session.Turn.
//   - MarkMatched, HideCells and FlipCell re-check state instead of trusting
//     the caller; a matched pair can never be turned face-down again.

package board

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
)

// Option configures New.
type Option func(*options)

type options struct {
	rng *rand.Rand
}

// WithRand makes New draw and shuffle values from r.
// Tests pass a fixed-seed source to get reproducible layouts.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// NewRand returns a PCG-backed source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed returns a seed from crypto/rand.
func RandomSeed() uint64 {
	var b [8]byte
	_, _ = crand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// New constructs a board of rows x cols cells from the values pool.
//
// Validation rules:
//   - rows and cols must be positive, rows*cols must fit in an int and be
//     even (ErrInvalidDimensions).
//   - values must hold at least rows*cols/2 distinct entries (ErrInsufficientValues).
//
// Exactly rows*cols/2 distinct values are sampled without replacement,
// each is duplicated, and the pairs are dealt into a uniformly random
// permutation. Every cell starts face-down.
func New(rows, cols int, values []string, category string, opts ...Option) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: rows and columns must be positive, got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%w: %dx%d cells overflow int", ErrInvalidDimensions, rows, cols)
	}
	if (rows*cols)%2 != 0 {
		return nil, fmt.Errorf("%w: rows*cols must be even, got %dx%d", ErrInvalidDimensions, rows, cols)
	}

	pool := distinct(values)
	need := rows * cols / 2
	if len(pool) < need {
		return nil, fmt.Errorf("%w: have %d for a %d-cell grid, need at least %d",
			ErrInsufficientValues, len(pool), rows*cols, need)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = NewRand(RandomSeed())
	}

	// Sample without replacement: a full shuffle then a prefix is uniform.
	o.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	selected := pool[:need]

	deck := make([]string, 0, rows*cols)
	deck = append(deck, selected...)
	deck = append(deck, selected...)
	o.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	cells := make([]Cell, len(deck))
	for i, v := range deck {
		cells[i] = Cell{Value: v}
	}
	return &Board{
		ID:       uuid.NewString(),
		Rows:     rows,
		Cols:     cols,
		Category: category,
		cells:    cells,
	}, nil
}

// distinct returns the unique entries of values in first-seen order.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// InBounds reports whether c lies inside the grid.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.Rows && c.Col >= 0 && c.Col < b.Cols
}

func (b *Board) at(c Coord) *Cell { return &b.cells[c.Row*b.Cols+c.Col] }

// Cell returns a copy of the cell at c.
func (b *Board) Cell(c Coord) (Cell, error) {
	if !b.InBounds(c) {
		return Cell{}, ErrOutOfBounds
	}
	return *b.at(c), nil
}

// CellValue returns the stored value at c regardless of visibility.
func (b *Board) CellValue(c Coord) (string, error) {
	if !b.InBounds(c) {
		return "", ErrOutOfBounds
	}
	return b.at(c).Value, nil
}

// IsFaceUp reports whether the cell at c is showing. Out-of-bounds is false.
func (b *Board) IsFaceUp(c Coord) bool {
	return b.InBounds(c) && b.at(c).FaceUp
}

// CheckMatch reports whether a and b hold equal values.
// Out-of-bounds coordinates never match.
func (b *Board) CheckMatch(a, c Coord) bool {
	if !b.InBounds(a) || !b.InBounds(c) {
		return false
	}
	return b.at(a).Value == b.at(c).Value
}

// IsGameOver reports whether every pair has been found.
func (b *Board) IsGameOver() bool { return b.pairsFound*2 == b.Rows*b.Cols }

// PairsFound is the number of confirmed matches so far.
func (b *Board) PairsFound() int { return b.pairsFound }

// TotalPairs is the number of pairs on the board.
func (b *Board) TotalPairs() int { return b.Rows * b.Cols / 2 }

// Guesses is the number of completed two-cell selections.
func (b *Board) Guesses() int { return b.guesses }

// FlipCell sets the visibility of the cell at c.
// A matched cell cannot be turned face-down.
func (b *Board) FlipCell(c Coord, faceUp bool) error {
	if !b.InBounds(c) {
		return ErrOutOfBounds
	}
	cell := b.at(c)
	if !faceUp && cell.Matched {
		return ErrAlreadyMatched
	}
	cell.FaceUp = faceUp
	return nil
}

// MarkMatched records a confirmed pair and leaves both cells face-up for good.
// Both cells must be distinct, in bounds, face-up, not yet matched and equal;
// otherwise an error is returned and nothing changes.
func (b *Board) MarkMatched(a, c Coord) error {
	if err := b.checkPair(a, c); err != nil {
		return err
	}
	ca, cc := b.at(a), b.at(c)
	if !ca.FaceUp || !cc.FaceUp {
		return ErrFaceDown
	}
	if ca.Value != cc.Value {
		return fmt.Errorf("%w: %q vs %q", ErrNotAMatch, ca.Value, cc.Value)
	}
	ca.Matched, cc.Matched = true, true
	b.pairsFound++
	return nil
}

// HideCells turns both cells face-down regardless of their prior visibility.
// Matched cells stay face-up; hiding one is an error and nothing changes.
func (b *Board) HideCells(a, c Coord) error {
	if !b.InBounds(a) || !b.InBounds(c) {
		return ErrOutOfBounds
	}
	ca, cc := b.at(a), b.at(c)
	if ca.Matched || cc.Matched {
		return ErrAlreadyMatched
	}
	ca.FaceUp, cc.FaceUp = false, false
	return nil
}

// IncrementGuesses counts one completed two-cell selection.
func (b *Board) IncrementGuesses() { b.guesses++ }

// checkPair validates a pair of coordinates for MarkMatched.
func (b *Board) checkPair(a, c Coord) error {
	if !b.InBounds(a) || !b.InBounds(c) {
		return ErrOutOfBounds
	}
	if a == c {
		return ErrSameCell
	}
	if b.at(a).Matched || b.at(c).Matched {
		return ErrAlreadyMatched
	}
	return nil
}
