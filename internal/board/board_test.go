package board_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grrosti/memory-game/internal/board"
)

var fruits = []string{"apple", "banana", "cherry", "date", "grape", "kiwi", "lemon", "mango"}

func newBoard(t *testing.T, rows, cols int, values []string, seed uint64) *board.Board {
	t.Helper()
	b, err := board.New(rows, cols, values, "test", board.WithRand(board.NewRand(seed)))
	require.NoError(t, err)
	return b
}

func layout(t *testing.T, b *board.Board) [][]string {
	t.Helper()
	out := make([][]string, b.Rows)
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			v, err := b.CellValue(board.Coord{Row: r, Col: c})
			require.NoError(t, err)
			out[r] = append(out[r], v)
		}
	}
	return out
}

// positions groups coordinates by value.
func positions(t *testing.T, b *board.Board) map[string][]board.Coord {
	t.Helper()
	out := map[string][]board.Coord{}
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			at := board.Coord{Row: r, Col: c}
			v, err := b.CellValue(at)
			require.NoError(t, err)
			out[v] = append(out[v], at)
		}
	}
	return out
}

func TestNewDealsPairsFaceDown(t *testing.T) {
	dims := []struct{ rows, cols int }{{2, 2}, {2, 3}, {4, 4}, {1, 2}, {3, 4}, {2, 8}}
	for _, d := range dims {
		for seed := uint64(0); seed < 20; seed++ {
			b := newBoard(t, d.rows, d.cols, fruits, seed)
			pos := positions(t, b)
			assert.Len(t, pos, d.rows*d.cols/2)
			for v, cs := range pos {
				assert.Lenf(t, cs, 2, "value %q", v)
				assert.Contains(t, fruits, v)
				for _, c := range cs {
					assert.False(t, b.IsFaceUp(c))
				}
			}
			assert.Equal(t, 0, b.Guesses())
			assert.Equal(t, 0, b.PairsFound())
			assert.False(t, b.IsGameOver())
		}
	}
}

func TestNewIsReproducibleForSeed(t *testing.T) {
	a := newBoard(t, 4, 4, fruits, 42)
	b := newBoard(t, 4, 4, fruits, 42)
	if diff := cmp.Diff(layout(t, a), layout(t, b)); diff != "" {
		t.Fatalf("same seed, different layout (-a +b):\n%s", diff)
	}
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewDoesNotMutatePool(t *testing.T) {
	pool := append([]string(nil), fruits...)
	newBoard(t, 2, 3, pool, 7)
	assert.Equal(t, fruits, pool)
}

func TestNewCountsDuplicatesOnce(t *testing.T) {
	_, err := board.New(2, 2, []string{"a", "a", "a"}, "dup")
	require.ErrorIs(t, err, board.ErrInsufficientValues)

	b := newBoard(t, 2, 2, []string{"a", "a", "b"}, 1)
	assert.Len(t, positions(t, b), 2)
}

func TestNewRejectsBadDimensions(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
	}{
		{"odd product", 3, 3},
		{"zero rows", 0, 2},
		{"negative cols", 2, -2},
		{"one by one", 1, 1},
		{"overflow", math.MaxInt/2 + 1, 3},
		{"overflow to zero", math.MaxInt/2 + 1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := board.New(tc.rows, tc.cols, fruits, "fruits")
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, board.ErrInvalidDimensions), "got %v", err)
		})
	}
}

func TestNewRejectsSmallPool(t *testing.T) {
	_, err := board.New(2, 2, []string{"a"}, "tiny")
	require.ErrorIs(t, err, board.ErrInsufficientValues)
	assert.Contains(t, err.Error(), "need at least 2")

	_, err = board.New(4, 6, fruits, "fruits")
	require.ErrorIs(t, err, board.ErrInsufficientValues)
}

func TestTwoByTwoScenario(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		b := newBoard(t, 2, 2, []string{"a", "b"}, seed)
		pos := positions(t, b)
		require.Len(t, pos["a"], 2)
		require.Len(t, pos["b"], 2)

		a1, a2 := pos["a"][0], pos["a"][1]
		require.NoError(t, b.FlipCell(a1, true))
		require.NoError(t, b.FlipCell(a2, true))
		b.IncrementGuesses()
		require.True(t, b.CheckMatch(a1, a2))
		require.NoError(t, b.MarkMatched(a1, a2))
		assert.Equal(t, 1, b.PairsFound())
		assert.False(t, b.IsGameOver())

		b1, b2 := pos["b"][0], pos["b"][1]
		require.NoError(t, b.FlipCell(b1, true))
		require.NoError(t, b.FlipCell(b2, true))
		b.IncrementGuesses()
		require.NoError(t, b.MarkMatched(b1, b2))
		assert.True(t, b.IsGameOver())
		assert.Equal(t, 2, b.Guesses())
	}
}

func TestOneByTwoIsOverAfterOneMatch(t *testing.T) {
	b := newBoard(t, 1, 2, []string{"a"}, 3)
	x, y := board.Coord{Row: 0, Col: 0}, board.Coord{Row: 0, Col: 1}
	require.NoError(t, b.FlipCell(x, true))
	require.NoError(t, b.FlipCell(y, true))
	require.NoError(t, b.MarkMatched(x, y))
	assert.True(t, b.IsGameOver())
}

func TestCheckMatchIsSymmetric(t *testing.T) {
	b := newBoard(t, 4, 4, fruits, 11)
	var all []board.Coord
	for r := 0; r < b.Rows; r++ {
		for c := 0; c < b.Cols; c++ {
			all = append(all, board.Coord{Row: r, Col: c})
		}
	}
	for _, x := range all {
		for _, y := range all {
			if x == y {
				continue
			}
			assert.Equal(t, b.CheckMatch(x, y), b.CheckMatch(y, x))
		}
	}
	assert.False(t, b.CheckMatch(board.Coord{Row: -1}, all[0]))
}

func TestIsValidSelection(t *testing.T) {
	b := newBoard(t, 2, 3, fruits, 5)

	ok, why := b.IsValidSelection(board.Coord{Row: 1, Col: 2})
	assert.True(t, ok)
	assert.Equal(t, board.ReasonNone, why)
	assert.NoError(t, why.Err())

	for _, c := range []board.Coord{{Row: -1, Col: 0}, {Row: 2, Col: 0}, {Row: 0, Col: 3}, {Row: 0, Col: -1}} {
		ok, why = b.IsValidSelection(c)
		assert.False(t, ok)
		assert.Equal(t, board.ReasonOutOfBounds, why)
		assert.ErrorIs(t, why.Err(), board.ErrOutOfBounds)
	}

	require.NoError(t, b.FlipCell(board.Coord{Row: 0, Col: 0}, true))
	ok, why = b.IsValidSelection(board.Coord{Row: 0, Col: 0})
	assert.False(t, ok)
	assert.Equal(t, board.ReasonAlreadyFaceUp, why)
	assert.Equal(t, "That cell is already face-up.", why.Message())
}

func TestHideCellsTurnsBothFaceDown(t *testing.T) {
	b := newBoard(t, 2, 2, []string{"a", "b"}, 9)
	pos := positions(t, b)
	x, y := pos["a"][0], pos["b"][0]

	// one up, one down
	require.NoError(t, b.FlipCell(x, true))
	require.NoError(t, b.HideCells(x, y))
	assert.False(t, b.IsFaceUp(x))
	assert.False(t, b.IsFaceUp(y))

	// both up
	require.NoError(t, b.FlipCell(x, true))
	require.NoError(t, b.FlipCell(y, true))
	require.NoError(t, b.HideCells(x, y))
	assert.False(t, b.IsFaceUp(x))
	assert.False(t, b.IsFaceUp(y))

	assert.ErrorIs(t, b.HideCells(x, board.Coord{Row: 5, Col: 5}), board.ErrOutOfBounds)
}

func TestHideCellsKeepsMatchedFaceUp(t *testing.T) {
	b := newBoard(t, 2, 2, []string{"a", "b"}, 4)
	pos := positions(t, b)
	a1, a2 := pos["a"][0], pos["a"][1]
	require.NoError(t, b.FlipCell(a1, true))
	require.NoError(t, b.FlipCell(a2, true))
	require.NoError(t, b.MarkMatched(a1, a2))

	assert.ErrorIs(t, b.HideCells(a1, pos["b"][0]), board.ErrAlreadyMatched)
	assert.True(t, b.IsFaceUp(a1))
}

func TestMarkMatchedLocksCells(t *testing.T) {
	b := newBoard(t, 2, 2, []string{"a", "b"}, 2)
	pos := positions(t, b)
	a1, a2 := pos["a"][0], pos["a"][1]
	require.NoError(t, b.FlipCell(a1, true))
	require.NoError(t, b.FlipCell(a2, true))

	before := b.PairsFound()
	require.NoError(t, b.MarkMatched(a1, a2))
	assert.Equal(t, before+1, b.PairsFound())

	for _, c := range []board.Coord{a1, a2} {
		ok, why := b.IsValidSelection(c)
		assert.False(t, ok)
		assert.Equal(t, board.ReasonAlreadyFaceUp, why)
		cell, err := b.Cell(c)
		require.NoError(t, err)
		assert.True(t, cell.Matched)
	}

	assert.ErrorIs(t, b.MarkMatched(a1, a2), board.ErrAlreadyMatched)
	assert.Equal(t, before+1, b.PairsFound())
}

func TestMarkMatchedRejectsBadPairs(t *testing.T) {
	b := newBoard(t, 2, 2, []string{"a", "b"}, 8)
	pos := positions(t, b)
	a1, a2, b1 := pos["a"][0], pos["a"][1], pos["b"][0]

	assert.ErrorIs(t, b.MarkMatched(a1, a2), board.ErrFaceDown)
	assert.ErrorIs(t, b.MarkMatched(a1, a1), board.ErrSameCell)
	assert.ErrorIs(t, b.MarkMatched(a1, board.Coord{Row: 9}), board.ErrOutOfBounds)

	require.NoError(t, b.FlipCell(a1, true))
	require.NoError(t, b.FlipCell(b1, true))
	assert.ErrorIs(t, b.MarkMatched(a1, b1), board.ErrNotAMatch)
	assert.Equal(t, 0, b.PairsFound())
	assert.False(t, b.IsGameOver())
}

func TestGameOverStaysOver(t *testing.T) {
	b := newBoard(t, 2, 4, fruits, 13)
	pos := positions(t, b)
	for _, cs := range pos {
		require.False(t, b.IsGameOver())
		require.NoError(t, b.FlipCell(cs[0], true))
		require.NoError(t, b.FlipCell(cs[1], true))
		b.IncrementGuesses()
		require.NoError(t, b.MarkMatched(cs[0], cs[1]))
	}
	assert.True(t, b.IsGameOver())
	assert.Equal(t, b.TotalPairs(), b.PairsFound())

	// Further guesses and failed mutations do not reopen the game.
	b.IncrementGuesses()
	for _, cs := range pos {
		_ = b.HideCells(cs[0], cs[1])
		_ = b.MarkMatched(cs[0], cs[1])
	}
	assert.True(t, b.IsGameOver())
}

func TestCellValueIgnoresVisibility(t *testing.T) {
	b := newBoard(t, 2, 2, []string{"a", "b"}, 6)
	c := board.Coord{Row: 1, Col: 1}
	down, err := b.CellValue(c)
	require.NoError(t, err)
	require.NoError(t, b.FlipCell(c, true))
	up, err := b.CellValue(c)
	require.NoError(t, err)
	assert.Equal(t, down, up)

	_, err = b.CellValue(board.Coord{Row: 2, Col: 0})
	assert.ErrorIs(t, err, board.ErrOutOfBounds)
	assert.ErrorIs(t, b.FlipCell(board.Coord{Row: 0, Col: 2}, true), board.ErrOutOfBounds)
}

func TestFlipCellKeepsMatchedFaceUp(t *testing.T) {
	b := newBoard(t, 2, 2, []string{"a", "b"}, 10)
	pos := positions(t, b)
	a1, a2 := pos["a"][0], pos["a"][1]
	require.NoError(t, b.FlipCell(a1, true))
	require.NoError(t, b.FlipCell(a2, true))
	require.NoError(t, b.MarkMatched(a1, a2))

	assert.ErrorIs(t, b.FlipCell(a1, false), board.ErrAlreadyMatched)
	assert.True(t, b.IsFaceUp(a1))
	ok, why := b.IsValidSelection(a1)
	assert.False(t, ok)
	assert.Equal(t, board.ReasonAlreadyFaceUp, why)

	// flipping face-up again is harmless
	assert.NoError(t, b.FlipCell(a1, true))

	// unmatched cells still flip both ways
	b1 := pos["b"][0]
	require.NoError(t, b.FlipCell(b1, true))
	require.NoError(t, b.FlipCell(b1, false))
	assert.False(t, b.IsFaceUp(b1))
}
