// internal/session/turn.go
//
// Guess-cycle state machine driving a board.Board.
//
//   AwaitingFirst → AwaitingSecond → Resolving → (Matched | Reverted)
//        ↑                                              │
//        └──────────────────── Next ────────────────────┘  … until GameOver
//
// Each cycle follows the same protocol: flip the first pick, flip a different
// second pick, count one guess, then keep a matching pair face-up or hide a
// mismatched one.

package session

import (
	"errors"
	"fmt"

	"github.com/grrosti/memory-game/internal/board"
)

// Phase is the position of a Turn within a guess cycle.
type Phase string

const (
	PhaseAwaitingFirst  Phase = "awaiting_first"
	PhaseAwaitingSecond Phase = "awaiting_second"
	PhaseResolving      Phase = "resolving"
	PhaseMatched        Phase = "matched"
	PhaseReverted       Phase = "reverted"
	PhaseGameOver       Phase = "game_over"
)

var (
	ErrWrongPhase = errors.New("session: operation not allowed in this phase")
	ErrSameCard   = errors.New("session: second pick must differ from the first")
)

// Outcome is the verdict of a resolved guess.
type Outcome struct {
	First  board.Coord
	Second board.Coord
	Match  bool
}

// Turn walks a board through guess cycles.
type Turn struct {
	b      *board.Board
	phase  Phase
	first  board.Coord
	second board.Coord
}

// NewTurn starts a cycle on b. A finished board starts in PhaseGameOver.
func NewTurn(b *board.Board) *Turn {
	t := &Turn{b: b, phase: PhaseAwaitingFirst}
	if b.IsGameOver() {
		t.phase = PhaseGameOver
	}
	return t
}

// Phase reports where the cycle stands.
func (t *Turn) Phase() Phase { return t.phase }

// Pending returns the coordinates picked so far in this cycle.
func (t *Turn) Pending() []board.Coord {
	switch t.phase {
	case PhaseAwaitingSecond:
		return []board.Coord{t.first}
	case PhaseResolving:
		return []board.Coord{t.first, t.second}
	}
	return nil
}

// Select picks the next card of the cycle.
//
// The first pick must be a valid selection. The second must also differ from
// the first; once it is flipped the guess counter moves by one. Rejected
// picks leave the board untouched and wrap board.ErrOutOfBounds,
// board.ErrAlreadyFaceUp or ErrSameCard.
func (t *Turn) Select(c board.Coord) error {
	switch t.phase {
	case PhaseAwaitingFirst:
		if err := t.validate(c); err != nil {
			return err
		}
		if err := t.b.FlipCell(c, true); err != nil {
			return err
		}
		t.first = c
		t.phase = PhaseAwaitingSecond
		return nil

	case PhaseAwaitingSecond:
		if c == t.first {
			return ErrSameCard
		}
		if err := t.validate(c); err != nil {
			return err
		}
		if err := t.b.FlipCell(c, true); err != nil {
			return err
		}
		t.second = c
		t.b.IncrementGuesses()
		t.phase = PhaseResolving
		return nil
	}
	return fmt.Errorf("%w: select in %s", ErrWrongPhase, t.phase)
}

func (t *Turn) validate(c board.Coord) error {
	if ok, why := t.b.IsValidSelection(c); !ok {
		return why.Err()
	}
	return nil
}

// Resolve checks the two picks. A match is recorded and stays face-up.
// On a mismatch pause runs first (so a player can see both values), then
// both cards are hidden. pause may be nil; an error from it aborts the
// resolution with the cards still showing.
func (t *Turn) Resolve(pause func() error) (Outcome, error) {
	if t.phase != PhaseResolving {
		return Outcome{}, fmt.Errorf("%w: resolve in %s", ErrWrongPhase, t.phase)
	}
	out := Outcome{First: t.first, Second: t.second, Match: t.b.CheckMatch(t.first, t.second)}

	if out.Match {
		if err := t.b.MarkMatched(t.first, t.second); err != nil {
			return out, err
		}
		t.phase = PhaseMatched
		return out, nil
	}

	if pause != nil {
		if err := pause(); err != nil {
			return out, err
		}
	}
	if err := t.b.HideCells(t.first, t.second); err != nil {
		return out, err
	}
	t.phase = PhaseReverted
	return out, nil
}

// Next closes a resolved cycle and opens the next one, or ends the game.
func (t *Turn) Next() error {
	if t.phase != PhaseMatched && t.phase != PhaseReverted {
		return fmt.Errorf("%w: next in %s", ErrWrongPhase, t.phase)
	}
	t.first, t.second = board.Coord{}, board.Coord{}
	if t.b.IsGameOver() {
		t.phase = PhaseGameOver
	} else {
		t.phase = PhaseAwaitingFirst
	}
	return nil
}
