// internal/session/session.go
//
// Interactive session loop for the memory game.
// Responsibilities:
//   - Ask for the grid size and category when they were not preset.
//   - Build the board and run guess cycles until every pair is found.
//   - Re-prompt on malformed, out-of-bounds, face-up or repeated picks.
//   - Hold a mismatched pair on screen for RevealDelay before hiding it.
//   - Print the solved board and the total number of guesses.
//
// Notes:
//   - Coordinates are typed 1-based and converted to the board's 0-based ones.
//   - The context only interrupts the reveal pause; reads block until a line
//     or EOF arrives.

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/grrosti/memory-game/internal/board"
	"github.com/grrosti/memory-game/internal/categories"
)

// Options configures Run. Zero Rows/Cols and an empty Category are asked for.
type Options struct {
	In          io.Reader
	Out         io.Writer
	Catalog     *categories.Catalog
	Rows        int
	Cols        int
	Category    string
	RevealDelay time.Duration
	Rand        *rand.Rand // nil deals from a randomly seeded source

	// Sleep waits d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Result summarizes a finished game.
type Result struct {
	BoardID  string
	Category string
	Rows     int
	Cols     int
	Guesses  int
	Pairs    int
	Elapsed  time.Duration
}

// Session is one game played over a text stream.
type Session struct {
	opts Options
	p    *prompter
	r    *Renderer
}

// New prepares a session. Run starts it.
func New(opts Options) *Session {
	if opts.Sleep == nil {
		opts.Sleep = sleepCtx
	}
	return &Session{
		opts: opts,
		p:    newPrompter(opts.In, opts.Out),
		r:    NewRenderer(opts.Out),
	}
}

// Run plays one full game and returns its summary.
func Run(ctx context.Context, opts Options) (Result, error) {
	return New(opts).Run(ctx)
}

// Run sets the board up, loops guess cycles until game over and reports
// the total. Input ending early returns ErrInputClosed.
func (s *Session) Run(ctx context.Context) (Result, error) {
	s.p.say("Welcome to the Memory Game!")

	rows, cols, err := s.dimensions()
	if err != nil {
		return Result{}, err
	}
	cat, err := s.category()
	if err != nil {
		return Result{}, err
	}

	var bopts []board.Option
	if s.opts.Rand != nil {
		bopts = append(bopts, board.WithRand(s.opts.Rand))
	}
	b, err := board.New(rows, cols, cat.Values, cat.Name, bopts...)
	if err != nil {
		return Result{}, fmt.Errorf("create board: %w", err)
	}

	log.Info().Str("board", b.ID).Str("category", b.Category).
		Int("rows", rows).Int("cols", cols).Msg("game started")
	start := time.Now()

	s.p.say("\nStarting the game! Find the matching pairs.")
	if err := s.play(ctx, b); err != nil {
		log.Warn().Err(err).Str("board", b.ID).Int("guesses", b.Guesses()).Msg("game aborted")
		return Result{}, err
	}

	res := Result{
		BoardID:  b.ID,
		Category: b.Category,
		Rows:     b.Rows,
		Cols:     b.Cols,
		Guesses:  b.Guesses(),
		Pairs:    b.PairsFound(),
		Elapsed:  time.Since(start),
	}
	s.r.Draw(b)
	s.p.say("\nCongratulations! You found all the pairs!")
	s.p.say("Total guesses: %d", res.Guesses)

	log.Info().Str("board", b.ID).Int("guesses", res.Guesses).
		Dur("elapsed", res.Elapsed).Msg("game finished")
	return res, nil
}

// play runs guess cycles until the board reports game over.
func (s *Session) play(ctx context.Context, b *board.Board) error {
	turn := NewTurn(b)
	for turn.Phase() != PhaseGameOver {
		s.r.Draw(b)
		s.p.say("Guesses: %d", b.Guesses())

		s.p.say("\nSelect the first card (row col):")
		if err := s.pick(turn); err != nil {
			return err
		}
		s.r.Draw(b, turn.Pending()...)

		s.p.say("\nSelect the second card (row col):")
		if err := s.pick(turn); err != nil {
			return err
		}
		s.r.Draw(b, turn.Pending()...)

		out, err := turn.Resolve(func() error {
			s.p.say("No match. Cards will flip back.")
			return s.opts.Sleep(ctx, s.opts.RevealDelay)
		})
		if err != nil {
			return err
		}
		if out.Match {
			s.p.say("Match found!")
		}
		log.Debug().Str("board", b.ID).Int("guess", b.Guesses()).Bool("match", out.Match).
			Int("pairs", b.PairsFound()).Msg("guess resolved")

		if err := turn.Next(); err != nil {
			return err
		}
	}
	return nil
}

// pick asks until turn accepts a coordinate.
func (s *Session) pick(turn *Turn) error {
	for {
		line, err := s.p.ask("> ")
		if err != nil {
			return err
		}
		c, err := ParseCoord(line)
		if err != nil {
			s.p.say("Invalid input. Please %s.", err)
			continue
		}
		err = turn.Select(c)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, board.ErrOutOfBounds):
			s.p.say("Invalid input: %s", board.ReasonOutOfBounds.Message())
		case errors.Is(err, board.ErrAlreadyFaceUp):
			s.p.say("Invalid input: %s", board.ReasonAlreadyFaceUp.Message())
		case errors.Is(err, ErrSameCard):
			s.p.say("Invalid input: You must select a different card.")
		default:
			return err
		}
	}
}

// dimensions returns the preset size or asks until the player gives a
// positive pair with an even product.
func (s *Session) dimensions() (int, int, error) {
	if s.opts.Rows > 0 && s.opts.Cols > 0 {
		return s.opts.Rows, s.opts.Cols, nil
	}
	for {
		rows, err := s.p.askInt("Enter the number of rows (at least one dimension must be even): ")
		if err != nil {
			return 0, 0, err
		}
		cols, err := s.p.askInt("Enter the number of columns (at least one dimension must be even): ")
		if err != nil {
			return 0, 0, err
		}
		switch {
		case rows <= 0 || cols <= 0:
			s.p.say("Rows and columns must be positive numbers.")
		case rows > math.MaxInt/cols:
			s.p.say("That grid is too large.")
		case (rows*cols)%2 != 0:
			s.p.say("The total number of cells (rows * cols) must be even.")
		default:
			return rows, cols, nil
		}
	}
}

// category returns the preset category or asks for a menu number.
func (s *Session) category() (categories.Category, error) {
	if s.opts.Category != "" {
		return s.opts.Catalog.Lookup(s.opts.Category)
	}
	s.p.say("\nAvailable categories:")
	for i, name := range s.opts.Catalog.Names() {
		s.p.say("%d. %s", i+1, capitalize(name))
	}
	for {
		n, err := s.p.askInt(fmt.Sprintf("Select a category (1-%d): ", s.opts.Catalog.Len()))
		if err != nil {
			return categories.Category{}, err
		}
		cat, err := s.opts.Catalog.At(n)
		if err == nil {
			return cat, nil
		}
		s.p.say("Invalid choice. Please select a number from the list.")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// sleepCtx waits d, returning early with ctx.Err() when ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
