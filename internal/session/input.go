package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grrosti/memory-game/internal/board"
)

var (
	ErrInputFormat = errors.New("enter row and column numbers separated by a space")
	ErrNotNumeric  = errors.New("enter numbers for row and column")
	ErrInputClosed = errors.New("session: input closed")
)

// ParseCoord reads "row col" as typed by a player (1-based) and returns the
// 0-based board coordinate. Bounds are the board's business.
func ParseCoord(line string) (board.Coord, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return board.Coord{}, ErrInputFormat
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return board.Coord{}, ErrNotNumeric
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return board.Coord{}, ErrNotNumeric
	}
	return board.Coord{Row: row - 1, Col: col - 1}, nil
}

// prompter writes a prompt and reads one line of reply.
type prompter struct {
	sc  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{sc: bufio.NewScanner(in), out: out}
}

// ask prints prompt and returns the trimmed reply.
// End of input is ErrInputClosed.
func (p *prompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.sc.Text()), nil
}

// askInt keeps asking until the reply is a whole number.
func (p *prompter) askInt(prompt string) (int, error) {
	for {
		reply, err := p.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(reply)
		if err == nil {
			return n, nil
		}
		p.say("Invalid input. Please enter a whole number.")
	}
}

// say prints one line.
func (p *prompter) say(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
