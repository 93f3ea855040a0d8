package console

import (
	"SignalConsole/internal/core/ports"
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// readResult carries one input line or the terminal's end state.
type readResult struct {
	line string
	err  error
}

// Terminal implements ports.Terminal over an io.Reader/io.Writer
// pair. A single reader goroutine feeds a channel so ReadLine can
// honor context cancellation.
type Terminal struct {
	out   io.Writer
	lines chan readResult
}

var _ ports.Terminal = (*Terminal)(nil)

// NewTerminal starts the reader goroutine and returns the terminal.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{
		out:   out,
		lines: make(chan readResult),
	}
	go t.readLoop(in)
	return t
}

func (t *Terminal) readLoop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		t.lines <- readResult{line: strings.TrimRight(scanner.Text(), "\r\n")}
	}
	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	t.lines <- readResult{err: err}
	close(t.lines)
}

// ReadLine blocks for the next input line or context cancellation.
func (t *Terminal) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	}
}

// Print writes text to the terminal.
func (t *Terminal) Print(text string) {
	fmt.Fprint(t.out, text)
}

// Printf writes formatted text to the terminal.
func (t *Terminal) Printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}
