package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
)

const DefaultPrompt = "Specify x and y: "

type line struct {
	text string
	err  error
}

// Input reads operator lines, printing a prompt before each read.
// A single goroutine owns the scanner, so a canceled read never loses the next line.
type Input struct {
	scanner *bufio.Scanner
	out     io.Writer
	prompt  string

	start sync.Once
	lines chan line
}

func NewInput(in io.Reader, out io.Writer, prompt string) *Input {
	return &Input{
		scanner: bufio.NewScanner(in),
		out:     out,
		prompt:  prompt,
		lines:   make(chan line),
	}
}

// ReadLine blocks until a full line arrives or ctx is done. It returns io.EOF once the input is closed.
func (that *Input) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("read canceled: %w", err)
	}

	if _, err := io.WriteString(that.out, that.prompt); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	that.start.Do(func() {
		go that.scan()
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("read canceled: %w", ctx.Err())
	case next, ok := <-that.lines:
		if !ok {
			return "", io.EOF
		}

		return next.text, next.err
	}
}

// scan hands lines over one at a time and closes lines at the end of input.
func (that *Input) scan() {
	defer close(that.lines)

	for that.scanner.Scan() {
		that.lines <- line{text: that.scanner.Text()}
	}

	if err := that.scanner.Err(); err != nil {
		that.lines <- line{err: fmt.Errorf("failed to read line: %w", err)}
	}
}
