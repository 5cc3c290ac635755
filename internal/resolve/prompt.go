package resolve

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Prompter asks the user for a variable's value.
type Prompter interface {
	Ask(name string) (string, error)
}

// LinePrompter reads one line per question from r and writes prompts to w.
type LinePrompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewLinePrompter returns a prompter reading answers from r.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

// Ask prints "NAME: " and returns the line typed in response, without the
// trailing newline. An empty line is an empty value.
func (p *LinePrompter) Ask(name string) (string, error) {
	fmt.Fprintf(p.w, "%s: ", name)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("reading value: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// NewTerminalPrompter returns a LinePrompter on in, provided in is a terminal.
func NewTerminalPrompter(in *os.File, w io.Writer) (*LinePrompter, error) {
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return nil, fmt.Errorf("interactive mode needs a terminal on stdin")
	}
	return NewLinePrompter(in, w), nil
}
