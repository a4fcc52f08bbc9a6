// Package prompt implements the CLI's small interactive surface: numeric
// range prompts with a default, and no-echo secret entry.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // stdin descriptor for terminal detection; -1 when not attached
}

// New returns a Prompter bound to the process stdin and stdout.
func New() *Prompter {
	return &Prompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		fd:  int(os.Stdin.Fd()),
	}
}

// NewWithIO returns a Prompter reading and writing the given streams.
func NewWithIO(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// IntInRange asks for a whole number in [lo, hi], re-asking on bad input.
// An empty line, or end of input, accepts the default.
func (p *Prompter) IntInRange(label string, lo, hi, def int) (int, error) {
	for {
		fmt.Fprintf(p.out, "%s [%d-%d, default %d]: ", label, lo, hi, def)
		line, readErr := p.in.ReadString('\n')
		value := strings.TrimSpace(line)
		if value == "" {
			if readErr != nil && !errors.Is(readErr, io.EOF) {
				return 0, readErr
			}
			return def, nil
		}
		if n, err := strconv.Atoi(value); err == nil && n >= lo && n <= hi {
			return n, nil
		}
		fmt.Fprintf(p.out, "Please enter a whole number between %d and %d.\n", lo, hi)
		if readErr != nil {
			return def, nil
		}
	}
}

// Secret reads a value without echoing when stdin is a terminal, and falls
// back to a plain line read otherwise (pipes, CI).
func (p *Prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.fd >= 0 && term.IsTerminal(p.fd) {
		raw, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
