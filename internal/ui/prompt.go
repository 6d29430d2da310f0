package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter is used to ask the user for confirmation.
type Prompter interface {
	// Confirm asks the user a yes/no question and returns true if they say yes.
	Confirm(message string) (bool, error)
}

// StdioPrompter implements Prompter on a reader and writer, defaulting to
// stdin and stdout.
type StdioPrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm writes message and reads one line of response. Anything other
// than y or yes (any case) is a no, including end of input.
func (p StdioPrompter) Confirm(message string) (bool, error) {
	in, out := p.In, p.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	fmt.Fprintf(out, "%s [y/n]: ", message)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
