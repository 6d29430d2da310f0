// Package editor opens tasks in $EDITOR as TOML frontmatter plus a markdown body.
package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/term"
)

// fallbackEditor runs when neither VISUAL nor EDITOR is set.
const fallbackEditor = "vi"

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Command returns the editor command line split into its program and
// arguments. VISUAL takes precedence over EDITOR, so values like
// "code --wait" work.
func Command() []string {
	for _, name := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(os.Getenv(name)); len(fields) > 0 {
			return fields
		}
	}
	return []string{fallbackEditor}
}

// Edit opens path in the user's editor and waits for it to exit.
// A non-zero exit status is an error, and the edit is discarded.
func Edit(path string) error {
	command := Command()
	cmd := exec.Command(command[0], append(command[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%s exited with status %d; task not saved", command[0], exitErr.ExitCode())
		}
		return fmt.Errorf("run editor %s: %w", command[0], err)
	}

	return nil
}
