package ui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// HighlightID returns an ID with its unique prefix highlighted.
func HighlightID(id string, prefixLen int) string {
	if id == "" {
		return id
	}

	if prefixLen <= 0 || prefixLen > len(id) {
		return id
	}

	if !ColorEnabled() {
		return id
	}

	prefix := id[:prefixLen]
	suffix := id[prefixLen:]
	return ansiBold + ansiCyan + prefix + ansiReset + suffix
}

// ColorEnabled reports whether stdout should receive ANSI styling.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrefixLength looks up an ID in a map keyed by lowercased IDs.
func PrefixLength(lengths map[string]int, id string) int {
	if id == "" || lengths == nil {
		return 0
	}
	return lengths[strings.ToLower(id)]
}

// Highlighter returns a function that highlights IDs using lengths.
func Highlighter(lengths map[string]int, highlight func(string, int) string) func(string) string {
	return func(id string) string {
		return highlight(id, PrefixLength(lengths, id))
	}
}
