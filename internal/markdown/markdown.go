// Package markdown renders task descriptions for the terminal.
package markdown

import (
	"strings"
	"sync"

	internalstrings "github.com/amonks/kanban/internal/strings"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

type renderer interface {
	Render(string) (string, error)
}

var (
	rendererMu sync.Mutex
	renderers  = map[int]renderer{}
)

// Render formats markdown text for terminal output, wrapped to width and
// indented by indent spaces. It returns nil for blank input.
func Render(width, indent int, input []byte) []byte {
	value, ok := prepare(input)
	if !ok {
		return nil
	}
	renderWidth := max(width-max(indent, 0), 1)

	rendered := value
	if r := markdownRenderer(renderWidth); r != nil {
		if formatted, err := r.Render(value); err == nil {
			rendered = formatted
		}
	}
	return finish(rendered, indent)
}

// SafeRender is Render, except that a panic inside the renderer falls back
// to the unformatted text.
func SafeRender(width, indent int, input []byte) (out []byte) {
	defer func() {
		if recover() != nil {
			value, ok := prepare(input)
			if !ok {
				out = nil
				return
			}
			out = finish(value, indent)
		}
	}()
	return Render(width, indent, input)
}

func prepare(input []byte) (string, bool) {
	if len(input) == 0 {
		return "", false
	}
	value := internalstrings.NormalizeNewlines(string(input))
	value = internalstrings.TrimTrailingNewlines(value)
	if internalstrings.IsBlank(value) {
		return "", false
	}
	return value, true
}

func finish(rendered string, indent int) []byte {
	rendered = internalstrings.TrimTrailingNewlines(rendered)
	if internalstrings.IsBlank(rendered) {
		return nil
	}
	return []byte(internalstrings.IndentBlock(rendered, indent))
}

func markdownRenderer(width int) renderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if cached, ok := renderers[width]; ok {
		return cached
	}
	style := styles.ASCIIStyleConfig
	style.Item.BlockPrefix = "- "
	style.Document.Margin = uintPtr(0)
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[width] = created
	return created
}

func uintPtr(v uint) *uint {
	return &v
}

// PlainLines splits text into trimmed lines, for places that can't show
// rendered markdown.
func PlainLines(value string) []string {
	value = internalstrings.NormalizeNewlines(value)
	lines := strings.Split(internalstrings.TrimTrailingNewlines(value), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return lines
}
