package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/kanban/board"
	internalstrings "github.com/amonks/kanban/internal/strings"
	"github.com/amonks/kanban/internal/ui"
)

// TaskForm is the data rendered into the editable TOML template.
type TaskForm struct {
	// IsUpdate is true when editing an existing task.
	IsUpdate bool
	// Title is the task title.
	Title string
	// Priority is low, normal, medium, or high.
	Priority string
	// Due is a YYYY-MM-DD date, or empty for none.
	Due string
	// Completed is only shown for updates.
	Completed bool
	// Description is the markdown body.
	Description string
}

// DefaultCreateForm returns the form for a new task.
func DefaultCreateForm() TaskForm {
	return TaskForm{Priority: string(board.PriorityNormal)}
}

// FormFromTask creates a form from an existing task.
func FormFromTask(t board.Task) TaskForm {
	form := TaskForm{
		IsUpdate:    true,
		Title:       t.Title,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		Description: t.Description,
	}
	if t.DueDate != nil {
		form.Due = ui.FormatDate(t.DueDate.In(time.Local))
	}
	return form
}

var taskTemplate = template.Must(template.New("task").Parse(`title = {{ printf "%q" .Title }}
priority = {{ printf "%q" .Priority }} # low, normal, medium, high
due = {{ printf "%q" .Due }} # YYYY-MM-DD, or "" for none
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- end }}
---
{{ .Description }}
`))

// RenderTaskTOML renders the form as TOML frontmatter followed by the
// description.
func RenderTaskTOML(form TaskForm) (string, error) {
	var buf bytes.Buffer
	if err := taskTemplate.Execute(&buf, form); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTask is the validated result of an editor session.
type ParsedTask struct {
	Title       string
	Priority    board.Priority
	DueDate     *time.Time
	Completed   *bool
	Description string
}

type taskFrontmatter struct {
	Title     string `toml:"title"`
	Priority  string `toml:"priority"`
	Due       string `toml:"due"`
	Completed *bool  `toml:"completed"`
}

// ParseTaskTOML parses editor output. Dates are read in loc.
func ParseTaskTOML(content string, loc *time.Location) (*ParsedTask, error) {
	frontmatter, body := splitFrontmatter(internalstrings.NormalizeNewlines(content))

	var fm taskFrontmatter
	if _, err := toml.Decode(frontmatter, &fm); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}

	title, err := board.ValidateTitle(fm.Title)
	if err != nil {
		return nil, err
	}
	priority, err := board.ValidatePriority(board.Priority(fm.Priority))
	if err != nil {
		return nil, err
	}

	parsed := &ParsedTask{
		Title:       title,
		Priority:    priority,
		Completed:   fm.Completed,
		Description: internalstrings.TrimTrailingNewlines(internalstrings.TrimLeadingNewlines(body)),
	}
	if due := strings.TrimSpace(fm.Due); due != "" {
		date, err := ui.ParseDate(due, loc)
		if err != nil {
			return nil, err
		}
		parsed.DueDate = &date
	}
	return parsed, nil
}

// TaskData converts the result into fields for a new task.
func (p *ParsedTask) TaskData() board.TaskData {
	data := board.TaskData{
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Priority:    p.Priority,
	}
	if p.Completed != nil {
		data.Completed = *p.Completed
	}
	return data
}

// Apply overwrites the editable fields of t.
func (p *ParsedTask) Apply(t board.Task) board.Task {
	t.Title = p.Title
	t.Description = p.Description
	t.DueDate = p.DueDate
	t.Priority = p.Priority
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

func splitFrontmatter(content string) (string, string) {
	content = internalstrings.TrimLeadingNewlines(content)
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

func createTaskTempFile() (*os.File, error) {
	return os.CreateTemp("", "kanban-task-*.md")
}

// EditTask opens $EDITOR on form and returns the parsed result.
func EditTask(form TaskForm) (*ParsedTask, error) {
	content, err := RenderTaskTOML(form)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTaskTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTaskTOML(string(edited), time.Local)
}
