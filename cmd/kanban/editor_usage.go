package main

import "errors"

// editorRequest describes how a task command was invoked.
type editorRequest struct {
	hasFields        bool
	edit             bool
	noEdit           bool
	descriptionStdin bool
	interactive      bool
}

var (
	errEditConflict = errors.New("--edit and --no-edit cannot be used together")
	errEditStdin    = errors.New("--edit cannot be combined with --description - (stdin is not a terminal)")
)

// useEditor decides whether a task command opens the editor. Field flags
// or a description piped on stdin skip it unless --edit asks for it.
func (r editorRequest) useEditor() (bool, error) {
	switch {
	case r.edit && r.noEdit:
		return false, errEditConflict
	case r.edit && r.descriptionStdin:
		return false, errEditStdin
	case r.edit:
		return true, nil
	case r.noEdit, r.hasFields, r.descriptionStdin:
		return false, nil
	}
	return r.interactive, nil
}
