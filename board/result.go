package board

// Result reports what a tolerant mutation did.
//
// Nested update, delete, and move operations do not fail when an ID is
// stale (a UI may still hold it after a concurrent delete); they report
// NotFound instead and leave the state untouched.
type Result string

const (
	// Applied indicates the state changed.
	Applied Result = "applied"

	// Unchanged indicates there was nothing to do.
	Unchanged Result = "unchanged"

	// NotFound indicates a board, column, or task could not be located.
	NotFound Result = "not_found"
)

// Changed returns true when the state was modified.
func (r Result) Changed() bool {
	return r == Applied
}
