package ids

import (
	"github.com/google/uuid"
)

// Generator produces new identifiers.
type Generator func() string

// New returns a random (version 4) UUID in its canonical lowercase form.
func New() string {
	return uuid.NewString()
}
