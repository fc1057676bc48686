package service

import (
	"strings"

	"github.com/avvvet/gamehub-services/internal/gamehub/store"
)

// RequiredFields lists the fields a new game must carry, in report order.
var RequiredFields = []string{"title", "genre", "platform"}

// ErrNotFound is returned when no game matches the requested id.
var ErrNotFound = store.ErrNotFound

// ValidationError reports required fields that were absent or empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
