package patient

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that an operation addressed a patient id with no
// stored record. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("patient not found")

// ValidationError reports required fields missing from a submitted form.
// Handlers map it to HTTP 400. No write happens when validation fails.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
