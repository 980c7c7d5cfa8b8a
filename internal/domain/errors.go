package domain

import "errors"

// ErrDuplicateCode is returned by stores when an experiment code is reused.
var ErrDuplicateCode = errors.New("experiment code already exists")

// ValidationError reports a missing or malformed field. Its message is safe
// to echo back to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
