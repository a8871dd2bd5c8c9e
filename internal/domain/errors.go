package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternalError   = errors.New("internal error")
)

// DivisionByZeroError reports a financial ratio whose denominator was zero.
// Field names the metric that could not be computed, e.g. "projectedGPM".
type DivisionByZeroError struct {
	Field string
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero computing %s", e.Field)
}

// IsDivisionByZero reports whether err is a DivisionByZeroError and, if so,
// returns the offending field name.
func IsDivisionByZero(err error) (string, bool) {
	var dz *DivisionByZeroError
	if errors.As(err, &dz) {
		return dz.Field, true
	}
	return "", false
}
