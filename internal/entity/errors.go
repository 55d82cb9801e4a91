package entity

import (
	"errors"
	"fmt"
)

var (
	NetworkErr         = errors.New("ledger unreachable")
	ServerErr          = errors.New("ledger server error")
	NotFoundErr        = errors.New("transaction not found")
	DeserializationErr = errors.New("malformed ledger response")
	CacheDegradedErr   = errors.New("local cache degraded")
	NotInViewErr       = errors.New("transaction not in view")
)

// ValidationError rejects user input before any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
