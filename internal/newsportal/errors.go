package newsportal

import (
	"errors"
	"fmt"
)

// ErrInvalidArticle is returned when title or content fail validation.
var ErrInvalidArticle = errors.New("invalid article")

// StoreError reports a failed store operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
