package types

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseNotFound = errors.New("database not found")
	ErrInvalidTimeSpec  = errors.New("invalid time spec")
	ErrInvalidDimension = errors.New("invalid grouping dimension")
)

// DatabaseError wraps a failure while opening or querying the database.
type DatabaseError struct {
	Path string
	Err  error
}

func (e DatabaseError) Error() string {
	return fmt.Sprintf("database error at %s: %v", e.Path, e.Err)
}

func (e DatabaseError) Unwrap() error {
	return e.Err
}

// QueryError wraps a failure in a specific aggregation query.
type QueryError struct {
	Dimension Dimension
	Err       error
}

func (e QueryError) Error() string {
	return fmt.Sprintf("query for %s grouping failed: %v", e.Dimension, e.Err)
}

func (e QueryError) Unwrap() error {
	return e.Err
}
