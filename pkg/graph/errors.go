package graph

import (
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-hpo/pkg/ontology"
)

// Error taxonomy shared by every query component.
var (
	ErrNotFound     = errors.New("term not found")
	ErrInvalidQuery = errors.New("invalid query")
	ErrLoadFailure  = ontology.ErrLoadFailure
)

// QueryError provides structured error information for a failed operation.
type QueryError struct {
	Op      string // operation that failed, e.g. "get", "search", "expand"
	Entity  string // "term", "query", "document"
	ID      string // term identifier, if applicable
	Cause   error
	Context string
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	switch {
	case e.ID != "" && e.Context != "":
		return fmt.Sprintf("%s %s %s (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
	case e.ID != "":
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ID, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building QueryErrors.
type ErrorBuilder struct {
	err QueryError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: QueryError{Op: op}}
}

// Term sets the entity to "term" with the given identifier.
func (b *ErrorBuilder) Term(id string) *ErrorBuilder {
	b.err.Entity = "term"
	b.err.ID = id
	return b
}

// Query sets the entity to "query".
func (b *ErrorBuilder) Query() *ErrorBuilder {
	b.err.Entity = "query"
	return b
}

func (b *ErrorBuilder) Context(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the built error.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}

// NotFoundError reports that id is not a term of the ontology.
func NotFoundError(op, id string) error {
	return NewError(op).Term(id).Cause(ErrNotFound).Err()
}

// InvalidQueryError reports a rejected request parameter.
func InvalidQueryError(op, format string, args ...any) error {
	return NewError(op).Query().Context(format, args...).Cause(ErrInvalidQuery).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidQuery returns true if the request was rejected before running.
func IsInvalidQuery(err error) bool {
	return errors.Is(err, ErrInvalidQuery)
}

// IsLoadFailure returns true if the ontology could not be loaded.
func IsLoadFailure(err error) bool {
	return errors.Is(err, ErrLoadFailure)
}
