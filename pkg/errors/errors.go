// Package ierr carries the error taxonomy shared by the report services and
// their transports. Errors are built fluently and marked with one of the
// sentinel categories so callers can branch with errors.Is.
package ierr

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrAggregation  = errors.New("aggregation error")
	ErrRender       = errors.New("render error")
	ErrUnauthorized = errors.New("unauthorized")
)

type ErrorBuilder struct {
	err error
}

func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{err: errors.Newf(format, args...)}
}

// WithError starts a builder from an existing cause
func WithError(err error) *ErrorBuilder {
	if err == nil {
		err = errors.New("unknown error")
	}
	return &ErrorBuilder{err: err}
}

func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.Wrap(b.err, msg)
	return b
}

func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	return b.WithHint(fmt.Sprintf(format, args...))
}

// Mark tags the error with a category and returns it
func (b *ErrorBuilder) Mark(category error) error {
	return errors.Mark(b.err, category)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsAggregation(err error) bool {
	return errors.Is(err, ErrAggregation)
}

func IsRender(err error) bool {
	return errors.Is(err, ErrRender)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// HTTPStatus maps an error category to the status code returned to clients
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsValidation(err):
		return http.StatusBadRequest
	case IsUnauthorized(err):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to show a caller. Causes of server-side
// failures are never exposed.
func PublicMessage(err error) string {
	switch {
	case IsValidation(err):
		return err.Error()
	case IsUnauthorized(err):
		return "unauthorized"
	case IsRender(err):
		return "error exporting report"
	default:
		return "error generating report"
	}
}

// Hint joins every hint attached along the chain
func Hint(err error) string {
	return errors.FlattenHints(err)
}
