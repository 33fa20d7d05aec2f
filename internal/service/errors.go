package service

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventbridge/internal/schema"
)

type Code string

const (
	CodeNotFound    Code = "not_found"
	CodeValidation  Code = "validation"
	CodeConflict    Code = "conflict"
	CodeUnavailable Code = "unavailable"
)

var (
	ErrPolymarketEventMissing = errors.New("polymarket event not found")
	ErrKalshiEventMissing     = errors.New("kalshi event not found")
	ErrKalshiTickerMissing    = errors.New("kalshi event has no ticker")
	ErrMalformedOutcomes      = errors.New("outcomes or clobTokenIds is not a JSON array")
	ErrOutcomeLengthMismatch  = errors.New("outcomes and clobTokenIds lengths differ")
	ErrOutcomeNotFound        = errors.New("outcome not found")
	ErrNoFields               = errors.New("no known fields to write")
	ErrUnknownEntity          = errors.New("unknown entity")

	errNullArray = errors.New("value is null")
)

// Error is returned by every service operation that fails.
type Error struct {
	Code   Code
	Op     string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + string(e.Code)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

func validationError(op string, err error, format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Op: op, Detail: fmt.Sprintf(format, args...), Err: err}
}

func notFoundError(op string, format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Op: op, Detail: fmt.Sprintf(format, args...)}
}

// storeError classifies an error coming back from the repository.
func storeError(op string, err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, schema.ErrNoFields):
		return &Error{Code: CodeValidation, Op: op, Err: ErrNoFields}
	case schema.IsFieldError(err):
		return &Error{Code: CodeValidation, Op: op, Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Code: CodeNotFound, Op: op, Err: err}
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Code: CodeConflict, Op: op, Err: err}
	default:
		return &Error{Code: CodeUnavailable, Op: op, Err: err}
	}
}

// logFailure logs validation failures at warn and everything else at error.
func logFailure(log *zap.Logger, err *Error, fields ...zap.Field) {
	if log == nil || err == nil {
		return
	}
	fields = append(fields, zap.String("op", err.Op), zap.String("code", string(err.Code)))
	if err.Detail != "" {
		fields = append(fields, zap.String("detail", err.Detail))
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	switch err.Code {
	case CodeValidation, CodeNotFound:
		log.Warn("operation rejected", fields...)
	default:
		log.Error("operation failed", fields...)
	}
}
