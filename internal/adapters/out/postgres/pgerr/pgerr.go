// Package pgerr classifies PostgreSQL driver errors into the errs taxonomy.
package pgerr

import (
	"context"
	"errors"

	"tokenorders/internal/pkg/errs"

	"github.com/lib/pq"
)

// SQLSTATE codes the adapters react to.
const (
	NumericValueOutOfRange pq.ErrorCode = "22003"
	UniqueViolation        pq.ErrorCode = "23505"
	CheckViolation         pq.ErrorCode = "23514"
	LockNotAvailable       pq.ErrorCode = "55P03"
	QueryCanceled          pq.ErrorCode = "57014"
)

// Wrap converts a driver error raised by op into an errs.StorageFailureError.
// Lock and statement timeouts, and expired contexts, are reported as busy.
// Values the schema refuses are reported as invalid input, which is never
// retryable. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errs.ErrStorageFailure) || errs.IsValidation(err) {
		return err
	}
	if isRejectedValue(err) {
		return errs.NewValueIsInvalidErrorWithCause(op, err)
	}
	if isBusy(err) {
		return errs.NewBusyError(op, err)
	}
	return errs.NewStorageFailureError(op, err)
}

// Code returns the SQLSTATE of err, or "" if err is not a PostgreSQL error.
func Code(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsUniqueViolation reports whether err was raised by a unique index,
// optionally restricted to the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != UniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

func isBusy(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch Code(err) {
	case LockNotAvailable, QueryCanceled:
		return true
	default:
		return false
	}
}

func isRejectedValue(err error) bool {
	switch Code(err) {
	case NumericValueOutOfRange, CheckViolation:
		return true
	default:
		return false
	}
}
