// Package errs provides the typed error taxonomy shared by the ordering core.
//
// Error kinds:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError:
//     malformed caller input (see IsValidation)
//   - ObjectNotFoundError: the referenced entity does not exist
//   - StorageFailureError: the unit of work could not commit; Busy marks
//     lock and statement timeouts (see IsRetryable)
//
// Each kind has a sentinel (ErrValueIsInvalid, ErrObjectNotFound, ...), a
// struct carrying details and an optional Cause, and constructors with and
// without a cause. Unwrap returns both the sentinel and the cause so that
// errors.Is matches either of them.
package errs
