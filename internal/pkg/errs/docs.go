// Package errs holds the error kinds shared by the order lifecycle service.
//
// Validation family (IsValidation reports true for all three):
//   - ValueIsRequiredError: a mandatory field is absent or empty
//   - ValueIsInvalidError: a field has the wrong shape or an unknown value
//   - ValueIsOutOfRangeError: a number falls outside its bounds, e.g. a table above 10
//
// Other kinds:
//   - ObjectNotFoundError: no order with the requested id
//   - StorageError: the durable medium could not be read or written
//
// Every kind pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) with a struct
// carrying the details. The validation and not-found kinds have plain and WithCause
// constructors; NewStorageError always takes the cause. Unwrap exposes both the
// sentinel and the cause, so callers branch with errors.Is and errors.As.
package errs
