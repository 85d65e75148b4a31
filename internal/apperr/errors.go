package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested order, courier or assignment does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a state conflict: duplicate dispatch round, order already assigned,
// or an assignment that is no longer in the state the caller expects (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrUnavailable indicates that no courier could be found in any search radius.
var ErrUnavailable = errors.New("no couriers available")

// ErrStoreFailure is a transient infrastructure failure that survived the retry budget.
var ErrStoreFailure = errors.New("store failure")

// IsDomain reports whether err is an expected outcome of normal operation
// rather than an infrastructure failure worth retrying.
func IsDomain(err error) bool {
	return errors.Is(err, ErrInvalid) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnavailable)
}
