package attendance

import (
	"errors"
	"fmt"

	vo "timeclock/internal/domain/attendance/valueobjects"
)

// ErrDuplicateIdempotencyKey is returned by repositories when the
// storage-level uniqueness constraint rejects an accepted event insert.
var ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")

// RejectionError is a blocked punch: the attempt was audited and refused
// with a specific reason. It is expected, local, and never fatal.
type RejectionError struct {
	Reason vo.BlockReason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("punch rejected: %s", e.Reason)
}

// NewRejection builds a typed rejection for the given reason.
func NewRejection(reason vo.BlockReason) *RejectionError {
	return &RejectionError{Reason: reason}
}

// AsRejection extracts a RejectionError if err carries one.
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}
