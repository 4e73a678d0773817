package fatkit

import (
	"errors"
)

// Guard and lifecycle errors. Failures reported by the driver itself are
// passed through to callers unchanged and never rewrapped.
var (
	// ErrControllerInUse is returned when the controller's exclusivity guard
	// is already held. It signals a reentrant call into the controller, not
	// a transient condition to retry.
	ErrControllerInUse = errors.New("controller is in use")

	// ErrVolumeInUse is returned when a volume handle's exclusivity guard is
	// already held.
	ErrVolumeInUse = errors.New("volume is in use")

	// ErrHandleClosed is returned when operating on a directory or file
	// handle that has already been closed or released.
	ErrHandleClosed = errors.New("handle already closed")

	// ErrNotSupported is returned when the underlying driver does not
	// implement an optional capability.
	ErrNotSupported = errors.New("operation not supported")
)

// IsInUse reports whether an error indicates guard contention on a
// controller or volume.
func IsInUse(err error) bool {
	return errors.Is(err, ErrControllerInUse) || errors.Is(err, ErrVolumeInUse)
}
