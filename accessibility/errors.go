package accessibility

import "errors"

// Errors returned by node reads and actions.
var (
	// ErrUnavailable means the host handle could not be obtained at all.
	ErrUnavailable = errors.New("control tree unavailable")
	// ErrUnsupported means the node does not expose the attribute or action.
	ErrUnsupported = errors.New("attribute unsupported")
	// ErrNoValue means the attribute exists but holds nothing.
	ErrNoValue = errors.New("attribute has no value")
	// ErrDisabled means the node rejects the request while disabled.
	ErrDisabled = errors.New("node is disabled")
	// ErrCapacity means more elements were found than labels can address.
	ErrCapacity = errors.New("label capacity exceeded")
)

// IsRecoverable reports whether err only means "skip this node".
func IsRecoverable(err error) bool {
	if err == nil {
		return true
	}
	return !errors.Is(err, ErrUnavailable)
}
