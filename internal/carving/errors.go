package carving

import "errors"

var (
	// ErrInvalidDimensions is returned by Load for images smaller than 3×3.
	ErrInvalidDimensions = errors.New("image must be at least 3x3")

	// ErrCapacityExceeded is returned when a resize would grow past the
	// storage provisioned at load time.
	ErrCapacityExceeded = errors.New("requested width exceeds provisioned capacity")

	// ErrDegenerateResize is returned when the requested width is not positive
	// or would remove more seams than there are interior columns.
	ErrDegenerateResize = errors.New("degenerate resize")
)
