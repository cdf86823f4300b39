package layernorm

import "errors"

// Validation failures raised by the binding layer before any allocation or
// kernel dispatch. All are terminal: the call aborts, nothing is retried.
var (
	// ErrEmptyNormalizedShape indicates a normalizedShape with zero dimensions.
	ErrEmptyNormalizedShape = errors.New("empty normalized shape")

	// ErrShapeMismatch indicates that normalizedShape is not a suffix of the
	// input shape, or that gamma/beta do not match normalizedShape exactly.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotOnDevice indicates a tensor that is not resident on the device
	// the kernel executes on.
	ErrNotOnDevice = errors.New("tensor not on device")

	// ErrNotContiguous indicates a tensor whose memory layout is not
	// contiguous row-major.
	ErrNotContiguous = errors.New("tensor not contiguous")
)
