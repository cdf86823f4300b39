package layernorm

import (
	"github.com/normkit/normkit/internal/tensor"
)

// Affine bundles the per-feature scale (gamma) and shift (beta) parameters.
// A nil *Affine means the plain, non-affine variant; when present, both
// tensors are set and shaped like the normalized dimensions.
type Affine struct {
	Gamma *tensor.RawTensor
	Beta  *tensor.RawTensor
}

// Kernel is the opaque normalization kernel the binding layer dispatches to.
// Implementations receive tensors already validated for shape, device
// residency and contiguity, together with the collapsed [n1, n2] view of the
// input.
//
// Implementations:
//   - backend/cpu: host-memory reference kernel
//   - CUDA/WebGPU compute kernels plug in behind the same interface
type Kernel interface {
	// Device returns the device all tensor arguments must reside on.
	Device() tensor.Device

	// Forward fills output with the normalized input and mean/invvar (each
	// shaped [n1]) with the per-row mean and inverse standard deviation
	// 1/sqrt(var+epsilon), applying affine scale/shift when present.
	Forward(output, mean, invvar, input *tensor.RawTensor, n1, n2 int, affine *Affine, epsilon float64) error

	// Backward fills gradInput with the gradient of the loss w.r.t. the
	// input, reusing mean/invvar cached by Forward. When affine is present,
	// gradGamma and gradBeta are non-nil and receive the parameter
	// gradients accumulated over all n1 rows; otherwise both are nil.
	Backward(gradInput, gradGamma, gradBeta, dout, mean, invvar, input *tensor.RawTensor, n1, n2 int, affine *Affine, epsilon float64) error
}
