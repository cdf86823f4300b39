package layernorm

import (
	"github.com/pkg/errors"

	"github.com/normkit/normkit/internal/tensor"
)

// LayerNorm is a stateful convenience wrapper around the fused entry points.
// It owns the learnable gamma/beta parameters (when affine) and caches the
// mean/invvar produced by Forward so that Backward can reuse them.
//
// Example:
//
//	ln, _ := layernorm.New(cpu.New(), tensor.Shape{768}, 1e-5, true)
//	output, _ := ln.Forward(hidden)               // [..., 768] -> [..., 768]
//	gradIn, gradGamma, gradBeta, _ := ln.Backward(gradOut)
type LayerNorm struct {
	kernel     Kernel
	normalized tensor.Shape
	epsilon    float64
	gamma      *tensor.RawTensor // nil when not affine
	beta       *tensor.RawTensor // nil when not affine

	// cached from the most recent Forward
	input  *tensor.RawTensor
	mean   *tensor.RawTensor
	invvar *tensor.RawTensor
}

// New creates a LayerNorm over the given normalized (trailing) shape.
// When affine, gamma is initialized to ones and beta to zeros, both float32
// and shaped exactly like normalized, on the kernel's device.
func New(k Kernel, normalized tensor.Shape, epsilon float64, affine bool) (*LayerNorm, error) {
	if len(normalized) < 1 {
		return nil, errors.Wrapf(ErrEmptyNormalizedShape,
			"expected normalizedShape to be at least 1-dimensional, i.e. containing at least one element, but got normalizedShape=%v",
			normalized)
	}
	ln := &LayerNorm{
		kernel:     k,
		normalized: normalized.Clone(),
		epsilon:    epsilon,
	}
	if affine {
		gamma, err := tensor.NewRaw(normalized, tensor.Float32, k.Device())
		if err != nil {
			return nil, err
		}
		for i, data := 0, gamma.AsFloat32(); i < len(data); i++ {
			data[i] = 1
		}
		beta, err := tensor.NewRaw(normalized, tensor.Float32, k.Device())
		if err != nil {
			return nil, err
		}
		ln.gamma = gamma
		ln.beta = beta
	}
	return ln, nil
}

// Gamma returns the learnable scale parameter, or nil when not affine.
func (ln *LayerNorm) Gamma() *tensor.RawTensor { return ln.gamma }

// Beta returns the learnable shift parameter, or nil when not affine.
func (ln *LayerNorm) Beta() *tensor.RawTensor { return ln.beta }

// Forward normalizes the input over the trailing normalized dimensions and
// caches the input together with the per-row statistics for Backward.
func (ln *LayerNorm) Forward(input *tensor.RawTensor) (*tensor.RawTensor, error) {
	var (
		output, mean, invvar *tensor.RawTensor
		err                  error
	)
	if ln.gamma != nil {
		output, mean, invvar, err = ForwardAffine(ln.kernel, input, ln.normalized, ln.gamma, ln.beta, ln.epsilon)
	} else {
		output, mean, invvar, err = Forward(ln.kernel, input, ln.normalized, ln.epsilon)
	}
	if err != nil {
		return nil, err
	}
	ln.input, ln.mean, ln.invvar = input, mean, invvar
	return output, nil
}

// Backward computes gradients from the upstream gradient dout using the
// statistics cached by the most recent Forward. gradGamma and gradBeta are
// nil when the layer is not affine.
func (ln *LayerNorm) Backward(dout *tensor.RawTensor) (gradInput, gradGamma, gradBeta *tensor.RawTensor, err error) {
	if ln.input == nil {
		return nil, nil, nil, errors.New("layernorm: Backward called before Forward")
	}
	if ln.gamma != nil {
		return BackwardAffine(ln.kernel, dout, ln.mean, ln.invvar, ln.input, ln.normalized, ln.gamma, ln.beta, ln.epsilon)
	}
	gradInput, err = Backward(ln.kernel, dout, ln.mean, ln.invvar, ln.input, ln.normalized, ln.epsilon)
	return gradInput, nil, nil, err
}
