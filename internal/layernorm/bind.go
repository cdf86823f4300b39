package layernorm

import (
	"github.com/pkg/errors"

	"github.com/normkit/normkit/internal/tensor"
)

// checkInput verifies device residency and contiguity of a single tensor
// argument. Every entry point runs it on every tensor before validation,
// allocation or dispatch.
func checkInput(name string, t *tensor.RawTensor, device tensor.Device) error {
	if t == nil {
		return errors.Wrapf(ErrShapeMismatch, "%s must not be nil", name)
	}
	if t.Device() != device {
		return errors.Wrapf(ErrNotOnDevice, "%s must be a %s tensor, got %s", name, device, t.Device())
	}
	if !t.IsContiguous() {
		return errors.Wrapf(ErrNotContiguous, "%s must be contiguous", name)
	}
	return nil
}

// Forward runs the non-affine forward pass: it validates the input, collapses
// it to [n1, n2], allocates output/mean/invvar and dispatches to the kernel.
// mean and invvar are shaped [n1] in the promoted stats dtype and should be
// kept for the backward pass.
func Forward(k Kernel, input *tensor.RawTensor, normalized tensor.Shape, epsilon float64) (output, mean, invvar *tensor.RawTensor, err error) {
	if err = checkInput("input", input, k.Device()); err != nil {
		return nil, nil, nil, err
	}
	n1, n2, err := ValidateForward(input, normalized, nil, nil)
	if err != nil {
		return nil, nil, nil, err
	}
	output, mean, invvar, err = allocateForwardOutputs(input, n1)
	if err != nil {
		return nil, nil, nil, err
	}
	if err = k.Forward(output, mean, invvar, input, n1, n2, nil, epsilon); err != nil {
		return nil, nil, nil, err
	}
	return output, mean, invvar, nil
}

// ForwardAffine runs the affine forward pass. gamma and beta are both
// required and must be shaped exactly like normalized; use Forward for the
// variant without learned parameters.
func ForwardAffine(k Kernel, input *tensor.RawTensor, normalized tensor.Shape, gamma, beta *tensor.RawTensor, epsilon float64) (output, mean, invvar *tensor.RawTensor, err error) {
	if err = checkInput("input", input, k.Device()); err != nil {
		return nil, nil, nil, err
	}
	if err = checkInput("gamma", gamma, k.Device()); err != nil {
		return nil, nil, nil, err
	}
	if err = checkInput("beta", beta, k.Device()); err != nil {
		return nil, nil, nil, err
	}
	n1, n2, err := ValidateForward(input, normalized, gamma, beta)
	if err != nil {
		return nil, nil, nil, err
	}
	output, mean, invvar, err = allocateForwardOutputs(input, n1)
	if err != nil {
		return nil, nil, nil, err
	}
	affine := &Affine{Gamma: gamma, Beta: beta}
	if err = k.Forward(output, mean, invvar, input, n1, n2, affine, epsilon); err != nil {
		return nil, nil, nil, err
	}
	return output, mean, invvar, nil
}

// Backward runs the non-affine backward pass: given the upstream gradient
// dout and the mean/invvar cached by Forward, it returns the gradient of the
// loss w.r.t. the input, shaped like the input.
func Backward(k Kernel, dout, mean, invvar, input *tensor.RawTensor, normalized tensor.Shape, epsilon float64) (gradInput *tensor.RawTensor, err error) {
	for _, arg := range []struct {
		name string
		t    *tensor.RawTensor
	}{
		{"dout", dout}, {"mean", mean}, {"invvar", invvar}, {"input", input},
	} {
		if err = checkInput(arg.name, arg.t, k.Device()); err != nil {
			return nil, err
		}
	}
	n1, n2, err := ValidateForward(input, normalized, nil, nil)
	if err != nil {
		return nil, err
	}
	gradInput, err = tensor.EmptyLike(input)
	if err != nil {
		return nil, err
	}
	if err = k.Backward(gradInput, nil, nil, dout, mean, invvar, input, n1, n2, nil, epsilon); err != nil {
		return nil, err
	}
	return gradInput, nil
}

// BackwardAffine runs the affine backward pass and additionally returns the
// gradients for gamma and beta, each shaped like the parameters.
func BackwardAffine(k Kernel, dout, mean, invvar, input *tensor.RawTensor, normalized tensor.Shape, gamma, beta *tensor.RawTensor, epsilon float64) (gradInput, gradGamma, gradBeta *tensor.RawTensor, err error) {
	for _, arg := range []struct {
		name string
		t    *tensor.RawTensor
	}{
		{"dout", dout}, {"mean", mean}, {"invvar", invvar}, {"input", input},
		{"gamma", gamma}, {"beta", beta},
	} {
		if err = checkInput(arg.name, arg.t, k.Device()); err != nil {
			return nil, nil, nil, err
		}
	}
	n1, n2, err := ValidateForward(input, normalized, gamma, beta)
	if err != nil {
		return nil, nil, nil, err
	}
	gradInput, err = tensor.EmptyLike(input)
	if err != nil {
		return nil, nil, nil, err
	}
	gradGamma, err = tensor.EmptyLike(gamma)
	if err != nil {
		return nil, nil, nil, err
	}
	gradBeta, err = tensor.EmptyLike(beta)
	if err != nil {
		return nil, nil, nil, err
	}
	affine := &Affine{Gamma: gamma, Beta: beta}
	if err = k.Backward(gradInput, gradGamma, gradBeta, dout, mean, invvar, input, n1, n2, affine, epsilon); err != nil {
		return nil, nil, nil, err
	}
	return gradInput, gradGamma, gradBeta, nil
}
