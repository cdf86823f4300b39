// Copyright 2026 The normkit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package layernorm exposes the fused layer-normalization binding surface.
//
// Four entry points mirror the forward/backward × plain/affine matrix:
//
//	output, mean, invvar, err := layernorm.Forward(kernel, input, normalized, eps)
//	output, mean, invvar, err := layernorm.ForwardAffine(kernel, input, normalized, gamma, beta, eps)
//	gradIn, err := layernorm.Backward(kernel, dout, mean, invvar, input, normalized, eps)
//	gradIn, gradGamma, gradBeta, err := layernorm.BackwardAffine(kernel, dout, mean, invvar, input, normalized, gamma, beta, eps)
//
// Every entry point validates device residency and contiguity of each tensor
// argument, resolves the flattened [n1, n2] view of the input, allocates the
// result buffers and only then dispatches to the kernel. All validation
// failures are synchronous, wrap one of the exported sentinel errors and
// abort the call before any allocation or dispatch.
package layernorm

import (
	"github.com/normkit/normkit/internal/layernorm"
	"github.com/normkit/normkit/internal/tensor"
)

// Sentinel validation errors; match with errors.Is.
var (
	ErrEmptyNormalizedShape = layernorm.ErrEmptyNormalizedShape
	ErrShapeMismatch        = layernorm.ErrShapeMismatch
	ErrNotOnDevice          = layernorm.ErrNotOnDevice
	ErrNotContiguous        = layernorm.ErrNotContiguous
)

// Kernel is the opaque normalization kernel the binding layer dispatches to.
type Kernel = layernorm.Kernel

// Affine bundles the per-feature scale and shift parameters.
type Affine = layernorm.Affine

// LayerNorm is a stateful convenience wrapper owning gamma/beta and caching
// forward statistics for the backward pass.
type LayerNorm = layernorm.LayerNorm

// New creates a LayerNorm module over the given normalized (trailing) shape.
func New(k Kernel, normalized tensor.Shape, epsilon float64, affine bool) (*LayerNorm, error) {
	return layernorm.New(k, normalized, epsilon, affine)
}

// ResolveDimensions collapses the input shape into the flattened [n1, n2]
// view, validating that normalized is a non-empty suffix of input.
func ResolveDimensions(input, normalized tensor.Shape) (n1, n2 int, err error) {
	return layernorm.ResolveDimensions(input, normalized)
}

// ValidateAffineParams checks that gamma and beta, when present, are shaped
// exactly like the normalized dimensions.
func ValidateAffineParams(normalized tensor.Shape, gamma, beta *tensor.RawTensor) error {
	return layernorm.ValidateAffineParams(normalized, gamma, beta)
}

// ValidateForward runs ResolveDimensions then ValidateAffineParams and
// returns the collapsed (n1, n2) pair.
func ValidateForward(input *tensor.RawTensor, normalized tensor.Shape, gamma, beta *tensor.RawTensor) (n1, n2 int, err error) {
	return layernorm.ValidateForward(input, normalized, gamma, beta)
}

// StatsDType returns the dtype used for the mean/invvar buffers given the
// input element type.
func StatsDType(dt tensor.DataType) tensor.DataType {
	return layernorm.StatsDType(dt)
}

// Forward runs the non-affine forward pass.
func Forward(k Kernel, input *tensor.RawTensor, normalized tensor.Shape, epsilon float64) (output, mean, invvar *tensor.RawTensor, err error) {
	return layernorm.Forward(k, input, normalized, epsilon)
}

// ForwardAffine runs the affine forward pass; gamma and beta are both required.
func ForwardAffine(k Kernel, input *tensor.RawTensor, normalized tensor.Shape, gamma, beta *tensor.RawTensor, epsilon float64) (output, mean, invvar *tensor.RawTensor, err error) {
	return layernorm.ForwardAffine(k, input, normalized, gamma, beta, epsilon)
}

// Backward runs the non-affine backward pass.
func Backward(k Kernel, dout, mean, invvar, input *tensor.RawTensor, normalized tensor.Shape, epsilon float64) (gradInput *tensor.RawTensor, err error) {
	return layernorm.Backward(k, dout, mean, invvar, input, normalized, epsilon)
}

// BackwardAffine runs the affine backward pass, additionally returning the
// gamma and beta gradients.
func BackwardAffine(k Kernel, dout, mean, invvar, input *tensor.RawTensor, normalized tensor.Shape, gamma, beta *tensor.RawTensor, epsilon float64) (gradInput, gradGamma, gradBeta *tensor.RawTensor, err error) {
	return layernorm.BackwardAffine(k, dout, mean, invvar, input, normalized, gamma, beta, epsilon)
}
