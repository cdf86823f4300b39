// Package layernorm implements the host-side binding layer for fused layer
// normalization: argument validation, dimension collapsing, output buffer
// allocation and dispatch to an opaque normalization kernel.
package layernorm

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/normkit/normkit/internal/tensor"
)

// ResolveDimensions validates that normalized is a non-empty suffix of the
// input shape and collapses the input into a flattened [n1, n2] view:
// n1 is the product of the leading (batch) dimensions, n2 the product of the
// normalized (feature) dimensions, so n1*n2 == input.NumElements().
//
// Pure function: no side effects, safe for concurrent use.
func ResolveDimensions(input, normalized tensor.Shape) (n1, n2 int, err error) {
	if len(normalized) < 1 {
		return 0, 0, errors.Wrapf(ErrEmptyNormalizedShape,
			"expected normalizedShape to be at least 1-dimensional, i.e. containing at least one element, but got normalizedShape=%v",
			normalized)
	}

	if !input.HasSuffix(normalized) {
		return 0, 0, errors.Wrapf(ErrShapeMismatch,
			"given normalizedShape=%v, expected input with shape %s, but got input of size %v",
			normalized, suffixPattern(normalized), input)
	}

	n2 = 1
	for _, dim := range normalized {
		n2 *= dim
	}
	n1 = 1
	for _, dim := range input[:len(input)-len(normalized)] {
		n1 *= dim
	}
	return n1, n2, nil
}

// suffixPattern renders the expected-shape pattern for error messages,
// e.g. [3 8] -> "[*, 3, 8]".
func suffixPattern(normalized tensor.Shape) string {
	var sb strings.Builder
	sb.WriteString("[*")
	for _, dim := range normalized {
		sb.WriteString(", ")
		sb.WriteString(strconv.Itoa(dim))
	}
	sb.WriteString("]")
	return sb.String()
}

// ValidateAffineParams checks that gamma and beta, when present, have exactly
// the normalized shape (same rank and sizes). Either parameter may
// independently be nil; absence is not an error at this layer.
func ValidateAffineParams(normalized tensor.Shape, gamma, beta *tensor.RawTensor) error {
	if gamma != nil && !gamma.Shape().Equal(normalized) {
		return errors.Wrapf(ErrShapeMismatch,
			"expected gamma to be of same shape as normalizedShape, but got gamma of shape %v and normalizedShape=%v",
			gamma.Shape(), normalized)
	}
	if beta != nil && !beta.Shape().Equal(normalized) {
		return errors.Wrapf(ErrShapeMismatch,
			"expected beta to be of same shape as normalizedShape, but got beta of shape %v and normalizedShape=%v",
			beta.Shape(), normalized)
	}
	return nil
}

// ValidateForward runs ResolveDimensions followed by ValidateAffineParams and
// returns the collapsed (n1, n2) pair. Forward and backward entry points use
// it identically; the gradient-output shape is enforced by allocation
// upstream, not here.
func ValidateForward(input *tensor.RawTensor, normalized tensor.Shape, gamma, beta *tensor.RawTensor) (n1, n2 int, err error) {
	n1, n2, err = ResolveDimensions(input.Shape(), normalized)
	if err != nil {
		return 0, 0, err
	}
	if err = ValidateAffineParams(normalized, gamma, beta); err != nil {
		return 0, 0, err
	}
	return n1, n2, nil
}
