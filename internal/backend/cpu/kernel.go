// Package cpu implements the reference layer-normalization kernel on host
// memory. It is the correctness baseline the binding layer is tested against;
// GPU kernels plug in behind the same layernorm.Kernel interface.
package cpu

import (
	"math"

	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/normkit/normkit/internal/layernorm"
	"github.com/normkit/normkit/internal/parallel"
	"github.com/normkit/normkit/internal/tensor"
)

// Verify that Kernel implements layernorm.Kernel.
var _ layernorm.Kernel = (*Kernel)(nil)

// Kernel computes layer normalization on host memory with float64
// accumulation. Supported input dtypes: float16, float32, float64.
// Rows of the collapsed [n1, n2] view are independent and processed in
// parallel when n1 is large enough.
type Kernel struct {
	cfg parallel.Config
}

// New creates a new CPU kernel.
func New() *Kernel {
	return &Kernel{cfg: parallel.DefaultConfig()}
}

// Device returns the device tensors must reside on.
func (k *Kernel) Device() tensor.Device {
	return tensor.CPU
}

// Forward normalizes each of the n1 rows of the flattened [n1, n2] input:
// output = (x - mean) * invvar, optionally scaled and shifted per feature,
// with invvar = 1/sqrt(var + epsilon) and biased variance (divide by n2).
func (k *Kernel) Forward(output, mean, invvar, input *tensor.RawTensor, n1, n2 int, affine *layernorm.Affine, epsilon float64) error {
	x, err := loadFloat64(input)
	if err != nil {
		return err
	}
	var gamma, beta []float64
	if affine != nil {
		if gamma, err = loadFloat64(affine.Gamma); err != nil {
			return err
		}
		if beta, err = loadFloat64(affine.Beta); err != nil {
			return err
		}
	}

	out := make([]float64, n1*n2)
	means := make([]float64, n1)
	invvars := make([]float64, n1)

	parallel.ForRows(n1, k.cfg, func(row int) {
		start := row * n2

		sum := 0.0
		for i := start; i < start+n2; i++ {
			sum += x[i]
		}
		mu := sum / float64(n2)

		sumSq := 0.0
		for i := start; i < start+n2; i++ {
			diff := x[i] - mu
			sumSq += diff * diff
		}
		sigmaInv := 1.0 / math.Sqrt(sumSq/float64(n2)+epsilon)

		means[row] = mu
		invvars[row] = sigmaInv

		for j := 0; j < n2; j++ {
			normalized := (x[start+j] - mu) * sigmaInv
			if affine != nil {
				normalized = gamma[j]*normalized + beta[j]
			}
			out[start+j] = normalized
		}
	})

	if err := storeFloat64(out, output); err != nil {
		return err
	}
	if err := storeFloat64(means, mean); err != nil {
		return err
	}
	return storeFloat64(invvars, invvar)
}

// Backward computes the gradient w.r.t. the input row by row:
//
//	g_j      = dout_j * gamma_j            (g_j = dout_j without affine)
//	dx_j     = invvar * (g_j - mean(g) - (x_j - mu) * invvar^2 * mean(g*(x-mu)))
//
// and, for the affine variant, accumulates over all rows:
//
//	dgamma_j += dout_j * (x_j - mu) * invvar
//	dbeta_j  += dout_j
func (k *Kernel) Backward(gradInput, gradGamma, gradBeta, dout, mean, invvar, input *tensor.RawTensor, n1, n2 int, affine *layernorm.Affine, epsilon float64) error {
	x, err := loadFloat64(input)
	if err != nil {
		return err
	}
	dy, err := loadFloat64(dout)
	if err != nil {
		return err
	}
	mu, err := loadFloat64(mean)
	if err != nil {
		return err
	}
	sigmaInv, err := loadFloat64(invvar)
	if err != nil {
		return err
	}
	var gamma []float64
	if affine != nil {
		if gamma, err = loadFloat64(affine.Gamma); err != nil {
			return err
		}
	}

	dx := make([]float64, n1*n2)
	var dgamma, dbeta []float64
	if affine != nil {
		dgamma = make([]float64, n2)
		dbeta = make([]float64, n2)
	}

	parallel.ForRows(n1, k.cfg, func(row int) {
		start := row * n2
		m := mu[row]
		inv := sigmaInv[row]

		sumG := 0.0
		sumGX := 0.0
		for j := 0; j < n2; j++ {
			g := dy[start+j]
			if affine != nil {
				g *= gamma[j]
			}
			diff := x[start+j] - m
			sumG += g
			sumGX += g * diff
		}
		meanG := sumG / float64(n2)
		meanGX := sumGX / float64(n2)

		for j := 0; j < n2; j++ {
			g := dy[start+j]
			if affine != nil {
				g *= gamma[j]
			}
			diff := x[start+j] - m
			dx[start+j] = inv * (g - meanG - diff*inv*inv*meanGX)
		}
	})

	// The parameter gradients reduce across rows, so accumulate them
	// sequentially after the row-parallel pass.
	if affine != nil {
		for row := 0; row < n1; row++ {
			start := row * n2
			m := mu[row]
			inv := sigmaInv[row]
			for j := 0; j < n2; j++ {
				dgamma[j] += dy[start+j] * (x[start+j] - m) * inv
				dbeta[j] += dy[start+j]
			}
		}
	}

	if err := storeFloat64(dx, gradInput); err != nil {
		return err
	}
	if affine != nil {
		if err := storeFloat64(dgamma, gradGamma); err != nil {
			return err
		}
		if err := storeFloat64(dbeta, gradBeta); err != nil {
			return err
		}
	}
	return nil
}

// loadFloat64 widens a tensor's elements to float64 for accumulation.
func loadFloat64(t *tensor.RawTensor) ([]float64, error) {
	switch t.DType() {
	case tensor.Float16:
		src := t.AsFloat16()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v.Float32())
		}
		return dst, nil
	case tensor.Float32:
		src := t.AsFloat32()
		dst := make([]float64, len(src))
		for i, v := range src {
			dst[i] = float64(v)
		}
		return dst, nil
	case tensor.Float64:
		src := t.AsFloat64()
		dst := make([]float64, len(src))
		copy(dst, src)
		return dst, nil
	default:
		return nil, errors.Errorf("cpu: unsupported dtype %s", t.DType())
	}
}

// storeFloat64 narrows float64 results into the tensor's element type.
func storeFloat64(src []float64, t *tensor.RawTensor) error {
	switch t.DType() {
	case tensor.Float16:
		dst := t.AsFloat16()
		for i, v := range src {
			dst[i] = float16.Fromfloat32(float32(v))
		}
		return nil
	case tensor.Float32:
		dst := t.AsFloat32()
		for i, v := range src {
			dst[i] = float32(v)
		}
		return nil
	case tensor.Float64:
		copy(t.AsFloat64(), src)
		return nil
	default:
		return errors.Errorf("cpu: unsupported dtype %s", t.DType())
	}
}
