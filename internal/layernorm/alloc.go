package layernorm

import (
	"github.com/normkit/normkit/internal/tensor"
)

// statsDTypes maps an input element type to the dtype used for the per-row
// mean and inverse-standard-deviation buffers. Reductions are carried in an
// extended-precision float: float32 for half/single-precision and narrow
// integer inputs, float64 when the input is already double precision or
// int64.
var statsDTypes = map[tensor.DataType]tensor.DataType{
	tensor.Float16: tensor.Float32,
	tensor.Float32: tensor.Float32,
	tensor.Float64: tensor.Float64,
	tensor.Int32:   tensor.Float32,
	tensor.Int64:   tensor.Float64,
	tensor.Uint8:   tensor.Float32,
}

// StatsDType returns the dtype of the mean/invvar buffers for the given
// input element type.
func StatsDType(dt tensor.DataType) tensor.DataType {
	stats, ok := statsDTypes[dt]
	if !ok {
		return tensor.Float32
	}
	return stats
}

// allocateForwardOutputs allocates the forward-pass result buffers on the
// input's device: output shaped like the input, mean and invvar shaped [n1]
// with the promoted stats dtype.
func allocateForwardOutputs(input *tensor.RawTensor, n1 int) (output, mean, invvar *tensor.RawTensor, err error) {
	output, err = tensor.EmptyLike(input)
	if err != nil {
		return nil, nil, nil, err
	}
	mean, err = tensor.NewRaw(tensor.Shape{n1}, StatsDType(input.DType()), input.Device())
	if err != nil {
		return nil, nil, nil, err
	}
	invvar, err = tensor.EmptyLike(mean)
	if err != nil {
		return nil, nil, nil, err
	}
	return output, mean, invvar, nil
}
