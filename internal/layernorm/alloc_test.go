package layernorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/normkit/normkit/internal/tensor"
)

func TestStatsDType(t *testing.T) {
	tests := []struct {
		input tensor.DataType
		stats tensor.DataType
	}{
		{tensor.Float16, tensor.Float32},
		{tensor.Float32, tensor.Float32},
		{tensor.Float64, tensor.Float64},
		{tensor.Int32, tensor.Float32},
		{tensor.Int64, tensor.Float64},
		{tensor.Uint8, tensor.Float32},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.stats, StatsDType(tt.input), "stats dtype for %s", tt.input)
	}
}

func TestAllocateForwardOutputs(t *testing.T) {
	input, err := tensor.NewRaw(tensor.Shape{2, 3, 8}, tensor.Float16, tensor.CPU)
	require.NoError(t, err)

	output, mean, invvar, err := allocateForwardOutputs(input, 6)
	require.NoError(t, err)

	assert.True(t, output.Shape().Equal(input.Shape()), "output shaped like input")
	assert.Equal(t, tensor.Float16, output.DType(), "output keeps the input dtype")
	assert.Equal(t, tensor.CPU, output.Device())

	assert.True(t, mean.Shape().Equal(tensor.Shape{6}), "mean shaped [n1]")
	assert.Equal(t, tensor.Float32, mean.DType(), "half input promotes stats to float32")
	assert.True(t, invvar.Shape().Equal(tensor.Shape{6}))
	assert.Equal(t, mean.DType(), invvar.DType())
}

func TestAllocateForwardOutputsDoubleStats(t *testing.T) {
	input, err := tensor.NewRaw(tensor.Shape{4, 8}, tensor.Float64, tensor.CPU)
	require.NoError(t, err)

	_, mean, invvar, err := allocateForwardOutputs(input, 4)
	require.NoError(t, err)

	assert.Equal(t, tensor.Float64, mean.DType())
	assert.Equal(t, tensor.Float64, invvar.DType())
}
