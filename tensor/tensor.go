// Copyright 2026 The normkit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for normkit's raw tensor runtime.
//
// RawTensor is a typed byte buffer tagged with shape, strides, dtype and
// device placement. It carries exactly the metadata the layernorm binding
// layer validates: dimension sizes, memory contiguity and device residency.
//
// Example:
//
//	input, _ := tensor.FromFloat32(data, tensor.Shape{2, 3, 768}, tensor.CPU)
//	fmt.Println(input.Shape(), input.DType(), input.IsContiguous())
package tensor

import (
	"github.com/normkit/normkit/internal/tensor"
)

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float16 DataType = tensor.Float16
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Vulkan Device = tensor.Vulkan
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// NewRaw creates a new zero-initialized contiguous tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// EmptyLike creates an uninitialized tensor with the same shape, dtype and
// device as r.
func EmptyLike(r *RawTensor) (*RawTensor, error) {
	return tensor.EmptyLike(r)
}

// FromFloat32 creates a contiguous float32 tensor initialized from data.
func FromFloat32(data []float32, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat32(data, shape, device)
}

// FromFloat64 creates a contiguous float64 tensor initialized from data.
func FromFloat64(data []float64, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat64(data, shape, device)
}

// FromFloat16 creates a contiguous float16 tensor from float32 values.
func FromFloat16(data []float32, shape Shape, device Device) (*RawTensor, error) {
	return tensor.FromFloat16(data, shape, device)
}
