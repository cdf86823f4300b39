package tensor

import (
	"fmt"
	"unsafe"

	"github.com/x448/float16"
)

// Device represents the compute device a tensor's data resides on.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Vulkan
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Vulkan:
		return "Vulkan"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the low-level tensor representation: a typed byte buffer
// tagged with shape, strides, dtype and device placement. Views created by
// Permute or Narrow share the underlying buffer.
type RawTensor struct {
	data   []byte
	shape  Shape
	stride []int
	dtype  DataType
	device Device
	offset int // element offset into data, for views
}

// NewRaw creates a new RawTensor with the given shape and type.
// Memory is allocated zero-initialized and laid out contiguously (row-major).
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	return &RawTensor{
		data:   make([]byte, shape.NumElements()*dtype.Size()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		device: device,
	}, nil
}

// EmptyLike creates an uninitialized tensor with the same shape, dtype and
// device as r.
func EmptyLike(r *RawTensor) (*RawTensor, error) {
	return NewRaw(r.Shape(), r.DType(), r.Device())
}

// FromFloat32 creates a contiguous float32 tensor initialized from data.
// len(data) must equal shape.NumElements().
func FromFloat32(data []float32, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, Float32, device)
	if err != nil {
		return nil, err
	}
	copy(r.AsFloat32(), data)
	return r, nil
}

// FromFloat64 creates a contiguous float64 tensor initialized from data.
func FromFloat64(data []float64, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, Float64, device)
	if err != nil {
		return nil, err
	}
	copy(r.AsFloat64(), data)
	return r, nil
}

// FromFloat16 creates a contiguous float16 tensor from float32 values,
// rounding each to the nearest representable half-precision value.
func FromFloat16(data []float32, shape Shape, device Device) (*RawTensor, error) {
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	r, err := NewRaw(shape, Float16, device)
	if err != nil {
		return nil, err
	}
	dst := r.AsFloat16()
	for i, v := range data {
		dst[i] = float16.Fromfloat32(v)
	}
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the tensor's memory strides (in elements).
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return r.dtype
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return r.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (r *RawTensor) ByteSize() int {
	return r.NumElements() * r.dtype.Size()
}

// IsContiguous reports whether the tensor's elements are laid out densely in
// row-major order. Views produced by Permute are generally not contiguous.
func (r *RawTensor) IsContiguous() bool {
	expected := r.shape.ComputeStrides()
	for i := range expected {
		if r.stride[i] != expected[i] {
			return false
		}
	}
	return true
}

// Data returns the raw byte slice starting at the tensor's offset.
// WARNING: Direct access to underlying memory. Use with caution.
func (r *RawTensor) Data() []byte {
	return r.data[r.offset*r.dtype.Size():]
}

// AsFloat16 interprets the data as []float16.Float16.
// Panics if the tensor's dtype is not Float16.
func (r *RawTensor) AsFloat16() []float16.Float16 {
	if r.dtype != Float16 {
		panic(fmt.Sprintf("tensor dtype is %s, not float16", r.dtype))
	}
	data := r.Data()
	return unsafe.Slice((*float16.Float16)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (r *RawTensor) AsFloat32() []float32 {
	if r.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", r.dtype))
	}
	data := r.Data()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (r *RawTensor) AsFloat64() []float64 {
	if r.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", r.dtype))
	}
	data := r.Data()
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt32 interprets the data as []int32.
// Panics if the tensor's dtype is not Int32.
func (r *RawTensor) AsInt32() []int32 {
	if r.dtype != Int32 {
		panic(fmt.Sprintf("tensor dtype is %s, not int32", r.dtype))
	}
	data := r.Data()
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsInt64 interprets the data as []int64.
// Panics if the tensor's dtype is not Int64.
func (r *RawTensor) AsInt64() []int64 {
	if r.dtype != Int64 {
		panic(fmt.Sprintf("tensor dtype is %s, not int64", r.dtype))
	}
	data := r.Data()
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), r.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (r *RawTensor) AsUint8() []uint8 {
	if r.dtype != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", r.dtype))
	}
	return r.Data()
}

// Permute returns a view of the tensor with dimensions reordered by axes.
// No data is copied; the view shares the underlying buffer and is not
// contiguous unless axes is the identity permutation.
func (r *RawTensor) Permute(axes ...int) (*RawTensor, error) {
	if len(axes) != len(r.shape) {
		return nil, fmt.Errorf("permute: got %d axes for %d dimensions", len(axes), len(r.shape))
	}
	seen := make([]bool, len(axes))
	newShape := make(Shape, len(axes))
	newStride := make([]int, len(axes))
	for i, axis := range axes {
		if axis < 0 || axis >= len(r.shape) {
			return nil, fmt.Errorf("permute: axis %d out of bounds for %d dimensions", axis, len(r.shape))
		}
		if seen[axis] {
			return nil, fmt.Errorf("permute: duplicate axis %d", axis)
		}
		seen[axis] = true
		newShape[i] = r.shape[axis]
		newStride[i] = r.stride[axis]
	}
	return &RawTensor{
		data:   r.data,
		shape:  newShape,
		stride: newStride,
		dtype:  r.dtype,
		device: r.device,
		offset: r.offset,
	}, nil
}

// WithDevice returns a view of the tensor retagged to the given device.
// The data itself is not moved; device transfers are the responsibility of
// backend packages.
func (r *RawTensor) WithDevice(device Device) *RawTensor {
	view := *r
	view.device = device
	return &view
}
