package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
	"k8s.io/klog/v2"

	"github.com/normkit/normkit/internal/tensor"
)

// Upload copies a contiguous host tensor into a GPU storage buffer and
// returns the buffer together with a WebGPU-tagged view of the tensor
// metadata. The caller owns the buffer and must Release it.
func (b *Backend) Upload(r *tensor.RawTensor) (*wgpu.Buffer, *tensor.RawTensor, error) {
	if !r.IsContiguous() {
		return nil, nil, fmt.Errorf("webgpu: cannot upload non-contiguous tensor of shape %v", r.Shape())
	}

	data := r.Data()[:r.ByteSize()]
	size := uint64(len(data))

	buffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	klog.V(4).Infof("webgpu: uploaded %s tensor %v (%d bytes)", r.DType(), r.Shape(), size)

	return buffer, r.WithDevice(tensor.WebGPU), nil
}

// Download reads a GPU buffer back into a fresh host tensor shaped and typed
// like the given WebGPU-resident tensor.
// Uses a staging buffer since storage buffers can't be mapped directly.
func (b *Backend) Download(buffer *wgpu.Buffer, like *tensor.RawTensor) (*tensor.RawTensor, error) {
	size := uint64(like.ByteSize())

	stagingBuffer := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  size,
	})
	defer stagingBuffer.Release()

	encoder := b.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(buffer, 0, stagingBuffer, 0, size)
	cmdBuffer := encoder.Finish(nil)
	b.queue.Submit(cmdBuffer)

	if err := stagingBuffer.MapAsync(b.device, wgpu.MapModeRead, 0, size); err != nil {
		return nil, fmt.Errorf("webgpu: failed to map staging buffer: %w", err)
	}

	mappedPtr := stagingBuffer.GetMappedRange(0, size)
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)

	result, err := tensor.NewRaw(like.Shape(), like.DType(), tensor.CPU)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), mappedSlice)

	stagingBuffer.Unmap()

	return result, nil
}
