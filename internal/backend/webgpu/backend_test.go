package webgpu

import (
	"testing"

	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/normkit/normkit/internal/tensor"
)

// AdapterInfo must expose the decoded Go-string adapter fields.
var _ func(*Backend) *wgpu.AdapterInfoGo = (*Backend).AdapterInfo

func TestNewBackend(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available on this system")
	}

	b, err := New()
	if err != nil {
		t.Skipf("WebGPU adapter present but device init failed: %v", err)
	}
	defer b.Release()

	if b.Device() != tensor.WebGPU {
		t.Errorf("Device() = %v, want %v", b.Device(), tensor.WebGPU)
	}

	info := b.AdapterInfo()
	if info == nil {
		t.Fatal("AdapterInfo() returned nil")
	}
	t.Logf("adapter: device=%q vendor=%q description=%q", info.Device, info.Vendor, info.Description)
}

func TestListAdapters(t *testing.T) {
	adapters, err := ListAdapters()
	if err != nil {
		t.Skipf("WebGPU not available: %v", err)
	}
	if len(adapters) == 0 {
		t.Fatal("ListAdapters returned no adapters without error")
	}
	for i, info := range adapters {
		t.Logf("adapter[%d]: device=%q vendor=%q", i, info.Device, info.Vendor)
	}
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available on this system")
	}
	b, err := New()
	if err != nil {
		t.Skipf("WebGPU device init failed: %v", err)
	}
	defer b.Release()

	host, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}

	buffer, resident, err := b.Upload(host)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	defer buffer.Release()

	if resident.Device() != tensor.WebGPU {
		t.Errorf("uploaded view device = %v, want %v", resident.Device(), tensor.WebGPU)
	}
	if !resident.Shape().Equal(host.Shape()) {
		t.Errorf("uploaded view shape = %v, want %v", resident.Shape(), host.Shape())
	}

	back, err := b.Download(buffer, resident)
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if back.Device() != tensor.CPU {
		t.Errorf("downloaded tensor device = %v, want %v", back.Device(), tensor.CPU)
	}
	want := host.AsFloat32()
	got := back.AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("round trip mismatch at %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestUploadRejectsNonContiguous(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available on this system")
	}
	b, err := New()
	if err != nil {
		t.Skipf("WebGPU device init failed: %v", err)
	}
	defer b.Release()

	host, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	if err != nil {
		t.Fatal(err)
	}
	transposed, err := host.Permute(1, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := b.Upload(transposed); err == nil {
		t.Error("expected error uploading non-contiguous tensor")
	}
}
