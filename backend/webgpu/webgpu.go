// Copyright 2026 The normkit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides GPU device plumbing for device-resident tensors:
// adapter discovery, device/queue lifecycle and buffer upload/download.
//
// It does not implement normalization arithmetic; GPU compute kernels are
// external collaborators behind the layernorm.Kernel interface.
package webgpu

import (
	"github.com/go-webgpu/webgpu/wgpu"

	"github.com/normkit/normkit/internal/backend/webgpu"
)

// Backend owns the WebGPU instance, adapter, device and queue.
type Backend = webgpu.Backend

// New creates a new WebGPU backend.
// Returns an error if WebGPU is not available or initialization fails.
func New() (*Backend, error) {
	return webgpu.New()
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() bool {
	return webgpu.IsAvailable()
}

// ListAdapters returns information about available GPU adapters.
func ListAdapters() ([]*wgpu.AdapterInfoGo, error) {
	return webgpu.ListAdapters()
}
