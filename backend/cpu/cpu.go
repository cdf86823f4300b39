// Copyright 2026 The normkit Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host-memory reference layer-normalization kernel.
//
// Example:
//
//	kernel := cpu.New()
//	output, mean, invvar, err := layernorm.Forward(kernel, input, tensor.Shape{768}, 1e-5)
package cpu

import (
	"github.com/normkit/normkit/internal/backend/cpu"
)

// Kernel computes layer normalization on host memory with float64
// accumulation. Supported input dtypes: float16, float32, float64.
type Kernel = cpu.Kernel

// New creates a new CPU kernel.
func New() *Kernel {
	return cpu.New()
}
