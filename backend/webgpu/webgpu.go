//go:build windows

// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU execution device for array handles.
//
// The WebGPU device holds array data in GPU buffers through zero-CGO
// bindings. It is discrete: unlike the shared-memory devices, every
// preparation performs a real transfer through the wgpu queue.
//
// Example:
//
//	import (
//	    "github.com/fieldline-hpc/fieldline/array"
//	    "github.com/fieldline-hpc/fieldline/backend/webgpu"
//	)
//
//	func main() {
//	    gpu, err := webgpu.New()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer gpu.Release()
//
//	    h := array.FromSliceCopy([]float32{1, 2, 3})
//	    defer h.Release()
//
//	    in, err := h.PrepareForInput(webgpu.NewAdapter[float32](gpu))
//	    ...
//	}
package webgpu

import (
	"github.com/fieldline-hpc/fieldline/array"
	internalwebgpu "github.com/fieldline-hpc/fieldline/internal/backend/webgpu"
)

// Context owns the WebGPU instance, adapter, device, and queue shared by
// all adapters created from it.
type Context = internalwebgpu.Context

// Adapter selects the WebGPU device backed by a Context.
type Adapter[T array.DType] = internalwebgpu.Adapter[T]

// Compile-time check that Adapter implements array.DeviceAdapter.
var _ array.DeviceAdapter[float32] = Adapter[float32]{}

// New initializes WebGPU and returns a ready context. Call Release when
// done to free GPU resources.
//
// Returns an error if WebGPU initialization fails (e.g., no compatible GPU).
func New() (*Context, error) {
	return internalwebgpu.NewContext()
}

// NewAdapter returns an adapter for the WebGPU device backed by the given
// context.
func NewAdapter[T array.DType](ctx *Context) Adapter[T] {
	return internalwebgpu.NewAdapter[T](ctx)
}

// IsAvailable checks if WebGPU is available on the current system. It is
// useful for graceful fallback to a host device when no GPU is present.
func IsAvailable() bool {
	return internalwebgpu.IsAvailable()
}
