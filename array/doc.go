// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides the public API for array handles in the Fieldline
// framework.
//
// # Overview
//
// An array handle manages a one-dimensional array whose bytes may live in
// host memory, a caller-owned buffer, or a device memory space. The handle
// tracks where a valid copy of the data resides and performs at most one
// transfer per operation, eliding copies whenever a valid view already
// exists in the requested address space.
//
// # Basic Usage
//
//	import (
//	    "github.com/fieldline-hpc/fieldline/array"
//	    "github.com/fieldline-hpc/fieldline/backend/serial"
//	)
//
//	func main() {
//	    h := array.FromSliceCopy([]float32{1, 2, 3, 4})
//	    defer h.Release()
//
//	    in, err := h.PrepareForInput(serial.New[float32]())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    // run a device algorithm against in ...
//	}
//
// # Supported Data Types
//
// Handles are generic over the DType constraint:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers, useful for masks and images)
//   - bool (boolean flags)
//
// # Devices
//
// Data can be prepared for execution on different devices:
//   - Serial: host address space, calling goroutine
//   - Parallel: host address space, goroutine worker pool
//   - WebGPU: discrete GPU memory, zero-CGO bindings (Windows)
//
// On the shared-memory devices transfers degenerate to aliasing host memory,
// so Prepare* calls are effectively free.
//
// # Ownership
//
// FromSlice wraps caller-owned memory as a read-only view and never copies
// it; mutating operations fail with ErrReadOnly. FromSliceCopy and New
// produce handles that own their storage. Clone shares the underlying state
// block; the last Release frees all host and device resources.
//
// A handle is not safe for concurrent use. All operations on the same array
// must be serialized by the caller.
package array
