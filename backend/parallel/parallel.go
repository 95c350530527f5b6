// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel provides the multicore execution device for array
// handles.
//
// The parallel device shares the host address space but runs work across a
// goroutine worker pool. Bulk transfers are chunked over the pool; in-place
// preparation still aliases host memory, so the only priced transfer is the
// read-only copy-in that protects in-flight device work from host-side
// shrinks.
//
// Example:
//
//	import (
//	    "github.com/fieldline-hpc/fieldline/array"
//	    "github.com/fieldline-hpc/fieldline/backend/parallel"
//	)
//
//	func main() {
//	    h := array.New[float32]()
//	    defer h.Release()
//
//	    out, err := h.PrepareForOutput(1<<20, parallel.New[float32]())
//	    ...
//	}
package parallel

import (
	"github.com/fieldline-hpc/fieldline/array"
	internalparallel "github.com/fieldline-hpc/fieldline/internal/backend/parallel"
	"github.com/fieldline-hpc/fieldline/internal/parallel"
)

// Adapter selects the parallel device.
type Adapter[T array.DType] = internalparallel.Adapter[T]

// Compile-time check that Adapter implements array.DeviceAdapter.
var _ array.DeviceAdapter[float32] = Adapter[float32]{}

// Config controls the device's worker pool.
type Config = parallel.Config

// DefaultConfig returns worker settings based on CPU count.
func DefaultConfig() Config {
	return parallel.DefaultConfig()
}

// New returns an adapter for the parallel device using the default worker
// configuration.
func New[T array.DType]() Adapter[T] {
	return internalparallel.NewAdapter[T]()
}

// NewWithConfig returns an adapter with an explicit worker configuration.
func NewWithConfig[T array.DType](cfg Config) Adapter[T] {
	return internalparallel.NewAdapterWithConfig[T](cfg)
}
