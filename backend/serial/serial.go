// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serial provides the serial execution device for array handles.
//
// The serial device runs in the host address space on the calling
// goroutine. Preparing an array for this device aliases host memory
// whenever possible, so transfers are effectively free. It is the baseline
// device and is always available.
//
// Example:
//
//	import (
//	    "github.com/fieldline-hpc/fieldline/array"
//	    "github.com/fieldline-hpc/fieldline/backend/serial"
//	)
//
//	func main() {
//	    h := array.FromSliceCopy([]float32{1, 2, 3})
//	    defer h.Release()
//
//	    in, err := h.PrepareForInput(serial.New[float32]())
//	    ...
//	}
package serial

import (
	"github.com/fieldline-hpc/fieldline/array"
	internalserial "github.com/fieldline-hpc/fieldline/internal/backend/serial"
)

// Adapter selects the serial device. It is stateless; the zero value is
// ready for use.
type Adapter[T array.DType] = internalserial.Adapter[T]

// Compile-time check that Adapter implements array.DeviceAdapter.
var _ array.DeviceAdapter[float32] = Adapter[float32]{}

// New returns an adapter for the serial device.
func New[T array.DType]() Adapter[T] {
	return internalserial.NewAdapter[T]()
}
