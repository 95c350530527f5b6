// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/fieldline-hpc/fieldline/internal/array"
)

// Type aliases for public API

// DType is a constraint for array element types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = array.DType

// DataType represents the runtime element type of an array.
type DataType = array.DataType

// Data type constants.
const (
	Float32 DataType = array.Float32
	Float64 DataType = array.Float64
	Int32   DataType = array.Int32
	Int64   DataType = array.Int64
	Uint8   DataType = array.Uint8
	Bool    DataType = array.Bool
)

// Device identifies a memory space and execution environment.
type Device = array.Device

// Device constants.
const (
	Undefined Device = array.Undefined
	Serial    Device = array.Serial
	Parallel  Device = array.Parallel
	WebGPU    Device = array.WebGPU
)

// Sentinel errors returned by handle operations.
var (
	// ErrNoData is returned when an operation needs array content but the
	// handle holds none.
	ErrNoData = array.ErrNoData

	// ErrReadOnly is returned when a mutating operation is attempted on a
	// handle wrapping caller-owned read-only memory.
	ErrReadOnly = array.ErrReadOnly

	// ErrGrowNotAllowed is returned when Shrink is asked to grow the array.
	ErrGrowNotAllowed = array.ErrGrowNotAllowed

	// ErrBadCast is returned by Cast when a Dynamic holds a different
	// element type.
	ErrBadCast = array.ErrBadCast
)

// Handle manages an array whose bytes may live in host memory, a
// caller-owned buffer, or a device memory space.
//
// T is the element type (float32, float64, int32, int64, uint8, bool).
//
// Handle behaves like a shared smart pointer: Clone returns a copy sharing
// the same underlying array, and resources are released when the last
// reference calls Release.
type Handle[T DType] = array.Handle[T]

// Creation functions

// New creates an empty handle. Typically used for output or intermediate
// arrays that will be filled by a device-side operation.
func New[T DType]() *Handle[T] {
	return array.New[T]()
}

// FromSlice creates a handle referencing the caller's slice as a read-only
// external view. No copy is made: the caller retains ownership and must
// keep the slice alive and unmodified while the handle uses it.
func FromSlice[T DType](data []T) *Handle[T] {
	return array.FromSlice(data)
}

// FromSliceCopy creates a handle owning a copy of the caller's data.
func FromSliceCopy[T DType](data []T) *Handle[T] {
	return array.FromSliceCopy(data)
}

// FromConstPortal creates a handle referencing the data behind the given
// read-only portal without copying it.
func FromConstPortal[T DType](userData ConstPortal[T]) *Handle[T] {
	return array.FromConstPortal(userData)
}

// NewFromStorage creates a handle from a pre-populated host storage.
// Ownership of the storage transfers to the handle.
func NewFromStorage[T DType](st HostStorage[T]) *Handle[T] {
	return array.NewFromStorage(st)
}

// Dynamic holds an array handle without compile-time knowledge of its
// element type. Use Cast or IsType to recover the typed handle.
type Dynamic = array.Dynamic

// Untyped is the type-erased surface of a Handle.
type Untyped = array.Untyped

// NewDynamic wraps a typed handle. The Dynamic shares the handle's
// underlying array; it is a view, not a copy.
func NewDynamic[T DType](h *Handle[T]) Dynamic {
	return array.NewDynamic(h)
}

// IsType reports whether the Dynamic wraps a handle of element type T.
func IsType[T DType](d Dynamic) bool {
	return array.IsType[T](d)
}

// Cast returns the wrapped handle as a Handle[T]. Returns ErrBadCast when
// the Dynamic holds a different element type.
func Cast[T DType](d Dynamic) (*Handle[T], error) {
	return array.Cast[T](d)
}
