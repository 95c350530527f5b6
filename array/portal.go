// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/fieldline-hpc/fieldline/internal/array"
)

// Portal is a mutable random-access view over array values. Portals are
// scoped to the address space they were created for; a host portal must not
// outlive the Prepare* call that superseded it.
type Portal[T DType] = array.Portal[T]

// ConstPortal is a read-only random-access view over array values.
type ConstPortal[T DType] = array.ConstPortal[T]

// SlicePortal is a mutable portal backed by a Go slice.
type SlicePortal[T DType] = array.SlicePortal[T]

// ConstSlicePortal is a read-only portal backed by a Go slice.
type ConstSlicePortal[T DType] = array.ConstSlicePortal[T]

// NewSlicePortal returns a mutable portal over the given slice.
func NewSlicePortal[T DType](values []T) SlicePortal[T] {
	return array.NewSlicePortal(values)
}

// NewConstSlicePortal returns a read-only portal over the given slice.
func NewConstSlicePortal[T DType](values []T) ConstSlicePortal[T] {
	return array.NewConstSlicePortal(values)
}

// CopyPortal copies every value from src to dst. The portals must have the
// same length.
func CopyPortal[T DType](dst Portal[T], src ConstPortal[T]) {
	array.CopyPortal(dst, src)
}

// PortalToSlice materializes the portal's values into a new slice.
func PortalToSlice[T DType](src ConstPortal[T]) []T {
	return array.PortalToSlice(src)
}

// HostStorage is the strategy interface for a handle's owned host memory.
type HostStorage[T DType] = array.HostStorage[T]

// Storage is the default slice-backed host storage.
type Storage[T DType] = array.Storage[T]

// NewStorage returns an empty slice-backed storage.
func NewStorage[T DType]() *Storage[T] {
	return array.NewStorage[T]()
}

// NewStorageFromSlice returns a storage taking ownership of the given slice.
func NewStorageFromSlice[T DType](values []T) *Storage[T] {
	return array.NewStorageFromSlice(values)
}

// DeviceAdapter selects a device and creates managers bound to it. Backend
// packages provide implementations; see backend/serial, backend/parallel,
// and backend/webgpu.
type DeviceAdapter[T DType] = array.DeviceAdapter[T]

// DeviceManager owns a device-resident copy of an array on behalf of a
// handle. Only backend implementers need this interface.
type DeviceManager[T DType] = array.DeviceManager[T]
