// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "fmt"

// Portal is a mutable indexed view over array values in one address space.
//
// A portal borrows into memory owned by a Handle's storage or device manager.
// It stays valid only as long as the owning handle's residency state is
// unchanged: any Prepare* call, Shrink, or release on the handle invalidates
// previously returned portals. This is a contract, not a runtime check.
type Portal[T DType] interface {
	// Len returns the number of values reachable through the portal.
	Len() int
	// Get returns the value at index i.
	Get(i int) T
	// Set stores v at index i.
	Set(i int, v T)
}

// ConstPortal is a read-only indexed view over array values in one address
// space. The borrowing rules of Portal apply.
type ConstPortal[T DType] interface {
	Len() int
	Get(i int) T
}

// SlicePortal is the basic mutable host portal over a contiguous slice.
type SlicePortal[T DType] struct {
	values []T
}

// NewSlicePortal creates a mutable portal over the given slice.
func NewSlicePortal[T DType](values []T) SlicePortal[T] {
	return SlicePortal[T]{values: values}
}

// Len returns the number of values.
func (p SlicePortal[T]) Len() int { return len(p.values) }

// Get returns the value at index i.
func (p SlicePortal[T]) Get(i int) T { return p.values[i] }

// Set stores v at index i.
func (p SlicePortal[T]) Set(i int, v T) { p.values[i] = v }

// Slice returns the underlying slice for zero-copy bulk access.
func (p SlicePortal[T]) Slice() []T { return p.values }

// ConstSlicePortal is the basic read-only host portal over a contiguous
// slice. It is also the representation of an external view: a handle
// constructed from caller-owned memory stores one of these.
type ConstSlicePortal[T DType] struct {
	values []T
}

// NewConstSlicePortal creates a read-only portal over the given slice.
func NewConstSlicePortal[T DType](values []T) ConstSlicePortal[T] {
	return ConstSlicePortal[T]{values: values}
}

// Len returns the number of values.
func (p ConstSlicePortal[T]) Len() int { return len(p.values) }

// Get returns the value at index i.
func (p ConstSlicePortal[T]) Get(i int) T { return p.values[i] }

// Slice returns the underlying slice for zero-copy bulk access.
// Callers must treat the contents as read-only.
func (p ConstSlicePortal[T]) Slice() []T { return p.values }

// CopyPortal copies src into dst element by element. It panics if the
// portals disagree on length; copies between views of the same handle are
// always sized together by the residency protocol.
func CopyPortal[T DType](dst Portal[T], src ConstPortal[T]) {
	if dst.Len() != src.Len() {
		panic(fmt.Sprintf("array: portal copy length mismatch: dst %d, src %d", dst.Len(), src.Len()))
	}
	for i := 0; i < src.Len(); i++ {
		dst.Set(i, src.Get(i))
	}
}

// PortalToSlice copies the portal contents into a new slice, using the
// builtin copy when the portal is slice backed.
func PortalToSlice[T DType](src ConstPortal[T]) []T {
	out := make([]T, src.Len())
	switch p := src.(type) {
	case ConstSlicePortal[T]:
		copy(out, p.values)
	case SlicePortal[T]:
		copy(out, p.values)
	default:
		for i := range out {
			out[i] = src.Get(i)
		}
	}
	return out
}
