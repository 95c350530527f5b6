// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "fmt"

// HostStorage is the contract for a host-side owner of a resizable value
// sequence. The basic implementation is Storage; alternative strategies
// (pooled, mapped, pinned) satisfy the same interface.
type HostStorage[T DType] interface {
	// Len returns the current number of values.
	Len() int
	// Portal returns a mutable portal over the stored values.
	Portal() Portal[T]
	// ConstPortal returns a read-only portal over the stored values.
	ConstPortal() ConstPortal[T]
	// Allocate resizes the storage to exactly n values. Growing discards
	// prior contents; shrinking into existing capacity keeps them.
	Allocate(n int) error
	// Shrink reduces the logical length to n without reallocating.
	// Returns ErrGrowNotAllowed if n exceeds the current length.
	Shrink(n int) error
	// Release frees the storage back to the empty state.
	Release()
}

// SliceBacked is implemented by storages whose values live in a single
// contiguous Go slice. Shared-memory device managers use it to alias host
// memory instead of copying.
type SliceBacked[T DType] interface {
	Slice() []T
}

// Storage is the basic slice-backed host storage.
//
// The zero value is an empty storage ready for use. Storage is not safe for
// concurrent use; the owning handle serializes access.
type Storage[T DType] struct {
	values []T
}

var (
	_ HostStorage[float32] = (*Storage[float32])(nil)
	_ SliceBacked[float32] = (*Storage[float32])(nil)
)

// NewStorage creates an empty storage.
func NewStorage[T DType]() *Storage[T] {
	return &Storage[T]{}
}

// NewStorageFromSlice creates a storage owning the given slice. The caller
// hands over ownership; the slice must not be used afterwards.
func NewStorageFromSlice[T DType](values []T) *Storage[T] {
	return &Storage[T]{values: values}
}

// Len returns the current number of values.
func (s *Storage[T]) Len() int { return len(s.values) }

// Portal returns a mutable portal over the stored values.
func (s *Storage[T]) Portal() Portal[T] { return NewSlicePortal(s.values) }

// ConstPortal returns a read-only portal over the stored values.
func (s *Storage[T]) ConstPortal() ConstPortal[T] { return NewConstSlicePortal(s.values) }

// Slice returns the underlying slice.
func (s *Storage[T]) Slice() []T { return s.values }

// Allocate resizes the storage to exactly n values. If n fits in the
// existing capacity the allocation is reused and values up to n survive;
// otherwise a fresh zeroed slice replaces the old one.
func (s *Storage[T]) Allocate(n int) error {
	if n < 0 {
		return fmt.Errorf("array: invalid storage length %d", n)
	}
	if n <= cap(s.values) {
		s.values = s.values[:n]
		return nil
	}
	s.values = make([]T, n)
	return nil
}

// Shrink reduces the logical length to n. Capacity is retained; shrink only
// truncates.
func (s *Storage[T]) Shrink(n int) error {
	if n < 0 {
		return fmt.Errorf("array: invalid storage length %d", n)
	}
	if n > len(s.values) {
		return ErrGrowNotAllowed
	}
	s.values = s.values[:n]
	return nil
}

// Release frees the storage back to the empty state.
func (s *Storage[T]) Release() {
	s.values = nil
}

// StealSlice takes the underlying slice away from the storage, leaving it
// empty. The caller becomes responsible for the memory; the storage will
// never reuse it.
func (s *Storage[T]) StealSlice() []T {
	stolen := s.values
	s.values = nil
	return stolen
}
