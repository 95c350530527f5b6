// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

// Untyped is the type-erased surface of a Handle. Every Handle[T]
// implements it.
type Untyped interface {
	Len() int
	DataType() DataType
	ReleaseDeviceResources()
	ReleaseAllResources()
}

var _ Untyped = (*Handle[float32])(nil)

// Dynamic holds an array handle without compile-time knowledge of its
// element type. It is used to interface with data sources where the element
// type is not known until runtime; Cast recovers the typed handle when the
// consumer knows what to expect.
type Dynamic struct {
	handle Untyped
}

// NewDynamic wraps a typed handle. The Dynamic shares the handle's state
// block; it is a view, not a copy.
func NewDynamic[T DType](h *Handle[T]) Dynamic {
	return Dynamic{handle: h}
}

// Len returns the number of values in the wrapped array, or 0 for an empty
// Dynamic.
func (d Dynamic) Len() int {
	if d.handle == nil {
		return 0
	}
	return d.handle.Len()
}

// DataType returns the runtime element type of the wrapped array.
// Panics on an empty Dynamic.
func (d Dynamic) DataType() DataType {
	return d.handle.DataType()
}

// ReleaseAllResources releases the wrapped handle's resources. No-op on an
// empty Dynamic.
func (d Dynamic) ReleaseAllResources() {
	if d.handle != nil {
		d.handle.ReleaseAllResources()
	}
}

// IsType reports whether the Dynamic wraps a handle of element type T.
func IsType[T DType](d Dynamic) bool {
	_, ok := d.handle.(*Handle[T])
	return ok
}

// Cast returns the wrapped handle as a Handle[T]. Returns ErrBadCast when
// the Dynamic holds a different element type; use IsType to check first.
func Cast[T DType](d Dynamic) (*Handle[T], error) {
	h, ok := d.handle.(*Handle[T])
	if !ok {
		return nil, ErrBadCast
	}
	return h, nil
}
