// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package serial implements the serial execution backend. The device shares
// the host address space and runs work on the calling goroutine, so
// transfers degenerate to aliasing host memory whenever the source is slice
// backed.
package serial

import (
	"github.com/fieldline-hpc/fieldline/internal/array"
)

// Adapter selects the serial device. It is stateless; the zero value is
// ready for use.
type Adapter[T array.DType] struct{}

// NewAdapter returns an adapter for the serial device.
func NewAdapter[T array.DType]() Adapter[T] {
	return Adapter[T]{}
}

// Device returns the serial device identity.
func (Adapter[T]) Device() array.Device { return array.Serial }

// NewManager creates a device manager bound to the serial device.
func (Adapter[T]) NewManager() array.DeviceManager[T] {
	return &Manager[T]{}
}

var _ array.DeviceAdapter[float32] = Adapter[float32]{}

// Manager owns the serial device's copy of an array. Because the serial
// device is the host address space, copy-in aliases the source memory when
// it is slice backed and only falls back to a real copy for computed
// portals.
type Manager[T array.DType] struct {
	values  []T
	aliased bool
}

var _ array.DeviceManager[float32] = (*Manager[float32])(nil)

// Device returns the serial device identity.
func (m *Manager[T]) Device() array.Device { return array.Serial }

// Len returns the number of device-resident values.
func (m *Manager[T]) Len() int { return len(m.values) }

// CopyInForInput makes src available for read-only use. Slice-backed
// sources are aliased; the copy is elided.
func (m *Manager[T]) CopyInForInput(src array.ConstPortal[T]) error {
	if sb, ok := src.(interface{ Slice() []T }); ok {
		m.values = sb.Slice()[:src.Len()]
		m.aliased = true
		return nil
	}
	m.values = array.PortalToSlice(src)
	m.aliased = false
	return nil
}

// CopyInForInPlace makes the storage contents available for read-write use,
// aliasing the storage memory when possible so writes land directly in it.
func (m *Manager[T]) CopyInForInPlace(st array.HostStorage[T]) error {
	if sb, ok := st.(array.SliceBacked[T]); ok {
		m.values = sb.Slice()[:st.Len()]
		m.aliased = true
		return nil
	}
	m.values = array.PortalToSlice(st.ConstPortal())
	m.aliased = false
	return nil
}

// AllocateForOutput allocates n values with no copy.
func (m *Manager[T]) AllocateForOutput(n int) error {
	m.values = make([]T, n)
	m.aliased = false
	return nil
}

// CopyOutTo copies the device contents into the host storage. When the
// storage already aliases the device memory the copy is skipped.
func (m *Manager[T]) CopyOutTo(st array.HostStorage[T]) error {
	if err := st.Allocate(len(m.values)); err != nil {
		return err
	}
	if len(m.values) == 0 {
		return nil
	}
	if sb, ok := st.(array.SliceBacked[T]); ok {
		dst := sb.Slice()
		if &dst[0] == &m.values[0] {
			return nil
		}
		copy(dst, m.values)
		return nil
	}
	array.CopyPortal(st.Portal(), array.NewConstSlicePortal(m.values))
	return nil
}

// Shrink logically truncates the device array; capacity is retained.
func (m *Manager[T]) Shrink(n int) {
	m.values = m.values[:n]
}

// Portal returns a mutable device-scoped portal.
func (m *Manager[T]) Portal() array.Portal[T] {
	return array.NewSlicePortal(m.values)
}

// ConstPortal returns a read-only device-scoped portal.
func (m *Manager[T]) ConstPortal() array.ConstPortal[T] {
	return array.NewConstSlicePortal(m.values)
}

// Release drops the device copy. Aliased host memory stays with its owner.
func (m *Manager[T]) Release() {
	m.values = nil
	m.aliased = false
}
