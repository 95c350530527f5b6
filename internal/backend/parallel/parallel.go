// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package parallel implements the multicore execution backend. The device
// shares the host address space but runs work across a goroutine pool; bulk
// transfers are chunked over the pool.
package parallel

import (
	"github.com/fieldline-hpc/fieldline/internal/array"
	"github.com/fieldline-hpc/fieldline/internal/parallel"
)

// Adapter selects the parallel device.
type Adapter[T array.DType] struct {
	cfg parallel.Config
}

// NewAdapter returns an adapter for the parallel device using the default
// worker configuration.
func NewAdapter[T array.DType]() Adapter[T] {
	return Adapter[T]{cfg: parallel.DefaultConfig()}
}

// NewAdapterWithConfig returns an adapter with an explicit worker
// configuration, mainly for tests and benchmarks.
func NewAdapterWithConfig[T array.DType](cfg parallel.Config) Adapter[T] {
	return Adapter[T]{cfg: cfg}
}

// Device returns the parallel device identity.
func (Adapter[T]) Device() array.Device { return array.Parallel }

// NewManager creates a device manager bound to the parallel device.
func (a Adapter[T]) NewManager() array.DeviceManager[T] {
	return &Manager[T]{cfg: a.cfg}
}

var _ array.DeviceAdapter[float32] = Adapter[float32]{}

// Manager owns the parallel device's copy of an array. In-place copy-in
// aliases the host storage (same address space); read-only copy-in takes a
// chunked parallel copy so a host mirror can be shrunk or released without
// disturbing in-flight device work.
type Manager[T array.DType] struct {
	values  []T
	aliased bool
	cfg     parallel.Config
}

var _ array.DeviceManager[float32] = (*Manager[float32])(nil)

// Device returns the parallel device identity.
func (m *Manager[T]) Device() array.Device { return array.Parallel }

// Len returns the number of device-resident values.
func (m *Manager[T]) Len() int { return len(m.values) }

// For runs f(i) for i in [0, n) on the device's worker pool. Algorithm
// consumers use it to execute data-parallel work against this manager's
// portals.
func (m *Manager[T]) For(n int, f func(i int)) {
	parallel.For(n, f, m.cfg)
}

// CopyInForInput copies src into device memory for read-only use.
func (m *Manager[T]) CopyInForInput(src array.ConstPortal[T]) error {
	m.values = make([]T, src.Len())
	m.aliased = false
	if sb, ok := src.(interface{ Slice() []T }); ok {
		parallel.Copy(m.values, sb.Slice()[:src.Len()], m.cfg)
		return nil
	}
	parallel.For(src.Len(), func(i int) {
		m.values[i] = src.Get(i)
	}, m.cfg)
	return nil
}

// CopyInForInPlace makes the storage contents available for read-write use,
// aliasing the storage memory when possible.
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

// CopyOutTo copies the device contents into the host storage with a chunked
// parallel copy, skipping it when the storage aliases the device memory.
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
		parallel.Copy(dst, m.values, m.cfg)
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
