// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"fmt"
	"sync/atomic"
)

// state is the private block shared by all copies of a Handle. It tracks
// three mutually constrained views of the same logical array:
//
//   - an optional read-only external view over caller-owned memory,
//   - an owned host storage,
//   - an optional device manager bound to at most one device.
//
// externalValid and hostValid are never simultaneously true. execValid may
// mirror either host-side view in a read-only state; any mutation on the
// device side drops the host-side validity. The logical length is defined by
// the highest-priority valid view: external, then host, then device.
type state[T DType] struct {
	external      ConstPortal[T]
	externalValid bool

	host      HostStorage[T]
	hostValid bool

	exec      DeviceManager[T]
	execValid bool

	refCount atomic.Int32
}

// Handle manages an array whose bytes may live in host memory, a caller-owned
// buffer, or a device memory space. At most one transfer is performed per
// operation, and copies are elided whenever a valid view already exists in
// the requested address space.
//
// Handle behaves like a shared smart pointer: Clone returns a copy sharing
// the same state block, and the block's resources are released when the last
// reference is released.
//
// A handle is not safe for concurrent use. Clone and Release are atomic, but
// invoking any other operation on two copies from different goroutines
// without external synchronization is undefined behavior: all access to a
// given array's data must be serialized by the caller.
type Handle[T DType] struct {
	s *state[T]
}

func newHandle[T DType](s *state[T]) *Handle[T] {
	if s.host == nil {
		s.host = NewStorage[T]()
	}
	s.refCount.Store(1)
	return &Handle[T]{s: s}
}

// New creates an empty handle. Typically used for output or intermediate
// arrays that will be filled by a device-side operation.
func New[T DType]() *Handle[T] {
	return newHandle(&state[T]{})
}

// FromConstPortal creates a handle referencing the data behind the given
// read-only portal. The handle keeps a reference to the caller's memory and
// never copies it unless a device transfer requires one.
func FromConstPortal[T DType](userData ConstPortal[T]) *Handle[T] {
	return newHandle(&state[T]{
		external:      userData,
		externalValid: true,
	})
}

// FromSlice creates a handle referencing the caller's slice as a read-only
// external view. No copy is made: the caller retains ownership and must keep
// the slice alive and unmodified while the handle uses it. Mutating
// operations on the handle fail with ErrReadOnly; use FromSliceCopy for an
// owned, writable array.
func FromSlice[T DType](data []T) *Handle[T] {
	return FromConstPortal[T](NewConstSlicePortal(data))
}

// FromSliceCopy creates a handle owning a copy of the caller's data.
func FromSliceCopy[T DType](data []T) *Handle[T] {
	owned := make([]T, len(data))
	copy(owned, data)
	return NewFromStorage[T](NewStorageFromSlice(owned))
}

// NewFromStorage creates a handle from a pre-populated host storage. The
// storage contents are assumed valid; ownership transfers to the handle.
// Intended for storage-strategy specializations.
func NewFromStorage[T DType](st HostStorage[T]) *Handle[T] {
	return newHandle(&state[T]{
		host:      st,
		hostValid: true,
	})
}

// Clone returns a new handle sharing this handle's state block. Both copies
// refer to the same array.
func (h *Handle[T]) Clone() *Handle[T] {
	h.s.refCount.Add(1)
	return &Handle[T]{s: h.s}
}

// Release decrements the reference count and, when the last reference is
// dropped, releases all host and device resources. The handle must not be
// used after Release.
func (h *Handle[T]) Release() {
	if h.s.refCount.Add(-1) == 0 {
		h.ReleaseAllResources()
		if h.s.exec != nil {
			h.s.exec.Release()
			h.s.exec = nil
		}
	}
}

// SharesState reports whether two handles refer to the same array.
func (h *Handle[T]) SharesState(other *Handle[T]) bool {
	return h.s == other.s
}

// DataType returns the runtime type of the array's elements.
func (h *Handle[T]) DataType() DataType {
	var dummy T
	return inferDataType(dummy)
}

// Len returns the number of values in the array: the length of the external
// view if one is valid, else the host storage, else the device array, else 0.
func (h *Handle[T]) Len() int {
	switch {
	case h.s.externalValid:
		return h.s.external.Len()
	case h.s.hostValid:
		return h.s.host.Len()
	case h.s.execValid:
		return h.s.exec.Len()
	default:
		return 0
	}
}

// HostPortal returns a mutable portal over the host storage.
//
// Handing out a writable host view invalidates any device mirror, so the
// device manager's resources are released as a side effect. Fails with
// ErrReadOnly when the handle wraps an external view and with ErrNoData when
// no host-side view is valid.
func (h *Handle[T]) HostPortal() (Portal[T], error) {
	if h.s.externalValid {
		return nil, ErrReadOnly
	}
	if !h.s.hostValid {
		return nil, ErrNoData
	}
	h.ReleaseDeviceResources()
	return h.s.host.Portal(), nil
}

// HostConstPortal returns a read-only portal over the host-side view,
// pulling device data back to the host first when no host-side view is
// valid. The pull changes only the internal residency cache, never the
// observable array content; device validity is untouched.
func (h *Handle[T]) HostConstPortal() (ConstPortal[T], error) {
	if !h.s.externalValid && !h.s.hostValid {
		if !h.s.execValid {
			return nil, ErrNoData
		}
		if err := h.syncHost(); err != nil {
			return nil, err
		}
	}
	if h.s.externalValid {
		return h.s.external, nil
	}
	return h.s.host.ConstPortal(), nil
}

// Shrink reduces the array length to n without changing the retained values.
// Every valid view is truncated to the same length; no capacity is released.
// Fails with ErrGrowNotAllowed when n exceeds the current length and with
// ErrReadOnly when the only valid view is external.
func (h *Handle[T]) Shrink(n int) error {
	current := h.Len()
	switch {
	case n < 0:
		return fmt.Errorf("array: invalid shrink length %d", n)
	case n > current:
		return ErrGrowNotAllowed
	case n == current:
		return nil
	}
	if h.s.externalValid {
		return ErrReadOnly
	}
	if h.s.hostValid {
		if err := h.s.host.Shrink(n); err != nil {
			return err
		}
	}
	if h.s.execValid {
		h.s.exec.Shrink(n)
	}
	return nil
}

// ReleaseDeviceResources frees any device-resident copy of the array. The
// device binding itself is retained so a later Prepare* call on the same
// device does not rebuild the manager. Never fails; a handle with no device
// data is left unchanged.
func (h *Handle[T]) ReleaseDeviceResources() {
	if h.s.execValid {
		h.s.exec.Release()
		h.s.execValid = false
	}
}

// ReleaseAllResources frees the device copy, forgets any external view, and
// releases the host storage. The handle is left in the all-invalid empty
// state. Never fails.
func (h *Handle[T]) ReleaseAllResources() {
	h.ReleaseDeviceResources()

	// Forget any caller-owned memory; the caller keeps ownership.
	h.s.external = nil
	h.s.externalValid = false

	if h.s.hostValid {
		h.s.host.Release()
		h.s.hostValid = false
	}
}

// PrepareForInput makes the array available on the adapter's device for
// read-only use and returns a device-scoped read-only portal.
//
// If a valid device copy already exists no transfer happens. Otherwise the
// external view or the host storage is copied in and stays valid as a
// mirrored read-only state. Fails with ErrNoData when the handle holds no
// data.
func (h *Handle[T]) PrepareForInput(ad DeviceAdapter[T]) (ConstPortal[T], error) {
	if !h.s.externalValid && !h.s.hostValid && !h.s.execValid {
		return nil, ErrNoData
	}
	if err := h.prepareForDevice(ad); err != nil {
		return nil, err
	}

	switch {
	case h.s.execValid:
		// Data already on the device.
	case h.s.externalValid:
		if err := h.s.exec.CopyInForInput(h.s.external); err != nil {
			return nil, err
		}
		h.s.execValid = true
	case h.s.hostValid:
		if err := h.s.exec.CopyInForInput(h.s.host.ConstPortal()); err != nil {
			return nil, err
		}
		h.s.execValid = true
	default:
		return nil, ErrNoData
	}
	return h.s.exec.ConstPortal(), nil
}

// PrepareForOutput allocates a device-resident array of length n with no
// copy and returns a writable device-scoped portal.
//
// Any prior content is superseded: the external and host views are
// invalidated immediately. The device view is marked valid under the
// contract that the caller fills the returned portal before any other
// operation reads the handle; the handle does not track "has been filled".
func (h *Handle[T]) PrepareForOutput(n int, ad DeviceAdapter[T]) (Portal[T], error) {
	if n < 0 {
		return nil, fmt.Errorf("array: invalid output length %d", n)
	}

	h.s.external = nil
	h.s.externalValid = false
	h.s.hostValid = false

	if err := h.prepareForDevice(ad); err != nil {
		return nil, err
	}
	// Rebinding to a new device pulls old device data to the host so it is
	// not lost; that content is condemned here, so drop it again.
	h.s.hostValid = false

	if err := h.s.exec.AllocateForOutput(n); err != nil {
		return nil, err
	}
	h.s.execValid = true
	return h.s.exec.Portal(), nil
}

// PrepareForInPlace makes the array available on the adapter's device for
// combined read-write use and returns a writable device-scoped portal.
//
// Fails with ErrReadOnly when the handle wraps an external view: writing
// device memory derived from caller-owned memory could mutate caller state
// through an implicit alias, so the caller must copy first. After the device
// view is established the host copy is marked invalid (it is about to
// diverge) but its resources are kept: a shared-memory device manager may
// alias them.
func (h *Handle[T]) PrepareForInPlace(ad DeviceAdapter[T]) (Portal[T], error) {
	if h.s.externalValid {
		return nil, ErrReadOnly
	}
	if !h.s.hostValid && !h.s.execValid {
		return nil, ErrNoData
	}
	if err := h.prepareForDevice(ad); err != nil {
		return nil, err
	}

	if !h.s.execValid {
		if !h.s.hostValid {
			return nil, ErrNoData
		}
		if err := h.s.exec.CopyInForInPlace(h.s.host); err != nil {
			return nil, err
		}
		h.s.execValid = true
	}

	// The device copy is about to diverge from the host copy. Do not release
	// the host storage: a shared-memory manager may alias it.
	h.s.hostValid = false

	return h.s.exec.Portal(), nil
}

// prepareForDevice gets the handle ready to interact with the adapter's
// device. A manager already bound to that device is kept as-is. A manager
// bound to a different device is torn down after any exclusively
// device-resident data has been pulled back to the host; only one device
// binding is held at a time. Only the internal residency cache changes; the
// logical array content is unaffected.
func (h *Handle[T]) prepareForDevice(ad DeviceAdapter[T]) error {
	if h.s.exec != nil {
		if h.s.exec.Device() == ad.Device() {
			return nil
		}
		if err := h.syncHost(); err != nil {
			return err
		}
		h.s.exec.Release()
		h.s.exec = nil
		h.s.execValid = false
	}
	h.s.exec = ad.NewManager()
	return nil
}

// syncHost copies device data into the host storage when no host-side view
// is valid. It is the single mechanism by which device-only results become
// visible on the host, and a no-op whenever a host-side view already exists.
func (h *Handle[T]) syncHost() error {
	if h.s.externalValid || h.s.hostValid {
		return nil
	}
	if !h.s.execValid {
		return nil
	}
	if err := h.s.exec.CopyOutTo(h.s.host); err != nil {
		return err
	}
	h.s.hostValid = true
	return nil
}
