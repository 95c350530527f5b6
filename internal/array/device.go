// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

// Device identifies an execution environment.
type Device int

// Supported execution environments.
const (
	Undefined Device = iota
	Serial
	Parallel
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case Serial:
		return "Serial"
	case Parallel:
		return "Parallel"
	case WebGPU:
		return "WebGPU"
	default:
		return "Undefined"
	}
}

// DeviceManager owns a device-resident copy of an array for exactly one
// device identity and performs transfers between the host and that device.
//
// A manager is created by a DeviceAdapter, exclusively owned by one handle's
// state block, and torn down with Release. Transfer entry points return
// errors; portal accessors panic on unrecoverable device faults, matching
// the backend convention throughout the framework.
type DeviceManager[T DType] interface {
	// Device returns the identity this manager is bound to.
	Device() Device
	// Len returns the number of device-resident values.
	Len() int
	// CopyInForInput makes src available on the device for read-only use.
	// Shared-memory devices may alias the source instead of copying.
	CopyInForInput(src ConstPortal[T]) error
	// CopyInForInPlace makes the storage contents available on the device
	// for read-write use. Shared-memory devices may alias the storage.
	CopyInForInPlace(st HostStorage[T]) error
	// AllocateForOutput allocates n device-resident values with no copy.
	AllocateForOutput(n int) error
	// CopyOutTo copies the device contents into the given host storage,
	// resizing it as needed.
	CopyOutTo(st HostStorage[T]) error
	// Shrink logically truncates the device array to n values without
	// releasing capacity. The handle validates n before calling.
	Shrink(n int)
	// Portal returns a mutable device-scoped portal.
	Portal() Portal[T]
	// ConstPortal returns a read-only device-scoped portal.
	ConstPortal() ConstPortal[T]
	// Release frees all device resources held by the manager.
	Release()
}

// DeviceAdapter selects an execution environment and creates device
// managers bound to it. Backend packages provide adapter constructors;
// handles never construct managers directly.
type DeviceAdapter[T DType] interface {
	Device() Device
	NewManager() DeviceManager[T]
}
