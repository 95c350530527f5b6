// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

// mockManager is a slice-backed device manager that counts transfers. Tests
// use it to assert that handle operations perform at most one transfer and
// elide copies when a valid device view exists.
type mockManager[T DType] struct {
	device Device
	values []T

	copyIns   int
	copyOuts  int
	allocs    int
	released  int
	inPlaceIn int
}

// mockAdapter binds mock managers to an arbitrary device identity and
// remembers the last manager it created so tests can inspect counters.
type mockAdapter[T DType] struct {
	device Device
	last   *mockManager[T]
}

func newMockAdapter[T DType](device Device) *mockAdapter[T] {
	return &mockAdapter[T]{device: device}
}

func (a *mockAdapter[T]) Device() Device { return a.device }

func (a *mockAdapter[T]) NewManager() DeviceManager[T] {
	a.last = &mockManager[T]{device: a.device}
	return a.last
}

func (m *mockManager[T]) Device() Device { return m.device }

func (m *mockManager[T]) Len() int { return len(m.values) }

func (m *mockManager[T]) CopyInForInput(src ConstPortal[T]) error {
	m.copyIns++
	m.values = PortalToSlice(src)
	return nil
}

func (m *mockManager[T]) CopyInForInPlace(st HostStorage[T]) error {
	m.inPlaceIn++
	m.values = PortalToSlice(st.ConstPortal())
	return nil
}

func (m *mockManager[T]) AllocateForOutput(n int) error {
	m.allocs++
	m.values = make([]T, n)
	return nil
}

func (m *mockManager[T]) CopyOutTo(st HostStorage[T]) error {
	m.copyOuts++
	if err := st.Allocate(len(m.values)); err != nil {
		return err
	}
	CopyPortal(st.Portal(), NewConstSlicePortal(m.values))
	return nil
}

func (m *mockManager[T]) Shrink(n int) {
	m.values = m.values[:n]
}

func (m *mockManager[T]) Portal() Portal[T] { return NewSlicePortal(m.values) }

func (m *mockManager[T]) ConstPortal() ConstPortal[T] { return NewConstSlicePortal(m.values) }

func (m *mockManager[T]) Release() {
	m.released++
	m.values = nil
}

var (
	_ DeviceAdapter[float32] = (*mockAdapter[float32])(nil)
	_ DeviceManager[float32] = (*mockManager[float32])(nil)
)
