//go:build windows

package webgpu

import (
	"fmt"
	"unsafe"

	"github.com/fieldline-hpc/fieldline/internal/array"
	"github.com/go-webgpu/webgpu/wgpu"
)

// storageUsage is the usage for every array buffer: bound as storage in
// compute shaders and copyable in both directions.
const storageUsage = wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// Adapter selects the WebGPU device. All managers created from one adapter
// share its Context.
type Adapter[T array.DType] struct {
	ctx *Context
}

// NewAdapter returns an adapter for the WebGPU device backed by the given
// context.
func NewAdapter[T array.DType](ctx *Context) Adapter[T] {
	return Adapter[T]{ctx: ctx}
}

// Device returns the WebGPU device identity.
func (Adapter[T]) Device() array.Device { return array.WebGPU }

// NewManager creates a device manager bound to the WebGPU device.
func (a Adapter[T]) NewManager() array.DeviceManager[T] {
	return &Manager[T]{ctx: a.ctx}
}

var _ array.DeviceAdapter[float32] = Adapter[float32]{}

// Manager owns the GPU-resident copy of an array. Host code cannot index
// GPU memory directly, so the manager keeps a staging slice alongside the
// wgpu buffer and tracks which side is ahead:
//
//   - hostDirty: portal writes landed in staging and have not been uploaded.
//   - deviceDirty: a GPU kernel wrote the buffer (MarkDeviceWritten) and the
//     staging slice is stale.
//
// At most one flag is set at a time. Portals realize GPU data into staging
// lazily on first access after a kernel write.
type Manager[T array.DType] struct {
	ctx *Context

	buf     *wgpu.Buffer
	bufSize uint64 // aligned byte capacity of buf
	staging []T

	hostDirty   bool
	deviceDirty bool
}

var _ array.DeviceManager[float32] = (*Manager[float32])(nil)

// Device returns the WebGPU device identity.
func (m *Manager[T]) Device() array.Device { return array.WebGPU }

// Len returns the number of device-resident values.
func (m *Manager[T]) Len() int { return len(m.staging) }

// CopyInForInput uploads src to the device for read-only use.
func (m *Manager[T]) CopyInForInput(src array.ConstPortal[T]) error {
	m.staging = array.PortalToSlice(src)
	return m.upload()
}

// CopyInForInPlace uploads the storage contents to the device for
// read-write use. The device is discrete: unlike the shared-memory
// backends, no aliasing is possible and a real copy is always taken.
func (m *Manager[T]) CopyInForInPlace(st array.HostStorage[T]) error {
	m.staging = array.PortalToSlice(st.ConstPortal())
	return m.upload()
}

// AllocateForOutput allocates n values on the device with no copy. The
// buffer comes from the context's pool when one of a suitable size is free.
func (m *Manager[T]) AllocateForOutput(n int) error {
	m.releaseBuffer()
	m.staging = make([]T, n)
	m.bufSize = alignedByteSize[T](n)
	if m.bufSize > 0 {
		m.buf = m.ctx.pool.Acquire(m.bufSize, storageUsage)
	}
	m.hostDirty = false
	m.deviceDirty = false
	return nil
}

// CopyOutTo copies the device contents into the host storage, downloading
// from the GPU first when a kernel has written the buffer.
func (m *Manager[T]) CopyOutTo(st array.HostStorage[T]) error {
	if err := m.refreshStaging(); err != nil {
		return err
	}
	if err := st.Allocate(len(m.staging)); err != nil {
		return err
	}
	if sb, ok := st.(array.SliceBacked[T]); ok {
		copy(sb.Slice(), m.staging)
		return nil
	}
	array.CopyPortal(st.Portal(), array.NewConstSlicePortal(m.staging))
	return nil
}

// Shrink logically truncates the device array. The GPU buffer keeps its
// capacity; only the staging view shortens.
func (m *Manager[T]) Shrink(n int) {
	m.staging = m.staging[:n]
}

// Portal returns a mutable device-scoped portal. Writes land in staging and
// are uploaded on the next Buffer call.
func (m *Manager[T]) Portal() array.Portal[T] {
	return portal[T]{m: m}
}

// ConstPortal returns a read-only device-scoped portal.
func (m *Manager[T]) ConstPortal() array.ConstPortal[T] {
	return constPortal[T]{m: m}
}

// Release frees the GPU buffer back to the pool and drops the staging
// slice. Safe to call more than once.
func (m *Manager[T]) Release() {
	m.releaseBuffer()
	m.staging = nil
	m.hostDirty = false
	m.deviceDirty = false
}

// Buffer returns the GPU buffer for kernel consumers, uploading any pending
// staging writes first. The returned buffer identity can change across
// calls when a flush recreates it; callers must not cache it across other
// manager operations.
func (m *Manager[T]) Buffer() (*wgpu.Buffer, error) {
	if err := m.Flush(); err != nil {
		return nil, err
	}
	return m.buf, nil
}

// Flush uploads any pending staging writes to the GPU buffer. No-op when
// the buffer is already current.
func (m *Manager[T]) Flush() error {
	if !m.hostDirty {
		return nil
	}
	return m.upload()
}

// MarkDeviceWritten records that a GPU kernel wrote the buffer. The staging
// slice becomes stale and is re-downloaded lazily on the next host access.
func (m *Manager[T]) MarkDeviceWritten() {
	m.hostDirty = false
	m.deviceDirty = true
}

// upload replaces the GPU buffer with one holding the staging contents.
// Uploads go through mapped-at-creation buffers, so the old buffer is
// retired to the pool rather than rewritten.
func (m *Manager[T]) upload() error {
	m.releaseBuffer()
	m.bufSize = alignedByteSize[T](len(m.staging))
	if m.bufSize > 0 {
		m.buf = m.ctx.createBuffer(asBytes(m.staging), m.bufSize, storageUsage)
	}
	m.hostDirty = false
	m.deviceDirty = false
	return nil
}

// refreshStaging downloads the GPU buffer into staging when a kernel has
// written it since the last transfer.
func (m *Manager[T]) refreshStaging() error {
	if !m.deviceDirty || m.buf == nil {
		return nil
	}
	data, err := m.ctx.readBuffer(m.buf, m.bufSize)
	if err != nil {
		return err
	}
	copy(asBytes(m.staging), data)
	m.deviceDirty = false
	return nil
}

func (m *Manager[T]) releaseBuffer() {
	if m.buf != nil {
		m.ctx.pool.Release(m.buf, m.bufSize, storageUsage)
		m.buf = nil
		m.bufSize = 0
	}
}

// mustRefresh is the portal-side refresh: portal accessors have no error
// channel, so an unrecoverable transfer fault panics with a package-prefixed
// message, matching the backend convention.
func (m *Manager[T]) mustRefresh() {
	if err := m.refreshStaging(); err != nil {
		panic(fmt.Sprintf("webgpu: buffer readback failed: %v", err))
	}
}

type portal[T array.DType] struct {
	m *Manager[T]
}

func (p portal[T]) Len() int { return len(p.m.staging) }

func (p portal[T]) Get(i int) T {
	p.m.mustRefresh()
	return p.m.staging[i]
}

func (p portal[T]) Set(i int, v T) {
	p.m.mustRefresh()
	p.m.staging[i] = v
	p.m.hostDirty = true
}

type constPortal[T array.DType] struct {
	m *Manager[T]
}

func (p constPortal[T]) Len() int { return len(p.m.staging) }

func (p constPortal[T]) Get(i int) T {
	p.m.mustRefresh()
	return p.m.staging[i]
}

// alignedByteSize rounds the byte size of n values up to the 4-byte
// alignment WebGPU requires for buffer sizes.
func alignedByteSize[T array.DType](n int) uint64 {
	var v T
	size := uint64(n) * uint64(unsafe.Sizeof(v))
	return (size + 3) &^ 3
}

// asBytes reinterprets a value slice as its backing bytes without copying.
func asBytes[T array.DType](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var v T
	//nolint:gosec // unsafe.Slice for zero-copy reinterpretation, length derived from the slice itself
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(v)))
}
