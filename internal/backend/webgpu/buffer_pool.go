//go:build windows

package webgpu

import (
	"sync"

	"github.com/go-webgpu/webgpu/wgpu"
)

const (
	smallThreshold  = 4 * 1024    // 4KB
	mediumThreshold = 1024 * 1024 // 1MB
	maxPooledPerBin = 64
)

// pooledBuffer wraps a GPU buffer with the metadata needed for reuse.
type pooledBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
	usage  wgpu.BufferUsage
}

// BufferPool reuses GPU buffers to reduce allocation overhead for output
// arrays. Buffers are binned by size class.
type BufferPool struct {
	device *wgpu.Device

	mu   sync.Mutex
	bins [3][]*pooledBuffer

	hits   uint64
	misses uint64
}

// NewBufferPool creates a buffer pool for the given device.
func NewBufferPool(device *wgpu.Device) *BufferPool {
	return &BufferPool{device: device}
}

func sizeBin(size uint64) int {
	switch {
	case size < smallThreshold:
		return 0
	case size < mediumThreshold:
		return 1
	default:
		return 2
	}
}

// Acquire returns a pooled buffer matching or exceeding the requested size
// and usage, or creates a new one.
func (p *BufferPool) Acquire(size uint64, usage wgpu.BufferUsage) *wgpu.Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()

	bin := sizeBin(size)
	for i, pb := range p.bins[bin] {
		if pb.size >= size && pb.usage&usage == usage {
			p.bins[bin] = append(p.bins[bin][:i], p.bins[bin][i+1:]...)
			p.hits++
			return pb.buffer
		}
	}

	p.misses++
	return p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: usage,
		Size:  size,
	})
}

// Release returns a buffer to the pool for reuse. If the bin is full the
// buffer is released immediately.
func (p *BufferPool) Release(buffer *wgpu.Buffer, size uint64, usage wgpu.BufferUsage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bin := sizeBin(size)
	if len(p.bins[bin]) >= maxPooledPerBin {
		buffer.Release()
		return
	}
	p.bins[bin] = append(p.bins[bin], &pooledBuffer{buffer: buffer, size: size, usage: usage})
}

// Clear releases all pooled buffers. Called when the context is released.
func (p *BufferPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for bin := range p.bins {
		for _, pb := range p.bins[bin] {
			pb.buffer.Release()
		}
		p.bins[bin] = nil
	}
}

// Stats returns hit/miss counters and the number of pooled buffers.
func (p *BufferPool) Stats() (hits, misses uint64, pooled int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hits, p.misses, len(p.bins[0]) + len(p.bins[1]) + len(p.bins[2])
}
