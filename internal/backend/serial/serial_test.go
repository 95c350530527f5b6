// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-hpc/fieldline/internal/array"
)

func TestAdapterIdentity(t *testing.T) {
	ad := NewAdapter[float32]()
	assert.Equal(t, array.Serial, ad.Device())
	assert.Equal(t, array.Serial, ad.NewManager().Device())
}

func TestCopyInForInputAliasesSliceBackedSource(t *testing.T) {
	m := &Manager[float32]{}
	backing := []float32{1, 2, 3}

	require.NoError(t, m.CopyInForInput(array.NewConstSlicePortal(backing)))
	require.Equal(t, 3, m.Len())

	// Same address space: no copy was taken.
	backing[0] = 42
	assert.Equal(t, float32(42), m.ConstPortal().Get(0))
}

func TestCopyInForInputCopiesComputedSource(t *testing.T) {
	m := &Manager[int64]{}

	require.NoError(t, m.CopyInForInput(doubler{n: 4}))
	require.Equal(t, 4, m.Len())
	assert.Equal(t, int64(6), m.ConstPortal().Get(3))
}

// doubler is a computed portal with no backing slice.
type doubler struct {
	n int
}

func (d doubler) Len() int        { return d.n }
func (d doubler) Get(i int) int64 { return int64(i * 2) }

func TestCopyOutToAliasedStorageSkipsCopy(t *testing.T) {
	st := array.NewStorageFromSlice([]float32{1, 2, 3})
	m := &Manager[float32]{}

	require.NoError(t, m.CopyInForInPlace(st))
	m.Portal().Set(0, 7)

	// The storage aliases the device memory, so the write is already there
	// and copy-out must not disturb it.
	require.NoError(t, m.CopyOutTo(st))
	assert.Equal(t, float32(7), st.ConstPortal().Get(0))
}

func TestHandleInPlaceWriteVisibleOnHost(t *testing.T) {
	ad := NewAdapter[float32]()

	h := array.FromSliceCopy([]float32{1, 2, 3})
	defer h.Release()

	p, err := h.PrepareForInPlace(ad)
	require.NoError(t, err)
	for i := 0; i < p.Len(); i++ {
		p.Set(i, p.Get(i)*10)
	}

	hp, err := h.HostConstPortal()
	require.NoError(t, err)
	assert.Equal(t, float32(10), hp.Get(0))
	assert.Equal(t, float32(30), hp.Get(2))
}

func TestHandleOutputScenario(t *testing.T) {
	ad := NewAdapter[float32]()

	h := array.FromSliceCopy([]float32{1, 2, 3})
	defer h.Release()

	out, err := h.PrepareForOutput(2, ad)
	require.NoError(t, err)
	out.Set(0, 9)
	out.Set(1, 9)

	require.Equal(t, 2, h.Len())

	hp, err := h.HostConstPortal()
	require.NoError(t, err)
	require.Equal(t, 2, hp.Len())
	assert.Equal(t, float32(9), hp.Get(0))
	assert.Equal(t, float32(9), hp.Get(1))
}

func TestHandleInputFromExternalView(t *testing.T) {
	ad := NewAdapter[float32]()

	data := []float32{1, 2, 3}
	h := array.FromSlice(data)
	defer h.Release()

	in, err := h.PrepareForInput(ad)
	require.NoError(t, err)
	assert.Equal(t, float32(2), in.Get(1))

	// In-place stays forbidden on the external view even with a device
	// copy present.
	_, err = h.PrepareForInPlace(ad)
	assert.ErrorIs(t, err, array.ErrReadOnly)
}

func TestHandleShrinkPropagates(t *testing.T) {
	ad := NewAdapter[float32]()

	h := array.FromSliceCopy([]float32{1, 2, 3, 4})
	defer h.Release()

	_, err := h.PrepareForInput(ad)
	require.NoError(t, err)

	require.NoError(t, h.Shrink(2))
	assert.Equal(t, 2, h.Len())

	in, err := h.PrepareForInput(ad)
	require.NoError(t, err)
	assert.Equal(t, 2, in.Len())
}

func TestManagerReleaseLeavesHostMemory(t *testing.T) {
	st := array.NewStorageFromSlice([]float32{1, 2})
	m := &Manager[float32]{}

	require.NoError(t, m.CopyInForInPlace(st))
	m.Release()

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 2, st.Len(), "aliased host memory stays with its owner")
	assert.Equal(t, float32(1), st.ConstPortal().Get(0))
}
