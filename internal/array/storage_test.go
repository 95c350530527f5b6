// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageAllocationCycle(t *testing.T) {
	s := NewStorage[int32]()
	assert.Equal(t, 0, s.Len())

	require.NoError(t, s.Allocate(10))
	require.Equal(t, 10, s.Len())

	p := s.Portal()
	for i := 0; i < 10; i++ {
		p.Set(i, int32(i*i))
	}

	// Shrinking within capacity keeps the retained values.
	require.NoError(t, s.Shrink(4))
	require.Equal(t, 4, s.Len())
	cp := s.ConstPortal()
	for i := 0; i < 4; i++ {
		assert.Equal(t, int32(i*i), cp.Get(i))
	}

	// Re-allocating within the old capacity also keeps values.
	require.NoError(t, s.Allocate(8))
	assert.Equal(t, int32(9), s.ConstPortal().Get(3))

	s.Release()
	assert.Equal(t, 0, s.Len())

	// A released storage has length zero; shrinking to anything else is
	// growth.
	assert.ErrorIs(t, s.Shrink(1), ErrGrowNotAllowed)
}

func TestStorageAllocateGrowsFresh(t *testing.T) {
	s := NewStorageFromSlice([]int32{1, 2, 3})

	require.NoError(t, s.Allocate(1000))
	require.Equal(t, 1000, s.Len())
	// Growth past capacity replaces content with zeros.
	assert.Equal(t, int32(0), s.ConstPortal().Get(0))
}

func TestStorageShrinkErrors(t *testing.T) {
	s := NewStorageFromSlice([]float64{1, 2, 3})

	assert.ErrorIs(t, s.Shrink(4), ErrGrowNotAllowed)
	assert.Error(t, s.Shrink(-1))
	assert.Error(t, s.Allocate(-1))
	assert.Equal(t, 3, s.Len())
}

func TestStorageStealSlice(t *testing.T) {
	s := NewStorageFromSlice([]float32{1, 2, 3})

	stolen := s.StealSlice()
	require.Equal(t, []float32{1, 2, 3}, stolen)
	assert.Equal(t, 0, s.Len())

	// The storage never reuses stolen memory.
	require.NoError(t, s.Allocate(3))
	s.Portal().Set(0, 99)
	assert.Equal(t, float32(1), stolen[0])
}

func TestStorageSliceAliasesContent(t *testing.T) {
	s := NewStorageFromSlice([]float32{1, 2})

	sl := s.Slice()
	sl[0] = 42
	assert.Equal(t, float32(42), s.ConstPortal().Get(0))
}
