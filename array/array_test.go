// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-hpc/fieldline/array"
	"github.com/fieldline-hpc/fieldline/backend/parallel"
	"github.com/fieldline-hpc/fieldline/backend/serial"
)

func TestPublicRoundTrip(t *testing.T) {
	h := array.FromSliceCopy([]float32{1, 2, 3})
	defer h.Release()

	in, err := h.PrepareForInput(serial.New[float32]())
	require.NoError(t, err)
	assert.Equal(t, float32(3), in.Get(2))
	assert.Equal(t, array.Float32, h.DataType())
}

func TestPublicReadOnlyView(t *testing.T) {
	h := array.FromSlice([]int32{1, 2})
	defer h.Release()

	_, err := h.HostPortal()
	assert.ErrorIs(t, err, array.ErrReadOnly)
}

func TestPublicOutputAcrossDevices(t *testing.T) {
	h := array.New[float64]()
	defer h.Release()

	out, err := h.PrepareForOutput(4, parallel.New[float64]())
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		out.Set(i, float64(i))
	}

	in, err := h.PrepareForInput(serial.New[float64]())
	require.NoError(t, err)
	assert.Equal(t, float64(3), in.Get(3))
}

func TestPublicDynamic(t *testing.T) {
	h := array.FromSliceCopy([]float32{1})
	defer h.Release()

	d := array.NewDynamic(h)
	assert.True(t, array.IsType[float32](d))

	_, err := array.Cast[int32](d)
	assert.ErrorIs(t, err, array.ErrBadCast)
}
