// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicCast(t *testing.T) {
	h := FromSliceCopy([]float32{1, 2, 3})
	defer h.Release()

	d := NewDynamic(h)
	assert.Equal(t, 3, d.Len())
	assert.Equal(t, Float32, d.DataType())

	assert.True(t, IsType[float32](d))
	assert.False(t, IsType[int32](d))

	got, err := Cast[float32](d)
	require.NoError(t, err)
	assert.True(t, h.SharesState(got), "cast recovers the same handle")

	_, err = Cast[int64](d)
	assert.ErrorIs(t, err, ErrBadCast)
}

func TestDynamicEmpty(t *testing.T) {
	var d Dynamic
	assert.Equal(t, 0, d.Len())
	assert.NotPanics(t, d.ReleaseAllResources)
}

func TestDynamicSharesHandleState(t *testing.T) {
	h := FromSliceCopy([]float32{1, 2, 3})
	defer h.Release()

	d := NewDynamic(h)
	d.ReleaseAllResources()

	assert.Equal(t, 0, h.Len(), "releasing through the dynamic view empties the handle")
}
