// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "testing"

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dtype DataType
		str   string
	}{
		{Float32, "float32"},
		{Float64, "float64"},
		{Int32, "int32"},
		{Int64, "int64"},
		{Uint8, "uint8"},
		{Bool, "bool"},
	}

	for _, tt := range tests {
		if got := tt.dtype.String(); got != tt.str {
			t.Errorf("%s.String() = %q, want %q", tt.dtype, got, tt.str)
		}
	}
}

func TestInferDataType(t *testing.T) {
	if dt := inferDataType(float32(0)); dt != Float32 {
		t.Errorf("inferDataType(float32) = %v, want Float32", dt)
	}
	if dt := inferDataType(float64(0)); dt != Float64 {
		t.Errorf("inferDataType(float64) = %v, want Float64", dt)
	}
	if dt := inferDataType(int32(0)); dt != Int32 {
		t.Errorf("inferDataType(int32) = %v, want Int32", dt)
	}
	if dt := inferDataType(int64(0)); dt != Int64 {
		t.Errorf("inferDataType(int64) = %v, want Int64", dt)
	}
	if dt := inferDataType(uint8(0)); dt != Uint8 {
		t.Errorf("inferDataType(uint8) = %v, want Uint8", dt)
	}
	if dt := inferDataType(false); dt != Bool {
		t.Errorf("inferDataType(bool) = %v, want Bool", dt)
	}
}

func TestHandleDataType(t *testing.T) {
	if dt := New[float64]().DataType(); dt != Float64 {
		t.Errorf("Handle[float64].DataType() = %v, want Float64", dt)
	}
	if dt := New[bool]().DataType(); dt != Bool {
		t.Errorf("Handle[bool].DataType() = %v, want Bool", dt)
	}
}

func TestDeviceString(t *testing.T) {
	tests := []struct {
		device Device
		str    string
	}{
		{Undefined, "Undefined"},
		{Serial, "Serial"},
		{Parallel, "Parallel"},
		{WebGPU, "WebGPU"},
	}

	for _, tt := range tests {
		if got := tt.device.String(); got != tt.str {
			t.Errorf("Device(%d).String() = %q, want %q", int(tt.device), got, tt.str)
		}
	}
}
