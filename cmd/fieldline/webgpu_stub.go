//go:build !windows

package main

import (
	"errors"

	"github.com/fieldline-hpc/fieldline/array"
)

func probeWebGPU() (string, bool) {
	return "not supported on this platform", false
}

func newWebGPUAdapter() (array.DeviceAdapter[float32], func(), error) {
	return nil, nil, errors.New("bench: webgpu device is not supported on this platform")
}
