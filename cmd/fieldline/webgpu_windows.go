//go:build windows

package main

import (
	"fmt"

	"github.com/fieldline-hpc/fieldline/array"
	"github.com/fieldline-hpc/fieldline/backend/webgpu"
)

func probeWebGPU() (string, bool) {
	if !webgpu.IsAvailable() {
		return "no compatible GPU or wgpu_native missing", false
	}
	ctx, err := webgpu.New()
	if err != nil {
		return err.Error(), false
	}
	defer ctx.Release()
	return ctx.Name(), true
}

func newWebGPUAdapter() (array.DeviceAdapter[float32], func(), error) {
	ctx, err := webgpu.New()
	if err != nil {
		return nil, nil, fmt.Errorf("bench: %w", err)
	}
	return webgpu.NewAdapter[float32](ctx), ctx.Release, nil
}
