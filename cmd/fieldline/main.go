// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package main provides the Fieldline CLI.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/fieldline-hpc/fieldline/array"
	"github.com/fieldline-hpc/fieldline/backend/parallel"
	"github.com/fieldline-hpc/fieldline/backend/serial"
)

const version = "v0.1.0-dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if len(os.Args) < 2 {
		printUsage()
		return nil
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("Fieldline %s\n", version)
		return nil
	case "devices":
		return runDevices(os.Args[2:])
	case "bench":
		return runBench(os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", os.Args[1])
	}
}

func printUsage() {
	fmt.Println("Fieldline - Multi-Device Array Management for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  devices    List execution devices and their availability")
	fmt.Println("  bench      Benchmark host/device transfers")
	fmt.Println("  version    Show version")
}

func runDevices(args []string) error {
	fs := pflag.NewFlagSet("devices", pflag.ContinueOnError)
	verbose := fs.BoolP("verbose", "v", false, "log device details")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	fmt.Printf("%-10s %-12s %s\n", "DEVICE", "AVAILABLE", "DETAIL")
	fmt.Printf("%-10s %-12s %s\n", array.Serial, "yes", "host address space, calling goroutine")
	fmt.Printf("%-10s %-12s %d workers\n", array.Parallel, "yes", runtime.NumCPU())

	name, ok := probeWebGPU()
	avail := "no"
	if ok {
		avail = "yes"
	}
	fmt.Printf("%-10s %-12s %s\n", array.WebGPU, avail, name)
	return nil
}

func runBench(args []string) error {
	fs := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	n := fs.IntP("num-values", "n", 1<<20, "number of float32 values to transfer")
	device := fs.String("device", "all", "device to benchmark (all, serial, parallel, webgpu)")
	rounds := fs.Int("rounds", 10, "rounds per phase; the best time wins")
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}
	if *n <= 0 {
		return fmt.Errorf("bench: -n must be positive, got %d", *n)
	}

	data := make([]float32, *n)
	for i := range data {
		data[i] = float32(i)
	}

	for _, name := range benchDevices(*device) {
		if err := benchDevice(name, data, *rounds); err != nil {
			return err
		}
	}
	return nil
}

// benchDevices expands "all" to every device available on this system.
func benchDevices(device string) []string {
	if device != "all" {
		return []string{device}
	}
	names := []string{"serial", "parallel"}
	if _, ok := probeWebGPU(); ok {
		names = append(names, "webgpu")
	}
	return names
}

func benchDevice(name string, data []float32, rounds int) error {
	ad, cleanup, err := selectAdapter(name)
	if err != nil {
		return err
	}
	defer cleanup()

	n := len(data)
	log.Info().
		Stringer("device", ad.Device()).
		Int("values", n).
		Int("rounds", rounds).
		Msg("starting transfer benchmark")

	upload, err := benchUpload(data, ad, rounds)
	if err != nil {
		return err
	}
	pull, err := benchPull(n, ad, rounds)
	if err != nil {
		return err
	}

	bytes := int64(n) * 4
	log.Info().
		Stringer("device", ad.Device()).
		Dur("upload", upload).
		Str("upload_throughput", throughput(bytes, upload)).
		Dur("pull", pull).
		Str("pull_throughput", throughput(bytes, pull)).
		Msg("benchmark complete")
	return nil
}

// benchUpload measures host-to-device transfer: wrap caller memory and
// prepare it as device input.
func benchUpload(data []float32, ad array.DeviceAdapter[float32], rounds int) (time.Duration, error) {
	var best time.Duration
	for r := 0; r < rounds; r++ {
		h := array.FromSlice(data)
		start := time.Now()
		if _, err := h.PrepareForInput(ad); err != nil {
			h.Release()
			return 0, fmt.Errorf("bench: upload round %d: %w", r, err)
		}
		elapsed := time.Since(start)
		h.Release()
		if best == 0 || elapsed < best {
			best = elapsed
		}
		log.Debug().Int("round", r).Dur("elapsed", elapsed).Msg("upload")
	}
	return best, nil
}

// benchPull measures device-to-host transfer: allocate device output, then
// force the result back to the host through a read-only host portal.
func benchPull(n int, ad array.DeviceAdapter[float32], rounds int) (time.Duration, error) {
	var best time.Duration
	for r := 0; r < rounds; r++ {
		h := array.New[float32]()
		if _, err := h.PrepareForOutput(n, ad); err != nil {
			h.Release()
			return 0, fmt.Errorf("bench: pull round %d: %w", r, err)
		}
		start := time.Now()
		if _, err := h.HostConstPortal(); err != nil {
			h.Release()
			return 0, fmt.Errorf("bench: pull round %d: %w", r, err)
		}
		elapsed := time.Since(start)
		h.Release()
		if best == 0 || elapsed < best {
			best = elapsed
		}
		log.Debug().Int("round", r).Dur("elapsed", elapsed).Msg("pull")
	}
	return best, nil
}

func throughput(bytes int64, d time.Duration) string {
	if d <= 0 {
		return "inf"
	}
	gbps := float64(bytes) / d.Seconds() / (1 << 30)
	return fmt.Sprintf("%.2f GiB/s", gbps)
}

// selectAdapter maps a device name to an adapter plus a cleanup function
// for any resources the adapter holds.
func selectAdapter(device string) (array.DeviceAdapter[float32], func(), error) {
	switch device {
	case "serial":
		return serial.New[float32](), func() {}, nil
	case "parallel":
		return parallel.New[float32](), func() {}, nil
	case "webgpu":
		return newWebGPUAdapter()
	default:
		return nil, nil, fmt.Errorf("unknown device %q (want serial, parallel, or webgpu)", device)
	}
}
