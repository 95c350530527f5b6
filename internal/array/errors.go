// Copyright 2025 Fieldline HPC. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import "errors"

// Residency protocol errors. All are caller-correctable: the handle's prior
// valid state is untouched when one of these is returned.
var (
	// ErrNoData is returned when an operation requiring existing data is
	// invoked on a handle with no valid view.
	ErrNoData = errors.New("array: handle contains no data")

	// ErrReadOnly is returned when a mutation is requested against a handle
	// whose only valid view is externally owned.
	ErrReadOnly = errors.New("array: handle has a read-only external view")

	// ErrGrowNotAllowed is returned when Shrink is asked for a length
	// exceeding the current length.
	ErrGrowNotAllowed = errors.New("array: shrink cannot be used to grow array")

	// ErrBadCast is returned when a Dynamic handle is cast to a type it
	// does not hold.
	ErrBadCast = errors.New("array: bad cast of dynamic handle")
)
