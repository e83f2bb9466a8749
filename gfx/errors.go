// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

package gfx

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned when resolving a handle whose resource doesn't
// exist and can't be created.
var ErrNotReady = errors.New("gfx: resource not ready")

// GraphicsError is an error reported by the graphics API.
type GraphicsError struct {
	Code uint32
	// Op optionally names the operation that observed the error.
	Op string
}

func (err *GraphicsError) Error() string {
	if err.Op == "" {
		return fmt.Sprintf("graphics error: %#x", err.Code)
	}
	return fmt.Sprintf("%s: graphics error: %#x", err.Op, err.Code)
}
