// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

// Package renderqueue records graphics commands ahead of time and replays them
// on the goroutine that owns the graphics context.
//
// Queues are built with the renderer package. They record against the
// interfaces in the gfx package, which the engine packages implement for
// OpenGL (engine/gl_engine) and WebGPU (engine/wgpu_engine).
//
// This package holds module-wide configuration, which currently consists of
// the logger.
package renderqueue
