// Copyright 2024 Dominik Honnef and contributors
// SPDX-License-Identifier: Apache-2.0 OR MIT

//go:build renderqueue.debug

package renderer

const debugChecks = true
