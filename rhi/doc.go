// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package rhi declares the render hardware interface vocabulary consumed by
// backend implementations: resource descriptors, format and usage enums,
// descriptor-binding kinds, and the barrier state model.
//
// rhi itself does not talk to a GPU. It exists so that a backend (see
// glbackend) has a concrete, backend-neutral set of types to implement
// against, in place of a separate front-end project.
package rhi
