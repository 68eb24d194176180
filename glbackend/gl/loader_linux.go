// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

//go:build linux

package gl

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
)

var libGL unsafe.Pointer

// DefaultLoader dlopen's libGL.so.1 (falling back to libGL.so) and returns a
// ProcAddressFunc backed by plain dlsym lookups. It exists for hosts that
// already have a GL context current but have no eglGetProcAddress /
// glXGetProcAddress of their own to hand the backend; most hosts will pass
// their own ProcAddressFunc to Device instead.
func DefaultLoader() (ProcAddressFunc, error) {
	if libGL == nil {
		lib, err := ffi.LoadLibrary("libGL.so.1")
		if err != nil {
			lib, err = ffi.LoadLibrary("libGL.so")
			if err != nil {
				return nil, fmt.Errorf("gl: loading libGL: %w", err)
			}
		}
		libGL = lib
	}
	return func(name string) unsafe.Pointer {
		sym, err := ffi.GetSymbol(libGL, name)
		if err != nil {
			return nil
		}
		return sym
	}, nil
}
