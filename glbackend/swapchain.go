// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glbackend

import (
	"sync"

	"github.com/gogpu/glrhi/rhi"
)

// SwapChain wraps a host-provided presentable surface. Grounded on
// hal/vulkan/swapchain.go's Swapchain, but collapsed to GL's single
// default-framebuffer model: there is no image array to acquire from and
// no acquire/present semaphore pair, since glSwapBuffers (dispatched
// through PresentFunc) already performs that synchronization inside the
// platform's GL driver. Rendering into a SwapChain means rendering into
// handle 0, the window system framebuffer.
type SwapChain struct {
	device *Device

	mu     sync.Mutex
	label  string
	format rhi.TextureFormat
	width  uint32
	height uint32

	presentFunc     func() error
	surfaceSizeFunc func() (uint32, uint32)
}

func newSwapChain(d *Device, desc rhi.SwapChainDescriptor) (*SwapChain, error) {
	if desc.PresentFunc == nil {
		return nil, NewValidationError("SwapChain", "PresentFunc", "must be non-nil")
	}
	return &SwapChain{
		device:          d,
		label:           desc.Label,
		format:          desc.Format,
		width:           desc.Width,
		height:          desc.Height,
		presentFunc:     desc.PresentFunc,
		surfaceSizeFunc: desc.SurfaceSizeFunc,
	}, nil
}

// BackBuffer returns the handle a CommandContext's render-pass color
// attachment should target to draw into this swap chain: the zero handle,
// which BeginRenderPass recognizes as "no attachments, bind the default
// framebuffer" rather than a tracked texture view.
func (s *SwapChain) BackBuffer() rhi.Handle {
	return 0
}

// Extent reports the swap chain's current width and height in pixels.
func (s *SwapChain) Extent() (width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Present calls the host's PresentFunc to swap the window's front and back
// buffers, making the frame just rendered into the default framebuffer
// visible.
func (s *SwapChain) Present() error {
	return s.presentFunc()
}

// Resize updates the swap chain's tracked extent. If the caller did not
// supply a SurfaceSizeFunc, width/height must be provided directly from the
// host's own resize event; otherwise they're ignored in favor of a fresh
// query.
func (s *SwapChain) Resize(width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surfaceSizeFunc != nil {
		width, height = s.surfaceSizeFunc()
	}
	s.width, s.height = width, height
}

// Format reports the swap chain's pixel format as configured at creation.
// OpenGL's default framebuffer format is fixed by the platform's pixel
// format / EGLConfig choice, not by this backend, so Format is informational
// only and never drives a GL call.
func (s *SwapChain) Format() rhi.TextureFormat {
	return s.format
}
