// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package headless

import (
	"fmt"

	"github.com/juzzbott/lightframe-engine/driver"
)

// texture implements driver.Texture.
type texture struct {
	d      *Driver
	id     uint32
	param  driver.TexParam
	pixels []byte
	loaded bool
}

// NewTexture creates a new 2D texture.
func (d *Driver) NewTexture(param *driver.TexParam, pixels []byte) (driver.Texture, error) {
	t := &texture{d: d, param: *param}
	if !d.isOpen() {
		return t, driver.ErrClosed
	}
	ch := param.PixelFmt.Channels()
	if ch == 0 {
		return t, fmt.Errorf("headless: unsupported pixel format %d", param.PixelFmt)
	}
	if param.Width <= 0 || param.Height <= 0 {
		return t, fmt.Errorf("headless: invalid texture size %dx%d", param.Width, param.Height)
	}
	if n := param.Width * param.Height * ch; len(pixels) != n {
		return t, fmt.Errorf("headless: texture data has %d bytes, want %d", len(pixels), n)
	}
	t.id = d.nextID()
	t.pixels = make([]byte, len(pixels))
	copy(t.pixels, pixels)
	t.loaded = true
	return t, nil
}

func (t *texture) Bind(slot int) {
	if slot < 0 || slot >= maxSlot {
		panic(fmt.Sprintf("headless: texture slot %d out of range", slot))
	}
	t.d.mu.Lock()
	t.d.texture[slot] = t.id
	t.d.mu.Unlock()
	t.d.record(Call{Op: OpBindTexture, ID: t.id, Slot: slot})
}

func (t *texture) ID() uint32 { return t.id }

func (t *texture) Width() int  { return t.param.Width }
func (t *texture) Height() int { return t.param.Height }

func (t *texture) Loaded() bool { return t.loaded }

// Pixels returns the texel data of tex, which must have
// been created by this package.
func Pixels(tex driver.Texture) []byte {
	if t, ok := tex.(*texture); ok {
		return t.pixels
	}
	return nil
}

func (t *texture) Destroy() {
	if t == nil {
		return
	}
	*t = texture{}
}
