// motion-gate - gate camera uploads on frame-to-frame motion
//  Copyright (C) 2026, The Cacophony Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ToImage converts an uncompressed frame into an image suitable for
// encoding. YUV422 frames are converted using their luma bytes only.
func (fr *Frame) ToImage() (image.Image, error) {
	if fr.Format.Compressed() {
		return nil, errors.New("can't convert a compressed frame")
	}
	if fr.Width <= 0 || fr.Height <= 0 {
		return nil, errors.New("frame has no size")
	}
	if len(fr.Pix) != fr.ExpectedLen() {
		return nil, fmt.Errorf("frame is %d bytes, expected %d for %dx%d %s",
			len(fr.Pix), fr.ExpectedLen(), fr.Width, fr.Height, fr.Format)
	}

	rect := image.Rect(0, 0, fr.Width, fr.Height)
	switch fr.Format {
	case Grayscale:
		img := image.NewGray(rect)
		copy(img.Pix, fr.Pix)
		return img, nil
	case YUV422:
		// YUYV ordering: luma is every second byte.
		img := image.NewGray(rect)
		for i := range img.Pix {
			img.Pix[i] = fr.Pix[i*2]
		}
		return img, nil
	case RGB565:
		img := image.NewRGBA(rect)
		for y := 0; y < fr.Height; y++ {
			for x := 0; x < fr.Width; x++ {
				i := (y*fr.Width + x) * 2
				img.SetRGBA(x, y, rgb565(fr.Pix[i], fr.Pix[i+1]))
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("unsupported format %s", fr.Format)
}

// rgb565 expands a big endian RGB565 pixel, as produced by the
// ESP32 camera driver.
func rgb565(hi, lo byte) color.RGBA {
	v := uint16(hi)<<8 | uint16(lo)
	r := uint8(v>>11) & 0x1f
	g := uint8(v>>5) & 0x3f
	b := uint8(v) & 0x1f
	return color.RGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}
