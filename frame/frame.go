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
	"fmt"
	"strings"
)

// Format identifies how the bytes of a frame are laid out.
type Format int

const (
	Grayscale Format = iota
	RGB565
	YUV422
	JPEG
)

var formatNames = map[Format]string{
	Grayscale: "grayscale",
	RGB565:    "rgb565",
	YUV422:    "yuv422",
	JPEG:      "jpeg",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat converts a format name such as "grayscale" or "RGB565"
// into a Format.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return Grayscale, fmt.Errorf("unknown pixel format %q", s)
}

// Compressed returns true when the frame bytes can't be compared
// sample by sample.
func (f Format) Compressed() bool {
	return f == JPEG
}

// BytesPerPixel returns the fixed number of bytes used per pixel, or 0
// for variable length formats.
func (f Format) BytesPerPixel() int {
	switch f {
	case Grayscale:
		return 1
	case RGB565, YUV422:
		return 2
	}
	return 0
}

// Frame holds the bytes of a single capture along with its descriptor.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Format Format
}

// Len returns the number of bytes in the frame.
func (fr *Frame) Len() int {
	return len(fr.Pix)
}

// Copy sets current frame as other frame. The pixel buffer is only
// reallocated when the lengths differ.
func (fr *Frame) Copy(orig *Frame) {
	if len(fr.Pix) != len(orig.Pix) {
		fr.Pix = make([]byte, len(orig.Pix))
	}
	copy(fr.Pix, orig.Pix)
	fr.Width = orig.Width
	fr.Height = orig.Height
	fr.Format = orig.Format
}

// CreateCopy returns an independent copy of the frame.
func (fr *Frame) CreateCopy() *Frame {
	out := new(Frame)
	out.Copy(fr)
	return out
}

// ExpectedLen is the number of bytes an uncompressed frame of this
// geometry and format should hold.
func (fr *Frame) ExpectedLen() int {
	return fr.Width * fr.Height * fr.Format.BytesPerPixel()
}
