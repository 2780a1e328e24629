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

package headers

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v1"

	"github.com/TheCacophonyProject/motion-gate/frame"
)

// HeaderInfo contains the camera description fields sent by a capture
// process before its frames.
type HeaderInfo struct {
	resX      int
	resY      int
	fps       int
	framesize int
	format    frame.Format
	brand     string
	model     string
}

// ResX implements cptvframe.CameraSpec.
func (h *HeaderInfo) ResX() int {
	return h.resX
}

// ResY implements cptvframe.CameraSpec.
func (h *HeaderInfo) ResY() int {
	return h.resY
}

// FPS implements cptvframe.CameraSpec.
func (h *HeaderInfo) FPS() int {
	return h.fps
}

// FrameSize returns the number of bytes in each frame.
func (h *HeaderInfo) FrameSize() int {
	return h.framesize
}

// Format returns the pixel format of each frame.
func (h *HeaderInfo) Format() frame.Format {
	return h.format
}

// Model returns the camera model.
func (h *HeaderInfo) Model() string {
	return h.model
}

// Brand returns the camera brand.
func (h *HeaderInfo) Brand() string {
	return h.brand
}

// ReadHeaderInfo reads YAML lines up to the first blank line.
func ReadHeaderInfo(reader *bufio.Reader) (*HeaderInfo, error) {
	var buf bytes.Buffer
	for {
		line, err := reader.ReadString(byte('\n'))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		buf.WriteString(line)
	}
	h := make(map[string]interface{})
	err := yaml.Unmarshal(buf.Bytes(), &h)
	if err != nil {
		return nil, err
	}

	format := frame.Grayscale
	if name := toStr(h[Format]); name != "" {
		format, err = frame.ParseFormat(name)
		if err != nil {
			return nil, err
		}
	}

	return &HeaderInfo{
		resX:      toInt(h[XResolution]),
		resY:      toInt(h[YResolution]),
		fps:       toInt(h[FPS]),
		framesize: toInt(h[FrameSize]),
		format:    format,
		brand:     toStr(h[Brand]),
		model:     toStr(h[Model]),
	}, nil
}

// Validate checks the header describes frames that can be compared.
func (h *HeaderInfo) Validate() error {
	if h.resX <= 0 || h.resY <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", h.resX, h.resY)
	}
	if h.framesize <= 0 {
		return errors.New("frame size missing")
	}
	if h.format.Compressed() {
		return fmt.Errorf("%s frames can't be compared", h.format)
	}
	expected := h.resX * h.resY * h.format.BytesPerPixel()
	if expected == 0 {
		return fmt.Errorf("unsupported format %s", h.format)
	}
	if h.framesize != expected {
		return fmt.Errorf("frame size %d doesn't match %dx%d %s (%d bytes)",
			h.framesize, h.resX, h.resY, h.format, expected)
	}
	return nil
}

// ParseFrame fills out with the descriptor from the header around raw.
// The frame borrows raw rather than copying it.
func (h *HeaderInfo) ParseFrame(raw []byte, out *frame.Frame) error {
	if len(raw) != h.framesize {
		return fmt.Errorf("frame is %d bytes, expected %d", len(raw), h.framesize)
	}
	out.Pix = raw
	out.Width = h.resX
	out.Height = h.resY
	out.Format = h.format
	return nil
}

func toInt(v interface{}) int {
	out, ok := v.(int)
	if !ok {
		return 0
	}
	return out
}

func toStr(v interface{}) string {
	out, ok := v.(string)
	if !ok {
		return ""
	}
	return out
}
