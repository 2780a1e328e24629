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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/motion-gate/frame"
)

const qvgaHeader = `ResX: 320
ResY: 240
FPS: 10
FrameSize: 153600
Format: yuv422
Brand: raspberrypi
Model: camera-v2

`

func readHeader(t *testing.T, s string) *HeaderInfo {
	h, err := ReadHeaderInfo(bufio.NewReader(strings.NewReader(s)))
	require.NoError(t, err)
	return h
}

func TestReadHeaderInfo(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(qvgaHeader + "framebytes"))
	h, err := ReadHeaderInfo(reader)
	require.NoError(t, err)

	assert.Equal(t, 320, h.ResX())
	assert.Equal(t, 240, h.ResY())
	assert.Equal(t, 10, h.FPS())
	assert.Equal(t, 153600, h.FrameSize())
	assert.Equal(t, frame.YUV422, h.Format())
	assert.Equal(t, "raspberrypi", h.Brand())
	assert.Equal(t, "camera-v2", h.Model())
	require.NoError(t, h.Validate())

	// frame data starts straight after the blank line
	rest, err := reader.ReadString(0)
	assert.Equal(t, "framebytes", rest)
	assert.Error(t, err)
}

func TestFormatDefaultsToGrayscale(t *testing.T) {
	h := readHeader(t, "ResX: 4\nResY: 2\nFrameSize: 8\n\n")
	assert.Equal(t, frame.Grayscale, h.Format())
	assert.NoError(t, h.Validate())
}

func TestUnknownFormat(t *testing.T) {
	_, err := ReadHeaderInfo(bufio.NewReader(strings.NewReader("Format: bayer\n\n")))
	assert.EqualError(t, err, `unknown pixel format "bayer"`)
}

func TestHeaderMustEndWithBlankLine(t *testing.T) {
	_, err := ReadHeaderInfo(bufio.NewReader(strings.NewReader("ResX: 4\nResY: 2\n")))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		header string
		err    string
	}{
		{"ResY: 2\nFrameSize: 8\n\n", "invalid resolution 0x2"},
		{"ResX: 4\nResY: 2\n\n", "frame size missing"},
		{"ResX: 4\nResY: 2\nFrameSize: 8\nFormat: jpeg\n\n", "jpeg frames can't be compared"},
		{"ResX: 4\nResY: 2\nFrameSize: 8\nFormat: rgb565\n\n", "frame size 8 doesn't match 4x2 rgb565 (16 bytes)"},
	}
	for _, tc := range tests {
		h := readHeader(t, tc.header)
		assert.EqualError(t, h.Validate(), tc.err)
	}
}

func TestParseFrame(t *testing.T) {
	h := readHeader(t, "ResX: 2\nResY: 2\nFrameSize: 8\nFormat: RGB565\n\n")
	require.NoError(t, h.Validate())

	raw := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	var f frame.Frame
	require.NoError(t, h.ParseFrame(raw, &f))
	assert.Equal(t, 2, f.Width)
	assert.Equal(t, 2, f.Height)
	assert.Equal(t, frame.RGB565, f.Format)
	assert.Equal(t, raw, f.Pix)

	assert.EqualError(t, h.ParseFrame(raw[:6], &f), "frame is 6 bytes, expected 8")
}
