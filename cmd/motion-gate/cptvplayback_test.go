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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TheCacophonyProject/motion-gate/frame"
)

func TestThermalToGray(t *testing.T) {
	pix := [][]uint16{
		{3000, 3100},
		{3200, 3510},
	}
	out := make([]byte, 4)
	thermalToGray(pix, out)
	assert.Equal(t, []byte{0, 50, 100, 255}, out)
}

func TestThermalToGrayFlatFrame(t *testing.T) {
	pix := [][]uint16{{3000, 3000}, {3000, 3000}}
	out := []byte{9, 9, 9, 9}
	thermalToGray(pix, out)
	assert.Equal(t, []byte{0, 0, 0, 0}, out)
}

func TestFrameRanges(t *testing.T) {
	assert.Equal(t, "None", frameRanges(nil))
	assert.Equal(t, "4", frameRanges([]int{4}))
	assert.Equal(t, "3-5, 9", frameRanges([]int{3, 4, 5, 9}))
	assert.Equal(t, "1, 3, 5-6", frameRanges([]int{1, 3, 5, 6}))
}

func TestPlaybackListener(t *testing.T) {
	l := new(playbackListener)
	l.frameCount = 3
	l.MotionDetected()
	l.FrameRecorded(&frame.Frame{})
	l.frameCount = 4
	l.MotionDetected()

	assert.Equal(t, []int{3, 4}, l.motionFrames)
	assert.Equal(t, []int{3}, l.recordedFrames)
}
