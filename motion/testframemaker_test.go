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

package motion

import (
	"github.com/TheCacophonyProject/motion-gate/frame"
)

const (
	testWidth  = 32
	testHeight = 24
	blockSize  = 8
)

// TestFrameMaker plays grayscale frames with an optional bright block
// into a MotionProcessor. The frame number is written to byte 1, which
// isn't sampled at stride 4, so recorders can tell frames apart.
type TestFrameMaker struct {
	frameCounter  byte
	processor     *MotionProcessor
	BackgroundVal byte
	BrightSpotVal byte
	blockX        int
	showBlock     bool
}

func MakeTestFrameMaker(motionProcessor *MotionProcessor) *TestFrameMaker {
	return &TestFrameMaker{
		processor:     motionProcessor,
		BackgroundVal: 20,
		BrightSpotVal: 230,
	}
}

func (tfm *TestFrameMaker) AddBackgroundFrames(frames int) *TestFrameMaker {
	tfm.showBlock = false
	for i := 0; i < frames; i++ {
		tfm.PlayFrame(tfm.makeFrame())
	}
	return tfm
}

// AddMovingBlockFrames moves the block a full block width each frame so
// the old and new positions never overlap.
func (tfm *TestFrameMaker) AddMovingBlockFrames(frames int) *TestFrameMaker {
	for i := 0; i < frames; i++ {
		if tfm.showBlock {
			tfm.blockX = (tfm.blockX + blockSize) % (testWidth - blockSize)
		}
		tfm.showBlock = true
		tfm.PlayFrame(tfm.makeFrame())
	}
	return tfm
}

// AddStillFrames repeats the current scene.
func (tfm *TestFrameMaker) AddStillFrames(frames int) *TestFrameMaker {
	for i := 0; i < frames; i++ {
		tfm.PlayFrame(tfm.makeFrame())
	}
	return tfm
}

func (tfm *TestFrameMaker) PlayFrame(f *frame.Frame) {
	tfm.processor.ProcessFrame(f)
}

func (tfm *TestFrameMaker) makeFrame() *frame.Frame {
	f := &frame.Frame{
		Pix:    make([]byte, testWidth*testHeight),
		Width:  testWidth,
		Height: testHeight,
		Format: frame.Grayscale,
	}
	for i := range f.Pix {
		f.Pix[i] = tfm.BackgroundVal
	}
	if tfm.showBlock {
		for y := blockSize; y < 2*blockSize; y++ {
			for x := tfm.blockX; x < tfm.blockX+blockSize; x++ {
				f.Pix[y*testWidth+x] = tfm.BrightSpotVal
			}
		}
	}

	tfm.frameCounter++
	f.Pix[1] = tfm.frameCounter
	return f
}

func frameID(f *frame.Frame) int {
	return int(f.Pix[1])
}
