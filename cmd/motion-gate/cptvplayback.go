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
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	cptv "github.com/TheCacophonyProject/go-cptv"
	"github.com/TheCacophonyProject/go-cptv/cptvframe"
	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/motion-gate/frame"
	"github.com/TheCacophonyProject/motion-gate/motion"
	"github.com/TheCacophonyProject/motion-gate/recorder"
)

// playbackListener notes which frames of a playback had motion and
// which would have been spooled.
type playbackListener struct {
	frameCount     int
	motionFrames   []int
	recordedFrames []int
	verbose        bool
}

func (p *playbackListener) MotionDetected() {
	if p.verbose {
		log.Printf("%d: motion detected", p.frameCount)
	}
	p.motionFrames = append(p.motionFrames, p.frameCount)
}

func (p *playbackListener) FrameRecorded(*frame.Frame) {
	p.recordedFrames = append(p.recordedFrames, p.frameCount)
}

type playbackCamera struct {
	resX int
	resY int
}

func (c *playbackCamera) ResX() int { return c.resX }
func (c *playbackCamera) ResY() int { return c.resY }
func (c *playbackCamera) FPS() int  { return 9 }

// CPTVPlayback runs the thermal frames of a CPTV recording through
// motion detection, as 8-bit grayscale, without spooling anything.
type CPTVPlayback struct {
	config *Config
}

func NewCPTVPlayback(conf *Config) *CPTVPlayback {
	return &CPTVPlayback{
		config: conf,
	}
}

func (cp *CPTVPlayback) Detect(filename string) (*playbackListener, error) {
	verbose := cp.config.Motion.Verbose
	if verbose {
		log.Printf("test file is %s", filename)
	}

	reader, err := cptv.NewFileReader(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", filename)
	}
	defer reader.Close()

	camera := &playbackCamera{resX: reader.ResX(), resY: reader.ResY()}
	listener := &playbackListener{verbose: verbose}
	processor := motion.NewMotionProcessor(
		nil,
		&cp.config.Motion,
		recorder.AlwaysOnConfig(),
		listener,
		new(recorder.NoWriteRecorder),
	)

	thermal := cptvframe.NewFrame(camera)
	gray := &frame.Frame{
		Pix:    make([]byte, camera.resX*camera.resY),
		Width:  camera.resX,
		Height: camera.resY,
		Format: frame.Grayscale,
	}
	for {
		if err := reader.ReadFrame(thermal); err != nil {
			if err != io.EOF {
				log.Printf("error reading file: %v", err)
			}
			return listener, nil
		}
		thermalToGray(thermal.Pix, gray.Pix)
		processor.ProcessFrame(gray)
		listener.frameCount++
	}
}

// thermalToGray stretches the frame's own min - max range over 0 - 255.
func thermalToGray(pix [][]uint16, out []byte) {
	var valMax uint16
	var valMin uint16 = math.MaxUint16
	for _, row := range pix {
		for _, val := range row {
			valMax = maxUint16(valMax, val)
			valMin = minUint16(valMin, val)
		}
	}

	i := 0
	for _, row := range pix {
		for _, val := range row {
			if valMax > valMin {
				out[i] = byte(uint32(val-valMin) * 255 / uint32(valMax-valMin))
			} else {
				out[i] = 0
			}
			i++
		}
	}
}

// frameRanges formats sorted frame numbers as e.g. "3-5, 9", or "None".
func frameRanges(frames []int) string {
	if len(frames) == 0 {
		return "None"
	}
	var parts []string
	start := frames[0]
	prev := frames[0]
	flush := func() {
		if start == prev {
			parts = append(parts, fmt.Sprintf("%d", start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, f := range frames[1:] {
		if f != prev+1 {
			flush()
			start = f
		}
		prev = f
	}
	flush()
	return strings.Join(parts, ", ")
}

func maxUint16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

func minUint16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}
