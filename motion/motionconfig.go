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
	"errors"
)

type MotionConfig struct {
	DeltaThresh   uint8 `yaml:"delta-thresh"`
	CountThresh   int   `yaml:"count-thresh"`
	Stride        int   `yaml:"stride"`
	SampleOffset  int   `yaml:"sample-offset"`
	MaxFrameBytes int   `yaml:"max-frame-bytes"`
	TriggerFrames int   `yaml:"trigger-frames"`
	Verbose       bool  `yaml:"verbose"`
}

// DefaultMotionConfig suits a QVGA grayscale capture. Stride 4 with
// offset 0 compares the first byte of every 4 byte window.
func DefaultMotionConfig() MotionConfig {
	return MotionConfig{
		DeltaThresh:   40,
		CountThresh:   50,
		Stride:        4,
		SampleOffset:  0,
		MaxFrameBytes: 640 * 480 * 2,
		TriggerFrames: 1,
	}
}

func (conf *MotionConfig) Validate() error {
	if conf.Stride < 1 {
		return errors.New("stride should be at least 1")
	}
	if conf.SampleOffset < 0 || conf.SampleOffset >= conf.Stride {
		return errors.New("sample-offset should be in range 0 - (stride-1)")
	}
	if conf.CountThresh < 0 {
		return errors.New("count-thresh can't be negative")
	}
	if conf.MaxFrameBytes < 0 {
		return errors.New("max-frame-bytes can't be negative")
	}
	if conf.TriggerFrames < 1 {
		return errors.New("trigger-frames should be at least 1")
	}
	return nil
}
