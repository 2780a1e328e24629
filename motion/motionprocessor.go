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
	"log"
	"sync"
	"time"

	"github.com/TheCacophonyProject/window"

	"github.com/TheCacophonyProject/motion-gate/frame"
	"github.com/TheCacophonyProject/motion-gate/loglimiter"
	"github.com/TheCacophonyProject/motion-gate/recorder"
)

const (
	minLogInterval = time.Minute
	debugInterval  = 100
)

type FrameParser func([]byte, *frame.Frame) error

func NewMotionProcessor(
	parseFrame FrameParser,
	motionConf *MotionConfig,
	recorderConf *recorder.RecorderConfig,
	listener RecordingListener,
	recorder recorder.Recorder,
) *MotionProcessor {
	mp := &MotionProcessor{
		parseFrame:     parseFrame,
		motionDetector: NewMotionDetector(*motionConf),
		window:         recorderConf.Window,
		listener:       listener,
		triggerFrames:  motionConf.TriggerFrames,
		recorder:       recorder,
		log:            loglimiter.New(minLogInterval),
	}
	if motionConf.Verbose {
		mp.debug = newDebugTracker()
	}
	return mp
}

// MotionProcessor runs frames from a single camera stream through a
// Detector and hands frames with motion to a Recorder.
//
// Process and ProcessFrame are called from the frame loop. Reset and
// GetRecentFrame may be called from other goroutines.
type MotionProcessor struct {
	mu             sync.Mutex
	parseFrame     FrameParser
	current        frame.Frame
	motionDetector *Detector
	window         window.Window
	listener       RecordingListener
	triggerFrames  int
	triggered      int
	recorder       recorder.Recorder
	debug          *debugTracker
	debugFrames    int
	log            *loglimiter.LogLimiter
}

type RecordingListener interface {
	MotionDetected()
	FrameRecorded(*frame.Frame)
}

func (mp *MotionProcessor) Process(rawFrame []byte) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if err := mp.parseFrame(rawFrame, &mp.current); err != nil {
		return err
	}
	mp.process(&mp.current)
	return nil
}

func (mp *MotionProcessor) ProcessFrame(f *frame.Frame) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.process(f)
}

func (mp *MotionProcessor) process(f *frame.Frame) {
	detected, changed, err := mp.motionDetector.pixelsChanged(f)
	if err != nil {
		// Bad frames never count as motion but must not stop the loop.
		mp.log.Printf("motion check failed: %v", err)
		detected = false
	}
	mp.trackDebug(changed, detected)

	if !detected {
		mp.triggered = 0
		return
	}

	if mp.listener != nil {
		mp.listener.MotionDetected()
	}
	mp.triggered++
	if mp.triggered < mp.triggerFrames {
		// Only record after n (triggerFrames) consecutive frames with motion detected.
		return
	}
	mp.triggered = 0

	if err := mp.canStartWriting(); err != nil {
		mp.log.Printf("frame not recorded: %v", err)
		return
	}
	if err := mp.recorder.WriteFrame(f); err != nil {
		mp.log.Printf("frame not recorded: %v", err)
		return
	}
	if mp.listener != nil {
		mp.listener.FrameRecorded(f)
	}
}

func (mp *MotionProcessor) canStartWriting() error {
	if !mp.window.Active() {
		return errors.New("motion detected but outside of recording window")
	}
	return mp.recorder.CheckCanRecord()
}

func (mp *MotionProcessor) trackDebug(changed int, detected bool) {
	if mp.debug == nil {
		return
	}
	if changed >= 0 {
		mp.debug.update("changed", changed)
	}
	if detected {
		mp.debug.update("motion", 1)
	} else {
		mp.debug.update("motion", 0)
	}

	mp.debugFrames++
	if mp.debugFrames >= debugInterval {
		log.Printf("last %d frames: %s", mp.debugFrames, mp.debug.summary())
		mp.debug.reset()
		mp.debugFrames = 0
	}
}

// Reset drops the reference frame so the next frame only primes the
// detector. Call it before the stream's frame size or format changes.
func (mp *MotionProcessor) Reset() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.motionDetector.Cleanup()
	mp.triggered = 0
}

// GetRecentFrame returns a copy of the most recently processed frame,
// or nil if there isn't one.
func (mp *MotionProcessor) GetRecentFrame() *frame.Frame {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	return mp.motionDetector.Reference()
}
