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

	"github.com/TheCacophonyProject/motion-gate/frame"
	"github.com/TheCacophonyProject/motion-gate/loglimiter"
)

const NO_DATA = -1
const FRAME_SIZE_CHANGED = -2

var (
	ErrCompressedFrame = errors.New("can't compare compressed frames")
	ErrFrameTooLarge   = errors.New("frame is larger than max-frame-bytes")
)

func NewMotionDetector(args MotionConfig) *Detector {
	d := new(Detector)
	d.deltaThresh = args.DeltaThresh
	d.countThresh = args.CountThresh
	d.stride = args.Stride
	if d.stride < 1 {
		d.stride = 1
	}
	d.sampleOffset = args.SampleOffset
	d.maxFrameBytes = args.MaxFrameBytes
	d.verbose = args.Verbose
	d.log = loglimiter.New(minLogInterval)
	return d
}

// Detector compares each frame against the one before it. It holds a
// single reference frame which it owns, so callers may reuse their
// buffers as soon as CheckMotion returns.
//
// A Detector must only be used from one goroutine at a time.
type Detector struct {
	reference     *frame.Frame
	deltaThresh   uint8
	countThresh   int
	stride        int
	sampleOffset  int
	maxFrameBytes int
	verbose       bool
	log           *loglimiter.LogLimiter
}

// CheckMotion returns true when enough sampled bytes of current differ
// from the previous frame. The first frame after creation or Cleanup
// only primes the detector and never reports motion.
func (d *Detector) CheckMotion(current *frame.Frame) (bool, error) {
	movement, _, err := d.pixelsChanged(current)
	return movement, err
}

// pixelsChanged also returns the number of changed samples, or one of
// NO_DATA / FRAME_SIZE_CHANGED when no comparison counted.
func (d *Detector) pixelsChanged(current *frame.Frame) (bool, int, error) {
	if current == nil {
		return false, NO_DATA, nil
	}
	if current.Format.Compressed() {
		return false, NO_DATA, ErrCompressedFrame
	}
	if d.maxFrameBytes > 0 && len(current.Pix) > d.maxFrameBytes {
		return false, NO_DATA, ErrFrameTooLarge
	}

	if d.reference == nil {
		d.reference = current.CreateCopy()
		return false, NO_DATA, nil
	}

	changed := d.countChanged(current.Pix, d.reference.Pix)
	sizeChanged := len(current.Pix) != len(d.reference.Pix)
	if sizeChanged {
		d.log.Printf("frame size changed from %d to %d bytes, ignoring motion for this frame",
			len(d.reference.Pix), len(current.Pix))
	}

	d.reference.Copy(current)

	if sizeChanged {
		return false, FRAME_SIZE_CHANGED, nil
	}
	if changed > 0 && d.verbose {
		log.Printf("changed samples %d", changed)
	}
	return changed > d.countThresh, changed, nil
}

// countChanged compares every stride'th byte, starting at sampleOffset,
// over the bytes both frames have.
func (d *Detector) countChanged(current, reference []byte) int {
	n := len(current)
	if len(reference) < n {
		n = len(reference)
	}
	var count int
	for i := d.sampleOffset; i < n; i += d.stride {
		if absDiff(current[i], reference[i]) > d.deltaThresh {
			count++
		}
	}
	return count
}

// Cleanup releases the reference frame. The next CheckMotion behaves
// like the first. Calling it when nothing is held does nothing.
func (d *Detector) Cleanup() {
	d.reference = nil
}

// Primed returns true when a reference frame is held.
func (d *Detector) Primed() bool {
	return d.reference != nil
}

// Reference returns a copy of the reference frame, or nil.
func (d *Detector) Reference() *frame.Frame {
	if d.reference == nil {
		return nil
	}
	return d.reference.CreateCopy()
}

func absDiff(a, b uint8) uint8 {
	if a < b {
		return b - a
	}
	return a - b
}
