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

package throttle

import (
	"errors"
	"log"
	"time"

	"github.com/juju/ratelimit"

	"github.com/TheCacophonyProject/motion-gate/frame"
	"github.com/TheCacophonyProject/motion-gate/recorder"
)

var ErrThrottled = errors.New("throttled")

func NewThrottledRecorder(
	baseRecorder recorder.Recorder,
	config *ThrottlerConfig,
	eventListener ThrottledEventListener,
) *ThrottledRecorder {
	return NewThrottledRecorderWithClock(
		baseRecorder,
		config,
		eventListener,
		new(realClock),
	)
}

func NewThrottledRecorderWithClock(
	baseRecorder recorder.Recorder,
	config *ThrottlerConfig,
	listener ThrottledEventListener,
	clock ratelimit.Clock,
) *ThrottledRecorder {
	// The token bucket tracks the number of *frames* available for writing.
	bucketFrames := int64(config.BucketSize)
	refillRate := float64(bucketFrames) / config.RefillTime.Seconds()

	bucket := ratelimit.NewBucketWithRateAndClock(refillRate, bucketFrames, clock)

	if listener == nil {
		listener = new(nullListener)
	}

	return &ThrottledRecorder{
		recorder: baseRecorder,
		listener: listener,
		bucket:   bucket,
	}
}

// ThrottledRecorder wraps a standard recorder so that it stops
// writing frames (ie gets throttled) if asked to write too often.
// This is desirable as the extra frames are likely to be highly
// similar to the earlier ones and contain no new information.
// It can happen when the camera is pointed at a tree on a windy day.
type ThrottledRecorder struct {
	recorder  recorder.Recorder
	listener  ThrottledEventListener
	bucket    *ratelimit.Bucket
	throttled bool
}

type ThrottledEventListener interface {
	WhenThrottled()
}

type nullListener struct{}

func (lis *nullListener) WhenThrottled() {}

func (throttler *ThrottledRecorder) CheckCanRecord() error {
	return throttler.recorder.CheckCanRecord()
}

// WriteFrame passes the frame on if a token is available. Otherwise the
// frame is dropped and ErrThrottled returned. The listener hears about
// the first dropped frame of each run.
func (throttler *ThrottledRecorder) WriteFrame(f *frame.Frame) error {
	if throttler.bucket.TakeAvailable(1) > 0 {
		throttler.throttled = false
		return throttler.recorder.WriteFrame(f)
	}

	if !throttler.throttled {
		log.Print("frames throttled")
		throttler.listener.WhenThrottled()
		throttler.throttled = true
	}
	return ErrThrottled
}

// Throttled returns true while frames are being dropped.
func (throttler *ThrottledRecorder) Throttled() bool {
	return throttler.throttled
}

// realClock implements ratelimit.Clock in terms of standard time functions.
type realClock struct{}

// Now implements Clock.Now by calling time.Now.
func (realClock) Now() time.Time {
	return time.Now()
}

// Sleep implements Clock.Sleep by calling time.Sleep.
func (realClock) Sleep(d time.Duration) {
	time.Sleep(d)
}
