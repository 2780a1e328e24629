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

package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/motion-gate/frame"
)

type queuedEvent struct {
	details map[string]interface{}
	ts      time.Time
}

func newTestReporter(t *testing.T) (*Reporter, *[]queuedEvent) {
	var queued []queuedEvent
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	r := &Reporter{
		queue: func(details []byte, ts time.Time) error {
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(details, &decoded))
			queued = append(queued, queuedEvent{decoded, ts})
			return nil
		},
		now: func() time.Time { return now },
	}
	return r, &queued
}

func description(t *testing.T, e queuedEvent) map[string]interface{} {
	desc, ok := e.details["description"].(map[string]interface{})
	require.True(t, ok)
	return desc
}

func TestFrameRecordedQueuesMotionEvent(t *testing.T) {
	r, queued := newTestReporter(t)

	f := &frame.Frame{Pix: make([]byte, 320*240*2), Width: 320, Height: 240, Format: frame.YUV422}
	r.FrameRecorded(f)

	require.Len(t, *queued, 1)
	e := (*queued)[0]
	assert.Equal(t, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC), e.ts)

	desc := description(t, e)
	assert.Equal(t, MotionEventType, desc["type"])
	details := desc["details"].(map[string]interface{})
	assert.Equal(t, float64(320), details["width"])
	assert.Equal(t, float64(240), details["height"])
	assert.Equal(t, "yuv422", details["format"])
	assert.Equal(t, float64(320*240*2), details["bytes"])

	_, err := uuid.Parse(details["id"].(string))
	assert.NoError(t, err)
}

func TestEachMotionEventHasItsOwnID(t *testing.T) {
	r, queued := newTestReporter(t)

	f := &frame.Frame{Pix: make([]byte, 4), Width: 2, Height: 2, Format: frame.Grayscale}
	r.FrameRecorded(f)
	r.FrameRecorded(f)

	require.Len(t, *queued, 2)
	first := description(t, (*queued)[0])["details"].(map[string]interface{})
	second := description(t, (*queued)[1])["details"].(map[string]interface{})
	assert.NotEqual(t, first["id"], second["id"])
}

func TestWhenThrottledQueuesThrottleEvent(t *testing.T) {
	r, queued := newTestReporter(t)

	r.WhenThrottled()

	require.Len(t, *queued, 1)
	desc := description(t, (*queued)[0])
	assert.Equal(t, ThrottleEventType, desc["type"])
	assert.NotContains(t, desc, "details")
}

func TestMotionDetectedQueuesNothing(t *testing.T) {
	r, queued := newTestReporter(t)
	r.MotionDetected()
	assert.Empty(t, *queued)
}

func TestQueueErrorsAreNotFatal(t *testing.T) {
	r := &Reporter{
		queue: func([]byte, time.Time) error { return errors.New("no bus") },
		now:   time.Now,
	}
	assert.NotPanics(t, r.WhenThrottled)
}
