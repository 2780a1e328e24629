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

// Package events reports motion-gate activity to the Cacophony event
// queue.
package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/godbus/dbus"
	"github.com/google/uuid"

	"github.com/TheCacophonyProject/motion-gate/frame"
)

const (
	MotionEventType   = "motion"
	ThrottleEventType = "throttle"
)

// QueueFunc adds an event to the queue. The default sends it over the
// system bus.
type QueueFunc func(details []byte, ts time.Time) error

// Reporter queues an event for each frame written and each time frames
// start being throttled.
type Reporter struct {
	queue QueueFunc
	now   func() time.Time
}

func NewReporter() *Reporter {
	return &Reporter{
		queue: queueEvent,
		now:   time.Now,
	}
}

// MotionDetected is called for every frame with motion. Only frames that
// are written produce an event.
func (r *Reporter) MotionDetected() {}

func (r *Reporter) FrameRecorded(f *frame.Frame) {
	details := motionDetails(uuid.New().String(), f)
	r.send(MotionEventType, details)
}

func (r *Reporter) WhenThrottled() {
	r.send(ThrottleEventType, nil)
}

func (r *Reporter) send(eventType string, details map[string]interface{}) {
	detailsJSON, err := eventJSON(eventType, details)
	if err != nil {
		log.Printf("Could not record %s event: %s", eventType, err)
		return
	}
	if err := r.queue(detailsJSON, r.now()); err != nil {
		log.Printf("Could not record %s event: %s", eventType, err)
	}
}

func motionDetails(id string, f *frame.Frame) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"width":  f.Width,
		"height": f.Height,
		"format": f.Format.String(),
		"bytes":  f.Len(),
	}
}

func eventJSON(eventType string, details map[string]interface{}) ([]byte, error) {
	description := map[string]interface{}{
		"type": eventType,
	}
	if details != nil {
		description["details"] = details
	}
	eventDetails := map[string]interface{}{
		"description": description,
	}
	return json.Marshal(&eventDetails)
}

func queueEvent(details []byte, ts time.Time) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	obj := conn.Object("org.cacophony.Events", "/org/cacophony/Events")
	call := obj.Call("org.cacophony.Events.Queue", 0, details, ts.UnixNano())
	return call.Err
}
