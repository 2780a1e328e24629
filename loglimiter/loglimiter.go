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

// Package loglimiter stops a message that repeats every frame from
// flooding the log.
package loglimiter

import (
	"fmt"
	"log"
	"time"
)

func New(interval time.Duration) *LogLimiter {
	return &LogLimiter{
		interval: interval,
		nowFunc:  time.Now,
		logFunc:  func(s string) { log.Print(s) },
	}
}

// LogLimiter drops a message identical to the previous one when it
// arrives within interval. The number of dropped messages is reported
// the next time anything is let through.
type LogLimiter struct {
	interval      time.Duration
	nowFunc       func() time.Time
	logFunc       func(string)
	previousEntry string
	previousTime  time.Time
	suppressed    int
}

// SetLogFunc changes where messages are written. Defaults to log.Print.
func (limiter *LogLimiter) SetLogFunc(f func(string)) {
	limiter.logFunc = f
}

func (limiter *LogLimiter) Printf(format string, v ...interface{}) {
	limiter.Print(fmt.Sprintf(format, v...))
}

func (limiter *LogLimiter) Print(s string) {
	now := limiter.nowFunc()
	if s == limiter.previousEntry && now.Sub(limiter.previousTime) < limiter.interval {
		limiter.suppressed++
		return
	}

	if limiter.suppressed > 0 {
		limiter.logFunc(fmt.Sprintf("last message repeated %d times", limiter.suppressed))
		limiter.suppressed = 0
	}
	limiter.logFunc(s)
	limiter.previousTime = now
	limiter.previousEntry = s
}
