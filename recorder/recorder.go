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

package recorder

import "github.com/TheCacophonyProject/motion-gate/frame"

// Recorder keeps the frames that motion was detected in so something
// downstream can pick them up.
type Recorder interface {
	CheckCanRecord() error
	WriteFrame(*frame.Frame) error
}

type NoWriteRecorder struct {
}

func (*NoWriteRecorder) CheckCanRecord() error         { return nil }
func (*NoWriteRecorder) WriteFrame(*frame.Frame) error { return nil }
