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
	"errors"
	"image/png"
	"os"
	"path"
	"sync"
	"time"
)

const (
	snapshotName          = "still.png"
	allowedSnapshotPeriod = 500 * time.Millisecond
)

var (
	previousSnapshotTime time.Time
	mu                   sync.Mutex
)

func newSnapshot(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if time.Since(previousSnapshotTime) < allowedSnapshotPeriod {
		return nil
	}

	p := currentProcessor()
	if p == nil {
		return errors.New("reading from camera has not started yet")
	}
	f := p.GetRecentFrame()
	if f == nil {
		return errors.New("no frames yet")
	}
	img, err := f.ToImage()
	if err != nil {
		return err
	}

	out, err := os.Create(path.Join(dir, snapshotName))
	if err != nil {
		return err
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return err
	}

	// the time will be changed only if the attempt is successful
	previousSnapshotTime = time.Now()
	return nil
}
