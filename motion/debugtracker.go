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
	"fmt"
	"math"
	"sort"
	"strings"
)

// debugTracker summarises per-frame numbers (changed sample counts,
// motion frames) between verbose log lines. A nil tracker is valid and
// does nothing.
type debugTracker struct {
	values map[string]*value
}

func newDebugTracker() *debugTracker {
	return &debugTracker{
		values: make(map[string]*value),
	}
}

func (d *debugTracker) update(name string, x int) {
	if d == nil {
		return
	}
	v := d.values[name]
	if v == nil {
		v = newValue()
		d.values[name] = v
	}
	v.update(x)
}

func (d *debugTracker) reset() {
	if d == nil {
		return
	}
	for _, v := range d.values {
		v.reset()
	}
}

// summary lists every tracked value in name order, e.g.
// "changed: 0 -> 73 (avg: 4.20, n: 90); motion: 0 -> 1 (avg: 0.02, n: 90)".
func (d *debugTracker) summary() string {
	if d == nil {
		return ""
	}
	names := make([]string, 0, len(d.values))
	for name := range d.values {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		v := d.values[name]
		if v.n == 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", name, v.String()))
	}
	return strings.Join(out, "; ")
}

func newValue() *value {
	v := new(value)
	v.reset()
	return v
}

type value struct {
	n   int
	min int
	max int
	avg float64
}

func (v *value) reset() {
	v.n = 0
	v.max = math.MinInt32
	v.min = math.MaxInt32
	v.avg = 0
}

func (v *value) update(x int) {
	v.n++
	if x > v.max {
		v.max = x
	}
	if x < v.min {
		v.min = x
	}
	// Cumulative moving average
	v.avg = v.avg + ((float64(x) - v.avg) / float64(v.n))
}

func (v *value) String() string {
	return fmt.Sprintf("%d -> %d (avg: %.2f, n: %d)", v.min, v.max, v.avg, v.n)
}
