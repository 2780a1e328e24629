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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheCacophonyProject/motion-gate/motion"
	"github.com/TheCacophonyProject/motion-gate/throttle"
)

func TestAllDefaults(t *testing.T) {
	conf, err := ParseConfig([]byte(""))
	require.NoError(t, err)

	assert.Equal(t, "/var/run/motion-gate-frames", conf.FrameInput)
	assert.Equal(t, "/var/spool/motion-gate", conf.OutputDir)
	assert.Equal(t, uint64(200), conf.MinDiskSpace)
	assert.Equal(t, motion.DefaultMotionConfig(), conf.Motion)
	assert.Equal(t, throttle.DefaultThrottlerConfig(), conf.Throttler)
	assert.True(t, conf.Recorder.Window.Active())
}

func TestAllSet(t *testing.T) {
	config := []byte(`
frame-input: "/some/sock"
output-dir: "/some/where"
min-disk-space: 321
motion:
    delta-thresh: 20
    count-thresh: 7
    stride: 2
    sample-offset: 1
    max-frame-bytes: 1000000
    trigger-frames: 2
    verbose: true
throttler:
    apply-throttling: false
    bucket-size: 3
    refill-time: 1h
`)

	conf, err := ParseConfig(config)
	require.NoError(t, err)

	assert.Equal(t, "/some/sock", conf.FrameInput)
	assert.Equal(t, "/some/where", conf.OutputDir)
	assert.Equal(t, uint64(321), conf.MinDiskSpace)
	assert.Equal(t, motion.MotionConfig{
		DeltaThresh:   20,
		CountThresh:   7,
		Stride:        2,
		SampleOffset:  1,
		MaxFrameBytes: 1000000,
		TriggerFrames: 2,
		Verbose:       true,
	}, conf.Motion)
	assert.Equal(t, throttle.ThrottlerConfig{
		ApplyThrottling: false,
		BucketSize:      3,
		RefillTime:      time.Hour,
	}, conf.Throttler)
}

func TestPartialMotionSectionKeepsDefaults(t *testing.T) {
	conf, err := ParseConfig([]byte("motion:\n    count-thresh: 99\n"))
	require.NoError(t, err)

	expected := motion.DefaultMotionConfig()
	expected.CountThresh = 99
	assert.Equal(t, expected, conf.Motion)
}

func TestInvalidMotionConfig(t *testing.T) {
	_, err := ParseConfig([]byte("motion:\n    stride: 4\n    sample-offset: 4\n"))
	assert.EqualError(t, err, "sample-offset should be in range 0 - (stride-1)")
}

func TestInvalidThrottlerConfig(t *testing.T) {
	_, err := ParseConfig([]byte("throttler:\n    bucket-size: 0\n"))
	assert.EqualError(t, err, "bucket-size should be at least 1")
}

func TestMissingOutputDir(t *testing.T) {
	_, err := ParseConfig([]byte("output-dir: \"\"\n"))
	assert.EqualError(t, err, "output-dir is required")
}

func TestBadYAML(t *testing.T) {
	_, err := ParseConfig([]byte("motion: [1, 2"))
	assert.Error(t, err)
}
