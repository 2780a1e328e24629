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

import (
	config "github.com/TheCacophonyProject/go-config"
	"github.com/TheCacophonyProject/window"
)

type RecorderConfig struct {
	Window window.Window
}

// NewConfig builds the recording window from the shared device config.
// Times may be relative to sunrise/sunset so the location is needed too.
func NewConfig(conf *config.Config) (*RecorderConfig, error) {
	windowLocationConfig := config.DefaultWindowLocation()
	if err := conf.Unmarshal(config.LocationKey, &windowLocationConfig); err != nil {
		return nil, err
	}
	windowsConfig := config.DefaultWindows()
	if err := conf.Unmarshal(config.WindowsKey, &windowsConfig); err != nil {
		return nil, err
	}

	w, err := window.New(
		windowsConfig.StartRecording,
		windowsConfig.StopRecording,
		float64(windowLocationConfig.Latitude),
		float64(windowLocationConfig.Longitude))
	if err != nil {
		return nil, err
	}

	return &RecorderConfig{Window: *w}, nil
}

// AlwaysOnConfig has a window that is always active.
func AlwaysOnConfig() *RecorderConfig {
	w, err := window.New("12:00", "12:00", 0, 0)
	if err != nil {
		panic(err)
	}
	return &RecorderConfig{Window: *w}
}
