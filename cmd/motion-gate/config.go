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
	"io/ioutil"
	"os"

	goconfig "github.com/TheCacophonyProject/go-config"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/TheCacophonyProject/motion-gate/motion"
	"github.com/TheCacophonyProject/motion-gate/recorder"
	"github.com/TheCacophonyProject/motion-gate/throttle"
)

type Config struct {
	DeviceID     int                      `yaml:"-"`
	DeviceName   string                   `yaml:"-"`
	FrameInput   string                   `yaml:"frame-input"`
	OutputDir    string                   `yaml:"output-dir"`
	MinDiskSpace uint64                   `yaml:"min-disk-space"`
	Motion       motion.MotionConfig      `yaml:"motion"`
	Throttler    throttle.ThrottlerConfig `yaml:"throttler"`
	Recorder     recorder.RecorderConfig  `yaml:"-"`
}

func (conf *Config) Validate() error {
	if conf.FrameInput == "" {
		return errors.New("frame-input is required")
	}
	if conf.OutputDir == "" {
		return errors.New("output-dir is required")
	}
	if err := conf.Motion.Validate(); err != nil {
		return err
	}
	if err := conf.Throttler.Validate(); err != nil {
		return err
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		FrameInput:   "/var/run/motion-gate-frames",
		OutputDir:    "/var/spool/motion-gate",
		MinDiskSpace: 200,
		Motion:       motion.DefaultMotionConfig(),
		Throttler:    throttle.DefaultThrottlerConfig(),
		Recorder:     *recorder.AlwaysOnConfig(),
	}
}

// ParseConfigFiles reads the motion-gate YAML file, which may be absent,
// then the device and recording window from the shared config
// directory.
func ParseConfigFiles(configFile, configDir string) (*Config, error) {
	buf, err := ioutil.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	conf, err := ParseConfig(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", configFile)
	}

	if err := loadDeviceConfig(conf, configDir); err != nil {
		return nil, errors.Wrapf(err, "reading config from %s", configDir)
	}
	return conf, nil
}

func ParseConfig(buf []byte) (*Config, error) {
	conf := defaultConfig()
	if err := yaml.Unmarshal(buf, &conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func loadDeviceConfig(conf *Config, configDir string) error {
	configRW, err := goconfig.New(configDir)
	if err != nil {
		return err
	}

	var deviceConfig goconfig.Device
	if err := configRW.Unmarshal(goconfig.DeviceKey, &deviceConfig); err != nil {
		return err
	}
	conf.DeviceID = deviceConfig.ID
	conf.DeviceName = deviceConfig.Name

	recorderConfig, err := recorder.NewConfig(configRW)
	if err != nil {
		return err
	}
	conf.Recorder = *recorderConfig
	return nil
}
