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
	"image/png"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/motion-gate/frame"
)

const pngTempExt = "png.temp"

func NewPNGFileRecorder(config *Config) *PNGFileRecorder {
	return &PNGFileRecorder{
		outputDir:    config.OutputDir,
		minDiskSpace: config.MinDiskSpace,
		now:          time.Now,
	}
}

// PNGFileRecorder spools frames with motion to the output directory as
// PNG stills. Files are written under a temporary name and renamed once
// complete so uploaders never see partial files.
type PNGFileRecorder struct {
	outputDir    string
	minDiskSpace uint64
	now          func() time.Time
}

func (fr *PNGFileRecorder) CheckCanRecord() error {
	enoughSpace, err := checkDiskSpace(fr.minDiskSpace, fr.outputDir)
	if err != nil {
		return errors.Wrap(err, "problem with checking disk space")
	} else if !enoughSpace {
		return errors.New("motion detected but not enough free disk space to spool frame")
	}
	return nil
}

func (fr *PNGFileRecorder) WriteFrame(f *frame.Frame) error {
	img, err := f.ToImage()
	if err != nil {
		return err
	}

	tempName := filepath.Join(fr.outputDir, newFrameTempName(fr.now()))
	out, err := os.Create(tempName)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		os.Remove(tempName)
		return errors.Wrap(err, "encoding png")
	}
	if err := out.Close(); err != nil {
		os.Remove(tempName)
		return err
	}

	finalName, err := renameTempRecording(tempName)
	if err != nil {
		return err
	}
	log.Printf("frame spooled: %s", finalName)
	return nil
}

func newFrameTempName(t time.Time) string {
	return t.Format("20060102.150405.000." + pngTempExt)
}

func renameTempRecording(tempName string) (string, error) {
	finalName := recordingFinalName(tempName)
	err := os.Rename(tempName, finalName)
	if err != nil {
		return "", err
	}
	return finalName, nil
}

var reTempName = regexp.MustCompile(`(.+)\.temp$`)

func recordingFinalName(filename string) string {
	return reTempName.ReplaceAllString(filename, `$1`)
}

func deleteTempFiles(directory string) error {
	matches, _ := filepath.Glob(filepath.Join(directory, "*."+pngTempExt))
	for _, filename := range matches {
		if err := os.Remove(filename); err != nil {
			return err
		}
	}
	return nil
}

func checkDiskSpace(mb uint64, dir string) (bool, error) {
	var fs syscall.Statfs_t
	if err := syscall.Statfs(dir, &fs); err != nil {
		return false, err
	}
	return fs.Bavail*uint64(fs.Bsize)/1024/1024 >= mb, nil
}
