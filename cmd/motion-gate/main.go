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
	"bufio"
	"io"
	"log"
	"net"
	"os"
	"sync"

	goconfig "github.com/TheCacophonyProject/go-config"
	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"
	"github.com/pkg/errors"

	"github.com/TheCacophonyProject/motion-gate/events"
	"github.com/TheCacophonyProject/motion-gate/headers"
	"github.com/TheCacophonyProject/motion-gate/motion"
	"github.com/TheCacophonyProject/motion-gate/recorder"
	"github.com/TheCacophonyProject/motion-gate/throttle"
)

const (
	frameLogIntervalFirstMin = 15
	frameLogInterval         = 60 * 5
	secsPerSdNotify          = 5
)

var (
	version = "<not set>"

	processorMu sync.Mutex
	processor   *motion.MotionProcessor
)

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	ConfigDir  string `arg:"--config-dir" help:"path to shared configuration directory"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
	TestFile   string `arg:"-f,--testfile" help:"run a CPTV file through motion detection and print the results"`
	Verbose    bool   `arg:"-v,--verbose" help:"make logging more verbose"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/motion-gate.yaml"
	args.ConfigDir = goconfig.DefaultConfigDir
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFiles(args.ConfigFile, args.ConfigDir)
	if err != nil {
		return err
	}
	if args.Verbose {
		conf.Motion.Verbose = true
	}

	logConfig(conf)

	if args.TestFile != "" {
		results, err := NewCPTVPlayback(conf).Detect(args.TestFile)
		if err != nil {
			return err
		}
		log.Printf("Detected: %-16s Recorded: %-16s Motion frames: %d/%d",
			frameRanges(results.motionFrames), frameRanges(results.recordedFrames),
			len(results.motionFrames), results.frameCount)
		return nil
	}

	log.Println("starting d-bus service")
	if err := startService(conf.OutputDir); err != nil {
		return errors.Wrap(err, "starting d-bus service")
	}

	log.Println("deleting temp files")
	if err := deleteTempFiles(conf.OutputDir); err != nil {
		return err
	}

	reporter := events.NewReporter()
	var rec recorder.Recorder = NewPNGFileRecorder(conf)
	if conf.Throttler.ApplyThrottling {
		rec = throttle.NewThrottledRecorder(rec, &conf.Throttler, reporter)
	}

	for {
		// Set up listener for frames sent by the capture process.
		os.Remove(conf.FrameInput)
		listener, err := net.Listen("unix", conf.FrameInput)
		if err != nil {
			return err
		}
		log.Print("waiting for camera connection")

		conn, err := listener.Accept()
		if err != nil {
			log.Printf("socket accept failed: %v", err)
			continue
		}

		// Prevent concurrent connections.
		listener.Close()

		err = handleConn(conn, conf, rec, reporter)
		conn.Close()
		log.Printf("camera connection ended with: %v", err)
	}
}

func handleConn(conn net.Conn, conf *Config, rec recorder.Recorder, listener motion.RecordingListener) error {
	reader := bufio.NewReader(conn)
	header, err := headers.ReadHeaderInfo(reader)
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	if err := header.Validate(); err != nil {
		return errors.Wrap(err, "invalid header")
	}
	if conf.Motion.MaxFrameBytes > 0 && header.FrameSize() > conf.Motion.MaxFrameBytes {
		return errors.Errorf("frame size %d is over max-frame-bytes %d",
			header.FrameSize(), conf.Motion.MaxFrameBytes)
	}

	log.Printf("connection from %s %s (%dx%d %s @%dfps)",
		header.Brand(), header.Model(), header.ResX(), header.ResY(), header.Format(), header.FPS())

	fps := header.FPS()
	if fps < 1 {
		fps = 1
	}

	p := motion.NewMotionProcessor(header.ParseFrame, &conf.Motion, &conf.Recorder, listener, rec)
	setProcessor(p)

	rawFrame := make([]byte, header.FrameSize())
	totalFrames := 0
	notifyCount := 0

	log.Print("reading frames")
	for {
		if _, err := io.ReadFull(reader, rawFrame); err != nil {
			return err
		}
		totalFrames++

		if notifyCount++; notifyCount >= secsPerSdNotify*fps {
			daemon.SdNotify(false, "WATCHDOG=1")
			notifyCount = 0
		}

		if totalFrames%(frameLogIntervalFirstMin*fps) == 0 &&
			totalFrames <= 60*fps || totalFrames%(frameLogInterval*fps) == 0 {
			log.Printf("%d frames for this connection", totalFrames)
		}

		if err := p.Process(rawFrame); err != nil {
			return errors.Wrap(err, "processing frame")
		}
	}
}

// setProcessor makes p the target of d-bus calls. The previous
// processor's reference frame is dropped as the new connection may
// send frames of a different size.
func setProcessor(p *motion.MotionProcessor) {
	processorMu.Lock()
	defer processorMu.Unlock()

	if processor != nil {
		processor.Reset()
	}
	processor = p
}

func currentProcessor() *motion.MotionProcessor {
	processorMu.Lock()
	defer processorMu.Unlock()
	return processor
}

func logConfig(conf *Config) {
	log.Printf("device name: %s", conf.DeviceName)
	log.Printf("frame input: %s", conf.FrameInput)
	log.Printf("output dir: %s", conf.OutputDir)
	log.Printf("minimum disk space: %d", conf.MinDiskSpace)
	log.Printf("motion: %+v", conf.Motion)
	log.Printf("throttler: %+v", conf.Throttler)
}
