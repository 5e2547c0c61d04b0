package clicommand

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"github.com/buildkite/jenkins-tail/logger"
	"github.com/urfave/cli"
)

var ProfileFlag = cli.StringFlag{
	Name:   "profile",
	Usage:  "Enable a profiling mode, either cpu, memory, mutex, block, thread or trace",
	EnvVar: envPrefix + "PROFILE",
}

type profilerMode string

const (
	cpuMode          profilerMode = "cpu"
	memMode          profilerMode = "mem"
	mutexMode        profilerMode = "mutex"
	blockMode        profilerMode = "block"
	traceMode        profilerMode = "trace"
	threadCreateMode profilerMode = "thread"
)

func parseProfilerMode(mode string) (profilerMode, error) {
	switch mode {
	case "cpu":
		return cpuMode, nil
	case "mem", "memory":
		return memMode, nil
	case "mutex":
		return mutexMode, nil
	case "block":
		return blockMode, nil
	case "thread":
		return threadCreateMode, nil
	case "trace":
		return traceMode, nil
	}
	return "", fmt.Errorf("unknown profile mode %q", mode)
}

type profiler struct {
	logger logger.Logger
	mode   profilerMode
	dir    string
	stop   func() error
}

// Profile starts a profiling session writing to a new temporary directory.
// Calling the returned func stops it and flushes the profile.
func Profile(l logger.Logger, mode string) (func(), error) {
	m, err := parseProfilerMode(mode)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "jenkins-tail-profile")
	if err != nil {
		return nil, fmt.Errorf("creating profile output directory: %w", err)
	}

	p := &profiler{logger: l, mode: m, dir: dir}
	if err := p.start(); err != nil {
		return nil, err
	}

	return func() {
		if err := p.stop(); err != nil {
			l.Error("Profiler mode %s failed: %v", p.mode, err)
		}
	}, nil
}

// Path is the file the profile is written to.
func (p *profiler) Path() string {
	return filepath.Join(p.dir, string(p.mode)+".pprof")
}

func (p *profiler) start() error {
	fn := p.Path()
	f, err := os.Create(fn)
	if err != nil {
		return fmt.Errorf("creating %s profile %q: %w", p.mode, fn, err)
	}

	// called after mode specific writers
	finish := func(err error) error {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", fn, cerr)
		}
		if err == nil {
			p.logger.Info("Finished %s profiling, %s", p.mode, fn)
		}
		return err
	}

	lookup := func(name string) func() error {
		return func() error {
			if prof := pprof.Lookup(name); prof != nil {
				return finish(prof.WriteTo(f, 0))
			}
			return finish(nil)
		}
	}

	switch p.mode {
	case cpuMode:
		if err := pprof.StartCPUProfile(f); err != nil {
			return finish(err)
		}
		p.stop = func() error {
			pprof.StopCPUProfile()
			return finish(nil)
		}

	case memMode:
		p.stop = func() error {
			return finish(pprof.WriteHeapProfile(f))
		}

	case mutexMode:
		runtime.SetMutexProfileFraction(1)
		write := lookup("mutex")
		p.stop = func() error {
			defer runtime.SetMutexProfileFraction(0)
			return write()
		}

	case blockMode:
		runtime.SetBlockProfileRate(1)
		write := lookup("block")
		p.stop = func() error {
			defer runtime.SetBlockProfileRate(0)
			return write()
		}

	case threadCreateMode:
		p.stop = lookup("threadcreate")

	case traceMode:
		if err := trace.Start(f); err != nil {
			return finish(err)
		}
		p.stop = func() error {
			trace.Stop()
			return finish(nil)
		}
	}

	p.logger.Info("Profiling %s enabled, %s", p.mode, fn)
	return nil
}
