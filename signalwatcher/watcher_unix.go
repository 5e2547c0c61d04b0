//go:build !windows

package signalwatcher

import (
	"os"
	"os/signal"
	"syscall"
)

func notify(signals chan<- os.Signal) {
	signal.Notify(signals, os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT)
}

func stopNotify(signals chan<- os.Signal) {
	signal.Stop(signals)
}

func normalize(sig os.Signal) Signal {
	switch sig {
	case syscall.SIGHUP:
		return HUP
	case syscall.SIGTERM:
		return TERM
	case syscall.SIGINT:
		return INT
	default:
		return QUIT
	}
}
