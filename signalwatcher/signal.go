// Package signalwatcher turns process signals into callbacks.
package signalwatcher

import "os"

type Signal string

func (s Signal) String() string {
	return string(s)
}

const (
	HUP  = Signal("HUP")
	QUIT = Signal("QUIT")
	TERM = Signal("TERM")
	INT  = Signal("INT")
)

// Watch calls callback, on its own goroutine, for every watched signal until
// the returned stop function is called.
func Watch(callback func(Signal)) (stop func()) {
	signals := make(chan os.Signal, 1)
	notify(signals)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-signals:
				go callback(normalize(sig))
			case <-done:
				return
			}
		}
	}()

	return func() {
		stopNotify(signals)
		close(done)
	}
}
