package signalwatcher

import (
	"os"
	"os/signal"
)

func notify(signals chan<- os.Signal) {
	signal.Notify(signals, os.Interrupt)
}

func stopNotify(signals chan<- os.Signal) {
	signal.Stop(signals)
}

func normalize(os.Signal) Signal {
	return INT
}
