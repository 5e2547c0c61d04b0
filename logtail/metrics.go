package logtail

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "jenkins_tail"

var (
	requestsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "requests",
		Name:      "sent_total",
		Help:      "Count of progressive text requests sent",
	})
	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "requests",
		Name:      "errors_total",
		Help:      "Count of failed tail iterations by error kind",
	}, []string{"kind"})
	requestDurations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "requests",
		Name:      "duration_seconds",
		Help:      "Time spent on progressive text requests, including reading the body",
		Buckets:   prometheus.ExponentialBuckets(0.015625, 2, 12),
	})

	bytesEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "log",
		Name:      "bytes_emitted_total",
		Help:      "Count of log bytes written to the output",
	})
	logOffset = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Subsystem: "log",
		Name:      "offset_bytes",
		Help:      "Offset of the next progressive text request",
	})

	runsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "runs",
		Name:      "finished_total",
		Help:      "Count of tail runs by final state",
	}, []string{"state"})
)
