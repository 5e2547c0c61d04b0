// Package logtail follows the log of a running Jenkins build through the
// progressive text endpoint, writing new text as it arrives.
package logtail

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/buildkite/jenkins-tail/api"
	"github.com/buildkite/jenkins-tail/logger"
	"github.com/buildkite/jenkins-tail/metrics"
	"github.com/dustin/go-humanize"
)

// Fetcher fetches the log text from offset onwards. *api.Client is a Fetcher.
type Fetcher interface {
	ProgressiveText(ctx context.Context, offset uint64) (*api.ProgressiveText, error)
}

type Config struct {
	// PollInterval is how long to wait between requests while the build is
	// still writing its log. Zero polls without waiting.
	PollInterval time.Duration

	// Metrics is an optional DogStatsD scope. A nil scope sends nothing.
	Metrics *metrics.Scope
}

// Session is the progress of one tail run.
type Session struct {
	// Offset is the number of log bytes consumed, and the start of the next
	// request.
	Offset uint64

	// Requests is how many progressive text responses were received.
	Requests int

	// BytesEmitted is the number of bytes written to the output.
	BytesEmitted uint64
}

// Tailer runs the fetch, emit, decide, sleep loop. A Tailer is used for a
// single run and is not safe for concurrent use.
type Tailer struct {
	conf    Config
	logger  logger.Logger
	fetcher Fetcher
	out     io.Writer

	session Session
	state   State
}

func New(l logger.Logger, f Fetcher, out io.Writer, conf Config) *Tailer {
	return &Tailer{
		conf:    conf,
		logger:  l,
		fetcher: f,
		out:     out,
		state:   Fetching,
	}
}

// Session returns the progress so far.
func (t *Tailer) Session() Session {
	return t.session
}

// State returns the current state. After Run returns it is Done or Failed.
func (t *Tailer) State() State {
	return t.state
}

// Run tails the log until Jenkins reports it complete, or until the first
// error. No error is retried; wrap the Fetcher to add a retry policy.
//
// Cancelling ctx stops the run before the next request or during the sleep
// between requests, with a KindCanceled error.
func (t *Tailer) Run(ctx context.Context) error {
	if t.state.Terminal() {
		return errors.New("tailer has already run")
	}

	t.logger.Debug("[Tailer] Starting at offset %d with a poll interval of %v", t.session.Offset, t.conf.PollInterval)

	for {
		if err := ctx.Err(); err != nil {
			return t.fail(&api.Error{Kind: api.KindCanceled, Op: "tail", Err: err})
		}

		t.transition(Fetching)
		pt, err := t.fetch(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return t.fail(&api.Error{Kind: api.KindCanceled, Op: "tail", Err: ctxErr})
			}
			return t.fail(err)
		}

		t.transition(Emitting)
		if err := t.emit(pt.Body); err != nil {
			return t.fail(err)
		}

		t.transition(Deciding)
		more, err := t.decide(pt)
		if err != nil {
			return t.fail(err)
		}
		if !more {
			t.finish()
			return nil
		}

		t.transition(Sleeping)
		if err := sleep(ctx, t.conf.PollInterval); err != nil {
			return t.fail(&api.Error{Kind: api.KindCanceled, Op: "tail", Err: err})
		}
	}
}

func (t *Tailer) fetch(ctx context.Context) (*api.ProgressiveText, error) {
	requestsSent.Inc()
	t.conf.Metrics.Count("requests", 1)

	start := time.Now()
	pt, err := t.fetcher.ProgressiveText(ctx, t.session.Offset)
	elapsed := time.Since(start)

	requestDurations.Observe(elapsed.Seconds())
	t.conf.Metrics.Timing("request", elapsed)

	if err != nil {
		return nil, err
	}

	t.session.Requests++
	return pt, nil
}

// emit writes the whole body before anything else happens, so text is
// visible before the next request goes out.
func (t *Tailer) emit(body []byte) error {
	if len(body) == 0 {
		return nil
	}

	n, err := t.out.Write(body)
	t.session.BytesEmitted += uint64(n)
	bytesEmitted.Add(float64(n))
	t.conf.Metrics.Count("bytes", int64(n))

	if err != nil {
		return &api.Error{Kind: api.KindIO, Op: "writing log text", Err: err}
	}
	return nil
}

// decide applies the control headers: a missing X-Text-Size ends the run
// without moving the offset, otherwise the offset moves to X-Text-Size and the
// run continues only if X-More-Data is present and non-empty.
func (t *Tailer) decide(pt *api.ProgressiveText) (bool, error) {
	size, present, err := pt.TextSize()
	if err != nil {
		return false, err
	}
	if !present {
		t.logger.Debug("[Tailer] Response has no %s header, the log is complete", api.TextSizeHeader)
		return false, nil
	}

	if size < t.session.Offset {
		t.logger.Warn("Jenkins reported a log size of %d, which is less than the %d bytes already read", size, t.session.Offset)
	}

	more, present := pt.MoreData()

	t.logger.WithFields(
		logger.Uint64Field("offset", t.session.Offset),
		logger.Uint64Field("next", size),
		logger.IntField("bytes", len(pt.Body)),
		logger.BoolField("more", more),
	).Debug("[Tailer] Received progressive text")

	t.session.Offset = size
	logOffset.Set(float64(size))

	if !present {
		t.logger.Debug("[Tailer] Response has no %s header, the log is complete", api.MoreDataHeader)
		return false, nil
	}
	return more, nil
}

func (t *Tailer) transition(to State) {
	if t.state == to {
		return
	}
	if t.logger.Level() == logger.DEBUG {
		t.logger.Debug("[Tailer] %s -> %s", t.state, to)
	}
	t.state = to
}

func (t *Tailer) finish() {
	t.transition(Done)
	runsFinished.WithLabelValues(Done.String()).Inc()

	t.logger.Info("Log complete: %s in %d requests",
		humanize.Bytes(t.session.BytesEmitted), t.session.Requests)
}

func (t *Tailer) fail(err error) error {
	t.transition(Failed)
	runsFinished.WithLabelValues(Failed.String()).Inc()

	kind := "unknown"
	var apierr *api.Error
	if errors.As(err, &apierr) {
		kind = apierr.Kind.String()
	}
	requestErrors.WithLabelValues(kind).Inc()
	t.conf.Metrics.Count("errors", 1, metrics.Tags{"kind": kind})

	t.logger.Debug("[Tailer] Stopping after %d requests at offset %d: %v", t.session.Requests, t.session.Offset, err)
	return err
}

// sleep waits for d, or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
