package metricsserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildkite/jenkins-tail/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "jenkins_tail",
	Subsystem: "metricsserver_test",
	Name:      "hits_total",
	Help:      "Counter used by the metrics server tests",
})

func TestServerServesMetrics(t *testing.T) {
	testCounter.Add(3)

	svr := New("127.0.0.1:0", logger.Discard)
	require.NoError(t, svr.Start())
	t.Cleanup(func() {
		if err := svr.Shutdown(context.Background()); err != nil {
			t.Errorf("svr.Shutdown() = %v", err)
		}
	})

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", svr.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "jenkins_tail_metricsserver_test_hits_total 3")
}

func TestServerHealthz(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	router(logger.Discard).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK\n", w.Body.String())
}

func TestServerLifecycleErrors(t *testing.T) {
	t.Parallel()

	svr := New("127.0.0.1:0", logger.Discard)
	assert.Error(t, svr.Shutdown(context.Background()), "Shutdown before Start")

	require.NoError(t, svr.Start())
	assert.Error(t, svr.Start(), "second Start")
	assert.NoError(t, svr.Shutdown(context.Background()))
}

func TestLoggerMiddleware(t *testing.T) {
	t.Parallel()

	var lines []string
	logf := func(f string, v ...any) { lines = append(lines, fmt.Sprintf(f, v...)) }

	h := LoggerMiddleware("Test", logf)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "Test:\tGET\t/metrics\t"), "log line = %q", lines[0])
}
