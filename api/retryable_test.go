package api

import (
	"errors"
	"fmt"
	"net/http"
	"syscall"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	status := func(code int) error {
		req, _ := http.NewRequest(http.MethodGet, "https://ci.example.com/job/app/lastBuild/logText/progressiveText", nil)
		return &Error{Kind: KindTransport, Op: "GET", Err: &ErrorResponse{
			Response: &http.Response{StatusCode: code, Status: http.StatusText(code), Request: req},
		}}
	}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "503", err: status(http.StatusServiceUnavailable), want: true},
		{name: "429", err: status(http.StatusTooManyRequests), want: true},
		{name: "404", err: status(http.StatusNotFound), want: false},
		{name: "403", err: status(http.StatusForbidden), want: false},
		{
			name: "connection refused",
			err:  &Error{Kind: KindTransport, Op: "GET", Err: fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)},
			want: true,
		},
		{
			name: "unexpected EOF",
			err:  &Error{Kind: KindTransport, Op: "GET", Err: errors.New("read: unexpected EOF")},
			want: true,
		},
		{
			name: "parse int",
			err:  &Error{Kind: KindParseInt, Op: "X-Text-Size", Err: errors.New("invalid syntax")},
			want: false,
		},
		{name: "not an api error", err: syscall.ECONNREFUSED, want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if got := IsRetryable(test.err); got != test.want {
				t.Errorf("IsRetryable(%v) = %t, want %t", test.err, got, test.want)
			}
		})
	}
}
