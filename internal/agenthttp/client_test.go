package agenthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/buildkite/jenkins-tail/logger"
	"github.com/google/go-cmp/cmp"
)

func TestNewClientBasicAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		user, pass string
		wantAuth   bool
	}{
		{name: "credentials", user: "bob", pass: "secret", wantAuth: true},
		{name: "no credentials"},
		{name: "username only", user: "bob"},
		{name: "password only", pass: "secret"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			type basicAuth struct {
				user, pass string
				ok         bool
			}
			auths := make(chan basicAuth, 1)
			server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				user, pass, ok := req.BasicAuth()
				auths <- basicAuth{user: user, pass: pass, ok: ok}
				rw.WriteHeader(http.StatusOK)
			}))
			t.Cleanup(server.Close)

			client := NewClient(WithBasicAuth(test.user, test.pass), WithAllowHTTP2(false))

			req, err := http.NewRequest(http.MethodGet, server.URL, nil)
			if err != nil {
				t.Fatalf("http.NewRequest error = %v", err)
			}

			resp, err := Do(logger.Discard, client, req, WithDebugHTTP(true), WithTraceHTTP(true))
			if err != nil {
				t.Fatalf("Do() error = %v", err)
			}
			resp.Body.Close()

			got := <-auths
			gotUser, gotPass, gotOK := got.user, got.pass, got.ok
			if gotOK != test.wantAuth {
				t.Fatalf("req.BasicAuth() ok = %t, want %t", gotOK, test.wantAuth)
			}
			if !test.wantAuth {
				return
			}
			if diff := cmp.Diff([]string{test.user, test.pass}, []string{gotUser, gotPass}); diff != "" {
				t.Errorf("basic auth credentials diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewClientTimeouts(t *testing.T) {
	t.Parallel()

	if got := NewClient().Timeout; got == 0 {
		t.Errorf("NewClient().Timeout = %v, want a default timeout", got)
	}
	if got := NewClient(WithNoTimeout).Timeout; got != 0 {
		t.Errorf("NewClient(WithNoTimeout).Timeout = %v, want 0", got)
	}
}

func TestRedactAuthorization(t *testing.T) {
	t.Parallel()

	dump := "GET /x HTTP/1.1\r\nHost: ci.example.com\r\nAuthorization: Basic Ym9iOnNlY3JldA==\r\n\r\n"
	want := "GET /x HTTP/1.1\r\nHost: ci.example.com\r\nAuthorization: Basic [REDACTED]\r\n\r\n"

	if diff := cmp.Diff(want, redactAuthorization([]byte(dump))); diff != "" {
		t.Errorf("redactAuthorization diff (-want +got):\n%s", diff)
	}
}
