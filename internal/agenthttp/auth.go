package agenthttp

import (
	"errors"
	"net/http"
)

// basicAuthTransport injects HTTP Basic credentials into every request.
// Using a transport to inject credentials into every request like this is
// ugly because http.RoundTripper has specific requirements, but has
// precedent (e.g. https://github.com/golang/oauth2/blob/master/transport.go).
type basicAuthTransport struct {
	Username string
	Password string

	// Delegate is the underlying HTTP transport
	Delegate http.RoundTripper
}

// RoundTrip invoked each time a request is made.
func (t basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Per net/http#RoundTripper:
	//
	// "RoundTrip must always close the body, including on errors, ..."
	reqBodyClosed := false
	if req.Body != nil {
		defer func() {
			if !reqBodyClosed {
				req.Body.Close() //nolint:errcheck // req.Body is only used in a read-only manner.
			}
		}()
	}

	if t.Username == "" || t.Password == "" {
		return nil, errors.New("invalid basic auth credentials, empty username or password supplied")
	}

	// Per net/http#RoundTripper:
	//
	// "RoundTrip should not modify the request, except for
	// consuming and closing the Request's Body."
	//
	// But we can pass a _different_ request to t.Delegate.RoundTrip.
	// req.Clone does a sufficiently deep clone (including Header which we
	// modify).
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.Username, t.Password)

	// req.Body is assumed to be closed by the delegate.
	reqBodyClosed = true
	return t.Delegate.RoundTrip(req)
}

// CloseIdleConnections forwards the call to t.Delegate, if it implements
// CloseIdleConnections itself.
func (t *basicAuthTransport) CloseIdleConnections() {
	closer, ok := t.Delegate.(interface{ CloseIdleConnections() })
	if !ok {
		return
	}
	closer.CloseIdleConnections()
}
