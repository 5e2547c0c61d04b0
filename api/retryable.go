package api

import (
	"errors"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
	"syscall"
)

var retrableErrorSuffixes = []string{
	syscall.ECONNREFUSED.Error(),
	syscall.ECONNRESET.Error(),
	syscall.ETIMEDOUT.Error(),
	"no such host",
	"remote error: handshake failure",
	io.ErrUnexpectedEOF.Error(),
	io.EOF.Error(),
}

var retryableStatuses = []int{
	http.StatusTooManyRequests,     // 429
	http.StatusInternalServerError, // 500
	http.StatusBadGateway,          // 502
	http.StatusServiceUnavailable,  // 503
	http.StatusGatewayTimeout,      // 504
}

// IsRetryableStatus returns true if the response's StatusCode is one that we should retry.
func IsRetryableStatus(r *http.Response) bool {
	return r != nil && r.StatusCode >= 400 && slices.Contains(retryableStatuses, r.StatusCode)
}

// IsRetryable reports whether err is a KindTransport error that might succeed
// if the same request were sent again. Nothing is emitted for a failed fetch,
// so retrying it at the same offset is safe.
func IsRetryable(err error) bool {
	if !IsKind(err, KindTransport) {
		return false
	}

	var errResp *ErrorResponse
	if errors.As(err, &errResp) {
		return IsRetryableStatus(errResp.Response)
	}

	return IsRetryableError(err)
}

// Looks at a bunch of connection related errors, and returns true if the error
// matches one of them.
func IsRetryableError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var neterr net.Error
	if errors.As(err, &neterr) && neterr.Timeout() {
		return true
	}

	s := err.Error()
	if strings.Contains(s, "use of closed network connection") ||
		strings.Contains(s, "request canceled while waiting for connection") {
		return true
	}

	for _, suffix := range retrableErrorSuffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}

	return false
}
