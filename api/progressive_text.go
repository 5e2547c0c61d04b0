package api

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	// TextSizeHeader carries the size of the log consumed so far, which is
	// the offset to request next.
	TextSizeHeader = "X-Text-Size"

	// MoreDataHeader is set to a non-empty value while the build is still
	// writing its log.
	MoreDataHeader = "X-More-Data"
)

// ProgressiveText is one response from the progressive text endpoint.
type ProgressiveText struct {
	// Body is the log text appended since the requested offset.
	Body []byte

	// Header holds the response headers the control signals are read from.
	Header http.Header
}

// TextSize returns the offset to request next. present is false if the
// response had no X-Text-Size header, which means the log is finished.
func (p *ProgressiveText) TextSize() (size uint64, present bool, err error) {
	value, present := headerValue(p.Header, TextSizeHeader)
	if !present {
		return 0, false, nil
	}

	if err := validHeaderString(value); err != nil {
		return 0, true, &Error{Kind: KindDecode, Op: TextSizeHeader, Err: err}
	}

	size, err = strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, true, &Error{Kind: KindParseInt, Op: TextSizeHeader, Err: err}
	}

	return size, true, nil
}

// MoreData reports whether the log may still grow. present is false if the
// response had no X-More-Data header. A header that isn't a valid header
// string counts as no more data.
func (p *ProgressiveText) MoreData() (more, present bool) {
	value, present := headerValue(p.Header, MoreDataHeader)
	if !present {
		return false, false
	}

	if validHeaderString(value) != nil {
		return false, true
	}

	return value != "", true
}

// headerValue distinguishes a header set to "" from one that is missing,
// which http.Header.Get doesn't.
func headerValue(h http.Header, name string) (string, bool) {
	values := h.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// validHeaderString only accepts tabs and visible ASCII (including spaces).
func validHeaderString(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\t' && (c < ' ' || c > '~') {
			return fmt.Errorf("invalid byte %#x at position %d in header value", c, i)
		}
	}
	return nil
}
