package api

import (
	"errors"
	"fmt"
)

// Kind classifies where a failure came from. Every kind is fatal to a tail
// run; the kind exists so callers (and a supervising retry policy) can tell
// them apart.
type Kind int

const (
	// KindURL is a malformed base URL, detected before any request is sent.
	KindURL Kind = iota + 1

	// KindTransport is a failed HTTP exchange: connection errors, non-2xx
	// statuses and truncated bodies.
	KindTransport

	// KindDecode is a response header whose value isn't a valid header string.
	KindDecode

	// KindParseInt is an X-Text-Size header that isn't an unsigned integer.
	KindParseInt

	// KindIO is a failure writing fetched log text to the output.
	KindIO

	// KindCanceled is a run stopped through its context.
	KindCanceled
)

var kindNames = map[Kind]string{
	KindURL:       "url",
	KindTransport: "transport",
	KindDecode:    "header decode",
	KindParseInt:  "parse int",
	KindIO:        "io",
	KindCanceled:  "canceled",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is returned by everything in this package, and by the tail loop built
// on top of it.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether any error in err's chain is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var apierr *Error
	return errors.As(err, &apierr) && apierr.Kind == k
}
