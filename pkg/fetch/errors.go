package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies why a fetch failed.
type Kind int

const (
	KindTransport      Kind = iota // connection, DNS, TLS or body read failure
	KindTimeout                    // the per-call timeout expired
	KindStatus                     // the server answered with a non-2xx status
	KindInvalidRequest             // the URL could not be turned into a request
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindInvalidRequest:
		return "invalid request"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned for every failed fetch.
type Error struct {
	URL        string
	Kind       Kind
	StatusCode int // set when Kind is KindStatus
	Err        error
}

func (e *Error) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrTooLarge is the cause when a response body exceeds the size limit.
var ErrTooLarge = errors.New("response body too large")

// ErrEmptyURL is the cause when no URL was given.
var ErrEmptyURL = errors.New("empty URL")

// classify maps a client or body-read error to a Kind.
func classify(ctx context.Context, err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindTransport
}
