package fetch

import (
	"net/http"

	"golang.org/x/time/rate"
)

// UserAgentTransport wraps an http.RoundTripper and adds a User-Agent header.
type UserAgentTransport struct {
	http.RoundTripper
	UserAgent string
}

// RoundTrip executes a single HTTP transaction, adding the User-Agent header.
func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	clonedReq := req.Clone(req.Context())
	clonedReq.Header.Set("User-Agent", t.UserAgent)
	return t.RoundTripper.RoundTrip(clonedReq)
}

// RateLimitTransport delays requests so they never exceed the limiter's rate.
// It does not retry; a cancelled or expired context aborts the wait.
type RateLimitTransport struct {
	http.RoundTripper
	Limiter *rate.Limiter
}

// RoundTrip waits for a limiter token, then forwards the request.
func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.Limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.RoundTripper.RoundTrip(req)
}

// NewClient builds the HTTP client used for album and image requests.
// requestsPerSecond <= 0 disables throttling. The client carries no timeout of
// its own; the Fetcher applies one per call.
func NewClient(userAgent string, requestsPerSecond float64) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if requestsPerSecond > 0 {
		rt = &RateLimitTransport{
			RoundTripper: rt,
			Limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		}
	}
	if userAgent != "" {
		rt = &UserAgentTransport{RoundTripper: rt, UserAgent: userAgent}
	}
	return &http.Client{Transport: rt}
}
