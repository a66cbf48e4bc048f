// Package fetch retrieves page text and image bytes over HTTP with a per-call
// timeout, reporting every failure as a *fetch.Error.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dixieflatline76/photoframe/util/log"
	"golang.org/x/net/html/charset"
)

// DefaultTimeout applies when a Fetcher is built with a non-positive timeout.
const DefaultTimeout = 40 * time.Second

const (
	maxTextBytes   = 8 << 20
	maxBinaryBytes = 64 << 20
)

// Fetcher performs single GET requests. It holds no per-call state and is
// safe for concurrent use.
type Fetcher struct {
	client         *http.Client
	timeout        time.Duration
	maxTextBytes   int64
	maxBinaryBytes int64
}

// New creates a Fetcher. A nil client falls back to http.DefaultClient.
func New(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client:         client,
		timeout:        timeout,
		maxTextBytes:   maxTextBytes,
		maxBinaryBytes: maxBinaryBytes,
	}
}

// Timeout returns the per-call timeout.
func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

// FetchText downloads url and returns its body decoded to UTF-8 according to
// the response charset.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	body, contentType, err := f.get(ctx, url, f.maxTextBytes)
	if err != nil {
		return "", err
	}

	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		// Unknown charset label; hand back the raw bytes.
		log.Debugf("Charset detection failed for %s (%s): %v", url, contentType, err)
		return string(body), nil
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(body), nil
	}
	return string(decoded), nil
}

// FetchBinary downloads url and returns the raw body.
func (f *Fetcher) FetchBinary(ctx context.Context, url string) ([]byte, error) {
	body, _, err := f.get(ctx, url, f.maxBinaryBytes)
	return body, err
}

func (f *Fetcher) get(ctx context.Context, url string, limit int64) ([]byte, string, error) {
	body, contentType, err := f.do(ctx, url, limit)
	if err != nil {
		log.Printf("Fetch failed for %s: %v", url, err)
		return nil, "", err
	}
	return body, contentType, nil
}

func (f *Fetcher) do(ctx context.Context, url string, limit int64) ([]byte, string, error) {
	if url == "" {
		return nil, "", &Error{URL: url, Kind: KindInvalidRequest, Err: ErrEmptyURL}
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &Error{URL: url, Kind: KindInvalidRequest, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", &Error{URL: url, Kind: classify(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, "", &Error{
			URL:        url,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, "", &Error{URL: url, Kind: classify(ctx, err), Err: err}
	}
	if int64(len(body)) > limit {
		return nil, "", &Error{URL: url, Kind: KindTransport, Err: ErrTooLarge}
	}

	return body, resp.Header.Get("Content-Type"), nil
}
