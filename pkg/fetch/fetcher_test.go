package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchText_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>héllo</html>"))
	}))
	defer server.Close()

	f := New(server.Client(), time.Second)
	got, err := f.FetchText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>héllo</html>", got)
}

func TestFetchText_TranscodesCharset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		_, _ = w.Write([]byte{'c', 'a', 'f', 0xE9})
	}))
	defer server.Close()

	f := New(server.Client(), time.Second)
	got, err := f.FetchText(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestFetchBinary_OK(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	f := New(server.Client(), time.Second)
	got, err := f.FetchBinary(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFetch_Errors(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer slow.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	tests := []struct {
		name       string
		url        string
		timeout    time.Duration
		wantKind   Kind
		wantStatus int
	}{
		{name: "Non-2xx status", url: notFound.URL, timeout: time.Second, wantKind: KindStatus, wantStatus: http.StatusNotFound},
		{name: "Timeout", url: slow.URL, timeout: 50 * time.Millisecond, wantKind: KindTimeout},
		{name: "Unreachable host", url: closedURL, timeout: time.Second, wantKind: KindTransport},
		{name: "Empty URL", url: "", timeout: time.Second, wantKind: KindInvalidRequest},
		{name: "Malformed URL", url: "http://[::1", timeout: time.Second, wantKind: KindInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(&http.Client{}, tt.timeout)
			_, err := f.FetchText(context.Background(), tt.url)
			require.Error(t, err)

			var fe *Error
			require.True(t, errors.As(err, &fe), "expected *fetch.Error, got %T", err)
			assert.Equal(t, tt.wantKind, fe.Kind)
			assert.Equal(t, tt.url, fe.URL)
			assert.Equal(t, tt.wantStatus, fe.StatusCode)
		})
	}
}

func TestFetchBinary_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer server.Close()

	f := New(server.Client(), time.Second)
	f.maxBinaryBytes = 16

	_, err := f.FetchBinary(context.Background(), server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestNew_Defaults(t *testing.T) {
	f := New(nil, 0)
	assert.Equal(t, DefaultTimeout, f.Timeout())
	assert.Equal(t, http.DefaultClient, f.client)
}

func TestError_Message(t *testing.T) {
	err := &Error{URL: "https://x", Kind: KindStatus, StatusCode: 503}
	assert.Equal(t, "fetch https://x: status 503", err.Error())

	err = &Error{URL: "https://x", Kind: KindTimeout, Err: context.DeadlineExceeded}
	assert.Equal(t, "fetch https://x: timeout: context deadline exceeded", err.Error())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
