//go:build !release

package log

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	tests := []struct {
		name     string
		fn       func()
		expected string
	}{
		{
			name: "Print",
			fn: func() {
				Print("test print")
			},
			expected: "test print",
		},
		{
			name: "Printf",
			fn: func() {
				Printf("test printf %d", 123)
			},
			expected: "test printf 123",
		},
		{
			name: "Println",
			fn: func() {
				Println("test println")
			},
			expected: "test println",
		},
		{
			name: "Debug",
			fn: func() {
				Debug("test debug")
			},
			expected: "[DEBUG] test debug",
		},
		{
			name: "Debugf",
			fn: func() {
				Debugf("test debugf %s", "foo")
			},
			expected: "[DEBUG] test debugf foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn()
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected log to contain %q, but got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestLogging_CallerIsReported(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Printf("where am i")
	assert.Contains(t, buf.String(), "log_test.go")
}

func TestNewRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photoframe.log")
	w := NewRotatingWriter(path)
	if c, ok := w.(io.Closer); ok {
		defer c.Close()
	}

	_, err := w.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

// NOTE: Testing Fatal* functions requires a subprocess, which is often overkill for simple wrappers.
