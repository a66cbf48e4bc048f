package log

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// NewRotatingWriter returns a size-rotated log file writer.
func NewRotatingWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 2,
		MaxAge:     28, // days
		Compress:   true,
	}
}
