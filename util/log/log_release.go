//go:build release

package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dixieflatline76/photoframe/config"
)

func init() {
	var logDir string
	if runtime.GOOS == "windows" {
		userCacheDir, err := os.UserCacheDir()
		if err != nil {
			log.Fatalf("Failed to get user cache directory: %v", err)
		}
		logDir = filepath.Join(userCacheDir, config.LogWinSubDir)
	} else {
		userHomeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get user home directory: %v", err)
		}
		logDir = filepath.Join(userHomeDir, config.LogSubDir)
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	SetOutput(NewRotatingWriter(filepath.Join(logDir, config.AppName+config.LogExt)))
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// SetOutput redirects the process-wide logger. Call it once at startup.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Print calls the standard log.Print()
func Print(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
}

// Fatal calls the standard log.Fatal()
func Fatal(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf calls the standard log.Fatalf()
func Fatalf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatalln calls the standard log.Fatalln()
func Fatalln(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
	os.Exit(1)
}

// Debug is a no-op in release builds.
func Debug(v ...interface{}) {}

// Debugf is a no-op in release builds.
func Debugf(format string, v ...interface{}) {}
