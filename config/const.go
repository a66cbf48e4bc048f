package config

import "strings"

// AppVersion is the version of the service.
var AppVersion string // Set via -ldflags at build time

// AppName is the name of the service.
const AppName = "PhotoFrame"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

// ConfigFileName is the name of the settings file inside the config directory.
const ConfigFileName = "config.yaml"

// Defaults applied before the settings file is read.
const (
	DefaultTimeoutSeconds = 40
	DefaultDeviceWidth    = 800
	DefaultDeviceHeight   = 480
	DefaultServerAddr     = "127.0.0.1:49452"
	DefaultUserAgent      = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)
