package pkg

import (
	"context"
	"image"
)

// SettingURL is the settings key holding the album URL.
const SettingURL = "url"

// Settings are the per-instance values a user configured for a plugin.
type Settings map[string]string

// Orientation is how the display panel is mounted.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// DeviceConfig is the read-only view of the display a plugin renders for.
type DeviceConfig interface {
	Resolution() (width, height int) // Native panel resolution.
	Orientation() Orientation        // Mounting orientation.
}

// Plugin is the interface that must be implemented by all image plugins.
type Plugin interface {
	Name() string // Returns the plugin's name.
	// GenerateImage produces a decoded image for the device. Ownership of the
	// returned image passes to the caller.
	GenerateImage(ctx context.Context, settings Settings, device DeviceConfig) (image.Image, error)
}

// TargetDimensions returns the device resolution, swapped for vertical panels.
func TargetDimensions(device DeviceConfig) (int, int) {
	w, h := device.Resolution()
	if device.Orientation() == OrientationVertical {
		return h, w
	}
	return w, h
}

// ResolutionAware is an optional interface for plugins whose image URLs can
// request a specific rendition size.
type ResolutionAware interface {
	// WithResolution returns imageURL rewritten to ask for width x height.
	WithResolution(imageURL string, width, height int) string
}
