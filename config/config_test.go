package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dixieflatline76/photoframe/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 40*time.Second, cfg.Timeout())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
album_url: https://photos.app.goo.gl/abc
timeout_seconds: 10
requests_per_second: 2.5
device:
  width: 1872
  height: 1404
  orientation: vertical
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://photos.app.goo.gl/abc", cfg.AlbumURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 2.5, cfg.RequestsPerSecond)
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent, "unset keys keep their default")
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)

	w, h := cfg.Device.Resolution()
	assert.Equal(t, 1872, w)
	assert.Equal(t, 1404, h)
	assert.Equal(t, pkg.OrientationVertical, cfg.Device.Orientation())
	assert.Equal(t, pkg.Settings{pkg.SettingURL: "https://photos.app.goo.gl/abc"}, cfg.Settings())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Zero timeout", body: "timeout_seconds: 0\n"},
		{name: "Negative rate", body: "requests_per_second: -1\n"},
		{name: "Bad resolution", body: "device:\n  width: 0\n  height: 480\n"},
		{name: "Bad orientation", body: "device:\n  width: 800\n  height: 480\n  orientation: diagonal\n"},
		{name: "Not YAML", body: "album_url: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDevice_Orientation(t *testing.T) {
	tests := []struct {
		layout string
		want   pkg.Orientation
	}{
		{"", pkg.OrientationHorizontal},
		{"horizontal", pkg.OrientationHorizontal},
		{"vertical", pkg.OrientationVertical},
		{" Vertical ", pkg.OrientationVertical},
	}

	for _, tc := range tests {
		t.Run(tc.layout, func(t *testing.T) {
			d := Device{Width: 1, Height: 1, Layout: tc.layout}
			assert.Equal(t, tc.want, d.Orientation())
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)

	cfg := Default()
	cfg.AlbumURL = "https://photos.app.goo.gl/xyz"
	cfg.Device.Layout = "vertical"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
