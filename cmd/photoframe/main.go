// Command photoframe turns a public Google Photos shared album into frames
// for a picture display.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dixieflatline76/photoframe/config"
	"github.com/dixieflatline76/photoframe/pkg"
	"github.com/dixieflatline76/photoframe/pkg/fetch"
	"github.com/dixieflatline76/photoframe/pkg/googlephotos"
	"github.com/dixieflatline76/photoframe/util/log"
	"github.com/spf13/cobra"
)

// errNoImage is what the user sees; the cause goes to the log.
var errNoImage = errors.New("could not retrieve image")

// CLI flags
var (
	configFlag  string
	logFileFlag string
	urlFlag     string
)

var cfg *config.Config

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "photoframe",
	Short: "Picture frame images from a Google Photos shared album",
	Long: `PhotoFrame reads a public Google Photos shared album and produces images
sized for a picture frame display.

Examples:
  photoframe generate --url https://photos.app.goo.gl/AbCd --out frame.jpg
  photoframe list
  photoframe sample --count 5 --dir ./frames
  photoframe serve`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Settings file (default ~/.photoframe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write logs to a rotating file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&urlFlag, "url", "u", "", "Shared album URL, overriding the settings file")

	rootCmd.AddCommand(generateCmd, listCmd, sampleCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the settings and redirects logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if logFileFlag != "" {
		if err := os.MkdirAll(filepath.Dir(logFileFlag), 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		log.SetOutput(log.NewRotatingWriter(logFileFlag))
	}

	path := configFlag
	if path == "" {
		var err error
		if path, err = config.GetFilename(); err != nil {
			return err
		}
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if urlFlag != "" {
		loaded.AlbumURL = urlFlag
	}
	cfg = loaded
	log.Debugf("Loaded settings from %s", path)
	return nil
}

func newClient() *http.Client {
	return fetch.NewClient(cfg.UserAgent, cfg.RequestsPerSecond)
}

func newProvider() *googlephotos.Provider {
	return googlephotos.NewProvider(fetch.New(newClient(), cfg.Timeout()))
}

// newPlugin builds a registered plugin by name.
func newPlugin(name string) (pkg.Plugin, error) {
	factory, ok := pkg.GetPluginFactory(name)
	if !ok {
		return nil, fmt.Errorf("unknown plugin %q (available: %v)", name, pkg.RegisteredPlugins())
	}
	return factory(newClient(), cfg.Timeout()), nil
}

// requireAlbumURL fails early for commands that cannot run without an album.
func requireAlbumURL() (string, error) {
	if cfg.AlbumURL == "" {
		return "", fmt.Errorf("no album URL: set album_url in the settings file or pass --url")
	}
	if !googlephotos.SharedAlbumURLRegex.MatchString(cfg.AlbumURL) {
		log.Printf("Album URL %s does not look like a shared album link", cfg.AlbumURL)
	}
	return cfg.AlbumURL, nil
}

// targetSize is the size frames are rendered at for the configured device.
func targetSize() (int, int) {
	return pkg.TargetDimensions(cfg.Device)
}
