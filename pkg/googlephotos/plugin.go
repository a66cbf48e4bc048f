package googlephotos

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/photoframe/pkg"
	"github.com/dixieflatline76/photoframe/pkg/fetch"
	"github.com/dixieflatline76/photoframe/util/log"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Picker returns an index in [0, n). n is always positive.
type Picker func(n int) int

// Option configures a Provider.
type Option func(*Provider)

// WithPicker replaces the random selection, mainly for tests.
func WithPicker(p Picker) Option {
	return func(pr *Provider) {
		if p != nil {
			pr.pick = p
		}
	}
}

// Provider turns a public shared album into a single device-sized image.
type Provider struct {
	fetcher *fetch.Fetcher
	pick    Picker
}

// NewProvider creates a Provider backed by f.
func NewProvider(f *fetch.Fetcher, opts ...Option) *Provider {
	if f == nil {
		f = fetch.New(nil, 0)
	}
	p := &Provider{
		fetcher: f,
		pick:    rand.IntN,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func init() {
	pkg.RegisterPlugin(PluginName, func(client *http.Client, timeout time.Duration) pkg.Plugin {
		return NewProvider(fetch.New(client, timeout))
	})
}

// Name returns the registry key.
func (p *Provider) Name() string {
	return PluginName
}

// Title returns the display name.
func (p *Provider) Title() string {
	return PluginTitle
}

// WithResolution rewrites an image URL to request the given pixel size.
func (p *Provider) WithResolution(imageURL string, width, height int) string {
	return WithDimensions(imageURL, width, height)
}

// Pick chooses one record uniformly at random. It returns false for an empty
// album.
func (p *Provider) Pick(album *Album) (ImageRecord, bool) {
	if album == nil || len(album.Records) == 0 {
		return ImageRecord{}, false
	}
	i := p.pick(len(album.Records))
	if i < 0 || i >= len(album.Records) {
		i = 0
	}
	return album.Records[i], true
}

// LoadImage downloads rec at width x height and decodes it, applying any EXIF
// orientation.
func (p *Provider) LoadImage(ctx context.Context, rec ImageRecord, width, height int) (image.Image, error) {
	imageURL := WithDimensions(rec.URL, width, height)

	data, err := p.fetcher.FetchBinary(ctx, imageURL)
	if err != nil {
		return nil, p.imageFailure(ctx, imageURL, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, p.imageFailure(ctx, imageURL, err)
	}
	return img, nil
}

func (p *Provider) imageFailure(ctx context.Context, imageURL string, err error) error {
	perr := &PipelineError{Stage: StageImage, Err: &ImageLoadError{URL: imageURL, Err: err}}
	log.Printf("[%s] Image %s: %s stage failed: %v", requestID(ctx), imageURL, StageImage, err)
	return perr
}

// GenerateImage picks a random photo from the album in settings and returns
// it sized for device.
func (p *Provider) GenerateImage(ctx context.Context, settings pkg.Settings, device pkg.DeviceConfig) (image.Image, error) {
	albumURL := settings[pkg.SettingURL]
	if albumURL == "" {
		return nil, &ConfigError{Key: pkg.SettingURL}
	}

	ctx, id := withRequestID(ctx)
	width, height := pkg.TargetDimensions(device)
	log.Debugf("[%s] Generating %dx%d image from %s", id, width, height, albumURL)

	album, err := p.FetchAlbum(ctx, albumURL)
	if err != nil {
		return nil, err
	}

	rec, ok := p.Pick(album)
	if !ok {
		// ExtractRecords never returns an empty slice without an error.
		return nil, &PipelineError{Stage: StageRecords, Err: ErrNoValidEntries}
	}
	log.Debugf("[%s] Picked %s (%dx%d)", id, rec.UID, rec.Width, rec.Height)

	return p.LoadImage(ctx, rec, width, height)
}

var (
	_ pkg.Plugin          = (*Provider)(nil)
	_ pkg.ResolutionAware = (*Provider)(nil)
)
