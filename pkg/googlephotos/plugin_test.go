package googlephotos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dixieflatline76/photoframe/pkg"
	"github.com/dixieflatline76/photoframe/pkg/fetch"
	"github.com/dixieflatline76/photoframe/pkg/relaxed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDevice struct {
	width, height int
	orientation   pkg.Orientation
}

func (d testDevice) Resolution() (int, int) { return d.width, d.height }
func (d testDevice) Orientation() pkg.Orientation { return d.orientation }

// albumServer serves one album page at /album and a PNG for every /img path,
// recording the image requests it sees.
type albumServer struct {
	*httptest.Server
	mu        sync.Mutex
	requested []string
	page      func(base string) string
	imageBody []byte
}

func newAlbumServer(t *testing.T, page func(base string) string) *albumServer {
	t.Helper()
	s := &albumServer{page: page, imageBody: encodePNG(t, 4, 2)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/album":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(s.page(s.URL)))
		case strings.HasPrefix(r.URL.Path, "/img/"):
			s.mu.Lock()
			s.requested = append(s.requested, r.URL.Path)
			s.mu.Unlock()
			if strings.Contains(r.URL.Path, "missing") {
				http.NotFound(w, r)
				return
			}
			if strings.Contains(r.URL.Path, "garbage") {
				_, _ = w.Write([]byte("definitely not an image"))
				return
			}
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(s.imageBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *albumServer) lastRequested() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requested) == 0 {
		return ""
	}
	return s.requested[len(s.requested)-1]
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func galleryPage(names ...string) func(base string) string {
	return func(base string) string {
		var entries []string
		for i, name := range names {
			entries = append(entries, fmt.Sprintf(`["%s",["%s/img/%s=s1600",4000,3000],%d,null,null,%d]`,
				name, base, name, 1690000000+i, 1690000500+i))
		}
		return `<html><head><meta property="og:title" content="Trip"></head><body>` +
			`<script>AF_initDataCallback({key: 'ds:0', hash: '1', data:function(){return [1]}});</script>` +
			`<script nonce="x">AF_initDataCallback({key: 'ds:1', hash: '2', data:[null,[` +
			strings.Join(entries, ",") + `], "token"], sideChannel: {}});</script></body></html>`
	}
}

func newTestProvider(s *albumServer, pick Picker) *Provider {
	return NewProvider(fetch.New(s.Client(), 2*time.Second), WithPicker(pick))
}

func TestGenerateImage(t *testing.T) {
	s := newAlbumServer(t, galleryPage("first", "second", "third"))
	p := newTestProvider(s, func(n int) int {
		assert.Equal(t, 3, n)
		return 1
	})

	img, err := p.GenerateImage(context.Background(),
		pkg.Settings{pkg.SettingURL: s.URL + "/album"},
		testDevice{width: 800, height: 480, orientation: pkg.OrientationHorizontal})
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Equal(t, "/img/second=w800-h480", s.lastRequested())
}

func TestGenerateImage_VerticalSwapsDimensions(t *testing.T) {
	s := newAlbumServer(t, galleryPage("only"))
	p := newTestProvider(s, func(int) int { return 0 })

	_, err := p.GenerateImage(context.Background(),
		pkg.Settings{pkg.SettingURL: s.URL + "/album"},
		testDevice{width: 800, height: 480, orientation: pkg.OrientationVertical})
	require.NoError(t, err)
	assert.Equal(t, "/img/only=w480-h800", s.lastRequested())
}

func TestGenerateImage_MissingURL(t *testing.T) {
	p := NewProvider(nil)
	for _, settings := range []pkg.Settings{nil, {}, {pkg.SettingURL: ""}} {
		_, err := p.GenerateImage(context.Background(), settings, testDevice{width: 1, height: 1})
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "url", cfgErr.Key)
	}
}

func TestGenerateImage_StageErrors(t *testing.T) {
	tests := []struct {
		name      string
		page      func(base string) string
		path      string
		wantStage Stage
		check     func(t *testing.T, err error)
	}{
		{
			name:      "Fetch",
			page:      galleryPage("a"),
			path:      "/nope",
			wantStage: StageFetch,
			check: func(t *testing.T, err error) {
				var fe *fetch.Error
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, http.StatusNotFound, fe.StatusCode)
			},
		},
		{
			name:      "Extract",
			page:      func(string) string { return "<html>no data</html>" },
			path:      "/album",
			wantStage: StageExtract,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoDataBlock)
			},
		},
		{
			name: "Parse",
			page: func(string) string {
				return `<script>AF_initDataCallback({data: [1,,2]});</script>`
			},
			path:      "/album",
			wantStage: StageParse,
			check: func(t *testing.T, err error) {
				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, "{data: [1,,2]}", pe.Excerpt)
				var se *relaxed.SyntaxError
				assert.ErrorAs(t, err, &se)
			},
		},
		{
			name: "Records",
			page: func(string) string {
				return `<script>AF_initDataCallback({data: [null, []]});</script>`
			},
			path:      "/album",
			wantStage: StageRecords,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoValidEntries)
			},
		},
		{
			name:      "Image not found",
			page:      galleryPage("missing"),
			path:      "/album",
			wantStage: StageImage,
			check: func(t *testing.T, err error) {
				var le *ImageLoadError
				require.ErrorAs(t, err, &le)
				assert.Contains(t, le.URL, "/img/missing=w800-h480")
				var fe *fetch.Error
				assert.ErrorAs(t, err, &fe)
			},
		},
		{
			name:      "Image undecodable",
			page:      galleryPage("garbage"),
			path:      "/album",
			wantStage: StageImage,
			check: func(t *testing.T, err error) {
				var le *ImageLoadError
				require.ErrorAs(t, err, &le)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newAlbumServer(t, tt.page)
			p := newTestProvider(s, func(int) int { return 0 })

			img, err := p.GenerateImage(context.Background(),
				pkg.Settings{pkg.SettingURL: s.URL + tt.path},
				testDevice{width: 800, height: 480, orientation: pkg.OrientationHorizontal})
			require.Error(t, err)
			assert.Nil(t, img)

			var perr *PipelineError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantStage, perr.Stage)
			tt.check(t, err)
		})
	}
}

func TestFetchAlbum(t *testing.T) {
	s := newAlbumServer(t, galleryPage("a", "b"))
	p := newTestProvider(s, nil)

	album, err := p.FetchAlbum(context.Background(), s.URL+"/album")
	require.NoError(t, err)
	assert.Equal(t, "Trip", album.Title)
	assert.Equal(t, s.URL+"/album", album.URL)
	assert.Zero(t, album.Skipped)
	require.Len(t, album.Records, 2)
	assert.Equal(t, "a", album.Records[0].UID)
	assert.Equal(t, "b", album.Records[1].UID)
}

func TestPick(t *testing.T) {
	album := &Album{Records: []ImageRecord{{UID: "a"}, {UID: "b"}}}

	p := NewProvider(nil, WithPicker(func(int) int { return 1 }))
	rec, ok := p.Pick(album)
	require.True(t, ok)
	assert.Equal(t, "b", rec.UID)

	p = NewProvider(nil, WithPicker(func(int) int { return 9 }))
	rec, ok = p.Pick(album)
	require.True(t, ok)
	assert.Equal(t, "a", rec.UID)

	_, ok = p.Pick(&Album{})
	assert.False(t, ok)
	_, ok = p.Pick(nil)
	assert.False(t, ok)
}

func TestPick_DefaultCoversAllRecords(t *testing.T) {
	album := &Album{Records: []ImageRecord{{UID: "a"}, {UID: "b"}, {UID: "c"}}}
	p := NewProvider(nil)

	seen := map[string]bool{}
	for i := 0; i < 500 && len(seen) < 3; i++ {
		rec, ok := p.Pick(album)
		require.True(t, ok)
		seen[rec.UID] = true
	}
	assert.Len(t, seen, 3)
}

func TestPluginRegistered(t *testing.T) {
	factory, ok := pkg.GetPluginFactory(PluginName)
	require.True(t, ok)
	plugin := factory(http.DefaultClient, time.Second)
	assert.Equal(t, PluginName, plugin.Name())
}

func TestPipelineError_Message(t *testing.T) {
	err := &PipelineError{Stage: StageExtract, Err: ErrNoDataBlock}
	assert.Equal(t, "extract stage failed: no data block found in album page", err.Error())
	assert.True(t, errors.Is(err, ErrNoDataBlock))
}
