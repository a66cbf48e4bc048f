package googlephotos

import "regexp"

const (
	// PluginName is the key the plugin registers under.
	PluginName = "GooglePhotos"

	// PluginTitle is the user-facing name.
	PluginTitle = "Google Photos Shared Album"

	// excerptLen bounds how much of an unparsable block is kept for diagnosis.
	excerptLen = 200
)

// dataBlockRegex matches one AF_initDataCallback payload. The body is matched
// non-greedily so each candidate stops at its own nearest terminator.
var dataBlockRegex = regexp.MustCompile(`AF_initDataCallback\((\{[\s\S]*?)\);</script>`)

// dataMarker must appear in a block for it to be considered gallery data.
const dataMarker = "data"

// sizeSuffixRegex matches a trailing resize directive such as =s1600,
// =w400 or =w400-h300.
var sizeSuffixRegex = regexp.MustCompile(`=[swh]\d+(?:-h\d+)?$`)

// SharedAlbumURLRegex matches the public share links the plugin accepts.
// e.g. https://photos.app.goo.gl/AbCd or https://photos.google.com/share/AF1Qip...
var SharedAlbumURLRegex = regexp.MustCompile(`^https://(?:photos\.app\.goo\.gl/[A-Za-z0-9]+|photos\.google\.com/share/[A-Za-z0-9_-]+)`)
