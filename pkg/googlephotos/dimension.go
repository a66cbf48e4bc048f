package googlephotos

import "fmt"

// WithDimensions asks the image server for a width x height rendition by
// replacing any existing size suffix with =w<width>-h<height>. Applying it
// twice with the same target gives the same URL. Empty URLs and non-positive
// dimensions leave the URL unchanged.
func WithDimensions(url string, width, height int) string {
	if url == "" || width <= 0 || height <= 0 {
		return url
	}
	base := sizeSuffixRegex.ReplaceAllString(url, "")
	return fmt.Sprintf("%s=w%d-h%d", base, width, height)
}
