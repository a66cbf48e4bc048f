package googlephotos

import (
	"github.com/dixieflatline76/photoframe/pkg/relaxed"
)

// ImageRecord describes one image of a shared album.
type ImageRecord struct {
	UID             string // opaque id, unique within one snapshot
	URL             string // base URL, possibly carrying a size suffix
	Width           int
	Height          int
	ImageUpdateDate int64 // as reported by the page, unit unspecified
	AlbumAddDate    int64
}

// ExtractRecords walks the parsed payload and returns every entry that
// validates, in source order, along with how many entries were skipped.
// It fails with ErrNoValidEntries when the payload shape is wrong or when
// nothing validated.
func ExtractRecords(root relaxed.Value) ([]ImageRecord, int, error) {
	entries, ok := entriesList(root)
	if !ok {
		return nil, 0, ErrNoValidEntries
	}

	records := make([]ImageRecord, 0, entries.Len())
	skipped := 0
	for _, e := range entries {
		rec, ok := decodeEntry(e)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, skipped, ErrNoValidEntries
	}
	return records, skipped, nil
}
