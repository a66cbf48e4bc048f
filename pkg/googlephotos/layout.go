package googlephotos

import (
	"math"

	"github.com/dixieflatline76/photoframe/pkg/relaxed"
)

// Positions inside the gallery payload. None of this is documented by the
// service; it was read off live pages and is the only place that knows it.
//
//	{ data: [ <ignored>, [ entry, entry, ... ], ... ] }
//	entry:  [ uid, [url, width, height, ...], updated, ?, ?, added, ... ]
//
// Entry positions 3 and 4 have no known meaning and are ignored.
const (
	rootDataKey  = "data"
	entriesIndex = 1

	entryMinLen       = 6
	entryUIDIndex     = 0
	entryDetailIndex  = 1
	entryUpdatedIndex = 2
	entryAddedIndex   = 5

	detailMinLen      = 3
	detailURLIndex    = 0
	detailWidthIndex  = 1
	detailHeightIndex = 2
)

// entriesList locates the list of image entries under the root value.
func entriesList(root relaxed.Value) (relaxed.List, bool) {
	m, ok := root.AsMap()
	if !ok {
		return nil, false
	}
	dataVal, ok := m.Get(rootDataKey)
	if !ok {
		return nil, false
	}
	data, ok := dataVal.AsList()
	if !ok || data.Len() == 0 {
		return nil, false
	}
	entriesVal, ok := data.At(entriesIndex)
	if !ok {
		return nil, false
	}
	return entriesVal.AsList()
}

// decodeEntry validates one entry. It reports false on any shape mismatch.
func decodeEntry(v relaxed.Value) (ImageRecord, bool) {
	entry, ok := v.AsList()
	if !ok || entry.Len() < entryMinLen {
		return ImageRecord{}, false
	}

	uid, ok := stringAt(entry, entryUIDIndex)
	if !ok {
		return ImageRecord{}, false
	}

	detailVal, _ := entry.At(entryDetailIndex)
	detail, ok := detailVal.AsList()
	if !ok || detail.Len() < detailMinLen {
		return ImageRecord{}, false
	}
	url, ok := stringAt(detail, detailURLIndex)
	if !ok {
		return ImageRecord{}, false
	}
	width, ok := intAt(detail, detailWidthIndex)
	if !ok || width <= 0 {
		return ImageRecord{}, false
	}
	height, ok := intAt(detail, detailHeightIndex)
	if !ok || height <= 0 {
		return ImageRecord{}, false
	}

	updated, ok := intAt(entry, entryUpdatedIndex)
	if !ok {
		return ImageRecord{}, false
	}
	added, ok := intAt(entry, entryAddedIndex)
	if !ok {
		return ImageRecord{}, false
	}

	return ImageRecord{
		UID:             uid,
		URL:             url,
		Width:           int(width),
		Height:          int(height),
		ImageUpdateDate: updated,
		AlbumAddDate:    added,
	}, true
}

func stringAt(l relaxed.List, i int) (string, bool) {
	v, ok := l.At(i)
	if !ok {
		return "", false
	}
	return v.AsString()
}

// intAt truncates the number at i toward zero. NaN, infinities and values
// outside the int64 range are rejected.
func intAt(l relaxed.List, i int) (int64, bool) {
	v, ok := l.At(i)
	if !ok {
		return 0, false
	}
	f, ok := v.AsNumber()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
