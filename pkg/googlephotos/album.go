package googlephotos

import (
	"context"

	"github.com/dixieflatline76/photoframe/pkg/relaxed"
	"github.com/dixieflatline76/photoframe/util"
	"github.com/dixieflatline76/photoframe/util/log"
)

// Album is one snapshot of a shared album. Nothing is kept between fetches.
type Album struct {
	URL      string
	Title    string
	CoverURL string
	Records  []ImageRecord
	Skipped  int // entries dropped because they did not validate
}

// ParseDataBlock parses a payload found by ExtractDataBlock.
func ParseDataBlock(block string) (relaxed.Value, error) {
	v, err := relaxed.Parse(block)
	if err != nil {
		return relaxed.Value{}, &ParseError{Excerpt: util.Excerpt(block, excerptLen), Err: err}
	}
	return v, nil
}

// ParseAlbumPage runs the three extraction phases over an album page.
func ParseAlbumPage(html string) ([]ImageRecord, int, error) {
	block, err := ExtractDataBlock(html)
	if err != nil {
		return nil, 0, &PipelineError{Stage: StageExtract, Err: err}
	}
	tree, err := ParseDataBlock(block)
	if err != nil {
		return nil, 0, &PipelineError{Stage: StageParse, Err: err}
	}
	records, skipped, err := ExtractRecords(tree)
	if err != nil {
		return nil, skipped, &PipelineError{Stage: StageRecords, Err: err}
	}
	return records, skipped, nil
}

// FetchAlbum downloads albumURL and extracts its image records.
func (p *Provider) FetchAlbum(ctx context.Context, albumURL string) (*Album, error) {
	html, err := p.fetcher.FetchText(ctx, albumURL)
	if err != nil {
		perr := &PipelineError{Stage: StageFetch, Err: err}
		logStageFailure(ctx, albumURL, perr)
		return nil, perr
	}

	records, skipped, err := ParseAlbumPage(html)
	if err != nil {
		logStageFailure(ctx, albumURL, err)
		return nil, err
	}
	if skipped > 0 {
		log.Debugf("[%s] Skipped %d malformed entries in %s", requestID(ctx), skipped, albumURL)
	}

	meta := ParsePageMeta(html)
	return &Album{
		URL:      albumURL,
		Title:    meta.Title,
		CoverURL: meta.CoverURL,
		Records:  records,
		Skipped:  skipped,
	}, nil
}

func logStageFailure(ctx context.Context, albumURL string, err error) {
	stage := Stage("unknown")
	if pe, ok := err.(*PipelineError); ok {
		stage = pe.Stage
	}
	log.Printf("[%s] Album %s: %s stage failed: %s", requestID(ctx), albumURL, stage, util.Excerpt(err.Error(), 300))
}
