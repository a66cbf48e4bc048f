package googlephotos

import (
	"errors"
	"fmt"
)

// ErrNoDataBlock means the album page held no gallery payload. Pages whose
// layout changed end up here.
var ErrNoDataBlock = errors.New("no data block found in album page")

// ErrNoValidEntries means the payload had no entry that validated.
var ErrNoValidEntries = errors.New("no valid image entries in album data")

// ParseError reports a payload that is not a valid relaxed literal.
type ParseError struct {
	Excerpt string // leading part of the offending input
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed album data: %v (input starts %q)", e.Err, e.Excerpt)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ConfigError reports a missing or unusable setting.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required setting %q", e.Key)
}

// ImageLoadError reports a failure to download or decode the chosen image.
type ImageLoadError struct {
	URL string
	Err error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("loading image %s: %v", e.URL, e.Err)
}

func (e *ImageLoadError) Unwrap() error { return e.Err }

// Stage names one step of the album pipeline.
type Stage string

const (
	StageFetch   Stage = "fetch"
	StageExtract Stage = "extract"
	StageParse   Stage = "parse"
	StageRecords Stage = "records"
	StageImage   Stage = "image"
)

// PipelineError wraps the failure of a single stage.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }
