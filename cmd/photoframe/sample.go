package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"

	"github.com/dixieflatline76/photoframe/pkg/googlephotos"
	"github.com/dixieflatline76/photoframe/pkg/render"
	"github.com/dixieflatline76/photoframe/util/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentDownloads bounds how many images sample fetches at once.
const maxConcurrentDownloads = 4

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

var (
	countFlag int
	dirFlag   string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Save several distinct random frames from the album",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().IntVarP(&countFlag, "count", "n", 5, "Number of frames")
	sampleCmd.Flags().StringVarP(&dirFlag, "dir", "d", ".", "Output directory")
	sampleCmd.Flags().BoolVar(&fitFlag, "fit", true, "Crop and scale to the exact panel size")
}

func runSample(cmd *cobra.Command, args []string) error {
	if countFlag <= 0 {
		return fmt.Errorf("--count must be positive")
	}
	albumURL, err := requireAlbumURL()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dirFlag, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dirFlag, err)
	}

	provider := newProvider()
	album, err := provider.FetchAlbum(cmd.Context(), albumURL)
	if err != nil {
		log.Printf("Sample failed: %v", err)
		return errNoImage
	}

	chosen := pickDistinct(album.Records, countFlag)
	width, height := targetSize()
	fitter := render.NewFitter()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxConcurrentDownloads)
	written := make([]string, len(chosen))
	for i, rec := range chosen {
		g.Go(func() error {
			img, err := provider.LoadImage(ctx, rec, width, height)
			if err != nil {
				return err
			}
			if fitFlag {
				if img, err = fitter.Fit(ctx, img, width, height); err != nil {
					return fmt.Errorf("fitting %s: %w", rec.UID, err)
				}
			}
			data, err := render.Encode(ctx, img, render.ContentTypeJPEG)
			if err != nil {
				return err
			}
			name := filepath.Join(dirFlag, sampleFileName(rec))
			if err := os.WriteFile(name, data, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			written[i] = name
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Printf("Sample failed: %v", err)
		return errNoImage
	}
	for _, name := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", name)
	}
	return nil
}

// pickDistinct returns up to n records in random order without repeats.
func pickDistinct(records []googlephotos.ImageRecord, n int) []googlephotos.ImageRecord {
	if n > len(records) {
		n = len(records)
	}
	out := make([]googlephotos.ImageRecord, 0, n)
	for _, i := range rand.Perm(len(records))[:n] {
		out = append(out, records[i])
	}
	return out
}

func sampleFileName(rec googlephotos.ImageRecord) string {
	name := unsafeFileChars.ReplaceAllString(rec.UID, "_")
	if name == "" {
		name = "image"
	}
	return name + ".jpg"
}
