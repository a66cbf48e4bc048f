package main

import (
	"fmt"
	"os"

	"github.com/dixieflatline76/photoframe/pkg/googlephotos"
	"github.com/dixieflatline76/photoframe/pkg/render"
	"github.com/dixieflatline76/photoframe/util/log"
	"github.com/spf13/cobra"
)

var (
	outFlag string
	fitFlag bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Pick a random photo from the album and save it as one frame",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&outFlag, "out", "o", "frame.jpg", "Output file (.jpg or .png)")
	generateCmd.Flags().BoolVar(&fitFlag, "fit", true, "Crop and scale to the exact panel size")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	contentType, err := render.ContentTypeForFile(outFlag)
	if err != nil {
		return err
	}
	if _, err := requireAlbumURL(); err != nil {
		return err
	}

	plugin, err := newPlugin(googlephotos.PluginName)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	img, err := plugin.GenerateImage(ctx, cfg.Settings(), cfg.Device)
	if err != nil {
		log.Printf("Generate failed: %v", err)
		return errNoImage
	}

	if fitFlag {
		width, height := targetSize()
		if img, err = render.NewFitter().Fit(ctx, img, width, height); err != nil {
			return fmt.Errorf("fitting image: %w", err)
		}
	}

	data, err := render.Encode(ctx, img, contentType)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFlag, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outFlag, err)
	}

	b := img.Bounds()
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%dx%d)\n", outFlag, b.Dx(), b.Dy())
	return nil
}
