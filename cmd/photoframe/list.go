package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dixieflatline76/photoframe/util/log"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the photos of the album",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	albumURL, err := requireAlbumURL()
	if err != nil {
		return err
	}

	album, err := newProvider().FetchAlbum(cmd.Context(), albumURL)
	if err != nil {
		log.Printf("List failed: %v", err)
		return fmt.Errorf("could not read album")
	}

	out := cmd.OutOrStdout()
	if album.Title != "" {
		fmt.Fprintf(out, "%s\n", album.Title)
	}
	fmt.Fprintf(out, "%d photos", len(album.Records))
	if album.Skipped > 0 {
		fmt.Fprintf(out, " (%d unreadable entries skipped)", album.Skipped)
	}
	fmt.Fprintln(out)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tSIZE\tADDED\tURL")
	for _, rec := range album.Records {
		fmt.Fprintf(tw, "%s\t%dx%d\t%d\t%s\n", rec.UID, rec.Width, rec.Height, rec.AlbumAddDate, rec.URL)
	}
	return tw.Flush()
}
