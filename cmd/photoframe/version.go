package main

import (
	"fmt"

	"github.com/dixieflatline76/photoframe/config"
	"github.com/dixieflatline76/photoframe/util"
	"github.com/spf13/cobra"
)

var checkFlag bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, optionally checking for a newer release",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().BoolVar(&checkFlag, "check", false, "Check GitHub for a newer release")
}

func runVersion(cmd *cobra.Command, args []string) error {
	version := config.AppVersion
	if version == "" {
		version = "dev"
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", config.AppName, version)

	if !checkFlag {
		return nil
	}
	result, err := util.CheckForUpdates(cmd.Context(), nil)
	if err != nil {
		return err
	}
	if result.UpdateAvailable {
		fmt.Fprintf(out, "Update available: %s (%s)\n", result.LatestVersion, result.ReleaseURL)
	} else {
		fmt.Fprintln(out, "You are running the latest version.")
	}
	return nil
}
