package util

import (
	"context"
	"fmt"
	"strings"

	"github.com/dixieflatline76/photoframe/config"
	"github.com/google/go-github/v63/github"
	"golang.org/x/mod/semver"
)

const (
	githubOwner = "dixieflatline76"
	githubRepo  = "photoframe"
)

// CheckForUpdatesResult holds the outcome of the update check.
type CheckForUpdatesResult struct {
	UpdateAvailable bool
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	ReleaseNotes    string
}

// CheckForUpdates asks GitHub for the latest stable release and compares it
// with config.AppVersion. A nil client uses github.NewClient(nil).
func CheckForUpdates(ctx context.Context, client *github.Client) (*CheckForUpdatesResult, error) {
	if client == nil {
		client = github.NewClient(nil)
	}

	release, _, err := client.Repositories.GetLatestRelease(ctx, githubOwner, githubRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest GitHub release: %w", err)
	}

	current := canonicalVersion(config.AppVersion)
	latest := canonicalVersion(release.GetTagName())

	return &CheckForUpdatesResult{
		UpdateAvailable: isNewer(latest, current),
		CurrentVersion:  current,
		LatestVersion:   latest,
		ReleaseURL:      release.GetHTMLURL(),
		ReleaseNotes:    release.GetBody(),
	}, nil
}

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}

// isNewer reports whether latest is a strictly higher semantic version.
func isNewer(latest, current string) bool {
	return semver.Compare(latest, current) > 0
}
