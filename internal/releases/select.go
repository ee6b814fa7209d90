package releases

import (
	"sort"
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/newstack-cloud/bluelink-docs/internal/config"
	"github.com/newstack-cloud/bluelink-docs/internal/version"
)

// MaxReleasesPerComponent is the number of versions kept per component.
const MaxReleasesPerComponent = 3

// SelectedRelease is a release chosen for a component together with the
// version taken from its tag.
type SelectedRelease struct {
	Release *github.RepositoryRelease
	Version string
}

// SelectReleases returns the most recent non-draft releases whose tag matches one of
// the component's prefixes, newest first, at most limit entries.
// Releases published at the same instant keep their listing order.
func SelectReleases(all []*github.RepositoryRelease, component config.Component, limit int) []SelectedRelease {
	var selected []SelectedRelease
	for _, release := range all {
		if release == nil || release.GetDraft() {
			continue
		}
		v, ok := version.ExtractVersion(release.GetTagName(), component.TagPrefixes)
		if !ok {
			continue
		}
		selected = append(selected, SelectedRelease{Release: release, Version: v})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return publishedAt(selected[i].Release).After(publishedAt(selected[j].Release))
	})

	if limit >= 0 && len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}

// publishedAt returns the publish time, or the zero time for unpublished releases.
func publishedAt(r *github.RepositoryRelease) time.Time {
	return r.GetPublishedAt().Time
}

// formatTimestamp renders a GitHub timestamp the way the API reports it.
func formatTimestamp(ts github.Timestamp) string {
	if ts.IsZero() {
		return ""
	}
	return ts.UTC().Format(time.RFC3339)
}
