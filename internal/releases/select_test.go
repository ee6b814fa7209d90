package releases

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/newstack-cloud/bluelink-docs/internal/config"
)

var cliComponent = config.Component{
	Key:         "cli",
	DisplayName: "Bluelink CLI",
	TagPrefixes: []string{"apps/cli/v", "tools/cli/v"},
}

func tags(selected []SelectedRelease) []string {
	out := make([]string, 0, len(selected))
	for _, s := range selected {
		out = append(out, s.Release.GetTagName())
	}
	return out
}

func TestSelectReleases(t *testing.T) {
	all := []*github.RepositoryRelease{
		newRelease("apps/cli/v1.0.0", day(1), false),
		newRelease("apps/deploy-engine/v0.5.0", day(9), false),
		newRelease("apps/cli/v1.2.0", day(5), false),
		newRelease("tools/cli/v0.9.0", day(0), false),
		newRelease("apps/cli/v1.3.0", day(8), true),
		newRelease("apps/cli/v1.1.0", day(3), false),
		nil,
	}

	selected := SelectReleases(all, cliComponent, 3)
	assert.Equal(t, []string{"apps/cli/v1.2.0", "apps/cli/v1.1.0", "apps/cli/v1.0.0"}, tags(selected))
	assert.Equal(t, "1.2.0", selected[0].Version)
}

func TestSelectReleases_SecondPrefix(t *testing.T) {
	all := []*github.RepositoryRelease{
		newRelease("tools/cli/v0.9.0", day(2), false),
		newRelease("apps/cli/v1.0.0", day(1), false),
	}

	selected := SelectReleases(all, cliComponent, 3)
	require.Len(t, selected, 2)
	assert.Equal(t, "0.9.0", selected[0].Version)
	assert.Equal(t, "1.0.0", selected[1].Version)
}

func TestSelectReleases_NoMatches(t *testing.T) {
	all := []*github.RepositoryRelease{
		newRelease("apps/deploy-engine/v0.5.0", day(1), false),
		newRelease("windows-installer-latest", day(2), false),
	}
	assert.Empty(t, SelectReleases(all, cliComponent, 3))
}

func TestSelectReleases_TiesKeepListingOrder(t *testing.T) {
	all := []*github.RepositoryRelease{
		newRelease("apps/cli/v1.0.1", day(4), false),
		newRelease("apps/cli/v1.0.0", day(4), false),
		newRelease("apps/cli/v0.9.0", day(4), false),
		newRelease("apps/cli/v0.8.0", day(4), false),
	}

	selected := SelectReleases(all, cliComponent, 3)
	assert.Equal(t, []string{"apps/cli/v1.0.1", "apps/cli/v1.0.0", "apps/cli/v0.9.0"}, tags(selected))
}

func TestSelectReleases_UnpublishedSortLast(t *testing.T) {
	all := []*github.RepositoryRelease{
		newRelease("apps/cli/v2.0.0", time.Time{}, false),
		newRelease("apps/cli/v1.0.0", day(1), false),
	}

	selected := SelectReleases(all, cliComponent, 3)
	assert.Equal(t, []string{"apps/cli/v1.0.0", "apps/cli/v2.0.0"}, tags(selected))
}

func TestSelectReleases_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		var all []*github.RepositoryRelease
		for i := 0; i < n; i++ {
			prefix := rapid.SampledFrom([]string{"apps/cli/v", "tools/cli/v", "apps/deploy-engine/v", "misc/"}).Draw(t, "prefix")
			tag := fmt.Sprintf("%s%d.0.%d", prefix, i, rapid.IntRange(0, 9).Draw(t, "patch"))
			published := day(1).Add(time.Duration(rapid.IntRange(0, 72).Draw(t, "hours")) * time.Hour)
			all = append(all, newRelease(tag, published, rapid.Bool().Draw(t, "draft")))
		}
		limit := rapid.IntRange(0, 5).Draw(t, "limit")

		selected := SelectReleases(all, cliComponent, limit)

		if len(selected) > limit {
			t.Fatalf("selected %d releases, limit %d", len(selected), limit)
		}
		for i, s := range selected {
			if s.Release.GetDraft() {
				t.Fatalf("draft release %s selected", s.Release.GetTagName())
			}
			if s.Release.GetTagName() != "apps/cli/v"+s.Version && s.Release.GetTagName() != "tools/cli/v"+s.Version {
				t.Fatalf("version %q does not follow a prefix of %q", s.Version, s.Release.GetTagName())
			}
			if i > 0 && publishedAt(s.Release).After(publishedAt(selected[i-1].Release)) {
				t.Fatalf("release %d is newer than release %d", i, i-1)
			}
		}
	})
}
