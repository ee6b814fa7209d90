package cli

import (
	"context"

	"github.com/google/go-github/v57/github"

	"github.com/newstack-cloud/bluelink-docs/internal/releases"
)

// countingLister records how many releases the wrapped lister returned so the
// fetch command can report it without the aggregator knowing about metrics.
// The aggregator lists once per run from a single goroutine.
type countingLister struct {
	lister releases.ReleaseLister
	count  int
}

func (l *countingLister) ListReleases(ctx context.Context) ([]*github.RepositoryRelease, error) {
	all, err := l.lister.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	l.count = len(all)
	return all, nil
}

func (l *countingLister) Count() int {
	return l.count
}
