package releases

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/go-github/v57/github"
)

const downloadBase = "https://github.com/newstack-cloud/bluelink/releases/download/"

func newAsset(tag, name string, size int) *github.ReleaseAsset {
	return &github.ReleaseAsset{
		Name:               github.String(name),
		Size:               github.Int(size),
		BrowserDownloadURL: github.String(downloadBase + tag + "/" + name),
	}
}

func newRelease(tag string, published time.Time, draft bool, assetNames ...string) *github.RepositoryRelease {
	r := &github.RepositoryRelease{
		TagName: github.String(tag),
		Draft:   github.Bool(draft),
		HTMLURL: github.String("https://github.com/newstack-cloud/bluelink/releases/tag/" + tag),
	}
	if !published.IsZero() {
		r.PublishedAt = &github.Timestamp{Time: published}
	}
	for i, name := range assetNames {
		r.Assets = append(r.Assets, newAsset(tag, name, 1000*(i+1)))
	}
	return r
}

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 12, 0, 0, 0, time.UTC)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLister struct {
	releases []*github.RepositoryRelease
	err      error
	calls    int
}

func (f *fakeLister) ListReleases(context.Context) ([]*github.RepositoryRelease, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.releases, nil
}
