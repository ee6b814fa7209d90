package releases

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"

	"github.com/newstack-cloud/bluelink-docs/internal/config"
	"github.com/newstack-cloud/bluelink-docs/internal/version"
)

// GeneratedAtLayout is the layout of Document.GeneratedAt, always in UTC.
const GeneratedAtLayout = "2006-01-02T15:04:05.000Z"

// ReleaseLister lists every release of the source repository.
type ReleaseLister interface {
	ListReleases(ctx context.Context) ([]*github.RepositoryRelease, error)
}

// Aggregator builds the release document from a single repository listing.
type Aggregator struct {
	lister   ReleaseLister
	cfg      *config.Config
	stdout   *slog.Logger
	stderr   *slog.Logger
	progress io.Writer
	now      func() time.Time
}

// NewAggregator creates an aggregator for the components in cfg.
func NewAggregator(lister ReleaseLister, cfg *config.Config, stdout, stderr *slog.Logger) (*Aggregator, error) {
	if lister == nil {
		return nil, fmt.Errorf("release lister is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if stdout == nil {
		stdout = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if stderr == nil {
		stderr = stdout
	}
	return &Aggregator{
		lister:   lister,
		cfg:      cfg,
		stdout:   stdout,
		stderr:   stderr,
		progress: io.Discard,
		now:      time.Now,
	}, nil
}

// WithProgress sets where human-readable progress lines are printed.
func (a *Aggregator) WithProgress(w io.Writer) *Aggregator {
	if w != nil {
		a.progress = w
	}
	return a
}

// WithClock replaces the clock used for generatedAt.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	if now != nil {
		a.now = now
	}
	return a
}

// Build fetches the release list once and assembles the document.
// A listing failure is returned as is and no document is produced.
func (a *Aggregator) Build(ctx context.Context) (*Document, error) {
	fmt.Fprintln(a.progress, "Fetching releases from GitHub...")

	start := time.Now()
	all, err := a.lister.ListReleases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch releases: %w", err)
	}
	fmt.Fprintf(a.progress, "Fetched %d total releases\n", len(all))
	a.stdout.Info("fetched releases",
		"count", len(all),
		"duration_ms", time.Since(start).Milliseconds())

	doc := &Document{
		GeneratedAt:      a.now().UTC().Format(GeneratedAtLayout),
		WindowsInstaller: a.resolveInstaller(all),
	}

	limit := a.cfg.MaxReleases
	if limit <= 0 {
		limit = MaxReleasesPerComponent
	}

	for _, component := range a.cfg.Components {
		fmt.Fprintf(a.progress, "Processing %s...\n", component.Name())

		releases := BuildComponentReleases(all, component, a.cfg, limit, a.stdout)
		fmt.Fprintf(a.progress, "  Found %d releases\n", len(releases))

		versions := make([]string, 0, len(releases))
		for _, r := range releases {
			versions = append(versions, r.Version)
		}
		a.stdout.Info("processed component",
			"component", component.Key,
			"releases", len(releases),
			"latest", version.Latest(versions))

		doc.Components = append(doc.Components, ComponentReleases{Key: component.Key, Releases: releases})
	}

	return doc, nil
}

// Run builds the document and writes it to outputPath. With dryRun set the
// document is built but the file is left untouched.
func (a *Aggregator) Run(ctx context.Context, outputPath string, dryRun bool) (*Document, error) {
	doc, err := a.Build(ctx)
	if err != nil {
		return nil, err
	}

	if dryRun {
		a.stdout.Info("dry run, skipping write", "path", outputPath)
		return doc, nil
	}

	if err := WriteDocument(outputPath, doc); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.progress, "\nWrote releases data to %s\n", outputPath)
	a.stdout.Info("wrote release document", "path", outputPath, "components", len(doc.Components))
	return doc, nil
}

func (a *Aggregator) resolveInstaller(all []*github.RepositoryRelease) *WindowsInstaller {
	installer, err := ResolveWindowsInstaller(all, a.cfg.Installer)
	switch {
	case errors.Is(err, ErrInstallerReleaseNotFound):
		fmt.Fprintf(a.progress, "Warning: %s release not found\n", a.cfg.Installer.Tag)
		a.stderr.Warn("installer release not found", "tag", a.cfg.Installer.Tag)
		return nil
	case errors.Is(err, ErrInstallerAssetNotFound):
		fmt.Fprintf(a.progress, "Warning: installer asset not found in %s release\n", a.cfg.Installer.Tag)
		a.stderr.Warn("installer asset not found",
			"tag", a.cfg.Installer.Tag,
			"extension", a.cfg.Installer.Extension)
		return nil
	case err != nil:
		a.stderr.Warn("failed to resolve installer", "error", err)
		return nil
	}
	return installer
}

// BuildComponentReleases selects the newest releases of a component and maps
// each to its document record.
func BuildComponentReleases(
	all []*github.RepositoryRelease,
	component config.Component,
	cfg *config.Config,
	limit int,
	logger *slog.Logger,
) []ComponentRelease {
	selected := SelectReleases(all, component, limit)
	out := make([]ComponentRelease, 0, len(selected))
	for _, s := range selected {
		if err := version.ValidateVersion(s.Version); err != nil && logger != nil {
			logger.Debug("release tag has a non-semver version",
				"component", component.Key,
				"tag", s.Release.GetTagName(),
				"version", s.Version)
		}
		out = append(out, buildRelease(s, cfg, logger))
	}
	return out
}

func buildRelease(s SelectedRelease, cfg *config.Config, logger *slog.Logger) ComponentRelease {
	release := s.Release
	companions := cfg.Companions

	record := ComponentRelease{
		Version:               s.Version,
		Tag:                   release.GetTagName(),
		PublishedAt:           formatTimestamp(release.GetPublishedAt()),
		ReleaseURL:            release.GetHTMLURL(),
		ChecksumsURL:          downloadURL(findAssetByName(release.Assets, companions.ChecksumsFile)),
		ChecksumsSignatureURL: downloadURL(findAssetByName(release.Assets, companions.SignatureFile)),
		Assets:                make(map[string]PlatformAsset),
	}

	for _, asset := range release.Assets {
		if asset == nil {
			continue
		}
		name := asset.GetName()
		parsed, ok := ParseAssetFilename(name)
		if !ok {
			if logger != nil && !isCompanion(name, companions) {
				logger.Debug("skipping unrecognized asset", "tag", record.Tag, "asset", name)
			}
			continue
		}

		var sbom *string
		if companions.SBOMSuffix != "" {
			sbom = downloadURL(findAssetByName(release.Assets, name+companions.SBOMSuffix))
		}

		record.Assets[parsed.Platform] = PlatformAsset{
			URL:         asset.GetBrowserDownloadURL(),
			Filename:    name,
			Size:        int64(asset.GetSize()),
			DisplayName: cfg.PlatformDisplayName(parsed.Platform),
			SBOMURL:     sbom,
		}
	}

	return record
}

func isCompanion(name string, c config.CompanionConfig) bool {
	if name == c.ChecksumsFile || name == c.SignatureFile {
		return true
	}
	return c.SBOMSuffix != "" && strings.HasSuffix(name, c.SBOMSuffix)
}
