package releases

import (
	"errors"
	"strings"

	"github.com/google/go-github/v57/github"

	"github.com/newstack-cloud/bluelink-docs/internal/config"
)

// Errors reported when the rolling installer cannot be resolved. Neither is fatal
// to a run; the document records no installer instead.
var (
	ErrInstallerReleaseNotFound = errors.New("installer release not found")
	ErrInstallerAssetNotFound   = errors.New("installer asset not found in installer release")
)

// ResolveWindowsInstaller finds the installer on the non-draft release tagged
// exactly cfg.Tag.
func ResolveWindowsInstaller(all []*github.RepositoryRelease, cfg config.InstallerConfig) (*WindowsInstaller, error) {
	var release *github.RepositoryRelease
	for _, r := range all {
		if r != nil && r.GetTagName() == cfg.Tag && !r.GetDraft() {
			release = r
			break
		}
	}
	if release == nil {
		return nil, ErrInstallerReleaseNotFound
	}

	installer := findAsset(release.Assets, func(name string) bool {
		return strings.HasSuffix(name, cfg.Extension)
	})
	if installer == nil {
		return nil, ErrInstallerAssetNotFound
	}

	var checksum *github.ReleaseAsset
	if cfg.ChecksumExtension != "" {
		checksum = findAsset(release.Assets, func(name string) bool {
			return strings.HasSuffix(name, cfg.ChecksumExtension)
		})
	}

	return &WindowsInstaller{
		URL:         installer.GetBrowserDownloadURL(),
		Filename:    installer.GetName(),
		Size:        int64(installer.GetSize()),
		ChecksumURL: downloadURL(checksum),
		ReleaseURL:  release.GetHTMLURL(),
		PublishedAt: formatTimestamp(release.GetPublishedAt()),
	}, nil
}

// findAsset returns the first asset whose name satisfies match.
func findAsset(assets []*github.ReleaseAsset, match func(name string) bool) *github.ReleaseAsset {
	for _, a := range assets {
		if a != nil && match(a.GetName()) {
			return a
		}
	}
	return nil
}

// findAssetByName returns the asset with exactly the given name.
func findAssetByName(assets []*github.ReleaseAsset, name string) *github.ReleaseAsset {
	if name == "" {
		return nil
	}
	return findAsset(assets, func(n string) bool { return n == name })
}

// downloadURL returns the asset's browser download URL, or nil when the asset is
// missing or has no URL.
func downloadURL(asset *github.ReleaseAsset) *string {
	if asset == nil || asset.GetBrowserDownloadURL() == "" {
		return nil
	}
	u := asset.GetBrowserDownloadURL()
	return &u
}
