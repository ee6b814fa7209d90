package releases

import (
	"regexp"

	"github.com/newstack-cloud/bluelink-docs/internal/platform"
)

// Archive names follow {component}_{version}_{os}_{arch}.{ext},
// e.g. bluelink-manager_1.0.0_darwin_amd64.tar.gz.
var assetPattern = regexp.MustCompile(`^(.+?)_(\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?)_([a-z]+)_([a-z0-9]+)\.(tar\.gz|zip)$`)

// ParsedAsset is the information encoded in a release archive filename.
type ParsedAsset struct {
	Component string
	Version   string
	OS        string
	Arch      string
	Extension string
	Platform  string
}

// ParseAssetFilename classifies a release asset by its filename.
// ok is false for files that are not platform archives (checksums, SBOMs, notes).
func ParseAssetFilename(filename string) (parsed ParsedAsset, ok bool) {
	m := assetPattern.FindStringSubmatch(filename)
	if m == nil {
		return ParsedAsset{}, false
	}
	return ParsedAsset{
		Component: m[1],
		Version:   m[2],
		OS:        m[3],
		Arch:      m[4],
		Extension: m[5],
		Platform:  platform.Key(m[3], m[4]),
	}, true
}
