// Package platform describes the OS/architecture combinations release binaries are
// published for, and provides a best-effort client platform detector used to pick
// which downloads to show first.
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform represents a target OS/Architecture combination
type Platform struct {
	OS          string // darwin, linux, windows
	Arch        string // amd64, arm64
	FileExt     string // zip, tar.gz
	DisplayName string // Human readable label, e.g. "macOS (Apple Silicon)"
}

// Key returns the composite platform key used to index downloads, e.g. "darwin_arm64".
func (p Platform) Key() string {
	return Key(p.OS, p.Arch)
}

// Key joins an OS and architecture into a platform key.
func Key(os, arch string) string {
	return os + "_" + arch
}

// PredefinedPlatforms returns the supported platforms in display order.
func PredefinedPlatforms() []Platform {
	return []Platform{
		{OS: "darwin", Arch: "arm64", FileExt: "tar.gz", DisplayName: "macOS (Apple Silicon)"},
		{OS: "darwin", Arch: "amd64", FileExt: "tar.gz", DisplayName: "macOS (Intel)"},
		{OS: "linux", Arch: "amd64", FileExt: "tar.gz", DisplayName: "Linux (x64)"},
		{OS: "linux", Arch: "arm64", FileExt: "tar.gz", DisplayName: "Linux (ARM64)"},
		{OS: "windows", Arch: "amd64", FileExt: "zip", DisplayName: "Windows (x64)"},
	}
}

// DisplayOrder returns the platform keys in the order downloads are listed.
func DisplayOrder() []string {
	platforms := PredefinedPlatforms()
	keys := make([]string, 0, len(platforms))
	for _, p := range platforms {
		keys = append(keys, p.Key())
	}
	return keys
}

// FindPlatform finds a platform by its key ("linux_amd64") or OS-Arch form ("linux-amd64").
func FindPlatform(platformStr string) (Platform, error) {
	for _, p := range PredefinedPlatforms() {
		if p.Key() == platformStr {
			return p, nil
		}

		if fmt.Sprintf("%s-%s", p.OS, p.Arch) == platformStr {
			return p, nil
		}
	}

	return Platform{}, fmt.Errorf("unknown platform: %s", platformStr)
}

// DisplayName returns the label for a platform key.
// Unknown keys are returned unchanged so unexpected builds still get a label.
func DisplayName(key string) string {
	if p, err := FindPlatform(key); err == nil {
		return p.DisplayName
	}
	return key
}

// CurrentPlatform returns the platform for the current system
func CurrentPlatform() Platform {
	for _, p := range PredefinedPlatforms() {
		if p.OS == runtime.GOOS && p.Arch == runtime.GOARCH {
			return p
		}
	}

	return buildPlatform(runtime.GOOS, runtime.GOARCH)
}

// buildPlatform constructs a Platform for a combination outside the predefined list
func buildPlatform(os, arch string) Platform {
	fileExt := "tar.gz"
	if os == "windows" {
		fileExt = "zip"
	}

	return Platform{
		OS:          os,
		Arch:        arch,
		FileExt:     fileExt,
		DisplayName: Key(os, arch),
	}
}

// ResolvePlatforms converts platform flags to actual Platform objects.
// No flags or "all" selects every predefined platform.
func ResolvePlatforms(platformFlags []string) ([]Platform, error) {
	allPlatforms := PredefinedPlatforms()

	if len(platformFlags) == 0 {
		return allPlatforms, nil
	}

	for _, flag := range platformFlags {
		if strings.ToLower(flag) == "all" {
			return allPlatforms, nil
		}
	}

	var result []Platform
	for _, flag := range platformFlags {
		if flag == "current" {
			result = append(result, CurrentPlatform())
			continue
		}
		p, err := FindPlatform(flag)
		if err != nil {
			return nil, fmt.Errorf("invalid platform: %s", flag)
		}
		result = append(result, p)
	}

	return result, nil
}
