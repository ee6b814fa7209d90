// Package version provides release tag parsing and semantic version validation
package version

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// OpValidateVersion names the operation in ErrVersionParseFailed
const OpValidateVersion = "validate_version"

// ErrInvalidVersion is wrapped by validation failures
var ErrInvalidVersion = errors.New("invalid version format")

// ErrVersionParseFailed represents a version parsing error
type ErrVersionParseFailed struct {
	Version string
	Op      string
	Cause   error
}

func (e ErrVersionParseFailed) Error() string {
	return fmt.Sprintf("failed to parse version %s in operation %s: %v", e.Version, e.Op, e.Cause)
}

func (e ErrVersionParseFailed) Unwrap() error {
	return e.Cause
}

func (e ErrVersionParseFailed) Is(target error) bool {
	var parseErr ErrVersionParseFailed
	return errors.As(target, &parseErr)
}

// ExtractVersion returns the part of tag that follows the first matching prefix.
// Prefixes are tried in order; ok is false when none match.
func ExtractVersion(tag string, prefixes []string) (version string, ok bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(tag, prefix) {
			return tag[len(prefix):], true
		}
	}
	return "", false
}

// ValidateVersion validates that a version string is strict MAJOR.MINOR.PATCH semver,
// optionally with a pre-release suffix. A leading "v" is rejected.
func ValidateVersion(version string) error {
	if _, err := semver.StrictNewVersion(version); err != nil {
		return ErrVersionParseFailed{
			Version: version,
			Op:      OpValidateVersion,
			Cause:   fmt.Errorf("%w: %v", ErrInvalidVersion, err),
		}
	}
	return nil
}

// Latest returns the highest semver in versions, ignoring entries that do not parse.
// Returns "" when no entry parses.
func Latest(versions []string) string {
	sorted := SortDescending(versions)
	if len(sorted) == 0 {
		return ""
	}
	return sorted[0]
}

// SortDescending returns the valid versions ordered newest first.
// Invalid versions are dropped.
func SortDescending(versions []string) []string {
	type parsed struct {
		raw string
		ver *semver.Version
	}

	valid := make([]parsed, 0, len(versions))
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			valid = append(valid, parsed{raw: v, ver: sv})
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].ver.GreaterThan(valid[j].ver)
	})

	result := make([]string, 0, len(valid))
	for _, p := range valid {
		result = append(result, p.raw)
	}
	return result
}
