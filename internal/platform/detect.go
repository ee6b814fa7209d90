package platform

import (
	"regexp"
	"strings"
)

// Unknown is reported for any field the detector cannot determine.
const Unknown = "Unknown"

var (
	mozillaPrefixPattern = regexp.MustCompile(`^mozilla/\d\.\d\W`)
	browserPattern       = regexp.MustCompile(`(\w+)/(\d+\.\d+(?:\.\d+)?(?:\.\d+)?)`)
	enginePattern        = regexp.MustCompile(`^(ver|cri|gec)`)
	safariVersionPattern = regexp.MustCompile(`version/(\d+(\.\d+)*)`)
	edgeVersionPattern   = regexp.MustCompile(`edg/(\d+\.\d+)`)
)

type osPattern struct {
	name    string
	pattern *regexp.Regexp
}

// Mobile patterns are checked first; "macintosh" appears in both tables because
// iPads report a desktop Safari user agent and are only told apart by touch support.
var mobilePatterns = []osPattern{
	{name: "iphone", pattern: regexp.MustCompile(`iphone`)},
	{name: "ipad", pattern: regexp.MustCompile(`ipad|macintosh`)},
	{name: "android", pattern: regexp.MustCompile(`android`)},
}

var desktopPatterns = []osPattern{
	{name: "windows", pattern: regexp.MustCompile(`win`)},
	{name: "mac", pattern: regexp.MustCompile(`macintosh`)},
	{name: "linux", pattern: regexp.MustCompile(`linux`)},
}

var brandList = []string{"chrome", "opera", "safari", "edge", "firefox"}

// ClientInfo is the detector's best guess about a visitor's environment.
type ClientInfo struct {
	OS      string
	Browser string
	Version string
}

// Brand is a single entry of the structured client hints brand list.
type Brand struct {
	Brand   string
	Version string
}

// ClientHints carries structured user agent data where the client provides it.
type ClientHints struct {
	Brands   []Brand
	Mobile   bool
	Platform string
}

// DetectClient classifies a client from its user agent string, falling back to
// structured hints when no user agent is available.
func DetectClient(userAgent string, hints *ClientHints, maxTouchPoints int) ClientInfo {
	if userAgent != "" {
		return Detect(userAgent, maxTouchPoints)
	}
	if hints != nil {
		return DetectFromHints(*hints)
	}
	return ClientInfo{OS: Unknown, Browser: Unknown, Version: Unknown}
}

// Detect parses a user agent string. maxTouchPoints disambiguates touch devices
// from desktops that share a user agent token.
func Detect(userAgent string, maxTouchPoints int) ClientInfo {
	ua := mozillaPrefixPattern.ReplaceAllString(strings.ToLower(userAgent), "")

	info := ClientInfo{OS: detectOS(ua, maxTouchPoints), Browser: Unknown, Version: Unknown}

	matches := browserPattern.FindAllString(ua, -1)
	if len(matches) > 0 {
		offset := 0
		if len(matches) > 2 && !enginePattern.MatchString(matches[1]) {
			offset = 1
		}
		name, version, _ := strings.Cut(matches[len(matches)-1-offset], "/")
		info.Browser = name
		info.Version = version
	}

	if m := safariVersionPattern.FindStringSubmatch(ua); m != nil {
		info.Version = m[1]
	}

	if strings.Contains(ua, "edg/") {
		info.Browser = "edge"
		info.Version = Unknown
		if m := edgeVersionPattern.FindStringSubmatch(ua); m != nil {
			info.Version = m[1]
		}
	}

	return info
}

func detectOS(ua string, maxTouchPoints int) string {
	if maxTouchPoints >= 1 {
		for _, p := range mobilePatterns {
			if p.pattern.MatchString(ua) {
				return p.name
			}
		}
	}
	for _, p := range desktopPatterns {
		if p.pattern.MatchString(ua) {
			return p.name
		}
	}
	return Unknown
}

// DetectFromHints classifies a client from structured client hints.
func DetectFromHints(hints ClientHints) ClientInfo {
	info := ClientInfo{
		OS:      strings.ToLower(hints.Platform),
		Browser: Unknown,
		Version: Unknown,
	}
	if info.OS == "" {
		info.OS = Unknown
	}

	for _, b := range hints.Brands {
		entry := strings.ToLower(b.Brand)
		for _, brand := range brandList {
			if strings.Contains(entry, brand) {
				info.Browser = brand
				info.Version = b.Version
				return info
			}
		}
	}
	return info
}

// DefaultDownloadPlatform returns the platform key whose downloads should be
// offered first for a detected OS, or "" when no binary download applies.
func DefaultDownloadPlatform(os string) string {
	switch strings.ToLower(os) {
	case "mac", "macos":
		return Key("darwin", "arm64")
	case "windows":
		return Key("windows", "amd64")
	case "linux":
		return Key("linux", "amd64")
	default:
		return ""
	}
}
