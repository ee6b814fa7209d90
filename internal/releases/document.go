// Package releases turns the raw GitHub release list into the normalized release
// document consumed by the documentation site.
package releases

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// PlatformAsset is a downloadable archive for one platform of a release.
type PlatformAsset struct {
	URL         string  `json:"url"`
	Filename    string  `json:"filename"`
	Size        int64   `json:"size"`
	DisplayName string  `json:"displayName"`
	SBOMURL     *string `json:"sbomUrl"`
}

// ComponentRelease is one published version of a component.
type ComponentRelease struct {
	Version               string                   `json:"version"`
	Tag                   string                   `json:"tag"`
	PublishedAt           string                   `json:"publishedAt"`
	ReleaseURL            string                   `json:"releaseUrl"`
	ChecksumsURL          *string                  `json:"checksumsUrl"`
	ChecksumsSignatureURL *string                  `json:"checksumsSignatureUrl"`
	Assets                map[string]PlatformAsset `json:"assets"`
}

// Clone returns a deep copy of the release.
func (r ComponentRelease) Clone() ComponentRelease {
	out := r
	out.ChecksumsURL = cloneString(r.ChecksumsURL)
	out.ChecksumsSignatureURL = cloneString(r.ChecksumsSignatureURL)
	out.Assets = make(map[string]PlatformAsset, len(r.Assets))
	for key, asset := range r.Assets {
		asset.SBOMURL = cloneString(asset.SBOMURL)
		out.Assets[key] = asset
	}
	return out
}

// WindowsInstaller is the installer published under the rolling installer tag.
type WindowsInstaller struct {
	URL         string  `json:"url"`
	Filename    string  `json:"filename"`
	Size        int64   `json:"size"`
	ChecksumURL *string `json:"checksumUrl"`
	ReleaseURL  string  `json:"releaseUrl"`
	PublishedAt string  `json:"publishedAt"`
}

// Clone returns a deep copy of the installer record.
func (w *WindowsInstaller) Clone() *WindowsInstaller {
	if w == nil {
		return nil
	}
	out := *w
	out.ChecksumURL = cloneString(w.ChecksumURL)
	return &out
}

// ComponentReleases holds the releases of one component, newest first.
type ComponentReleases struct {
	Key      string
	Releases []ComponentRelease
}

// Document is the persisted release document. Component release lists are
// serialized as top-level keys after generatedAt and windowsInstaller, in
// Components order.
type Document struct {
	GeneratedAt      string
	WindowsInstaller *WindowsInstaller
	Components       []ComponentReleases
}

// Releases returns the releases recorded for a component key.
func (d *Document) Releases(key string) ([]ComponentRelease, bool) {
	for _, c := range d.Components {
		if c.Key == key {
			return c.Releases, true
		}
	}
	return nil, false
}

// Keys returns the component keys in document order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Components))
	for _, c := range d.Components {
		keys = append(keys, c.Key)
	}
	return keys
}

const (
	generatedAtKey      = "generatedAt"
	windowsInstallerKey = "windowsInstaller"
)

// MarshalJSON writes the document with stable key order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeField(&buf, generatedAtKey, d.GeneratedAt); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, windowsInstallerKey, d.WindowsInstaller); err != nil {
		return nil, err
	}

	for _, c := range d.Components {
		if c.Key == generatedAtKey || c.Key == windowsInstallerKey {
			return nil, fmt.Errorf("component key %q collides with a document field", c.Key)
		}
		list := c.Releases
		if list == nil {
			list = []ComponentRelease{}
		}
		buf.WriteByte(',')
		if err := writeField(&buf, c.Key, list); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

// UnmarshalJSON reads a document, keeping component keys in file order.
// Top-level values that are not release lists are ignored.
func (d *Document) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("release document must be a JSON object")
	}

	var out Document
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		switch key {
		case generatedAtKey:
			if err := dec.Decode(&out.GeneratedAt); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
		case windowsInstallerKey:
			if err := dec.Decode(&out.WindowsInstaller); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
		default:
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return fmt.Errorf("failed to decode %s: %w", key, err)
			}
			var list []ComponentRelease
			if err := json.Unmarshal(raw, &list); err != nil {
				continue
			}
			if list == nil {
				list = []ComponentRelease{}
			}
			out.Components = append(out.Components, ComponentReleases{Key: key, Releases: list})
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = out
	return nil
}

// Equal reports whether two documents hold the same data.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.GeneratedAt != other.GeneratedAt {
		return false
	}
	if !installerEqual(d.WindowsInstaller, other.WindowsInstaller) {
		return false
	}
	if len(d.Components) != len(other.Components) {
		return false
	}
	for i := range d.Components {
		a, b := d.Components[i], other.Components[i]
		if a.Key != b.Key || len(a.Releases) != len(b.Releases) {
			return false
		}
		for j := range a.Releases {
			if !releaseEqual(a.Releases[j], b.Releases[j]) {
				return false
			}
		}
	}
	return true
}

func installerEqual(a, b *WindowsInstaller) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.URL == b.URL && a.Filename == b.Filename && a.Size == b.Size &&
		stringPtrEqual(a.ChecksumURL, b.ChecksumURL) &&
		a.ReleaseURL == b.ReleaseURL && a.PublishedAt == b.PublishedAt
}

func releaseEqual(a, b ComponentRelease) bool {
	if a.Version != b.Version || a.Tag != b.Tag || a.PublishedAt != b.PublishedAt || a.ReleaseURL != b.ReleaseURL {
		return false
	}
	if !stringPtrEqual(a.ChecksumsURL, b.ChecksumsURL) || !stringPtrEqual(a.ChecksumsSignatureURL, b.ChecksumsSignatureURL) {
		return false
	}
	return maps.EqualFunc(a.Assets, b.Assets, func(x, y PlatformAsset) bool {
		return x.URL == y.URL && x.Filename == y.Filename && x.Size == y.Size &&
			x.DisplayName == y.DisplayName && stringPtrEqual(x.SBOMURL, y.SBOMURL)
	})
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
