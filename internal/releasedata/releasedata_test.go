package releasedata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/bluelink-docs/internal/releases"
)

func strPtr(s string) *string { return &s }

func sampleDocument() *releases.Document {
	return &releases.Document{
		GeneratedAt: "2024-03-04T05:06:07.890Z",
		WindowsInstaller: &releases.WindowsInstaller{
			URL:         "https://example.com/bluelink-installer.msi",
			Filename:    "bluelink-installer.msi",
			Size:        2048,
			ChecksumURL: strPtr("https://example.com/bluelink-installer.msi.sha256"),
			ReleaseURL:  "https://example.com/windows-installer-latest",
			PublishedAt: "2024-01-02T12:00:00Z",
		},
		Components: []releases.ComponentReleases{
			{
				Key: "cli",
				Releases: []releases.ComponentRelease{
					{
						Version:     "1.2.0",
						Tag:         "apps/cli/v1.2.0",
						PublishedAt: "2024-01-10T12:00:00Z",
						ReleaseURL:  "https://example.com/apps/cli/v1.2.0",
						Assets: map[string]releases.PlatformAsset{
							"linux_amd64": {
								URL:         "https://example.com/bluelink_1.2.0_linux_amd64.tar.gz",
								Filename:    "bluelink_1.2.0_linux_amd64.tar.gz",
								Size:        1536,
								DisplayName: "Linux (x64)",
							},
						},
					},
					{
						Version:     "1.1.0",
						Tag:         "apps/cli/v1.1.0",
						PublishedAt: "2024-01-05T12:00:00Z",
						ReleaseURL:  "https://example.com/apps/cli/v1.1.0",
						Assets:      map[string]releases.PlatformAsset{},
					},
				},
			},
			{Key: "deploy-engine", Releases: []releases.ComponentRelease{}},
		},
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "releases.json")
	doc := sampleDocument()
	require.NoError(t, releases.WriteDocument(path, doc))

	data, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, doc.GeneratedAt, data.GeneratedAt())
	assert.Equal(t, []string{"cli", "deploy-engine"}, data.Components())
	assert.Equal(t, doc.Components[0].Releases, data.ComponentReleases("cli"))
	assert.Equal(t, doc.WindowsInstaller, data.WindowsInstaller())
	assert.True(t, doc.Equal(data.Document()))
}

func TestLoad_MissingFile(t *testing.T) {
	data, err := Load(filepath.Join(t.TempDir(), "releases.json"))
	require.NoError(t, err)

	assert.Nil(t, data.WindowsInstaller())
	assert.Empty(t, data.Components())
	assert.NotNil(t, data.ComponentReleases("cli"))
	assert.Empty(t, data.ComponentReleases("cli"))
	assert.False(t, data.Available("cli"))
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "releases.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestParse_NullInstaller(t *testing.T) {
	data, err := Parse([]byte(`{"generatedAt":"2024-01-01T00:00:00.000Z","windowsInstaller":null,"cli":[]}`))
	require.NoError(t, err)

	assert.Nil(t, data.WindowsInstaller())
	assert.Empty(t, data.ComponentReleases("cli"))
	assert.Equal(t, []string{"cli"}, data.Components())
}

func TestData_Available(t *testing.T) {
	data := FromDocument(sampleDocument())

	assert.True(t, data.Available("cli"))
	assert.False(t, data.Available("deploy-engine"))
	assert.False(t, data.Available("unknown"))
}

func TestData_ReturnsCopies(t *testing.T) {
	doc := sampleDocument()
	data := FromDocument(doc)

	// Mutating the source document does not leak in.
	doc.Components[0].Releases[0].Version = "9.9.9"
	assert.Equal(t, "1.2.0", data.ComponentReleases("cli")[0].Version)

	// Mutating a returned value does not leak back.
	list := data.ComponentReleases("cli")
	list[0].Assets["linux_amd64"] = releases.PlatformAsset{Filename: "changed"}
	assert.Equal(t, "bluelink_1.2.0_linux_amd64.tar.gz", data.ComponentReleases("cli")[0].Assets["linux_amd64"].Filename)

	installer := data.WindowsInstaller()
	*installer.ChecksumURL = "changed"
	assert.NotEqual(t, "changed", *data.WindowsInstaller().ChecksumURL)
}

func TestEmpty(t *testing.T) {
	data := Empty()
	assert.Equal(t, "", data.GeneratedAt())
	assert.Nil(t, data.WindowsInstaller())
	assert.Empty(t, data.ComponentReleases("bluelink-manager"))

	assert.Equal(t, Empty().Components(), FromDocument(nil).Components())
}
