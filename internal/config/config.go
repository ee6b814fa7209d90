// Package config provides configuration management for release ingestion.
// The built-in defaults describe the published components; an optional YAML or
// TOML file can override any of them.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/newstack-cloud/bluelink-docs/internal/platform"
)

// Sentinel errors for configuration validation
var (
	ErrRepositoryRequired    = errors.New("repository is required")
	ErrOutputPathRequired    = errors.New("output_path is required")
	ErrInvalidPerPage        = errors.New("per_page must be between 1 and 100")
	ErrInvalidMaxReleases    = errors.New("max_releases must be at least 1")
	ErrNoComponents          = errors.New("at least one component must be configured")
	ErrComponentKeyRequired  = errors.New("component key is required")
	ErrDuplicateComponent    = errors.New("duplicate component key")
	ErrTagPrefixesRequired   = errors.New("at least one tag prefix is required")
	ErrInstallerTagRequired  = errors.New("installer tag is required")
	ErrInstallerExtRequired  = errors.New("installer extension is required")
	ErrChecksumsFileRequired = errors.New("checksums_file is required")
	ErrUnsupportedFormat     = errors.New("unsupported config file format")
)

// Defaults for the bluelink release repository.
const (
	DefaultRepository  = "newstack-cloud/bluelink"
	DefaultOutputPath  = "src/data/releases.json"
	DefaultPerPage     = 100
	DefaultMaxReleases = 3
	DefaultUserAgent   = "bluelink-docs-fetch-releases"
)

// Config represents the top-level configuration structure.
type Config struct {
	Repository  string            `yaml:"repository" toml:"repository"`
	APIBaseURL  string            `yaml:"api_base_url" toml:"api_base_url"` // Empty means api.github.com
	OutputPath  string            `yaml:"output_path" toml:"output_path"`
	PerPage     int               `yaml:"per_page" toml:"per_page"`
	MaxReleases int               `yaml:"max_releases" toml:"max_releases"`
	UserAgent   string            `yaml:"user_agent" toml:"user_agent"`
	Installer   InstallerConfig   `yaml:"installer" toml:"installer"`
	Companions  CompanionConfig   `yaml:"companions" toml:"companions"`
	Components  []Component       `yaml:"components" toml:"components"`
	Platforms   []PlatformDisplay `yaml:"platforms" toml:"platforms"`
}

// InstallerConfig identifies the rolling Windows installer release.
type InstallerConfig struct {
	Tag               string `yaml:"tag" toml:"tag"`
	Extension         string `yaml:"extension" toml:"extension"`
	ChecksumExtension string `yaml:"checksum_extension" toml:"checksum_extension"`
}

// CompanionConfig names the files published next to release archives.
type CompanionConfig struct {
	ChecksumsFile string `yaml:"checksums_file" toml:"checksums_file"`
	SignatureFile string `yaml:"signature_file" toml:"signature_file"`
	SBOMSuffix    string `yaml:"sbom_suffix" toml:"sbom_suffix"`
}

// Component maps a logical product component to the tags it is released under.
type Component struct {
	Key         string   `yaml:"key" toml:"key"`
	DisplayName string   `yaml:"display_name" toml:"display_name"`
	TagPrefixes []string `yaml:"tag_prefixes" toml:"tag_prefixes"`
}

// PlatformDisplay labels a platform key for download tables.
type PlatformDisplay struct {
	Key         string `yaml:"key" toml:"key"`
	DisplayName string `yaml:"display_name" toml:"display_name"`
}

// Default returns the configuration for the bluelink repository.
func Default() *Config {
	platforms := platform.PredefinedPlatforms()
	displays := make([]PlatformDisplay, 0, len(platforms))
	for _, p := range platforms {
		displays = append(displays, PlatformDisplay{Key: p.Key(), DisplayName: p.DisplayName})
	}

	return &Config{
		Repository:  DefaultRepository,
		OutputPath:  DefaultOutputPath,
		PerPage:     DefaultPerPage,
		MaxReleases: DefaultMaxReleases,
		UserAgent:   DefaultUserAgent,
		Installer: InstallerConfig{
			Tag:               "windows-installer-latest",
			Extension:         ".msi",
			ChecksumExtension: ".msi.sha256",
		},
		Companions: CompanionConfig{
			ChecksumsFile: "checksums.txt",
			SignatureFile: "checksums.txt.sig",
			SBOMSuffix:    ".sbom.json",
		},
		Components: []Component{
			{
				Key:         "bluelink-manager",
				DisplayName: "Bluelink Manager",
				TagPrefixes: []string{"tools/bluelink-manager/v"},
			},
			{
				Key:         "cli",
				DisplayName: "Bluelink CLI",
				TagPrefixes: []string{"apps/cli/v", "tools/cli/v"},
			},
			{
				Key:         "deploy-engine",
				DisplayName: "Deploy Engine",
				TagPrefixes: []string{"apps/deploy-engine/v"},
			},
			{
				Key:         "blueprint-ls",
				DisplayName: "Blueprint Language Server",
				TagPrefixes: []string{"tools/blueprint-ls/v"},
			},
		},
		Platforms: displays,
	}
}

// LoadConfig loads a configuration file on top of the defaults.
// An empty path returns the defaults. The format follows the file extension.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
		}
	case ".toml":
		// toml reuses existing slice elements, so clear lists the file redefines.
		md, err := toml.Decode(string(data), &struct{}{})
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
		}
		if md.IsDefined("components") {
			cfg.Components = nil
		}
		if md.IsDefined("platforms") {
			cfg.Platforms = nil
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration structure and required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Repository) == "" {
		return ErrRepositoryRequired
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return ErrOutputPathRequired
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return ErrInvalidPerPage
	}
	if c.MaxReleases < 1 {
		return ErrInvalidMaxReleases
	}
	if c.Installer.Tag == "" {
		return ErrInstallerTagRequired
	}
	if c.Installer.Extension == "" {
		return ErrInstallerExtRequired
	}
	if c.Companions.ChecksumsFile == "" {
		return ErrChecksumsFileRequired
	}
	if len(c.Components) == 0 {
		return ErrNoComponents
	}

	seen := make(map[string]bool, len(c.Components))
	for i, comp := range c.Components {
		if err := comp.Validate(); err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		if seen[comp.Key] {
			return fmt.Errorf("%w: %s", ErrDuplicateComponent, comp.Key)
		}
		seen[comp.Key] = true
	}
	return nil
}

// Validate validates a component definition.
func (c *Component) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return ErrComponentKeyRequired
	}
	if len(c.TagPrefixes) == 0 {
		return fmt.Errorf("%s: %w", c.Key, ErrTagPrefixesRequired)
	}
	for _, prefix := range c.TagPrefixes {
		if prefix == "" {
			return fmt.Errorf("%s: %w", c.Key, ErrTagPrefixesRequired)
		}
	}
	return nil
}

// Name returns the display name, falling back to the key.
func (c *Component) Name() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Key
}

// GetComponent returns the component with the given key.
func (c *Config) GetComponent(key string) (Component, bool) {
	for _, comp := range c.Components {
		if comp.Key == key {
			return comp, true
		}
	}
	return Component{}, false
}

// ComponentKeys returns component keys in declared order.
func (c *Config) ComponentKeys() []string {
	keys := make([]string, 0, len(c.Components))
	for _, comp := range c.Components {
		keys = append(keys, comp.Key)
	}
	return keys
}

// PlatformDisplayName returns the configured label for a platform key,
// falling back to the built-in platform labels and then the key itself.
func (c *Config) PlatformDisplayName(key string) string {
	for _, p := range c.Platforms {
		if p.Key == key && p.DisplayName != "" {
			return p.DisplayName
		}
	}
	return platform.DisplayName(key)
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", filePath, err)
	}
	return nil
}
