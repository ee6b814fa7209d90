// Package storage keeps a ledger of release verifications using GORM and SQLite
package storage

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Sentinel errors
var (
	ErrNilVerification   = errors.New("verification cannot be nil")
	ErrNotFound          = errors.New("verification not found")
	ErrInvalidVersionFmt = errors.New("invalid version format: expected major.minor.patch")
)

// Verification status values.
const (
	StatusVerified = "verified"
	StatusFailed   = "failed"
	StatusSkipped  = "skipped"
)

// Verification is the latest verification outcome for one component release.
type Verification struct {
	ID uint `gorm:"primaryKey"`

	// What was checked
	Component    string `gorm:"not null;index:idx_component;uniqueIndex:idx_component_tag"`
	Tag          string `gorm:"not null;uniqueIndex:idx_component_tag"`
	Version      string `gorm:"not null"`
	VersionMajor int    `gorm:"index"`
	VersionMinor int
	VersionPatch int

	ChecksumsURL    string
	SignatureURL    string
	KeyFingerprints string // comma separated
	Archives        int

	// Outcome
	Status       string `gorm:"not null;index"`
	Missing      string // comma separated archive names absent from the manifest
	ErrorMessage string
	VerifiedAt   time.Time `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MissingArchives splits Missing back into archive names.
func (v *Verification) MissingArchives() []string {
	if v.Missing == "" {
		return nil
	}
	return strings.Split(v.Missing, ",")
}

// Store defines the ledger operations
type Store interface {
	Close() error
	RecordVerification(*Verification) error
	GetVerification(component, tag string) (*Verification, error)
	IsVerified(component, tag string) (bool, error)
	ListAll() ([]*Verification, error)
	ListByComponent(component string) ([]*Verification, error)
	GetStats() (*Stats, error)
}

// DB wraps gorm.DB with the ledger operations
type DB struct {
	db *gorm.DB
}

var _ Store = (*DB)(nil)

// Config holds database configuration
type Config struct {
	DatabasePath string
	LogLevel     string // silent, error, warn, info
}

// InitDB opens the database and migrates the schema
func InitDB(cfg Config) (*DB, error) {
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	logLevel := logger.Silent
	switch cfg.LogLevel {
	case "error":
		logLevel = logger.Error
	case "warn":
		logLevel = logger.Warn
	case "info":
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Verification{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// RecordVerification stores v, replacing any earlier outcome for the same
// component and tag. Semver columns are filled from Version when it parses.
func (d *DB) RecordVerification(v *Verification) error {
	if v == nil {
		return ErrNilVerification
	}
	if v.VerifiedAt.IsZero() {
		v.VerifiedAt = time.Now().UTC()
	}
	if major, minor, patch, err := ParseSemver(v.Version); err == nil {
		v.VersionMajor, v.VersionMinor, v.VersionPatch = major, minor, patch
	}

	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "component"}, {Name: "tag"}},
		UpdateAll: true,
	}).Create(v).Error
	if err != nil {
		return fmt.Errorf("failed to record verification for %s %s: %w", v.Component, v.Tag, err)
	}
	return nil
}

// GetVerification retrieves the outcome recorded for a component release
func (d *DB) GetVerification(component, tag string) (*Verification, error) {
	var v Verification
	err := d.db.Where("component = ? AND tag = ?", component, tag).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}
	return &v, nil
}

// IsVerified reports whether the release was last seen passing verification
func (d *DB) IsVerified(component, tag string) (bool, error) {
	var count int64
	err := d.db.Model(&Verification{}).
		Where("component = ? AND tag = ? AND status = ?", component, tag, StatusVerified).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check verification: %w", err)
	}
	return count > 0, nil
}

// ListAll returns every recorded verification, most recent first
func (d *DB) ListAll() ([]*Verification, error) {
	var out []*Verification
	if err := d.db.Order("verified_at DESC").Order("id DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return out, nil
}

// ListByComponent returns the verifications of one component, newest version first
func (d *DB) ListByComponent(component string) ([]*Verification, error) {
	var out []*Verification
	if err := d.db.Where("component = ?", component).
		Order("version_major DESC").Order("version_minor DESC").Order("version_patch DESC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list verifications for %s: %w", component, err)
	}
	return out, nil
}

// StatusCount is the number of releases whose latest outcome is Status
type StatusCount struct {
	Status string
	Count  int64
}

// Stats summarizes the ledger
type Stats struct {
	Total    int64
	ByStatus []StatusCount
}

// Count returns the number of releases recorded with status.
func (s *Stats) Count(status string) int64 {
	for _, c := range s.ByStatus {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

// GetStats returns verification counts
func (d *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	if err := d.db.Model(&Verification{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count verifications: %w", err)
	}

	if err := d.db.Model(&Verification{}).Select("status, COUNT(*) as count").
		Group("status").Order("status").Scan(&stats.ByStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	return stats, nil
}

// ParseSemver parses a semantic version string and returns major, minor, patch components.
// Pre-release suffixes such as "-beta.1" are ignored.
func ParseSemver(version string) (major, minor, patch int, err error) {
	core, _, _ := strings.Cut(version, "-")
	n, err := fmt.Sscanf(core, "%d.%d.%d", &major, &minor, &patch)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to parse version %q: %w", version, err)
	}
	if n != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidVersionFmt, version)
	}
	return major, minor, patch, nil
}
