// Package verify checks published releases against their signed checksum manifests.
package verify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/newstack-cloud/bluelink-docs/internal/gpg"
	"github.com/newstack-cloud/bluelink-docs/internal/releasedata"
	"github.com/newstack-cloud/bluelink-docs/internal/releases"
)

// DefaultKeyURL is where the release signing key is published.
const DefaultKeyURL = "https://keys.bluelink.dev/release-signing.asc"

// DefaultConcurrency is the number of releases verified at once.
const DefaultConcurrency = 4

// ErrVerificationFailed is returned by VerifyAll when any release failed.
var ErrVerificationFailed = errors.New("release verification failed")

// Status is the outcome for one release.
type Status string

const (
	StatusVerified Status = "verified"
	StatusFailed   Status = "failed"
	StatusSkipped  Status = "skipped"
)

// Result describes the verification of one component release.
type Result struct {
	Component string
	Version   string
	Tag       string
	Status    Status
	// Missing lists platform archives absent from checksums.txt.
	Missing []string
	// Cached is set when a previous run already verified the release.
	Cached bool
	Err    error
}

// Verifier downloads checksum manifests and their signatures and checks them.
type Verifier struct {
	fetcher     Fetcher
	keyRing     gpg.KeyRing
	concurrency int
	logger      *slog.Logger
	verified    func(component, tag string) bool
}

// NewVerifier creates a verifier trusting the keys in keyRing.
func NewVerifier(fetcher Fetcher, keyRing gpg.KeyRing, logger *slog.Logger) (*Verifier, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if keyRing == nil {
		return nil, fmt.Errorf("keyring is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Verifier{
		fetcher:     fetcher,
		keyRing:     keyRing,
		concurrency: DefaultConcurrency,
		logger:      logger,
	}, nil
}

// WithConcurrency sets how many releases are verified in parallel.
func (v *Verifier) WithConcurrency(n int) *Verifier {
	if n > 0 {
		v.concurrency = n
	}
	return v
}

// WithPreviouslyVerified makes VerifyAll trust releases for which verified
// returns true instead of downloading their manifests again.
func (v *Verifier) WithPreviouslyVerified(verified func(component, tag string) bool) *Verifier {
	v.verified = verified
	return v
}

// LoadKeyRing reads the signing key from keyPath when set, otherwise downloads it from keyURL.
func LoadKeyRing(ctx context.Context, fetcher Fetcher, keyPath, keyURL string) (gpg.KeyRing, error) {
	if keyPath != "" {
		return gpg.LoadKeyRingFromFile(keyPath)
	}
	if keyURL == "" {
		keyURL = DefaultKeyURL
	}
	data, err := fetcher.Fetch(ctx, keyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signing key: %w", err)
	}
	return gpg.LoadKeyRingFromReader(bytes.NewReader(data))
}

// VerifyRelease checks the signature over checksums.txt and that every platform
// archive of the release is listed in it. Releases without a checksum manifest
// or signature are skipped.
func (v *Verifier) VerifyRelease(ctx context.Context, component string, release releases.ComponentRelease) Result {
	result := Result{Component: component, Version: release.Version, Tag: release.Tag}

	if release.ChecksumsURL == nil || release.ChecksumsSignatureURL == nil {
		result.Status = StatusSkipped
		v.logger.Debug("release has no signed checksums", "component", component, "tag", release.Tag)
		return result
	}

	var manifest, signature []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		manifest, err = v.fetcher.Fetch(gctx, *release.ChecksumsURL)
		return err
	})
	g.Go(func() error {
		var err error
		signature, err = v.fetcher.Fetch(gctx, *release.ChecksumsSignatureURL)
		return err
	})
	if err := g.Wait(); err != nil {
		return v.fail(result, err)
	}

	if err := v.keyRing.VerifyDetached(manifest, signature); err != nil {
		return v.fail(result, err)
	}

	checksums, err := ParseChecksums(manifest)
	if err != nil {
		return v.fail(result, err)
	}

	for _, asset := range release.Assets {
		if _, ok := checksums[asset.Filename]; !ok {
			result.Missing = append(result.Missing, asset.Filename)
		}
	}
	if len(result.Missing) > 0 {
		sort.Strings(result.Missing)
		return v.fail(result, fmt.Errorf("%d archives missing from checksums", len(result.Missing)))
	}

	result.Status = StatusVerified
	v.logger.Info("release verified", "component", component, "tag", release.Tag, "archives", len(release.Assets))
	return result
}

func (v *Verifier) fail(result Result, err error) Result {
	result.Status = StatusFailed
	result.Err = err
	v.logger.Error("release verification failed",
		"component", result.Component,
		"tag", result.Tag,
		"error", err)
	return result
}

// VerifyAll verifies every release in data. Results keep document order.
// The error is ErrVerificationFailed when at least one release failed.
func (v *Verifier) VerifyAll(ctx context.Context, data *releasedata.Data) ([]Result, error) {
	type job struct {
		component string
		release   releases.ComponentRelease
	}
	var jobs []job
	for _, key := range data.Components() {
		for _, r := range data.ComponentReleases(key) {
			jobs = append(jobs, job{component: key, release: r})
		}
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, j := range jobs {
		if v.verified != nil && v.verified(j.component, j.release.Tag) {
			results[i] = Result{
				Component: j.component,
				Version:   j.release.Version,
				Tag:       j.release.Tag,
				Status:    StatusVerified,
				Cached:    true,
			}
			continue
		}
		i, j := i, j
		g.Go(func() error {
			results[i] = v.VerifyRelease(gctx, j.component, j.release)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	for _, r := range results {
		if r.Status == StatusFailed {
			return results, ErrVerificationFailed
		}
	}
	return results, nil
}
