// Package cli provides the command-line interface for release ingestion.
// It fetches the release document, inspects it, and checks it against the
// signed checksum manifests.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/newstack-cloud/bluelink-docs/internal/config"
	"github.com/newstack-cloud/bluelink-docs/internal/gpg"
	gh "github.com/newstack-cloud/bluelink-docs/internal/github"
	"github.com/newstack-cloud/bluelink-docs/internal/metrics"
	"github.com/newstack-cloud/bluelink-docs/internal/platform"
	"github.com/newstack-cloud/bluelink-docs/internal/releasedata"
	"github.com/newstack-cloud/bluelink-docs/internal/releases"
	"github.com/newstack-cloud/bluelink-docs/internal/storage"
	"github.com/newstack-cloud/bluelink-docs/internal/verify"
	"github.com/newstack-cloud/bluelink-docs/internal/version"
)

// DefaultConfigFile is the path init-config writes to when --path is not given.
const DefaultConfigFile = "fetch-releases.yaml"

// NewApp creates and configures the main CLI application.
// Running it without a command fetches releases, so the fetch flags are also
// accepted at the top level.
func NewApp() *cli.App {
	return &cli.App{
		Name:     "fetch-releases",
		Usage:    "Fetch bluelink release metadata for the documentation site",
		Version:  "1.0.0",
		Compiled: time.Now(),
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML or TOML configuration file (built-in defaults when empty)",
				EnvVars: []string{"BLUELINK_RELEASES_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level for structured output (debug, info, warn, error)",
				EnvVars: []string{"BLUELINK_RELEASES_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "json",
				Usage:   "log format (json, text)",
				EnvVars: []string{"BLUELINK_RELEASES_LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "release document path (overrides output_path from config)",
				EnvVars: []string{"BLUELINK_RELEASES_OUTPUT"},
			},
		}, fetchFlags()...),
		Action: fetchCommand,
		Commands: []*cli.Command{
			{
				Name:   "fetch",
				Usage:  "Fetch releases from GitHub and write the release document",
				Flags:  fetchFlags(),
				Action: fetchCommand,
			},
			{
				Name:  "list",
				Usage: "Print the downloads recorded in the release document",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "component",
						Usage: "only list this component key",
					},
					&cli.StringSliceFlag{
						Name:  "platform",
						Usage: "only list these platforms (e.g. linux_amd64, darwin-arm64, current or all)",
					},
					&cli.IntFlag{
						Name:  "show-versions",
						Value: releases.MaxReleasesPerComponent,
						Usage: "number of versions to list per component",
					},
					&cli.StringFlag{
						Name:    "accept-language",
						Usage:   "Accept-Language value used to format dates",
						EnvVars: []string{"BLUELINK_RELEASES_ACCEPT_LANGUAGE"},
					},
				},
				Action: listCommand,
			},
			{
				Name:  "verify",
				Usage: "Verify the signed checksum manifests of every recorded release",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "key",
						Usage: "path to the armored release signing key",
					},
					&cli.StringFlag{
						Name:  "key-url",
						Value: verify.DefaultKeyURL,
						Usage: "URL of the armored release signing key, used when --key is not set",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Value: verify.DefaultConcurrency,
						Usage: "number of releases verified at once",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Value: verify.DefaultTimeout,
						Usage: "timeout for each download",
					},
					&cli.StringFlag{
						Name:    "db",
						Usage:   "SQLite database recording verification outcomes",
						EnvVars: []string{"BLUELINK_RELEASES_DB"},
					},
					&cli.BoolFlag{
						Name:  "skip-verified",
						Usage: "trust releases the database already records as verified (requires --db)",
					},
				},
				Action: verifyCommand,
			},
			{
				Name:  "history",
				Usage: "Show verification outcomes recorded in the database",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Usage:    "SQLite database written by verify --db",
						EnvVars:  []string{"BLUELINK_RELEASES_DB"},
						Required: true,
					},
					&cli.StringFlag{
						Name:  "component",
						Usage: "only show this component key, newest version first",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "show the full record of one release tag (requires --component)",
					},
				},
				Action: historyCommand,
			},
			{
				Name:  "verify-manifest",
				Usage: "Check a downloaded checksum manifest against its detached signature",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "checksums",
						Usage:    "path to the downloaded checksums.txt",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "signature",
						Usage: "path to the detached signature (default: <checksums>.sig)",
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "path to the armored release signing key",
					},
					&cli.StringFlag{
						Name:  "key-url",
						Value: verify.DefaultKeyURL,
						Usage: "URL of the armored release signing key, used when --key is not set",
					},
				},
				Action: verifyManifestCommand,
			},
			{
				Name:  "detect",
				Usage: "Show which platform a user agent would be offered first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user-agent",
						Usage:    "User-Agent header to classify",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "touch-points",
						Usage: "maximum touch points reported by the client",
					},
				},
				Action: detectCommand,
			},
			{
				Name:  "init-config",
				Usage: "Write the built-in configuration to a YAML file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Value: DefaultConfigFile,
						Usage: "where to write the configuration",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "overwrite an existing file",
					},
				},
				Action: initConfigCommand,
			},
		},
	}
}

func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "token",
			Usage:   "GitHub token used to raise the API rate limit",
			EnvVars: []string{"GITHUB_TOKEN"},
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "build the document without writing it",
		},
		&cli.StringFlag{
			Name:    "metrics-file",
			Usage:   "write Prometheus metrics for the run to this textfile",
			EnvVars: []string{"BLUELINK_RELEASES_METRICS_FILE"},
		},
	}
}

// loggersFor builds the loggers from the global flags. Records go to the
// app's error writer so progress and tables own standard output.
func loggersFor(c *cli.Context) (*slog.Logger, *slog.Logger) {
	level := ParseLogLevelOrDefault(c.String("log-level"))
	return NewLoggersWithWriter(level, c.String("log-format"), c.App.ErrWriter)
}

// loadConfig loads the configuration and applies the --output override.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if output := c.String("output"); output != "" {
		cfg.OutputPath = output
	}
	return cfg, nil
}

// newReleaseClient creates the GitHub client described by cfg.
func newReleaseClient(cfg *config.Config, token string) (*gh.Client, error) {
	client, err := gh.NewClient(token, cfg.Repository)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	if client, err = client.WithBaseURL(cfg.APIBaseURL); err != nil {
		return nil, err
	}
	if client, err = client.WithPerPage(cfg.PerPage); err != nil {
		return nil, err
	}
	return client.WithUserAgent(cfg.UserAgent), nil
}

// fetchCommand implements the fetch command, which is also the default action.
func fetchCommand(c *cli.Context) error {
	stdout, stderr := loggersFor(c)
	runID := uuid.NewString()
	stdout = stdout.With("run_id", runID)
	stderr = stderr.With("run_id", runID)

	cfg, err := loadConfig(c)
	if err != nil {
		stderr.Error("failed to load config", "error", err)
		return err
	}

	client, err := newReleaseClient(cfg, c.String("token"))
	if err != nil {
		stderr.Error("failed to create GitHub client", "error", err)
		return err
	}

	stdout.Info("starting fetch",
		"repository", client.Repository(),
		"output", cfg.OutputPath,
		"components", cfg.ComponentKeys(),
		"dry_run", c.Bool("dry-run"))

	lister := &countingLister{lister: client}
	aggregator, err := releases.NewAggregator(lister, cfg, stdout, stderr)
	if err != nil {
		return err
	}
	aggregator.WithProgress(c.App.Writer)

	m := metrics.New()
	start := time.Now()
	doc, runErr := aggregator.Run(c.Context, cfg.OutputPath, c.Bool("dry-run"))
	finished := time.Now()

	m.RecordRun(runErr, finished.Sub(start), finished)
	m.ReleasesListed.Set(float64(lister.Count()))
	m.ObserveDocument(doc)
	if path := c.String("metrics-file"); path != "" {
		if err := m.WriteTextfile(path); err != nil {
			stderr.Warn("failed to write metrics", "path", path, "error", err)
		}
	}

	if runErr != nil {
		stderr.Error("fetch failed", "error", runErr)
		return runErr
	}

	stdout.Info("fetch completed", "duration_ms", finished.Sub(start).Milliseconds())
	return nil
}

// listCommand implements the list command.
func listCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	data, err := releasedata.Load(cfg.OutputPath)
	if err != nil {
		return err
	}

	components := cfg.Components
	if key := c.String("component"); key != "" {
		comp, ok := cfg.GetComponent(key)
		if !ok {
			return fmt.Errorf("unknown component %q (configured: %s)", key, strings.Join(cfg.ComponentKeys(), ", "))
		}
		components = []config.Component{comp}
	}

	var only map[string]bool
	if flags := c.StringSlice("platform"); len(flags) > 0 {
		selected, err := platform.ResolvePlatforms(flags)
		if err != nil {
			return err
		}
		only = make(map[string]bool, len(selected))
		for _, p := range selected {
			only[p.Key()] = true
		}
	}

	w := c.App.Writer
	accept := c.String("accept-language")

	if generated := data.GeneratedAt(); generated != "" {
		fmt.Fprintf(w, "Release data generated %s\n", releasedata.FormatDateLocale(generated, accept))
	}

	for _, comp := range components {
		fmt.Fprintf(w, "\n== %s ==\n", comp.Name())

		rels := data.ComponentReleases(comp.Key)
		if len(rels) == 0 {
			fmt.Fprintln(w, releasedata.NotAvailableMessage(comp.Name()))
			fmt.Fprintln(w, releasedata.FetchHint)
			continue
		}

		versions := make([]string, 0, len(rels))
		for _, r := range rels {
			versions = append(versions, r.Version)
		}
		latest := version.Latest(versions)

		if n := c.Int("show-versions"); n > 0 && len(rels) > n {
			rels = rels[:n]
		}
		for _, r := range rels {
			printRelease(w, cfg, r, r.Version == latest, only, accept)
		}
	}

	if installer := data.WindowsInstaller(); installer != nil {
		fmt.Fprintf(w, "\nWindows installer: %s (%s)\n  %s\n",
			installer.Filename, releasedata.FormatBytes(installer.Size), installer.URL)
	}
	return nil
}

func printRelease(w io.Writer, cfg *config.Config, r releases.ComponentRelease, latest bool, only map[string]bool, accept string) {
	label := "v" + r.Version
	if latest {
		label += " (latest)"
	}
	fmt.Fprintf(w, "\n%s  released %s\n", label, releasedata.FormatDateLocale(r.PublishedAt, accept))

	keys := orderedPlatformKeys(cfg, r.Assets)
	if only != nil {
		keys = slices.DeleteFunc(keys, func(k string) bool { return !only[k] })
	}
	if len(keys) == 0 {
		fmt.Fprintln(w, "  no downloads")
		return
	}

	tbl := table.New("Platform", "Filename", "Size", "SBOM").WithWriter(w)
	for _, key := range keys {
		asset := r.Assets[key]
		sbom := "-"
		if asset.SBOMURL != nil {
			sbom = "yes"
		}
		tbl.AddRow(asset.DisplayName, asset.Filename, releasedata.FormatBytes(asset.Size), sbom)
	}
	tbl.Print()
}

// orderedPlatformKeys lists asset keys in configured platform order, then the
// built-in display order, then any remaining keys sorted by name.
func orderedPlatformKeys(cfg *config.Config, assets map[string]releases.PlatformAsset) []string {
	order := make([]string, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		order = append(order, p.Key)
	}
	order = append(order, platform.DisplayOrder()...)

	keys := make([]string, 0, len(assets))
	seen := make(map[string]bool, len(assets))
	for _, key := range order {
		if _, ok := assets[key]; ok && !seen[key] {
			keys = append(keys, key)
			seen[key] = true
		}
	}

	var rest []string
	for key := range assets {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// verifyCommand implements the verify command.
func verifyCommand(c *cli.Context) error {
	stdout, stderr := loggersFor(c)
	if c.Bool("skip-verified") && c.String("db") == "" {
		return fmt.Errorf("--skip-verified requires --db")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		stderr.Error("failed to load config", "error", err)
		return err
	}

	data, err := releasedata.Load(cfg.OutputPath)
	if err != nil {
		stderr.Error("failed to load release document", "path", cfg.OutputPath, "error", err)
		return err
	}

	w := c.App.Writer
	total := 0
	for _, key := range data.Components() {
		total += len(data.ComponentReleases(key))
	}
	if total == 0 {
		fmt.Fprintf(w, "No releases to verify in %s.\n%s\n", cfg.OutputPath, releasedata.FetchHint)
		return nil
	}

	fetcher := verify.NewHTTPFetcher(&http.Client{Timeout: c.Duration("timeout")}, cfg.UserAgent)
	keyRing, err := verify.LoadKeyRing(c.Context, fetcher, c.String("key"), c.String("key-url"))
	if err != nil {
		stderr.Error("failed to load signing key", "error", err)
		return fmt.Errorf("failed to load signing key: %w", err)
	}
	stdout.Info("loaded signing key", "fingerprints", keyRing.Fingerprints())

	verifier, err := verify.NewVerifier(fetcher, keyRing, stdout)
	if err != nil {
		return err
	}
	verifier.WithConcurrency(c.Int("concurrency"))

	var db *storage.DB
	if path := c.String("db"); path != "" {
		db, err = storage.InitDB(storage.Config{DatabasePath: path, LogLevel: "silent"})
		if err != nil {
			stderr.Error("failed to open verification database", "path", path, "error", err)
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				stderr.Warn("failed to close verification database", "error", closeErr)
			}
		}()
		if c.Bool("skip-verified") {
			verifier.WithPreviouslyVerified(func(component, tag string) bool {
				ok, err := db.IsVerified(component, tag)
				if err != nil {
					stderr.Warn("failed to read verification database", "component", component, "tag", tag, "error", err)
				}
				return ok
			})
		}
	}

	results, verifyErr := verifier.VerifyAll(c.Context, data)
	if db != nil {
		if err := recordResults(db, data, results, keyRing.Fingerprints()); err != nil {
			stderr.Error("failed to record verification results", "error", err)
			return err
		}
	}

	counts := make(map[verify.Status]int)
	tbl := table.New("Component", "Version", "Status", "Detail").WithWriter(w)
	for _, r := range results {
		counts[r.Status]++
		tbl.AddRow(r.Component, r.Version, string(r.Status), resultDetail(r))
	}
	tbl.Print()
	fmt.Fprintf(w, "\n%d verified, %d failed, %d skipped\n",
		counts[verify.StatusVerified], counts[verify.StatusFailed], counts[verify.StatusSkipped])

	if verifyErr != nil {
		if !errors.Is(verifyErr, verify.ErrVerificationFailed) {
			stderr.Error("verification aborted", "error", verifyErr)
		}
		return verifyErr
	}
	return nil
}

// recordResults stores fresh outcomes in db. Cached results are left as they
// were recorded.
func recordResults(db storage.Store, data *releasedata.Data, results []verify.Result, fingerprints []string) error {
	type key struct{ component, tag string }
	byTag := make(map[key]releases.ComponentRelease)
	for _, component := range data.Components() {
		for _, r := range data.ComponentReleases(component) {
			byTag[key{component, r.Tag}] = r
		}
	}

	for _, r := range results {
		if r.Cached {
			continue
		}
		rel := byTag[key{r.Component, r.Tag}]
		record := &storage.Verification{
			Component:       r.Component,
			Tag:             r.Tag,
			Version:         r.Version,
			KeyFingerprints: strings.Join(fingerprints, ","),
			Archives:        len(rel.Assets),
			Status:          string(r.Status),
			Missing:         strings.Join(r.Missing, ","),
		}
		if rel.ChecksumsURL != nil {
			record.ChecksumsURL = *rel.ChecksumsURL
		}
		if rel.ChecksumsSignatureURL != nil {
			record.SignatureURL = *rel.ChecksumsSignatureURL
		}
		if r.Err != nil {
			record.ErrorMessage = r.Err.Error()
		}
		if err := db.RecordVerification(record); err != nil {
			return err
		}
	}
	return nil
}

func resultDetail(r verify.Result) string {
	switch {
	case r.Cached:
		return "previously verified"
	case len(r.Missing) > 0:
		return "missing from checksums: " + strings.Join(r.Missing, ", ")
	case r.Err != nil:
		return r.Err.Error()
	case r.Status == verify.StatusSkipped:
		return "no signed checksums"
	default:
		return ""
	}
}

// historyCommand implements the history command.
func historyCommand(c *cli.Context) error {
	component, tag := c.String("component"), c.String("tag")
	if tag != "" && component == "" {
		return fmt.Errorf("--tag requires --component")
	}

	path := c.String("db")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("verification database %s: %w", path, err)
	}
	db, err := storage.InitDB(storage.Config{DatabasePath: path, LogLevel: "silent"})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			_, stderr := loggersFor(c)
			stderr.Warn("failed to close verification database", "error", closeErr)
		}
	}()

	w := c.App.Writer
	if tag != "" {
		return printVerification(w, db, component, tag)
	}

	stats, err := db.GetStats()
	if err != nil {
		return err
	}
	if stats.Total == 0 {
		fmt.Fprintf(w, "No verifications recorded in %s.\n", path)
		return nil
	}

	var records []*storage.Verification
	if component != "" {
		records, err = db.ListByComponent(component)
	} else {
		records, err = db.ListAll()
	}
	if err != nil {
		return err
	}

	tbl := table.New("Component", "Version", "Status", "Verified At", "Missing").WithWriter(w)
	for _, r := range records {
		tbl.AddRow(r.Component, r.Version, r.Status, r.VerifiedAt.UTC().Format(time.RFC3339), len(r.MissingArchives()))
	}
	tbl.Print()
	fmt.Fprintf(w, "\n%d releases recorded: %d verified, %d failed, %d skipped\n",
		stats.Total, stats.Count(storage.StatusVerified), stats.Count(storage.StatusFailed), stats.Count(storage.StatusSkipped))
	return nil
}

func printVerification(w io.Writer, db storage.Store, component, tag string) error {
	v, err := db.GetVerification(component, tag)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no verification recorded for %s %s", component, tag)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Component:    %s\n", v.Component)
	fmt.Fprintf(w, "Tag:          %s\n", v.Tag)
	fmt.Fprintf(w, "Status:       %s\n", v.Status)
	fmt.Fprintf(w, "Verified at:  %s\n", v.VerifiedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Checksums:    %s\n", v.ChecksumsURL)
	fmt.Fprintf(w, "Signature:    %s\n", v.SignatureURL)
	fmt.Fprintf(w, "Keys:         %s\n", v.KeyFingerprints)
	fmt.Fprintf(w, "Archives:     %d\n", v.Archives)
	for _, name := range v.MissingArchives() {
		fmt.Fprintf(w, "Missing:      %s\n", name)
	}
	if v.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:        %s\n", v.ErrorMessage)
	}
	return nil
}

// verifyManifestCommand implements the verify-manifest command.
func verifyManifestCommand(c *cli.Context) error {
	_, stderr := loggersFor(c)

	checksumsPath := c.String("checksums")
	sigPath := c.String("signature")
	if sigPath == "" {
		sigPath = checksumsPath + ".sig"
	}

	var userAgent string
	if cfg, err := loadConfig(c); err == nil {
		userAgent = cfg.UserAgent
	}
	fetcher := verify.NewHTTPFetcher(&http.Client{Timeout: verify.DefaultTimeout}, userAgent)
	keyRing, err := verify.LoadKeyRing(c.Context, fetcher, c.String("key"), c.String("key-url"))
	if err != nil {
		stderr.Error("failed to load signing key", "error", err)
		return fmt.Errorf("failed to load signing key: %w", err)
	}

	if err := gpg.VerifyDetachedSignature(keyRing, checksumsPath, sigPath); err != nil {
		stderr.Error("manifest signature check failed", "checksums", checksumsPath, "signature", sigPath, "error", err)
		return err
	}

	data, err := os.ReadFile(checksumsPath)
	if err != nil {
		return fmt.Errorf("failed to read checksums: %w", err)
	}
	entries, err := verify.ParseChecksums(data)
	if err != nil {
		return fmt.Errorf("invalid checksums file %s: %w", checksumsPath, err)
	}

	fmt.Fprintf(c.App.Writer, "Signature OK: %d files listed in %s\n", len(entries), checksumsPath)
	return nil
}

// detectCommand implements the detect command.
func detectCommand(c *cli.Context) error {
	info := platform.Detect(c.String("user-agent"), c.Int("touch-points"))
	title := cases.Title(language.English)

	w := c.App.Writer
	fmt.Fprintf(w, "OS:       %s\n", title.String(info.OS))
	fmt.Fprintf(w, "Browser:  %s\n", title.String(info.Browser))
	fmt.Fprintf(w, "Version:  %s\n", info.Version)

	key := platform.DefaultDownloadPlatform(info.OS)
	if key == "" {
		fmt.Fprintln(w, "Download: none (no binary download for this platform)")
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Download: %s (%s)\n", cfg.PlatformDisplayName(key), key)
	return nil
}

// initConfigCommand implements the init-config command.
func initConfigCommand(c *cli.Context) error {
	path := c.String("path")
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
	default:
		return fmt.Errorf("init-config writes YAML, use a .yaml or .yml path: %s", path)
	}

	if !c.Bool("force") {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	if err := config.SaveConfig(config.Default(), path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Wrote default configuration to %s\n", path)
	return nil
}
