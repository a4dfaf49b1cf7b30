package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values mirror the behavior the catalog shipped with, so existing
// deployments keep working when a value is left unset.
const (
	// DefaultTimeout is the per-fetch timeout during enrichment.
	// Enrichment is a best-effort metadata grab: a landing page that cannot
	// answer within 8 seconds is treated as failed rather than stalling
	// the batch.
	DefaultTimeout = 8 * time.Second

	// DefaultConcurrency is the number of concurrent enrichment workers
	// for batch runs. Enrichment is network-bound; a small pool keeps
	// throughput up without hammering target sites.
	DefaultConcurrency = 5

	// DefaultPageSize is the number of search results per page.
	DefaultPageSize = 10

	// MaxPageSize caps the per-page result count a caller may request.
	MaxPageSize = 100

	// AppName is the application name used for XDG directory paths.
	AppName = "sitecatalog"

	// DefaultUserAgent identifies the enricher in HTTP requests.
	// The browser-shaped prefix avoids naive bot blocks while the suffix
	// still lets operators identify enricher traffic in their logs.
	DefaultUserAgent = "Mozilla/5.0 (SiteCatalogEnricher/1.0)"

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for any real landing page while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for the site catalog CLI.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., EnrichConfig, SearchConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Timeout is the per-fetch timeout for enrichment requests.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with enrichment requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Set to 0 for the default.
	MaxBodySize int64

	// Concurrency is the number of concurrent enrichment workers for
	// batch runs.
	Concurrency int

	// PageSize is the number of search results per page.
	PageSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .sitecatalog in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// Extensions holds detection table extensions loaded from the config
	// file: extra platform signatures and industry keywords.
	Extensions *File

	// JSONReport enables JSON output instead of rendered markdown.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport forces markdown output when writing to a file.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for reports.
	// When set, output is written to this file instead of stdout.
	ReportFile string

	// Targets is the list of website URLs to enrich.
	Targets []string

	// DBDir is the directory path for the SQLite database.
	// Defaults to the XDG data directory (~/.local/share/sitecatalog on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., timeout, page size).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Concurrency: DefaultConcurrency,
		PageSize:    DefaultPageSize,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for the catalog.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/sitecatalog
// On macOS: ~/Library/Application Support/sitecatalog
// On Windows: %LOCALAPPDATA%\sitecatalog
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the catalog.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any command runs.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	// Concurrency must be positive; zero would mean no workers
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	// Page size must be positive and bounded
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	// MaxBodySize must be non-negative; 0 means use the default
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
