package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sampleforge/sitecatalog/internal/model"
)

// DatabaseFileName is the SQLite file name inside the data directory.
const DatabaseFileName = "sitecatalog.db"

// substringColumns whitelists the fields the coarse substring filter may
// touch, mapped to their column names. Search input never reaches SQL
// identifiers directly.
var substringColumns = map[string]string{
	"website_url": "website_url",
	"platform":    "platform",
	"industry":    "industry",
	"tags":        "tags",
}

// CatalogDB provides SQLite-based storage for the site catalog.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for the whole catalog
// rather than separate files per concern. Sites and tag feedback share
// transactions and backup/restore operations this way.
type CatalogDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CatalogDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CatalogDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CatalogDB, error) {
	dbPath := filepath.Join(dbDir, DatabaseFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection
	// avoids lock contention between batch workers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CatalogDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CatalogDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CatalogDB) createTables() error {
	schema := `
	-- Sites store one row per cataloged website, keyed by URL
	CREATE TABLE IF NOT EXISTS sites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		website_url TEXT NOT NULL UNIQUE,
		platform TEXT NOT NULL DEFAULT '',
		industry TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		platforms TEXT,
		industries TEXT,
		tag_confidence TEXT,
		primary_color TEXT,
		secondary_color TEXT,
		enrichment_signals TEXT,
		last_enriched_at DATETIME,
		last_used_at DATETIME,
		heat_score REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sites_platform ON sites(platform);
	CREATE INDEX IF NOT EXISTS idx_sites_industry ON sites(industry);
	CREATE INDEX IF NOT EXISTS idx_sites_last_used ON sites(last_used_at);

	-- Tag feedback stores append-only user suggestions for review
	CREATE TABLE IF NOT EXISTS tag_feedback (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		site_id INTEGER,
		website_url TEXT NOT NULL,
		suggested_tags TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (site_id) REFERENCES sites(id)
	);

	CREATE INDEX IF NOT EXISTS idx_feedback_url ON tag_feedback(website_url);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// siteColumns is the SELECT column list matching scanSite.
const siteColumns = `id, website_url, platform, industry, tags,
	platforms, industries, tag_confidence,
	primary_color, secondary_color, enrichment_signals,
	last_enriched_at, last_used_at, heat_score`

// InsertSite inserts a new site record and returns it with the assigned ID.
// A URL collision returns ErrDuplicateURL.
func (cdb *CatalogDB) InsertSite(ctx context.Context, site *model.Site) (*model.Site, error) {
	args, err := siteArgs(site)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO sites (website_url, platform, industry, tags,
		platforms, industries, tag_confidence,
		primary_color, secondary_color, enrichment_signals,
		last_enriched_at, last_used_at, heat_score)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := cdb.db.ExecContext(ctx, query, args...)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateURL, site.URL)
		}
		return nil, fmt.Errorf("failed to insert site: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted site id: %w", err)
	}

	stored := *site
	stored.ID = id
	return &stored, nil
}

// UpsertByURL inserts the site or fully replaces the derived fields of
// the existing record with the same URL. Usage metadata (last_used_at,
// heat_score) survives re-enrichment; everything derived is overwritten.
func (cdb *CatalogDB) UpsertByURL(ctx context.Context, site *model.Site) (*model.Site, error) {
	args, err := siteArgs(site)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO sites (website_url, platform, industry, tags,
		platforms, industries, tag_confidence,
		primary_color, secondary_color, enrichment_signals,
		last_enriched_at, last_used_at, heat_score)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(website_url) DO UPDATE SET
		platform = excluded.platform,
		industry = excluded.industry,
		tags = excluded.tags,
		platforms = excluded.platforms,
		industries = excluded.industries,
		tag_confidence = excluded.tag_confidence,
		primary_color = excluded.primary_color,
		secondary_color = excluded.secondary_color,
		enrichment_signals = excluded.enrichment_signals,
		last_enriched_at = excluded.last_enriched_at
	`

	if _, err := cdb.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to upsert site: %w", err)
	}

	return cdb.GetSiteByURL(ctx, site.URL)
}

// GetSiteByURL retrieves a site by its normalized URL.
// Returns ErrSiteNotFound when the URL is not cataloged.
func (cdb *CatalogDB) GetSiteByURL(ctx context.Context, url string) (*model.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE website_url = ?`
	site, err := scanSite(cdb.db.QueryRowContext(ctx, query, url))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, url)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	return site, nil
}

// GetSiteByID retrieves a site by its storage identifier.
// Returns ErrSiteNotFound when no row matches.
func (cdb *CatalogDB) GetSiteByID(ctx context.Context, id int64) (*model.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = ?`
	site, err := scanSite(cdb.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrSiteNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	return site, nil
}

// FindBySubstring returns sites where any of the given fields contains
// any of the given terms, case-insensitively, ordered by id.
// Field names outside the whitelist return ErrUnknownField.
func (cdb *CatalogDB) FindBySubstring(ctx context.Context, fields, terms []string) ([]model.Site, error) {
	if len(fields) == 0 || len(terms) == 0 {
		return nil, nil
	}

	var clauses []string
	var args []any
	for _, field := range fields {
		column, ok := substringColumns[field]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		for _, term := range terms {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, "%"+strings.ToLower(term)+"%")
		}
	}

	query := `SELECT ` + siteColumns + ` FROM sites WHERE ` +
		strings.Join(clauses, " OR ") + ` ORDER BY id`

	rows, err := cdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	return collectSites(rows)
}

// FindAll returns every site ordered by id.
func (cdb *CatalogDB) FindAll(ctx context.Context) ([]model.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites ORDER BY id`

	rows, err := cdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	return collectSites(rows)
}

// CountSites returns the number of cataloged sites.
func (cdb *CatalogDB) CountSites(ctx context.Context) (int, error) {
	var count int
	if err := cdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sites`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count sites: %w", err)
	}
	return count, nil
}

// UpdateLastUsed records that a site was returned to a user at the given
// time and refreshes its stored heat score accordingly.
func (cdb *CatalogDB) UpdateLastUsed(ctx context.Context, id int64, usedAt time.Time) error {
	usedAt = usedAt.UTC()
	heat := model.HeatScore(&usedAt, usedAt)

	query := `UPDATE sites SET last_used_at = ?, heat_score = ? WHERE id = ?`
	result, err := cdb.db.ExecContext(ctx, query, usedAt.Format(time.RFC3339), heat, id)
	if err != nil {
		return fmt.Errorf("failed to update last used: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check last used update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrSiteNotFound, id)
	}
	return nil
}

// RefreshHeatScores recomputes the stored heat score of every site from
// its last_used_at timestamp as of now. Sites never used stay at zero.
func (cdb *CatalogDB) RefreshHeatScores(ctx context.Context, now time.Time) error {
	sites, err := cdb.FindAll(ctx)
	if err != nil {
		return err
	}

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin heat refresh: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := range sites {
		heat := model.HeatScore(sites[i].LastUsedAt, now)
		if _, err := tx.ExecContext(ctx,
			`UPDATE sites SET heat_score = ? WHERE id = ?`, heat, sites[i].ID); err != nil {
			return fmt.Errorf("failed to refresh heat score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit heat refresh: %w", err)
	}
	return nil
}

// InsertTagFeedback appends one tag suggestion row.
func (cdb *CatalogDB) InsertTagFeedback(ctx context.Context, fb *model.TagFeedback) (int64, error) {
	query := `
	INSERT INTO tag_feedback (site_id, website_url, suggested_tags)
	VALUES (?, ?, ?)
	`

	var siteID any
	if fb.SiteID != nil {
		siteID = *fb.SiteID
	}

	result, err := cdb.db.ExecContext(ctx, query, siteID, fb.URL, fb.SuggestedTags)
	if err != nil {
		return 0, fmt.Errorf("failed to insert tag feedback: %w", err)
	}
	return result.LastInsertId()
}

// ListTagFeedback returns all stored suggestions, newest first.
func (cdb *CatalogDB) ListTagFeedback(ctx context.Context) ([]model.TagFeedback, error) {
	query := `
	SELECT id, site_id, website_url, suggested_tags, created_at
	FROM tag_feedback
	ORDER BY id DESC
	`

	rows, err := cdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag feedback: %w", err)
	}
	defer rows.Close()

	var results []model.TagFeedback
	for rows.Next() {
		var fb model.TagFeedback
		var siteID sql.NullInt64
		var createdAt string

		if err := rows.Scan(&fb.ID, &siteID, &fb.URL, &fb.SuggestedTags, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan tag feedback: %w", err)
		}
		if siteID.Valid {
			fb.SiteID = &siteID.Int64
		}
		fb.CreatedAt = parseTimestamp(createdAt)
		results = append(results, fb)
	}

	return results, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanSite.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSite decodes one sites row, including its JSON columns.
func scanSite(row rowScanner) (*model.Site, error) {
	var site model.Site
	var platforms, industries, tagConfidence, signals sql.NullString
	var primaryColor, secondaryColor sql.NullString
	var lastEnrichedAt, lastUsedAt sql.NullString

	err := row.Scan(
		&site.ID,
		&site.URL,
		&site.PlatformLegacy,
		&site.IndustryLegacy,
		&site.TagsLegacy,
		&platforms,
		&industries,
		&tagConfidence,
		&primaryColor,
		&secondaryColor,
		&signals,
		&lastEnrichedAt,
		&lastUsedAt,
		&site.HeatScore,
	)
	if err != nil {
		return nil, err
	}

	if platforms.Valid && platforms.String != "" {
		if err := json.Unmarshal([]byte(platforms.String), &site.Platforms); err != nil {
			return nil, fmt.Errorf("failed to parse platforms: %w", err)
		}
	}
	if industries.Valid && industries.String != "" {
		if err := json.Unmarshal([]byte(industries.String), &site.Industries); err != nil {
			return nil, fmt.Errorf("failed to parse industries: %w", err)
		}
	}
	if tagConfidence.Valid && tagConfidence.String != "" {
		if err := json.Unmarshal([]byte(tagConfidence.String), &site.TagConfidence); err != nil {
			return nil, fmt.Errorf("failed to parse tag confidence: %w", err)
		}
	}
	if signals.Valid && signals.String != "" {
		if err := json.Unmarshal([]byte(signals.String), &site.EnrichmentSignals); err != nil {
			return nil, fmt.Errorf("failed to parse enrichment signals: %w", err)
		}
	}
	if primaryColor.Valid && primaryColor.String != "" {
		site.Colors.Primary = &primaryColor.String
	}
	if secondaryColor.Valid && secondaryColor.String != "" {
		site.Colors.Secondary = &secondaryColor.String
	}
	if lastEnrichedAt.Valid && lastEnrichedAt.String != "" {
		t := parseTimestamp(lastEnrichedAt.String)
		site.LastEnrichedAt = &t
	}
	if lastUsedAt.Valid && lastUsedAt.String != "" {
		t := parseTimestamp(lastUsedAt.String)
		site.LastUsedAt = &t
	}

	return &site, nil
}

// collectSites drains a multi-row result into a slice.
func collectSites(rows *sql.Rows) ([]model.Site, error) {
	var sites []model.Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan site: %w", err)
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}

// siteArgs builds the ordered insert/upsert argument list, serializing
// the structured fields to JSON. Empty collections store NULL.
func siteArgs(site *model.Site) ([]any, error) {
	platforms, err := marshalOrNil(site.Platforms, len(site.Platforms) > 0)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize platforms: %w", err)
	}
	industries, err := marshalOrNil(site.Industries, len(site.Industries) > 0)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize industries: %w", err)
	}
	tagConfidence, err := marshalOrNil(site.TagConfidence, len(site.TagConfidence) > 0)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tag confidence: %w", err)
	}
	signals, err := marshalOrNil(site.EnrichmentSignals, site.EnrichmentSignals != nil)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize enrichment signals: %w", err)
	}

	var primary, secondary any
	if site.Colors.Primary != nil {
		primary = *site.Colors.Primary
	}
	if site.Colors.Secondary != nil {
		secondary = *site.Colors.Secondary
	}

	var lastEnriched, lastUsed any
	if site.LastEnrichedAt != nil {
		lastEnriched = site.LastEnrichedAt.UTC().Format(time.RFC3339)
	}
	if site.LastUsedAt != nil {
		lastUsed = site.LastUsedAt.UTC().Format(time.RFC3339)
	}

	return []any{
		site.URL,
		site.PlatformLegacy,
		site.IndustryLegacy,
		site.TagsLegacy,
		platforms,
		industries,
		tagConfidence,
		primary,
		secondary,
		signals,
		lastEnriched,
		lastUsed,
		site.HeatScore,
	}, nil
}

// marshalOrNil serializes v to JSON text, or returns nil when present
// is false so the column stores NULL instead of "[]" noise.
func marshalOrNil(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
