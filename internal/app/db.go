package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbPingTimeout        = 5 * time.Second
	maxTracedQueryLength = 512
	preparedBinaryParam  = "disable_prepared_binary_result"
)

// OpenDB opens a traced PostgreSQL pool and verifies it is reachable.
func OpenDB(ctx context.Context, rawURL string, disablePreparedBinaryResult bool) (*sqlx.DB, string, error) {
	dsn := NormalizeDBURL(rawURL, disablePreparedBinaryResult)
	dbName := dbNameFromURL(dsn)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbName),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, "", crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", crerr.WithHint(crerr.Wrapf(err, "ping postgres %q", dbName), "check DB_URL and that migrations have been applied")
	}

	return db, dbName, nil
}

// NormalizeDBURL turns off binary results for prepared statements unless the
// URL already sets the parameter. PgBouncer in transaction mode needs it.
func NormalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Has(preparedBinaryParam) {
		return raw
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// dbNameFromURL accepts both URL and key=value DSN forms.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, field := range strings.Fields(trimmed) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}

	return ""
}

func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
