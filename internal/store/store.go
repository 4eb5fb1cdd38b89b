// Package store provides read-only SQLite access to the OpenCode database.
//
// The schema is owned by OpenCode, not by this tool: a message table with a
// JSON data column and a session table with titles. All aggregation happens
// in SQL over json_extract so the database is opened, queried and closed
// without ever materializing raw messages.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sdpower/ocusage-go/internal/types"
)

// Store is a read-only handle on an OpenCode database.
type Store struct {
	db *sql.DB
}

// QueryOptions narrows an aggregation query. Since/Until bound the
// message creation time as a half-open interval [Since, Until).
// A zero time means unbounded; Limit <= 0 means no limit.
type QueryOptions struct {
	Since time.Time
	Until time.Time
	Limit int
}

// Open opens the database at path in read-only mode.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, types.DatabaseError{Path: path, Err: types.ErrDatabaseNotFound}
		}
		return nil, types.DatabaseError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, types.DatabaseError{Path: path, Err: err}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// selectColumns is the aggregate column list shared by every grouping
// query. col is the qualified name of the JSON data column.
func selectColumns(col string) string {
	return fmt.Sprintf(`
		COUNT(*)                                                    AS calls,
		COALESCE(SUM(json_extract(%[1]s, '$.tokens.input')),     0) AS input_tokens,
		COALESCE(SUM(json_extract(%[1]s, '$.tokens.output')),    0) AS output_tokens,
		COALESCE(SUM(json_extract(%[1]s, '$.tokens.reasoning')), 0) AS reasoning_tokens,
		COALESCE(SUM(json_extract(%[1]s, '$.tokens.cache.read')),  0) AS cache_read,
		COALESCE(SUM(json_extract(%[1]s, '$.tokens.cache.write')), 0) AS cache_write,
		COALESCE(SUM(json_extract(%[1]s, '$.tokens.total')),     0) AS total_tokens,
		COALESCE(SUM(json_extract(%[1]s, '$.cost')),             0) AS cost`, col)
}

// timeFilter returns extra WHERE clauses and bind params for the
// requested window, against the creation timestamp (unix millis).
func timeFilter(opts QueryOptions, col string) (string, []interface{}) {
	clause := ""
	var params []interface{}
	if !opts.Since.IsZero() {
		clause += fmt.Sprintf(" AND json_extract(%s, '$.time.created') >= ?", col)
		params = append(params, opts.Since.UnixMilli())
	}
	if !opts.Until.IsZero() {
		clause += fmt.Sprintf(" AND json_extract(%s, '$.time.created') < ?", col)
		params = append(params, opts.Until.UnixMilli())
	}
	return clause, params
}

func limitClause(limit int) string {
	if limit > 0 {
		return fmt.Sprintf(" LIMIT %d", limit)
	}
	return ""
}

// baseQuery runs a single-label grouping query over the message table.
func (s *Store) baseQuery(ctx context.Context, groupExpr, order string, opts QueryOptions) ([]types.UsageRow, error) {
	timeClause, params := timeFilter(opts, "data")

	query := fmt.Sprintf(`
		SELECT %s AS label, %s
		FROM message
		WHERE json_extract(data, '$.role') = 'assistant'
		  AND json_extract(data, '$.tokens.total') IS NOT NULL
		  %s
		GROUP BY label
		ORDER BY %s%s`,
		groupExpr, selectColumns("data"), timeClause, order, limitClause(opts.Limit))

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []types.UsageRow
	for rows.Next() {
		var (
			label sql.NullString
			r     types.UsageRow
		)
		if err := rows.Scan(
			&label, &r.Calls,
			&r.Tokens.Input, &r.Tokens.Output, &r.Tokens.Reasoning,
			&r.Tokens.CacheRead, &r.Tokens.CacheWrite, &r.Tokens.Total,
			&r.Cost,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Label = labelOr(label, "(unknown)")
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}

// Daily aggregates usage per local calendar date, newest first.
func (s *Store) Daily(ctx context.Context, opts QueryOptions) ([]types.UsageRow, error) {
	rows, err := s.baseQuery(ctx,
		"date(json_extract(data, '$.time.created') / 1000, 'unixepoch', 'localtime')",
		"label DESC", opts)
	if err != nil {
		return nil, types.QueryError{Dimension: types.GroupByDay, Err: err}
	}
	return rows, nil
}

// ByModel aggregates usage per model, heaviest first.
func (s *Store) ByModel(ctx context.Context, opts QueryOptions) ([]types.UsageRow, error) {
	rows, err := s.baseQuery(ctx, "json_extract(data, '$.modelID')", "total_tokens DESC", opts)
	if err != nil {
		return nil, types.QueryError{Dimension: types.GroupByModel, Err: err}
	}
	return rows, nil
}

// ByProvider aggregates usage per provider, heaviest first.
func (s *Store) ByProvider(ctx context.Context, opts QueryOptions) ([]types.UsageRow, error) {
	rows, err := s.baseQuery(ctx, "json_extract(data, '$.providerID')", "total_tokens DESC", opts)
	if err != nil {
		return nil, types.QueryError{Dimension: types.GroupByProvider, Err: err}
	}
	return rows, nil
}

// ByAgent aggregates usage per (agent, model) pair so each agent shows
// which models it drove. Label is the agent, Detail the model.
func (s *Store) ByAgent(ctx context.Context, opts QueryOptions) ([]types.UsageRow, error) {
	timeClause, params := timeFilter(opts, "data")

	query := fmt.Sprintf(`
		SELECT
			json_extract(data, '$.agent')   AS agent,
			json_extract(data, '$.modelID') AS model, %s
		FROM message
		WHERE json_extract(data, '$.role') = 'assistant'
		  AND json_extract(data, '$.tokens.total') IS NOT NULL
		  %s
		GROUP BY agent, model
		ORDER BY agent, total_tokens DESC%s`,
		selectColumns("data"), timeClause, limitClause(opts.Limit))

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, types.QueryError{Dimension: types.GroupByAgent, Err: fmt.Errorf("query failed: %w", err)}
	}
	defer func() { _ = rows.Close() }()

	var result []types.UsageRow
	for rows.Next() {
		var (
			agent, model sql.NullString
			r            types.UsageRow
		)
		if err := rows.Scan(
			&agent, &model, &r.Calls,
			&r.Tokens.Input, &r.Tokens.Output, &r.Tokens.Reasoning,
			&r.Tokens.CacheRead, &r.Tokens.CacheWrite, &r.Tokens.Total,
			&r.Cost,
		); err != nil {
			return nil, types.QueryError{Dimension: types.GroupByAgent, Err: fmt.Errorf("scan row: %w", err)}
		}
		r.Label = labelOr(agent, "(unknown)")
		r.Detail = model.String
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, types.QueryError{Dimension: types.GroupByAgent, Err: err}
	}

	return result, nil
}

// BySession aggregates usage per session, labelled with the session
// title when one exists and the session id otherwise.
func (s *Store) BySession(ctx context.Context, opts QueryOptions) ([]types.UsageRow, error) {
	timeClause, params := timeFilter(opts, "m.data")

	query := fmt.Sprintf(`
		SELECT COALESCE(s.title, m.session_id) AS label, %s
		FROM message m
		LEFT JOIN session s ON m.session_id = s.id
		WHERE json_extract(m.data, '$.role') = 'assistant'
		  AND json_extract(m.data, '$.tokens.total') IS NOT NULL
		  %s
		GROUP BY m.session_id
		ORDER BY total_tokens DESC%s`,
		selectColumns("m.data"), timeClause, limitClause(opts.Limit))

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, types.QueryError{Dimension: types.GroupBySession, Err: fmt.Errorf("query failed: %w", err)}
	}
	defer func() { _ = rows.Close() }()

	var result []types.UsageRow
	for rows.Next() {
		var (
			label sql.NullString
			r     types.UsageRow
		)
		if err := rows.Scan(
			&label, &r.Calls,
			&r.Tokens.Input, &r.Tokens.Output, &r.Tokens.Reasoning,
			&r.Tokens.CacheRead, &r.Tokens.CacheWrite, &r.Tokens.Total,
			&r.Cost,
		); err != nil {
			return nil, types.QueryError{Dimension: types.GroupBySession, Err: fmt.Errorf("scan row: %w", err)}
		}
		r.Label = labelOr(label, "(untitled)")
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, types.QueryError{Dimension: types.GroupBySession, Err: err}
	}

	return result, nil
}

// Totals returns a single aggregated row for the window.
func (s *Store) Totals(ctx context.Context, opts QueryOptions) (types.UsageRow, error) {
	opts.Limit = 0
	rows, err := s.baseQuery(ctx, "'total'", "label", opts)
	if err != nil {
		return types.UsageRow{}, err
	}
	if len(rows) == 0 {
		return types.UsageRow{Label: "total"}, nil
	}
	return rows[0], nil
}

// Rows dispatches to the aggregation matching the given dimension.
func (s *Store) Rows(ctx context.Context, dim types.Dimension, opts QueryOptions) ([]types.UsageRow, error) {
	switch dim {
	case types.GroupByDay:
		return s.Daily(ctx, opts)
	case types.GroupByModel:
		return s.ByModel(ctx, opts)
	case types.GroupByAgent:
		return s.ByAgent(ctx, opts)
	case types.GroupByProvider:
		return s.ByProvider(ctx, opts)
	case types.GroupBySession:
		return s.BySession(ctx, opts)
	}
	return nil, fmt.Errorf("%w: %s", types.ErrInvalidDimension, dim)
}

func labelOr(s sql.NullString, fallback string) string {
	if s.Valid && s.String != "" {
		return s.String
	}
	return fallback
}
