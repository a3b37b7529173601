package dataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgxpool.Pool used for loading
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads settlements and corridors from two tables.
//
//	settlements(id text, ordinal int)
//	corridors(from_id text, to_id text, medium text NULL)
type PostgresSource struct {
	pool             *pgxpool.Pool
	db               querier
	settlementsTable string
	corridorsTable   string
}

// NewPostgresSource connects to the database and verifies connectivity
func NewPostgresSource(ctx context.Context, dsn, settlementsTable, corridorsTable string) (*PostgresSource, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// A load issues two sequential queries
	config.MaxConns = 2
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := newPostgresSource(pool, settlementsTable, corridorsTable)
	s.pool = pool
	return s, nil
}

func newPostgresSource(db querier, settlementsTable, corridorsTable string) *PostgresSource {
	return &PostgresSource{
		db:               db,
		settlementsTable: settlementsTable,
		corridorsTable:   corridorsTable,
	}
}

// Name identifies the source in logs
func (s *PostgresSource) Name() string {
	return fmt.Sprintf("postgres:%s+%s", s.settlementsTable, s.corridorsTable)
}

// Load queries both tables and canonicalizes the rows the same way file
// records are.
func (s *PostgresSource) Load(ctx context.Context) (*Dataset, error) {
	rows, err := s.db.Query(ctx, settlementsQuery(s.settlementsTable))
	if err != nil {
		return nil, newLoadError("query", s.settlementsTable, 0, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, newLoadError("scan", s.settlementsTable, 0, err)
	}

	rows, err = s.db.Query(ctx, corridorsQuery(s.corridorsTable))
	if err != nil {
		return nil, newLoadError("query", s.corridorsTable, 0, err)
	}
	corridors, err := pgx.CollectRows(rows, scanCorridor)
	if err != nil {
		return nil, newLoadError("scan", s.corridorsTable, 0, err)
	}

	b := newBuilder(s.Name())
	for i, id := range ids {
		if err := b.addSettlement(Settlement{ID: id}); err != nil {
			return nil, newLoadError("decode", s.settlementsTable, i+1, err)
		}
	}
	for i, c := range corridors {
		if err := b.addCorridor(c); err != nil {
			return nil, newLoadError("decode", s.corridorsTable, i+1, err)
		}
	}
	return b.finish()
}

// Close releases the connection pool
func (s *PostgresSource) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func scanCorridor(row pgx.CollectableRow) (Corridor, error) {
	var c Corridor
	var medium *string
	if err := row.Scan(&c.From, &c.To, &medium); err != nil {
		return Corridor{}, err
	}
	if medium != nil {
		c.Medium = *medium
	}
	return c, nil
}

func settlementsQuery(table string) string {
	return fmt.Sprintf("SELECT id FROM %s ORDER BY ordinal, id", quoteTable(table))
}

func corridorsQuery(table string) string {
	return fmt.Sprintf("SELECT from_id, to_id, medium FROM %s", quoteTable(table))
}

// quoteTable quotes an optionally schema-qualified table name
func quoteTable(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}
