package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed sql/*.sql
var migrationsFS embed.FS

// Migrate applies pending migrations in version order. Each file runs as one
// batch, which needs multiStatements in the DSN; Open sets it.
func (s *Store) Migrate(ctx context.Context) error {
	if err := ensureMigrationsTable(ctx, s.db); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := migrationFiles()
	if err != nil {
		return err
	}

	applied, err := loadApplied(ctx, s.db)
	if err != nil {
		return fmt.Errorf("failed to load applied migrations: %w", err)
	}

	for _, f := range files {
		base := filepath.Base(f)
		ver, err := parseMigrationVersion(base)
		if err != nil {
			return fmt.Errorf("invalid migration filename %q: %w", base, err)
		}
		if applied[ver] {
			s.logger.Debug().Int("version", ver).Str("file", base).Msg("Migration already applied")
			continue
		}

		b, err := fs.ReadFile(migrationsFS, f)
		if err != nil {
			return err
		}
		s.logger.Info().Int("version", ver).Str("file", base).Msg("Applying migration")
		if _, err := s.db.ExecContext(ctx, string(b)); err != nil {
			return fmt.Errorf("applying %s: %w", base, err)
		}
		if err := recordApplied(ctx, s.db, ver); err != nil {
			return err
		}
	}
	return nil
}

func migrationFiles() ([]string, error) {
	files, err := fs.Glob(migrationsFS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	const ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version BIGINT PRIMARY KEY,
		applied_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB;`
	_, err := db.ExecContext(ctx, ddl)
	return err
}

func loadApplied(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[int]bool)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		m[v] = true
	}
	return m, rows.Err()
}

func recordApplied(ctx context.Context, db *sql.DB, version int) error {
	_, err := db.ExecContext(ctx, "INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)", version, time.Now().UTC())
	return err
}

// parseMigrationVersion reads the numeric prefix of names like 0001_init.sql.
func parseMigrationVersion(name string) (int, error) {
	i := strings.IndexByte(name, '_')
	if i <= 0 {
		return 0, fmt.Errorf("missing prefix number")
	}
	return strconv.Atoi(name[:i])
}
