package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplySeeds runs every embedded seed whose content changed since it was last applied.
// Seeds are idempotent upserts, so a regenerated file simply re-applies.
func ApplySeeds(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_seeds (
			name       TEXT PRIMARY KEY,
			checksum   TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return nil, fmt.Errorf("create schema_seeds: %w", err)
	}

	names, err := sqlFileNames(migrationsFS, "seeds")
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		body, err := migrationsFS.ReadFile("seeds/" + name)
		if err != nil {
			return applied, fmt.Errorf("read seed %s: %w", name, err)
		}
		if isBlankSQL(string(body)) {
			continue
		}
		sum := checksum(body)
		var current string
		err = pool.QueryRow(ctx, `SELECT checksum FROM schema_seeds WHERE name = $1`, name).Scan(&current)
		if err != nil && !isNoRows(err) {
			return applied, fmt.Errorf("check seed %s: %w", name, err)
		}
		if current == sum {
			continue
		}
		if err := applySeed(ctx, pool, name, sum, string(body)); err != nil {
			return applied, err
		}
		applied = append(applied, name)
	}
	return applied, nil
}

func applySeed(ctx context.Context, pool *pgxpool.Pool, name, sum, body string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("apply seed %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO schema_seeds (name, checksum) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET checksum = EXCLUDED.checksum, applied_at = now()`, name, sum); err != nil {
		return fmt.Errorf("record seed %s: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed %s: %w", name, err)
	}
	return nil
}

func checksum(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// isBlankSQL reports whether body holds only whitespace and -- comments.
func isBlankSQL(body string) bool {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}

func sqlFileNames(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
