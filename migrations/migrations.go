package migrations

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/cbo-rewards/loyalty/internal/logger"
	"github.com/jmoiron/sqlx"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

// Script is one ordered schema file
type Script struct {
	Name string
	SQL  string
}

// Postgres returns the schema scripts in apply order
func Postgres() ([]Script, error) {
	names, err := fs.Glob(postgresFS, "postgres/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	scripts := make([]Script, 0, len(names))
	for _, name := range names {
		body, err := postgresFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, Script{Name: name, SQL: string(body)})
	}
	return scripts, nil
}

// Apply runs every script inside one transaction. The scripts are written
// to be idempotent so re-running them is safe.
func Apply(ctx context.Context, db *sqlx.DB, log *logger.Logger) error {
	scripts, err := Postgres()
	if err != nil {
		return err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, s := range scripts {
		log.Infow("applying migration", "script", s.Name)
		if _, err := tx.ExecContext(ctx, s.SQL); err != nil {
			return err
		}
	}
	return tx.Commit()
}
