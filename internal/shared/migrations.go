package shared

import (
	"database/sql"
	"embed"
	"fmt"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

// migrationName matches files such as "0001_create_downloads_up.sql".
var migrationName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+?)_(up|down)\.sql$`)

// Migration represents a database migration with up and down SQL.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// loadMigrations reads all migration files from the embedded filesystem and returns them sorted by version.
func loadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		m := migrationName.FindStringSubmatch(entry.Name())
		if entry.IsDir() || m == nil {
			continue
		}

		version, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		content, err := migrationFiles.ReadFile(path.Join("sql", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Name: m[2]}
			byVersion[version] = mig
		}
		if m[3] == "up" {
			mig.Up = string(content)
		} else {
			mig.Down = string(content)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		if mig.Up == "" || mig.Down == "" {
			return nil, fmt.Errorf("incomplete migration for version %d", mig.Version)
		}
		migrations = append(migrations, *mig)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	return migrations, nil
}

// RunMigrations executes all pending migrations, recording each in schema_migrations.
func RunMigrations(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		if mig.Version <= current {
			continue
		}
		err := inTx(db, func(tx *sql.Tx) error {
			if err := execScript(tx, mig.Up); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", mig.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", mig.Version, mig.Name, err)
		}
	}

	return nil
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(db *sql.DB) error {
	migrations, err := loadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}
	if current == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	idx := sort.Search(len(migrations), func(i int) bool { return migrations[i].Version >= current })
	if idx == len(migrations) || migrations[idx].Version != current {
		return fmt.Errorf("migration version %d not found", current)
	}
	mig := migrations[idx]

	return inTx(db, func(tx *sql.Tx) error {
		if err := execScript(tx, mig.Down); err != nil {
			return fmt.Errorf("failed to rollback migration %d: %w", mig.Version, err)
		}
		_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = ?", mig.Version)
		return err
	})
}

func currentVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

func inTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// execScript runs each ";"-separated statement of script, ignoring "--" comments.
func execScript(tx *sql.Tx, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = stripComments(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}
	return nil
}

func stripComments(stmt string) string {
	var b strings.Builder
	for _, line := range strings.Split(stmt, "\n") {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		if line = strings.TrimSpace(line); line != "" {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return strings.TrimSpace(b.String())
}
