// Package benchdb persists benchmark results to a SQLite database so
// kernel timings can be compared across commits and machines.
//
// The schema is append-only: one row per run plus one row per measured
// implementation version. Readers are expected to be ad-hoc (sqlite3 CLI,
// plotting scripts); no query API is provided here.
package benchdb

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one measured implementation version.
type Entry struct {
	Name       string
	Suffix     string
	DeciTicks  int
	Iterations int
}

// Run is one completed benchmark run.
type Run struct {
	ID       string
	Seed     uint32
	Flags    uint32
	Overhead int
	When     time.Time
	Entries  []Entry
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	seed       INTEGER NOT NULL,
	flags      INTEGER NOT NULL,
	overhead   INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	suffix     TEXT NOT NULL,
	deci_ticks INTEGER NOT NULL,
	iterations INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS results_name ON results(name, suffix);
`

// Append opens (creating if necessary) the database at path and records
// run. Re-appending a run with an identical ID replaces its rows, which
// makes repeated identical invocations idempotent.
func Append(path string, run Run) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM results WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO runs (id, seed, flags, overhead, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Seed, run.Flags, run.Overhead, run.When.UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(
		`INSERT INTO results (run_id, name, suffix, deci_ticks, iterations) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range run.Entries {
		if _, err := stmt.Exec(run.ID, e.Name, e.Suffix, e.DeciTicks, e.Iterations); err != nil {
			return err
		}
	}

	return tx.Commit()
}
