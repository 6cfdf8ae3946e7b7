package benchdb

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

// openOrSkip skips the test when the sqlite3 driver is unavailable
// (CGO-less builds).
func openOrSkip(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Skipf("sqlite3 driver unavailable: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("sqlite3 unavailable: %v", err)
	}
	return db
}

func testRun(id string) Run {
	return Run{
		ID:       id,
		Seed:     42,
		Flags:    3,
		Overhead: 17,
		When:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries: []Entry{
			{Name: "blend_bitmaps", Suffix: "c", DeciTicks: 120, Iterations: 999},
			{Name: "blend_bitmaps", Suffix: "avx2", DeciTicks: 35, Iterations: 999},
		},
	}
}

func TestAppendCreatesAndWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	db := openOrSkip(t, path)
	db.Close()

	if err := Append(path, testRun("run-1")); err != nil {
		t.Fatalf("Append: %v", err)
	}

	db = openOrSkip(t, path)
	defer db.Close()

	var runs, results int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatalf("counting runs: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&results); err != nil {
		t.Fatalf("counting results: %v", err)
	}
	if runs != 1 || results != 2 {
		t.Errorf("got %d runs / %d results, want 1 / 2", runs, results)
	}

	var deci int
	err := db.QueryRow(
		`SELECT deci_ticks FROM results WHERE name = ? AND suffix = ?`,
		"blend_bitmaps", "avx2").Scan(&deci)
	if err != nil {
		t.Fatalf("querying result: %v", err)
	}
	if deci != 35 {
		t.Errorf("deci_ticks = %d, want 35", deci)
	}
}

func TestAppendIsIdempotentPerRunID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	db := openOrSkip(t, path)
	db.Close()

	if err := Append(path, testRun("run-x")); err != nil {
		t.Fatalf("first Append: %v", err)
	}
	if err := Append(path, testRun("run-x")); err != nil {
		t.Fatalf("second Append: %v", err)
	}

	db = openOrSkip(t, path)
	defer db.Close()

	var results int
	if err := db.QueryRow(`SELECT COUNT(*) FROM results`).Scan(&results); err != nil {
		t.Fatalf("counting results: %v", err)
	}
	if results != 2 {
		t.Errorf("got %d results after double append, want 2", results)
	}
}

func TestAppendSeparateRunsAccumulate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	db := openOrSkip(t, path)
	db.Close()

	if err := Append(path, testRun("run-a")); err != nil {
		t.Fatalf("Append run-a: %v", err)
	}
	if err := Append(path, testRun("run-b")); err != nil {
		t.Fatalf("Append run-b: %v", err)
	}

	db = openOrSkip(t, path)
	defer db.Close()

	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatalf("counting runs: %v", err)
	}
	if runs != 2 {
		t.Errorf("got %d runs, want 2", runs)
	}
}
