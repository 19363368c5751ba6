// Package persistence provides SQLite-based storage for generated plate graphs.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/plategraph/internal/tectonics"
)

// ErrRunNotFound is returned when a run id has no stored graph.
var ErrRunNotFound = errors.New("persistence: run not found")

// DB wraps a SQLite connection for plate graph persistence.
type DB struct {
	conn *sqlx.DB
}

// Run summarizes one stored synthesis.
type Run struct {
	ID            int64   `db:"id" json:"id"`
	Seed          int64   `db:"seed" json:"seed"`
	CellCount     int     `db:"cell_count" json:"cell_count"`
	PlateCount    int     `db:"plate_count" json:"plate_count"`
	MinSeparation float64 `db:"min_separation" json:"min_separation"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
}

type plateRow struct {
	RunID     int64   `db:"run_id"`
	PlateID   int     `db:"plate_id"`
	Role      uint8   `db:"role"`
	Kind      uint8   `db:"kind"`
	Pole      uint8   `db:"pole"`
	SeedCell  int     `db:"seed_cell"`
	SeedX     float64 `db:"seed_x"`
	SeedY     float64 `db:"seed_y"`
	Weight    float64 `db:"weight"`
	VelocityX float64 `db:"velocity_x"`
	VelocityY float64 `db:"velocity_y"`
	Rotation  float64 `db:"rotation"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed INTEGER NOT NULL,
		cell_count INTEGER NOT NULL,
		plate_count INTEGER NOT NULL,
		min_separation REAL NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS plates (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		plate_id INTEGER NOT NULL,
		role INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		pole INTEGER NOT NULL,
		seed_cell INTEGER NOT NULL,
		seed_x REAL NOT NULL,
		seed_y REAL NOT NULL,
		weight REAL NOT NULL,
		velocity_x REAL NOT NULL,
		velocity_y REAL NOT NULL,
		rotation REAL NOT NULL,
		PRIMARY KEY (run_id, plate_id)
	);

	CREATE TABLE IF NOT EXISTS cell_plates (
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		cell INTEGER NOT NULL,
		plate_id INTEGER NOT NULL,
		PRIMARY KEY (run_id, cell)
	);

	CREATE INDEX IF NOT EXISTS idx_cell_plates_plate ON cell_plates(run_id, plate_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun stores a plate graph and returns its run id.
func (db *DB) SaveRun(seed int64, g *tectonics.PlateGraph) (int64, error) {
	tx, err := db.conn.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO runs (seed, cell_count, plate_count, min_separation) VALUES (?, ?, ?, ?)",
		seed, len(g.CellToPlate), len(g.Plates), g.MinSeparation,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, p := range g.Plates {
		_, err := tx.NamedExec(`INSERT INTO plates
			(run_id, plate_id, role, kind, pole, seed_cell, seed_x, seed_y,
			 weight, velocity_x, velocity_y, rotation)
			VALUES (:run_id, :plate_id, :role, :kind, :pole, :seed_cell, :seed_x, :seed_y,
			 :weight, :velocity_x, :velocity_y, :rotation)`,
			plateRow{
				RunID: runID, PlateID: p.ID,
				Role: uint8(p.Role), Kind: uint8(p.Kind), Pole: uint8(p.Pole),
				SeedCell: p.SeedCell, SeedX: p.SeedX, SeedY: p.SeedY,
				Weight: p.Weight, VelocityX: p.VelocityX, VelocityY: p.VelocityY, Rotation: p.Rotation,
			})
		if err != nil {
			return 0, fmt.Errorf("insert plate %d: %w", p.ID, err)
		}
	}

	stmt, err := tx.Preparex("INSERT INTO cell_plates (run_id, cell, plate_id) VALUES (?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for cell, plate := range g.CellToPlate {
		if _, err := stmt.Exec(runID, cell, plate); err != nil {
			return 0, fmt.Errorf("insert cell %d: %w", cell, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	slog.Debug("plate graph saved", "run", runID, "cells", len(g.CellToPlate), "plates", len(g.Plates))
	return runID, nil
}

// GetRun returns the summary row for runID.
func (db *DB) GetRun(runID int64) (Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT id, seed, cell_count, plate_count, min_separation, created_at FROM runs WHERE id = ?", runID)
	if errors.Is(err, sql.ErrNoRows) {
		return run, fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	if err != nil {
		return run, fmt.Errorf("load run %d: %w", runID, err)
	}
	return run, nil
}

// LoadRun rebuilds the plate graph stored under runID.
func (db *DB) LoadRun(runID int64) (*tectonics.PlateGraph, error) {
	run, err := db.GetRun(runID)
	if err != nil {
		return nil, err
	}

	var rows []plateRow
	if err := db.conn.Select(&rows, "SELECT * FROM plates WHERE run_id = ? ORDER BY plate_id", runID); err != nil {
		return nil, fmt.Errorf("load plates: %w", err)
	}

	g := &tectonics.PlateGraph{
		CellToPlate:   make([]int, run.CellCount),
		Plates:        make([]tectonics.Plate, 0, len(rows)),
		MinSeparation: run.MinSeparation,
	}
	for _, r := range rows {
		g.Plates = append(g.Plates, tectonics.Plate{
			ID:        r.PlateID,
			Role:      tectonics.Role(r.Role),
			Kind:      tectonics.Kind(r.Kind),
			Pole:      tectonics.Pole(r.Pole),
			SeedCell:  r.SeedCell,
			SeedX:     r.SeedX,
			SeedY:     r.SeedY,
			Weight:    r.Weight,
			VelocityX: r.VelocityX,
			VelocityY: r.VelocityY,
			Rotation:  r.Rotation,
		})
	}

	cells, err := db.conn.Queryx("SELECT cell, plate_id FROM cell_plates WHERE run_id = ?", runID)
	if err != nil {
		return nil, fmt.Errorf("load cells: %w", err)
	}
	defer cells.Close()

	seen := 0
	for cells.Next() {
		var cell, plate int
		if err := cells.Scan(&cell, &plate); err != nil {
			return nil, err
		}
		if cell < 0 || cell >= run.CellCount {
			return nil, fmt.Errorf("run %d stores out-of-range cell %d", runID, cell)
		}
		g.CellToPlate[cell] = plate
		seen++
	}
	if err := cells.Err(); err != nil {
		return nil, err
	}
	if seen != run.CellCount {
		return nil, fmt.Errorf("run %d stores %d of %d cells", runID, seen, run.CellCount)
	}
	return g, nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT id, seed, cell_count, plate_count, min_separation, created_at FROM runs ORDER BY id DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// DeleteRun removes a run and everything stored under it.
func (db *DB) DeleteRun(runID int64) error {
	res, err := db.conn.Exec("DELETE FROM runs WHERE id = ?", runID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrRunNotFound, runID)
	}
	return nil
}
