package sink

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// headerRow is the row index under which column names are stored.
const headerRow = -1

// SQLiteSink stores tables in a SQLite database as one flat table of cells,
// keyed by source name, so several series can share a database file.
type SQLiteSink struct {
	db     *sql.DB
	source string
	mu     sync.Mutex
}

// NewSQLiteSink opens (or creates) the SQLite database and runs migrations.
func NewSQLiteSink(dbPath, source string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteSink{db: db, source: source}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite sink opened: %s (source %s)", dbPath, source)
	return s, nil
}

func (s *SQLiteSink) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS series_cells (
			source   TEXT    NOT NULL,
			row_idx  INTEGER NOT NULL,
			col_idx  INTEGER NOT NULL,
			value    TEXT    NOT NULL,
			PRIMARY KEY (source, row_idx, col_idx)
		)`,
	}
	for _, st := range stmts {
		if _, err := s.db.Exec(st); err != nil {
			return fmt.Errorf("exec %q: %w", st[:40], err)
		}
	}
	return nil
}

func (s *SQLiteSink) Name() string { return "sqlite:" + s.source }

func (s *SQLiteSink) Read() (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT row_idx, col_idx, value FROM series_cells
		WHERE source = ? ORDER BY row_idx, col_idx`, s.source)
	if err != nil {
		return nil, fmt.Errorf("query cells: %w", err)
	}
	defer rows.Close()

	t := &Table{}
	current := headerRow - 1
	for rows.Next() {
		var rowIdx, colIdx int
		var value string
		if err := rows.Scan(&rowIdx, &colIdx, &value); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		if rowIdx == headerRow {
			t.Header = append(t.Header, value)
			continue
		}
		if rowIdx != current {
			t.Rows = append(t.Rows, make([]string, 0, len(t.Header)))
			current = rowIdx
		}
		last := len(t.Rows) - 1
		t.Rows[last] = append(t.Rows[last], value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells: %w", err)
	}
	if len(t.Header) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Name(), ErrSourceNotFound)
	}
	return t, nil
}

// Write replaces every stored cell of the source in a single transaction.
func (s *SQLiteSink) Write(t *Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM series_cells WHERE source = ?`, s.source); err != nil {
		return fmt.Errorf("clear cells: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO series_cells (source, row_idx, col_idx, value) VALUES (?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for j, name := range t.Header {
		if _, err := stmt.Exec(s.source, headerRow, j, name); err != nil {
			return fmt.Errorf("insert header: %w", err)
		}
	}
	for i, row := range t.Rows {
		for j, v := range row {
			if _, err := stmt.Exec(s.source, i, j, v); err != nil {
				return fmt.Errorf("insert row %d: %w", i, err)
			}
		}
	}
	return tx.Commit()
}

func (s *SQLiteSink) Close() error {
	log.Println("[INFO] closing sqlite sink")
	return s.db.Close()
}
