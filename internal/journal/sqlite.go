package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// FileName is the journal database kept beside the stack files.
const FileName = ".journal.db"

type Journal struct {
	db *sql.DB
}

func Open(rootDir string) (*Journal, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dbPath := filepath.Join(rootDir, FileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		op         TEXT NOT NULL,
		stack      TEXT NOT NULL,
		vars       TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_stack ON events(stack);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Record appends an event. Only variable names are stored, never values.
func (j *Journal) Record(op Op, stackName string, keys []string) (*Event, error) {
	now := time.Now().UTC()
	vars := strings.Join(keys, ",")
	res, err := j.db.Exec(
		"INSERT INTO events (op, stack, vars, created_at) VALUES (?, ?, ?, ?)",
		string(op), stackName, vars, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	id, _ := res.LastInsertId()
	return &Event{ID: id, Op: op, Stack: stackName, Vars: vars, CreatedAt: now}, nil
}

// List returns the newest events first. An empty stackName matches all stacks.
func (j *Journal) List(stackName string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	query := "SELECT id, op, stack, vars, created_at FROM events"
	args := []any{}
	if stackName != "" {
		query += " WHERE stack = ?"
		args = append(args, stackName)
	}
	query += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Op, &e.Stack, &e.Vars, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Count returns the number of events. An empty stackName counts all stacks.
func (j *Journal) Count(stackName string) (int, error) {
	query := "SELECT COUNT(*) FROM events"
	var args []any
	if stackName != "" {
		query += " WHERE stack = ?"
		args = append(args, stackName)
	}
	var count int
	err := j.db.QueryRow(query, args...).Scan(&count)
	return count, err
}
