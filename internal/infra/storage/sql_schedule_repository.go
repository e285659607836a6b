package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"organist_rotation/internal/domain/roster"
)

// Dialect selects the bind-parameter style of the SQL driver.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

const createEntriesTable = `CREATE TABLE IF NOT EXISTS roster_entries (
	seq           INTEGER PRIMARY KEY,
	entry_date    TEXT NOT NULL,
	weekday_label TEXT NOT NULL,
	slot_label    TEXT NOT NULL,
	assignee      TEXT NOT NULL
)`

// SQLScheduleRepository stores the schedule in the roster_entries table. The
// table holds exactly one schedule; Replace swaps it inside a transaction.
type SQLScheduleRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLScheduleRepository(db *sql.DB, dialect Dialect) *SQLScheduleRepository {
	return &SQLScheduleRepository{db: db, dialect: dialect}
}

// EnsureSchema creates the entries table if it does not exist yet.
func (r *SQLScheduleRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEntriesTable); err != nil {
		return fmt.Errorf("error creating roster_entries table: %w", err)
	}
	return nil
}

func (r *SQLScheduleRepository) Replace(ctx context.Context, s roster.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback() // ignored after Commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_entries`); err != nil {
		return fmt.Errorf("error clearing schedule: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, r.rebind(
		`INSERT INTO roster_entries (seq, entry_date, weekday_label, slot_label, assignee)
		 VALUES (?, ?, ?, ?, ?)`))
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range toRecords(s) {
		if _, err := stmt.ExecContext(ctx, i, rec.Date, rec.WeekdayLabel, rec.SlotLabel, rec.Assignee); err != nil {
			return fmt.Errorf("error inserting entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing schedule: %w", err)
	}
	return nil
}

func (r *SQLScheduleRepository) Load(ctx context.Context) (roster.Schedule, error) {
	query := `SELECT entry_date, weekday_label, slot_label, assignee
               FROM roster_entries ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing schedule entries: %w", err)
	}
	defer rows.Close()

	recs := make([]entryRecord, 0)
	for rows.Next() {
		var rec entryRecord
		if err := rows.Scan(&rec.Date, &rec.WeekdayLabel, &rec.SlotLabel, &rec.Assignee); err != nil {
			return nil, fmt.Errorf("error scanning schedule entry: %w", err)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule entries: %w", err)
	}
	return fromRecords(recs)
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (r *SQLScheduleRepository) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
