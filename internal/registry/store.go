// Package registry persists processed issues and their parsed acts in
// a local SQLite database, so acts can be looked up by citation
// without re-parsing the issue.
package registry

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lawtext/gazette/internal/act"
	"github.com/lawtext/gazette/internal/reference"
)

const schema = `
CREATE TABLE IF NOT EXISTS issues (
	year          INTEGER NOT NULL,
	number        INTEGER NOT NULL,
	run_id        TEXT NOT NULL,
	processed_at  TEXT NOT NULL,
	act_count     INTEGER NOT NULL,
	degradations  INTEGER NOT NULL,
	PRIMARY KEY (year, number)
);

CREATE TABLE IF NOT EXISTS acts (
	year          INTEGER NOT NULL,
	serial        TEXT NOT NULL,
	issue_year    INTEGER NOT NULL,
	issue_number  INTEGER NOT NULL,
	subject       TEXT,
	published     TEXT,
	body_json     TEXT NOT NULL,
	PRIMARY KEY (year, serial),
	FOREIGN KEY (issue_year, issue_number) REFERENCES issues(year, number)
);
`

// IssueRecord is one processed issue row.
type IssueRecord struct {
	Year         int       `json:"year"`
	Number       int       `json:"number"`
	RunID        string    `json:"run_id"`
	ProcessedAt  time.Time `json:"processed_at"`
	ActCount     int       `json:"act_count"`
	Degradations int       `json:"degradations"`
}

// ActRecord is one stored act, with its tree kept as rendered JSON.
type ActRecord struct {
	ID        reference.ActID `json:"id"`
	Issue     [2]int          `json:"issue"` // year, number
	Subject   string          `json:"subject,omitempty"`
	Published time.Time       `json:"published"`
	Body      json.RawMessage `json:"body"`
}

// Store manages the issue and act tables.
type Store struct {
	db *sql.DB
}

// NewStore opens the database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutRun stores one processed issue and its acts atomically,
// replacing any earlier run of the same issue.
func (s *Store) PutRun(rec IssueRecord, acts []*act.Act) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO issues (year, number, run_id, processed_at, act_count, degradations)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(year, number) DO UPDATE SET
		   run_id = excluded.run_id,
		   processed_at = excluded.processed_at,
		   act_count = excluded.act_count,
		   degradations = excluded.degradations`,
		rec.Year, rec.Number, rec.RunID,
		rec.ProcessedAt.UTC().Format(time.RFC3339), rec.ActCount, rec.Degradations,
	)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}

	for _, a := range acts {
		body, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshal act %s: %w", a.ID, err)
		}
		var published any
		if !a.Published.IsZero() {
			published = a.Published.Format(time.DateOnly)
		}
		_, err = tx.Exec(
			`INSERT INTO acts (year, serial, issue_year, issue_number, subject, published, body_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(year, serial) DO UPDATE SET
			   issue_year = excluded.issue_year,
			   issue_number = excluded.issue_number,
			   subject = excluded.subject,
			   published = excluded.published,
			   body_json = excluded.body_json`,
			a.ID.Year, a.ID.Serial, rec.Year, rec.Number,
			a.Subject, published, string(body),
		)
		if err != nil {
			return fmt.Errorf("insert act %s: %w", a.ID, err)
		}
	}
	return tx.Commit()
}

// GetAct retrieves one stored act by its identity.
func (s *Store) GetAct(id reference.ActID) (ActRecord, error) {
	row := s.db.QueryRow(
		`SELECT year, serial, issue_year, issue_number, subject, published, body_json
		 FROM acts WHERE year = ? AND serial = ?`,
		id.Year, id.Serial,
	)
	return scanAct(row)
}

// ActsOfIssue returns every act stored for one issue, in serial order.
func (s *Store) ActsOfIssue(year, number int) ([]ActRecord, error) {
	rows, err := s.db.Query(
		`SELECT year, serial, issue_year, issue_number, subject, published, body_json
		 FROM acts WHERE issue_year = ? AND issue_number = ?
		 ORDER BY rowid`,
		year, number,
	)
	if err != nil {
		return nil, fmt.Errorf("query acts: %w", err)
	}
	defer rows.Close()

	var out []ActRecord
	for rows.Next() {
		rec, err := scanAct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Issues returns every processed issue, newest first.
func (s *Store) Issues() ([]IssueRecord, error) {
	rows, err := s.db.Query(
		`SELECT year, number, run_id, processed_at, act_count, degradations
		 FROM issues ORDER BY year DESC, number DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var out []IssueRecord
	for rows.Next() {
		var rec IssueRecord
		var processed string
		if err := rows.Scan(&rec.Year, &rec.Number, &rec.RunID,
			&processed, &rec.ActCount, &rec.Degradations); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		rec.ProcessedAt, _ = time.Parse(time.RFC3339, processed)
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAct(row scanner) (ActRecord, error) {
	var rec ActRecord
	var subject, published sql.NullString
	var body string
	err := row.Scan(&rec.ID.Year, &rec.ID.Serial,
		&rec.Issue[0], &rec.Issue[1], &subject, &published, &body)
	if err != nil {
		return ActRecord{}, fmt.Errorf("scan act: %w", err)
	}
	if subject.Valid {
		rec.Subject = subject.String
	}
	if published.Valid {
		rec.Published, _ = time.Parse(time.DateOnly, published.String)
	}
	rec.Body = json.RawMessage(body)
	return rec, nil
}
