package db

import (
	"database/sql"
	"fmt"
	"time"
)

// PostingStatus marks whether a posting attempt produced a document.
type PostingStatus string

const (
	StatusPostingApplied    PostingStatus = "applied"
	StatusPostingNotApplied PostingStatus = "not_applied"
)

// Posting is one posting attempt.
type Posting struct {
	ID             int64
	RunID          string
	Workflow       string
	ClientCode     string
	Amount         string
	DocDate        string
	Action         string
	DocumentNumber string
	Status         PostingStatus
	Detail         string
	RecordedAt     time.Time
}

// PostingHistory manages posting history operations.
type PostingHistory struct {
	conn *Connection
}

// NewPostingHistory creates a new PostingHistory instance.
func NewPostingHistory(conn *Connection) *PostingHistory {
	return &PostingHistory{conn: conn}
}

// Record stores one posting attempt.
func (h *PostingHistory) Record(p Posting) error {
	query := `
		INSERT INTO postings (run_id, workflow, client_code, amount, doc_date, action, document_number, status, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		p.RunID,
		p.Workflow,
		p.ClientCode,
		p.Amount,
		p.DocDate,
		p.Action,
		p.DocumentNumber,
		string(p.Status),
		p.Detail,
	)

	if err != nil {
		return fmt.Errorf("failed to record posting: %w", err)
	}

	return nil
}

// ListRecent returns the most recent posting attempts, newest first.
func (h *PostingHistory) ListRecent(limit int) ([]Posting, error) {
	query := `
		SELECT id, run_id, workflow, client_code, amount, doc_date, action, document_number, status, detail, recorded_at
		FROM postings
		ORDER BY recorded_at DESC, id DESC
		LIMIT ?
	`

	rows, err := h.conn.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// ListByRun returns every posting attempt made by one run, in the
// order they were recorded.
func (h *PostingHistory) ListByRun(runID string) ([]Posting, error) {
	query := `
		SELECT id, run_id, workflow, client_code, amount, doc_date, action, document_number, status, detail, recorded_at
		FROM postings
		WHERE run_id = ?
		ORDER BY id
	`

	rows, err := h.conn.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list postings by run: %w", err)
	}
	defer rows.Close()

	return scanPostings(rows)
}

// CountByStatus returns how many recorded postings carry each status.
func (h *PostingHistory) CountByStatus() (map[PostingStatus]int, error) {
	rows, err := h.conn.Query(`SELECT status, COUNT(*) FROM postings GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count postings: %w", err)
	}
	defer rows.Close()

	counts := make(map[PostingStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan posting count: %w", err)
		}
		counts[PostingStatus(status)] = count
	}

	return counts, rows.Err()
}

// FindByDocument returns the posting that produced a document number,
// or nil when no run recorded it.
func (h *PostingHistory) FindByDocument(documentNumber string) (*Posting, error) {
	query := `
		SELECT id, run_id, workflow, client_code, amount, doc_date, action, document_number, status, detail, recorded_at
		FROM postings
		WHERE document_number = ?
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	rows, err := h.conn.Query(query, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find posting: %w", err)
	}
	defer rows.Close()

	postings, err := scanPostings(rows)
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, nil
	}
	return &postings[0], nil
}

func scanPostings(rows *sql.Rows) ([]Posting, error) {
	var postings []Posting
	for rows.Next() {
		var p Posting
		var status string

		if err := rows.Scan(
			&p.ID,
			&p.RunID,
			&p.Workflow,
			&p.ClientCode,
			&p.Amount,
			&p.DocDate,
			&p.Action,
			&p.DocumentNumber,
			&status,
			&p.Detail,
			&p.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}

		p.Status = PostingStatus(status)
		postings = append(postings, p)
	}

	return postings, rows.Err()
}
