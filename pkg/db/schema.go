// Package db provides SQLite storage for the posting history: every
// payment the tool attempts to post is recorded here, successful or
// not, so a run can be audited after the fact.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Posting history table
-- One row per posting attempt, keyed by the run that made it.
CREATE TABLE IF NOT EXISTS postings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,              -- UUID of the tool run
    workflow TEXT NOT NULL,            -- 'daily', 'promissory' or 'batch'
    client_code TEXT NOT NULL,
    amount TEXT NOT NULL,              -- Decimal string, two places
    doc_date TEXT NOT NULL,            -- DD.MM.YYYY as entered in the terminal
    action TEXT,                       -- Posting recipe for daily rows
    document_number TEXT,              -- Empty when the posting failed
    status TEXT NOT NULL,              -- 'applied' or 'not_applied'
    detail TEXT,                       -- Error text for failed postings
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_postings_run
    ON postings(run_id);

CREATE INDEX IF NOT EXISTS idx_postings_client
    ON postings(client_code);

CREATE INDEX IF NOT EXISTS idx_postings_document
    ON postings(document_number);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
