package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/threadline/pkg/chatlist"
	"github.com/vanderheijden86/threadline/pkg/model"
)

// SQLiteStore provides snapshot reads (and optional writes) over a
// threadline SQLite database. Each Read runs inside one read-only
// transaction, so the membership a load cycle sees is point-in-time
// consistent even with concurrent writers.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens a thread database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	// Read-performance pragmas; failures are non-fatal.
	pragmas := []string{
		"PRAGMA cache_size = -16000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		db.Exec(pragma)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Read runs fn inside one read-only snapshot transaction.
func (s *SQLiteStore) Read(fn func(chatlist.ThreadReader) error) error {
	tx, err := s.db.BeginTx(context.Background(), &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return fmt.Errorf("begin read transaction: %w", err)
	}
	defer tx.Rollback()
	return fn(&txReader{tx: tx})
}

// txReader implements chatlist.ThreadReader over one open transaction.
type txReader struct {
	tx *sql.Tx
}

// Threads reads the full thread membership visible to the transaction.
func (r *txReader) Threads() ([]model.Thread, error) {
	query := `
		SELECT
			id, title, preview, last_activity, pinned, pinned_at,
			archived, unread, muted, labels, participants
		FROM threads
		ORDER BY last_activity DESC
	`
	rows, err := r.tx.Query(query)
	if err != nil {
		// Older databases may lack the optional columns.
		return r.threadsSimple()
	}
	defer rows.Close()

	var threads []model.Thread
	for rows.Next() {
		var t model.Thread
		var preview, labelsJSON, participantsJSON sql.NullString
		var lastActivity, pinnedAt sql.NullTime
		var pinned, archived, muted sql.NullBool
		var unread sql.NullInt64

		err := rows.Scan(
			&t.ID, &t.Title, &preview, &lastActivity, &pinned, &pinnedAt,
			&archived, &unread, &muted, &labelsJSON, &participantsJSON,
		)
		if err != nil {
			continue
		}

		if preview.Valid {
			t.Preview = preview.String
		}
		if lastActivity.Valid {
			t.LastActivity = lastActivity.Time
		}
		t.Pinned = pinned.Valid && pinned.Bool
		if pinnedAt.Valid {
			t.PinnedAt = pinnedAt.Time
		}
		t.Archived = archived.Valid && archived.Bool
		if unread.Valid {
			t.Unread = int(unread.Int64)
		}
		t.Muted = muted.Valid && muted.Bool
		if labelsJSON.Valid {
			t.Labels = parseJSONStringArray(labelsJSON.String)
		}
		if participantsJSON.Valid {
			t.Participants = parseJSONStringArray(participantsJSON.String)
		}

		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating threads: %w", err)
	}
	return threads, nil
}

// threadsSimple is a fallback for databases with fewer columns.
func (r *txReader) threadsSimple() ([]model.Thread, error) {
	query := `
		SELECT id, title, last_activity, pinned, archived, unread
		FROM threads
		ORDER BY last_activity DESC
	`
	rows, err := r.tx.Query(query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var threads []model.Thread
	for rows.Next() {
		var t model.Thread
		var lastActivity sql.NullTime
		var pinned, archived sql.NullBool
		var unread sql.NullInt64

		if err := rows.Scan(&t.ID, &t.Title, &lastActivity, &pinned, &archived, &unread); err != nil {
			continue
		}
		if lastActivity.Valid {
			t.LastActivity = lastActivity.Time
		}
		t.Pinned = pinned.Valid && pinned.Bool
		if t.Pinned {
			t.PinnedAt = t.LastActivity
		}
		t.Archived = archived.Valid && archived.Bool
		if unread.Valid {
			t.Unread = int(unread.Int64)
		}
		threads = append(threads, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating threads: %w", err)
	}
	return threads, nil
}

// CountThreads returns the number of threads, used during validation.
func (s *SQLiteStore) CountThreads() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM threads").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SetPinned pins or unpins a thread.
func (s *SQLiteStore) SetPinned(id string, pinned bool) error {
	var pinnedAt any
	if pinned {
		pinnedAt = time.Now().UTC()
	}
	_, err := s.db.Exec("UPDATE threads SET pinned = ?, pinned_at = ? WHERE id = ?", pinned, pinnedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update pin state for %s: %w", id, err)
	}
	return nil
}

// SetArchived archives or unarchives a thread.
func (s *SQLiteStore) SetArchived(id string, archived bool) error {
	_, err := s.db.Exec("UPDATE threads SET archived = ? WHERE id = ?", archived, id)
	if err != nil {
		return fmt.Errorf("failed to update archive state for %s: %w", id, err)
	}
	return nil
}

// MarkRead clears the unread count of a thread.
func (s *SQLiteStore) MarkRead(id string) error {
	_, err := s.db.Exec("UPDATE threads SET unread = 0 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to mark %s read: %w", id, err)
	}
	return nil
}

// parseJSONStringArray parses a JSON array of strings, falling back to a
// naive split for malformed data.
func parseJSONStringArray(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" || s == "[]" {
		return nil
	}
	var result []string
	if err := json.Unmarshal([]byte(s), &result); err != nil {
		s = strings.TrimPrefix(s, "[")
		s = strings.TrimSuffix(s, "]")
		for _, item := range strings.Split(s, ",") {
			item = strings.Trim(strings.TrimSpace(item), `"`)
			if item != "" {
				result = append(result, item)
			}
		}
	}
	return result
}
