// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Provides question/answer persistence with automatic schema creation

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite.
// Each write runs in its own transaction; a failed write is rolled back in
// full. The *sql.DB handle is the connection pool.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists (skip for :memory: databases)
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	// foreign_keys and busy_timeout are per-connection settings; carrying
	// them in the DSN applies them to every connection the pool opens, not
	// just the one serving the startup statements.
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// An in-memory database exists per connection; pin the pool to one so
	// every operation sees the same schema.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent performance. The journal mode
	// is persistent, so once is enough.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist.
// AUTOINCREMENT keeps ids monotonic: a deleted id is never handed out again.
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS questions (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			content TEXT NOT NULL,
			tags    TEXT
		);

		CREATE TABLE IF NOT EXISTS answers (
			id                     INTEGER PRIMARY KEY AUTOINCREMENT,
			content                TEXT NOT NULL,
			corresponding_question INTEGER NOT NULL,
			FOREIGN KEY (corresponding_question) REFERENCES questions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_answers_question
			ON answers(corresponding_question);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// encodeTags serializes tags for storage. A nil slice becomes SQL NULL so
// that "no tags" round-trips as JSON null on the wire.
func encodeTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}
	return string(data), nil
}

func decodeTags(raw sql.NullString) ([]string, error) {
	if !raw.Valid {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw.String), &tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return tags, nil
}

// AddQuestion inserts a question inside a transaction and returns the stored
// record with its generated id.
func (s *SQLiteStore) AddQuestion(ctx context.Context, nq NewQuestion) (*Question, error) {
	tags, err := encodeTags(nq.Tags)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &PersistenceError{Op: "add_question", Err: err}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO questions (title, content, tags) VALUES (?, ?, ?)`,
		nq.Title, nq.Content, tags,
	)
	if err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "add_question", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "add_question", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &PersistenceError{Op: "add_question", Err: err}
	}

	s.logger.Debug("created question", "id", id)
	return &Question{ID: id, Title: nq.Title, Content: nq.Content, Tags: nq.Tags}, nil
}

// GetQuestions returns questions in id (creation) order within the given
// window. An offset past the end yields an empty slice.
func (s *SQLiteStore) GetQuestions(ctx context.Context, page Pagination) ([]Question, error) {
	// SQLite treats LIMIT -1 as "no limit"
	limit := page.Limit
	if limit < 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, content, tags FROM questions ORDER BY id LIMIT ? OFFSET ?`,
		limit, page.Offset,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "get_questions", Err: err}
	}
	defer rows.Close()

	questions := []Question{}
	for rows.Next() {
		var q Question
		var tags sql.NullString
		if err := rows.Scan(&q.ID, &q.Title, &q.Content, &tags); err != nil {
			return nil, &PersistenceError{Op: "get_questions", Err: err}
		}
		q.Tags, err = decodeTags(tags)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "get_questions", Err: err}
	}

	return questions, nil
}

// GetQuestion retrieves a question by id.
// Returns ErrNotFound if the question doesn't exist.
func (s *SQLiteStore) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	var q Question
	var tags sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, tags FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.Title, &q.Content, &tags)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Op: "get_question", Err: err}
	}

	q.Tags, err = decodeTags(tags)
	if err != nil {
		return nil, err
	}

	return &q, nil
}

// UpdateQuestion replaces every mutable field of the question with the given
// id. Returns ErrNotFound, touching no row, if the id doesn't exist.
func (s *SQLiteStore) UpdateQuestion(ctx context.Context, id int64, nq NewQuestion) error {
	tags, err := encodeTags(nq.Tags)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "update_question", Err: err}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE questions SET title = ?, content = ?, tags = ? WHERE id = ?`,
		nq.Title, nq.Content, tags, id,
	)
	if err != nil {
		tx.Rollback()
		return &PersistenceError{Op: "update_question", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return &PersistenceError{Op: "update_question", Err: err}
	}
	if affected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "update_question", Err: err}
	}

	s.logger.Debug("updated question", "id", id)
	return nil
}

// DeleteQuestion removes the question with the given id.
// Returns ErrNotFound, touching no row, if the id doesn't exist.
func (s *SQLiteStore) DeleteQuestion(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "delete_question", Err: err}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return &PersistenceError{Op: "delete_question", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return &PersistenceError{Op: "delete_question", Err: err}
	}
	if affected == 0 {
		tx.Rollback()
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "delete_question", Err: err}
	}

	s.logger.Debug("deleted question", "id", id)
	return nil
}

// AddAnswer inserts an answer inside a transaction. A reference to a missing
// question trips the foreign-key constraint and surfaces as a
// PersistenceError carrying the engine's message.
func (s *SQLiteStore) AddAnswer(ctx context.Context, na NewAnswer) (*Answer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &PersistenceError{Op: "add_answer", Err: err}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO answers (content, corresponding_question) VALUES (?, ?)`,
		na.Content, na.CorrespondingQuestion,
	)
	if err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "add_answer", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Op: "add_answer", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return nil, &PersistenceError{Op: "add_answer", Err: err}
	}

	s.logger.Debug("created answer", "id", id, "question", na.CorrespondingQuestion)
	return &Answer{ID: id, Content: na.Content, CorrespondingQuestion: na.CorrespondingQuestion}, nil
}

// GetAnswers returns answers in id order within the given window, with the
// same pagination contract as GetQuestions.
func (s *SQLiteStore) GetAnswers(ctx context.Context, page Pagination) ([]Answer, error) {
	limit := page.Limit
	if limit < 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, corresponding_question FROM answers ORDER BY id LIMIT ? OFFSET ?`,
		limit, page.Offset,
	)
	if err != nil {
		return nil, &PersistenceError{Op: "get_answers", Err: err}
	}
	defer rows.Close()

	answers := []Answer{}
	for rows.Next() {
		var a Answer
		if err := rows.Scan(&a.ID, &a.Content, &a.CorrespondingQuestion); err != nil {
			return nil, &PersistenceError{Op: "get_answers", Err: err}
		}
		answers = append(answers, a)
	}

	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "get_answers", Err: err}
	}

	return answers, nil
}
