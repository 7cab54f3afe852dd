// ABOUTME: Store interface and data types for the askhive question catalogue
// ABOUTME: Defines Question, Answer structs and the Store interface for persistence

package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// PersistenceError wraps a backing-engine failure (constraint violation,
// I/O error). The engine's own message is surfaced verbatim to callers.
type PersistenceError struct {
	Op  string // operation that failed, e.g. "add_answer"
	Err error
}

func (e *PersistenceError) Error() string { return e.Err.Error() }

func (e *PersistenceError) Unwrap() error { return e.Err }

// Question is a catalogue entry. The ID is a surrogate key assigned by the
// store on creation and immutable thereafter. A nil Tags slice serializes
// as JSON null.
type Question struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NewQuestion is the payload accepted by create and update. It has no ID
// field: ids are never supplied by clients, and update is a whole-record
// replace keyed by the id in the request path.
type NewQuestion struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Answer is attached to a question by its id. Answers are append-only;
// there is no update or delete.
type Answer struct {
	ID                    int64  `json:"id"`
	Content               string `json:"content"`
	CorrespondingQuestion int64  `json:"corresponding_question"`
}

// NewAnswer is the payload accepted by answer creation.
type NewAnswer struct {
	Content               string `json:"content"`
	CorrespondingQuestion int64  `json:"corresponding_question"`
}

// Pagination selects a contiguous window of an ordered result set.
// A negative Limit means unbounded (everything from Offset to the end).
// An Offset beyond the available count yields an empty result, never an
// error.
type Pagination struct {
	Limit  int
	Offset int
}

// NoPagination is the window covering the full result set.
func NoPagination() Pagination {
	return Pagination{Limit: -1, Offset: 0}
}

// Store defines the interface for question and answer persistence.
//
// Writes are atomic: on any failure the backing state is left untouched.
// Values returned by reads are detached copies; mutating them has no effect
// on stored state until passed back through UpdateQuestion.
type Store interface {
	// Questions
	AddQuestion(ctx context.Context, nq NewQuestion) (*Question, error)
	GetQuestions(ctx context.Context, page Pagination) ([]Question, error)
	GetQuestion(ctx context.Context, id int64) (*Question, error)
	UpdateQuestion(ctx context.Context, id int64, nq NewQuestion) error
	DeleteQuestion(ctx context.Context, id int64) error

	// Answers (append-only)
	AddAnswer(ctx context.Context, na NewAnswer) (*Answer, error)
	GetAnswers(ctx context.Context, page Pagination) ([]Answer, error)

	// Close releases any resources held by the store
	Close() error
}
