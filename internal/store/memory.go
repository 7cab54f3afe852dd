// ABOUTME: In-memory implementation of the Store interface
// ABOUTME: Process-local tables guarded for multi-reader/single-writer access

package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is a process-local Store implementation. Any number of readers
// may proceed concurrently; a writer has exclusive access for the duration
// of its operation. Ids are monotonic and never reused after delete.
type MemoryStore struct {
	mu             sync.RWMutex
	questions      map[int64]*Question
	answers        map[int64]*Answer
	nextQuestionID int64
	nextAnswerID   int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		questions:      make(map[int64]*Question),
		answers:        make(map[int64]*Answer),
		nextQuestionID: 1,
		nextAnswerID:   1,
	}
}

func copyQuestion(q *Question) *Question {
	c := *q
	if q.Tags != nil {
		c.Tags = append([]string(nil), q.Tags...)
	}
	return &c
}

// AddQuestion stores a new question and returns it with its assigned id.
func (m *MemoryStore) AddQuestion(ctx context.Context, nq NewQuestion) (*Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := &Question{
		ID:      m.nextQuestionID,
		Title:   nq.Title,
		Content: nq.Content,
	}
	if nq.Tags != nil {
		q.Tags = append([]string(nil), nq.Tags...)
	}
	m.nextQuestionID++
	m.questions[q.ID] = q

	return copyQuestion(q), nil
}

// GetQuestions returns questions in id (creation) order within the given
// window. An offset past the end yields an empty slice.
func (m *MemoryStore) GetQuestions(ctx context.Context, page Pagination) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.questions))
	for id := range m.questions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ids = window(ids, page)

	questions := make([]Question, 0, len(ids))
	for _, id := range ids {
		questions = append(questions, *copyQuestion(m.questions[id]))
	}
	return questions, nil
}

// window applies the pagination window to an ordered id list.
func window(ids []int64, page Pagination) []int64 {
	if page.Offset >= len(ids) {
		return nil
	}
	ids = ids[page.Offset:]
	if page.Limit >= 0 && len(ids) > page.Limit {
		ids = ids[:page.Limit]
	}
	return ids
}

// GetQuestion retrieves a question by id.
// Returns ErrNotFound if the question doesn't exist.
func (m *MemoryStore) GetQuestion(ctx context.Context, id int64) (*Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.questions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyQuestion(q), nil
}

// UpdateQuestion replaces every mutable field of the question with the given
// id. Returns ErrNotFound, touching nothing, if the id doesn't exist.
func (m *MemoryStore) UpdateQuestion(ctx context.Context, id int64, nq NewQuestion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[id]; !ok {
		return ErrNotFound
	}

	q := &Question{
		ID:      id,
		Title:   nq.Title,
		Content: nq.Content,
	}
	if nq.Tags != nil {
		q.Tags = append([]string(nil), nq.Tags...)
	}
	m.questions[id] = q

	return nil
}

// DeleteQuestion removes the question with the given id. The id is not
// reused for later additions.
func (m *MemoryStore) DeleteQuestion(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.questions[id]; !ok {
		return ErrNotFound
	}
	delete(m.questions, id)

	return nil
}

// AddAnswer stores a new answer and returns it with its assigned id.
func (m *MemoryStore) AddAnswer(ctx context.Context, na NewAnswer) (*Answer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := &Answer{
		ID:                    m.nextAnswerID,
		Content:               na.Content,
		CorrespondingQuestion: na.CorrespondingQuestion,
	}
	m.nextAnswerID++
	m.answers[a.ID] = a

	result := *a
	return &result, nil
}

// GetAnswers returns answers in id order within the given window.
func (m *MemoryStore) GetAnswers(ctx context.Context, page Pagination) ([]Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.answers))
	for id := range m.answers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ids = window(ids, page)

	answers := make([]Answer, 0, len(ids))
	for _, id := range ids {
		answers = append(answers, *m.answers[id])
	}
	return answers, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
