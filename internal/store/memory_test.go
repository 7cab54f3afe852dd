// ABOUTME: Tests for the in-memory store implementation
// ABOUTME: Covers detached copies and reader/writer behavior

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_ReturnsDetachedCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.AddQuestion(ctx, NewQuestion{
		Title:   "original",
		Content: "c",
		Tags:    []string{"a"},
	})
	require.NoError(t, err)

	// Mutating the returned value must not affect stored state
	created.Title = "mutated"
	created.Tags[0] = "mutated"

	got, err := s.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
	assert.Equal(t, []string{"a"}, got.Tags)

	// Same for values handed out by reads
	got.Title = "mutated again"
	again, err := s.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", again.Title)
}

func TestMemoryStore_InputSliceNotAliased(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tags := []string{"x"}
	created, err := s.AddQuestion(ctx, NewQuestion{Title: "t", Content: "c", Tags: tags})
	require.NoError(t, err)

	tags[0] = "changed"

	got, err := s.GetQuestion(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestMemoryStore_ConcurrentReaders(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.AddQuestion(ctx, NewQuestion{Title: "t", Content: "c"})
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				if _, err := s.GetQuestions(ctx, NoPagination()); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
