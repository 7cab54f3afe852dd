// ABOUTME: Tests for pagination parameter parsing
// ABOUTME: Covers both-present, either-absent, and malformed inputs

package api

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askhive/askhive/internal/store"
)

func TestExtractPagination(t *testing.T) {
	cases := []struct {
		name  string
		query string
		want  store.Pagination
	}{
		{"both present", "limit=10&offset=5", store.Pagination{Limit: 10, Offset: 5}},
		{"both zero", "limit=0&offset=0", store.Pagination{Limit: 0, Offset: 0}},
		{"limit only", "limit=10", store.NoPagination()},
		{"offset only", "offset=5", store.NoPagination()},
		{"neither", "", store.NoPagination()},
		{"unrelated params", "q=ignored", store.NoPagination()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			got, err := extractPagination(params)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractPagination_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"limit not a number", "limit=abc&offset=0"},
		{"offset not a number", "limit=1&offset=xyz"},
		{"negative limit", "limit=-1&offset=0"},
		{"negative offset", "limit=1&offset=-3"},
		{"empty limit value", "limit=&offset=0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			_, err = extractPagination(params)
			assert.ErrorIs(t, err, ErrInvalidPagination)
		})
	}
}
