// ABOUTME: Pagination parsing for list endpoints
// ABOUTME: Converts raw query parameters into a validated window

package api

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/askhive/askhive/internal/store"
)

// ErrInvalidPagination is returned when limit/offset are present but cannot
// be parsed as non-negative integers. Rendered as 416.
var ErrInvalidPagination = errors.New("invalid pagination parameters")

// extractPagination turns query parameters into a validated window.
//
// Pagination applies only when both limit and offset are present; a partial
// parameter set means "no pagination requested", not an error. Bounds are
// not checked against the result set; an out-of-range window yields fewer
// (possibly zero) rows downstream.
func extractPagination(params url.Values) (store.Pagination, error) {
	if !params.Has("limit") || !params.Has("offset") {
		return store.NoPagination(), nil
	}

	limit, err := parseWindowParam(params.Get("limit"), "limit")
	if err != nil {
		return store.Pagination{}, err
	}

	offset, err := parseWindowParam(params.Get("offset"), "offset")
	if err != nil {
		return store.Pagination{}, err
	}

	return store.Pagination{Limit: limit, Offset: offset}, nil
}

func parseWindowParam(raw, name string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse %s %q as an integer", ErrInvalidPagination, name, raw)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", ErrInvalidPagination, name)
	}
	return v, nil
}
