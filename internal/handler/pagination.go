package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// parsePagination reads the page/limit query parameters. Absent values
// fall back to the defaults; values that are present but not positive
// integers are a client error.
func parsePagination(r *http.Request) (page, limit int, err error) {
	page, err = positiveQueryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveQueryInt(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func positiveQueryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("query parameter '%s' must be a positive integer", name)
	}
	return value, nil
}
