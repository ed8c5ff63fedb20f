package utils

import (
	"errors"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

var (
	ErrInvalidPage  = errors.New("page must be a positive integer")
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")
)

// ParsePagination validates the page/limit query parameters. Empty strings
// fall back to the defaults; anything else outside the bounds is rejected.
func ParsePagination(pageStr, limitStr string) (page, limit int, err error) {
	page = defaultPage
	if pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return 0, 0, ErrInvalidPage
		}
	}

	limit = defaultLimit
	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, ErrInvalidLimit
		}
	}

	return page, limit, nil
}

// TotalPages is ceil(total/limit); zero when the table is empty.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
