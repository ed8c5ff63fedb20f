package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePagination_Defaults(t *testing.T) {
	page, limit, err := ParsePagination("", "")
	require.NoError(t, err)
	require.Equal(t, 1, page)
	require.Equal(t, 20, limit)
}

func TestParsePagination_ExplicitValues(t *testing.T) {
	page, limit, err := ParsePagination("3", "50")
	require.NoError(t, err)
	require.Equal(t, 3, page)
	require.Equal(t, 50, limit)

	// upper bound is inclusive
	_, limit, err = ParsePagination("1", "100")
	require.NoError(t, err)
	require.Equal(t, 100, limit)
}

func TestParsePagination_RejectsOutOfBounds(t *testing.T) {
	_, _, err := ParsePagination("0", "")
	require.ErrorIs(t, err, ErrInvalidPage)

	_, _, err = ParsePagination("-1", "")
	require.ErrorIs(t, err, ErrInvalidPage)

	_, _, err = ParsePagination("abc", "")
	require.ErrorIs(t, err, ErrInvalidPage)

	_, _, err = ParsePagination("", "0")
	require.ErrorIs(t, err, ErrInvalidLimit)

	_, _, err = ParsePagination("", "101")
	require.ErrorIs(t, err, ErrInvalidLimit)

	_, _, err = ParsePagination("", "ten")
	require.ErrorIs(t, err, ErrInvalidLimit)
}

func TestTotalPages(t *testing.T) {
	require.Equal(t, 0, TotalPages(0, 20))
	require.Equal(t, 1, TotalPages(1, 20))
	require.Equal(t, 1, TotalPages(20, 20))
	require.Equal(t, 2, TotalPages(21, 20))
	require.Equal(t, 5, TotalPages(100, 20))
}
