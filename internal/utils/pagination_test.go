// internal/utils/pagination_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, NormalizePage(0))
	assert.Equal(t, 1, NormalizePage(-3))
	assert.Equal(t, 1, NormalizePage(1))
	assert.Equal(t, 42, NormalizePage(42))
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, 20, NormalizeLimit(0))
	assert.Equal(t, 20, NormalizeLimit(-1))
	assert.Equal(t, 20, NormalizeLimit(101))
	assert.Equal(t, 1, NormalizeLimit(1))
	assert.Equal(t, 100, NormalizeLimit(100))
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 20}
	result := CreatePaginationResult([]string{"a"}, 45, &params)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}

func TestCreatePaginationResultExactFit(t *testing.T) {
	params := PaginationParams{Page: 1, Limit: 10}
	result := CreatePaginationResult(nil, 40, &params)
	assert.Equal(t, 4, result.TotalPages)
}
