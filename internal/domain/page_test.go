package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/travelplanner/backend/internal/domain"
)

func ptr(n int) *int { return &n }

func TestNewPaginationParams(t *testing.T) {
	tests := []struct {
		name       string
		page       *int
		limit      *int
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "explicit", page: ptr(3), limit: ptr(10), wantPage: 3, wantLimit: 10, wantOffset: 20},
		{name: "non-positive falls back", page: ptr(0), limit: ptr(-5), wantPage: 1, wantLimit: 20, wantOffset: 0},
		{name: "limit capped", page: ptr(2), limit: ptr(500), wantPage: 2, wantLimit: 100, wantOffset: 100},
		{name: "huge page clamped", page: ptr(math.MaxInt), limit: ptr(100), wantPage: domain.MaxPage, wantLimit: 100, wantOffset: (domain.MaxPage - 1) * 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := domain.NewPaginationParams(tc.page, tc.limit)

			assert.Equal(t, tc.wantPage, p.Page)
			assert.Equal(t, tc.wantLimit, p.Limit)
			assert.Equal(t, tc.wantOffset, p.Offset())
			assert.GreaterOrEqual(t, p.Offset(), 0)
		})
	}
}

func TestPaginationParams_TotalPages(t *testing.T) {
	p := domain.PaginationParams{Page: 1, Limit: 10}

	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 3, p.TotalPages(21))
}
