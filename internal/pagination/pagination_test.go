package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = strconv.Itoa(i)
	}
	return items
}

func ident(s string) string { return s }

func TestByPageTotals(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		totalPages int
	}{
		{"empty", 0, 12, 0},
		{"exact multiple", 24, 12, 2},
		{"partial last page", 25, 12, 3},
		{"single item", 1, 12, 1},
		{"limit one", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ByPage(numbered(tt.total), 1, tt.limit)
			assert.Equal(t, tt.total, result.Total)
			assert.Equal(t, tt.totalPages, result.TotalPages)
		})
	}
}

func TestByPageClamping(t *testing.T) {
	items := numbered(25)

	first := ByPage(items, 1, 12)
	last := ByPage(items, 3, 12)

	// Page 0 and negative pages behave as page 1.
	assert.Equal(t, first.Items, ByPage(items, 0, 12).Items)
	assert.Equal(t, 1, ByPage(items, 0, 12).CurrentPage)
	assert.Equal(t, first.Items, ByPage(items, -4, 12).Items)

	// Pages beyond the end behave as the last page.
	beyond := ByPage(items, 99, 12)
	assert.Equal(t, last.Items, beyond.Items)
	assert.Equal(t, 3, beyond.CurrentPage)
}

func TestByPageEmptySet(t *testing.T) {
	result := ByPage([]string{}, 5, 12)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.TotalPages)
	assert.Equal(t, 1, result.CurrentPage)
	assert.False(t, result.HasMore)
}

func TestByPageConcatenationReproducesSet(t *testing.T) {
	items := numbered(25)

	var collected []string
	result := ByPage(items, 1, 10)
	require.Equal(t, 3, result.TotalPages)
	for page := 1; page <= result.TotalPages; page++ {
		collected = append(collected, ByPage(items, page, 10).Items...)
	}

	assert.Equal(t, items, collected)
}

func TestByPageDefaultLimit(t *testing.T) {
	result := ByPage(numbered(30), 1, 0)
	assert.Len(t, result.Items, DefaultLimit)
}

func TestByCursorFirstPage(t *testing.T) {
	items := numbered(30)
	result := ByCursor(items, "", 12, ident)

	assert.Equal(t, items[:12], result.Items)
	assert.True(t, result.HasMore)
	assert.Equal(t, "11", result.NextCursor)
}

func TestByCursorResumesAfterCursor(t *testing.T) {
	items := numbered(30)
	result := ByCursor(items, "11", 12, ident)

	assert.Equal(t, items[12:24], result.Items)
	assert.True(t, result.HasMore)
	assert.Equal(t, "23", result.NextCursor)
}

func TestByCursorEndOfSequence(t *testing.T) {
	items := numbered(30)
	result := ByCursor(items, "23", 12, ident)

	assert.Equal(t, items[24:], result.Items)
	assert.False(t, result.HasMore)
	assert.Empty(t, result.NextCursor)
}

// A cursor pointing at an item that no longer exists (deleted, or filtered
// out) restarts from the beginning instead of failing.
func TestByCursorStaleCursorRestarts(t *testing.T) {
	items := numbered(30)
	result := ByCursor(items, "not-there", 12, ident)

	assert.Equal(t, items[:12], result.Items)
	assert.True(t, result.HasMore)
}

func TestByCursorWalkMatchesSinglePage(t *testing.T) {
	items := numbered(37)

	var walked []string
	cursor := ""
	for {
		result := ByCursor(items, cursor, 12, ident)
		walked = append(walked, result.Items...)
		if !result.HasMore {
			break
		}
		cursor = result.NextCursor
	}

	single := ByPage(items, 1, len(items))
	assert.Equal(t, single.Items, walked)
}

func TestByCursorEmptySet(t *testing.T) {
	result := ByCursor([]string{}, "", 12, ident)
	assert.Empty(t, result.Items)
	assert.False(t, result.HasMore)
	assert.Empty(t, result.NextCursor)
}

func TestPaginateDispatch(t *testing.T) {
	items := numbered(20)

	paged := Paginate(items, Params{Strategy: StrategyPage, Page: 2, Limit: 12}, ident)
	assert.Equal(t, 2, paged.CurrentPage)
	assert.Len(t, paged.Items, 8)

	cursored := Paginate(items, Params{Strategy: StrategyCursor, Limit: 12}, ident)
	assert.Equal(t, "11", cursored.NextCursor)

	// Unknown strategy falls back to page numbers.
	fallback := Paginate(items, Params{Strategy: "bogus", Page: 1, Limit: 12}, ident)
	assert.Equal(t, 1, fallback.CurrentPage)
}
