// Package pagination slices an ordered, already-filtered candidate set
// into bounded pages. Two strategies coexist: classic page numbers and an
// opaque cursor (the id of the last item seen). Both operate on the fully
// materialized candidate set, which is fine while per-user collections
// stay in the low thousands; past that this becomes the scalability
// ceiling of the listing path.
package pagination

// DefaultLimit is the page size used when the caller passes none.
const DefaultLimit = 12

// Strategy selects how a candidate set is sliced.
type Strategy string

const (
	StrategyPage   Strategy = "page"
	StrategyCursor Strategy = "cursor"
)

// Params carries the slicing request. Page is 1-based and only read by the
// page strategy; Cursor is only read by the cursor strategy.
type Params struct {
	Strategy Strategy
	Page     int
	Cursor   string
	Limit    int
}

// Result is the sliced page plus the metadata of whichever strategy ran.
// Total, TotalPages and CurrentPage are filled by the page strategy;
// HasMore and NextCursor by the cursor strategy.
type Result[T any] struct {
	Items       []T
	Total       int
	TotalPages  int
	CurrentPage int
	HasMore     bool
	NextCursor  string
}

// Paginate applies the requested strategy. An unknown strategy falls back
// to page numbers.
func Paginate[T any](candidates []T, p Params, id func(T) string) Result[T] {
	if p.Strategy == StrategyCursor {
		return ByCursor(candidates, p.Cursor, p.Limit, id)
	}
	return ByPage(candidates, p.Page, p.Limit)
}

// ByPage returns the 1-based page of the candidate set. Out-of-range pages
// are clamped into [1, totalPages], never rejected.
func ByPage[T any](candidates []T, page, limit int) Result[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}

	total := len(candidates)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	// Clamp into [1, max(totalPages, 1)]: an empty set still reports page 1.
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = max(totalPages, 1)
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	return Result[T]{
		Items:       candidates[start:end],
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasMore:     page < totalPages,
	}
}

// ByCursor returns the page following the item whose id equals cursor, or
// the first page when cursor is empty. A cursor that no longer appears in
// the candidate set (deleted item, changed filter) restarts from the
// beginning instead of failing. NextCursor is the id of the last returned
// item while more remain, and empty at the end of the sequence.
func ByCursor[T any](candidates []T, cursor string, limit int, id func(T) string) Result[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := 0
	if cursor != "" {
		for i, item := range candidates {
			if id(item) == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(candidates) {
		end = len(candidates)
	}

	items := candidates[start:end]
	hasMore := end < len(candidates)

	next := ""
	if hasMore && len(items) > 0 {
		next = id(items[len(items)-1])
	}

	return Result[T]{
		Items:      items,
		Total:      len(candidates),
		HasMore:    hasMore,
		NextCursor: next,
	}
}
