package directory

// Pagination describes a page within a listing.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
	Limit       int  `json:"limit"`
}

// Page is a slice of a listing.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// MaxPageLimit caps the page size of every listing.
const MaxPageLimit = 100

// Paginate slices items into 1-based pages. page < 1 becomes 1 and limit is
// clamped to [1, MaxPageLimit]. A page past the end yields no items.
func Paginate[T any](items []T, page, limit int) Page[T] {
	page = max(page, 1)
	limit = min(max(limit, 1), MaxPageLimit)

	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	out := []T{}
	if page <= totalPages {
		start := (page - 1) * limit
		end := min(start+limit, total)
		out = make([]T, end-start)
		copy(out, items[start:end])
	}

	return Page[T]{
		Items: out,
		Pagination: Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
			Limit:       limit,
		},
	}
}
