// Package catalog holds the movie listing view-model: which catalog query is
// active, the fetched movies, pagination over them and the sidebar subsets.
package catalog

// PageSize is the number of movies shown per listing page
const PageSize = 30

// TotalPages returns ceil(n/pageSize), never less than 1
func TotalPages(n, pageSize int) int {
	if pageSize < 1 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, totalPages]
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the items of the given 1-based page and the total page count.
// Out-of-range pages are clamped, and an empty list yields one empty page.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	total := TotalPages(len(items), pageSize)
	if len(items) == 0 || pageSize < 1 {
		return []T{}, total
	}
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}

// NextPage moves forward one page; it is a no-op on the last page
func NextPage(page, totalPages int) int {
	return ClampPage(page+1, totalPages)
}

// PrevPage moves back one page; it is a no-op on the first page
func PrevPage(page, totalPages int) int {
	return ClampPage(page-1, totalPages)
}
