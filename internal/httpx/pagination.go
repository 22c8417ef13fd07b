package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/page"
)

// PageRequest reads page, size, sort and desc from the query string.
// Missing or malformed numbers fall back to the page package defaults.
func PageRequest(r *http.Request) page.Request {
	q := r.URL.Query()

	index, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	if size == 0 {
		size, _ = strconv.Atoi(q.Get("page_size"))
	}

	req := page.NewRequest(index, size)
	req.SortBy = strings.TrimSpace(q.Get("sort"))
	req.Desc, _ = strconv.ParseBool(q.Get("desc"))
	return req
}
