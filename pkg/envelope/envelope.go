// Package envelope normalizes success, error and paginated response bodies
// into the contract shared by both API versions. Builders return the HTTP
// status alongside the payload so handlers can pass them straight to c.JSON.
package envelope

import (
	"fmt"
	"net/http"
	"strconv"
)

// DefaultMaxLimit is the hard ceiling on items per page. Limits above it
// are rejected, not clamped.
const DefaultMaxLimit = 50

// Payload is a JSON-ready response body.
type Payload map[string]any

// Pagination describes the slice of a paginated listing. From and To are
// 1-indexed inclusive bounds and null whenever Total is zero.
type Pagination struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// Success builds a success envelope merged with any extra named fields.
// The HTTP status is derived from the code string.
func Success(code, title, message string, extra map[string]any) (int, Payload) {
	payload := Payload{
		"success_code":    code,
		"success_title":   title,
		"success_message": message,
	}
	for k, v := range extra {
		payload[k] = v
	}
	return statusFromCode(code, http.StatusOK), payload
}

// Error builds an error envelope. The HTTP status is derived from the
// code string.
func Error(code, title, message string) (int, Payload) {
	return statusFromCode(code, http.StatusBadRequest), Payload{
		"error_code":    code,
		"error_title":   title,
		"error_message": message,
	}
}

// Paginated merges caller-supplied data fields with pagination metadata
// computed from page, limit and the total match count. Always HTTP 200.
func Paginated(data map[string]any, page, limit int, total int64) (int, Payload) {
	payload := Payload{}
	for k, v := range data {
		payload[k] = v
	}
	payload["pagination"] = PaginationFor(page, limit, total)
	return http.StatusOK, payload
}

// PaginationFor computes pagination metadata. last_page is never below 1,
// even for an empty result set. A page beyond the last keeps the literal
// from/to arithmetic; from may then exceed to.
func PaginationFor(page, limit int, total int64) Pagination {
	lastPage := int((total + int64(limit) - 1) / int64(limit))
	if lastPage < 1 {
		lastPage = 1
	}

	var from, to *int
	if total > 0 {
		f := (page-1)*limit + 1
		t := page * limit
		if int64(t) > total {
			t = int(total)
		}
		from, to = &f, &t
	}

	return Pagination{
		Total:       total,
		PerPage:     limit,
		CurrentPage: page,
		LastPage:    lastPage,
		From:        from,
		To:          to,
	}
}

// ValidatePagination parses the page and limit query values and enforces
// the per-page ceiling. On failure it returns a ready-made error envelope;
// callers short-circuit when status is non-zero. Non-numeric and
// non-positive values count as missing.
func ValidatePagination(pageRaw, limitRaw string, maxLimit int) (page, limit, status int, payload Payload) {
	page, ok := parsePositive(pageRaw)
	if !ok {
		status, payload = Error("400", "Invalid Parameters", "Page number is required")
		return 0, 0, status, payload
	}

	limit, ok = parsePositive(limitRaw)
	if !ok {
		status, payload = Error("400", "Invalid Parameters", "Limit is required")
		return 0, 0, status, payload
	}

	if limit > maxLimit {
		status, payload = Error("400", "Invalid Parameters",
			fmt.Sprintf("Limit cannot exceed %d items per page", maxLimit))
		return 0, 0, status, payload
	}

	return page, limit, 0, nil
}

func parsePositive(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func statusFromCode(code string, fallback int) int {
	if n, err := strconv.Atoi(code); err == nil && n >= 100 && n < 600 {
		return n
	}
	return fallback
}
