package util

import (
	"strconv"
	"strings"
)

// Pagination bounds applied to every list endpoint.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePagination normalizes page and page_size query values into an offset
// and limit. Out-of-range values fall back to defaults.
func ParsePagination(pageRaw, sizeRaw string) (offset, limit int) {
	page, errPage := strconv.Atoi(strings.TrimSpace(pageRaw))
	if errPage != nil || page < 1 {
		page = 1
	}
	size, errSize := strconv.Atoi(strings.TrimSpace(sizeRaw))
	if errSize != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return (page - 1) * size, size
}

// MaskEmail obscures the local part of an email address for logging.
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	return email[:1] + "***" + email[at:]
}
