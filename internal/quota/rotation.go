// Package quota implements the daily contact-visibility quota: the rotation
// window over the catalog, and the policy that decides which contacts a
// request may see and what gets charged against the caller's daily ledger.
package quota

import "time"

// windowFactor sizes the rotation over-fetch. Some candidates in the raw
// window may already be unlocked and must be skipped without shrinking the
// returned page, so the window carries this much slack per page.
const windowFactor = 3

// Window maps (day, page) to a deterministic slice of the ID-ordered
// contact catalog to fetch as rotation candidates.
//
// The rotation origin advances by one full page per UTC day, so returning
// users see mostly new content with no persistent rotation cursor. The
// returned offset wraps modulo total; limit is windowFactor*pageSize, capped
// so the slice stays inside the catalog. A zero total yields an empty
// window. Identical inputs always produce identical bounds.
func Window(day time.Time, page, pageSize, total int) (offset, limit int) {
	if total <= 0 || pageSize <= 0 {
		return 0, 0
	}
	if page < 1 {
		page = 1
	}

	dayOfYear := day.UTC().YearDay()
	rotationStart := (dayOfYear * pageSize) % total

	offset = rotationStart + (page-1)*pageSize
	if offset >= total {
		offset = offset % total
	}

	limit = windowFactor * pageSize
	if offset+limit > total {
		limit = total - offset
	}
	return offset, limit
}
