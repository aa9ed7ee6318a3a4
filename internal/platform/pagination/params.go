// Package pagination extracts limit/offset parameters from request query
// strings with defaults and hard caps.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit defines the fallback number of items returned when the
	// client omits limit.
	DefaultLimit = 10
	// MaxLimit caps the supported limit to prevent unbounded searches.
	MaxLimit = 100
)

// Params bundles the pagination values extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// ParseParams reads limit and offset from the request query string with
// the package-level bounds. A missing limit falls back to DefaultLimit;
// values above MaxLimit clamp. Negative or non-numeric values are
// rejected.
func ParseParams(r *http.Request) (Params, error) {
	return ParseParamsBounded(r, DefaultLimit, MaxLimit)
}

// ParseParamsBounded is ParseParams with caller-supplied bounds.
func ParseParamsBounded(r *http.Request, defaultLimit, maxLimit int) (Params, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit < defaultLimit {
		maxLimit = defaultLimit
	}
	params := Params{Limit: defaultLimit}
	if r == nil || r.URL == nil {
		return params, nil
	}
	query := r.URL.Query()

	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return Params{}, fmt.Errorf("pagination: invalid limit %q", raw)
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		params.Limit = limit
	}

	if raw := strings.TrimSpace(query.Get("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return Params{}, fmt.Errorf("pagination: invalid offset %q", raw)
		}
		params.Offset = offset
	}

	return params, nil
}
