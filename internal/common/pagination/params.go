package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
// Cursor holds the raw encoded cursor string; it is decoded and validated
// against the requested sort order by the query usecase.
type Params struct {
	Limit  int    // Items per page
	Cursor string // Encoded cursor, empty for the first page
}

// ParseQueryParams parses pagination parameters from the HTTP request query
// string. Returns Params with defaults if parameters are missing.
//
// Query parameters:
//   - pageSize: Items per page (must be between 1 and config.MaxLimit)
//   - cursor: Opaque cursor from a previous response's next_cursor field
//
// Returns an error if pageSize is invalid. Cursor decoding errors surface
// later, when the cursor is actually decoded.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Limit:  config.DefaultLimit,
		Cursor: r.URL.Query().Get("cursor"),
	}

	if sizeStr := r.URL.Query().Get("pageSize"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: pageSize must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = size
	}

	return params, nil
}

// Validate validates pagination parameters against the configuration.
// Returns an error if limit is less than 1 or greater than config.MaxLimit.
func (p Params) Validate(config Config) error {
	if p.Limit < 1 || p.Limit > config.MaxLimit {
		return fmt.Errorf("pageSize must be between 1 and %d", config.MaxLimit)
	}
	return nil
}

// WithDefaults applies default values from config to Params.
//
// Rules:
//   - If limit <= 0, set to config.DefaultLimit
//   - If limit > config.MaxLimit, cap to config.MaxLimit
func (p Params) WithDefaults(config Config) Params {
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
