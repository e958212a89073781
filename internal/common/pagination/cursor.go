package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode identifies the sort order a cursor belongs to. A cursor minted for
// one order must not be replayed against another, so the mode is encoded
// into the cursor itself and checked on decode.
type Mode string

const (
	// ModeDate orders by publication time, newest first.
	ModeDate Mode = "date"

	// ModeViews orders by view count, highest first.
	ModeViews Mode = "views"
)

var (
	// ErrInvalidCursor indicates a cursor that could not be decoded.
	ErrInvalidCursor = errors.New("invalid pagination cursor")

	// ErrCursorModeMismatch indicates a cursor minted for a different sort order.
	ErrCursorModeMismatch = errors.New("cursor does not match requested sort")
)

// modeTags maps each mode to its single-character wire tag.
var modeTags = map[Mode]string{
	ModeDate:  "d",
	ModeViews: "v",
}

// Cursor is an opaque position marker within a sorted result set.
// For ModeDate the value is the publication time in Unix milliseconds of the
// last item on the previous page; for ModeViews it is that item's view count.
type Cursor struct {
	Mode  Mode
	Value int64
}

// DateCursor creates a cursor positioned after the given publication time.
func DateCursor(publishedAt time.Time) Cursor {
	return Cursor{Mode: ModeDate, Value: publishedAt.UnixMilli()}
}

// ViewsCursor creates a cursor positioned after the given view count.
func ViewsCursor(viewCount int64) Cursor {
	return Cursor{Mode: ModeViews, Value: viewCount}
}

// Encode serializes the cursor as base64url of "<tag>:<value>".
func (c Cursor) Encode() string {
	tag, ok := modeTags[c.Mode]
	if !ok {
		tag = "d"
	}
	raw := fmt.Sprintf("%s:%d", tag, c.Value)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode parses an encoded cursor string.
// Returns ErrInvalidCursor if the string is not a valid cursor.
func Decode(encoded string) (Cursor, error) {
	if encoded == "" {
		return Cursor{}, fmt.Errorf("Decode: empty cursor: %w", ErrInvalidCursor)
	}

	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, fmt.Errorf("Decode: %v: %w", err, ErrInvalidCursor)
	}

	tag, valStr, found := strings.Cut(string(raw), ":")
	if !found {
		return Cursor{}, fmt.Errorf("Decode: missing mode tag: %w", ErrInvalidCursor)
	}

	var mode Mode
	switch tag {
	case "d":
		mode = ModeDate
	case "v":
		mode = ModeViews
	default:
		return Cursor{}, fmt.Errorf("Decode: unknown mode tag %q: %w", tag, ErrInvalidCursor)
	}

	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return Cursor{}, fmt.Errorf("Decode: non-numeric value: %w", ErrInvalidCursor)
	}

	return Cursor{Mode: mode, Value: val}, nil
}

// CheckMode verifies the cursor was minted for the given sort mode.
// Returns ErrCursorModeMismatch otherwise.
func (c Cursor) CheckMode(mode Mode) error {
	if c.Mode != mode {
		return fmt.Errorf("CheckMode: cursor is for %q, requested %q: %w",
			c.Mode, mode, ErrCursorModeMismatch)
	}
	return nil
}
