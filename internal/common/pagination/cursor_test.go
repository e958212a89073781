package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		cursor Cursor
	}{
		{
			name:   "date cursor",
			cursor: DateCursor(time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)),
		},
		{
			name:   "views cursor",
			cursor: ViewsCursor(12345),
		},
		{
			name:   "zero views",
			cursor: ViewsCursor(0),
		},
		{
			name:   "epoch date",
			cursor: Cursor{Mode: ModeDate, Value: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := tt.cursor.Encode()
			decoded, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.cursor, decoded)
		})
	}
}

func TestDateCursorUsesUnixMillis(t *testing.T) {
	at := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)
	c := DateCursor(at)
	assert.Equal(t, at.UnixMilli(), c.Value)
	assert.Equal(t, ModeDate, c.Mode)
}

func TestDecodeInvalidCursor(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{
			name:    "empty string",
			encoded: "",
		},
		{
			name:    "not base64",
			encoded: "!!!not-base64!!!",
		},
		{
			name:    "missing mode tag",
			encoded: base64.RawURLEncoding.EncodeToString([]byte("1234567890")),
		},
		{
			name:    "unknown mode tag",
			encoded: base64.RawURLEncoding.EncodeToString([]byte("x:42")),
		},
		{
			name:    "non-numeric value",
			encoded: base64.RawURLEncoding.EncodeToString([]byte("d:abc")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.encoded)
			assert.ErrorIs(t, err, ErrInvalidCursor)
		})
	}
}

func TestCheckMode(t *testing.T) {
	tests := []struct {
		name    string
		cursor  Cursor
		mode    Mode
		wantErr bool
	}{
		{
			name:   "date cursor with date sort",
			cursor: DateCursor(time.Now()),
			mode:   ModeDate,
		},
		{
			name:   "views cursor with views sort",
			cursor: ViewsCursor(10),
			mode:   ModeViews,
		},
		{
			name:    "date cursor with views sort",
			cursor:  DateCursor(time.Now()),
			mode:    ModeViews,
			wantErr: true,
		},
		{
			name:    "views cursor with date sort",
			cursor:  ViewsCursor(10),
			mode:    ModeDate,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cursor.CheckMode(tt.mode)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCursorModeMismatch)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEncodeIsURLSafe(t *testing.T) {
	c := DateCursor(time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC))
	encoded := c.Encode()
	assert.NotContains(t, encoded, "+")
	assert.NotContains(t, encoded, "/")
	assert.NotContains(t, encoded, "=")
}
