package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimProbe(t *testing.T) {
	tests := []struct {
		name        string
		rows        []int
		limit       int
		wantLen     int
		wantHasMore bool
	}{
		{
			name:        "probe row present",
			rows:        []int{1, 2, 3, 4},
			limit:       3,
			wantLen:     3,
			wantHasMore: true,
		},
		{
			name:        "exactly limit rows",
			rows:        []int{1, 2, 3},
			limit:       3,
			wantLen:     3,
			wantHasMore: false,
		},
		{
			name:        "fewer than limit",
			rows:        []int{1},
			limit:       3,
			wantLen:     1,
			wantHasMore: false,
		},
		{
			name:        "empty result",
			rows:        nil,
			limit:       3,
			wantLen:     0,
			wantHasMore: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, hasMore := TrimProbe(tt.rows, tt.limit)
			assert.Len(t, page, tt.wantLen)
			assert.Equal(t, tt.wantHasMore, hasMore)
		})
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]string{"a", "b"}, "ZDoxMjM", true, 42)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	assert.Equal(t, "ZDoxMjM", resp.NextCursor)
	assert.True(t, resp.HasMore)
	assert.Equal(t, int64(42), resp.Total)
}
