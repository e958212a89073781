package respond_test

import (
	"errors"
	"testing"

	"easy-news/internal/handler/http/respond"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "anthropic key masked",
			err:  errors.New("auth failed: sk-ant-api03-abcDEF123_xyz"),
			want: "auth failed: sk-ant-****",
		},
		{
			name: "openai key masked",
			err:  errors.New("401 unauthorized: sk-abcdefghij1234567890"),
			want: "401 unauthorized: sk-****",
		},
		{
			name: "dsn password masked",
			err:  errors.New("connect postgres://news:s3cret@db:5432/easynews failed"),
			want: "connect postgres://news:****@db:5432/easynews failed",
		},
		{
			name: "plain message untouched",
			err:  errors.New("feed returned no items"),
			want: "feed returned no items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, respond.SanitizeError(tt.err))
		})
	}
}
