package enricher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easy-news/internal/domain/entity"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantOK   bool
	}{
		{
			name:     "bare object",
			response: `{"1": {"summary": "요약"}}`,
			want:     `{"1": {"summary": "요약"}}`,
			wantOK:   true,
		},
		{
			name:     "fenced code block",
			response: "다음은 결과입니다:\n```json\n{\"1\": {\"summary\": \"요약\"}}\n```\n이상입니다.",
			want:     `{"1": {"summary": "요약"}}`,
			wantOK:   true,
		},
		{
			name:     "surrounding prose",
			response: `요청하신 JSON은 {"1": {"summary": "요약"}} 입니다.`,
			want:     `{"1": {"summary": "요약"}}`,
			wantOK:   true,
		},
		{
			name:     "braces inside string values",
			response: `{"1": {"summary": "중괄호 {테스트} 포함"}}`,
			want:     `{"1": {"summary": "중괄호 {테스트} 포함"}}`,
			wantOK:   true,
		},
		{
			name:     "escaped quotes inside strings",
			response: `{"1": {"summary": "그는 \"인용\"이라고 말했다"}}`,
			want:     `{"1": {"summary": "그는 \"인용\"이라고 말했다"}}`,
			wantOK:   true,
		},
		{
			name:     "no object at all",
			response: "죄송합니다, 요약을 생성할 수 없습니다.",
			wantOK:   false,
		},
		{
			name:     "unterminated object",
			response: `{"1": {"summary": "잘린 응답`,
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.response)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseSummaries(t *testing.T) {
	response := "```json\n" + `{
  "1": {"summary": "첫 기사 요약", "summary3lines": "줄1\n줄2\n줄3", "easySummary": "쉬운 요약"},
  "3": {"summary": "셋째 기사 요약"}
}` + "\n```"

	results := parseSummaries(response, 3)
	require.Len(t, results, 3)

	assert.Equal(t, "첫 기사 요약", results[0].Summary)
	assert.Equal(t, "줄1\n줄2\n줄3", results[0].Summary3Lines)
	assert.Equal(t, "쉬운 요약", results[0].EasySummary)

	// index 2 missing from the response
	assert.Equal(t, summaryResult{}, results[1])

	assert.Equal(t, "셋째 기사 요약", results[2].Summary)
	assert.Empty(t, results[2].Summary3Lines)
}

func TestParseSummaries_Garbage(t *testing.T) {
	results := parseSummaries("모델이 JSON을 반환하지 않았습니다", 2)
	require.Len(t, results, 2)
	assert.Equal(t, summaryResult{}, results[0])
	assert.Equal(t, summaryResult{}, results[1])
}

func TestParseEntities(t *testing.T) {
	response := `{
  "1": [
    {"text": "홍길동", "type": "PERSON", "description": "소설 속 인물"},
    {"text": "서울", "type": "location", "description": "대한민국 수도"},
    {"text": "무효", "type": "ANIMAL", "description": "허용되지 않는 타입"},
    {"text": "", "type": "PERSON", "description": "빈 표현"}
  ],
  "2": []
}`

	results := parseEntities(response, 2)
	require.Len(t, results, 2)

	require.Len(t, results[0], 2)
	assert.Equal(t, "홍길동", results[0][0].Text)
	assert.Equal(t, entity.EntityTypePerson, results[0][0].Type)
	// lowercase type normalized
	assert.Equal(t, entity.EntityTypeLocation, results[0][1].Type)

	assert.Empty(t, results[1])
}

func TestParseEntities_MissingIndexYieldsEmptyList(t *testing.T) {
	results := parseEntities(`{"1": [{"text": "서울", "type": "LOCATION", "description": ""}]}`, 3)
	require.Len(t, results, 3)
	assert.Len(t, results[0], 1)
	assert.NotNil(t, results[1])
	assert.Empty(t, results[1])
	assert.Empty(t, results[2])
}
