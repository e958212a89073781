package enricher

import (
	"fmt"
	"strings"

	"easy-news/internal/usecase/ingest"
	"easy-news/internal/utils/text"
)

// buildSummaryPrompt builds the batched summaries prompt. All articles go
// into a single request; the model must answer with one JSON object keyed by
// the 1-based article number.
func buildSummaryPrompt(articles []ingest.ArticleText, perItemLimit int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "다음 %d개의 뉴스 기사를 각각 요약해 주세요.\n", len(articles))
	sb.WriteString("각 기사마다 세 가지 요약을 작성합니다:\n")
	sb.WriteString(`- "summary": 핵심을 담은 한 단락 요약` + "\n")
	sb.WriteString(`- "summary3lines": 세 줄 요약 (각 줄은 줄바꿈 문자로 구분)` + "\n")
	sb.WriteString(`- "easySummary": 어린이도 이해할 수 있는 쉬운 말 요약` + "\n\n")
	sb.WriteString("응답은 반드시 아래 형식의 JSON 객체 하나만 반환하세요. 키는 기사 번호입니다.\n")
	sb.WriteString(`{"1": {"summary": "...", "summary3lines": "...", "easySummary": "..."}, "2": {...}}` + "\n")

	writeArticles(&sb, articles, perItemLimit)

	return sb.String()
}

// buildEntityPrompt builds the batched entity extraction prompt.
func buildEntityPrompt(articles []ingest.ArticleText, perItemLimit int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "다음 %d개의 뉴스 기사에서 주요 엔터티를 추출해 주세요.\n", len(articles))
	sb.WriteString(`각 엔터티는 "text"(표현), "type", "description"(간단한 설명)을 갖습니다.` + "\n")
	sb.WriteString(`"type"은 PERSON, LOCATION, ORGANIZATION, COMPANY, COUNTRY 중 하나여야 합니다.` + "\n\n")
	sb.WriteString("응답은 반드시 아래 형식의 JSON 객체 하나만 반환하세요. 키는 기사 번호입니다.\n")
	sb.WriteString(`{"1": [{"text": "...", "type": "PERSON", "description": "..."}], "2": [...]}` + "\n")

	writeArticles(&sb, articles, perItemLimit)

	return sb.String()
}

// writeArticles appends the numbered title+body blocks shared by both prompts.
func writeArticles(sb *strings.Builder, articles []ingest.ArticleText, perItemLimit int) {
	for i, a := range articles {
		body := a.Body
		if text.CountRunes(body) > perItemLimit {
			body = text.Truncate(body, perItemLimit)
		}
		fmt.Fprintf(sb, "\n[기사 %d]\n제목: %s\n본문: %s\n", i+1, a.Title, body)
	}
}
