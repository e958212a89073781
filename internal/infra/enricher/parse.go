package enricher

import (
	"encoding/json"
	"strconv"
	"strings"

	"easy-news/internal/domain/entity"
)

// summaryResult mirrors the per-article object in the summaries response.
type summaryResult struct {
	Summary       string `json:"summary"`
	Summary3Lines string `json:"summary3lines"`
	EasySummary   string `json:"easySummary"`
}

// entityResult mirrors one entity object in the entities response.
type entityResult struct {
	Text        string `json:"text"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// extractJSONObject pulls the first well-formed JSON object out of a model
// response. Models routinely wrap the payload in prose or a fenced code
// block, so this scans for the first balanced {...} group, honoring string
// literals and escapes.
func extractJSONObject(response string) (string, bool) {
	start := strings.IndexByte(response, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(response); i++ {
		c := response[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				candidate := response[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, true
				}
				// Broken candidate, scan for the next opening brace.
				next := strings.IndexByte(response[i+1:], '{')
				if next < 0 {
					return "", false
				}
				return extractJSONObject(response[i+1+next:])
			}
		}
	}

	return "", false
}

// parseSummaries maps a raw summaries response onto n per-article results,
// keyed by 1-based index. Missing indexes and unparseable responses yield
// zero values rather than errors.
func parseSummaries(response string, n int) []summaryResult {
	results := make([]summaryResult, n)

	payload, ok := extractJSONObject(response)
	if !ok {
		return results
	}

	var indexed map[string]summaryResult
	if err := json.Unmarshal([]byte(payload), &indexed); err != nil {
		return results
	}

	for i := 0; i < n; i++ {
		if r, ok := indexed[strconv.Itoa(i+1)]; ok {
			results[i] = summaryResult{
				Summary:       strings.TrimSpace(r.Summary),
				Summary3Lines: strings.TrimSpace(r.Summary3Lines),
				EasySummary:   strings.TrimSpace(r.EasySummary),
			}
		}
	}

	return results
}

// parseEntities maps a raw entities response onto n per-article entity
// lists, keyed by 1-based index. Entities with a blank surface form or a
// type outside the closed set are dropped.
func parseEntities(response string, n int) [][]entity.Entity {
	results := make([][]entity.Entity, n)
	for i := range results {
		results[i] = []entity.Entity{}
	}

	payload, ok := extractJSONObject(response)
	if !ok {
		return results
	}

	var indexed map[string][]entityResult
	if err := json.Unmarshal([]byte(payload), &indexed); err != nil {
		return results
	}

	for i := 0; i < n; i++ {
		raw, ok := indexed[strconv.Itoa(i+1)]
		if !ok {
			continue
		}
		for _, e := range raw {
			typ := entity.EntityType(strings.ToUpper(strings.TrimSpace(e.Type)))
			if strings.TrimSpace(e.Text) == "" || !typ.IsValid() {
				continue
			}
			results[i] = append(results[i], entity.Entity{
				Text:        strings.TrimSpace(e.Text),
				Type:        typ,
				Description: strings.TrimSpace(e.Description),
			})
		}
	}

	return results
}
