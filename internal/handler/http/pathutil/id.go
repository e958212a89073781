package pathutil

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// idPattern matches stable news IDs as they appear in document keys.
var idPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ExtractID extracts a stable document ID from a URL path.
// It removes the specified prefix, strips an optional trailing action
// segment, and validates the remaining ID charset.
//
// Example:
//
//	id, err := ExtractID("/news/sbs_news_N1001", "/news/")
//	// Returns: "sbs_news_N1001", nil
func ExtractID(path, prefix string) (string, error) {
	id := strings.TrimPrefix(path, prefix)
	id = strings.TrimSuffix(id, "/")
	if id == "" || !idPattern.MatchString(id) {
		return "", ErrInvalidID
	}
	return id, nil
}

// ExtractIDAction splits a URL path of the form <prefix><id>/<action> into
// its ID and action parts. The action may be empty when the path carries
// only an ID.
//
// Example:
//
//	id, action, err := ExtractIDAction("/news/sbs_news_N1001/view", "/news/")
//	// Returns: "sbs_news_N1001", "view", nil
func ExtractIDAction(path, prefix string) (id, action string, err error) {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.TrimSuffix(rest, "/")

	id, action, _ = strings.Cut(rest, "/")
	if id == "" || !idPattern.MatchString(id) {
		return "", "", ErrInvalidID
	}
	if action != "" && strings.Contains(action, "/") {
		return "", "", ErrInvalidID
	}
	return id, action, nil
}
