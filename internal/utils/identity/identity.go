// Package identity derives deterministic, storage-safe document IDs for feed
// entries. The same resolver is used when generating IDs at ingestion time and
// when locating existing documents, so the derivation logic lives here and
// nowhere else.
package identity

import (
	"crypto/md5" //nolint:gosec // fingerprint only, not used for security
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// safeIDPattern matches identifiers that can be used as document keys as-is.
var safeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Resolver derives stable IDs for entries of one feed source.
type Resolver struct {
	// Source is the prefix applied to derived IDs, e.g. "sbs_news".
	Source string

	// LinkParam is the query parameter in entry links that carries the
	// upstream item ID, e.g. "news_id".
	LinkParam string
}

// NewResolver creates a Resolver for the given source prefix and link
// query parameter.
func NewResolver(source, linkParam string) *Resolver {
	return &Resolver{Source: source, LinkParam: linkParam}
}

// Resolve derives the stable ID for a feed entry. The priority order is:
//
//  1. the entry's own guid, when present and non-blank
//  2. the item-identifying query parameter of the entry's link
//  3. an MD5 digest of the link
//  4. a time+random composite, only when no link exists at all
//
// Results for cases 1-3 are deterministic: the same entry always resolves to
// the same ID, across calls and across processes. Case 4 is non-deterministic
// and such entries cannot be deduplicated, which is acceptable because they
// carry no identifying information to deduplicate on.
func (r *Resolver) Resolve(guid, link string) string {
	if g := strings.TrimSpace(guid); g != "" {
		return r.SafeDocumentID(g)
	}

	link = strings.TrimSpace(link)
	if link != "" {
		if id := r.linkParamID(link); id != "" {
			return fmt.Sprintf("%s_%s", r.Source, id)
		}
		return fmt.Sprintf("%s_%s", r.Source, md5Hex(link))
	}

	// Last resort: entries without guid and link cannot be deduplicated.
	return fmt.Sprintf("%s_%d_%s", r.Source, time.Now().UnixMilli(), randomSuffix())
}

// SafeDocumentID normalizes an arbitrary identifier into a storage-safe
// document key. Identifiers that are already safe pass through verbatim.
// URL-shaped identifiers are reduced to the link query parameter when
// possible, and anything else collapses to a truncated content hash.
func (r *Resolver) SafeDocumentID(raw string) string {
	if safeIDPattern.MatchString(raw) {
		return raw
	}
	if id := r.linkParamID(raw); id != "" {
		return fmt.Sprintf("%s_%s", r.Source, id)
	}
	return fmt.Sprintf("%s_%s", r.Source, md5Hex(raw)[:16])
}

// linkParamID extracts the item-identifying query parameter from a link.
// Returns "" when the link does not parse or the parameter is absent.
func (r *Resolver) linkParamID(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	id := u.Query().Get(r.LinkParam)
	if !safeIDPattern.MatchString(id) {
		return ""
	}
	return id
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s)) //nolint:gosec // fingerprint only
	return hex.EncodeToString(sum[:])
}

// randomSuffix returns a short random token for the non-deterministic
// fallback ID.
func randomSuffix() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}
