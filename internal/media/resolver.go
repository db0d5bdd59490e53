// Package media turns stored media references into displayable URLs. It is a
// pure naming concern: no fetching, no transcoding.
package media

import (
	"strings"

	"github.com/linkup-app/feed-engine/internal/models"
)

// Resolver maps a stored object name to a fetchable URL under the public
// uploads bucket.
type Resolver struct {
	baseURL string
}

// NewResolver creates a Resolver rooted at the storage base URL, e.g.
// "https://storage.example.com/v1/object/public/uploads".
func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// URL resolves the media reference, or returns "" for a post with no media.
func (r *Resolver) URL(ref models.MediaRef) string {
	if ref.IsZero() {
		return ""
	}
	return r.baseURL + "/" + ref.Ref
}
