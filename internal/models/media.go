package models

import "strings"

// MediaKind tags a post's media reference. The kind is decided once, when the
// post is created, and never re-derived from the filename afterwards.
type MediaKind string

const (
	MediaNone  MediaKind = ""
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// MediaRef is a stored media reference plus its kind. Ref is a storage object
// name, not a URL; resolving it to a fetchable URL is the media resolver's job.
type MediaRef struct {
	Kind MediaKind `json:"kind,omitempty" bson:"kind,omitempty"`
	Ref  string    `json:"ref,omitempty" bson:"ref,omitempty"`
}

var videoSuffixes = []string{".mp4", ".mov", ".webm"}

// NewMediaRef classifies a stored file name at post-creation time.
func NewMediaRef(ref string) MediaRef {
	if ref == "" {
		return MediaRef{}
	}
	lower := strings.ToLower(ref)
	for _, suffix := range videoSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return MediaRef{Kind: MediaVideo, Ref: ref}
		}
	}
	return MediaRef{Kind: MediaImage, Ref: ref}
}

// IsZero reports whether the post carries no media.
func (m MediaRef) IsZero() bool {
	return m.Kind == MediaNone && m.Ref == ""
}
