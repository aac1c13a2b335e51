package storage

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// IsExternalURL reports whether a video reference is an absolute http(s) URL
// rather than an object key.
func IsExternalURL(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/webm":      ".webm",
}

// ValidVideoContentType reports whether uploads of contentType are accepted.
func ValidVideoContentType(contentType string) bool {
	_, ok := videoExtensions[strings.ToLower(contentType)]
	return ok
}

// NewVideoKey builds a fresh object key for a technique video.
//
//	techniques/<packID>/<level>/<actionID>/<uuid>.mp4
func NewVideoKey(packID, level, actionID, contentType string) string {
	ext := videoExtensions[strings.ToLower(contentType)]
	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	if actionID == "" {
		return path.Join("techniques", packID, level, name)
	}
	return path.Join("techniques", packID, level, actionID, name)
}
