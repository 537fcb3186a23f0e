package asset

import (
	"path"
	"strings"

	"github.com/fhuszti/lsl-go/internal/uuid"
)

// NewObjectKey builds "{category}/{entityID}/{uuid hex}{ext}", ext being the
// last suffix of filename including its dot.
func NewObjectKey(category, entityID string, id uuid.UUID, filename string) string {
	return category + "/" + entityID + "/" + id.Hex() + suffix(filename)
}

func suffix(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	i := strings.LastIndex(base, ".")
	if i <= 0 || i == len(base)-1 {
		return ""
	}
	return base[i:]
}

// NormaliseObjectKey trims surrounding spaces and leading slashes.
func NormaliseObjectKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}

// ParseObjectKey returns the category and entity segments of key. Empty
// segments are ignored; at least three must remain.
func ParseObjectKey(key string) (category, entityID string, err error) {
	var parts []string
	for _, p := range strings.Split(strings.Trim(key, "/"), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 3 {
		return "", "", ErrObjectKeyFormat
	}
	return parts[0], parts[1], nil
}

// AssetURL joins the public base URL and the object key.
func AssetURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
