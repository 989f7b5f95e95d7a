package filestorage

import (
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// cleanKey normalises an object key and rejects keys leaving the root.
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if key == "" {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// uploadKey generates a collision-free key for an uploaded file.
func uploadKey(fileHeader *multipart.FileHeader, subPath string) string {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := uuid.New().String() + ext
	if subPath == "" {
		return name
	}
	return strings.Trim(subPath, "/") + "/" + name
}

// keyFromURL strips baseURL from fileURL; URLs from elsewhere yield "".
func keyFromURL(baseURL, fileURL string) string {
	base := strings.TrimRight(baseURL, "/") + "/"
	if !strings.HasPrefix(fileURL, base) {
		return ""
	}
	return strings.TrimPrefix(fileURL, base)
}

func joinURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
