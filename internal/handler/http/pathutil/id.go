// Package pathutil extracts identifiers from request paths and normalizes
// paths for metric labels.
package pathutil

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidID is returned when the identifier segment of a path is missing
// or malformed.
var ErrInvalidID = errors.New("invalid id")

const maxIDLength = 256

// ExtractID returns the single path segment that follows prefix, unescaped.
//
//	id, err := ExtractID("/api/colleges/col_12", "/api/colleges/")
//	// "col_12", nil
func ExtractID(path, prefix string) (string, error) {
	if !strings.HasPrefix(path, prefix) {
		return "", ErrInvalidID
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	if raw == "" || strings.Contains(raw, "/") || len(raw) > maxIDLength {
		return "", ErrInvalidID
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidID
	}
	return id, nil
}
