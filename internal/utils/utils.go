package utils

import (
	"errors"
	"fmt"
	"maps"
	"mime"
	"regexp"
	"slices"
	"strings"
)

const (
	// JSONMimeType is the MIME type for JSON payloads.
	JSONMimeType = "application/json"

	// TextMimeType is the MIME type requested for plain-text responses.
	TextMimeType = "application/text"

	// FormMimeType is the MIME type for URL-encoded form payloads.
	FormMimeType = "application/x-www-form-urlencoded"

	// OctetStreamMimeType is the MIME type for arbitrary binary responses.
	OctetStreamMimeType = "application/octet-stream"
)

// ErrInvalidKeyValuePair indicates that a "key=value" pair could not be parsed.
var ErrInvalidKeyValuePair = errors.New("invalid key=value pair")

// textContentTypePatterns is a slice of regular expressions that match content types
// considered to be text-based. This includes "text/*", "application/json", and
// "application/samlmetadata+xml".
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile("^application/text$"),
	regexp.MustCompile(`^application/samlmetadata\+xml`),
	regexp.MustCompile(`^application/x-www-form-urlencoded$`),
}

// IsBlank reports whether s is empty or consists only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsTextContentType checks if the given content type represents a text-based format.
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// ParseKeyValuePairs parses "key=value" strings into a map.
// Keys are trimmed; values are kept as is, so "X=" yields an empty value.
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")

		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidKeyValuePair, pair)
		}

		result[key] = value
	}

	return result, nil
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
