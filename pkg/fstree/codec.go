package fstree

import (
	"net/url"
	"unicode/utf8"
)

// DecodePath decodes a percent-encoded URL path into a logical relative
// path. Sequences that do not form valid UTF-8 after decoding are rejected,
// never replaced with substitution characters.
func DecodePath(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", InvalidEncodingError{Raw: raw}
	}
	if !utf8.ValidString(decoded) {
		return "", InvalidEncodingError{Raw: raw}
	}
	return decoded, nil
}
