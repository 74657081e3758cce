package fstree

import (
	"path/filepath"
	"strings"

	"nasfs/pkg/log"
)

// Resolve joins a relative path onto the storage root and returns the
// absolute path, guaranteeing the result cannot name anything outside the
// root. The check is lexical: nothing is read from disk.
func (t *Tree) Resolve(relative string) (string, error) {
	if strings.ContainsRune(relative, 0) {
		return "", InvalidPathError{Relative: relative}
	}

	if strings.HasPrefix(relative, "/") {
		log.Warn().Str("relative", relative).Msg("Rejected absolute path in request")
		return "", OutsideRootError{Relative: relative}
	}

	// A ".." component could climb across a directory boundary and still
	// land inside the root, so it is rejected outright rather than cleaned
	// away.
	for _, part := range strings.Split(relative, "/") {
		if part == ".." {
			log.Warn().Str("relative", relative).Msg("Rejected path traversal attempt")
			return "", OutsideRootError{Relative: relative}
		}
	}

	joined := filepath.Join(t.root, filepath.FromSlash(relative))
	if !within(t.root, joined) {
		log.Warn().Str("relative", relative).Msg("Resolved path escaped the storage root")
		return "", OutsideRootError{Relative: relative}
	}

	return joined, nil
}

// within reports whether candidate lies at or below root. It compares whole
// path components, so a sibling that merely shares the root as a string
// prefix (/data vs /data-secret) does not pass.
func within(root, candidate string) bool {
	rootParts := splitComponents(root)
	candidateParts := splitComponents(candidate)

	if len(candidateParts) < len(rootParts) {
		return false
	}
	for i, part := range rootParts {
		if candidateParts[i] != part {
			return false
		}
	}
	return true
}

// splitComponents breaks a path into its separator-delimited components,
// dropping empty and "." segments.
func splitComponents(path string) []string {
	var parts []string
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
