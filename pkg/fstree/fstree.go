// Package fstree implements the path and file model for the storage tree:
// decoding user-supplied path segments, resolving them against the storage
// root without letting them escape it, classifying nodes and deleting them.
package fstree

import (
	"fmt"
	"path/filepath"
)

// FileCategory is the semantic type assigned to a filesystem node, derived
// from its metadata and file extension.
type FileCategory string

const (
	CategoryDirectory      FileCategory = "directory"
	CategoryAudio          FileCategory = "audio"
	CategoryVideo          FileCategory = "video"
	CategoryStreamPlaylist FileCategory = "stream_playlist"
	CategoryStreamSegment  FileCategory = "stream_segment"
	CategoryDocument       FileCategory = "document"
	CategoryImage          FileCategory = "image"
	CategoryUnknown        FileCategory = "unknown"
)

// categoryByExtension is the closed extension table. Lookups are
// case-sensitive: "MP4" is not "mp4" and classifies as unknown.
var categoryByExtension = map[string]FileCategory{
	"mp3":  CategoryAudio,
	"avi":  CategoryVideo,
	"mkv":  CategoryVideo,
	"mp4":  CategoryVideo,
	"m3u8": CategoryStreamPlaylist,
	"ts":   CategoryStreamSegment,
	"pdf":  CategoryDocument,
	"txt":  CategoryDocument,
	"png":  CategoryImage,
	"jpg":  CategoryImage,
	"jpeg": CategoryImage,
	"webp": CategoryImage,
}

// Tree anchors all path resolution at a fixed storage root. The root is set
// once at construction and never changes afterwards.
type Tree struct {
	root string
}

// New creates a Tree rooted at the given directory. The root must be an
// absolute path; it is cleaned but never re-read from disk, so resolution
// stays purely lexical.
func New(root string) (*Tree, error) {
	if root == "" || !filepath.IsAbs(root) {
		return nil, fmt.Errorf("storage root must be an absolute path, got %q", root)
	}
	return &Tree{root: filepath.Clean(root)}, nil
}

// Root returns the storage root directory.
func (t *Tree) Root() string {
	return t.root
}
