package models

import "nasfs/pkg/fstree"

// Listing represents the contents of one directory as served to clients:
// the path the caller asked for and its children, directories first.
type Listing struct {
	Path    string         `json:"path"`
	Entries []fstree.Entry `json:"entries"`
}
