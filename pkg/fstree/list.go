package fstree

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// List reads the directory at absolute and returns one snapshot per child,
// directories first, then by name. Children that vanish between the
// directory read and their metadata probe are left out; a later listing
// would not contain them either.
func List(absolute, relative string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(absolute)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Path: absolute}
		}
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		entry, err := NewEntry(
			filepath.Join(absolute, dirEntry.Name()),
			path.Join(relative, dirEntry.Name()),
		)
		if err != nil {
			var notFoundErr NotFoundError
			if errors.As(err, &notFoundErr) {
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Less(entries[j])
	})

	return entries, nil
}
