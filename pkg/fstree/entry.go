package fstree

import "os"

// Entry is an immutable snapshot of one filesystem node, taken at
// construction time. It is never updated afterwards; a fresh listing takes
// fresh snapshots.
type Entry struct {
	Name         string       `json:"name"`
	RelativePath string       `json:"relative_path"`
	AbsolutePath string       `json:"-"`
	Category     FileCategory `json:"category"`
	Extension    string       `json:"extension"`
	SizeBytes    int64        `json:"size_bytes"`
}

// NewEntry builds the snapshot for the node at absolute, recording relative
// as its user-visible path. A single metadata probe supplies both the
// classification and the size.
func NewEntry(absolute, relative string) (Entry, error) {
	info, err := os.Stat(absolute)
	if os.IsNotExist(err) {
		return Entry{}, NotFoundError{Path: absolute}
	}
	if err != nil {
		return Entry{}, err
	}

	category, extension := classifyInfo(info.Name(), info.IsDir())

	// Directory sizes are filesystem metadata, not content, so they are
	// reported as zero.
	size := info.Size()
	if info.IsDir() {
		size = 0
	}

	return Entry{
		Name:         info.Name(),
		RelativePath: relative,
		AbsolutePath: absolute,
		Category:     category,
		Extension:    extension,
		SizeBytes:    size,
	}, nil
}

// IsDir reports whether the entry describes a directory.
func (e Entry) IsDir() bool {
	return e.Category == CategoryDirectory
}

// Less orders entries for listing display: directories sort before
// everything else, entries of the same kind sort by name. Names compare by
// code point, so the order is total for any pair of entries.
func (e Entry) Less(other Entry) bool {
	if e.IsDir() != other.IsDir() {
		return e.IsDir()
	}
	return e.Name < other.Name
}

// Equal reports whether two entries describe the same node. Identity is
// absolute path equality, not field-by-field comparison.
func (e Entry) Equal(other Entry) bool {
	return e.AbsolutePath == other.AbsolutePath
}
