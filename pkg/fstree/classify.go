package fstree

import (
	"os"
	"strings"
)

// Classify inspects the node at absolute and returns its category and
// extension. It performs a single metadata probe; a missing node is a
// NotFoundError and any other probe failure propagates unchanged.
func Classify(absolute string) (FileCategory, string, error) {
	info, err := os.Stat(absolute)
	if os.IsNotExist(err) {
		return "", "", NotFoundError{Path: absolute}
	}
	if err != nil {
		return "", "", err
	}

	category, extension := classifyInfo(info.Name(), info.IsDir())
	return category, extension, nil
}

// classifyInfo derives category and extension from metadata alone.
// Directories always classify as directories, regardless of any dotted
// suffix in the name.
func classifyInfo(name string, isDir bool) (FileCategory, string) {
	if isDir {
		return CategoryDirectory, ""
	}

	extension := extensionOf(name)
	if category, ok := categoryByExtension[extension]; ok {
		return category, extension
	}
	return CategoryUnknown, extension
}

// extensionOf returns the part of the base name after the final dot,
// without the dot. A name with no dot has no extension.
func extensionOf(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}
