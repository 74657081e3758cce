package fstree

import (
	"os"

	"nasfs/pkg/log"
)

// Delete removes the node at absolute according to its already-determined
// category: directories are removed recursively, everything else as a
// single node. The category alone decides which removal runs; the disk is
// probed once more only to detect that the node changed type since it was
// classified, and a mismatch aborts without removing anything.
func Delete(absolute string, category FileCategory) error {
	info, err := os.Stat(absolute)
	if os.IsNotExist(err) {
		return NotFoundError{Path: absolute}
	}
	if err != nil {
		return err
	}

	expectDir := category == CategoryDirectory
	if info.IsDir() != expectDir {
		actual, _ := classifyInfo(info.Name(), info.IsDir())
		log.Error().
			Str("path", absolute).
			Str("expected", string(category)).
			Str("actual", string(actual)).
			Msg("Node type changed between classification and delete")
		return TypeMismatchError{Path: absolute, Expected: category, Actual: actual}
	}

	if expectDir {
		err = os.RemoveAll(absolute)
	} else {
		err = os.Remove(absolute)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return NotFoundError{Path: absolute}
		}
		log.Error().Err(err).Str("path", absolute).Msg("Failed to delete node")
		return DeleteFailedError{Path: absolute}
	}

	log.Debug().Str("path", absolute).Str("category", string(category)).Msg("Node deleted")
	return nil
}
