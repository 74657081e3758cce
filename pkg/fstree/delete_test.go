package fstree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DeleteTestSuite tests category-dispatched deletion against a real
// directory
type DeleteTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupTest runs before each test
func (s *DeleteTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "fstree-delete-test-*")
	s.Require().NoError(err)
	s.tempDir = tempDir
}

// TearDownTest runs after each test
func (s *DeleteTestSuite) TearDownTest() {
	if s.tempDir != "" {
		_ = os.RemoveAll(s.tempDir)
	}
}

// TestDeleteFile tests single-node removal of a classified file
func (s *DeleteTestSuite) TestDeleteFile() {
	target := filepath.Join(s.tempDir, "song.mp3")
	sibling := filepath.Join(s.tempDir, "keep.mp3")
	s.Require().NoError(os.WriteFile(target, []byte("x"), 0600))
	s.Require().NoError(os.WriteFile(sibling, []byte("x"), 0600))

	category, _, err := Classify(target)
	s.Require().NoError(err)

	s.Require().NoError(Delete(target, category))

	_, err = os.Stat(target)
	s.True(os.IsNotExist(err))

	_, err = os.Stat(sibling)
	s.NoError(err)
}

// TestDeleteDirectoryRecursive tests that a populated directory goes away
// entirely
func (s *DeleteTestSuite) TestDeleteDirectoryRecursive() {
	target := filepath.Join(s.tempDir, "videos")
	s.Require().NoError(os.MkdirAll(filepath.Join(target, "season1"), 0750))
	s.Require().NoError(os.WriteFile(filepath.Join(target, "clip.mp4"), []byte("x"), 0600))
	s.Require().NoError(os.WriteFile(filepath.Join(target, "season1", "e01.mkv"), []byte("x"), 0600))

	sibling := filepath.Join(s.tempDir, "music")
	s.Require().NoError(os.Mkdir(sibling, 0750))

	s.Require().NoError(Delete(target, CategoryDirectory))

	_, err := os.Stat(target)
	s.True(os.IsNotExist(err))

	_, err = os.Stat(sibling)
	s.NoError(err)
}

// TestDeleteEmptyDirectory tests recursive removal of an empty directory
func (s *DeleteTestSuite) TestDeleteEmptyDirectory() {
	target := filepath.Join(s.tempDir, "empty")
	s.Require().NoError(os.Mkdir(target, 0750))

	s.Require().NoError(Delete(target, CategoryDirectory))

	_, err := os.Stat(target)
	s.True(os.IsNotExist(err))
}

// TestDeleteMissing tests that deleting a non-existent path reports not
// found, not a generic failure
func (s *DeleteTestSuite) TestDeleteMissing() {
	err := Delete(filepath.Join(s.tempDir, "gone.txt"), CategoryDocument)
	s.Require().Error(err)
	s.IsType(NotFoundError{}, err)
}

// TestDeleteTwice tests that the second delete of the same node fails the
// same way every time
func (s *DeleteTestSuite) TestDeleteTwice() {
	target := filepath.Join(s.tempDir, "once.txt")
	s.Require().NoError(os.WriteFile(target, []byte("x"), 0600))

	s.Require().NoError(Delete(target, CategoryDocument))

	err := Delete(target, CategoryDocument)
	s.Require().Error(err)
	s.IsType(NotFoundError{}, err)

	err = Delete(target, CategoryDocument)
	s.Require().Error(err)
	s.IsType(NotFoundError{}, err)
}

// TestDeleteFileTypeMismatch tests that a node reclassified as a directory
// is not deleted by a file dispatch
func (s *DeleteTestSuite) TestDeleteFileTypeMismatch() {
	target := filepath.Join(s.tempDir, "swapped.mp4")
	s.Require().NoError(os.Mkdir(target, 0750))
	s.Require().NoError(os.WriteFile(filepath.Join(target, "inner.txt"), []byte("x"), 0600))

	// Classified as a video file before the node became a directory.
	err := Delete(target, CategoryVideo)
	s.Require().Error(err)
	s.IsType(TypeMismatchError{}, err)

	mismatchErr, ok := err.(TypeMismatchError)
	s.Require().True(ok)
	s.Equal(CategoryVideo, mismatchErr.Expected)
	s.Equal(CategoryDirectory, mismatchErr.Actual)

	// Nothing was removed.
	_, statErr := os.Stat(filepath.Join(target, "inner.txt"))
	s.NoError(statErr)
}

// TestDeleteDirectoryTypeMismatch tests that a node reclassified as a file
// is not deleted by a directory dispatch
func (s *DeleteTestSuite) TestDeleteDirectoryTypeMismatch() {
	target := filepath.Join(s.tempDir, "swapped")
	s.Require().NoError(os.WriteFile(target, []byte("x"), 0600))

	// Classified as a directory before the node became a file.
	err := Delete(target, CategoryDirectory)
	s.Require().Error(err)
	s.IsType(TypeMismatchError{}, err)

	_, statErr := os.Stat(target)
	s.NoError(statErr)
}

// TestDeleteUnknownCategory tests that unknown files still delete as
// single nodes
func (s *DeleteTestSuite) TestDeleteUnknownCategory() {
	target := filepath.Join(s.tempDir, "blob.bin")
	s.Require().NoError(os.WriteFile(target, []byte("x"), 0600))

	category, _, err := Classify(target)
	s.Require().NoError(err)
	s.Equal(CategoryUnknown, category)

	s.Require().NoError(Delete(target, category))

	_, err = os.Stat(target)
	s.True(os.IsNotExist(err))
}

// TestDeleteSuite runs the delete test suite
func TestDeleteSuite(t *testing.T) {
	suite.Run(t, new(DeleteTestSuite))
}
