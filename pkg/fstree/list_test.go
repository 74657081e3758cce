package fstree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ListTestSuite tests directory listings against a real directory
type ListTestSuite struct {
	suite.Suite
	tempDir string
}

// SetupTest runs before each test
func (s *ListTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "fstree-list-test-*")
	s.Require().NoError(err)
	s.tempDir = tempDir
}

// TearDownTest runs after each test
func (s *ListTestSuite) TearDownTest() {
	if s.tempDir != "" {
		_ = os.RemoveAll(s.tempDir)
	}
}

// populate creates a small mixed tree under the sandbox
func (s *ListTestSuite) populate() {
	for _, dir := range []string{"videos", "backup"} {
		s.Require().NoError(os.Mkdir(filepath.Join(s.tempDir, dir), 0750))
	}
	for _, file := range []string{"song.mp3", "notes.txt", "archive.zip"} {
		s.Require().NoError(os.WriteFile(filepath.Join(s.tempDir, file), []byte("x"), 0600))
	}
	s.Require().NoError(os.WriteFile(filepath.Join(s.tempDir, "videos", "clip.mp4"), []byte("xx"), 0600))
}

// TestListSorted tests that listings come back directories first, then by
// name
func (s *ListTestSuite) TestListSorted() {
	s.populate()

	entries, err := List(s.tempDir, "")
	s.Require().NoError(err)
	s.Require().Len(entries, 5)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}
	s.Equal([]string{"backup", "videos", "archive.zip", "notes.txt", "song.mp3"}, names)

	s.True(entries[0].IsDir())
	s.True(entries[1].IsDir())
	s.False(entries[2].IsDir())
}

// TestListChildPaths tests that child snapshots carry the parent-relative
// path
func (s *ListTestSuite) TestListChildPaths() {
	s.populate()

	entries, err := List(filepath.Join(s.tempDir, "videos"), "videos")
	s.Require().NoError(err)
	s.Require().Len(entries, 1)

	s.Equal("clip.mp4", entries[0].Name)
	s.Equal("videos/clip.mp4", entries[0].RelativePath)
	s.Equal(CategoryVideo, entries[0].Category)
	s.Equal(int64(2), entries[0].SizeBytes)
}

// TestListEmptyDirectory tests that an empty directory lists as an empty,
// non-nil slice
func (s *ListTestSuite) TestListEmptyDirectory() {
	entries, err := List(s.tempDir, "")
	s.Require().NoError(err)
	s.NotNil(entries)
	s.Empty(entries)
}

// TestListMissingDirectory tests the missing node error
func (s *ListTestSuite) TestListMissingDirectory() {
	_, err := List(filepath.Join(s.tempDir, "gone"), "gone")
	s.Require().Error(err)
	s.IsType(NotFoundError{}, err)
}

// TestListIsSnapshot tests that a listing does not observe later changes
func (s *ListTestSuite) TestListIsSnapshot() {
	s.populate()

	entries, err := List(s.tempDir, "")
	s.Require().NoError(err)
	countBefore := len(entries)

	s.Require().NoError(os.WriteFile(filepath.Join(s.tempDir, "new.txt"), []byte("x"), 0600))
	s.Len(entries, countBefore)
}

// TestListSuite runs the list test suite
func TestListSuite(t *testing.T) {
	suite.Run(t, new(ListTestSuite))
}
