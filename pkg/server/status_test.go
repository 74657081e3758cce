package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"nasfs/pkg/models"
)

// StatusTestSuite tests the status endpoint
type StatusTestSuite struct {
	suite.Suite
	env *testEnv
}

// SetupTest runs before each test
func (s *StatusTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
}

// TearDownTest runs after each test
func (s *StatusTestSuite) TearDownTest() {
	s.env.close()
}

// TestStatus tests the status response fields
func (s *StatusTestSuite) TestStatus() {
	rec := s.env.request(http.MethodGet, "/status", true)
	s.Equal(http.StatusOK, rec.Code)

	var status models.ServerStatus
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &status))

	s.Equal("test-v1.0.0", status.Version)
	s.NotEmpty(status.Uptime)
	s.GreaterOrEqual(status.UptimeSeconds, int64(0))
	s.Greater(status.Storage.Total, uint64(0))
	s.Equal(status.Storage.Total, status.Storage.Used+status.Storage.Available)
}

// TestStatusRequiresSession tests that status is a protected route
func (s *StatusTestSuite) TestStatusRequiresSession() {
	rec := s.env.request(http.MethodGet, "/status", false)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

// TestFormatUptime tests the uptime formatting
func (s *StatusTestSuite) TestFormatUptime() {
	s.Equal("0m", formatUptime(0))
	s.Equal("0m", formatUptime(59))
	s.Equal("1m", formatUptime(60))
	s.Equal("1h 0m", formatUptime(3600))
	s.Equal("1h 1m", formatUptime(3661))
	s.Equal("1d 1h 1m", formatUptime(90061))
}

// TestStorageInfo tests disk usage collection for the storage root
func (s *StatusTestSuite) TestStorageInfo() {
	info, err := storageInfo(s.env.storageDir)
	s.Require().NoError(err)
	s.Greater(info.Total, uint64(0))
	s.Equal(info.Total, info.Used+info.Available)
}

// TestStorageInfoMissingPath tests disk usage for a path that does not
// exist
func (s *StatusTestSuite) TestStorageInfoMissingPath() {
	_, err := storageInfo("/does/not/exist")
	s.Error(err)
}

// TestSuite runs the status test suite
func TestStatusSuite(t *testing.T) {
	suite.Run(t, new(StatusTestSuite))
}
