package server

import (
	"net/http"
	"strconv"
	"syscall"
	"time"

	"nasfs/pkg/log"
	"nasfs/pkg/models"

	"github.com/labstack/echo/v4"
)

// getStatus handles GET /status requests.
func (nas *NASServer) getStatus(ctx echo.Context) error {
	storage, err := storageInfo(nas.tree.Root())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read storage usage")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to read storage usage",
		})
	}

	uptime := int64(time.Since(nas.startedAt).Seconds())

	return ctx.JSON(http.StatusOK, models.ServerStatus{
		Version:       nas.version,
		Uptime:        formatUptime(uptime),
		UptimeSeconds: uptime,
		Storage:       *storage,
	})
}

// storageInfo gets disk usage information for the storage root.
func storageInfo(path string) (*models.StorageInfo, error) {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		return nil, err
	}

	// Convert syscall values to uint64 safely
	blockSize := uint64(stat.Bsize) // #nosec G115 - syscall values are system dependent

	total := stat.Blocks * blockSize
	available := stat.Bavail * blockSize
	used := total - available

	return &models.StorageInfo{
		Total:     total,
		Used:      used,
		Available: available,
	}, nil
}

// formatUptime converts seconds to human-readable format.
func formatUptime(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	const hoursInDay = 24
	const minutesInHour = 60
	days := int(duration.Hours()) / hoursInDay
	hours := int(duration.Hours()) % hoursInDay
	minutes := int(duration.Minutes()) % minutesInHour

	switch {
	case days > 0:
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	default:
		return strconv.Itoa(minutes) + "m"
	}
}
