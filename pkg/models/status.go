package models

// ServerStatus reports the server build and the state of its storage.
type ServerStatus struct {
	Version       string      `json:"version"`
	Uptime        string      `json:"uptime"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	Storage       StorageInfo `json:"storage"`
}

// StorageInfo represents disk usage for the filesystem holding the storage
// root.
type StorageInfo struct {
	Total     uint64 `json:"total"`
	Used      uint64 `json:"used"`
	Available uint64 `json:"available"`
}
