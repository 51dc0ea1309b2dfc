package domain

// StorageStats summarizes what the store currently holds.
type StorageStats struct {
	TotalEvents      int   `json:"total_events"`
	TotalMedia       int   `json:"total_media"`
	StorageUsedBytes int64 `json:"storage_used_bytes"`
}
