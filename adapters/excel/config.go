package excel

// SnapshotConfig holds configuration for the snapshot data source
type SnapshotConfig struct {
	FilePath string `json:"file_path"`
	Enabled  bool   `json:"enabled"`
}

// DefaultSnapshotConfig returns defaults for snapshot loading
func DefaultSnapshotConfig() SnapshotConfig {
	return SnapshotConfig{
		Enabled: false,
	}
}
