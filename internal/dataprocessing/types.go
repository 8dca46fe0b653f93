package dataprocessing

// ParseStats accounts for every row seen while loading the dataset. Skipped
// rows are reported, not fatal: the pipeline runs on whatever survives.
type ParseStats struct {
	RowsRead          int `json:"rows_read"`
	RowsKept          int `json:"rows_kept"`
	SkippedMissingKey int `json:"skipped_missing_key"`
	SkippedBadCount   int `json:"skipped_bad_count"`
}

// Skipped returns the total number of excluded rows.
func (s ParseStats) Skipped() int {
	return s.SkippedMissingKey + s.SkippedBadCount
}
