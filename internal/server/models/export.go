package models

// Export describes an uploaded snapshot of a user's bookmarks.
type Export struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Count int    `json:"count"`
}
