package database

// EpisodeRecord is one row of the episodes table. Rows are written once and
// never updated or deleted.
type EpisodeRecord struct {
	Link        string
	Title       string
	Filename    string
	Published   string
	Description string
}
