package activity

import "time"

// Event kinds recorded against a listing.
const (
	KindView       = "view"
	KindBookmark   = "bookmark"
	KindUnbookmark = "unbookmark"
)

// Event is a single interaction with a project listing. UserID is empty for
// anonymous views.
type Event struct {
	ProjectID  string    `json:"project_id"`
	UserID     string    `json:"user_id,omitempty"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}
