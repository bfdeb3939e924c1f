package project

import "time"

// OwnerSnapshot is a denormalized copy of the owning user's profile, frozen
// at the time the listing is written. Later profile edits never reach
// existing listings.
type OwnerSnapshot struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	Avatar     string `json:"avatar"`
	Location   string `json:"location"`
	JoinedDate string `json:"joinedDate"`
}

// Collaborator is a snapshot of a user participating in the project.
type Collaborator struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// OpenRole describes an unfilled collaboration slot.
type OpenRole struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Commitment  string   `json:"commitment"`
}

// Update is a free-text progress note appended to a listing.
type Update struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

// Project is a collaboration listing.
type Project struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	LongDescription string         `json:"longDescription"`
	Owner           OwnerSnapshot  `json:"owner"`
	Category        string         `json:"category"`
	Skills          []string       `json:"skills"`
	Collaborators   []Collaborator `json:"collaborators"`
	OpenRoles       []OpenRole     `json:"openRoles"`
	Location        string         `json:"location"`
	StartDate       string         `json:"startDate"`
	Timeline        string         `json:"timeline"`
	Updates         []Update       `json:"updates"`
	CreatedAt       time.Time      `json:"createdAt"`
	LastActivityAt  time.Time      `json:"lastActivity"`
}

// CreateInput holds the client-supplied fields for a new listing. The owner
// snapshot is always built server-side from the authenticated user.
type CreateInput struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	LongDescription string     `json:"longDescription"`
	Category        string     `json:"category"`
	Skills          []string   `json:"skills"`
	OpenRoles       []OpenRole `json:"openRoles"`
	Location        string     `json:"location"`
	StartDate       string     `json:"startDate"`
	Timeline        string     `json:"timeline"`
}

// Sort orders accepted by the listing query engine.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortActivity  = "activity"
	SortOpenings  = "openings"
)

// ListingQuery holds the recognized browse/filter options.
type ListingQuery struct {
	Text         string
	Category     string
	Skills       []string
	HasOpenRoles bool
	SortBy       string
}
