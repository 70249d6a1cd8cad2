package models

import "time"

// JournalEntry is one writing session. Entries are addressed by
// (OwnerID, Date); Date is whatever unique token the client supplies for the
// session, typically a timestamp.
type JournalEntry struct {
	OwnerID         string    `json:"ownerId"`
	Date            string    `json:"date"`
	Title           string    `json:"title,omitempty"`
	Content         string    `json:"content"`
	WordCount       int       `json:"wordCount"`
	DurationMinutes int       `json:"duration"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
