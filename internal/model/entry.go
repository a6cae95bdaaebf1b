package model

import "time"

// QueueEntry represents a single user-submitted URL tracked through one
// download session. IDs are assigned at insertion, are unique for the life of
// the store, and preserve insertion order.
type QueueEntry struct {
	ID           int64
	SourceURL    string
	Platform     Platform
	DisplayLabel string // SourceURL until resolution supplies a prettier label
	Status       EntryStatus
	AddedAt      time.Time
}
