package queue

// Package queue implements the in-memory ordered store of download queue
// entries. Insertion order defines iteration order, entry ids are never
// reused, and per-entry statuses only move forward.
