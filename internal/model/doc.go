package model

// Package model defines domain data structures shared across the app: queue
// entries, platform tags, resolved media metadata, and status enums. Structures
// are designed for direct binding in the UI and explicit state transitions.
