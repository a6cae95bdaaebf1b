package ui

// Package ui builds the main window: the URL entry box, the queue table with
// per-entry statuses, the start/stop controls and the status bar. It contains
// presentation glue only; every state change goes through the orchestrator.
