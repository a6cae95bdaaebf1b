package job

// Package job drives a single resolve-then-download execution against the
// download engine. At most one job is live at a time; cancellation is
// cooperative and observed at phase boundaries, never preemptive.
