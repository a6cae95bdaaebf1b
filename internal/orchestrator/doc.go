package orchestrator

// Package orchestrator composes the queue store, credential gate and job
// runner behind the commands the window calls: enqueue, start all, stop all,
// clear. It owns mapping job lifecycle callbacks onto per-entry statuses and
// the aggregate status line.
