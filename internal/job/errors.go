package job

import "errors"

var (
	// ErrAlreadyRunning means Start was called while a prior job is not yet
	// terminal. Jobs are never queued implicitly.
	ErrAlreadyRunning = errors.New("a job is already running")

	// ErrOutputPath means the configured output directory could not be
	// created; the job aborts before any network activity
	ErrOutputPath = errors.New("output directory unavailable")

	// ErrResolveTimeout means the resolve phase exceeded its deadline
	ErrResolveTimeout = errors.New("resolution timed out")
)
