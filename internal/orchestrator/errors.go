package orchestrator

import (
	"errors"
	"fmt"

	"github.com/tuanmtrinh/streamrip-gui/internal/model"
)

var (
	// ErrQueueEmpty means StartAll was called with no entries
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrNoURLs means Enqueue received only blank lines. A warning for the
	// user, not a fault; the queue is unchanged.
	ErrNoURLs = errors.New("no URLs to add")

	// ErrJobActive means Clear was called while a job is running. The job
	// updates entries by id and must not have them vanish underneath it.
	ErrJobActive = errors.New("a job is active")
)

// CredentialError blocks a start because a queued service's credentials are
// missing. The job never starts and queue entries are unaffected.
type CredentialError struct {
	Service model.Platform
	Reason  string
}

// Error implements the error interface
func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s credentials required: %s", e.Service, e.Reason)
}
