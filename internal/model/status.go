package model

// EntryStatus represents the lifecycle status of a queue entry
type EntryStatus string

const (
	// StatusPending means the entry is queued but no job has picked it up yet
	StatusPending EntryStatus = "Pending"

	// StatusQueued means a job resolved the entry and will download it
	StatusQueued EntryStatus = "Queued"

	// StatusDownloading means the download phase reached this entry
	StatusDownloading EntryStatus = "Downloading"

	// StatusDone means the entry downloaded successfully
	StatusDone EntryStatus = "Done"

	// StatusStopped means the entry's job was cancelled by the user
	StatusStopped EntryStatus = "Stopped"

	// StatusFailed means the entry's job ended with an error
	StatusFailed EntryStatus = "Failed"
)

// String returns the string representation of EntryStatus
func (es EntryStatus) String() string {
	return string(es)
}

// IsTerminal returns true if the status can no longer change for this session.
// Terminal entries are only removed by clearing the queue, never reset in place.
func (es EntryStatus) IsTerminal() bool {
	return es == StatusDone || es == StatusStopped || es == StatusFailed
}

// rank orders the non-terminal statuses so that legal transitions only move
// forward. Terminal statuses share the highest rank.
func (es EntryStatus) rank() int {
	switch es {
	case StatusPending:
		return 0
	case StatusQueued:
		return 1
	case StatusDownloading:
		return 2
	case StatusDone, StatusStopped, StatusFailed:
		return 3
	default:
		return -1
	}
}

// CanTransitionTo returns true if moving from es to next is a legal forward
// step. Setting the same status again is allowed and treated as a no-op.
func (es EntryStatus) CanTransitionTo(next EntryStatus) bool {
	if es == next {
		return true
	}
	if es.IsTerminal() {
		return false
	}
	from, to := es.rank(), next.rank()
	if from < 0 || to < 0 {
		return false
	}
	return to > from
}
