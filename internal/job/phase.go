package job

// Phase identifies where the active job is in its lifecycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseDownloading
	PhaseFinishing
	PhaseCancelling
)

// String returns the display name of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseResolving:
		return "Resolving"
	case PhaseDownloading:
		return "Downloading"
	case PhaseFinishing:
		return "Finishing"
	case PhaseCancelling:
		return "Cancelling"
	default:
		return "Unknown"
	}
}

// Outcome classifies how a finished job ended
type Outcome int

const (
	// OutcomeSuccess means the download phase completed normally
	OutcomeSuccess Outcome = iota

	// OutcomeNothingToDo means resolution returned zero items; this is a
	// valid terminal state, not a failure
	OutcomeNothingToDo

	// OutcomeCancelled means the user requested a stop
	OutcomeCancelled

	// OutcomeFailed means a phase aborted with an error
	OutcomeFailed
)

// String returns the display name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeNothingToDo:
		return "NothingToDo"
	case OutcomeCancelled:
		return "Cancelled"
	case OutcomeFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
