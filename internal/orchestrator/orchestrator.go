package orchestrator

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/engine"
	"github.com/tuanmtrinh/streamrip-gui/internal/job"
	"github.com/tuanmtrinh/streamrip-gui/internal/model"
	"github.com/tuanmtrinh/streamrip-gui/internal/queue"
)

// Idle status line
const statusIdle = "Idle"

// Orchestrator is the public-facing controller for the download queue. The UI
// calls its commands and receives queue and status events through the
// callbacks; the job runner reports into it from the job goroutine.
type Orchestrator struct {
	store  *queue.Store
	runner *job.Runner
	cfg    *config.Manager
	logger *zap.Logger

	mu         sync.Mutex
	jobIDs     []int64 // entry ids snapshot of the running job, by position
	statusText string

	onEntry   func(model.QueueEntry)
	onStatus  func(string)
	onRunning func(bool)
	onCleared func()
}

// New creates an orchestrator over the given config manager and engine
func New(cfg *config.Manager, eng engine.Engine, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		store:      queue.NewStore(),
		cfg:        cfg,
		logger:     logger,
		statusText: statusIdle,
	}
	o.runner = job.NewRunner(eng, o, logger)
	o.store.SetChangeCallback(o.notifyEntry)
	return o
}

// Runner exposes the job runner, mainly so callers can tune its timeouts
func (o *Orchestrator) Runner() *job.Runner {
	return o.runner
}

// SetEntryCallback sets the callback invoked with a copy of every added or
// updated queue entry. Must be set before commands are issued.
func (o *Orchestrator) SetEntryCallback(callback func(model.QueueEntry)) {
	o.onEntry = callback
}

// SetStatusCallback sets the callback for aggregate status text updates
func (o *Orchestrator) SetStatusCallback(callback func(string)) {
	o.onStatus = callback
}

// SetRunningCallback sets the callback invoked when a job starts or finishes
func (o *Orchestrator) SetRunningCallback(callback func(bool)) {
	o.onRunning = callback
}

// SetQueueClearedCallback sets the callback invoked after the queue is cleared
func (o *Orchestrator) SetQueueClearedCallback(callback func()) {
	o.onCleared = callback
}

// Enqueue appends every non-blank line as a Pending queue entry and returns
// the created entries. Only blank input yields ErrNoURLs, a user warning that
// leaves the queue unchanged.
func (o *Orchestrator) Enqueue(urls []string) ([]model.QueueEntry, error) {
	added := o.store.Append(urls)
	if len(added) == 0 {
		return nil, ErrNoURLs
	}
	o.logger.Info("urls enqueued", zap.Int("count", len(added)))
	return added, nil
}

// Queue returns copies of all entries in insertion order
func (o *Orchestrator) Queue() []model.QueueEntry {
	return o.store.Entries()
}

// Status returns the current aggregate status text
func (o *Orchestrator) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statusText
}

// Running reports whether a job is currently live
func (o *Orchestrator) Running() bool {
	return o.runner.Active()
}

// StartAll starts one job over a snapshot of all queued URLs. It fails fast
// with ErrQueueEmpty or job.ErrAlreadyRunning, and with a CredentialError when
// the gate blocks; in every failure case no job is created.
func (o *Orchestrator) StartAll() error {
	if err := o.startAll(); err != nil {
		return err
	}
	o.notifyRunning(true)
	return nil
}

// startAll performs the gated start under the orchestrator lock. Callbacks
// are invoked by the caller after the lock is released.
func (o *Orchestrator) startAll() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.store.Len() == 0 {
		return ErrQueueEmpty
	}
	if o.runner.Active() {
		return job.ErrAlreadyRunning
	}

	snapshot, err := o.cfg.Snapshot()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	urls := o.store.SnapshotURLs()
	if gate := CheckCredentials(urls, snapshot); gate.Blocked {
		o.logger.Warn("start blocked by credential gate",
			zap.String("service", gate.Service.String()))
		return &CredentialError{Service: gate.Service, Reason: gate.Reason}
	}

	// The id snapshot must be in place before the job goroutine can report.
	o.jobIDs = o.store.SnapshotIDs()
	if _, err := o.runner.Start(urls, snapshot); err != nil {
		o.jobIDs = nil
		return err
	}

	o.logger.Info("job started", zap.Int("urls", len(urls)))
	return nil
}

// StopAll requests cooperative cancellation of the active job; no-op when idle
func (o *Orchestrator) StopAll() {
	o.runner.Cancel()
}

// Clear empties the queue. Rejected with ErrJobActive while a job runs: the
// job updates entries by id and must not have them disappear mid-flight.
func (o *Orchestrator) Clear() error {
	if o.runner.Active() {
		return ErrJobActive
	}
	o.store.Clear()
	if o.onCleared != nil {
		o.onCleared()
	}
	return nil
}

// snapshotJobIDs returns the entry ids of the running job
func (o *Orchestrator) snapshotJobIDs() []int64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.jobIDs
}

// JobPhase implements job.Observer. The downloading transition marks every
// resolved entry before per-item completions start arriving.
func (o *Orchestrator) JobPhase(_ job.Handle, phase job.Phase) {
	if phase != job.PhaseDownloading {
		return
	}
	for _, id := range o.snapshotJobIDs() {
		entry, ok := o.store.Entry(id)
		if !ok || entry.Status != model.StatusQueued {
			continue
		}
		o.setEntryStatus(id, model.StatusDownloading)
	}
}

// JobStatus implements job.Observer
func (o *Orchestrator) JobStatus(_ job.Handle, text string) {
	o.setStatus(text)
}

// ItemResolved implements job.Observer: the entry at the item's position gets
// its pretty label and becomes Queued. Terminal entries from earlier sessions
// are left untouched.
func (o *Orchestrator) ItemResolved(_ job.Handle, index int, item model.ResolvedItem) {
	ids := o.snapshotJobIDs()
	if index < 0 || index >= len(ids) {
		return
	}
	id := ids[index]

	entry, ok := o.store.Entry(id)
	if !ok || entry.Status.IsTerminal() {
		return
	}
	if err := o.store.SetLabel(id, item.Label()); err != nil {
		o.logger.Error("set label", zap.Int64("entry", id), zap.Error(err))
	}
	o.setEntryStatus(id, model.StatusQueued)
}

// ItemDownloaded implements job.Observer
func (o *Orchestrator) ItemDownloaded(_ job.Handle, index int, err error) {
	ids := o.snapshotJobIDs()
	if index < 0 || index >= len(ids) {
		return
	}
	if err != nil {
		o.setEntryStatus(ids[index], model.StatusFailed)
		return
	}
	o.setEntryStatus(ids[index], model.StatusDone)
}

// JobFinished implements job.Observer: fold the job outcome into terminal
// entry statuses and the aggregate status line
func (o *Orchestrator) JobFinished(_ job.Handle, outcome job.Outcome, err error) {
	switch outcome {
	case job.OutcomeSuccess:
		o.sweepEntries(model.StatusDone, func(s model.EntryStatus) bool {
			return s == model.StatusDownloading
		})
		o.setStatus("Finished.")

	case job.OutcomeNothingToDo:
		// Status already reads "Nothing to download."; entries stay Pending.

	case job.OutcomeCancelled:
		o.sweepEntries(model.StatusStopped, func(s model.EntryStatus) bool {
			return !s.IsTerminal()
		})
		o.setStatus("Stopped.")

	case job.OutcomeFailed:
		o.sweepEntries(model.StatusFailed, func(s model.EntryStatus) bool {
			return !s.IsTerminal()
		})
		if errors.Is(err, job.ErrResolveTimeout) {
			o.setStatus("Resolution timed out (check credentials/network).")
		} else {
			o.setStatus(fmt.Sprintf("Failed: %v", err))
		}
	}

	o.mu.Lock()
	o.jobIDs = nil
	o.mu.Unlock()
	o.notifyRunning(false)
}

// sweepEntries moves every job entry matching the predicate to status
func (o *Orchestrator) sweepEntries(status model.EntryStatus, match func(model.EntryStatus) bool) {
	for _, id := range o.snapshotJobIDs() {
		entry, ok := o.store.Entry(id)
		if !ok || !match(entry.Status) {
			continue
		}
		o.setEntryStatus(id, status)
	}
}

// setEntryStatus applies a transition, logging invariant violations loudly
// instead of swallowing them
func (o *Orchestrator) setEntryStatus(id int64, status model.EntryStatus) {
	if err := o.store.SetStatus(id, status); err != nil {
		o.logger.Error("entry status transition rejected",
			zap.Int64("entry", id),
			zap.String("to", status.String()),
			zap.Error(err))
	}
}

// setStatus updates the aggregate status line and notifies the UI
func (o *Orchestrator) setStatus(text string) {
	o.mu.Lock()
	o.statusText = text
	o.mu.Unlock()
	if o.onStatus != nil {
		o.onStatus(text)
	}
}

// notifyEntry forwards store changes to the UI callback
func (o *Orchestrator) notifyEntry(entry model.QueueEntry) {
	if o.onEntry != nil {
		o.onEntry(entry)
	}
}

// notifyRunning reports job liveness flips to the UI callback
func (o *Orchestrator) notifyRunning(running bool) {
	if o.onRunning != nil {
		o.onRunning(running)
	}
}
