package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/engine"
	"github.com/tuanmtrinh/streamrip-gui/internal/model"
	"github.com/tuanmtrinh/streamrip-gui/internal/platform"
)

// DefaultResolveTimeout bounds the resolve phase. Resolution talks to the
// external service before any download starts and must never hang on a dead
// network or bad credentials.
const DefaultResolveTimeout = 60 * time.Second

// Job id prefix
const jobIDPrefix = "job-"

// Handle identifies one started job
type Handle struct {
	ID string
}

// Observer receives job lifecycle callbacks. Calls arrive from the job
// goroutine in the order the job observes them; implementations must not block
// for long and must not call back into Runner.Start.
type Observer interface {
	// JobPhase reports a phase transition
	JobPhase(handle Handle, phase Phase)

	// JobStatus reports human-readable status text
	JobStatus(handle Handle, text string)

	// ItemResolved reports one resolved item, keyed by its position in the
	// job's URL snapshot
	ItemResolved(handle Handle, index int, item model.ResolvedItem)

	// ItemDownloaded reports one item's final download outcome; err is nil
	// on success
	ItemDownloaded(handle Handle, index int, err error)

	// JobFinished reports the terminal outcome; err is nil unless the
	// outcome is Failed or Cancelled
	JobFinished(handle Handle, outcome Outcome, err error)
}

// Runner owns the single active job and its cancellation. Exactly one job may
// be live at a time; Start while one is active fails with ErrAlreadyRunning.
type Runner struct {
	engine         engine.Engine
	observer       Observer
	logger         *zap.Logger
	resolveTimeout time.Duration

	mu     sync.Mutex
	active *activeJob
}

type activeJob struct {
	handle Handle
	urls   []string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRunner creates a runner over the given engine
func NewRunner(eng engine.Engine, observer Observer, logger *zap.Logger) *Runner {
	return &Runner{
		engine:         eng,
		observer:       observer,
		logger:         logger,
		resolveTimeout: DefaultResolveTimeout,
	}
}

// SetResolveTimeout overrides the bound on the resolve phase
func (r *Runner) SetResolveTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.resolveTimeout = d
	}
}

// Active reports whether a job is currently live
func (r *Runner) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeLocked() != nil
}

// activeLocked returns the live job, reaping one that already finished
func (r *Runner) activeLocked() *activeJob {
	if r.active == nil {
		return nil
	}
	select {
	case <-r.active.done:
		r.active = nil
		return nil
	default:
		return r.active
	}
}

// Start launches one resolve-then-download job over a snapshot of urls and
// returns immediately. The snapshot is copied; later queue edits never change
// the running job's workload.
func (r *Runner) Start(urls []string, cfg *config.Snapshot) (Handle, error) {
	r.mu.Lock()
	if r.activeLocked() != nil {
		r.mu.Unlock()
		return Handle{}, ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	j := &activeJob{
		handle: Handle{ID: newJobID()},
		urls:   append([]string(nil), urls...),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	r.active = j
	timeout := r.resolveTimeout
	r.mu.Unlock()

	go r.run(ctx, j, cfg, timeout)
	return j.handle, nil
}

// Cancel requests cooperative cancellation of the active job, if any. It
// returns immediately; termination is reported through the observer.
func (r *Runner) Cancel() {
	r.mu.Lock()
	j := r.activeLocked()
	r.mu.Unlock()
	if j == nil {
		return
	}

	j.cancel()
	select {
	case <-j.done:
		// Finished between the lookup and the cancel; nothing to report.
	default:
		r.observer.JobPhase(j.handle, PhaseCancelling)
		r.observer.JobStatus(j.handle, "Stopping…")
	}
}

// Wait blocks until the active job finishes. No-op when idle.
func (r *Runner) Wait() {
	r.mu.Lock()
	j := r.active
	r.mu.Unlock()
	if j != nil {
		<-j.done
	}
}

// run executes the job protocol and reports the terminal outcome
func (r *Runner) run(ctx context.Context, j *activeJob, cfg *config.Snapshot, resolveTimeout time.Duration) {
	outcome, err := r.execute(ctx, j, cfg, resolveTimeout)

	switch outcome {
	case OutcomeFailed:
		r.logger.Error("job failed",
			zap.String("job", j.handle.ID),
			zap.Error(err))
	case OutcomeCancelled:
		r.logger.Info("job cancelled", zap.String("job", j.handle.ID))
	default:
		r.logger.Info("job finished",
			zap.String("job", j.handle.ID),
			zap.String("outcome", outcome.String()))
	}

	r.observer.JobFinished(j.handle, outcome, err)

	r.mu.Lock()
	if r.active == j {
		r.active = nil
	}
	r.mu.Unlock()
	close(j.done)
}

type resolveResult struct {
	items []model.ResolvedItem
	err   error
}

// execute runs the resolve-then-download protocol. Every failure is folded
// into an Outcome here; nothing escapes to crash the caller.
func (r *Runner) execute(ctx context.Context, j *activeJob, cfg *config.Snapshot, resolveTimeout time.Duration) (Outcome, error) {
	if cfg.OutputFolder != "" {
		if err := platform.EnsureDir(cfg.OutputFolder); err != nil {
			return OutcomeFailed, fmt.Errorf("%w: %v", ErrOutputPath, err)
		}
	}

	// A cancel issued before the first suspension point must win over it.
	if err := ctx.Err(); err != nil {
		return OutcomeCancelled, err
	}

	r.observer.JobPhase(j.handle, PhaseResolving)
	r.observer.JobStatus(j.handle, "Resolving…")

	resolveCtx, cancelResolve := context.WithTimeout(ctx, resolveTimeout)
	defer cancelResolve()

	// The deadline is enforced here, not delegated: the wait is bounded even
	// if the engine ignores its context.
	resultCh := make(chan resolveResult, 1)
	go func() {
		items, err := r.engine.Resolve(resolveCtx, j.urls)
		resultCh <- resolveResult{items: items, err: err}
	}()

	var items []model.ResolvedItem
	select {
	case res := <-resultCh:
		if res.err != nil {
			if ctx.Err() != nil {
				return OutcomeCancelled, ctx.Err()
			}
			if errors.Is(res.err, context.DeadlineExceeded) {
				return OutcomeFailed, fmt.Errorf("%w after %s", ErrResolveTimeout, resolveTimeout)
			}
			return OutcomeFailed, fmt.Errorf("resolve: %w", res.err)
		}
		items = res.items
	case <-resolveCtx.Done():
		if ctx.Err() != nil {
			return OutcomeCancelled, ctx.Err()
		}
		return OutcomeFailed, fmt.Errorf("%w after %s", ErrResolveTimeout, resolveTimeout)
	}

	if err := ctx.Err(); err != nil {
		return OutcomeCancelled, err
	}

	// Extra URLs beyond the resolved count stay untouched by contract.
	count := len(items)
	if count > len(j.urls) {
		count = len(j.urls)
	}
	for i := 0; i < count; i++ {
		r.observer.ItemResolved(j.handle, i, items[i])
	}

	if len(items) == 0 {
		r.observer.JobStatus(j.handle, "Nothing to download.")
		return OutcomeNothingToDo, nil
	}

	r.observer.JobPhase(j.handle, PhaseDownloading)
	r.observer.JobStatus(j.handle, fmt.Sprintf("Downloading %d item(s)…", len(items)))

	err := r.engine.Download(ctx, items, func(index int, itemErr error) {
		r.observer.ItemDownloaded(j.handle, index, itemErr)
	})
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return OutcomeCancelled, err
		}
		return OutcomeFailed, fmt.Errorf("download: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return OutcomeCancelled, err
	}

	r.observer.JobPhase(j.handle, PhaseFinishing)
	return OutcomeSuccess, nil
}

// newJobID generates a unique job id using UUID v7 for time ordering
func newJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(jobIDPrefix+"%d", time.Now().UnixNano())
	}
	return jobIDPrefix + id.String()
}
