package job

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/model"
)

// fakeEngine is a scriptable engine for runner tests
type fakeEngine struct {
	resolveItems   []model.ResolvedItem
	resolveErr     error
	resolveStarted chan struct{} // closed when Resolve begins, if set
	resolveBlock   chan struct{} // Resolve waits for this (or ctx) when set
	ignoreCtx      bool          // when blocking, ignore ctx cancellation

	downloadErr     error
	downloadStarted chan struct{}
	downloadBlock   chan struct{}

	mu            sync.Mutex
	downloadCalls int
}

func (f *fakeEngine) Resolve(ctx context.Context, urls []string) ([]model.ResolvedItem, error) {
	if f.resolveStarted != nil {
		close(f.resolveStarted)
	}
	if f.resolveBlock != nil {
		if f.ignoreCtx {
			<-f.resolveBlock
		} else {
			select {
			case <-f.resolveBlock:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.resolveItems, nil
}

func (f *fakeEngine) Download(ctx context.Context, items []model.ResolvedItem, onItemDone func(int, error)) error {
	f.mu.Lock()
	f.downloadCalls++
	f.mu.Unlock()

	if f.downloadStarted != nil {
		close(f.downloadStarted)
	}
	if f.downloadBlock != nil {
		select {
		case <-f.downloadBlock:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.downloadErr != nil {
		return f.downloadErr
	}
	for i := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if onItemDone != nil {
			onItemDone(i, nil)
		}
	}
	return nil
}

func (f *fakeEngine) downloads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.downloadCalls
}

// recordingObserver captures every callback for assertions
type recordingObserver struct {
	mu       sync.Mutex
	phases   []Phase
	statuses []string
	resolved map[int]model.ResolvedItem
	itemErrs map[int]error

	finished chan finishedEvent
}

type finishedEvent struct {
	outcome Outcome
	err     error
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{
		resolved: make(map[int]model.ResolvedItem),
		itemErrs: make(map[int]error),
		finished: make(chan finishedEvent, 1),
	}
}

func (o *recordingObserver) JobPhase(_ Handle, phase Phase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phases = append(o.phases, phase)
}

func (o *recordingObserver) JobStatus(_ Handle, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, text)
}

func (o *recordingObserver) ItemResolved(_ Handle, index int, item model.ResolvedItem) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resolved[index] = item
}

func (o *recordingObserver) ItemDownloaded(_ Handle, index int, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.itemErrs[index] = err
}

func (o *recordingObserver) JobFinished(_ Handle, outcome Outcome, err error) {
	o.finished <- finishedEvent{outcome: outcome, err: err}
}

func (o *recordingObserver) sawStatus(text string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, s := range o.statuses {
		if strings.Contains(s, text) {
			return true
		}
	}
	return false
}

func (o *recordingObserver) waitFinished(t *testing.T) finishedEvent {
	t.Helper()
	select {
	case ev := <-o.finished:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("job did not finish in time")
		return finishedEvent{}
	}
}

func testSnapshot(t *testing.T) *config.Snapshot {
	t.Helper()
	return &config.Snapshot{OutputFolder: filepath.Join(t.TempDir(), "out")}
}

func TestRunSuccess(t *testing.T) {
	eng := &fakeEngine{resolveItems: []model.ResolvedItem{
		{SourceURL: "http://a", Title: "A"},
		{SourceURL: "http://b", Title: "B"},
	}}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	_, err := runner.Start([]string{"http://a", "http://b"}, testSnapshot(t))
	if err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeSuccess {
		t.Errorf("expected OutcomeSuccess, got %s (%v)", ev.outcome, ev.err)
	}
	if !obs.sawStatus("Resolving") {
		t.Error("expected a Resolving status")
	}
	if !obs.sawStatus("Downloading 2 item(s)") {
		t.Errorf("expected a download status, got %v", obs.statuses)
	}
	if len(obs.resolved) != 2 {
		t.Errorf("expected 2 resolved items, got %d", len(obs.resolved))
	}
	if err, ok := obs.itemErrs[0]; !ok || err != nil {
		t.Errorf("expected item 0 to download cleanly, got %v", err)
	}

	runner.Wait()
	if runner.Active() {
		t.Error("runner should be idle after the job finishes")
	}
}

func TestStartWhileRunning(t *testing.T) {
	eng := &fakeEngine{
		resolveStarted: make(chan struct{}),
		resolveBlock:   make(chan struct{}),
	}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("first Start() failed: %v", err)
	}
	<-eng.resolveStarted

	if _, err := runner.Start([]string{"http://b"}, testSnapshot(t)); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() should fail with ErrAlreadyRunning, got %v", err)
	}

	close(eng.resolveBlock)
	obs.waitFinished(t)
	runner.Wait()

	// A new job may start once the previous one is terminal.
	obs2 := newRecordingObserver()
	runner2 := NewRunner(&fakeEngine{}, obs2, zap.NewNop())
	if _, err := runner2.Start([]string{"http://c"}, testSnapshot(t)); err != nil {
		t.Errorf("Start() after completion should succeed, got %v", err)
	}
	obs2.waitFinished(t)
}

func TestConcurrentStartsExactlyOneWins(t *testing.T) {
	eng := &fakeEngine{resolveBlock: make(chan struct{})}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := runner.Start([]string{"http://a"}, testSnapshot(t))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, rejected int
	for err := range errs {
		if err == nil {
			ok++
		} else if errors.Is(err, ErrAlreadyRunning) {
			rejected++
		} else {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 || rejected != attempts-1 {
		t.Errorf("expected exactly one start to win, got ok=%d rejected=%d", ok, rejected)
	}

	close(eng.resolveBlock)
	obs.waitFinished(t)
}

func TestCancelDuringResolve(t *testing.T) {
	eng := &fakeEngine{
		resolveStarted: make(chan struct{}),
		resolveBlock:   make(chan struct{}), // never released; unblocks via ctx
	}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	<-eng.resolveStarted

	runner.Cancel()

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeCancelled {
		t.Errorf("expected OutcomeCancelled, got %s (%v)", ev.outcome, ev.err)
	}
	if eng.downloads() != 0 {
		t.Error("download phase must not run after a cancel during resolve")
	}
	if !obs.sawStatus("Stopping") {
		t.Errorf("expected a Stopping status, got %v", obs.statuses)
	}
}

func TestCancelDuringDownload(t *testing.T) {
	eng := &fakeEngine{
		resolveItems:    []model.ResolvedItem{{SourceURL: "http://a", Title: "A"}},
		downloadStarted: make(chan struct{}),
		downloadBlock:   make(chan struct{}),
	}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	<-eng.downloadStarted

	runner.Cancel()

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeCancelled {
		t.Errorf("expected OutcomeCancelled, got %s (%v)", ev.outcome, ev.err)
	}
}

func TestResolveTimeoutIsHardDeadline(t *testing.T) {
	eng := &fakeEngine{
		resolveBlock: make(chan struct{}),
		ignoreCtx:    true, // a hung engine must not hold the job hostage
	}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())
	runner.SetResolveTimeout(50 * time.Millisecond)

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %s", ev.outcome)
	}
	if !errors.Is(ev.err, ErrResolveTimeout) {
		t.Errorf("expected ErrResolveTimeout, got %v", ev.err)
	}
	if eng.downloads() != 0 {
		t.Error("download phase must not run after a resolve timeout")
	}

	close(eng.resolveBlock)
}

func TestEmptyResolveFinishesSuccessfully(t *testing.T) {
	eng := &fakeEngine{resolveItems: nil}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeNothingToDo {
		t.Errorf("expected OutcomeNothingToDo, got %s (%v)", ev.outcome, ev.err)
	}
	if ev.err != nil {
		t.Errorf("an empty resolve is not an error, got %v", ev.err)
	}
	if !obs.sawStatus("Nothing to download") {
		t.Errorf("expected a nothing-to-download status, got %v", obs.statuses)
	}
	if eng.downloads() != 0 {
		t.Error("download phase must not run for an empty resolve")
	}
}

func TestResolveErrorFailsJob(t *testing.T) {
	eng := &fakeEngine{resolveErr: errors.New("service unavailable")}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeFailed {
		t.Errorf("expected OutcomeFailed, got %s", ev.outcome)
	}
	if ev.err == nil || !strings.Contains(ev.err.Error(), "service unavailable") {
		t.Errorf("error detail should be preserved, got %v", ev.err)
	}
}

func TestDownloadErrorFailsJob(t *testing.T) {
	eng := &fakeEngine{
		resolveItems: []model.ResolvedItem{{SourceURL: "http://a", Title: "A"}},
		downloadErr:  errors.New("disk full"),
	}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeFailed {
		t.Errorf("expected OutcomeFailed, got %s", ev.outcome)
	}
}

func TestOutputPathFailureAbortsBeforeResolve(t *testing.T) {
	// A regular file where the output directory should be makes MkdirAll fail.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	eng := &fakeEngine{resolveStarted: make(chan struct{})}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	snap := &config.Snapshot{OutputFolder: filepath.Join(blocker, "out")}
	if _, err := runner.Start([]string{"http://a"}, snap); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	ev := obs.waitFinished(t)
	if ev.outcome != OutcomeFailed {
		t.Fatalf("expected OutcomeFailed, got %s", ev.outcome)
	}
	if !errors.Is(ev.err, ErrOutputPath) {
		t.Errorf("expected ErrOutputPath, got %v", ev.err)
	}
	select {
	case <-eng.resolveStarted:
		t.Error("resolve must not start when the output directory is unavailable")
	default:
	}
}

func TestResolvedCountCappedToURLCount(t *testing.T) {
	eng := &fakeEngine{resolveItems: []model.ResolvedItem{
		{Title: "A"}, {Title: "B"}, {Title: "C"},
	}}
	obs := newRecordingObserver()
	runner := NewRunner(eng, obs, zap.NewNop())

	if _, err := runner.Start([]string{"http://a", "http://b"}, testSnapshot(t)); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	obs.waitFinished(t)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if len(obs.resolved) != 2 {
		t.Errorf("resolved callbacks must be capped to the URL count, got %d", len(obs.resolved))
	}
}
