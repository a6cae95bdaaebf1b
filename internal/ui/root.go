package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/job"
	"github.com/tuanmtrinh/streamrip-gui/internal/model"
	"github.com/tuanmtrinh/streamrip-gui/internal/orchestrator"
	"github.com/tuanmtrinh/streamrip-gui/internal/platform"
)

// UI labels
const (
	LabelAddToQueue = "ADD TO QUEUE"
	LabelClearInput = "CLEAR"
	LabelClearQueue = "CLEAR QUEUE"
	LabelStart      = "START"
	LabelStop       = "STOP"

	DialogTitle = "Streamrip"

	URLPlaceholder = "Paste one URL per line…"
)

// RootUI represents the main window structure
type RootUI struct {
	window fyne.Window
	orch   *orchestrator.Orchestrator
	cfg    *config.Manager

	urlEntry    *widget.Entry
	startBtn    *widget.Button
	stopBtn     *widget.Button
	queueList   *widget.List
	statusLabel *widget.Label

	rowsMu   sync.Mutex
	rows     []model.QueueEntry
	rowIndex map[int64]int
}

// NewRootUI creates and wires the main window
func NewRootUI(window fyne.Window, orch *orchestrator.Orchestrator, cfg *config.Manager) *RootUI {
	ui := &RootUI{
		window:   window,
		orch:     orch,
		cfg:      cfg,
		rowIndex: make(map[int64]int),
	}

	// Orchestrator callbacks arrive from the job goroutine; every widget
	// touch is marshalled onto the UI thread via fyne.Do.
	orch.SetEntryCallback(ui.onEntryChanged)
	orch.SetStatusCallback(ui.onStatusChanged)
	orch.SetRunningCallback(ui.onRunningChanged)
	orch.SetQueueClearedCallback(ui.onQueueCleared)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all window components
func (ui *RootUI) setupUI() {
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder(URLPlaceholder)
	ui.urlEntry.Wrapping = fyne.TextWrapBreak

	addBtn := widget.NewButton(LabelAddToQueue, ui.onAddClick)
	clearInputBtn := widget.NewButton(LabelClearInput, func() { ui.urlEntry.SetText("") })
	clearQueueBtn := widget.NewButton(LabelClearQueue, ui.onClearQueueClick)
	ui.startBtn = widget.NewButton(LabelStart, ui.onStartClick)
	ui.stopBtn = widget.NewButton(LabelStop, ui.onStopClick)
	ui.stopBtn.Disable()

	buttonRow := container.NewHBox(addBtn, clearInputBtn, clearQueueBtn, ui.startBtn, ui.stopBtn)

	urlBox := container.NewBorder(nil, buttonRow, nil, nil, ui.urlEntry)

	ui.queueList = widget.NewList(ui.rowCount, newQueueRow, ui.updateQueueRow)
	queueHeader := container.NewGridWithColumns(3,
		widget.NewLabelWithStyle("ITEM", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("PLATFORM", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("STATUS", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	queueBox := container.NewBorder(queueHeader, nil, nil, nil, ui.queueList)

	split := container.NewVSplit(urlBox, queueBox)
	split.Offset = 0.35

	content := container.NewBorder(nil, ui.buildStatusBar(), nil, nil, split)
	ui.window.SetContent(content)
}

// buildStatusBar creates the bottom bar: status text, settings, version info
func (ui *RootUI) buildStatusBar() fyne.CanvasObject {
	ui.statusLabel = widget.NewLabel(ui.orch.Status())
	ui.statusLabel.Alignment = fyne.TextAlignCenter

	settingsBtn := widget.NewButton("Settings", ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	folderBtn := widget.NewButton("Open folder", ui.onOpenFolder)
	folderBtn.Importance = widget.LowImportance

	versionLabel := widget.NewLabel("streamrip v" + ui.cfg.Version())

	return container.NewBorder(nil, nil,
		container.NewHBox(settingsBtn, folderBtn),
		versionLabel,
		ui.statusLabel)
}

// rowCount returns the number of queue rows
func (ui *RootUI) rowCount() int {
	ui.rowsMu.Lock()
	defer ui.rowsMu.Unlock()
	return len(ui.rows)
}

// newQueueRow creates the template row: item, platform, status
func newQueueRow() fyne.CanvasObject {
	item := widget.NewLabel("")
	item.Truncation = fyne.TextTruncateEllipsis
	return container.NewGridWithColumns(3, item, widget.NewLabel(""), widget.NewLabel(""))
}

// updateQueueRow binds one queue entry to a row
func (ui *RootUI) updateQueueRow(id widget.ListItemID, obj fyne.CanvasObject) {
	ui.rowsMu.Lock()
	if id < 0 || id >= len(ui.rows) {
		ui.rowsMu.Unlock()
		return
	}
	entry := ui.rows[id]
	ui.rowsMu.Unlock()

	labels := obj.(*fyne.Container).Objects
	labels[0].(*widget.Label).SetText(entry.DisplayLabel)
	labels[1].(*widget.Label).SetText(entry.Platform.String())
	labels[2].(*widget.Label).SetText(entry.Status.String())
}

// onAddClick enqueues every non-blank line from the URL box
func (ui *RootUI) onAddClick() {
	lines := strings.Split(ui.urlEntry.Text, "\n")
	if _, err := ui.orch.Enqueue(lines); err != nil {
		if errors.Is(err, orchestrator.ErrNoURLs) {
			dialog.ShowInformation(DialogTitle, "Please paste at least one URL.", ui.window)
		}
		return
	}
	ui.urlEntry.SetText("")
}

// onClearQueueClick empties the queue unless a job is running
func (ui *RootUI) onClearQueueClick() {
	if err := ui.orch.Clear(); err != nil {
		if errors.Is(err, orchestrator.ErrJobActive) {
			dialog.ShowInformation(DialogTitle, "Stop the running job before clearing the queue.", ui.window)
		}
	}
}

// onStartClick starts a job over the queued URLs
func (ui *RootUI) onStartClick() {
	err := ui.orch.StartAll()
	if err == nil {
		return
	}

	var credErr *orchestrator.CredentialError
	switch {
	case errors.Is(err, orchestrator.ErrQueueEmpty):
		dialog.ShowInformation(DialogTitle, "Queue is empty.", ui.window)
	case errors.Is(err, job.ErrAlreadyRunning):
		dialog.ShowInformation(DialogTitle, "A job is already running.", ui.window)
	case errors.As(err, &credErr):
		title := fmt.Sprintf("%s credentials required", credErr.Service)
		dialog.ShowInformation(title, credErr.Reason, ui.window)
	default:
		dialog.ShowError(err, ui.window)
	}
}

// onStopClick requests cancellation of the running job
func (ui *RootUI) onStopClick() {
	ui.orch.StopAll()
}

// onOpenFolder reveals the output folder in the system file manager
func (ui *RootUI) onOpenFolder() {
	folder := ui.cfg.OutputFolder()
	if folder == "" {
		dialog.ShowInformation(DialogTitle, "No output folder configured.", ui.window)
		return
	}
	if err := platform.EnsureDir(folder); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if err := platform.OpenInFileManager(folder); err != nil {
		dialog.ShowError(err, ui.window)
	}
}

// onEntryChanged upserts the row for a changed entry and refreshes the list
func (ui *RootUI) onEntryChanged(entry model.QueueEntry) {
	ui.rowsMu.Lock()
	if idx, exists := ui.rowIndex[entry.ID]; exists {
		ui.rows[idx] = entry
	} else {
		ui.rowIndex[entry.ID] = len(ui.rows)
		ui.rows = append(ui.rows, entry)
	}
	ui.rowsMu.Unlock()

	fyne.Do(func() { ui.queueList.Refresh() })
}

// onQueueCleared drops all rows
func (ui *RootUI) onQueueCleared() {
	ui.rowsMu.Lock()
	ui.rows = nil
	ui.rowIndex = make(map[int64]int)
	ui.rowsMu.Unlock()

	fyne.Do(func() { ui.queueList.Refresh() })
}

// onStatusChanged updates the status bar text
func (ui *RootUI) onStatusChanged(text string) {
	fyne.Do(func() { ui.statusLabel.SetText(text) })
}

// onRunningChanged flips the start/stop controls with the job lifecycle.
// Liveness is re-read at dispatch time; a job that finished between the event
// and the dispatch wins over the stale flag.
func (ui *RootUI) onRunningChanged(bool) {
	fyne.Do(func() {
		if ui.orch.Running() {
			ui.startBtn.Disable()
			ui.stopBtn.Enable()
		} else {
			ui.startBtn.Enable()
			ui.stopBtn.Disable()
		}
	})
}
