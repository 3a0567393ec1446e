package main

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// WatchView shows the latest row in a table that refreshes every poll.
type WatchView struct {
	app       *tview.Application
	source    poller
	telemetry telemetry.TelemetryReader
	interval  time.Duration

	layout *tview.Flex
	header *tview.TextView
	table  *tview.Table
	status *tview.TextView

	dataMutex sync.RWMutex
	lastRow   Row
	lastErr   error
}

func NewWatchView(app *tview.Application, source poller, telemetryReader telemetry.TelemetryReader, statics []staticLine, pid uint32, interval time.Duration) *WatchView {
	ui := &WatchView{
		app:       app,
		source:    source,
		telemetry: telemetryReader,
		interval:  interval,
	}

	ui.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	ui.header.SetText(headerText(statics, pid))

	ui.table = tview.NewTable().SetBorders(false)
	ui.table.SetBorder(true).SetTitle("Metrics")
	for i, c := range defaultColumns {
		ui.table.SetCell(i, 0, tview.NewTableCell(c.label).SetTextColor(tcell.ColorYellow))
		ui.table.SetCell(i, 1, tview.NewTableCell("-").SetAlign(tview.AlignRight).SetExpansion(1))
	}

	ui.status = tview.NewTextView().SetDynamicColors(true)
	ui.status.SetBorder(true).SetTitle("Status")

	ui.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.header, len(statics)+1, 0, false).
		AddItem(ui.table, 0, 1, true).
		AddItem(ui.status, 4, 0, false)

	ui.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			ui.app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				ui.app.Stop()
				return nil
			}
		}
		return event
	})

	return ui
}

func headerText(statics []staticLine, pid uint32) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[::b]pmquery[::-]  pid [green]%d[-]\n", pid)
	for _, st := range statics {
		fmt.Fprintf(&b, "%s: [green]%s[-]\n", st.label, st.value)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (ui *WatchView) GetLayout() tview.Primitive { return ui.layout }

// Refresh polls once and stores the result for the next draw.
func (ui *WatchView) Refresh(ctx context.Context) {
	row, err := ui.source.Poll(ctx)

	ui.dataMutex.Lock()
	defer ui.dataMutex.Unlock()
	ui.lastErr = err
	if err == nil {
		ui.lastRow = row
	}
}

// draw copies the stored row into the widgets. Call from the UI goroutine.
func (ui *WatchView) draw() {
	ui.dataMutex.RLock()
	row, err := ui.lastRow, ui.lastErr
	ui.dataMutex.RUnlock()

	for i, c := range defaultColumns {
		cell := ui.table.GetCell(i, 1)
		v, isValue := row.Values[c.label]
		switch {
		case isValue:
			cell.SetText(fmt.Sprintf("%.2f", v))
		case row.Labels[c.label] != "":
			cell.SetText(row.Labels[c.label])
		case slices.Contains(row.Missing, c.label):
			cell.SetText("n/a").SetTextColor(tcell.ColorGray)
		default:
			cell.SetText("-")
		}
	}

	snapshot := ui.telemetry.Snapshot()
	text := fmt.Sprintf("polls %d (%.1f/s)  frames %d (%.1f/s)  avg latency %.3fms  errors %d",
		snapshot.PollsTotal, snapshot.PollsPerSecond,
		snapshot.FramesTotal, snapshot.FramesPerSecond,
		snapshot.AvgLatencyMs, snapshot.ErrorsTotal)
	if err != nil {
		text += "\n[red]" + tview.Escape(err.Error()) + "[-]"
	}
	ui.status.SetText(text)
}

// Run refreshes on every tick until the application stops or ctx is done.
func (ui *WatchView) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		ticker := time.NewTicker(ui.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				ui.app.Stop()
				return
			case <-ticker.C:
				ui.Refresh(ctx)
				ui.app.QueueUpdateDraw(ui.draw)
			}
		}
	}()

	return ui.app.SetRoot(ui.GetLayout(), true).Run()
}
