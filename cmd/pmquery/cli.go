package main

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/xnaught/PresentMon-sub004/pkg/telemetry"
)

// poller is the part of App the runners use.
type poller interface {
	Poll(ctx context.Context) (Row, error)
}

// CLI prints one log line per poll and a periodic status summary.
type CLI struct {
	source       poller
	telemetry    telemetry.TelemetryReader
	interval     time.Duration
	statusPeriod time.Duration
	logger       *log.Logger

	// State
	lastSnapshot telemetry.Snapshot
	done         chan struct{}
}

func NewCLI(source poller, telemetryReader telemetry.TelemetryReader, interval time.Duration, logger *log.Logger) *CLI {
	return &CLI{
		source:       source,
		telemetry:    telemetryReader,
		interval:     interval,
		statusPeriod: 10 * time.Second,
		logger:       logger,
		done:         make(chan struct{}),
	}
}

// Run polls until ctx is cancelled or Stop is called.
func (c *CLI) Run(ctx context.Context) error {
	c.logger.Printf("Polling every %v", c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	status := time.NewTicker(c.statusPeriod)
	defer status.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Printf("Shutting down...")
			return nil
		case <-c.done:
			return nil
		case <-ticker.C:
			row, err := c.source.Poll(ctx)
			if err != nil {
				c.SetError(err.Error())
				continue
			}
			c.logger.Print(formatRow(row))
		case <-status.C:
			c.printStatus()
		}
	}
}

// SetError logs an error message
func (c *CLI) SetError(err string) {
	c.logger.Printf("ERROR: %s", err)
}

func (c *CLI) Stop() {
	close(c.done)
}

func (c *CLI) printStatus() {
	snapshot := c.telemetry.Snapshot()

	if c.shouldPrintStatus(snapshot) {
		c.logger.Printf("Status - Polls: total=%d, rate=%.1f/s, frames=%d (%.1f/s), errors=%d",
			snapshot.PollsTotal,
			snapshot.PollsPerSecond,
			snapshot.FramesTotal,
			snapshot.FramesPerSecond,
			snapshot.ErrorsTotal)
		c.logger.Printf("Latency - avg=%.3fms, max=%.3fms, tracked=%v",
			snapshot.AvgLatencyMs,
			snapshot.MaxLatencyMs,
			snapshot.TrackedPids)
	}

	c.lastSnapshot = snapshot
}

// shouldPrintStatus reports whether anything changed since the last status.
func (c *CLI) shouldPrintStatus(snapshot telemetry.Snapshot) bool {
	if c.lastSnapshot.PollsTotal == 0 && c.lastSnapshot.FramesTotal == 0 {
		return true
	}
	if snapshot.PollsTotal != c.lastSnapshot.PollsTotal ||
		snapshot.FramesTotal != c.lastSnapshot.FramesTotal {
		return true
	}
	if snapshot.ErrorsTotal > c.lastSnapshot.ErrorsTotal {
		return true
	}
	return len(snapshot.TrackedPids) != len(c.lastSnapshot.TrackedPids)
}

// formatRow renders values in column order, then labels.
func formatRow(row Row) string {
	var b strings.Builder
	for _, c := range defaultColumns {
		if v, ok := row.Values[c.label]; ok {
			fmt.Fprintf(&b, "%s=%.2f ", c.label, v)
		} else if s, ok := row.Labels[c.label]; ok {
			fmt.Fprintf(&b, "%s=%q ", c.label, s)
		}
	}
	if row.Frames > 0 {
		fmt.Fprintf(&b, "frames=%d max_frame_ms=%.2f ", row.Frames, row.MaxFrameMs)
	}
	if len(row.Missing) > 0 {
		missing := append([]string(nil), row.Missing...)
		sort.Strings(missing)
		fmt.Fprintf(&b, "unavailable=%s", strings.Join(missing, ","))
	}
	if b.Len() == 0 {
		return "no data in window"
	}
	return strings.TrimSpace(b.String())
}
