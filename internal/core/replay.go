package core

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// ReplayMetric summarizes a replay in wall-clock terms.
type ReplayMetric struct {
	TotalTime       time.Duration
	UtilizationTime time.Duration
	IdleTime        time.Duration
}

// Replay plays a finished timeline back in real time, one tick lasting unit.
// Spans are handed to a single CPU worker through a work queue; idle gaps are
// slept through as well. It only reads the timeline and returns ctx.Err() if
// cancelled before the last span finishes.
func Replay(ctx context.Context, timeline *Timeline, unit time.Duration, logger *slog.Logger) (ReplayMetric, error) {
	if logger == nil {
		logger = slog.Default()
	}
	spans := timeline.Spans()
	cpuWorkQueue := make(chan Span)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		metric   ReplayMetric
		replayed int
		err      error
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(cpuWorkQueue)
		for _, span := range spans {
			select {
			case cpuWorkQueue <- span:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		defer wg.Done()
		startTime := time.Now()
		clock := 0
		for span := range cpuWorkQueue {
			if span.Start > clock {
				idle := time.Duration(span.Start-clock) * unit
				if err = sleep(ctx, idle); err != nil {
					cancel()
					break
				}
				metric.IdleTime += idle
			}
			logger.Info("process running", "pid", span.ProcessID, "start", span.Start, "end", span.End)
			busy := time.Duration(span.Duration()) * unit
			if err = sleep(ctx, busy); err != nil {
				cancel()
				break
			}
			metric.UtilizationTime += busy
			logger.Info("process yielded cpu", "pid", span.ProcessID, "at", span.End)
			clock = span.End
			replayed++
		}
		metric.TotalTime = time.Since(startTime)
	}()

	wg.Wait()
	if err == nil && replayed < len(spans) {
		err = ctx.Err()
	}
	return metric, err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
