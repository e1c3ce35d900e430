package util

import (
	"errors"
	"fmt"

	"cpu-scheduler-sim/internal/core"
)

var (
	ErrEmptyProcessSet   = core.ErrEmptyProcessSet
	ErrIncompleteProcess = errors.New("process has not completed")
)

// CalculateAverage reduces a scheduled process set to its average waiting and
// turnaround times. Every process must be complete.
func CalculateAverage(processes []core.Process) (averageWaitingTime, averageTurnAroundTime float64, err error) {
	if len(processes) == 0 {
		return 0, 0, ErrEmptyProcessSet
	}

	var waitingTimeSum, turnAroundTimeSum int
	for i := range processes {
		if !processes[i].Completed() {
			return 0, 0, fmt.Errorf("%w: pid %d has %d remaining", ErrIncompleteProcess, processes[i].ID, processes[i].Remaining)
		}
		waitingTimeSum += processes[i].Waiting
		turnAroundTimeSum += processes[i].Turnaround
	}

	processCount := float64(len(processes))
	averageWaitingTime = float64(waitingTimeSum) / processCount
	averageTurnAroundTime = float64(turnAroundTimeSum) / processCount
	return
}

// CalculateAverageResponse averages the delay between arrival and first
// execution, taken from the timeline.
func CalculateAverageResponse(processes []core.Process, timeline *core.Timeline) (float64, error) {
	if len(processes) == 0 {
		return 0, ErrEmptyProcessSet
	}
	var sum int
	for i := range processes {
		start, ok := timeline.FirstStart(processes[i].ID)
		if !ok {
			return 0, fmt.Errorf("%w: pid %d never ran", ErrIncompleteProcess, processes[i].ID)
		}
		sum += start - processes[i].Arrival
	}
	return float64(sum) / float64(len(processes)), nil
}

type CpuMetric struct {
	TotalTime       int
	UtilizationTime int
	IdleTime        int
	Utilization     float64
	Throughput      float64
	ContextSwitches int
}

// CalculateCpuMetrics derives CPU usage figures from a timeline covering
// processCount processes. Time is counted from tick 0.
func CalculateCpuMetrics(processCount int, timeline *core.Timeline) (CpuMetric, error) {
	if processCount == 0 {
		return CpuMetric{}, ErrEmptyProcessSet
	}
	total := timeline.End()
	if total == 0 {
		return CpuMetric{}, fmt.Errorf("%w: empty timeline", ErrIncompleteProcess)
	}
	busy := timeline.Busy()
	return CpuMetric{
		TotalTime:       total,
		UtilizationTime: busy,
		IdleTime:        total - busy,
		Utilization:     float64(busy) / float64(total),
		Throughput:      float64(processCount) / float64(total),
		ContextSwitches: timeline.ContextSwitches(),
	}, nil
}
