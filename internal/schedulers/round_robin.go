package schedulers

import (
	"fmt"

	"cpu-scheduler-sim/internal/core"
)

// ScheduleRoundRobin cycles over processes in input order, granting each
// arrived one up to timeQuantum ticks per pass. There is no ready queue: a
// process arriving mid-pass waits until the pass reaches its index. A pass
// that grants nothing advances the clock by one idle tick.
func ScheduleRoundRobin(processes []core.Process, timeQuantum int) *core.Timeline {
	if timeQuantum <= 0 {
		panic(fmt.Sprintf("schedulers: time quantum %d", timeQuantum))
	}
	reset(processes)

	timeline := core.NewTimeline()
	currentTime, completed := 0, 0
	for completed < len(processes) {
		granted := false
		for i := range processes {
			p := &processes[i]
			if p.Arrival > currentTime || p.Completed() {
				continue
			}
			slice := min(p.Remaining, timeQuantum)
			timeline.Record(p.ID, currentTime, currentTime+slice)
			currentTime += slice
			granted = true
			if p.Run(slice, currentTime) {
				completed++
			}
		}
		if !granted {
			currentTime++
		}
	}
	return timeline
}
