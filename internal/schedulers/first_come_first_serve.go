package schedulers

import (
	"sort"

	"cpu-scheduler-sim/internal/core"
)

// ScheduleFirstComeFirstServe runs processes in arrival order. The slice is
// sorted in place and ends up in execution order.
func ScheduleFirstComeFirstServe(processes []core.Process) *core.Timeline {
	return runToCompletion(processes, func(a, b *core.Process) bool {
		return a.Arrival < b.Arrival
	})
}

// runToCompletion is the non-preemptive sweep: stable-sort by less, then give
// each process its whole burst, idling until it arrives if needed.
func runToCompletion(processes []core.Process, less func(a, b *core.Process) bool) *core.Timeline {
	reset(processes)
	sort.SliceStable(processes, func(i, j int) bool {
		return less(&processes[i], &processes[j])
	})

	timeline := core.NewTimeline()
	currentTime := 0
	for i := range processes {
		p := &processes[i]
		if currentTime < p.Arrival {
			currentTime = p.Arrival
		}
		timeline.Record(p.ID, currentTime, currentTime+p.Burst)
		currentTime += p.Burst
		p.Run(p.Burst, currentTime)
	}
	return timeline
}

func reset(processes []core.Process) {
	for i := range processes {
		processes[i].Remaining = processes[i].Burst
		processes[i].Waiting = 0
		processes[i].Turnaround = 0
	}
}
