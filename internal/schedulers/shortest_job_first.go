package schedulers

import "cpu-scheduler-sim/internal/core"

// ScheduleShortestJobFirst is non-preemptive: shorter bursts first, ties by
// earlier arrival, then by input order.
func ScheduleShortestJobFirst(processes []core.Process) *core.Timeline {
	return runToCompletion(processes, func(a, b *core.Process) bool {
		if a.Burst != b.Burst {
			return a.Burst < b.Burst
		}
		return a.Arrival < b.Arrival
	})
}

// SchedulePreemptiveShortestJobFirst (shortest remaining time first) gives
// each tick to the arrived process with the least remaining work.
func SchedulePreemptiveShortestJobFirst(processes []core.Process) *core.Timeline {
	return runByTick(processes, func(a, b *core.Process) bool {
		return a.Remaining < b.Remaining
	})
}

// runByTick re-elects the running process every tick. better must be a strict
// ordering so that on a tie the lowest index keeps precedence. Processes stay
// in input order.
func runByTick(processes []core.Process, better func(a, b *core.Process) bool) *core.Timeline {
	reset(processes)

	timeline := core.NewTimeline()
	currentTime, completed := 0, 0
	for completed < len(processes) {
		selected := -1
		for i := range processes {
			p := &processes[i]
			if p.Arrival > currentTime || p.Completed() {
				continue
			}
			if selected == -1 || better(p, &processes[selected]) {
				selected = i
			}
		}
		if selected == -1 {
			currentTime++
			continue
		}

		timeline.Tick(processes[selected].ID, currentTime)
		currentTime++
		if processes[selected].Run(1, currentTime) {
			completed++
		}
	}
	return timeline
}
