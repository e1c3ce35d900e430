package schedulers

import "cpu-scheduler-sim/internal/core"

// SchedulePriority is non-preemptive: lower priority value first, ties by
// earlier arrival, then by input order.
func SchedulePriority(processes []core.Process) *core.Timeline {
	return runToCompletion(processes, func(a, b *core.Process) bool {
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.Arrival < b.Arrival
	})
}

func SchedulePreemptivePriority(processes []core.Process) *core.Timeline {
	return runByTick(processes, func(a, b *core.Process) bool {
		return a.Priority < b.Priority
	})
}
