package core

import (
	"errors"
	"fmt"
)

// Upper bounds on what one process set may ask for. Preemptive policies step
// through every tick of the makespan for every process, so both are capped.
const (
	MaxProcesses = 1000
	MaxMakespan  = 1 << 16
)

var (
	ErrEmptyProcessSet    = errors.New("empty process set")
	ErrTooManyProcesses   = errors.New("too many processes")
	ErrMakespanTooLarge   = errors.New("schedule too long")
	ErrNegativeArrival    = errors.New("negative arrival time")
	ErrNonPositiveBurst   = errors.New("burst time must be positive")
	ErrDuplicateProcessID = errors.New("duplicate process id")
)

// Process is one simulated process. Arrival, Burst and Priority are inputs and
// never change; Remaining, Waiting and Turnaround are filled in by a policy.
// A lower Priority value means higher precedence.
type Process struct {
	ID         int
	Arrival    int
	Burst      int
	Priority   int
	Remaining  int
	Waiting    int
	Turnaround int
}

func NewProcess(id, arrival, burst, priority int) Process {
	return Process{
		ID:        id,
		Arrival:   arrival,
		Burst:     burst,
		Priority:  priority,
		Remaining: burst,
	}
}

// Completed reports whether the process has received all of its burst.
func (p *Process) Completed() bool {
	return p.Remaining == 0
}

// Completion is the simulated time at which the process finished.
func (p *Process) Completion() int {
	return p.Arrival + p.Turnaround
}

// Run grants the process ticks units of CPU ending at simulated time end and
// records waiting/turnaround once it completes. It returns true on completion.
func (p *Process) Run(ticks, end int) bool {
	if ticks <= 0 || ticks > p.Remaining {
		panic(fmt.Sprintf("core: pid %d granted %d ticks with %d remaining", p.ID, ticks, p.Remaining))
	}
	p.Remaining -= ticks
	if p.Remaining > 0 {
		return false
	}
	p.Turnaround = end - p.Arrival
	p.Waiting = p.Turnaround - p.Burst
	if p.Waiting < 0 {
		panic(fmt.Sprintf("core: pid %d finished at %d before it could", p.ID, end))
	}
	return true
}

// Validate rejects process sets no policy can schedule. The latest arrival
// plus the sum of all bursts bounds every policy's makespan and must not
// exceed MaxMakespan.
func Validate(processes []Process) error {
	if len(processes) == 0 {
		return ErrEmptyProcessSet
	}
	if len(processes) > MaxProcesses {
		return fmt.Errorf("%w: %d, at most %d", ErrTooManyProcesses, len(processes), MaxProcesses)
	}
	seen := make(map[int]struct{}, len(processes))
	latestArrival, totalBurst := 0, 0
	for _, p := range processes {
		if p.Arrival < 0 {
			return fmt.Errorf("%w: pid %d arrives at %d", ErrNegativeArrival, p.ID, p.Arrival)
		}
		if p.Burst <= 0 {
			return fmt.Errorf("%w: pid %d has burst %d", ErrNonPositiveBurst, p.ID, p.Burst)
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateProcessID, p.ID)
		}
		if p.Arrival > MaxMakespan || p.Burst > MaxMakespan {
			return fmt.Errorf("%w: pid %d exceeds %d ticks", ErrMakespanTooLarge, p.ID, MaxMakespan)
		}
		seen[p.ID] = struct{}{}
		latestArrival = max(latestArrival, p.Arrival)
		totalBurst += p.Burst
		if latestArrival+totalBurst > MaxMakespan {
			return fmt.Errorf("%w: more than %d ticks", ErrMakespanTooLarge, MaxMakespan)
		}
	}
	return nil
}

// Clone returns an independent copy of processes with the scheduling outputs
// reset, so every policy starts from the same input.
func Clone(processes []Process) []Process {
	clone := make([]Process, len(processes))
	for i, p := range processes {
		clone[i] = NewProcess(p.ID, p.Arrival, p.Burst, p.Priority)
	}
	return clone
}
