package schedulers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/util"
)

const DefaultTimeQuantum = 3

var (
	ErrUnknownAlgorithm   = errors.New("unknown scheduling algorithm")
	ErrInvalidTimeQuantum = errors.New("time quantum must be positive")
)

type Algorithm string

const (
	FirstComeFirstServe        Algorithm = "fcfs"
	ShortestJobFirst           Algorithm = "sjf"
	PreemptiveShortestJobFirst Algorithm = "psjf"
	Priority                   Algorithm = "priority"
	PreemptivePriority         Algorithm = "ppriority"
	RoundRobin                 Algorithm = "rr"
)

// Algorithms lists every policy in the order ScheduleAll runs them.
var Algorithms = []Algorithm{
	FirstComeFirstServe,
	ShortestJobFirst,
	PreemptiveShortestJobFirst,
	Priority,
	PreemptivePriority,
	RoundRobin,
}

var titles = map[Algorithm]string{
	FirstComeFirstServe:        "First-come, first-serve",
	ShortestJobFirst:           "Shortest-job-first",
	PreemptiveShortestJobFirst: "Preemptive shortest-job-first",
	Priority:                   "Priority",
	PreemptivePriority:         "Preemptive priority",
	RoundRobin:                 "Round-robin",
}

func (a Algorithm) Title() string {
	if title, ok := titles[a]; ok {
		return title
	}
	return string(a)
}

func ParseAlgorithm(name string) (Algorithm, error) {
	algorithm := Algorithm(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := titles[algorithm]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
	return algorithm, nil
}

type Options struct {
	// TimeQuantum is the round-robin slice. Zero means DefaultTimeQuantum.
	TimeQuantum int
}

func (o Options) timeQuantum() (int, error) {
	switch {
	case o.TimeQuantum == 0:
		return DefaultTimeQuantum, nil
	case o.TimeQuantum < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidTimeQuantum, o.TimeQuantum)
	}
	return o.TimeQuantum, nil
}

// Result is the outcome of one policy over its own copy of the input.
type Result struct {
	Algorithm             Algorithm
	TimeQuantum           int
	Processes             []core.Process
	Timeline              *core.Timeline
	AverageWaitingTime    float64
	AverageTurnAroundTime float64
	AverageResponseTime   float64
	Cpu                   util.CpuMetric
}

// Schedule validates base and runs algorithm over a private copy of it.
// base is never modified.
func Schedule(algorithm Algorithm, base []core.Process, opts Options) (Result, error) {
	quantum, err := opts.timeQuantum()
	if err != nil {
		return Result{}, err
	}
	if err := core.Validate(base); err != nil {
		return Result{}, err
	}
	return schedule(algorithm, base, quantum)
}

// ScheduleAll runs every algorithm against identical copies of base.
func ScheduleAll(base []core.Process, opts Options) ([]Result, error) {
	quantum, err := opts.timeQuantum()
	if err != nil {
		return nil, err
	}
	if err := core.Validate(base); err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(Algorithms))
	for _, algorithm := range Algorithms {
		result, err := schedule(algorithm, base, quantum)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func schedule(algorithm Algorithm, base []core.Process, timeQuantum int) (Result, error) {
	processes := core.Clone(base)
	result := Result{Algorithm: algorithm, Processes: processes}

	switch algorithm {
	case FirstComeFirstServe:
		result.Timeline = ScheduleFirstComeFirstServe(processes)
	case ShortestJobFirst:
		result.Timeline = ScheduleShortestJobFirst(processes)
	case PreemptiveShortestJobFirst:
		result.Timeline = SchedulePreemptiveShortestJobFirst(processes)
	case Priority:
		result.Timeline = SchedulePriority(processes)
	case PreemptivePriority:
		result.Timeline = SchedulePreemptivePriority(processes)
	case RoundRobin:
		result.TimeQuantum = timeQuantum
		result.Timeline = ScheduleRoundRobin(processes, timeQuantum)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	slog.Debug("scheduled processes",
		"algorithm", string(algorithm),
		"processes", len(processes),
		"spans", result.Timeline.Len(),
		"makespan", result.Timeline.End(),
	)
	verify(processes, result.Timeline)

	var err error
	if result.AverageWaitingTime, result.AverageTurnAroundTime, err = util.CalculateAverage(processes); err != nil {
		return Result{}, err
	}
	if result.AverageResponseTime, err = util.CalculateAverageResponse(processes, result.Timeline); err != nil {
		return Result{}, err
	}
	if result.Cpu, err = util.CalculateCpuMetrics(len(processes), result.Timeline); err != nil {
		return Result{}, err
	}
	return result, nil
}

// verify panics if a policy broke the accounting every schedule must obey.
func verify(processes []core.Process, timeline *core.Timeline) {
	for i := range processes {
		p := &processes[i]
		if p.Remaining != 0 || p.Waiting < 0 || p.Turnaround != p.Waiting+p.Burst {
			panic(fmt.Sprintf("schedulers: inconsistent pid %d: %+v", p.ID, *p))
		}
		if ticks := timeline.Ticks(p.ID); ticks != p.Burst {
			panic(fmt.Sprintf("schedulers: pid %d ran %d ticks for burst %d", p.ID, ticks, p.Burst))
		}
	}
}
