package requests

import "cpu-scheduler-sim/internal/core"

type Job struct {
	ProcessId   int `json:"process_id"`
	ArrivalTime int `json:"arrival_time"`
	BurstTime   int `json:"burst_time"`
	Priority    int `json:"priority"`
}

type ScheduleRequests struct {
	Jobs        []Job `json:"jobs"`
	TimeQuantum int   `json:"time_quantum,omitempty"`
}

// Processes converts the jobs into process records, keeping request order.
func (r *ScheduleRequests) Processes() []core.Process {
	processes := make([]core.Process, 0, len(r.Jobs))
	for _, job := range r.Jobs {
		processes = append(processes, core.NewProcess(job.ProcessId, job.ArrivalTime, job.BurstTime, job.Priority))
	}
	return processes
}

func FromProcesses(processes []core.Process) ScheduleRequests {
	jobs := make([]Job, 0, len(processes))
	for _, p := range processes {
		jobs = append(jobs, Job{
			ProcessId:   p.ID,
			ArrivalTime: p.Arrival,
			BurstTime:   p.Burst,
			Priority:    p.Priority,
		})
	}
	return ScheduleRequests{Jobs: jobs}
}
