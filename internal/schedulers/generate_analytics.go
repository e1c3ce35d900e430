package schedulers

import (
	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/responses"
)

// GenerateResponse flattens a result into its JSON representation.
func GenerateResponse(result Result) responses.ScheduleResponse {
	details := make([]responses.ProcessResponse, 0, len(result.Processes))
	for i := range result.Processes {
		details = append(details, generateProcessDetails(result.Processes[i], result.Timeline))
	}

	spans := result.Timeline.Spans()
	gantt := make([]responses.GanttSpan, 0, len(spans))
	for _, s := range spans {
		gantt = append(gantt, responses.GanttSpan{ProcessId: s.ProcessID, Start: s.Start, End: s.End})
	}

	return responses.ScheduleResponse{
		Algorithm:             string(result.Algorithm),
		Title:                 result.Algorithm.Title(),
		TimeQuantum:           result.TimeQuantum,
		TotalTime:             result.Cpu.TotalTime,
		IdleTime:              result.Cpu.IdleTime,
		ContextSwitches:       result.Cpu.ContextSwitches,
		AverageWaitingTime:    result.AverageWaitingTime,
		AverageResponseTime:   result.AverageResponseTime,
		AverageTurnAroundTime: result.AverageTurnAroundTime,
		CpuUtilization:        result.Cpu.Utilization,
		CpuThroughput:         result.Cpu.Throughput,
		Details:               details,
		Gantt:                 gantt,
		Chart:                 result.Timeline.Render(),
	}
}

func generateProcessDetails(process core.Process, timeline *core.Timeline) responses.ProcessResponse {
	start, _ := timeline.FirstStart(process.ID)
	return responses.ProcessResponse{
		ProcessId:      process.ID,
		ArrivalTime:    process.Arrival,
		BurstTime:      process.Burst,
		Priority:       process.Priority,
		ResponseTime:   start - process.Arrival,
		WaitingTime:    process.Waiting,
		TurnAroundTime: process.Turnaround,
		CompletionTime: process.Completion(),
	}
}
