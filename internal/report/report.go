package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/schedulers"
)

// OutputResult prints everything known about one policy run.
func OutputResult(w io.Writer, result schedulers.Result) {
	title := result.Algorithm.Title()
	if result.Algorithm == schedulers.RoundRobin {
		title = fmt.Sprintf("%s (quantum %d)", title, result.TimeQuantum)
	}
	OutputTitle(w, title)
	OutputGantt(w, result.Timeline.Spans())
	OutputChart(w, result.Timeline)
	OutputSchedule(w, result)
}

func OutputTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// OutputGantt prints the spans as a bar with the boundary ticks underneath.
// Idle gaps get their own cell.
func OutputGantt(w io.Writer, spans []core.Span) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	var bar, ticks strings.Builder
	bar.WriteString("|")
	clock := 0
	for _, s := range spans {
		if s.Start > clock {
			writeCell(&bar, &ticks, "idle", clock)
		}
		writeCell(&bar, &ticks, fmt.Sprintf("P%d", s.ProcessID), s.Start)
		clock = s.End
	}
	ticks.WriteString(fmt.Sprint(clock))
	_, _ = fmt.Fprintln(w, bar.String())
	_, _ = fmt.Fprintf(w, "%s\n\n", ticks.String())
}

func writeCell(bar, ticks *strings.Builder, label string, start int) {
	padding := strings.Repeat(" ", (8-len(label))/2)
	bar.WriteString(padding + label + padding + "|")
	ticks.WriteString(fmt.Sprint(start) + "\t")
}

func OutputChart(w io.Writer, timeline *core.Timeline) {
	_, _ = fmt.Fprintln(w, "Timeline")
	_, _ = fmt.Fprintln(w, timeline.Render())
}

// OutputProcesses prints the input set before any policy has run.
func OutputProcesses(w io.Writer, processes []core.Process) {
	_, _ = fmt.Fprintln(w, "Processes")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority"})
	for _, p := range processes {
		table.Append([]string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Arrival),
			fmt.Sprint(p.Burst),
			fmt.Sprint(p.Priority),
		})
	}
	table.Render()
	_, _ = fmt.Fprintln(w)
}

func OutputSchedule(w io.Writer, result schedulers.Result) {
	_, _ = fmt.Fprintln(w, "Schedule table")
	rows := make([][]string, 0, len(result.Processes))
	for _, p := range result.Processes {
		rows = append(rows, []string{
			fmt.Sprint(p.ID),
			fmt.Sprint(p.Priority),
			fmt.Sprint(p.Burst),
			fmt.Sprint(p.Arrival),
			fmt.Sprint(p.Waiting),
			fmt.Sprint(p.Turnaround),
			fmt.Sprint(p.Completion()),
		})
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Average\n%.2f", result.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", result.AverageTurnAroundTime),
		fmt.Sprintf("Throughput\n%.2f/t", result.Cpu.Throughput)})
	table.Render()
	_, _ = fmt.Fprintf(w, "Average waiting time: %.2f\n", result.AverageWaitingTime)
	_, _ = fmt.Fprintf(w, "Average turnaround time: %.2f\n", result.AverageTurnAroundTime)
	_, _ = fmt.Fprintf(w, "CPU utilization: %.2f%%, idle %d, context switches %d\n\n",
		result.Cpu.Utilization*100, result.Cpu.IdleTime, result.Cpu.ContextSwitches)
}
