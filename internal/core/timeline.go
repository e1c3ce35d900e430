package core

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	rulerStep = 5

	// MaxChartWidth is the number of ticks Render draws before truncating.
	MaxChartWidth = 120
)

// Span is a half-open interval [Start, End) during which ProcessID held the CPU.
type Span struct {
	ProcessID int
	Start     int
	End       int
}

func (s Span) Duration() int {
	return s.End - s.Start
}

// Timeline is the execution history of a single CPU. Spans are kept in
// chronological order and never overlap.
type Timeline struct {
	spans []Span
}

func NewTimeline() *Timeline {
	return &Timeline{spans: make([]Span, 0)}
}

// Record appends [start, end) for pid. If the last span belongs to the same
// process and ends exactly at start it is extended instead, so a process that
// keeps the CPU shows as one span and a preempted one as several.
func (t *Timeline) Record(pid, start, end int) {
	if end <= start {
		panic(fmt.Sprintf("core: empty span [%d, %d) for pid %d", start, end, pid))
	}
	if n := len(t.spans); n > 0 {
		last := &t.spans[n-1]
		if start < last.End {
			panic(fmt.Sprintf("core: span [%d, %d) for pid %d overlaps pid %d ending at %d", start, end, pid, last.ProcessID, last.End))
		}
		if last.ProcessID == pid && last.End == start {
			last.End = end
			return
		}
	}
	t.spans = append(t.spans, Span{ProcessID: pid, Start: start, End: end})
}

// Tick records a single unit of execution starting at start.
func (t *Timeline) Tick(pid, start int) {
	t.Record(pid, start, start+1)
}

// Spans returns a copy of the recorded spans.
func (t *Timeline) Spans() []Span {
	spans := make([]Span, len(t.spans))
	copy(spans, t.spans)
	return spans
}

func (t *Timeline) Len() int {
	return len(t.spans)
}

// End is the time the last span finishes, i.e. the makespan.
func (t *Timeline) End() int {
	if len(t.spans) == 0 {
		return 0
	}
	return t.spans[len(t.spans)-1].End
}

// Busy is the number of ticks the CPU spent running some process.
func (t *Timeline) Busy() int {
	busy := 0
	for _, s := range t.spans {
		busy += s.Duration()
	}
	return busy
}

// Ticks is the total execution time recorded for pid.
func (t *Timeline) Ticks(pid int) int {
	ticks := 0
	for _, s := range t.spans {
		if s.ProcessID == pid {
			ticks += s.Duration()
		}
	}
	return ticks
}

// FirstStart returns when pid first got the CPU.
func (t *Timeline) FirstStart(pid int) (int, bool) {
	for _, s := range t.spans {
		if s.ProcessID == pid {
			return s.Start, true
		}
	}
	return 0, false
}

// ContextSwitches counts hand-overs between different processes. Idle gaps
// between spans of the same process do not count.
func (t *Timeline) ContextSwitches() int {
	switches := 0
	for i := 1; i < len(t.spans); i++ {
		if t.spans[i].ProcessID != t.spans[i-1].ProcessID {
			switches++
		}
	}
	return switches
}

// Render draws one row per process (in order of first execution) under a
// tick ruler. '#' marks a tick the process held the CPU. Only the first
// MaxChartWidth ticks are drawn; a longer timeline gets a trailing note.
func (t *Timeline) Render() string {
	if len(t.spans) == 0 {
		return ""
	}
	makespan := t.End()
	end := min(makespan, MaxChartWidth)

	order := make([]int, 0)
	rows := make(map[int][]byte)
	for _, s := range t.spans {
		row, ok := rows[s.ProcessID]
		if !ok {
			row = bytes.Repeat([]byte{'.'}, end)
			rows[s.ProcessID] = row
			order = append(order, s.ProcessID)
		}
		for tick := s.Start; tick < min(s.End, end); tick++ {
			row[tick] = '#'
		}
	}

	width := 0
	for _, pid := range order {
		if l := len(processLabel(pid)); l > width {
			width = l
		}
	}
	width++

	numbers := bytes.Repeat([]byte{' '}, end+1)
	marks := bytes.Repeat([]byte{'-'}, end+1)
	for tick := 0; tick <= end; tick += rulerStep {
		label := strconv.Itoa(tick)
		if tick+len(label) > len(numbers) {
			numbers = append(numbers, bytes.Repeat([]byte{' '}, tick+len(label)-len(numbers))...)
		}
		copy(numbers[tick:], label)
		marks[tick] = '|'
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-*s%s\n", width, "", strings.TrimRight(string(numbers), " "))
	fmt.Fprintf(&b, "%-*s%s\n", width, "", marks)
	for _, pid := range order {
		fmt.Fprintf(&b, "%-*s%s\n", width, processLabel(pid), rows[pid])
	}
	if makespan > end {
		fmt.Fprintf(&b, "%-*s... truncated at tick %d of %d\n", width, "", end, makespan)
	}
	return b.String()
}

func processLabel(pid int) string {
	return "P" + strconv.Itoa(pid)
}
