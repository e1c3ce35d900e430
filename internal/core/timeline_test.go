package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimeline_Record(t *testing.T) {
	type record struct {
		pid, start, end int
	}
	tests := []struct {
		name    string
		records []record
		want    []Span
	}{
		{
			name:    "contiguous spans of one process merge",
			records: []record{{1, 0, 3}, {1, 3, 5}},
			want:    []Span{{ProcessID: 1, Start: 0, End: 5}},
		},
		{
			name:    "gap keeps spans of one process apart",
			records: []record{{1, 0, 3}, {1, 4, 5}},
			want:    []Span{{ProcessID: 1, Start: 0, End: 3}, {ProcessID: 1, Start: 4, End: 5}},
		},
		{
			name:    "preemption opens a new span",
			records: []record{{1, 0, 2}, {2, 2, 4}, {1, 4, 8}},
			want: []Span{
				{ProcessID: 1, Start: 0, End: 2},
				{ProcessID: 2, Start: 2, End: 4},
				{ProcessID: 1, Start: 4, End: 8},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timeline := NewTimeline()
			for _, r := range tt.records {
				timeline.Record(r.pid, r.start, r.end)
			}
			assert.Equal(t, tt.want, timeline.Spans())
		})
	}
}

func TestTimeline_TickExtendsLastSpan(t *testing.T) {
	timeline := NewTimeline()
	for tick := 0; tick < 4; tick++ {
		timeline.Tick(7, tick)
	}
	timeline.Tick(8, 4)

	assert.Equal(t, []Span{{ProcessID: 7, Start: 0, End: 4}, {ProcessID: 8, Start: 4, End: 5}}, timeline.Spans())
}

func TestTimeline_RecordPanicsOnInvalidSpan(t *testing.T) {
	assert.Panics(t, func() { NewTimeline().Record(1, 3, 3) })

	timeline := NewTimeline()
	timeline.Record(1, 0, 4)
	assert.Panics(t, func() { timeline.Record(2, 3, 5) })
}

func TestTimeline_Metrics(t *testing.T) {
	timeline := NewTimeline()
	timeline.Record(1, 0, 2)
	timeline.Record(3, 2, 3)
	timeline.Record(2, 5, 8)
	timeline.Record(2, 9, 10)

	assert.Equal(t, 10, timeline.End())
	assert.Equal(t, 7, timeline.Busy())
	assert.Equal(t, 4, timeline.Ticks(2))
	assert.Equal(t, 2, timeline.ContextSwitches())

	start, ok := timeline.FirstStart(2)
	assert.True(t, ok)
	assert.Equal(t, 5, start)

	_, ok = timeline.FirstStart(9)
	assert.False(t, ok)
}

func TestTimeline_Render(t *testing.T) {
	timeline := NewTimeline()
	timeline.Record(1, 0, 2)
	timeline.Record(2, 2, 4)
	timeline.Record(1, 4, 8)

	want := "" +
		"   0    5\n" +
		"   |----|---\n" +
		"P1 ##..####\n" +
		"P2 ..##....\n"
	assert.Equal(t, want, timeline.Render())
	assert.Empty(t, NewTimeline().Render())
}

func TestTimeline_RenderTruncatesLongTimelines(t *testing.T) {
	timeline := NewTimeline()
	timeline.Record(1, 0, 2)
	timeline.Record(2, MaxChartWidth+10, MaxChartWidth+20)

	lines := strings.Split(strings.TrimSuffix(timeline.Render(), "\n"), "\n")

	assert.Len(t, lines, 5)
	assert.Len(t, lines[2], len("P1 ")+MaxChartWidth)
	assert.Equal(t, "P2 "+strings.Repeat(".", MaxChartWidth), lines[3])
	assert.Equal(t, "   ... truncated at tick 120 of 140", lines[4])
}

func TestTimeline_SpansIsACopy(t *testing.T) {
	timeline := NewTimeline()
	timeline.Record(1, 0, 2)

	spans := timeline.Spans()
	spans[0].End = 100

	assert.Equal(t, 2, timeline.End())
}
