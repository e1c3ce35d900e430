package client

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduler-sim/internal/requests"
	"cpu-scheduler-sim/internal/responses"
)

const baseURL = "http://scheduler.test"

func testRequest() requests.ScheduleRequests {
	return requests.ScheduleRequests{
		Jobs: []requests.Job{
			{ProcessId: 1, ArrivalTime: 0, BurstTime: 6},
			{ProcessId: 2, ArrivalTime: 2, BurstTime: 2},
		},
	}
}

func TestClient_Schedule(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name      string
		responder httpmock.Responder
		want      responses.ScheduleResponse
		wantErr   string
	}{
		{
			name: "schedule computed",
			responder: func(req *http.Request) (*http.Response, error) {
				var body requests.ScheduleRequests
				if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
					return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
				}
				if req.Header.Get("Content-Type") != "application/json" || len(body.Jobs) != 2 {
					return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
				}
				return httpmock.NewJsonResponse(http.StatusOK, responses.ScheduleResponse{
					Algorithm:          "psjf",
					AverageWaitingTime: 1,
					Gantt:              []responses.GanttSpan{{ProcessId: 1, Start: 0, End: 2}},
				})
			},
			want: responses.ScheduleResponse{
				Algorithm:          "psjf",
				AverageWaitingTime: 1,
				Gantt:              []responses.GanttSpan{{ProcessId: 1, Start: 0, End: 2}},
			},
		},
		{
			name: "validation error from server",
			responder: httpmock.NewStringResponder(
				http.StatusBadRequest,
				`{"error":"empty process set"}`,
			),
			wantErr: "scheduler request failed: 400 empty process set",
		},
		{
			name:      "server error without body",
			responder: httpmock.NewStringResponder(http.StatusInternalServerError, ""),
			wantErr:   "scheduler request failed: 500",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/v1/psjf", tt.responder)

			got, err := New(baseURL+"/").Schedule(context.Background(), "psjf", testRequest())
			if tt.wantErr != "" {
				assert.ErrorIs(t, err, ErrRequestFailed)
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_ScheduleAll(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/v1/all",
		httpmock.NewStringResponder(http.StatusOK, `[{"algorithm":"fcfs"},{"algorithm":"rr","time_quantum":3}]`))

	all, err := New(baseURL).ScheduleAll(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "rr", all[1].Algorithm)
	assert.Equal(t, 3, all[1].TimeQuantum)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestClient_Generate(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/v1/generate?count=3&seed=7",
		httpmock.NewStringResponder(http.StatusOK, `{"jobs":[{"process_id":1,"burst_time":2},{"process_id":2,"burst_time":4},{"process_id":3,"burst_time":1}]}`))

	generated, err := New(baseURL).Generate(context.Background(), 3, 7)
	require.NoError(t, err)
	assert.Len(t, generated.Jobs, 3)
	assert.Equal(t, 4, generated.Jobs[1].BurstTime)
}

func TestClient_TransportError(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	_, err := New(baseURL).ScheduleAll(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrRequestFailed)
}
