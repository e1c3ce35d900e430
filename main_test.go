package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpu-scheduler-sim/config"
	"cpu-scheduler-sim/internal/schedulers"
)

func TestLoadProcesses(t *testing.T) {
	processes, err := loadProcesses("testdata/processes.csv", config.GeneratorConfig{})
	require.NoError(t, err)
	require.Len(t, processes, 4)
	assert.Equal(t, 9, processes[3].Arrival)

	processes, err = loadProcesses("", config.GeneratorConfig{Count: 3, MaxArrival: 5, MaxBurst: 5, MaxPriority: 5, Seed: 3})
	require.NoError(t, err)
	assert.Len(t, processes, 3)

	_, err = loadProcesses("testdata/absent.csv", config.GeneratorConfig{})
	assert.Error(t, err)
}

func TestRunLocal(t *testing.T) {
	processes, err := loadProcesses("testdata/processes.csv", config.GeneratorConfig{})
	require.NoError(t, err)

	cfg := &config.SchedulerConfig{
		RoundRobinTimeQuantum: 3,
		Replay:                config.ReplayConfig{Enabled: true, Unit: time.Microsecond},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var buf bytes.Buffer
	require.NoError(t, runLocal(context.Background(), &buf, processes, "", cfg, logger))

	for _, algorithm := range schedulers.Algorithms {
		assert.Contains(t, buf.String(), algorithm.Title())
	}
}

func TestRunLocal_SingleAlgorithm(t *testing.T) {
	processes, err := loadProcesses("testdata/processes.csv", config.GeneratorConfig{})
	require.NoError(t, err)

	cfg := &config.SchedulerConfig{RoundRobinTimeQuantum: 3}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var buf bytes.Buffer
	require.NoError(t, runLocal(context.Background(), &buf, processes, "PSJF", cfg, logger))
	assert.Contains(t, buf.String(), schedulers.PreemptiveShortestJobFirst.Title())
	assert.NotContains(t, buf.String(), schedulers.FirstComeFirstServe.Title())
	assert.NotContains(t, buf.String(), schedulers.RoundRobin.Title())

	buf.Reset()
	err = runLocal(context.Background(), &buf, processes, "lottery", cfg, logger)
	assert.ErrorIs(t, err, schedulers.ErrUnknownAlgorithm)
	assert.Empty(t, buf.String())
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Same(t, config.GetSchedulerConfig(), cfg)

	_, err = loadConfig("testdata/absent.yaml")
	assert.Error(t, err)
}

func TestOverrides_Apply(t *testing.T) {
	base := func() *config.SchedulerConfig {
		return &config.SchedulerConfig{
			Port:                  9095,
			RoundRobinTimeQuantum: 3,
			Generator:             config.GeneratorConfig{Count: 5, MaxArrival: 10, MaxBurst: 10, MaxPriority: 10},
		}
	}

	tests := []struct {
		name      string
		overrides overrides
		check     func(t *testing.T, cfg *config.SchedulerConfig)
		err       error
	}{
		{
			name:      "zero values keep the configuration",
			overrides: overrides{},
			check: func(t *testing.T, cfg *config.SchedulerConfig) {
				assert.Equal(t, base(), cfg)
			},
		},
		{
			name:      "every flag replaces its setting",
			overrides: overrides{count: 8, seed: 42, quantum: 5, replay: true},
			check: func(t *testing.T, cfg *config.SchedulerConfig) {
				assert.Equal(t, 8, cfg.Generator.Count)
				assert.Equal(t, int64(42), cfg.Generator.Seed)
				assert.Equal(t, 5, cfg.RoundRobinTimeQuantum)
				assert.True(t, cfg.Replay.Enabled)
			},
		},
		{
			name:      "negative quantum",
			overrides: overrides{quantum: -1},
			err:       config.ErrInvalidConfig,
		},
		{
			name:      "negative count",
			overrides: overrides{count: -4},
			err:       config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			err := tt.overrides.apply(cfg)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestRunRemote(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder(http.MethodPost, "http://scheduler.test/api/v1/all",
		httpmock.NewStringResponder(http.StatusOK, `[{"algorithm":"fcfs","title":"First-come, first-serve","chart":"P1 ##\n","average_waiting_time":1.5}]`))

	processes, err := loadProcesses("testdata/processes.csv", config.GeneratorConfig{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, runRemote(context.Background(), &buf, "http://scheduler.test", processes, 3))
	assert.Contains(t, buf.String(), "First-come, first-serve")
	assert.Contains(t, buf.String(), "Average waiting time: 1.50")
}
