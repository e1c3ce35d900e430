package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"cpu-scheduler-sim/api"
	"cpu-scheduler-sim/config"
	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/report"
	"cpu-scheduler-sim/internal/requests"
	"cpu-scheduler-sim/internal/schedulers"
	"cpu-scheduler-sim/internal/util"
	"cpu-scheduler-sim/internal/workload"
	"cpu-scheduler-sim/pkg/client"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ./config.yaml)")
		serve      = flag.Bool("serve", false, "run the HTTP API instead of printing schedules")
		input      = flag.String("input", "", "CSV file of id,burst,arrival[,priority] rows")
		count      = flag.Int("n", 0, "number of random processes to generate")
		seed       = flag.Int64("seed", 0, "random seed (0 uses the clock)")
		quantum    = flag.Int("quantum", 0, "round robin time quantum")
		replay     = flag.Bool("replay", false, "replay every timeline in real time after printing it")
		remote     = flag.String("remote", "", "schedule through a running API at this base URL")
		algorithm  = flag.String("algorithm", "", "run only this policy (fcfs, sjf, psjf, priority, ppriority, rr)")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalln(err)
	}
	flags := overrides{count: *count, seed: *seed, quantum: *quantum, replay: *replay}
	if err := flags.apply(cfg); err != nil {
		log.Fatalln(err)
	}
	logger := util.BuildLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	if *serve {
		app := api.NewApp(api.NewSchedulerHandlerImpl(cfg, logger))
		log.Fatalln(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
	}

	processes, err := loadProcesses(*input, cfg.Generator)
	if err != nil {
		logger.Error("can not load processes", util.ErrAttr(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *remote != "" {
		err = runRemote(ctx, os.Stdout, *remote, processes, cfg.RoundRobinTimeQuantum)
	} else {
		err = runLocal(ctx, os.Stdout, processes, *algorithm, cfg, logger)
	}
	if err != nil {
		logger.Error("scheduling failed", util.ErrAttr(err))
		os.Exit(1)
	}
}

// loadConfig uses the shared ./config.yaml configuration unless a file is
// named explicitly.
func loadConfig(path string) (*config.SchedulerConfig, error) {
	if path == "" {
		return config.GetSchedulerConfig(), nil
	}
	return config.Load(path)
}

// overrides are command-line values that replace configured ones in every
// mode, including -serve. Zero values leave the configuration alone.
type overrides struct {
	count   int
	seed    int64
	quantum int
	replay  bool
}

func (o overrides) apply(cfg *config.SchedulerConfig) error {
	if o.count != 0 {
		cfg.Generator.Count = o.count
	}
	if o.seed != 0 {
		cfg.Generator.Seed = o.seed
	}
	if o.quantum != 0 {
		cfg.RoundRobinTimeQuantum = o.quantum
	}
	if o.replay {
		cfg.Replay.Enabled = true
	}
	return cfg.Validate()
}

func loadProcesses(path string, generator config.GeneratorConfig) ([]core.Process, error) {
	if path == "" {
		return workload.Generate(generator)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening scheduling file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return workload.LoadProcesses(f)
}

// runLocal schedules processes with every policy, or only with algorithm
// when one is named, and prints the results.
func runLocal(ctx context.Context, w io.Writer, processes []core.Process, algorithm string, cfg *config.SchedulerConfig, logger *slog.Logger) error {
	results, err := scheduleLocal(processes, algorithm, schedulers.Options{TimeQuantum: cfg.RoundRobinTimeQuantum})
	if err != nil {
		return err
	}

	report.OutputProcesses(w, processes)
	for _, result := range results {
		report.OutputResult(w, result)
		if !cfg.Replay.Enabled {
			continue
		}
		metric, err := core.Replay(ctx, result.Timeline, cfg.Replay.Unit, logger.With("algorithm", string(result.Algorithm)))
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		logger.Info("replay finished", "algorithm", string(result.Algorithm), "total", metric.TotalTime, "idle", metric.IdleTime)
	}
	return nil
}

func scheduleLocal(processes []core.Process, algorithm string, opts schedulers.Options) ([]schedulers.Result, error) {
	if algorithm == "" {
		return schedulers.ScheduleAll(processes, opts)
	}
	parsed, err := schedulers.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}
	result, err := schedulers.Schedule(parsed, processes, opts)
	if err != nil {
		return nil, err
	}
	return []schedulers.Result{result}, nil
}

func runRemote(ctx context.Context, w io.Writer, baseURL string, processes []core.Process, quantum int) error {
	request := requests.FromProcesses(processes)
	request.TimeQuantum = quantum

	all, err := client.New(baseURL).ScheduleAll(ctx, request)
	if err != nil {
		return err
	}
	report.OutputProcesses(w, processes)
	for _, response := range all {
		report.OutputTitle(w, response.Title)
		_, _ = fmt.Fprintln(w, response.Chart)
		_, _ = fmt.Fprintf(w, "Average waiting time: %.2f\n", response.AverageWaitingTime)
		_, _ = fmt.Fprintf(w, "Average turnaround time: %.2f\n\n", response.AverageTurnAroundTime)
	}
	return nil
}
