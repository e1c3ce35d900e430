package workload

import (
	"math/rand/v2"
	"time"

	"cpu-scheduler-sim/config"
	"cpu-scheduler-sim/internal/core"
)

// Generate builds a random process set: ids 1..Count, arrival in
// [0, MaxArrival), burst in [1, MaxBurst], priority in [1, MaxPriority].
// A non-zero Seed makes the set reproducible.
func Generate(cfg config.GeneratorConfig) ([]core.Process, error) {
	if cfg.Count < 1 {
		return nil, core.ErrEmptyProcessSet
	}
	if cfg.MaxArrival < 1 || cfg.MaxBurst < 1 || cfg.MaxPriority < 1 {
		return nil, config.ErrInvalidConfig
	}

	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	processes := make([]core.Process, cfg.Count)
	for i := range processes {
		processes[i] = core.NewProcess(
			i+1,
			rng.IntN(cfg.MaxArrival),
			rng.IntN(cfg.MaxBurst)+1,
			rng.IntN(cfg.MaxPriority)+1,
		)
	}
	return processes, nil
}
