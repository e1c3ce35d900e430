package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type GeneratorConfig struct {
	Count       int
	MaxArrival  int
	MaxBurst    int
	MaxPriority int
	Seed        int64
}

type ReplayConfig struct {
	Enabled bool
	Unit    time.Duration
}

type SchedulerConfig struct {
	Port                  int
	LogLevel              string
	RoundRobinTimeQuantum int
	Generator             GeneratorConfig
	Replay                ReplayConfig
}

var once sync.Once
var config *SchedulerConfig

// GetSchedulerConfig loads ./config.yaml once and exits on failure.
func GetSchedulerConfig() *SchedulerConfig {
	once.Do(func() {
		c, err := Load("")
		if err != nil {
			log.Fatalln(err)
		}
		config = c
	})

	return config
}

// Load reads the configuration from path, or from config.yaml in the working
// directory when path is empty. A missing default file is not an error.
// Environment variables prefixed with SCHED_ override file values.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("sched")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	c := &SchedulerConfig{
		Port:                  v.GetInt("port"),
		LogLevel:              v.GetString("log_level"),
		RoundRobinTimeQuantum: v.GetInt("scheduler.round_robin.time_quantum"),
		Generator: GeneratorConfig{
			Count:       v.GetInt("generator.count"),
			MaxArrival:  v.GetInt("generator.max_arrival"),
			MaxBurst:    v.GetInt("generator.max_burst"),
			MaxPriority: v.GetInt("generator.max_priority"),
			Seed:        v.GetInt64("generator.seed"),
		},
		Replay: ReplayConfig{
			Enabled: v.GetBool("replay.enabled"),
			Unit:    v.GetDuration("replay.unit"),
		},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *SchedulerConfig) Validate() error {
	switch {
	case c.RoundRobinTimeQuantum < 1:
		return fmt.Errorf("%w: round robin time quantum %d", ErrInvalidConfig, c.RoundRobinTimeQuantum)
	case c.Generator.Count < 1:
		return fmt.Errorf("%w: generator count %d", ErrInvalidConfig, c.Generator.Count)
	case c.Generator.MaxArrival < 1, c.Generator.MaxBurst < 1, c.Generator.MaxPriority < 1:
		return fmt.Errorf("%w: generator bounds must be positive", ErrInvalidConfig)
	case c.Replay.Unit < 0:
		return fmt.Errorf("%w: replay unit %s", ErrInvalidConfig, c.Replay.Unit)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("log_level", "info")
	v.SetDefault("scheduler.round_robin.time_quantum", 3)
	v.SetDefault("generator.count", 5)
	v.SetDefault("generator.max_arrival", 10)
	v.SetDefault("generator.max_burst", 10)
	v.SetDefault("generator.max_priority", 10)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.unit", "0s")
}
