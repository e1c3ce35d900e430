package api

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"cpu-scheduler-sim/config"
	"cpu-scheduler-sim/internal/core"
	"cpu-scheduler-sim/internal/requests"
	"cpu-scheduler-sim/internal/responses"
	"cpu-scheduler-sim/internal/schedulers"
	"cpu-scheduler-sim/internal/util"
	"cpu-scheduler-sim/internal/workload"
)

const maxGeneratedProcesses = core.MaxProcesses

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	PreemptiveShortestJobFirst(ctx *fiber.Ctx) error
	Priority(ctx *fiber.Ctx) error
	PreemptivePriority(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
}

type SchedulerHandlerImpl struct {
	config *config.SchedulerConfig
	log    *slog.Logger
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, logger *slog.Logger) *SchedulerHandlerImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchedulerHandlerImpl{config: config, log: logger}
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) PreemptiveShortestJobFirst(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PreemptiveShortestJobFirst)
}

func (s *SchedulerHandlerImpl) Priority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.Priority)
}

func (s *SchedulerHandlerImpl) PreemptivePriority(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.PreemptivePriority)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.schedule(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, opts, err := s.parseRequest(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
	}
	results, err := schedulers.ScheduleAll(request.Processes(), opts)
	if err != nil {
		return s.scheduleError(ctx, err)
	}

	response := make([]responses.ScheduleResponse, 0, len(results))
	for _, result := range results {
		response = append(response, schedulers.GenerateResponse(result))
	}
	return ctx.JSON(response)
}

// Generate returns a random job set, shaped like a schedule request.
func (s *SchedulerHandlerImpl) Generate(ctx *fiber.Ctx) error {
	cfg := s.config.Generator
	cfg.Count = ctx.QueryInt("count", cfg.Count)
	cfg.Seed = int64(ctx.QueryInt("seed", int(cfg.Seed)))
	if cfg.Count < 1 || cfg.Count > maxGeneratedProcesses {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: fmt.Sprintf("count must be between 1 and %d", maxGeneratedProcesses)})
	}

	processes, err := workload.Generate(cfg)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: err.Error()})
	}
	return ctx.JSON(requests.FromProcesses(processes))
}

func (s *SchedulerHandlerImpl) schedule(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, opts, err := s.parseRequest(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: "invalid request format"})
	}
	result, err := schedulers.Schedule(algorithm, request.Processes(), opts)
	if err != nil {
		return s.scheduleError(ctx, err)
	}
	s.log.Debug("scheduled request", "algorithm", string(algorithm), "jobs", len(request.Jobs))
	return ctx.JSON(schedulers.GenerateResponse(result))
}

func (s *SchedulerHandlerImpl) parseRequest(ctx *fiber.Ctx) (*requests.ScheduleRequests, schedulers.Options, error) {
	request := new(requests.ScheduleRequests)
	if err := ctx.BodyParser(request); err != nil {
		s.log.Warn("invalid request body", util.ErrAttr(err))
		return nil, schedulers.Options{}, err
	}
	opts := schedulers.Options{TimeQuantum: request.TimeQuantum}
	if opts.TimeQuantum == 0 {
		opts.TimeQuantum = s.config.RoundRobinTimeQuantum
	}
	return request, opts, nil
}

func (s *SchedulerHandlerImpl) scheduleError(ctx *fiber.Ctx, err error) error {
	s.log.Warn("can not process request", util.ErrAttr(err))
	switch {
	case errors.Is(err, schedulers.ErrUnknownAlgorithm):
		return ctx.Status(fiber.StatusNotFound).JSON(responses.ErrorResponse{Error: err.Error()})
	case errors.Is(err, core.ErrEmptyProcessSet),
		errors.Is(err, core.ErrNegativeArrival),
		errors.Is(err, core.ErrNonPositiveBurst),
		errors.Is(err, core.ErrDuplicateProcessID),
		errors.Is(err, core.ErrTooManyProcesses),
		errors.Is(err, core.ErrMakespanTooLarge),
		errors.Is(err, schedulers.ErrInvalidTimeQuantum):
		return ctx.Status(fiber.StatusBadRequest).JSON(responses.ErrorResponse{Error: err.Error()})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(responses.ErrorResponse{Error: "can not process request"})
}
