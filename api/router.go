package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func NewApp(handler SchedulerHandler) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	api := app.Group("/api")

	v1 := api.Group("/v1")
	{
		v1.Post("/fcfs", handler.FirstComeFirstServe)
		v1.Post("/sjf", handler.ShortestJobFirst)
		v1.Post("/psjf", handler.PreemptiveShortestJobFirst)
		v1.Post("/priority", handler.Priority)
		v1.Post("/ppriority", handler.PreemptivePriority)
		v1.Post("/rr", handler.RoundRobin)
		v1.Post("/all", handler.AllAlgorithms)
		v1.Get("/generate", handler.Generate)
	}

	return app
}
