package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/slotrix/slotrix/internal/pkg/cache"
	"github.com/slotrix/slotrix/internal/pkg/database"
	"github.com/slotrix/slotrix/internal/pkg/env"
	"github.com/slotrix/slotrix/internal/pkg/metrics/counter"
	"github.com/slotrix/slotrix/internal/pkg/router"
)

func main() {
	app := NewApplication()

	// Periodically drain the Redis counters into daily_stats.
	counter.StartFlusher(context.Background(), 1*time.Minute)

	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	app := fiber.New(fiber.Config{
		AppName:   "slotrix",
		BodyLimit: 1048576, // 1 MiB, webhooks and JSON API only
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
