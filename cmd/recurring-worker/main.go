package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financas/internal/backend"
	"financas/internal/config"
	applog "financas/internal/log"
	"financas/internal/services"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

func main() {
	runOnce := flag.Bool("once", false, "run one generation pass and exit")
	flag.Parse()

	_ = godotenv.Load()

	logger := applog.New(applog.Config{Component: applog.ComponentWorker})
	applog.SetDefault(logger)

	logger.Info("Starting recurring-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		AMQPURL:      cfg.AMQPURL,
		AMQPExchange: cfg.AMQPExchange,
		AMQPQueue:    cfg.AMQPQueue,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	generator := services.NewGenerator(result.Store, services.NewRegistrar(result.Store))

	run := func() {
		created, err := generator.Run(ctx, time.Now())
		if err != nil {
			logger.Error("Generation run failed", applog.FieldError, err)
			return
		}
		if created > 0 {
			logger.Info("Generation run complete", "created", created)
		}
	}

	if *runOnce {
		run()
		return
	}

	// One pass immediately, then on the configured schedule. The ledger
	// makes extra runs no-ops, so the schedule only needs to fire at
	// least once per month.
	run()

	c := cron.New()
	if _, err := c.AddFunc(cfg.GenerationSchedule, run); err != nil {
		logger.Error("Failed to schedule generation", applog.FieldError, err, "schedule", cfg.GenerationSchedule)
		os.Exit(1)
	}
	c.Start()
	logger.Info("Generation scheduled", "schedule", cfg.GenerationSchedule)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info("Shutdown signal received", "signal", sig.String())

	<-c.Stop().Done()
	logger.Info("Recurring-worker stopped")
}
