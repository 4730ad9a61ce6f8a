// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The costsync Authors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/reportwise/costsync/internal/adapter"
	"github.com/reportwise/costsync/internal/config"
	"github.com/reportwise/costsync/internal/logger"
	"github.com/reportwise/costsync/internal/server"
	"github.com/reportwise/costsync/internal/service"
	"github.com/reportwise/costsync/internal/store"
	"github.com/reportwise/costsync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// A local .env is optional; absence is not an error.
	_ = godotenv.Load()

	log := logger.NewLogger("costsync-agent")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("agent failed")
	}
}

func run(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	state, err := store.NewStateStore(ctx, cfg.State, log)
	if err != nil {
		return fmt.Errorf("creating state store: %w", err)
	}
	defer state.Close()

	if err := state.Load(ctx); err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	source, err := adapter.NewSourceClient(cfg.Source, log)
	if err != nil {
		return fmt.Errorf("creating source client: %w", err)
	}
	destination, err := adapter.NewDestinationClient(cfg.Destination, log)
	if err != nil {
		return fmt.Errorf("creating destination client: %w", err)
	}

	runner := service.NewSyncRunner(
		service.NewDiscoverer(source, cfg.Agent, cfg.Source, log.GetChildLogger()),
		service.NewTransferScheduler(
			service.NewStreamCopier(source, destination, cfg.Agent, log.GetChildLogger()),
			state,
			cfg.Agent,
			log.GetChildLogger(),
		),
		state,
		cfg.Agent,
		log.GetChildLogger(),
	)
	loop := service.NewPollLoop(runner, cfg.Agent, log.GetChildLogger())

	if cfg.Agent.RunOnce {
		report, err := loop.RunOnce(ctx)
		if err != nil {
			return fmt.Errorf("sync cycle: %w", err)
		}
		if report.Failed > 0 {
			return fmt.Errorf("sync cycle finished with %d failed transfers", report.Failed)
		}
		return nil
	}

	agentWorkers := []workers.Worker{&pollWorker{loop: loop}}
	if cfg.Server.StatusAddress != "" {
		agentWorkers = append(agentWorkers, server.NewStatusServer(cfg.Server, state, loop, log.GetChildLogger()))
	}

	workers.NewWorkers(agentWorkers...).Run(ctx)
	return nil
}

// pollWorker adapts the poll loop to the workers.Worker contract.
type pollWorker struct {
	loop *service.PollLoop
}

func (w *pollWorker) Run(ctx context.Context) {
	w.loop.Start(ctx)
	<-ctx.Done()
	w.loop.Stop()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stdout, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stdout, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stdout, "Build commit: %s\n", buildCommit)
}
