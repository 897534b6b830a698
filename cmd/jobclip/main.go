// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HirePath Authors

// jobclip is the HirePath capture client: a terminal stand-in for the browser
// extension. It records job postings with a quick-add form, posts them to the
// relaxed ingestion endpoint, and spools captures locally when the server is
// unreachable.
//
// Usage:
//
//	jobclip [flags] login    sign in and store a session token
//	jobclip [flags] add      capture a job posting (queued when offline)
//	jobclip [flags] flush    retry queued captures
//	jobclip [flags] stats    show application stats and KPI progress
//	jobclip [flags] watch    keep flushing queued captures in the background
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hirepath/hirepath-server/internal/adapter"
	"github.com/hirepath/hirepath-server/internal/capture"
	"github.com/hirepath/hirepath-server/internal/config"
	"github.com/hirepath/hirepath-server/internal/logger"
	"github.com/hirepath/hirepath-server/internal/workers"
)

func main() {
	log := logger.NewClientLogger("jobclip")

	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	client, err := adapter.NewHTTPAPIClient(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating api client")
	}

	ctx := context.Background()

	// flags were parsed while loading the config, the subcommand is what's left
	switch flag.Arg(0) {
	case "login":
		err = runLogin(ctx, cfg, client)
	case "add":
		err = runAdd(ctx, cfg, client, log)
	case "flush":
		err = runFlush(ctx, cfg, client, log)
	case "stats":
		err = runStats(ctx, cfg, client)
	case "watch":
		err = runWatch(ctx, cfg, client, log)
	default:
		usage()
		os.Exit(2)
	}

	if errors.Is(err, capture.ErrAborted) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "jobclip: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jobclip [flags] <login|add|flush|stats|watch>")
}

func runLogin(ctx context.Context, cfg *config.ClientConfig, client adapter.APIClient) error {
	email, password, err := capture.RunLogin()
	if err != nil {
		return err
	}

	auth, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	session := capture.Session{Token: auth.Token, Email: auth.User.Email, SavedAt: time.Now()}
	if err = capture.SaveSession(cfg.Adapter.TokenPath, session); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", auth.User.Email)
	return nil
}

func runAdd(ctx context.Context, cfg *config.ClientConfig, client adapter.APIClient, log *logger.Logger) error {
	item, err := capture.RunQuickAdd()
	if err != nil {
		return err
	}

	restoreSession(cfg, client)

	created, err := client.SubmitCapture(ctx, item)
	if err == nil {
		fmt.Printf("Captured %s, %s (id %d)\n", created.CompanyName, created.RoleTitle, created.ID)
		return nil
	}

	// a rejected capture would be rejected again, don't spool it
	if errors.Is(err, adapter.ErrBadRequest) {
		return err
	}

	queue, queueErr := capture.NewQueue(ctx, cfg.Queue, log)
	if queueErr != nil {
		return queueErr
	}
	defer queue.Close()

	if queueErr = queue.Enqueue(ctx, item); queueErr != nil {
		return queueErr
	}

	pending, _ := queue.Len(ctx)
	log.Warn().Err(err).Msg("capture not delivered, spooled locally")
	fmt.Printf("Server unreachable, capture queued (%d pending). Run `jobclip flush` later.\n", pending)
	return nil
}

func runFlush(ctx context.Context, cfg *config.ClientConfig, client adapter.APIClient, log *logger.Logger) error {
	if err := requireSession(cfg, client); err != nil {
		return err
	}

	queue, err := capture.NewQueue(ctx, cfg.Queue, log)
	if err != nil {
		return err
	}
	defer queue.Close()

	worker := workers.NewFlushWorker(queue, client, cfg.Workers, log)
	flushed, err := worker.FlushOnce(ctx)

	pending, _ := queue.Len(ctx)
	fmt.Printf("Flushed %d capture(s), %d pending\n", flushed, pending)
	return err
}

func runStats(ctx context.Context, cfg *config.ClientConfig, client adapter.APIClient) error {
	if err := requireSession(cfg, client); err != nil {
		return err
	}

	stats, err := client.Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total applications: %d\n", stats.Stats.TotalApplications)
	fmt.Printf("Today:      %d/%d (%.0f%%)\n", stats.Progress.Daily.Current, stats.Progress.Daily.Target, stats.Progress.Daily.Percentage)
	fmt.Printf("This week:  %d/%d (%.0f%%)\n", stats.Progress.Weekly.Current, stats.Progress.Weekly.Target, stats.Progress.Weekly.Percentage)
	fmt.Printf("This month: %d/%d (%.0f%%)\n", stats.Progress.Monthly.Current, stats.Progress.Monthly.Target, stats.Progress.Monthly.Percentage)
	return nil
}

func runWatch(ctx context.Context, cfg *config.ClientConfig, client adapter.APIClient, log *logger.Logger) error {
	if err := requireSession(cfg, client); err != nil {
		return err
	}

	queue, err := capture.NewQueue(ctx, cfg.Queue, log)
	if err != nil {
		return err
	}
	defer queue.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	workers.New(
		workers.NewFlushWorker(queue, client, cfg.Workers, log),
	).Run()

	fmt.Printf("Watching capture queue, flushing every %s (ctrl+c to stop)\n", cfg.Workers.FlushInterval)
	<-ctx.Done()
	return nil
}

// restoreSession loads the stored token if one exists. Missing sessions are
// fine here: an unauthenticated capture simply ends up in the offline queue.
func restoreSession(cfg *config.ClientConfig, client adapter.APIClient) {
	if session, err := capture.LoadSession(cfg.Adapter.TokenPath); err == nil {
		client.SetToken(session.Token)
	}
}

func requireSession(cfg *config.ClientConfig, client adapter.APIClient) error {
	session, err := capture.LoadSession(cfg.Adapter.TokenPath)
	if err != nil {
		if errors.Is(err, capture.ErrSessionNotFound) {
			return errors.New("not signed in, run `jobclip login` first")
		}
		return err
	}

	client.SetToken(session.Token)
	return nil
}
