package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shotlist/cli"
)

// shutdownGrace is how long an interrupted run gets to close its browser
const shutdownGrace = 5 * time.Second

func main() {
	// Create context with cancel for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signalChan
		slog.Warn("received signal, shutting down", "signal", sig.String())
		cancel()
		// Allow some time for cleanup then exit if it takes too long
		time.Sleep(shutdownGrace)
		os.Exit(1)
	}()

	code := cli.Execute(ctx)
	cancel()
	os.Exit(code)
}
