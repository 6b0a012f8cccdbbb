package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/KonyakB/GameOfLife/log"
	"github.com/KonyakB/GameOfLife/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "Path to the JSON config file")
	rows := flag.Int("rows", 0, "Grid rows (overrides config)")
	columns := flag.Int("columns", 0, "Grid columns (overrides config)")
	mode := flag.String("mode", "", "Update mode: sequential or synchronous (overrides config)")
	generations := flag.Int("generations", -1, "Stop after this many generations, 0 for no limit (overrides config)")
	loadPath := flag.String("load", "", "Load a saved grid from this path instead of generating one")
	savePath := flag.String("save", "", "Save the final grid to this path")
	logLevel := flag.String("log-level", "", "Log level (overrides config)")
	flag.Parse()

	config := loadConfig(*configPath)
	if *rows > 0 {
		config.Rows = *rows
	}
	if *columns > 0 {
		config.Columns = *columns
	}
	if *mode != "" {
		config.UpdateMode = *mode
	}
	if *generations >= 0 {
		config.MaxGenerations = *generations
	}
	if *logLevel != "" {
		config.LogLevel = *logLevel
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.DatabaseURL = url
	}

	parsedLogLevel, err := log.ParseLogLevel(config.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}
	log.SetDefaultLogger(log.New(os.Stderr, "", log.DefaultLoggerFlag, parsedLogLevel))

	if err := config.Validate(); err != nil {
		log.Error("Invalid configuration: %v", err)
		os.Exit(1)
	}

	if err := run(context.Background(), config, *loadPath, *savePath); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

// run wires storage and the simulator, then steps until the simulator
// finishes, a signal arrives or Enter is pressed.
func run(ctx context.Context, config utils.Config, loadPath, savePath string) error {
	store, closeStore, err := newStateStore(ctx, config)
	if err != nil {
		return err
	}
	defer closeStore()

	sim, err := newSimulator(config, os.Stdout)
	if err != nil {
		return err
	}
	if err := initializeGame(ctx, sim, store, config, loadPath); err != nil {
		return err
	}
	displayGameInfo(os.Stdout, config, store, sim.Grid())

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	// stdin reads cannot be interrupted, so the watcher is not joined
	go watchKeypresses(os.Stdin, sim.Stop)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	eg, egCtx := errgroup.WithContext(runCtx)
	done := make(chan struct{})
	eg.Go(func() error {
		defer close(done)
		return sim.RunUntilInterrupted(egCtx)
	})
	eg.Go(func() error {
		select {
		case sig := <-sigChan:
			log.Info("Received %s, shutting down gracefully", sig)
			cancelRun()
		case <-done:
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	if savePath != "" {
		if _, err := store.SaveTo(ctx, sim.Grid(), savePath); err != nil {
			return err
		}
		log.Info("Saved grid to %s", savePath)
	}

	displayFinalStats(os.Stdout, sim)
	return nil
}
