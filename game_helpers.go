package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/KonyakB/GameOfLife/log"
	"github.com/KonyakB/GameOfLife/model"
	"github.com/KonyakB/GameOfLife/simulation"
	"github.com/KonyakB/GameOfLife/storage"
	"github.com/KonyakB/GameOfLife/utils"
)

// newStateStore builds the codec and storage backend named in config. The
// returned func releases the backend.
func newStateStore(ctx context.Context, config utils.Config) (*storage.StateStore, func(), error) {
	codec, err := storage.NewCodec(config.Codec)
	if err != nil {
		return nil, nil, err
	}

	switch config.Storage {
	case utils.StorageSQLite:
		files, err := storage.NewSQLiteFileStorage(ctx, config.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := files.Close(); err != nil {
				log.Warn("Failed to close sqlite storage: %v", err)
			}
		}
		return storage.NewStateStore(codec, files), closeFn, nil
	case utils.StoragePostgres:
		files, err := storage.NewPostgresFileStorage(ctx, config.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := files.Close(context.Background()); err != nil {
				log.Warn("Failed to close postgres storage: %v", err)
			}
		}
		return storage.NewStateStore(codec, files), closeFn, nil
	default:
		return storage.NewStateStore(codec, storage.NewOSFileStorage()), func() {}, nil
	}
}

// newSimulator builds a simulator from config writing frames to out
func newSimulator(config utils.Config, out io.Writer) (*simulation.Simulator, error) {
	mode, err := model.ParseUpdateMode(config.UpdateMode)
	if err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return simulation.New(simulation.Options{
		Rand:                rand.New(rand.NewPCG(seed, 0)),
		Out:                 out,
		Delay:               config.FrameRate,
		Density:             config.Density,
		UpdateMode:          mode,
		ClearScreen:         config.ClearScreen,
		MaxGenerations:      config.MaxGenerations,
		StagnationThreshold: config.StagnationThreshold,
	}), nil
}

// initializeGame loads the saved grid at loadPath, or generates a random one
// when loadPath is empty or the saved grid cannot be used.
func initializeGame(ctx context.Context, sim *simulation.Simulator, store *storage.StateStore, config utils.Config, loadPath string) error {
	if loadPath != "" {
		grid, err := store.LoadFrom(ctx, loadPath)
		if err == nil {
			sim.Load(grid)
			log.Info("Loaded %dx%d grid from %s", grid.Rows(), grid.Columns(), loadPath)
			return nil
		}
		log.Warn("Could not load %s, generating a random grid instead: %v", loadPath, err)
	}

	if err := sim.Initialize(config.Rows, config.Columns); err != nil {
		return errors.Wrap(err, "[initializeGame] failed to initialize grid")
	}
	if config.Patterns {
		sim.Grid().AddInterestingPatterns()
	}
	return nil
}

// displayGameInfo shows the initial game information
func displayGameInfo(out io.Writer, config utils.Config, store *storage.StateStore, grid *model.Grid) {
	fmt.Fprintf(out, "Mode: %s | Codec: %s | Storage: %s\n",
		grid.UpdateMode(), store.Codec().Name(), config.Storage)
	fmt.Fprintf(out, "Grid: %dx%d | Initial living cells: %d\n",
		grid.Rows(), grid.Columns(), grid.CountLivingCells())
	fmt.Fprintln(out, "Press Enter or Ctrl+C to stop")
	fmt.Fprintln(out)
}

// displayFinalStats shows the summary printed on exit
func displayFinalStats(out io.Writer, sim *simulation.Simulator) {
	stats := sim.Stats()
	fmt.Fprintf(out, "Final stats: %d generations in %.1f seconds\n",
		sim.Generation(), stats.Runtime().Seconds())
	fmt.Fprintf(out, "Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}

// watchKeypresses calls stop when Enter or Space is read from in. It returns
// after the first such key or when in is exhausted.
func watchKeypresses(in io.Reader, stop func()) {
	reader := bufio.NewReader(in)
	for {
		r, _, err := reader.ReadRune()
		if err != nil {
			return
		}
		if r == '\n' || r == '\r' || r == ' ' {
			stop()
			return
		}
	}
}

// loadConfig reads the config file, falling back to defaults when it is missing
func loadConfig(path string) utils.Config {
	config, err := utils.LoadConfig(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("Using default configuration: %v", err)
		}
		return utils.DefaultConfig()
	}
	return config
}
