package simulation

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/KonyakB/GameOfLife/log"
	"github.com/KonyakB/GameOfLife/model"
	"github.com/KonyakB/GameOfLife/utils"
)

// DefaultDensity is the chance of a cell starting alive in a random grid
const DefaultDensity = 0.5

// ErrNotInitialized is returned when stepping a simulator that has no grid
var ErrNotInitialized = errors.New("simulator has no grid")

// Options configures a Simulator. Zero values fall back to defaults: a
// time-seeded PCG source, os.Stdout, DefaultDensity and the default logger.
type Options struct {
	Rand     *rand.Rand
	Out      io.Writer
	Renderer *model.TerminalRenderer
	Logger   *log.Logger

	// Delay is the pause between generations in RunUntilInterrupted
	Delay   time.Duration
	Density float64

	UpdateMode  model.UpdateMode
	ClearScreen bool

	// MaxGenerations stops RunUntilInterrupted once reached; 0 means no limit
	MaxGenerations int
	// StagnationThreshold stops RunUntilInterrupted after this many
	// consecutive stagnant or extinct generations; 0 disables the check
	StagnationThreshold int
}

// Simulator owns a grid and advances it one generation at a time. It is
// single-threaded; only Stop may be called from another goroutine.
type Simulator struct {
	rng      *rand.Rand
	out      io.Writer
	renderer *model.TerminalRenderer
	logger   *log.Logger
	opts     Options

	grid          *model.Grid
	generation    int
	stagnantCount int
	stats         *utils.Stats
	lastStep      time.Time

	mu            sync.Mutex
	cancel        context.CancelFunc
	stopRequested bool
}

func New(opts Options) *Simulator {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Renderer == nil {
		opts.Renderer = model.NewTerminalRenderer(opts.Out)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Density == 0 {
		opts.Density = DefaultDensity
	}

	return &Simulator{
		rng:      opts.Rand,
		out:      opts.Out,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		opts:     opts,
		stats:    utils.NewStats(),
	}
}

// Initialize replaces the grid with a random rows x columns one
func (s *Simulator) Initialize(rows, columns int) error {
	if rows <= 0 || columns <= 0 {
		return errors.Wrapf(model.ErrEmptyGrid, "[Initialize] grid is %dx%d", rows, columns)
	}
	matrix := model.RandomMatrix(s.rng, rows, columns, s.opts.Density)
	grid, err := model.NewGrid(rows, columns, matrix)
	if err != nil {
		return errors.Wrap(err, "[Initialize] failed to create grid")
	}

	s.Load(grid)
	return nil
}

// Load adopts an existing grid, such as one restored from storage, and
// restarts the generation count.
func (s *Simulator) Load(grid *model.Grid) {
	grid.SetUpdateMode(s.opts.UpdateMode)
	grid.ClearHistory()

	s.grid = grid
	s.generation = 0
	s.stagnantCount = 0
	s.stats = utils.NewStats()
	s.lastStep = time.Now()
}

// Grid returns the current grid, or nil before Initialize/Load
func (s *Simulator) Grid() *model.Grid {
	return s.grid
}

// Generation returns how many generations have been stepped
func (s *Simulator) Generation() int {
	return s.generation
}

func (s *Simulator) Stats() *utils.Stats {
	return s.stats
}

// Step advances one generation and writes the rendered frame to the output
// sink. The frame is also returned.
func (s *Simulator) Step() (string, error) {
	if s.grid == nil {
		return "", ErrNotInitialized
	}

	s.generation++
	s.grid.NextGeneration()

	livingCells := s.grid.CountLivingCells()
	s.stats.Update(s.generation, livingCells, time.Since(s.lastStep))
	s.lastStep = time.Now()

	// compare against earlier generations before recording this one
	if livingCells == 0 || s.grid.IsStagnant() {
		s.stagnantCount++
	} else {
		s.stagnantCount = 0
	}
	s.grid.UpdateHistory()

	density := float64(livingCells) / float64(s.grid.Rows()*s.grid.Columns()) * 100
	s.logger.Debug("Gen: %d | Living: %d | Density: %.1f%%", s.generation, livingCells, density)

	frame := fmt.Sprintf("Current generation: %d\n\n", s.generation) + s.renderer.Render(s.grid)
	if s.opts.ClearScreen {
		s.renderer.Clear()
	}
	if _, err := io.WriteString(s.out, frame); err != nil {
		return frame, errors.Wrap(err, "[Step] failed to write frame")
	}
	return frame, nil
}

// stopReason reports why the run should end on its own, or "" to continue
func (s *Simulator) stopReason() string {
	if s.opts.MaxGenerations > 0 && s.generation >= s.opts.MaxGenerations {
		return "maximum generations reached"
	}
	if s.opts.StagnationThreshold > 0 && s.stagnantCount >= s.opts.StagnationThreshold {
		if s.grid.CountLivingCells() == 0 {
			return "extinction"
		}
		return "stagnation detected"
	}
	return ""
}

// RunUntilInterrupted steps the grid, pausing Delay between generations,
// until ctx is cancelled, Stop is called, or a configured limit is hit.
// Cancellation is checked once per generation. A clean stop returns nil.
func (s *Simulator) RunUntilInterrupted(ctx context.Context) error {
	if s.grid == nil {
		return ErrNotInitialized
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.startRun(cancel)
	defer s.endRun()

	for {
		if ctx.Err() != nil {
			s.logger.Info("Simulation stopped at generation %d", s.generation)
			return nil
		}

		if _, err := s.Step(); err != nil {
			return errors.Wrapf(err, "[RunUntilInterrupted] generation %d", s.generation)
		}

		if reason := s.stopReason(); reason != "" {
			s.logger.Info("Simulation finished at generation %d: %s", s.generation, reason)
			return nil
		}

		timer := time.NewTimer(s.opts.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
		case <-timer.C:
		}
	}
}

// Stop ends a running RunUntilInterrupted after its current generation.
// When no run is in progress the request is kept, and the next run returns
// before its first generation.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		return
	}
	s.stopRequested = true
}

func (s *Simulator) startRun(cancel context.CancelFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = cancel
	if s.stopRequested {
		s.stopRequested = false
		cancel()
	}
}

func (s *Simulator) endRun() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel = nil
}
