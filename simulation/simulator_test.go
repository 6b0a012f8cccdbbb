package simulation

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KonyakB/GameOfLife/log"
	"github.com/KonyakB/GameOfLife/model"
)

func newTestSimulator(out *bytes.Buffer, opts Options) *Simulator {
	opts.Rand = rand.New(rand.NewPCG(11, 13))
	opts.Out = out
	opts.Logger = log.Discard()
	return New(opts)
}

func gridFrom(t *testing.T, rows ...string) *model.Grid {
	t.Helper()
	matrix := make([][]bool, len(rows))
	for i, row := range rows {
		matrix[i] = make([]bool, len(row))
		for j, ch := range row {
			matrix[i][j] = ch == '#'
		}
	}
	g, err := model.NewGrid(len(rows), len(rows[0]), matrix)
	require.NoError(t, err)
	return g
}

func TestSimulator_StepWithoutGrid(t *testing.T) {
	s := newTestSimulator(&bytes.Buffer{}, Options{})

	_, err := s.Step()
	assert.True(t, errors.Is(err, ErrNotInitialized))
	assert.True(t, errors.Is(s.RunUntilInterrupted(context.Background()), ErrNotInitialized))
}

func TestSimulator_Initialize(t *testing.T) {
	var out bytes.Buffer
	s := newTestSimulator(&out, Options{Density: 1})

	require.NoError(t, s.Initialize(4, 6))
	assert.Equal(t, 0, s.Generation())
	assert.Equal(t, 4, s.Grid().Rows())
	assert.Equal(t, 6, s.Grid().Columns())
	assert.Equal(t, 24, s.Grid().CountLivingCells(), "density 1 fills every row, including the first")

	err := s.Initialize(0, 6)
	assert.True(t, errors.Is(err, model.ErrEmptyGrid))
}

func TestSimulator_Initialize_isSeeded(t *testing.T) {
	a := newTestSimulator(&bytes.Buffer{}, Options{})
	b := newTestSimulator(&bytes.Buffer{}, Options{})
	require.NoError(t, a.Initialize(8, 8))
	require.NoError(t, b.Initialize(8, 8))

	assert.Equal(t, a.Grid().Matrix(), b.Grid().Matrix())
}

func TestSimulator_Step(t *testing.T) {
	var out bytes.Buffer
	s := newTestSimulator(&out, Options{UpdateMode: model.UpdateSynchronous})
	s.Load(gridFrom(t,
		".....",
		"..#..",
		"..#..",
		"..#..",
		".....",
	))
	assert.Equal(t, model.UpdateSynchronous, s.Grid().UpdateMode())

	frame, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Generation())
	assert.Equal(t, "Current generation: 1\n\n"+
		"·····\n"+
		"·····\n"+
		"·███·\n"+
		"·····\n"+
		"·····\n", frame)
	assert.Equal(t, frame, out.String())

	frame, err = s.Step()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(frame, "Current generation: 2\n\n·····\n··█··\n"))
	assert.Equal(t, 3, s.Stats().ActiveCells)
}

func TestSimulator_Step_sequentialByDefault(t *testing.T) {
	s := newTestSimulator(&bytes.Buffer{}, Options{})
	s.Load(gridFrom(t,
		"###",
		"...",
		"...",
	))

	_, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, [][]bool{
		{true, true, true},
		{true, false, false},
		{false, false, false},
	}, s.Grid().Matrix())
}

func TestSimulator_RunUntilInterrupted(t *testing.T) {
	tests := []struct {
		name           string
		opts           Options
		grid           []string
		wantGeneration int
	}{
		{
			name:           "max generations",
			opts:           Options{MaxGenerations: 3},
			grid:           []string{".....", "..#..", "..#..", "..#..", "....."},
			wantGeneration: 3,
		},
		{
			name:           "still life stagnates",
			opts:           Options{StagnationThreshold: 2, UpdateMode: model.UpdateSynchronous},
			grid:           []string{"......", "......", "..##..", "..##..", "......", "......"},
			wantGeneration: 5,
		},
		{
			name:           "extinction",
			opts:           Options{StagnationThreshold: 1},
			grid:           []string{"#"},
			wantGeneration: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := newTestSimulator(&out, tt.opts)
			s.Load(gridFrom(t, tt.grid...))

			require.NoError(t, s.RunUntilInterrupted(context.Background()))
			assert.Equal(t, tt.wantGeneration, s.Generation())
			assert.Equal(t, tt.wantGeneration, strings.Count(out.String(), "Current generation:"))
		})
	}
}

func TestSimulator_RunUntilInterrupted_cancelled(t *testing.T) {
	s := newTestSimulator(&bytes.Buffer{}, Options{})
	require.NoError(t, s.Initialize(3, 3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, s.RunUntilInterrupted(ctx))
	assert.Equal(t, 0, s.Generation())
}

// stopAfter calls Stop once it has received n frames
type stopAfter struct {
	sim    *Simulator
	n      int
	frames int
}

func (w *stopAfter) Write(p []byte) (int, error) {
	w.frames++
	if w.frames == w.n {
		w.sim.Stop()
	}
	return len(p), nil
}

func TestSimulator_Stop(t *testing.T) {
	w := &stopAfter{n: 2}
	s := New(Options{
		Rand:   rand.New(rand.NewPCG(1, 1)),
		Out:    w,
		Logger: log.Discard(),
	})
	w.sim = s
	require.NoError(t, s.Initialize(5, 5))

	require.NoError(t, s.RunUntilInterrupted(context.Background()))
	assert.Equal(t, 2, s.Generation())
}

func TestSimulator_StopBeforeRun(t *testing.T) {
	s := newTestSimulator(&bytes.Buffer{}, Options{MaxGenerations: 5})
	require.NoError(t, s.Initialize(5, 5))

	// a stop requested before the run starts is not lost
	s.Stop()
	require.NoError(t, s.RunUntilInterrupted(context.Background()))
	assert.Equal(t, 0, s.Generation())

	// and it is consumed by that run
	require.NoError(t, s.RunUntilInterrupted(context.Background()))
	assert.Equal(t, 5, s.Generation())
}
