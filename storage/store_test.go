package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KonyakB/GameOfLife/model"
)

// patterned builds a rows x columns grid with a mixed, asymmetric pattern
func patterned(t *testing.T, rows, columns int) *model.Grid {
	t.Helper()
	matrix := make([][]bool, rows)
	for i := range matrix {
		matrix[i] = make([]bool, columns)
		for j := range matrix[i] {
			matrix[i][j] = (i*columns+j)%3 == 0 || (i == 0 && j == columns-1)
		}
	}
	g, err := model.NewGrid(rows, columns, matrix)
	require.NoError(t, err)
	return g
}

var codecNames = []string{"json", "json+zstd", "flatbuffer", "flatbuffer+zstd"}

func TestStateStore_roundTrip(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {4, 5}}

	for _, name := range codecNames {
		codec, err := NewCodec(name)
		require.NoError(t, err)
		store := NewStateStore(codec, NewMemoryFileStorage())

		for _, size := range sizes {
			original := patterned(t, size[0], size[1])

			record, data, err := store.Save(original)
			require.NoError(t, err, name)
			assert.Equal(t, size[1], record.Width, "width is the column count")
			assert.Equal(t, size[0], record.Height, "height is the row count")

			restored, err := store.Load(data)
			require.NoError(t, err, name)
			assert.Equal(t, original.Rows(), restored.Rows())
			assert.Equal(t, original.Columns(), restored.Columns())
			assert.Equal(t, original.Matrix(), restored.Matrix(), "%s %dx%d", name, size[0], size[1])

			// wiring is rebuilt, not carried over
			for i, c := range restored.Cells() {
				assert.Equal(t, original.Cells()[i].Neighbors(), c.Neighbors())
			}
		}
	}
}

func TestStateStore_SaveToLoadFrom(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewStateStore(JSONCodec{}, NewOSFileStorage())
	original := patterned(t, 3, 4)

	path := filepath.Join(dir, "saves", "grid.json")
	data, err := store.SaveTo(ctx, original, path)
	require.NoError(t, err)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
	assert.Contains(t, string(onDisk), `"flat_grid"`)

	restored, err := store.LoadFrom(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, original.Matrix(), restored.Matrix())

	_, err = store.LoadFrom(ctx, filepath.Join(dir, "missing.json"))
	assert.True(t, IsNotFound(err), "got %v", err)
}

func TestStateStore_Load_errors(t *testing.T) {
	store := NewStateStore(JSONCodec{}, NewMemoryFileStorage())

	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "flat grid too short", data: `{"width": 3, "height": 2, "flat_grid": [true, false]}`, wantErr: ErrMalformedRecord},
		{name: "flat grid too long", data: `{"width": 1, "height": 1, "flat_grid": [true, false]}`, wantErr: ErrMalformedRecord},
		{name: "negative width", data: `{"width": -1, "height": -1, "flat_grid": [true]}`, wantErr: ErrMalformedRecord},
		{name: "not json", data: `width=3`, wantErr: ErrMalformedRecord},
		{name: "empty", data: ``, wantErr: ErrMalformedRecord},
		{name: "zero by zero", data: `{"width": 0, "height": 0, "flat_grid": []}`, wantErr: model.ErrEmptyGrid},
		{name: "null", data: `null`, wantErr: ErrMalformedRecord},
		{name: "empty object", data: `{}`, wantErr: ErrMalformedRecord},
		{name: "unrelated object", data: `{"foo": 1}`, wantErr: ErrMalformedRecord},
		{name: "missing flat grid", data: `{"width": 0, "height": 0}`, wantErr: ErrMalformedRecord},
		{name: "null flat grid", data: `{"width": 1, "height": 1, "flat_grid": null}`, wantErr: ErrMalformedRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := store.Load([]byte(tt.data))
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCodecs_rejectGarbage(t *testing.T) {
	for _, name := range codecNames {
		codec, err := NewCodec(name)
		require.NoError(t, err)
		assert.Equal(t, name, codec.Name())

		_, err = codec.Decode(nil)
		assert.True(t, errors.Is(err, ErrMalformedRecord), "%s: got %v", name, err)

		_, err = codec.Decode([]byte{0x01, 0x02})
		assert.Error(t, err, name)
	}

	_, err := NewCodec("xml")
	assert.Error(t, err)
}

func TestRecord_Matrix(t *testing.T) {
	r := Record{
		Width:  3,
		Height: 2,
		FlatGrid: []bool{
			true, false, false,
			false, true, true,
		},
	}
	matrix, err := r.Matrix()
	require.NoError(t, err)
	assert.Equal(t, [][]bool{
		{true, false, false},
		{false, true, true},
	}, matrix)

	g, err := r.Grid()
	require.NoError(t, err)
	assert.Equal(t, r, Flatten(g))
}

func TestFileStorages(t *testing.T) {
	ctx := context.Background()

	sqlite, err := NewSQLiteFileStorage(ctx, filepath.Join(t.TempDir(), "life.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	storages := map[string]FileStorage{
		"memory": NewMemoryFileStorage(),
		"sqlite": sqlite,
		"os":     NewOSFileStorage(),
	}
	for name, files := range storages {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "state.bin")

			_, err := files.Read(ctx, path)
			assert.True(t, IsNotFound(err), "got %v", err)

			require.NoError(t, files.Write(ctx, path, []byte("first")))
			require.NoError(t, files.Write(ctx, path, []byte("second")))

			got, err := files.Read(ctx, path)
			require.NoError(t, err)
			assert.Equal(t, []byte("second"), got)
		})
	}
}

func TestPostgresFileStorage(t *testing.T) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	files, err := NewPostgresFileStorage(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { files.Close(ctx) })

	store := NewStateStore(FlatbufferCodec{}, files)
	original := patterned(t, 4, 5)
	_, err = store.SaveTo(ctx, original, "test/postgres-round-trip")
	require.NoError(t, err)

	restored, err := store.LoadFrom(ctx, "test/postgres-round-trip")
	require.NoError(t, err)
	assert.Equal(t, original.Matrix(), restored.Matrix())
}
