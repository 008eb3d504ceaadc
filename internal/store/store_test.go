package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/metrics"
)

func testRun() (Run, *metrics.Series) {
	rc := engine.RunConfig{Rows: 24, Cols: 80, Dt: 0.01, Frames: 2, Seed: 42}
	res := &engine.Result{
		Frames:  2,
		Elapsed: 0.02,
		Metrics: map[string]float64{"active_streams": 1.5},
	}
	series := metrics.NewSeries(2)
	series.OnFrame(engine.Stats{Active: 1, Drawn: 4}, 0.01)
	series.OnFrame(engine.Stats{Active: 2, Drawn: 9}, 0.02)
	return NewRun("rain", rc, res), series
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	run, series := testRun()
	runID, err := st.Save(run, series)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "rain", meta.Effect)
	assert.Equal(t, uint64(42), meta.Seed)
	assert.Equal(t, 80, meta.Cols)
	assert.Equal(t, 1.5, meta.Metrics["active_streams"])

	loaded, err := st.LoadSeries(runID)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.01, 0.02}, loaded.Times)
	assert.Equal(t, []float64{1, 2}, loaded.Active)
	assert.Equal(t, []float64{4, 9}, loaded.Drawn)
}

func TestStoreLoadUnknown(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	first, series := testRun()
	first.Timestamp = time.Unix(100, 0)
	second := first
	second.Effect = "converge"
	second.Timestamp = time.Unix(50, 0)

	_, err = st.Save(first, series)
	require.NoError(t, err)
	_, err = st.Save(second, nil)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "junk"), 0755))

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "converge", runs[0].Effect)
	assert.Equal(t, "rain", runs[1].Effect)
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "missing")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	run, series := testRun()
	runID, err := st.Save(run, series)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, runID, "metadata.json"))
	assert.FileExists(t, filepath.Join(dir, runID, "series.csv"))
}

func TestWriteJSON(t *testing.T) {
	run, series := testRun()

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, run, series))

	var got ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "rain", got.Effect)
	assert.Equal(t, 2, got.Frames)
	assert.Equal(t, []float64{1, 2}, got.Active)
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	run, series := testRun()
	require.NoError(t, ExportJSON(path, run, series))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"effect": "rain"`)
	assert.Contains(t, string(data), `"drawn"`)
}

type failingCloser struct{ closed bool }

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestCloseFileReportsCloseError(t *testing.T) {
	c := &failingCloser{}
	var err error
	closeFile(c, &err)
	assert.True(t, c.closed)
	assert.ErrorContains(t, err, "disk full")

	earlier := errors.New("encode failed")
	err = earlier
	closeFile(&failingCloser{}, &err)
	assert.Equal(t, earlier, err, "an earlier error wins over the close error")
}

func TestWriteSeriesCreateError(t *testing.T) {
	_, series := testRun()
	err := writeSeries(filepath.Join(t.TempDir(), "missing", "series.csv"), series)
	assert.ErrorContains(t, err, "create series")
}
