package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/whiteStainX/ncmatrix/internal/engine"
	"github.com/whiteStainX/ncmatrix/internal/metrics"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

// ErrRunNotFound is returned by Load for an unknown run id.
var ErrRunNotFound = errors.New("store: run not found")

// Store keeps benchmark runs under a base directory, one directory per run.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Run describes a headless run.
type Run struct {
	ID        string             `json:"id"`
	Effect    string             `json:"effect"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      uint64             `json:"seed"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	Dt        float64            `json:"dt"`
	Frames    int                `json:"frames"`
	Elapsed   float64            `json:"elapsed"`
	Finished  bool               `json:"finished"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewRun fills a Run from the run config and its result.
func NewRun(effect string, rc engine.RunConfig, res *engine.Result) Run {
	return Run{
		Effect:    effect,
		Timestamp: time.Now(),
		Seed:      rc.Seed,
		Rows:      rc.Rows,
		Cols:      rc.Cols,
		Dt:        rc.Dt,
		Frames:    res.Frames,
		Elapsed:   res.Elapsed,
		Finished:  res.Finished,
		Metrics:   res.Metrics,
	}
}

// Save writes run metadata and the per-frame series and returns the run id.
func (s *Store) Save(run Run, series *metrics.Series) (string, error) {
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	run.ID = fmt.Sprintf("%s_%d", run.Effect, run.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, run.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run directory")
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), run); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), series); err != nil {
		return "", err
	}

	return run.ID, nil
}

func writeMetadata(path string, run Run) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(run), "encode metadata")
}

func writeSeries(path string, series *metrics.Series) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create series")
	}
	defer closeFile(f, &err)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "active", "drawn"}); err != nil {
		return err
	}
	if series != nil {
		for i := range series.Times {
			row := []string{
				strconv.FormatFloat(series.Times[i], 'f', 6, 64),
				strconv.FormatFloat(series.Active[i], 'f', 0, 64),
				strconv.FormatFloat(series.Drawn[i], 'f', 0, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "write series")
}

// closeFile closes f and reports its error through err unless err is
// already set.
func closeFile(f io.Closer, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = errors.Wrap(cerr, "close file")
	}
}

// List returns the saved runs, oldest first. Directories without readable
// metadata are skipped.
func (s *Store) List() ([]Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	runs := make([]Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		run, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrRunNotFound, "%q", runID)
		}
		return nil, err
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.Wrapf(err, "decode metadata of %s", runID)
	}
	return &run, nil
}

// LoadSeries reads the per-frame series of a saved run.
func (s *Store) LoadSeries(runID string) (*metrics.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read series of %s", runID)
	}

	series := metrics.NewSeries(max(len(records)-1, 0))
	for _, record := range records[min(1, len(records)):] {
		if len(record) != 3 {
			continue
		}
		vals := make([]float64, 3)
		ok := true
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			vals[i] = v
		}
		if !ok {
			continue
		}
		series.Times = append(series.Times, vals[0])
		series.Active = append(series.Active, vals[1])
		series.Drawn = append(series.Drawn, vals[2])
	}
	return series, nil
}
