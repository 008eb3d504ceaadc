package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/whiteStainX/ncmatrix/internal/metrics"
)

// ExportData is a run with its series inlined.
type ExportData struct {
	Run
	Times  []float64 `json:"times"`
	Active []float64 `json:"active"`
	Drawn  []float64 `json:"drawn"`
}

func WriteJSON(w io.Writer, run Run, series *metrics.Series) error {
	data := ExportData{Run: run}
	if series != nil {
		data.Times = series.Times
		data.Active = series.Active
		data.Drawn = series.Drawn
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, run Run, series *metrics.Series) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer closeFile(file, &err)

	return WriteJSON(file, run, series)
}
