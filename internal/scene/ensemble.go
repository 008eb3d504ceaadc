package scene

import (
	"context"
	"sync"
	"time"

	"github.com/whiteStainX/ncmatrix/internal/engine"
)

// Ensemble runs one scene headlessly under consecutive seeds in parallel.
type Ensemble struct {
	base      *Scene
	numRuns   int
	seedStart uint64
}

// NewEnsemble seeds run i with seedStart+i. A zero seedStart is replaced
// with a time-based one.
func NewEnsemble(s *Scene, numRuns int, seedStart uint64) *Ensemble {
	if seedStart == 0 {
		seedStart = uint64(time.Now().UnixNano())
	}
	return &Ensemble{base: s, numRuns: max(numRuns, 1), seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, rc engine.RunConfig) ([]*engine.Result, error) {
	results := make([]*engine.Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := rc
			cfg.Seed = e.seedStart + uint64(idx)
			results[idx], _, errs[idx] = e.base.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// MeanMetrics averages each metric over the results that report it.
func MeanMetrics(results []*engine.Result) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range results {
		for name, v := range r.Metrics {
			sums[name] += v
			counts[name]++
		}
	}
	for name := range sums {
		sums[name] /= float64(counts[name])
	}
	return sums
}
