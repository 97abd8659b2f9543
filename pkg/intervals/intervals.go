package intervals

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/randval"
)

// Interval is a query window [Start, End] in seconds. Start <= End.
type Interval struct {
	Start int64
	End   int64
}

// Less orders intervals by Start, then by End.
func (i Interval) Less(o Interval) bool {
	if i.Start != o.Start {
		return i.Start < o.Start
	}
	return i.End < o.End
}

// GeneratorConfig is the number of intervals and the time range both
// endpoints are drawn from.
type GeneratorConfig struct {
	Count   int   `yaml:"count"`
	MinTime int64 `yaml:"minTime"`
	MaxTime int64 `yaml:"maxTime"`
}

// DefaultGeneratorConfig returns 25 intervals within 300 million seconds
// after 2025-02-27T01:00:00Z.
func DefaultGeneratorConfig() GeneratorConfig {
	const anchor = 1740618000
	return GeneratorConfig{
		Count:   25,
		MinTime: anchor,
		MaxTime: anchor + 300*1000000,
	}
}

// Validate rejects negative counts. An inverted time range is not an
// error, it just yields nothing.
func (c GeneratorConfig) Validate() error {
	if c.Count < 0 {
		return errors.Errorf("interval count %d is negative", c.Count)
	}
	return nil
}

// Generate draws config.Count random intervals from [MinTime, MaxTime]
// and returns them sorted. Duplicates are kept.
func Generate(config GeneratorConfig, r *rand.Rand) ([]Interval, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Count == 0 || config.MinTime > config.MaxTime {
		return []Interval{}, nil
	}

	res := make([]Interval, 0, config.Count)
	for n := 0; n < config.Count; n++ {
		start := randval.Int64Range(r, config.MinTime, config.MaxTime)
		end := randval.Int64Range(r, config.MinTime, config.MaxTime)
		if start > end {
			start, end = end, start
		}
		res = append(res, Interval{Start: start, End: end})
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].Less(res[j])
	})
	return res, nil
}
