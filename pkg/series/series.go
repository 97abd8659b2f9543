package series

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/randval"
)

// Point is one sample of a synthetic time series.
type Point struct {
	// Timestamp is in seconds.
	Timestamp int64
	Value     float64
}

func (p Point) String() string {
	return fmt.Sprintf("Point(ts=%d, value=%v)", p.Timestamp, p.Value)
}

// GeneratorConfig says how many points to generate and where they sit in time.
type GeneratorConfig struct {
	Count int `yaml:"count"`

	// StartTime is the timestamp of the first point, in seconds.
	StartTime int64 `yaml:"startTime"`

	// Step is the gap between consecutive points, in seconds.
	Step int64 `yaml:"step"`
}

// DefaultGeneratorConfig returns 100 points one minute apart
// starting at 2023-03-15T13:20:00Z.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Count:     100,
		StartTime: 1678886400,
		Step:      60,
	}
}

// Validate rejects negative counts and non-positive steps.
func (c GeneratorConfig) Validate() error {
	if c.Count < 0 {
		return errors.Errorf("point count %d is negative", c.Count)
	}
	if c.Step <= 0 {
		return errors.Errorf("step %d is not positive", c.Step)
	}
	return nil
}

// Generate produces config.Count evenly spaced points with values
// taken from vals. Timestamps are deterministic; only values are random.
func Generate(config GeneratorConfig, vals randval.ValSeq) ([]Point, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	points := make([]Point, 0, config.Count)
	for i := 0; i < config.Count; i++ {
		points = append(points, Point{
			Timestamp: config.StartTime + int64(i)*config.Step,
			Value:     vals.Next(),
		})
	}

	return points, nil
}

// Sample returns up to the first n points.
func Sample(points []Point, n int) []Point {
	if n < 0 {
		n = 0
	}
	if n > len(points) {
		n = len(points)
	}
	return points[:n]
}
