// Package randval generates pseudo-random value sequences and integers.
package randval

import (
	"math"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// ValSeq is the interface for getting an infinite sequence of values.
type ValSeq interface {
	Next() float64
}

// Value sequence kinds accepted by NewValSeq.
const (
	KindUniform = "uniform"
	KindGauge   = "gauge"
	KindCounter = "counter"
)

// Config is the configuration for the value generators.
type Config struct {
	MinValue float64 `yaml:"minValue"`
	MaxValue float64 `yaml:"maxValue"`

	// MaxChangeValue is the maximum change of value between two
	// consecutive values of gauges and counters. The actual change
	// is randomised to be in range of [0, +MaxChangeValue] for counters
	// and [-MaxChangeValue, +MaxChangeValue] for gauges.
	// Uniform sequences ignore it.
	MaxChangeValue float64 `yaml:"maxChangeValue"`

	// RandSeed is the random number generator seed. Use `0` for
	// the seed based on current time and completely random sequences.
	RandSeed int64 `yaml:"randSeed"`
}

// DefaultConfig returns a copy of default config: uniform values
// in [-1, 1]. The random seed is based on current time.
func DefaultConfig() Config {
	return Config{
		MinValue:       -1.0,
		MaxValue:       1.0,
		MaxChangeValue: 0.1,
		RandSeed:       0,
	}
}

// Validate checks the value bounds.
func (c Config) Validate() error {
	if math.IsNaN(c.MinValue) || math.IsNaN(c.MaxValue) {
		return errors.New("value bounds must be numbers")
	}
	if c.MinValue > c.MaxValue {
		return errors.Errorf("minValue %v is greater than maxValue %v", c.MinValue, c.MaxValue)
	}
	if c.MaxChangeValue < 0 {
		return errors.Errorf("maxChangeValue %v is negative", c.MaxChangeValue)
	}
	return nil
}

// NewRand creates a random number generator for the given seed.
// Seed `0` picks a seed based on current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewValSeq creates a value sequence of the given kind.
func NewValSeq(kind string, config Config) (ValSeq, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid value config")
	}

	switch kind {
	case KindUniform, "":
		return NewRandUniformVal(config), nil
	case KindGauge:
		return NewRandGaugeVal(config), nil
	case KindCounter:
		return NewRandCounterVal(config), nil
	default:
		return nil, errors.Errorf("unknown value kind %q", kind)
	}
}

// NewRandUniformVal creates a sequence of independent values drawn
// uniformly from the half-open range [MinValue, MaxValue). When
// MinValue == MaxValue every value is MinValue.
func NewRandUniformVal(config Config) ValSeq {
	return &randUniformValT{
		config: config,
		rand:   NewRand(config.RandSeed),
	}
}

// NewRandCounterVal creates new random counter sequence.
func NewRandCounterVal(config Config) ValSeq {
	return &randCounterValT{
		config:       config,
		currentValue: config.MinValue,
		changeRand:   NewRand(config.RandSeed),
	}
}

// NewRandGaugeVal creates new random gauge sequence.
func NewRandGaugeVal(config Config) ValSeq {
	return &randGaugeValT{
		config:       config,
		currentValue: config.MinValue,
		changeRand:   NewRand(config.RandSeed),
	}
}

// randUniformValT implements uniform `ValSeq`: every value is independent.
type randUniformValT struct {
	config Config
	rand   *rand.Rand
}

func (u *randUniformValT) Next() float64 {
	span := u.config.MaxValue - u.config.MinValue
	v := u.config.MinValue + span*u.rand.Float64()

	// float rounding can push us just past max on wide spans
	return math.Min(v, u.config.MaxValue)
}

// randCounterValT implements counter `ValSeq`: monotonic increase in value.
type randCounterValT struct {
	config       Config
	currentValue float64
	changeRand   *rand.Rand
}

func (c *randCounterValT) Next() float64 {
	// monotonic increase like so:
	//  nextValue = currentValue + (rand baseChange)
	actualChange := c.config.MaxChangeValue * c.changeRand.Float64()
	nextValue := c.currentValue + actualChange

	// reset to min if out of bounds
	if nextValue > c.config.MaxValue || nextValue < c.config.MinValue {
		nextValue = c.config.MinValue
	}

	c.currentValue = nextValue
	return c.currentValue
}

// randGaugeValT implements gauge `ValSeq`: value which goes between min and max.
type randGaugeValT struct {
	config       Config
	currentValue float64
	changeRand   *rand.Rand
}

func (c *randGaugeValT) Next() float64 {
	// fluctuate like so:
	//  nextValue = currentValue + change, change in [-MaxChangeValue, +MaxChangeValue)
	// then clamp to [MinValue, MaxValue]
	actualChange := c.config.MaxChangeValue * 2 * (c.changeRand.Float64() - 0.5)
	nextValue := c.currentValue + actualChange
	nextValue = math.Min(nextValue, c.config.MaxValue)
	nextValue = math.Max(nextValue, c.config.MinValue)

	c.currentValue = nextValue
	return c.currentValue
}

// Int64Range returns a uniformly distributed integer in the closed
// range [min, max]. It panics if min > max.
func Int64Range(r *rand.Rand, min, max int64) int64 {
	if min > max {
		panic("randval: Int64Range called with min > max")
	}

	// span is the number of values in range minus one, computed
	// in uint64 so that [MinInt64, MaxInt64] does not overflow.
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int64(r.Uint64())
	}

	n := span + 1
	if n <= math.MaxInt64 {
		return min + r.Int63n(int64(n))
	}

	// Range wider than Int63n can serve: reject samples past the
	// largest multiple of n to keep the distribution uniform.
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		v := r.Uint64()
		if v < limit {
			return int64(uint64(min) + v%n)
		}
	}
}
