package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/config"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/randval"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/series"
	"gopkg.in/alecthomas/kingpin.v2"
)

func registerPoints(m map[string]setupFunc, app *kingpin.Application, stdout io.Writer) {
	cmd := app.Command("points", "Generate evenly spaced points with random values in [-1, 1].")

	configFile := cmd.Flag("config.file", "YAML profile to start from.").PlaceHolder("<path>").String()

	var (
		ov        overrides
		output    string
		count     int
		startTime int64
		step      int64
		seed      int64
		kind      string
		sample    int
	)
	ov.flag(cmd, "output", "Output CSV file.", func(c *config.Config) { c.Points.Output = output }).
		PlaceHolder("assets/test_data.csv").StringVar(&output)
	ov.flag(cmd, "count", "Number of points.", func(c *config.Config) { c.Points.Generator.Count = count }).
		PlaceHolder("100").IntVar(&count)
	ov.flag(cmd, "start-time", "Timestamp of the first point, unix seconds.", func(c *config.Config) { c.Points.Generator.StartTime = startTime }).
		PlaceHolder("1678886400").Int64Var(&startTime)
	ov.flag(cmd, "step", "Seconds between points.", func(c *config.Config) { c.Points.Generator.Step = step }).
		PlaceHolder("60").Int64Var(&step)
	ov.flag(cmd, "seed", "Random seed for values, 0 for time based.", func(c *config.Config) { c.Points.Values.RandSeed = seed }).
		PlaceHolder("0").Int64Var(&seed)
	ov.flag(cmd, "value-kind", "Value sequence kind.", func(c *config.Config) { c.Points.ValueKind = kind }).
		PlaceHolder(randval.KindUniform).EnumVar(&kind, randval.KindUniform, randval.KindGauge, randval.KindCounter)
	ov.flag(cmd, "sample", "Number of leading points to print after writing.", func(c *config.Config) { c.Points.Sample = sample }).
		PlaceHolder("5").IntVar(&sample)

	m[cmd.FullCommand()] = func(g *run.Group, logger log.Logger) error {
		c, err := ov.load(*configFile)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return runPoints(ctx, logger, c.Points, stdout)
		}, func(error) {
			cancel()
		})
		return nil
	}
}

// runPoints generates the whole series in memory, then writes it in one pass.
// A cancelled context stops it before the output file is touched.
func runPoints(ctx context.Context, logger log.Logger, c config.PointsConfig, stdout io.Writer) error {
	vals, err := randval.NewValSeq(c.ValueKind, c.Values)
	if err != nil {
		return errors.Wrap(err, "create value sequence")
	}

	points, err := series.Generate(c.Generator, vals)
	if err != nil {
		return errors.Wrap(err, "generate points")
	}
	level.Debug(logger).Log("msg", "points generated", "count", len(points))

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "not writing points")
	}

	if err := series.WriteFile(logger, c.Output, points); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Data saved to %s\n", c.Output)

	// print a few points as a sanity check
	if sample := series.Sample(points, c.Sample); len(sample) > 0 {
		fmt.Fprintln(stdout, "Sample of generated data:")
		for _, p := range sample {
			fmt.Fprintln(stdout, p)
		}
	}
	return nil
}
