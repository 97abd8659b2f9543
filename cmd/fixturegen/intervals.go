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
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/intervals"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/randval"
	"gopkg.in/alecthomas/kingpin.v2"
)

func registerIntervals(m map[string]setupFunc, app *kingpin.Application, stdout io.Writer) {
	cmd := app.Command("intervals", "Generate random sorted query intervals.")

	configFile := cmd.Flag("config.file", "YAML profile to start from.").PlaceHolder("<path>").String()

	var (
		ov      overrides
		output  string
		count   int
		minTime int64
		maxTime int64
		seed    int64
	)
	ov.flag(cmd, "output", "Output CSV file.", func(c *config.Config) { c.Intervals.Output = output }).
		PlaceHolder("assets/intervals.csv").StringVar(&output)
	ov.flag(cmd, "count", "Number of intervals.", func(c *config.Config) { c.Intervals.Generator.Count = count }).
		PlaceHolder("25").IntVar(&count)
	ov.flag(cmd, "min-time", "Lower bound for interval endpoints, unix seconds.", func(c *config.Config) { c.Intervals.Generator.MinTime = minTime }).
		PlaceHolder("1740618000").Int64Var(&minTime)
	ov.flag(cmd, "max-time", "Upper bound for interval endpoints, unix seconds.", func(c *config.Config) { c.Intervals.Generator.MaxTime = maxTime }).
		PlaceHolder("2040618000").Int64Var(&maxTime)
	ov.flag(cmd, "seed", "Random seed, 0 for time based.", func(c *config.Config) { c.Intervals.RandSeed = seed }).
		PlaceHolder("0").Int64Var(&seed)

	m[cmd.FullCommand()] = func(g *run.Group, logger log.Logger) error {
		c, err := ov.load(*configFile)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		g.Add(func() error {
			return runIntervals(ctx, logger, c.Intervals, stdout)
		}, func(error) {
			cancel()
		})
		return nil
	}
}

func runIntervals(ctx context.Context, logger log.Logger, c config.IntervalsConfig, stdout io.Writer) error {
	res, err := intervals.Generate(c.Generator, randval.NewRand(c.RandSeed))
	if err != nil {
		return errors.Wrap(err, "generate intervals")
	}
	if len(res) == 0 && c.Generator.MinTime > c.Generator.MaxTime {
		level.Warn(logger).Log("msg", "empty time range, writing header only", "minTime", c.Generator.MinTime, "maxTime", c.Generator.MaxTime)
	}

	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "not writing intervals")
	}

	if err := intervals.WriteFile(logger, c.Output, res); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Intervals saved to %s\n", c.Output)
	return nil
}
