package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/common/promlog"
	promlogflag "github.com/prometheus/common/promlog/flag"
	"github.com/prometheus/common/version"
	_ "go.uber.org/automaxprocs"
	"gopkg.in/alecthomas/kingpin.v2"
)

// setupFunc adds a command's actors to the run group.
type setupFunc func(g *run.Group, logger log.Logger) error

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Generates synthetic fixtures for time series database benchmarks.")
	app.Version(version.Print("fixturegen"))
	app.HelpFlag.Short('h')

	logConfig := promlog.Config{
		Level:  &promlog.AllowedLevel{},
		Format: &promlog.AllowedFormat{},
	}
	promlogflag.AddFlags(app, &logConfig)

	cmds := map[string]setupFunc{}
	registerPoints(cmds, app, os.Stdout)
	registerIntervals(cmds, app, os.Stdout)

	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "Error parsing commandline arguments"))
		app.Usage(os.Args[1:])
		os.Exit(2)
	}

	logger := promlog.New(&logConfig)

	var g run.Group
	if err := cmds[cmd](&g, logger); err != nil {
		level.Error(logger).Log("err", errors.Wrapf(err, "%s command failed", cmd))
		os.Exit(1)
	}

	// Listen for termination signals.
	{
		cancel := make(chan struct{})
		g.Add(func() error {
			return interrupt(logger, cancel)
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		level.Error(logger).Log("err", errors.Wrapf(err, "%s command failed", cmd))
		os.Exit(1)
	}
}

func interrupt(logger log.Logger, cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)

	return waitInterrupt(logger, c, cancel)
}

// waitInterrupt turns a received signal into an error so the run group
// stops and the process exits non-zero. A closed cancel returns nil.
func waitInterrupt(logger log.Logger, sigs <-chan os.Signal, cancel <-chan struct{}) error {
	select {
	case s := <-sigs:
		level.Info(logger).Log("msg", "caught signal. Exiting.", "signal", s)
		return errors.Errorf("interrupted by %s", s)
	case <-cancel:
		return nil
	}
}
