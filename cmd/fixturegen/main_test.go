package main

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/oklog/run"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/config"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/intervals"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/alecthomas/kingpin.v2"
)

// runApp parses args the way main does and runs the chosen command.
func runApp(t *testing.T, stdout *bytes.Buffer, args ...string) error {
	app := kingpin.New("fixturegen", "")
	cmds := map[string]setupFunc{}
	registerPoints(cmds, app, stdout)
	registerIntervals(cmds, app, stdout)

	cmd, err := app.Parse(args)
	require.NoError(t, err)

	var g run.Group
	if err := cmds[cmd](&g, log.NewNopLogger()); err != nil {
		return err
	}
	return g.Run()
}

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "fixturegen-test")
	require.NoError(t, err)
	return dir
}

func TestPointsCommand(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "points.csv")
	var stdout bytes.Buffer
	err := runApp(t, &stdout, "points", "--output="+out, "--count=3", "--start-time=1000", "--step=60", "--seed=1")
	require.NoError(t, err)

	points, err := series.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, int64(1000), points[0].Timestamp)
	assert.Equal(t, int64(1060), points[1].Timestamp)
	assert.Equal(t, int64(1120), points[2].Timestamp)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Data saved to "+out, lines[0])
	assert.Equal(t, "Sample of generated data:", lines[1])
	assert.Equal(t, points[0].String(), lines[2])
	assert.Equal(t, points[2].String(), lines[4])
}

func TestPointsCommand_SampleCapped(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	var stdout bytes.Buffer
	err := runApp(t, &stdout, "points", "--output="+filepath.Join(dir, "p.csv"), "--count=20", "--seed=2")
	require.NoError(t, err)

	// confirmation, sample heading, 5 points
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 7)
}

func TestPointsCommand_ZeroCountWritesHeader(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "p.csv")
	var stdout bytes.Buffer
	require.NoError(t, runApp(t, &stdout, "points", "--output="+out, "--count=0"))

	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Value\r\n", string(b))
	assert.Equal(t, "Data saved to "+out+"\n", stdout.String())
}

func TestPointsCommand_Errors(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	var stdout bytes.Buffer
	err := runApp(t, &stdout, "points", "--output="+filepath.Join(dir, "p.csv"), "--count=-1")
	assert.Error(t, err)

	bad := filepath.Join(dir, "missing", "p.csv")
	err = runApp(t, &stdout, "points", "--output="+bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
	assert.Empty(t, stdout.String())

	err = runApp(t, &stdout, "points", "--output="+filepath.Join(dir, "p.csv"), "--config.file="+filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestIntervalsCommand(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "intervals.csv")
	var stdout bytes.Buffer
	err := runApp(t, &stdout, "intervals", "--output="+out, "--count=40", "--min-time=100", "--max-time=200", "--seed=9")
	require.NoError(t, err)
	assert.Equal(t, "Intervals saved to "+out+"\n", stdout.String())

	res, err := intervals.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, res, 40)
	for i, in := range res {
		assert.True(t, in.Start >= 100 && in.End <= 200 && in.Start <= in.End, "%d: %+v", i, in)
	}
}

func TestIntervalsCommand_InvertedRange(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "intervals.csv")
	require.NoError(t, runApp(t, &bytes.Buffer{}, "intervals", "--output="+out, "--min-time=200", "--max-time=100"))

	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "start_ts,end_ts\r\n", string(b))
}

func TestConfigFileWithOverrides(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "from-file.csv")
	profile := filepath.Join(dir, "profile.yaml")
	require.NoError(t, ioutil.WriteFile(profile, []byte(`
intervals:
  output: `+out+`
  generator:
    count: 7
    minTime: 0
    maxTime: 10
`), 0644))

	// file alone
	require.NoError(t, runApp(t, &bytes.Buffer{}, "intervals", "--config.file="+profile))
	res, err := intervals.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, res, 7)

	// explicit flag wins over the file, the rest of the file still applies
	require.NoError(t, runApp(t, &bytes.Buffer{}, "intervals", "--config.file="+profile, "--count=2"))
	res, err = intervals.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.True(t, res[1].End <= 10)
}

func TestOverridesOnlyAppliedWhenSet(t *testing.T) {
	app := kingpin.New("fixturegen", "")
	cmd := app.Command("points", "")

	var (
		ov    overrides
		count int
		step  int64
	)
	ov.flag(cmd, "count", "", func(c *config.Config) { c.Points.Generator.Count = count }).IntVar(&count)
	ov.flag(cmd, "step", "", func(c *config.Config) { c.Points.Generator.Step = step }).Int64Var(&step)

	_, err := app.Parse([]string{"points", "--count=9"})
	require.NoError(t, err)

	c, err := ov.load("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Points.Generator.Count)
	assert.Equal(t, config.Default().Points.Generator.Step, c.Points.Generator.Step)
}

func TestRunPoints_CancelledDoesNotTouchFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, "p.csv")
	require.NoError(t, ioutil.WriteFile(out, []byte("keep me"), 0644))

	c := config.Default().Points
	c.Output = out

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	require.Error(t, runPoints(ctx, log.NewNopLogger(), c, &stdout))

	b, err := ioutil.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(b))
}

func TestRunIntervals_CancelledDoesNotTouchFile(t *testing.T) {
	dir := tempDir(t)
	defer os.RemoveAll(dir)

	c := config.Default().Intervals
	c.Output = filepath.Join(dir, "i.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, runIntervals(ctx, log.NewNopLogger(), c, &bytes.Buffer{}))
	_, err := os.Stat(c.Output)
	assert.True(t, os.IsNotExist(err))
}

func TestRunPoints_BadValueConfig(t *testing.T) {
	c := config.Default().Points
	c.Values.MinValue = 5

	err := runPoints(context.Background(), log.NewNopLogger(), c, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create value sequence")
}

func TestWaitInterrupt_Cancelled(t *testing.T) {
	sigs := make(chan os.Signal, 1)
	cancel := make(chan struct{})
	close(cancel)

	assert.NoError(t, waitInterrupt(log.NewNopLogger(), sigs, cancel))
}

func TestWaitInterrupt_Signal(t *testing.T) {
	sigs := make(chan os.Signal, 1)
	sigs <- syscall.SIGTERM

	err := waitInterrupt(log.NewNopLogger(), sigs, make(chan struct{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted by")
}

func TestInterrupt_ReturnsOnCancel(t *testing.T) {
	cancel := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- interrupt(log.NewNopLogger(), cancel)
	}()

	close(cancel)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("interrupt did not return after cancel")
	}
}
