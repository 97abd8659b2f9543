package series

import (
	"strconv"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/csvfile"
)

// Header is the header row of a point file.
var Header = []string{"Timestamp", "Value"}

// WriteFile writes points to path, one row per point, in order.
func WriteFile(logger log.Logger, path string, points []Point) error {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			strconv.FormatInt(p.Timestamp, 10),
			strconv.FormatFloat(p.Value, 'g', -1, 64),
		})
	}

	if err := csvfile.WriteFile(logger, path, Header, rows); err != nil {
		return errors.Wrap(err, "write points")
	}

	level.Info(logger).Log("msg", "data saved", "path", path, "points", len(points))
	return nil
}

// ReadFile reads a point file written by WriteFile.
func ReadFile(path string) ([]Point, error) {
	_, rows, err := csvfile.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read points")
	}

	points := make([]Point, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(Header) {
			return nil, errors.Errorf("%s: row %d: want %d fields, got %d", path, i+1, len(Header), len(row))
		}
		ts, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d: timestamp", path, i+1)
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d: value", path, i+1)
		}
		points = append(points, Point{Timestamp: ts, Value: v})
	}

	return points, nil
}
