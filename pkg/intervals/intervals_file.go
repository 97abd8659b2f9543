package intervals

import (
	"strconv"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
	"github.com/ppanyukov/tsdb-fixture-gen/pkg/csvfile"
)

// Header is the header row of an interval file.
var Header = []string{"start_ts", "end_ts"}

// WriteFile writes intervals to path in the given order.
func WriteFile(logger log.Logger, path string, intervals []Interval) error {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	rows := make([][]string, 0, len(intervals))
	for _, in := range intervals {
		rows = append(rows, []string{
			strconv.FormatInt(in.Start, 10),
			strconv.FormatInt(in.End, 10),
		})
	}

	if err := csvfile.WriteFile(logger, path, Header, rows); err != nil {
		return errors.Wrap(err, "write intervals")
	}

	level.Info(logger).Log("msg", "intervals saved", "path", path, "intervals", len(intervals))
	return nil
}

// ReadFile loads intervals from a file written by WriteFile.
func ReadFile(path string) ([]Interval, error) {
	_, rows, err := csvfile.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read intervals")
	}

	res := make([]Interval, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(Header) {
			return nil, errors.Errorf("%s: row %d: want %d fields, got %d", path, i+1, len(Header), len(row))
		}
		start, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d: start", path, i+1)
		}
		end, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: row %d: end", path, i+1)
		}
		res = append(res, Interval{Start: start, End: end})
	}

	return res, nil
}
