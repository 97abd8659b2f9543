package csvfile

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/pkg/errors"
)

// Writer is interface to write records into a delimited text file.
type Writer interface {
	// Write writes one record, buffered.
	Write(record []string) error

	// Close flushes buffered records and closes the file.
	Close() error
}

// NewWriter creates (or truncates) the file at path and writes the header.
// The caller must Close the returned writer.
func NewWriter(logger log.Logger, path string, header []string) (Writer, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s for writing", path)
	}

	res := &writerT{
		logger: logger,
		path:   path,
		file:   f,
		csv:    csv.NewWriter(f),
	}
	res.csv.UseCRLF = true

	if err := res.csv.Write(header); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "write header to %s", path)
	}

	return res, nil
}

// writerT is implementation of Writer interface
type writerT struct {
	// logger and path are given to us as args
	logger log.Logger
	path   string

	file *os.File
	csv  *csv.Writer

	// rowCount is incremented every time we call Write
	rowCount int64
}

func (w *writerT) Write(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return errors.Wrapf(err, "write row %d to %s", w.rowCount, w.path)
	}
	w.rowCount++
	return nil
}

func (w *writerT) Close() error {
	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()

	if flushErr != nil {
		return errors.Wrapf(flushErr, "flush %s", w.path)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, "close %s", w.path)
	}

	level.Debug(w.logger).Log("msg", "file written", "path", w.path, "rows", w.rowCount)
	return nil
}

// WriteFile writes header and rows to path. The file is closed on
// every return path; the first error encountered is returned.
func WriteFile(logger log.Logger, path string, header []string, rows [][]string) (err error) {
	w, err := NewWriter(logger, path, header)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
	}()

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile reads a delimited file written by WriteFile and returns the
// header and the data rows separately.
func ReadFile(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err = r.Read()
	if err == io.EOF {
		return nil, nil, errors.Errorf("%s: missing header", path)
	}
	if err != nil {
		return nil, nil, errors.Wrapf(err, "read header of %s", path)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrapf(err, "read %s", path)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
