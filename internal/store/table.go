package store

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Record is one chaotic parameter point and its exponent.
type Record struct {
	P1       float64
	P2       float64
	P3       float64
	Exponent float64
}

// FormatParam renders v as its shortest round-trip decimal in the layout
// of the reference tables: integral values keep a trailing ".0" and
// scientific notation is used below 1e-4 and from 1e16 up.
func FormatParam(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatExponent renders the exponent with five decimals.
func FormatExponent(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 5, 64)
}

// FormatRecord returns the table line for r, newline included.
func FormatRecord(r Record) string {
	return FormatParam(r.P1) + ", " + FormatParam(r.P2) + ", " + FormatParam(r.P3) + ", " + FormatExponent(r.Exponent) + " \n"
}

func formatRow(row []float64) string {
	cols := make([]string, len(row))
	for i, v := range row {
		cols[i] = FormatParam(v)
	}
	return strings.Join(cols, ", ") + " \n"
}

// WriteTable writes records to path in order. The file is replaced
// atomically: readers see either the old table or the complete new one.
func WriteTable(path string, records []Record) error {
	return writeAtomic(path, func(w io.Writer) error {
		for _, r := range records {
			if _, err := io.WriteString(w, FormatRecord(r)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSeries writes rows of float columns in the table layout, for
// sweeps, orbits and trajectories.
func WriteSeries(path string, rows [][]float64) error {
	return writeAtomic(path, func(w io.Writer) error {
		for _, row := range rows {
			if _, err := io.WriteString(w, formatRow(row)); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAtomic(path string, fill func(io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = fill(bw); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadTable parses a table written by WriteTable.
func ReadTable(path string) ([]Record, error) {
	rows, err := ReadSeries(path, 4)
	if err != nil {
		return nil, err
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{P1: row[0], P2: row[1], P3: row[2], Exponent: row[3]}
	}
	return records, nil
}

// ReadSeries parses comma separated rows of exactly cols floats.
// cols <= 0 accepts any width. Blank lines are skipped.
func ReadSeries(path string, cols int) ([][]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows := make([][]float64, 0)
	sc := bufio.NewScanner(file)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if cols > 0 && len(fields) != cols {
			return nil, fmt.Errorf("%s:%d: expected %d fields, got %d", path, line, cols, len(fields))
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: field %d: %w", path, line, i+1, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}
