package porosity

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReportHeader is the first line of a porosity report.
const ReportHeader = "Point Location (x, y, z), Radius"

// WriteReport writes one "x, y, z, radius" row per sample with four
// decimals after the header line.
func WriteReport(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, ReportHeader); err != nil {
		return err
	}
	for _, s := range samples {
		_, err := fmt.Fprintf(bw, "%.4f, %.4f, %.4f, %.4f\n", s.Point.X, s.Point.Y, s.Point.Z, s.Distance)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadReport parses a report written by WriteReport.
func ReadReport(r io.Reader) ([]Sample, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty report")
	}
	if strings.TrimSpace(sc.Text()) != ReportHeader {
		return nil, fmt.Errorf("unexpected report header %q", sc.Text())
	}
	var samples []Sample
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("line %d: want 4 fields, got %d", line, len(fields))
		}
		var v [4]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("line %d: non-finite value", line)
			}
			v[i] = x
		}
		samples = append(samples, Sample{Point: r3.Vec{X: v[0], Y: v[1], Z: v[2]}, Distance: v[3]})
	}
	return samples, sc.Err()
}
