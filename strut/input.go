package strut

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	dimensionFile = "input_dimension.txt"
	pathPattern   = "input_path_%d.txt"
)

// ErrNoPoints is returned for a path file without any points.
var ErrNoPoints = errors.New("path has no points")

// DimensionFile returns the location of the dimension file inside dir.
func DimensionFile(dir string) string { return filepath.Join(dir, dimensionFile) }

// PathFile returns the location of the ith (1 based) path file inside dir.
func PathFile(dir string, i int) string {
	return filepath.Join(dir, fmt.Sprintf(pathPattern, i))
}

// ReadPath reads whitespace separated "x y z" rows. Blank lines and lines
// starting with # are skipped.
func ReadPath(r io.Reader) ([]r3.Vec, error) {
	var pts []r3.Vec
	err := scanRows(r, func(line int, fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("line %d: want 3 coordinates, got %d", line, len(fields))
		}
		var v [3]float64
		for i, f := range fields {
			x, err := parseFinite(f)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			v[i] = x
		}
		pts = append(pts, r3.Vec{X: v[0], Y: v[1], Z: v[2]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, ErrNoPoints
	}
	return pts, nil
}

// ReadDimensions reads the first field of every row as a strut dimension.
// Remaining fields on a row are ignored.
func ReadDimensions(r io.Reader) ([]float64, error) {
	var dims []float64
	err := scanRows(r, func(line int, fields []string) error {
		d, err := parseFinite(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		dims = append(dims, d)
		return nil
	})
	return dims, err
}

func scanRows(r io.Reader, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := fn(line, strings.Fields(text)); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}

func loadPath(path string) ([]r3.Vec, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	pts, err := ReadPath(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pts, nil
}

func loadDimensions(dir string) ([]float64, error) {
	fp, err := os.Open(DimensionFile(dir))
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	dims, err := ReadDimensions(fp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", DimensionFile(dir), err)
	}
	return dims, nil
}

// discoverPaths counts the consecutive path files present in dir.
func discoverPaths(dir string) int {
	n := 0
	for {
		if _, err := os.Stat(PathFile(dir, n+1)); err != nil {
			return n
		}
		n++
	}
}
