package config

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/midbel/cartesian"
	"github.com/midbel/slices"
)

// readColumns reads the x and y columns of a CSV file with a header.
// Empty cells in y are gaps.
func readColumns(file, x, y string) ([]cartesian.Point, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rs := csv.NewReader(r)
	rs.TrimLeadingSpace = true
	rows, err := rs.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty file", file)
	}
	var (
		head = slices.Fst(rows)
		xcol = -1
		ycol = columnIndex(head, y)
	)
	if ycol < 0 {
		return nil, fmt.Errorf("%s: column %s not found", file, y)
	}
	if x != "" {
		if xcol = columnIndex(head, x); xcol < 0 {
			return nil, fmt.Errorf("%s: column %s not found", file, x)
		}
	}
	var points []cartesian.Point
	for i, row := range slices.Rest(rows) {
		var pt cartesian.Point
		pt.X = float64(i)
		if xcol >= 0 {
			if pt.X, err = parseCell(row, xcol); err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", file, i+2, err)
			}
		}
		if pt.Y, err = parseCell(row, ycol); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", file, i+2, err)
		}
		points = append(points, pt)
	}
	return points, nil
}

func columnIndex(head []string, name string) int {
	for i, h := range head {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func parseCell(row []string, col int) (float64, error) {
	if col >= len(row) {
		return math.NaN(), nil
	}
	str := strings.TrimSpace(row[col])
	if str == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(str, 64)
}

func resolvePath(baseDir, file string) string {
	if filepath.IsAbs(file) || baseDir == "" {
		return file
	}
	return filepath.Clean(filepath.Join(baseDir, file))
}
