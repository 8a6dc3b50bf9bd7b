package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// csvHeader returns the column names for ndim coordinate axes.
// 2-d and 3-d images use x, y, z; higher dimensions fall back to axis0..n.
func csvHeader(ndim int) []string {
	if ndim <= 3 {
		return []string{"x", "y", "z"}[:ndim]
	}
	cols := make([]string, ndim)
	for i := range cols {
		cols[i] = "axis" + strconv.Itoa(i)
	}
	return cols
}

// WriteCentersCSV writes sphere centers as CSV with a coordinate header.
// Rows keep insertion order.
func WriteCentersCSV(centers [][]int, ndim int, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader(ndim)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, ndim)
	for _, c := range centers {
		for i, v := range c {
			row[i] = strconv.Itoa(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCentersCSV writes sphere centers to a CSV file at path.
func ExportCentersCSV(centers [][]int, ndim int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteCentersCSV(centers, ndim, f)
}
