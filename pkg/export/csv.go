// Package export reads and writes trajectory tables in the formats the
// playback tooling consumes: a delimited table and a nested record format.
// Both round-trip every cell to the same numeric value.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goliath-arm/goliath/pkg/animation"
)

// FrameColumn is the leading column of every delimited table.
const FrameColumn = "frame"

// Table is a parsed trajectory table: one row per frame, columns in file
// order. It is the shape the player consumes.
type Table struct {
	Columns []string    // joint column names, without the frame column
	Frames  []int       // frame index per row
	Rows    [][]float64 // cell values per row, aligned with Columns
}

// Value returns the cell for a row and column name, and whether the column
// exists.
func (t *Table) Value(row int, column string) (float64, bool) {
	for i, c := range t.Columns {
		if c == column {
			return t.Rows[row][i], true
		}
	}
	return 0, false
}

// WriteCSV writes the trajectory as a delimited table: header "frame" plus
// one column per joint in registry order, one row per frame. Values are
// formatted with the shortest representation that parses back exactly.
func WriteCSV(w io.Writer, tr *animation.Trajectory) error {
	cw := csv.NewWriter(w)

	joints := tr.Joints()
	header := make([]string, 0, len(joints)+1)
	header = append(header, FrameColumn)
	for _, name := range joints {
		header = append(header, string(name))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for frame := 0; frame < tr.Frames(); frame++ {
		record[0] = strconv.Itoa(frame)
		for i, name := range joints {
			record[i+1] = strconv.FormatFloat(tr.Value(frame, name), 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write frame %d: %w", frame, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the trajectory table to a file.
func WriteCSVFile(path string, tr *animation.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, tr); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses a delimited trajectory table. The first column must be the
// frame index; every other column is a joint channel.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || header[0] != FrameColumn {
		return nil, fmt.Errorf("unexpected header %v: first column must be %q", header, FrameColumn)
	}

	t := &Table{Columns: header[1:]}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Rows), err)
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad frame %q: %w", len(t.Rows), record[0], err)
		}
		row := make([]float64, len(record)-1)
		for i, cell := range record[1:] {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", frame, t.Columns[i], err)
			}
			row[i] = v
		}
		t.Frames = append(t.Frames, frame)
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadCSVFile parses a delimited trajectory table from a file.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
