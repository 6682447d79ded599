// Package export flattens one neighborhood subgraph into its edge-table /
// vertex-table file pair. The tables are plain numeric text, one row per
// line, space separated, no header, so downstream numeric tooling can load
// them directly.
package export

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/maax3v3/cellgraph/internal/subgraph"
)

// EdgePath returns the edge-table filename for run runID, center number seq.
func EdgePath(dir, runID string, seq int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%03d_ed.csv", runID, seq))
}

// VertexPath returns the vertex-table filename for run runID, center seq.
func VertexPath(dir, runID string, seq int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%03d_ve.csv", runID, seq))
}

// WritePair writes the subgraph's edge and vertex tables, overwriting any
// existing files. The edge table holds one row per directed orientation of
// each undirected edge (both (i,j) and (j,i)), row-major order, columns
// (row, col, angle, dist, weight). The vertex table holds one (x, y)
// centroid row per vertex in positional order. Any write error is fatal
// for this pair; no partial-write recovery is attempted.
func WritePair(dir, runID string, seq int, sg *subgraph.Subgraph) error {
	if err := writeTable(EdgePath(dir, runID, seq), edgeRows(sg)); err != nil {
		return fmt.Errorf("writing edge table: %w", err)
	}
	if err := writeTable(VertexPath(dir, runID, seq), vertexRows(sg)); err != nil {
		return fmt.Errorf("writing vertex table: %w", err)
	}
	return nil
}

// edgeRows expands the undirected edges into both orientations in
// row-major order, the layout of a symmetric sparse matrix in
// coordinate form.
func edgeRows(sg *subgraph.Subgraph) [][]float64 {
	byRow := make(map[int][]subgraph.Edge, sg.Len())
	for _, e := range sg.Edges() {
		byRow[e.Row] = append(byRow[e.Row], e)
		byRow[e.Col] = append(byRow[e.Col], subgraph.Edge{
			Row: e.Col, Col: e.Row, Angle: e.Angle, Dist: e.Dist, Weight: e.Weight,
		})
	}

	rows := make([][]float64, 0, 2*sg.EdgeCount())
	for i := 0; i < sg.Len(); i++ {
		es := byRow[i]
		sort.Slice(es, func(a, b int) bool { return es[a].Col < es[b].Col })
		for _, e := range es {
			rows = append(rows, []float64{
				float64(e.Row), float64(e.Col), e.Angle, e.Dist, e.Weight,
			})
		}
	}
	return rows
}

func vertexRows(sg *subgraph.Subgraph) [][]float64 {
	rows := make([][]float64, 0, sg.Len())
	for _, v := range sg.Vertices() {
		rows = append(rows, []float64{v.X, v.Y})
	}
	return rows
}

func writeTable(path string, rows [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	for _, row := range rows {
		for i, v := range row {
			if i > 0 {
				if err := w.WriteByte(' '); err != nil {
					f.Close()
					return fmt.Errorf("writing %s: %w", path, err)
				}
			}
			if _, err := w.WriteString(strconv.FormatFloat(v, 'e', 18, 64)); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", path, err)
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}

// ReadPair loads a previously written file pair back into edge rows (both
// orientations, as written) and vertex centroids. Used for verification.
func ReadPair(edPath, vePath string) ([]subgraph.Edge, []r2.Vec, error) {
	edgeVals, err := readTable(edPath, 5)
	if err != nil {
		return nil, nil, fmt.Errorf("reading edge table: %w", err)
	}
	vertexVals, err := readTable(vePath, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("reading vertex table: %w", err)
	}

	edges := make([]subgraph.Edge, len(edgeVals))
	for i, row := range edgeVals {
		edges[i] = subgraph.Edge{
			Row:    int(row[0]),
			Col:    int(row[1]),
			Angle:  row[2],
			Dist:   row[3],
			Weight: row[4],
		}
	}
	vertices := make([]r2.Vec, len(vertexVals))
	for i, row := range vertexVals {
		vertices[i] = r2.Vec{X: row[0], Y: row[1]}
	}
	return edges, vertices, nil
}

func readTable(path string, columns int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != columns {
			return nil, fmt.Errorf("%s line %d: want %d columns, got %d", path, line, columns, len(fields))
		}
		row := make([]float64, columns)
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, line, err)
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
