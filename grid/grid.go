// Package grid defines the regular raster shared by every field in the
// model. Cells are indexed row-major from the top-left; all per-cell slices
// carry exactly Ncells values.
package grid

import "github.com/maseology/cnrr/scenario"

// Definition describes a uniform rectangular grid.
type Definition struct {
	Nrow, Ncol int
	Cwidth     float64 // cell width [m]
}

// NewDefinition builds and checks a grid definition.
func NewDefinition(nrow, ncol int, cwidth float64) (*Definition, error) {
	if nrow <= 0 || ncol <= 0 {
		return nil, scenario.Configf("grid", "dimensions must be positive, got %d x %d", nrow, ncol)
	}
	if cwidth <= 0. {
		return nil, scenario.Configf("grid", "cell width must be positive, got %g", cwidth)
	}
	return &Definition{Nrow: nrow, Ncol: ncol, Cwidth: cwidth}, nil
}

// Ncells returns the cell count.
func (gd *Definition) Ncells() int { return gd.Nrow * gd.Ncol }

// CellArea returns the plan area of one cell [m²].
func (gd *Definition) CellArea() float64 { return gd.Cwidth * gd.Cwidth }

// CellID returns the cell id at (row, col), or -1 when out of range.
func (gd *Definition) CellID(row, col int) int {
	if row < 0 || row >= gd.Nrow || col < 0 || col >= gd.Ncol {
		return -1
	}
	return row*gd.Ncol + col
}

// RowCol returns the (row, col) position of a cell id.
func (gd *Definition) RowCol(cid int) (int, int) {
	return cid / gd.Ncol, cid % gd.Ncol
}

// Buffer returns the ids of the (up to 8) neighbours of cid, row by row,
// skipping positions beyond the grid edge.
func (gd *Definition) Buffer(cid int) []int {
	r, c := gd.RowCol(cid)
	b := make([]int, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if n := gd.CellID(r+dr, c+dc); n >= 0 {
				b = append(b, n)
			}
		}
	}
	return b
}

// Sameshape reports whether a per-cell slice matches this definition.
func (gd *Definition) Sameshape(f []float64) bool { return len(f) == gd.Ncells() }
