// Copyright 2025 The nonomilp Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package nonogram

import (
	log "github.com/golang/glog"

	"github.com/nonomilp/nonomilp/milp"
)

// Solution is the outcome of one solve. Grid is row-major, Grid[i][j] being
// the cell in row i, column j. It is all NoColor unless Status is Optimal;
// check Status before reading the grid.
type Solution struct {
	Status  milp.Status
	Grid    [][]Color
	Palette []Color
}

// Feasible reports whether Grid holds an actual coloring.
func (s *Solution) Feasible() bool { return s.Status == milp.Optimal }

// evidence threshold: a cell belongs to a color when that color's placement
// mass over the cell is 1, give or take solver tolerance.
const evidenceTol = 1e-6

// Solve encodes the puzzle, runs the backend, and decodes the assignment
// into a colored grid.
//
// An unsatisfiable puzzle is not an error: it yields a Solution with
// Status Infeasible and an all-NoColor grid. Errors are reserved for
// malformed models and backend failures, which are returned unchanged.
func Solve(p *Puzzle, sv milp.Solver) (*Solution, error) {
	q := ComputeQuantities(p)
	enc := encode(p, q)
	m, err := enc.b.Model()
	if err != nil {
		return nil, err
	}
	log.V(1).Infof("nonogram: encoded %dx%d puzzle as %d variables, %d constraints",
		p.width, p.height, len(m.Variables), len(m.Constraints))

	res, err := sv.Solve(m)
	if err != nil {
		return nil, err
	}

	sol := &Solution{
		Status:  res.Status,
		Grid:    blankGrid(p.width, p.height),
		Palette: p.Palette(),
	}
	if res.Status != milp.Optimal {
		return sol, nil
	}
	for i := 0; i < p.height; i++ {
		for j := 0; j < p.width; j++ {
			sol.Grid[i][j] = decodeCell(&q.Rows[i], enc.rows[i], res, p.palette, j)
		}
	}
	return sol, nil
}

// decodeCell returns the color whose row evidence over the cell is 1, or
// NoColor when no color claims it. Under a correct encoding at most one
// color can claim a cell; that is a tested property, not a runtime check.
func decodeCell(q *LineQuantities, lv lineVars, res *milp.Result, palette []Color, cell int) Color {
	for _, color := range palette {
		if cellEvidence(q, lv, res, color, cell) > 1-evidenceTol {
			return color
		}
	}
	return NoColor
}

// cellEvidence sums the solved placement-variable values of the line's
// blocks of the given color restricted to placements covering the cell.
func cellEvidence(q *LineQuantities, lv lineVars, res *milp.Result, color Color, cell int) float64 {
	acc := 0.0
	for _, t := range q.ColorGroups[color] {
		cov := q.Covers[t][cell]
		for pos := cov.Lo; pos <= cov.Hi; pos++ {
			acc += res.Value(lv.at(q, t, pos))
		}
	}
	return acc
}

func blankGrid(width, height int) [][]Color {
	grid := make([][]Color, height)
	for i := range grid {
		grid[i] = make([]Color, width)
	}
	return grid
}
