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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nonomilp/nonomilp/milp"
	"github.com/nonomilp/nonomilp/milp/pbsat"
)

// mono turns a clue of plain lengths into color-1 blocks.
func mono(lengths ...int) []Block {
	blocks := make([]Block, len(lengths))
	for i, l := range lengths {
		blocks[i] = Block{Length: l, Color: 1}
	}
	return blocks
}

func monoGrid(cells [][]int) [][]Color {
	grid := make([][]Color, len(cells))
	for i, row := range cells {
		grid[i] = make([]Color, len(row))
		for j, v := range row {
			grid[i][j] = Color(v)
		}
	}
	return grid
}

func TestSolve_Known5x5(t *testing.T) {
	p := mustPuzzle(t, 5, 5,
		[]Color{1},
		[][]Block{mono(1, 1), mono(1, 1), nil, mono(1, 2), mono(3)},
		[][]Block{mono(1), mono(2, 1), mono(1), mono(2, 2), mono(1)},
	)

	sol, err := Solve(p, pbsat.Solver{})
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := sol.Status, milp.Optimal; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}
	want := monoGrid([][]int{
		{0, 1, 0, 1, 0},
		{0, 1, 0, 1, 0},
		{0, 0, 0, 0, 0},
		{1, 0, 0, 1, 1},
		{0, 1, 1, 1, 0},
	})
	if diff := cmp.Diff(want, sol.Grid); diff != "" {
		t.Errorf("Solve() grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_9x9NotLineSolvable(t *testing.T) {
	// No single-line deduction makes progress on this puzzle; only the
	// coupled model finds its unique solution.
	p := mustPuzzle(t, 9, 9,
		[]Color{1},
		[][]Block{mono(3), mono(1), mono(3, 1), mono(1), mono(3, 1), mono(1), mono(3, 1), mono(1), mono(1)},
		[][]Block{mono(1), mono(1), mono(1, 3), mono(1), mono(1, 3), mono(1), mono(1, 3), mono(1), mono(3)},
	)

	sol, err := Solve(p, pbsat.Solver{})
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := sol.Status, milp.Optimal; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}
	checkGridMatchesClues(t, p, sol.Grid)
}

func TestSolve_Multicolor(t *testing.T) {
	// Same-color blocks need a gap, different-color blocks sit flush; both
	// rows have zero slack so the solution is forced.
	p := mustPuzzle(t, 3, 2,
		[]Color{1, 2},
		[][]Block{
			{{1, 2}, {1, 2}},
			{{2, 1}, {1, 2}},
		},
		[][]Block{
			{{1, 2}, {1, 1}},
			{{1, 1}},
			{{2, 2}},
		},
	)

	sol, err := Solve(p, pbsat.Solver{})
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := sol.Status, milp.Optimal; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}
	want := monoGrid([][]int{
		{2, 0, 2},
		{1, 1, 2},
	})
	if diff := cmp.Diff(want, sol.Grid); diff != "" {
		t.Errorf("Solve() grid mismatch (-want +got):\n%s", diff)
	}
}

func TestSolve_InfeasibleByCounting(t *testing.T) {
	// Rows color two cells in total, columns ask for three: no special
	// case detects this, the solver proves it.
	p := mustPuzzle(t, 2, 2,
		[]Color{1},
		[][]Block{mono(1), mono(1)},
		[][]Block{mono(2), mono(1)},
	)

	sol, err := Solve(p, pbsat.Solver{})
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := sol.Status, milp.Infeasible; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}
	if sol.Feasible() {
		t.Error("Feasible() = true, want false")
	}
	assertAllSentinel(t, sol.Grid)
}

func TestSolve_InfeasibleOversizedBlock(t *testing.T) {
	// A 5-cell block in a 3-wide grid leaves its start range empty; the
	// begin-once constraint over zero variables carries the contradiction.
	p := mustPuzzle(t, 3, 1,
		[]Color{1},
		[][]Block{mono(5)},
		[][]Block{nil, nil, nil},
	)

	sol, err := Solve(p, pbsat.Solver{})
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := sol.Status, milp.Infeasible; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}
	assertAllSentinel(t, sol.Grid)
}

func TestSolve_EmptyPuzzle(t *testing.T) {
	// All-empty clues are the one legitimate all-sentinel coloring; the
	// status field tells it apart from infeasibility.
	p := mustPuzzle(t, 2, 2, nil, [][]Block{nil, nil}, [][]Block{nil, nil})

	sol, err := Solve(p, pbsat.Solver{})
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := sol.Status, milp.Optimal; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}
	if !sol.Feasible() {
		t.Error("Feasible() = false, want true")
	}
	assertAllSentinel(t, sol.Grid)
}

func TestSolve_EvidenceConsistency(t *testing.T) {
	// For every solved cell, exactly one color's evidence is 1 (or none,
	// when the cell is uncolored); two colors never claim the same cell.
	p := mustPuzzle(t, 5, 5,
		[]Color{1, 2},
		[][]Block{{{1, 1}, {1, 2}}, {{2, 2}}, nil, {{1, 2}, {2, 1}}, {{3, 1}}},
		colCluesFor(t, 5),
	)

	q := ComputeQuantities(p)
	enc := encode(p, q)
	m, err := enc.b.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	res, err := pbsat.Solver{}.Solve(m)
	if err != nil {
		t.Fatalf("Solve() returned with unexpected error %v", err)
	}
	if got, want := res.Status, milp.Optimal; got != want {
		t.Fatalf("Solve() status = %v, want %v", got, want)
	}

	for i := 0; i < p.Height(); i++ {
		for j := 0; j < p.Width(); j++ {
			claims := 0
			for _, color := range p.Palette() {
				ev := cellEvidence(&q.Rows[i], enc.rows[i], res, color, j)
				switch {
				case ev > 1-evidenceTol && ev < 1+evidenceTol:
					claims++
				case ev > evidenceTol:
					t.Errorf("cell (%d,%d) color %d: evidence = %v, want 0 or 1", i, j, color, ev)
				}
			}
			if claims > 1 {
				t.Errorf("cell (%d,%d): %d colors claim it, want at most 1", i, j, claims)
			}
		}
	}
}

// colCluesFor derives column clues consistent with the row clues used in
// TestSolve_EvidenceConsistency from its intended grid:
//
//	1 2 . . .
//	2 2 . . .
//	. . . . .
//	2 . 1 1 .
//	1 1 1 . .
func colCluesFor(t *testing.T, width int) [][]Block {
	t.Helper()
	grid := [][]Color{
		{1, 2, 0, 0, 0},
		{2, 2, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{2, 0, 1, 1, 0},
		{1, 1, 1, 0, 0},
	}
	clues := make([][]Block, width)
	for j := 0; j < width; j++ {
		col := make([]Color, len(grid))
		for i := range grid {
			col[i] = grid[i][j]
		}
		clues[j] = blocksOf(col)
	}
	return clues
}

// blocksOf derives the clue implied by a fully colored line: one block per
// maximal same-colored run.
func blocksOf(line []Color) []Block {
	var blocks []Block
	for i := 0; i < len(line); {
		if line[i] == NoColor {
			i++
			continue
		}
		j := i
		for j < len(line) && line[j] == line[i] {
			j++
		}
		blocks = append(blocks, Block{Length: j - i, Color: line[i]})
		i = j
	}
	return blocks
}

// assertAllSentinel fails the test for every cell that is not NoColor.
func assertAllSentinel(t *testing.T, grid [][]Color) {
	t.Helper()
	for i, row := range grid {
		for j, c := range row {
			if c != NoColor {
				t.Errorf("cell (%d,%d) = %v, want NoColor", i, j, c)
			}
		}
	}
}

func checkGridMatchesClues(t *testing.T, p *Puzzle, grid [][]Color) {
	t.Helper()
	for i := 0; i < p.Height(); i++ {
		if diff := cmp.Diff(p.RowClue(i), blocksOf(grid[i])); diff != "" {
			t.Errorf("row %d does not match its clue (-want +got):\n%s", i, diff)
		}
	}
	for j := 0; j < p.Width(); j++ {
		col := make([]Color, p.Height())
		for i := range col {
			col[i] = grid[i][j]
		}
		if diff := cmp.Diff(p.ColumnClue(j), blocksOf(col)); diff != "" {
			t.Errorf("column %d does not match its clue (-want +got):\n%s", j, diff)
		}
	}
}
