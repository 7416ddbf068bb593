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
	"fmt"

	"github.com/nonomilp/nonomilp/milp"
)

// lineVars holds the placement variables of one line: one variable per
// block per admissible start position. lineVars[t][p] is the variable for
// block t starting at StartRanges[t].Lo+p. Positions outside the start
// range get no variable at all.
type lineVars [][]milp.BoolVar

// at returns the variable placing block t at absolute position pos.
func (lv lineVars) at(q *LineQuantities, t, pos int) milp.BoolVar {
	return lv[t][pos-q.StartRanges[t].Lo]
}

// encoding ties the built model to the placement variables so the decoder
// can read them back.
type encoding struct {
	b    *milp.Builder
	rows []lineVars
	cols []lineVars
}

// encode emits the full model for the puzzle: placement variables, one
// begin-once equality per block, one ordering inequality per consecutive
// block pair, and one row/column consistency equality per cell and color.
// The model is a pure feasibility problem; it carries no objective.
func encode(p *Puzzle, q *Quantities) *encoding {
	enc := &encoding{b: milp.NewBuilder()}
	enc.rows = newLineVars(enc.b, RowLine, q.Rows, q.MaxRowBlocks)
	enc.cols = newLineVars(enc.b, ColumnLine, q.Cols, q.MaxColBlocks)

	encodeLines(enc.b, p, RowLine, q.Rows, enc.rows)
	encodeLines(enc.b, p, ColumnLine, q.Cols, enc.cols)

	// Row evidence must equal column evidence for every cell and color.
	// This is the only coupling between the two orientations, and it never
	// introduces a per-cell variable.
	for i := 0; i < p.height; i++ {
		for j := 0; j < p.width; j++ {
			for _, color := range p.palette {
				rowEv, rn := evidenceExpr(&q.Rows[i], enc.rows[i], color, j)
				colEv, cn := evidenceExpr(&q.Cols[j], enc.cols[j], color, i)
				if rn == 0 && cn == 0 {
					continue
				}
				enc.b.AddEquality(rowEv, colEv).WithName(fmt.Sprintf("cell_r%d_c%d_k%d", i, j, color))
			}
		}
	}
	return enc
}

// newLineVars creates the placement variables for every line of one
// orientation.
func newLineVars(b *milp.Builder, kind LineKind, lines []LineQuantities, maxBlocks int) []lineVars {
	prefix := "y"
	if kind == ColumnLine {
		prefix = "x"
	}
	out := make([]lineVars, len(lines))
	for li := range lines {
		lq := &lines[li]
		lv := make(lineVars, len(lq.StartRanges), maxBlocks)
		for t, r := range lq.StartRanges {
			vars := make([]milp.BoolVar, 0, r.Len())
			for pos := r.Lo; pos <= r.Hi; pos++ {
				vars = append(vars, b.NewBoolVar().WithName(fmt.Sprintf("%s_l%d_b%d_s%d", prefix, li, t, pos)))
			}
			lv[t] = vars
		}
		out[li] = lv
	}
	return out
}

// encodeLines emits the within-line constraints for one orientation.
func encodeLines(b *milp.Builder, p *Puzzle, kind LineKind, lines []LineQuantities, vars []lineVars) {
	clues, _ := p.lineClues(kind)
	for li := range lines {
		lq := &lines[li]
		blocks := clues[li]

		// Begin-once: each block occupies exactly one legal start. A block
		// with an empty start range contributes an equality over zero
		// variables, 0 == 1, which is how an unsatisfiable line surfaces.
		for t := range blocks {
			sum := milp.NewLinearExpr()
			for _, v := range vars[li][t] {
				sum.Add(v)
			}
			b.AddEquality(sum, milp.NewConstant(1)).
				WithName(fmt.Sprintf("once_%v%d_b%d", kind, li, t))
		}

		// Ordering and non-overlap: the chosen start of block t+1 must
		// leave room for block t plus its gap. The weighted sums evaluate
		// to the chosen starts because exactly one placement variable per
		// block is 1.
		for t := 0; t+1 < len(blocks); t++ {
			lhs := milp.NewConstant(int64(blocks[t].Length + lq.Penalties[t]))
			addWeightedStarts(lhs, lq, vars[li], t)
			rhs := milp.NewLinearExpr()
			addWeightedStarts(rhs, lq, vars[li], t+1)
			b.AddLessOrEqual(lhs, rhs).
				WithName(fmt.Sprintf("order_%v%d_b%d", kind, li, t))
		}
	}
}

// addWeightedStarts adds sum(pos * var[t,pos]) over block t's start range.
func addWeightedStarts(e *milp.LinearExpr, q *LineQuantities, lv lineVars, t int) {
	r := q.StartRanges[t]
	for pos := r.Lo; pos <= r.Hi; pos++ {
		e.AddTerm(lv.at(q, t, pos), int64(pos))
	}
}

// evidenceExpr sums the placement variables of the line's blocks of the
// given color whose placement covers the given cell, returning the
// expression and the number of terms added.
func evidenceExpr(q *LineQuantities, lv lineVars, color Color, cell int) (*milp.LinearExpr, int) {
	e := milp.NewLinearExpr()
	n := 0
	for _, t := range q.ColorGroups[color] {
		cov := q.Covers[t][cell]
		for pos := cov.Lo; pos <= cov.Hi; pos++ {
			e.Add(lv.at(q, t, pos))
			n++
		}
	}
	return e, n
}
