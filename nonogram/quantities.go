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

// Interval is an inclusive range of cell indices. Hi < Lo means empty.
type Interval struct {
	Lo, Hi int
}

// Empty reports whether the interval contains no index.
func (iv Interval) Empty() bool { return iv.Hi < iv.Lo }

// Len returns the number of indices in the interval.
func (iv Interval) Len() int {
	if iv.Empty() {
		return 0
	}
	return iv.Hi - iv.Lo + 1
}

func (iv Interval) intersect(o Interval) Interval {
	if o.Lo > iv.Lo {
		iv.Lo = o.Lo
	}
	if o.Hi < iv.Hi {
		iv.Hi = o.Hi
	}
	return iv
}

// LineQuantities holds the per-line index sets the encoder consumes. All
// positions are 0-based offsets into the line.
type LineQuantities struct {
	// Penalties[t] is 1 iff block t and block t+1 share a color and thus
	// need a one-cell gap. The final entry is always 0.
	Penalties []int
	// StartRanges[t] is the inclusive range of legal start positions for
	// block t. It is empty when the line's blocks cannot fit, which makes
	// the encoded begin-once constraint infeasible; no special casing.
	StartRanges []Interval
	// Covers[t][j] is the subset of StartRanges[t] whose placements put
	// block t over cell j. It is always an interval: the intersection of
	// StartRanges[t] with [j-len+1, j].
	Covers [][]Interval
	// ColorGroups maps each color to the indices of the line's blocks
	// having that color, in block order.
	ColorGroups map[Color][]int
}

// Quantities is everything derived from a puzzle that the encoder and
// decoder need. Recompute it whenever the puzzle changes; computing it twice
// for the same puzzle yields identical values.
type Quantities struct {
	Rows, Cols []LineQuantities
	// MaxRowBlocks and MaxColBlocks bound the block count of any single
	// line, for sizing per-line arrays uniformly.
	MaxRowBlocks, MaxColBlocks int
}

// ComputeQuantities derives the per-line quantities for the puzzle. It is a
// pure function of the puzzle; every line is independent of every other.
func ComputeQuantities(p *Puzzle) *Quantities {
	q := &Quantities{
		Rows: make([]LineQuantities, p.height),
		Cols: make([]LineQuantities, p.width),
	}
	for i, blocks := range p.rowClues {
		q.Rows[i] = computeLine(p.width, blocks)
		if len(blocks) > q.MaxRowBlocks {
			q.MaxRowBlocks = len(blocks)
		}
	}
	for j, blocks := range p.colClues {
		q.Cols[j] = computeLine(p.height, blocks)
		if len(blocks) > q.MaxColBlocks {
			q.MaxColBlocks = len(blocks)
		}
	}
	return q
}

// computeLine derives the quantities for a single line of the given length.
//
// Start ranges come from one left-to-right sweep: the first block may start
// anywhere in [0, slack] where slack is the line length minus all block
// lengths and mandatory gaps; each later block's window is the previous one
// shifted by that block's length plus its gap. Every block's range has the
// same width (the slack), and the ranges are empty exactly when the blocks
// cannot fit.
func computeLine(length int, blocks []Block) LineQuantities {
	k := len(blocks)
	q := LineQuantities{
		Penalties:   make([]int, k),
		StartRanges: make([]Interval, k),
		Covers:      make([][]Interval, k),
		ColorGroups: make(map[Color][]int),
	}

	used := 0
	for t, b := range blocks {
		used += b.Length
		if t+1 < k && blocks[t+1].Color == b.Color {
			q.Penalties[t] = 1
			used++
		}
		q.ColorGroups[b.Color] = append(q.ColorGroups[b.Color], t)
	}

	lo, hi := 0, length-used
	for t, b := range blocks {
		q.StartRanges[t] = Interval{Lo: lo, Hi: hi}
		covers := make([]Interval, length)
		for j := 0; j < length; j++ {
			covers[j] = q.StartRanges[t].intersect(Interval{Lo: j - b.Length + 1, Hi: j})
		}
		q.Covers[t] = covers
		step := b.Length + q.Penalties[t]
		lo += step
		hi += step
	}
	return q
}
