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

// Package nonogram models paint-by-number puzzles and solves them by
// encoding block placements as a 0/1 integer program.
//
// A puzzle is a grid together with one clue per row and per column: an
// ordered sequence of blocks, each a run length and a color. Consecutive
// blocks of the same color must be separated by at least one empty cell;
// blocks of different colors may touch. Building the model never reasons
// about individual cells: each block gets one binary variable per legal
// start position, and three families of linear constraints (begin-once,
// ordering, row/column consistency) characterize the valid colorings.
package nonogram

import "fmt"

// Color identifies one palette entry. NoColor is the reserved value for an
// uncolored cell and never appears in a palette or a clue.
type Color int32

// NoColor marks an uncolored cell.
const NoColor Color = 0

// Block is one clue entry: a run of Length same-colored cells.
type Block struct {
	Length int
	Color  Color
}

// LineKind tells rows and columns apart in errors and quantities.
type LineKind int

const (
	// RowLine indexes lines left to right, top to bottom.
	RowLine LineKind = iota
	// ColumnLine indexes lines top to bottom, left to right.
	ColumnLine
)

// String returns "row" or "column".
func (k LineKind) String() string {
	if k == ColumnLine {
		return "column"
	}
	return "row"
}

// ValidationError reports malformed clue input. Block is -1 when the
// problem is not specific to one block.
type ValidationError struct {
	Kind   LineKind
	Line   int
	Block  int
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Block < 0 {
		return fmt.Sprintf("%v %d: %s", e.Kind, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v %d, block %d: %s", e.Kind, e.Line, e.Block, e.Reason)
}

// Puzzle is an immutable puzzle instance: dimensions, palette and clues.
// Construct one with NewPuzzle; the zero value is not usable.
type Puzzle struct {
	width, height int
	palette       []Color
	rowClues      [][]Block
	colClues      [][]Block
}

// NewPuzzle validates and copies the clue data. The palette is the ordered
// set of colors clues may use; it must not contain NoColor or duplicates.
// An empty clue (nil or empty slice) is the only way to denote an entirely
// uncolored line. Blocks that cannot fit their line are not rejected here:
// that is infeasibility, not malformed input, and surfaces when solving.
func NewPuzzle(width, height int, palette []Color, rowClues, colClues [][]Block) (*Puzzle, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("puzzle dimensions must be positive, got %dx%d", width, height)
	}
	if len(rowClues) != height {
		return nil, fmt.Errorf("got %d row clues for height %d", len(rowClues), height)
	}
	if len(colClues) != width {
		return nil, fmt.Errorf("got %d column clues for width %d", len(colClues), width)
	}

	inPalette := make(map[Color]bool, len(palette))
	for i, c := range palette {
		if c == NoColor {
			return nil, fmt.Errorf("palette entry %d is the reserved no-color value", i)
		}
		if inPalette[c] {
			return nil, fmt.Errorf("palette entry %d duplicates color %d", i, c)
		}
		inPalette[c] = true
	}

	p := &Puzzle{
		width:    width,
		height:   height,
		palette:  append([]Color(nil), palette...),
		rowClues: copyClues(rowClues),
		colClues: copyClues(colClues),
	}
	if err := validateClues(RowLine, p.rowClues, inPalette); err != nil {
		return nil, err
	}
	if err := validateClues(ColumnLine, p.colClues, inPalette); err != nil {
		return nil, err
	}
	return p, nil
}

func validateClues(kind LineKind, clues [][]Block, inPalette map[Color]bool) error {
	for line, blocks := range clues {
		for t, b := range blocks {
			if b.Length < 1 {
				return &ValidationError{Kind: kind, Line: line, Block: t,
					Reason: fmt.Sprintf("block length %d is not positive", b.Length)}
			}
			if !inPalette[b.Color] {
				return &ValidationError{Kind: kind, Line: line, Block: t,
					Reason: fmt.Sprintf("color %d is not in the palette", b.Color)}
			}
		}
	}
	return nil
}

func copyClues(clues [][]Block) [][]Block {
	out := make([][]Block, len(clues))
	for i, blocks := range clues {
		out[i] = append([]Block(nil), blocks...)
	}
	return out
}

// Width returns the number of columns.
func (p *Puzzle) Width() int { return p.width }

// Height returns the number of rows.
func (p *Puzzle) Height() int { return p.height }

// Palette returns a copy of the puzzle's palette.
func (p *Puzzle) Palette() []Color {
	return append([]Color(nil), p.palette...)
}

// RowClue returns a copy of the clue for row i.
func (p *Puzzle) RowClue(i int) []Block {
	return append([]Block(nil), p.rowClues[i]...)
}

// ColumnClue returns a copy of the clue for column j.
func (p *Puzzle) ColumnClue(j int) []Block {
	return append([]Block(nil), p.colClues[j]...)
}

// lineClues returns the clue set and line length for one orientation.
func (p *Puzzle) lineClues(kind LineKind) ([][]Block, int) {
	if kind == ColumnLine {
		return p.colClues, p.height
	}
	return p.rowClues, p.width
}
