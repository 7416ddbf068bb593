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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewPuzzle_Valid(t *testing.T) {
	p, err := NewPuzzle(3, 2,
		[]Color{1, 2},
		[][]Block{{{Length: 1, Color: 1}, {Length: 1, Color: 2}}, nil},
		[][]Block{{{Length: 1, Color: 1}}, nil, {{Length: 1, Color: 2}}},
	)
	if err != nil {
		t.Fatalf("NewPuzzle() returned with unexpected error %v", err)
	}
	if p.Width() != 3 || p.Height() != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", p.Width(), p.Height())
	}
	if diff := cmp.Diff([]Color{1, 2}, p.Palette()); diff != "" {
		t.Errorf("Palette() mismatch (-want +got):\n%s", diff)
	}
	if got := p.RowClue(1); len(got) != 0 {
		t.Errorf("RowClue(1) = %v, want empty", got)
	}
}

func TestNewPuzzle_Immutable(t *testing.T) {
	rowClues := [][]Block{{{Length: 2, Color: 1}}}
	p, err := NewPuzzle(2, 1, []Color{1}, rowClues, [][]Block{{{Length: 1, Color: 1}}, {{Length: 1, Color: 1}}})
	if err != nil {
		t.Fatalf("NewPuzzle() returned with unexpected error %v", err)
	}

	rowClues[0][0].Length = 99
	if got := p.RowClue(0)[0].Length; got != 2 {
		t.Errorf("RowClue(0)[0].Length = %v after caller mutation, want 2", got)
	}
	p.RowClue(0)[0].Length = 98
	if got := p.RowClue(0)[0].Length; got != 2 {
		t.Errorf("RowClue(0)[0].Length = %v after accessor mutation, want 2", got)
	}
}

func TestNewPuzzle_Invalid(t *testing.T) {
	valid := [][]Block{{{Length: 1, Color: 1}}}
	testCases := []struct {
		name     string
		width    int
		height   int
		palette  []Color
		rowClues [][]Block
		colClues [][]Block
		wantVal  *ValidationError
	}{
		{
			name:  "ZeroWidth",
			width: 0, height: 1, palette: []Color{1},
			rowClues: valid, colClues: nil,
		},
		{
			name:  "RowClueCountMismatch",
			width: 1, height: 2, palette: []Color{1},
			rowClues: valid, colClues: valid,
		},
		{
			name:  "PaletteHoldsNoColor",
			width: 1, height: 1, palette: []Color{NoColor},
			rowClues: [][]Block{nil}, colClues: [][]Block{nil},
		},
		{
			name:  "PaletteDuplicate",
			width: 1, height: 1, palette: []Color{1, 1},
			rowClues: [][]Block{nil}, colClues: [][]Block{nil},
		},
		{
			name:  "NonPositiveLength",
			width: 1, height: 1, palette: []Color{1},
			rowClues: [][]Block{{{Length: 0, Color: 1}}},
			colClues: valid,
			wantVal:  &ValidationError{Kind: RowLine, Line: 0, Block: 0},
		},
		{
			name:  "ColorOutsidePalette",
			width: 2, height: 1, palette: []Color{1},
			rowClues: [][]Block{nil},
			colClues: [][]Block{nil, {{Length: 1, Color: 7}}},
			wantVal:  &ValidationError{Kind: ColumnLine, Line: 1, Block: 0},
		},
		{
			name:  "SentinelAsBlockColor",
			width: 1, height: 1, palette: []Color{1},
			rowClues: [][]Block{{{Length: 1, Color: NoColor}}},
			colClues: valid,
			wantVal:  &ValidationError{Kind: RowLine, Line: 0, Block: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPuzzle(tc.width, tc.height, tc.palette, tc.rowClues, tc.colClues)
			if err == nil {
				t.Fatal("NewPuzzle() = nil error, want error")
			}
			if tc.wantVal == nil {
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("NewPuzzle() error = %v, want *ValidationError", err)
			}
			if vErr.Kind != tc.wantVal.Kind || vErr.Line != tc.wantVal.Line || vErr.Block != tc.wantVal.Block {
				t.Errorf("ValidationError = %v/%d/%d, want %v/%d/%d",
					vErr.Kind, vErr.Line, vErr.Block, tc.wantVal.Kind, tc.wantVal.Line, tc.wantVal.Block)
			}
		})
	}
}

func TestNewPuzzle_OversizedBlockIsNotMalformed(t *testing.T) {
	// A block longer than its line is infeasible, not invalid input.
	_, err := NewPuzzle(3, 1, []Color{1},
		[][]Block{{{Length: 5, Color: 1}}},
		[][]Block{nil, nil, nil},
	)
	if err != nil {
		t.Errorf("NewPuzzle() returned with unexpected error %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Kind: ColumnLine, Line: 4, Block: 2, Reason: "color 9 is not in the palette"}
	want := "column 4, block 2: color 9 is not in the palette"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
