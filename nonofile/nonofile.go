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

// Package nonofile reads and writes nonogram puzzles in a line-oriented
// text format:
//
//	# comment
//	5 5
//	rows
//	1 1
//	-
//	3:2 1
//	...
//	columns
//	...
//
// The first non-comment line gives width and height. A "rows" section with
// one clue line per row follows, then a "columns" section with one clue
// line per column. A clue line is a space-separated list of blocks, each
// LENGTH or LENGTH:COLOR (plain lengths get color 1); a lone "-" denotes an
// empty line. The palette is the set of colors used, in ascending order.
package nonofile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nonomilp/nonomilp/nonogram"
)

// Read parses a puzzle from r.
func Read(r io.Reader) (*nonogram.Puzzle, error) {
	sc := &scanner{s: bufio.NewScanner(r)}

	header, err := sc.nextLine()
	if err != nil {
		return nil, err
	}
	dims := strings.Fields(header)
	if len(dims) != 2 {
		return nil, sc.errorf("want header %q, got %q", "WIDTH HEIGHT", header)
	}
	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return nil, sc.errorf("bad width %q", dims[0])
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return nil, sc.errorf("bad height %q", dims[1])
	}
	if width < 1 || height < 1 {
		return nil, sc.errorf("dimensions must be positive, got %dx%d", width, height)
	}

	rowClues, err := sc.readSection("rows", height)
	if err != nil {
		return nil, err
	}
	colClues, err := sc.readSection("columns", width)
	if err != nil {
		return nil, err
	}
	if line, err := sc.nextLine(); err == nil {
		return nil, sc.errorf("trailing content %q", line)
	}

	return nonogram.NewPuzzle(width, height, collectPalette(rowClues, colClues), rowClues, colClues)
}

// Parse parses a puzzle from data.
func Parse(data []byte) (*nonogram.Puzzle, error) {
	return Read(bytes.NewReader(data))
}

// Write emits p in the format Read accepts.
func Write(w io.Writer, p *nonogram.Puzzle) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", p.Width(), p.Height())
	bw.WriteString("rows\n")
	for i := 0; i < p.Height(); i++ {
		bw.WriteString(formatClue(p.RowClue(i)) + "\n")
	}
	bw.WriteString("columns\n")
	for j := 0; j < p.Width(); j++ {
		bw.WriteString(formatClue(p.ColumnClue(j)) + "\n")
	}
	return bw.Flush()
}

func formatClue(blocks []nonogram.Block) string {
	if len(blocks) == 0 {
		return "-"
	}
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		if b.Color == 1 {
			parts[i] = strconv.Itoa(b.Length)
		} else {
			parts[i] = fmt.Sprintf("%d:%d", b.Length, b.Color)
		}
	}
	return strings.Join(parts, " ")
}

// scanner yields content lines, skipping blanks and # comments, and tracks
// the physical line number for error messages.
type scanner struct {
	s    *bufio.Scanner
	line int
}

func (sc *scanner) nextLine() (string, error) {
	for sc.s.Scan() {
		sc.line++
		text := sc.s.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
	}
	if err := sc.s.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}

func (sc *scanner) errorf(format string, a ...any) error {
	return fmt.Errorf("line %d: %s", sc.line, fmt.Sprintf(format, a...))
}

func (sc *scanner) readSection(keyword string, count int) ([][]nonogram.Block, error) {
	head, err := sc.nextLine()
	if err != nil {
		return nil, fmt.Errorf("missing %q section: %w", keyword, err)
	}
	if head != keyword {
		return nil, sc.errorf("want %q, got %q", keyword, head)
	}
	clues := make([][]nonogram.Block, count)
	for i := range clues {
		text, err := sc.nextLine()
		if err != nil {
			return nil, fmt.Errorf("%s clue %d: %w", keyword, i, err)
		}
		clue, err := parseClue(text)
		if err != nil {
			return nil, sc.errorf("%s clue %d: %v", keyword, i, err)
		}
		clues[i] = clue
	}
	return clues, nil
}

func parseClue(text string) ([]nonogram.Block, error) {
	if text == "-" {
		return nil, nil
	}
	fields := strings.Fields(text)
	blocks := make([]nonogram.Block, len(fields))
	for i, f := range fields {
		lenStr, colorStr, hasColor := strings.Cut(f, ":")
		length, err := strconv.Atoi(lenStr)
		if err != nil {
			return nil, fmt.Errorf("bad block %q", f)
		}
		color := 1
		if hasColor {
			color, err = strconv.Atoi(colorStr)
			if err != nil {
				return nil, fmt.Errorf("bad block color %q", f)
			}
		}
		blocks[i] = nonogram.Block{Length: length, Color: nonogram.Color(color)}
	}
	return blocks, nil
}

func collectPalette(clueSets ...[][]nonogram.Block) []nonogram.Color {
	seen := make(map[nonogram.Color]bool)
	for _, clues := range clueSets {
		for _, blocks := range clues {
			for _, b := range blocks {
				seen[b.Color] = true
			}
		}
	}
	palette := make([]nonogram.Color, 0, len(seen))
	for c := range seen {
		palette = append(palette, c)
	}
	sort.Slice(palette, func(i, j int) bool { return palette[i] < palette[j] })
	return palette
}
