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

// The nonosolve binary reads a nonogram puzzle file, solves it, and prints
// the colored grid.
//
// Usage:
//
//	nonosolve [-backend=pbsat|highs] puzzle.non
//
// Cells print as '.' when uncolored, '#' for a single-color puzzle, and the
// palette position (1-9, then a-z) for multicolor puzzles. Exits 1 when the
// puzzle is infeasible or the solver gives no answer.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/golang/glog"

	"github.com/nonomilp/nonomilp/milp"
	highsbe "github.com/nonomilp/nonomilp/milp/highs"
	"github.com/nonomilp/nonomilp/milp/pbsat"
	"github.com/nonomilp/nonomilp/nonofile"
	"github.com/nonomilp/nonomilp/nonogram"
)

var backend = flag.String("backend", "pbsat", "MILP backend to solve with: pbsat or highs")

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] PUZZLE_FILE\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	var sv milp.Solver
	switch *backend {
	case "pbsat":
		sv = pbsat.Solver{Verbose: bool(log.V(2))}
	case "highs":
		sv = highsbe.Solver{}
	default:
		log.Exitf("unknown backend %q, want pbsat or highs", *backend)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Exitf("open puzzle: %v", err)
	}
	puzzle, err := nonofile.Read(f)
	f.Close()
	if err != nil {
		log.Exitf("read puzzle %s: %v", flag.Arg(0), err)
	}
	log.V(1).Infof("read %dx%d puzzle with %d colors", puzzle.Width(), puzzle.Height(), len(puzzle.Palette()))

	sol, err := nonogram.Solve(puzzle, sv)
	if err != nil {
		log.Exitf("solve: %v", err)
	}
	switch sol.Status {
	case milp.Optimal:
		fmt.Print(render(sol))
	case milp.Infeasible:
		fmt.Println("infeasible: no coloring satisfies both row and column clues")
		os.Exit(1)
	default:
		fmt.Println("solver terminated without an answer")
		os.Exit(1)
	}
}

const glyphs = "123456789abcdefghijklmnopqrstuvwxyz"

func render(sol *nonogram.Solution) string {
	glyphOf := make(map[nonogram.Color]byte, len(sol.Palette))
	for i, c := range sol.Palette {
		switch {
		case len(sol.Palette) == 1:
			glyphOf[c] = '#'
		case i < len(glyphs):
			glyphOf[c] = glyphs[i]
		default:
			glyphOf[c] = '?'
		}
	}

	var sb strings.Builder
	for _, row := range sol.Grid {
		for _, c := range row {
			if c == nonogram.NoColor {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(glyphOf[c])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
