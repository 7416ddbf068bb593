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

package milp

import (
	"errors"
	"fmt"
	"strings"
)

// ExportModelAsLpFormat outputs the model as a string in CPLEX LP format,
// mainly for debugging and for feeding external tooling.
func ExportModelAsLpFormat(m *Model) (string, error) {
	if m == nil || len(m.Variables) == 0 {
		return "", errors.New("cannot export an empty model as LP format")
	}

	var sb strings.Builder
	if m.HasObjective && m.Objective.Maximize {
		sb.WriteString("Maximize\n obj:")
	} else {
		sb.WriteString("Minimize\n obj:")
	}
	if m.HasObjective {
		writeTerms(&sb, m, m.Objective.Vars, m.Objective.Coeffs)
		if m.Objective.Offset != 0 {
			fmt.Fprintf(&sb, " %+d", m.Objective.Offset)
		}
	}
	sb.WriteString("\nSubject To\n")

	for i := range m.Constraints {
		c := &m.Constraints[i]
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("c%d", i)
		}
		switch {
		case c.Lb == c.Ub:
			fmt.Fprintf(&sb, " %s:", name)
			writeTerms(&sb, m, c.Vars, c.Coeffs)
			fmt.Fprintf(&sb, " = %d\n", c.Lb)
		default:
			if c.Lb > NoLower {
				fmt.Fprintf(&sb, " %s_lo:", name)
				writeTerms(&sb, m, c.Vars, c.Coeffs)
				fmt.Fprintf(&sb, " >= %d\n", c.Lb)
			}
			if c.Ub < NoUpper {
				fmt.Fprintf(&sb, " %s_hi:", name)
				writeTerms(&sb, m, c.Vars, c.Coeffs)
				fmt.Fprintf(&sb, " <= %d\n", c.Ub)
			}
		}
	}

	sb.WriteString("Bounds\n")
	var binaries, generals []string
	for i := range m.Variables {
		v := &m.Variables[i]
		name := varName(m, VarIndex(i))
		fmt.Fprintf(&sb, " %d <= %s <= %d\n", v.Lb, name, v.Ub)
		if !v.Integer {
			continue
		}
		if v.Lb >= 0 && v.Ub <= 1 {
			binaries = append(binaries, name)
		} else {
			generals = append(generals, name)
		}
	}
	if len(binaries) > 0 {
		sb.WriteString("Binaries\n " + strings.Join(binaries, " ") + "\n")
	}
	if len(generals) > 0 {
		sb.WriteString("Generals\n " + strings.Join(generals, " ") + "\n")
	}
	sb.WriteString("End\n")

	return sb.String(), nil
}

func writeTerms(sb *strings.Builder, m *Model, vars []VarIndex, coeffs []int64) {
	for i, v := range vars {
		fmt.Fprintf(sb, " %+d %s", coeffs[i], varName(m, v))
	}
}

func varName(m *Model, v VarIndex) string {
	if n := m.Variables[v].Name; n != "" {
		return n
	}
	return fmt.Sprintf("x%d", v)
}
