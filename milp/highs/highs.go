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

// Package highs solves models with the HiGHS mixed-integer solver through
// its cgo bindings. The HiGHS shared library must be installed; use the
// milp/pbsat backend for a dependency-free build when every variable is 0/1.
package highs

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	hs "github.com/lanl/highs"

	"github.com/nonomilp/nonomilp/milp"
)

// Solver is a milp.Solver backed by HiGHS.
type Solver struct{}

// Solve loads the model into a HiGHS model and runs it.
func (Solver) Solve(m *milp.Model) (*milp.Result, error) {
	lp := new(hs.Model)

	n := len(m.Variables)
	lp.VarTypes = make([]hs.VariableType, n)
	lp.ColLower = make([]float64, n)
	lp.ColUpper = make([]float64, n)
	lp.ColCosts = make([]float64, n)
	for i := range m.Variables {
		v := &m.Variables[i]
		if v.Integer {
			lp.VarTypes[i] = hs.IntegerType
		} else {
			lp.VarTypes[i] = hs.ContinuousType
		}
		lp.ColLower[i] = lower(v.Lb)
		lp.ColUpper[i] = upper(v.Ub)
	}
	// HiGHS always minimizes here; a maximization objective is negated on
	// the way in and the reported objective is recomputed from the values.
	sign := 1.0
	if m.HasObjective && m.Objective.Maximize {
		sign = -1
	}
	if m.HasObjective {
		for i, v := range m.Objective.Vars {
			lp.ColCosts[v] = sign * float64(m.Objective.Coeffs[i])
		}
	}

	lp.RowLower = make([]float64, len(m.Constraints))
	lp.RowUpper = make([]float64, len(m.Constraints))
	for ri := range m.Constraints {
		c := &m.Constraints[ri]
		for k := range c.Vars {
			lp.ConstMatrix = append(lp.ConstMatrix, hs.Nonzero{Row: ri, Col: int(c.Vars[k]), Val: float64(c.Coeffs[k])})
		}
		lp.RowLower[ri] = lower(c.Lb)
		lp.RowUpper[ri] = upper(c.Ub)
	}
	log.V(1).Infof("highs: %d columns, %d rows, %d nonzeros", n, len(m.Constraints), len(lp.ConstMatrix))

	sol, err := lp.Solve()
	if err != nil {
		return nil, fmt.Errorf("highs: %w", err)
	}

	res := &milp.Result{Values: make([]float64, n)}
	switch sol.Status {
	case hs.Optimal:
		res.Status = milp.Optimal
		copy(res.Values, sol.ColumnPrimal[:n])
		if m.HasObjective {
			res.Objective = m.Objective.Evaluate(res.Values)
		}
	case hs.Infeasible:
		res.Status = milp.Infeasible
	default:
		log.V(1).Infof("highs: terminated with status %v", sol.Status)
		res.Status = milp.Other
	}
	return res, nil
}

func lower(b int64) float64 {
	if b <= milp.NoLower {
		return math.Inf(-1)
	}
	return float64(b)
}

func upper(b int64) float64 {
	if b >= milp.NoUpper {
		return math.Inf(1)
	}
	return float64(b)
}
