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

// Package pbsat solves pure 0/1 models with the gophersat pseudo-Boolean
// engine. It is the only backend in this repository with no cgo dependency.
//
// Every variable of the model must be integer with bounds inside [0, 1];
// models with wider domains or continuous variables need the milp/highs
// backend instead.
package pbsat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"
	log "github.com/golang/glog"

	"github.com/nonomilp/nonomilp/milp"
)

// Solver is a milp.Solver backed by gophersat.
type Solver struct {
	// Verbose makes the underlying solver log its search progress.
	Verbose bool
}

// Solve translates the model to pseudo-Boolean constraints and runs the
// solver. Sat maps to Optimal, Unsat to Infeasible, anything else to Other.
func (s Solver) Solve(m *milp.Model) (*milp.Result, error) {
	constrs, res, err := translate(m)
	if err != nil {
		return nil, err
	}
	if res != nil {
		// The model was decided during translation.
		return res, nil
	}
	if len(constrs) == 0 && !m.HasObjective {
		// Nothing constrains anything: the all-zero assignment is valid.
		return satResult(m, nil), nil
	}

	pb := solver.ParsePBConstrs(constrs)
	if m.HasObjective {
		lits, weights, err := costFunc(m)
		if err != nil {
			return nil, err
		}
		pb.SetCostFunc(lits, weights)
	}
	sv := solver.New(pb)
	sv.Verbose = s.Verbose

	if m.HasObjective {
		cost := sv.Minimize()
		if cost == -1 {
			return infeasibleResult(m), nil
		}
		return satResult(m, sv.Model()), nil
	}

	switch sv.Solve() {
	case solver.Sat:
		return satResult(m, sv.Model()), nil
	case solver.Unsat:
		return infeasibleResult(m), nil
	default:
		return &milp.Result{Status: milp.Other, Values: make([]float64, len(m.Variables))}, nil
	}
}

// translate builds the pseudo-Boolean constraints for the model. When the
// model is decided without search (a variable-free constraint excludes zero),
// it returns the final result instead.
func translate(m *milp.Model) ([]solver.PBConstr, *milp.Result, error) {
	for i := range m.Variables {
		v := &m.Variables[i]
		if !v.Integer || v.Lb < 0 || v.Ub > 1 {
			return nil, nil, fmt.Errorf("pbsat: variable %d (%q) is not 0/1: integer=%v bounds=[%d,%d]",
				i, v.Name, v.Integer, v.Lb, v.Ub)
		}
	}

	var constrs []solver.PBConstr
	for ci := range m.Constraints {
		c := &m.Constraints[ci]
		if len(c.Vars) == 0 {
			// A pseudo-Boolean problem cannot carry an empty weighted
			// clause, so variable-free rows are decided here.
			if c.Lb > 0 || c.Ub < 0 {
				log.V(1).Infof("pbsat: variable-free constraint %d with bounds [%d,%d] is infeasible", ci, c.Lb, c.Ub)
				return nil, infeasibleResult(m), nil
			}
			continue
		}
		switch {
		case c.Lb == c.Ub:
			constrs = append(constrs, solver.Eq(lits(c.Vars), weights(c.Coeffs), int(c.Lb))...)
		default:
			if c.Lb > milp.NoLower {
				constrs = append(constrs, solver.GtEq(lits(c.Vars), weights(c.Coeffs), int(c.Lb)))
			}
			if c.Ub < milp.NoUpper {
				constrs = append(constrs, solver.LtEq(lits(c.Vars), weights(c.Coeffs), int(c.Ub)))
			}
		}
	}
	// Fixed variables become unit constraints.
	for i := range m.Variables {
		switch v := &m.Variables[i]; {
		case v.Lb == 1:
			constrs = append(constrs, solver.PropClause(i+1))
		case v.Ub == 0:
			constrs = append(constrs, solver.PropClause(-(i + 1)))
		}
	}
	log.V(1).Infof("pbsat: %d variables, %d pseudo-Boolean constraints", len(m.Variables), len(constrs))
	return constrs, nil, nil
}

// costFunc converts the model objective to a gophersat cost function.
// gophersat minimizes a nonnegative weighted sum of literals, so only
// minimization with nonnegative coefficients is expressible.
func costFunc(m *milp.Model) ([]solver.Lit, []int, error) {
	if m.Objective.Maximize {
		return nil, nil, fmt.Errorf("pbsat: maximization is not supported")
	}
	var ls []solver.Lit
	var ws []int
	for i, v := range m.Objective.Vars {
		coeff := m.Objective.Coeffs[i]
		if coeff < 0 {
			return nil, nil, fmt.Errorf("pbsat: negative objective coefficient %d on variable %d", coeff, v)
		}
		ls = append(ls, solver.IntToLit(int32(v)+1))
		ws = append(ws, int(coeff))
	}
	return ls, ws, nil
}

// lits returns the 1-based gophersat literals for the variables. The helpers
// in gophersat's solver package take ownership of their slices and may flip
// signs in place, so a fresh slice is built per constraint side.
func lits(vars []milp.VarIndex) []int {
	out := make([]int, len(vars))
	for i, v := range vars {
		out[i] = int(v) + 1
	}
	return out
}

func weights(coeffs []int64) []int {
	out := make([]int, len(coeffs))
	for i, c := range coeffs {
		out[i] = int(c)
	}
	return out
}

func satResult(m *milp.Model, bindings []bool) *milp.Result {
	values := make([]float64, len(m.Variables))
	for i := range values {
		// Variables absent from every constraint are not known to the
		// solver; they keep the value 0.
		if i < len(bindings) && bindings[i] {
			values[i] = 1
		}
	}
	r := &milp.Result{Status: milp.Optimal, Values: values}
	if m.HasObjective {
		r.Objective = m.Objective.Evaluate(values)
	}
	return r
}

func infeasibleResult(m *milp.Model) *milp.Result {
	return &milp.Result{Status: milp.Infeasible, Values: make([]float64, len(m.Variables))}
}
