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

import "math"

// Status is the termination status reported by a Solver.
type Status int

const (
	// Other covers every termination that is neither a proof of optimality
	// nor a proof of infeasibility (interrupted, limit reached, unbounded).
	Other Status = iota
	// Optimal means a provably optimal (for feasibility models: any
	// feasible) assignment was found.
	Optimal
	// Infeasible means the model admits no assignment.
	Infeasible
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	default:
		return "other"
	}
}

// Result is the outcome of one Solve call. Values holds one entry per model
// variable and is only meaningful when Status is Optimal.
type Result struct {
	Status    Status
	Values    []float64
	Objective float64
}

// Value returns the value of the linear argument under the result.
func (r *Result) Value(la LinearArgument) float64 {
	return la.evaluate(r.Values)
}

// BoolValue returns the value of the 0/1 variable, tolerating the small
// numerical slack LP-based backends leave on integer variables.
func (r *Result) BoolValue(b BoolVar) bool {
	return r.Values[b.ind] > 0.5
}

// IntValue returns the rounded value of the integer variable.
func (r *Result) IntValue(i IntVar) int64 {
	return int64(math.Round(r.Values[i.ind]))
}

// Solver is a MILP backend. Solve returns a non-nil Result for every
// termination it can classify; an error is reserved for backend failures
// (model not expressible, solver unavailable, numerical breakdown).
type Solver interface {
	Solve(m *Model) (*Result, error)
}
