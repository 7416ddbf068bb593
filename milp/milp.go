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

// Package milp offers a small API to build mixed-integer linear models.
//
// The `Builder` struct accumulates variables and constraints and produces an
// immutable `Model`. The `IntVar` and `BoolVar` structs are references to
// specific variables in the model and the `LinearExpr` struct provides helper
// methods for creating constraints and the objective from expressions with
// many variables and coefficients.
//
// Solving is delegated to a backend implementing the `Solver` interface; the
// backends under milp/pbsat and milp/highs are provided.
package milp

import (
	"fmt"

	log "github.com/golang/glog"
)

type (
	// VarIndex is the index of a variable in the model.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

// NoLower and NoUpper mark a constraint side as unbounded.
const (
	NoLower int64 = -1 << 62
	NoUpper int64 = 1<<62 - 1
)

// Variable is one column of a model.
type Variable struct {
	Lb, Ub  int64
	Integer bool
	Name    string
}

// LinearConstraint is one row of a model: Lb <= sum(Coeffs[i]*Vars[i]) <= Ub.
// A constraint without variables is legal; it is trivially infeasible unless
// its bounds admit zero.
type LinearConstraint struct {
	Vars   []VarIndex
	Coeffs []int64
	Lb, Ub int64
	Name   string
}

// Objective is an optional linear objective.
type Objective struct {
	Vars     []VarIndex
	Coeffs   []int64
	Offset   int64
	Maximize bool
}

// Model is an immutable mixed-integer linear model, ready to hand to a
// Solver. Build one with Builder.
type Model struct {
	Variables    []Variable
	Constraints  []LinearConstraint
	Objective    Objective
	HasObjective bool
}

// LinearArgument provides an interface for BoolVar, IntVar, and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c int64)
	// evaluate returns the value of the argument under the given
	// per-variable solution values.
	evaluate(values []float64) float64
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    int64
}

type varCoeff struct {
	ind   VarIndex
	coeff int64
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c int64) *LinearExpr {
	return &LinearExpr{offset: c}
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	l.AddTerm(la, 1)
	return l
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c int64) *LinearExpr {
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the
// LinearExpr and returns itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff int64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the linear arguments to the LinearExpr and returns
// itself.
func (l *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		l.Add(la)
	}
	return l
}

// AddWeightedSum adds the linear arguments with the corresponding
// coefficients to the LinearExpr and returns itself.
func (l *LinearExpr) AddWeightedSum(las []LinearArgument, coeffs []int64) *LinearExpr {
	if len(coeffs) != len(las) {
		log.Fatalf("las and coeffs must be the same length: %v != %v", len(las), len(coeffs))
	}
	for i, la := range las {
		l.AddTerm(la, coeffs[i])
	}
	return l
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c int64) {
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c})
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) evaluate(values []float64) float64 {
	result := float64(l.offset)
	for _, vc := range l.varCoeffs {
		result += values[vc.ind] * float64(vc.coeff)
	}
	return result
}

// terms returns the expression's variables and coefficients with duplicate
// variables merged, in first-occurrence order. Zero coefficients are kept out.
func (l *LinearExpr) terms() ([]VarIndex, []int64) {
	pos := make(map[VarIndex]int, len(l.varCoeffs))
	var vars []VarIndex
	var coeffs []int64
	for _, vc := range l.varCoeffs {
		if p, ok := pos[vc.ind]; ok {
			coeffs[p] += vc.coeff
			continue
		}
		pos[vc.ind] = len(vars)
		vars = append(vars, vc.ind)
		coeffs = append(coeffs, vc.coeff)
	}
	// Drop terms that cancelled out.
	outV := vars[:0]
	outC := coeffs[:0]
	for i, c := range coeffs {
		if c != 0 {
			outV = append(outV, vars[i])
			outC = append(outC, c)
		}
	}
	return outV, outC
}

// IntVar is a reference to an integer variable in the model.
type IntVar struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (i IntVar) Name() string {
	return i.mb.model.Variables[i.ind].Name
}

// Index returns the index of the variable.
func (i IntVar) Index() VarIndex {
	return i.ind
}

// WithName sets the name of the variable.
func (i IntVar) WithName(s string) IntVar {
	i.mb.model.Variables[i.ind].Name = s
	return i
}

func (i IntVar) addToLinearExpr(e *LinearExpr, c int64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: i.ind, coeff: c})
}

func (i IntVar) evaluate(values []float64) float64 {
	return values[i.ind]
}

// BoolVar is a reference to a 0/1 variable in the model.
type BoolVar struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (b BoolVar) Name() string {
	return b.mb.model.Variables[b.ind].Name
}

// Index returns the index of the variable.
func (b BoolVar) Index() VarIndex {
	return b.ind
}

// WithName sets the name of the variable.
func (b BoolVar) WithName(s string) BoolVar {
	b.mb.model.Variables[b.ind].Name = s
	return b
}

func (b BoolVar) addToLinearExpr(e *LinearExpr, c int64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: b.ind, coeff: c})
}

func (b BoolVar) evaluate(values []float64) float64 {
	return values[b.ind]
}

// Constraint is a reference to a constraint in the model.
type Constraint struct {
	ind ConstrIndex
	mb  *Builder
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.mb.model.Constraints[c.ind].Name
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	c.mb.model.Constraints[c.ind].Name = s
	return c
}

// Builder accumulates a Model.
type Builder struct {
	model *Model
	// The first and only the first error is reported in Model.
	err error
}

// NewBuilder creates and returns a new model Builder.
func NewBuilder() *Builder {
	return &Builder{model: &Model{}}
}

func (mb *Builder) setErrorf(format string, a ...any) {
	err := fmt.Errorf(format, a...)
	log.Errorf("%v", err)
	if mb.err == nil {
		mb.err = err
	}
}

// NewIntVar creates a new integer variable with the inclusive bounds [lb, ub].
func (mb *Builder) NewIntVar(lb, ub int64) IntVar {
	if lb > ub {
		mb.setErrorf("NewIntVar: lower bound %v exceeds upper bound %v", lb, ub)
	}
	iv := IntVar{ind: VarIndex(len(mb.model.Variables)), mb: mb}
	mb.model.Variables = append(mb.model.Variables, Variable{Lb: lb, Ub: ub, Integer: true})
	return iv
}

// NewBoolVar creates a new 0/1 variable.
func (mb *Builder) NewBoolVar() BoolVar {
	bv := BoolVar{ind: VarIndex(len(mb.model.Variables)), mb: mb}
	mb.model.Variables = append(mb.model.Variables, Variable{Lb: 0, Ub: 1, Integer: true})
	return bv
}

// addLinearConstraint stores `lb <= le <= ub` after folding the expression's
// constant offset into the bounds.
func (mb *Builder) addLinearConstraint(le *LinearExpr, lb, ub int64) Constraint {
	if lb > ub {
		mb.setErrorf("linear constraint %v: lower bound %v exceeds upper bound %v", len(mb.model.Constraints), lb, ub)
	}
	vars, coeffs := le.terms()
	c := LinearConstraint{
		Vars:   vars,
		Coeffs: coeffs,
		Lb:     shiftBound(lb, -le.offset),
		Ub:     shiftBound(ub, -le.offset),
	}
	ind := ConstrIndex(len(mb.model.Constraints))
	mb.model.Constraints = append(mb.model.Constraints, c)
	return Constraint{ind: ind, mb: mb}
}

// shiftBound adds `delta` to a bound, saturating at the unbounded sentinels.
func shiftBound(b, delta int64) int64 {
	if b <= NoLower {
		return NoLower
	}
	if b >= NoUpper {
		return NoUpper
	}
	s := b + delta
	if s < NoLower {
		return NoLower
	}
	if s > NoUpper {
		return NoUpper
	}
	return s
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`.
func (mb *Builder) AddLinearConstraint(expr LinearArgument, lb, ub int64) Constraint {
	return mb.addLinearConstraint(NewLinearExpr().Add(expr), lb, ub)
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (mb *Builder) AddEquality(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.addLinearConstraint(diff, 0, 0)
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (mb *Builder) AddLessOrEqual(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.addLinearConstraint(diff, NoLower, 0)
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (mb *Builder) AddGreaterOrEqual(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.addLinearConstraint(diff, 0, NoUpper)
}

// Minimize adds a linear minimization objective.
func (mb *Builder) Minimize(obj LinearArgument) {
	mb.setObjective(obj, false)
}

// Maximize adds a linear maximization objective.
func (mb *Builder) Maximize(obj LinearArgument) {
	mb.setObjective(obj, true)
}

func (mb *Builder) setObjective(obj LinearArgument, maximize bool) {
	o := NewLinearExpr().Add(obj)
	vars, coeffs := o.terms()
	mb.model.Objective = Objective{Vars: vars, Coeffs: coeffs, Offset: o.offset, Maximize: maximize}
	mb.model.HasObjective = true
}

// ClearObjective removes any objective, leaving a feasibility model.
func (mb *Builder) ClearObjective() {
	mb.model.Objective = Objective{}
	mb.model.HasObjective = false
}

// Model returns the built model.
//
// Model returns an error when invalid parameters have been used during model
// building (e.g. crossed bounds). Only the first such error is reported.
func (mb *Builder) Model() (*Model, error) {
	if mb.err != nil {
		return nil, mb.err
	}
	return mb.model, nil
}

// Evaluate returns the objective value of the model under the given
// per-variable values.
func (o Objective) Evaluate(values []float64) float64 {
	result := float64(o.Offset)
	for i, v := range o.Vars {
		result += float64(o.Coeffs[i]) * values[v]
	}
	return result
}
