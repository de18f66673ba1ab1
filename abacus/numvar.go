// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// NumVar is a variable identified by an external number, typically the
// column number of the problem formulation. Constraints stored in row
// format resolve their coefficients through this number.
type NumVar struct {
	BaseVariable
	number int
}

// NewNumVar builds a numbered variable.
func NewNumVar(master *Master, sub *Sub, number int, dynamic, local bool, obj, lBound, uBound float64, varType VarType) *NumVar {
	v := &NumVar{number: number}
	v.InitVariable(master, sub, dynamic, local, obj, lBound, uBound, varType)
	return v
}

// Number returns the external number of the variable.
func (v *NumVar) Number() int { return v.number }

func (v *NumVar) HashKey() uint32 { return uint32(v.number) }

func (v *NumVar) Equal(other ConVarMember) bool {
	o, ok := other.(*NumVar)
	return ok && o.number == v.number
}

// ColumnVariable is implemented by variables that store their constraint
// matrix column explicitly, indexed by constraint number.
type ColumnVariable interface {
	Variable
	CoeffOfConstraint(conNumber int) float64
}

// ColVar is a variable with an explicit column over constraint numbers,
// used in column generation where the coefficient oracle lives on the
// variable side.
type ColVar struct {
	BaseVariable
	col *Column
}

// NewColVar builds a variable from an explicit column over the numbered
// constraints in support.
func NewColVar(master *Master, sub *Sub, dynamic, local bool, obj, lBound, uBound float64, varType VarType, support []int, coeff []float64) *ColVar {
	v := &ColVar{col: NewColumn(support, coeff, obj, lBound, uBound)}
	v.InitVariable(master, sub, dynamic, local, obj, lBound, uBound, varType)
	return v
}

// Column returns the stored column.
func (v *ColVar) Column() *Column { return v.col }

func (v *ColVar) CoeffOfConstraint(conNumber int) float64 {
	nnz := v.col.NNZ()
	for i := 0; i < nnz; i++ {
		if v.col.Support(i) == conNumber {
			return v.col.Coeff(i)
		}
	}
	return 0.0
}

func (v *ColVar) HashKey() uint32 {
	h := uint32(2166136261)
	mix := func(x uint32) {
		h ^= x
		h *= 16777619
	}
	mix(uint32(int32(v.obj * 256)))
	nnz := v.col.NNZ()
	for i := 0; i < nnz; i++ {
		mix(uint32(v.col.Support(i)))
	}
	return h
}

func (v *ColVar) Equal(other ConVarMember) bool {
	o, ok := other.(*ColVar)
	if !ok {
		return false
	}
	if v.obj != o.obj || v.col.NNZ() != o.col.NNZ() {
		return false
	}
	nnz := v.col.NNZ()
	for i := 0; i < nnz; i++ {
		if v.col.Support(i) != o.col.Support(i) || v.col.Coeff(i) != o.col.Coeff(i) {
			return false
		}
	}
	return true
}
