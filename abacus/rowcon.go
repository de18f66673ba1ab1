// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// Numbered is implemented by variables and constraints that are identified
// by an external number, e.g. the column number of a static problem
// formulation. RowCon and NumCon resolve coefficients through it.
type Numbered interface {
	Number() int
}

// RowCon is a constraint stored in sparse row format over variable numbers.
// It serves problems whose variable set is static or numbered, so the
// coefficient of a later activated variable can be computed from the stored
// row; RowCons are therefore liftable.
type RowCon struct {
	BaseConstraint
	row *Row
}

// NewRowCon builds a row constraint over the numbered variables in support.
func NewRowCon(master *Master, sub *Sub, sense CSense, dynamic, local bool, support []int, coeff []float64, rhs float64) *RowCon {
	rc := &RowCon{row: NewRow(support, coeff, sense, rhs)}
	rc.InitConstraint(master, sub, sense, rhs, dynamic, local, true)
	return rc
}

// Row returns the stored row.
func (rc *RowCon) Row() *Row { return rc.row }

// Coeff returns the stored coefficient of v, which must be a Numbered
// variable.
func (rc *RowCon) Coeff(v Variable) float64 {
	num := v.(Numbered).Number()
	nnz := rc.row.NNZ()
	for i := 0; i < nnz; i++ {
		if rc.row.Support(i) == num {
			return rc.row.Coeff(i)
		}
	}
	return 0.0
}

func (rc *RowCon) HashKey() uint32 {
	h := uint32(2166136261)
	mix := func(x uint32) {
		h ^= x
		h *= 16777619
	}
	mix(uint32(rc.sense))
	mix(uint32(int32(rc.rhs * 256)))
	nnz := rc.row.NNZ()
	for i := 0; i < nnz; i++ {
		mix(uint32(rc.row.Support(i)))
	}
	return h
}

func (rc *RowCon) Equal(other ConVarMember) bool {
	o, ok := other.(*RowCon)
	if !ok {
		return false
	}
	if rc.sense != o.sense || rc.rhs != o.rhs || rc.row.NNZ() != o.row.NNZ() {
		return false
	}
	nnz := rc.row.NNZ()
	for i := 0; i < nnz; i++ {
		if rc.row.Support(i) != o.row.Support(i) || rc.row.Coeff(i) != o.row.Coeff(i) {
			return false
		}
	}
	return true
}

// NumCon is a constraint identified by an external number. The coefficient
// oracle is delegated to the variable, which must be a ColumnVariable
// storing its column over constraint numbers. NumCons cannot compute
// coefficients of arbitrary later activated variables and are therefore not
// liftable.
type NumCon struct {
	BaseConstraint
	number int
}

// NewNumCon builds a numbered constraint.
func NewNumCon(master *Master, sub *Sub, sense CSense, dynamic, local bool, number int, rhs float64) *NumCon {
	nc := &NumCon{number: number}
	nc.InitConstraint(master, sub, sense, rhs, dynamic, local, false)
	return nc
}

// Number returns the external number of the constraint.
func (nc *NumCon) Number() int { return nc.number }

func (nc *NumCon) Coeff(v Variable) float64 {
	cv, ok := v.(ColumnVariable)
	if !ok {
		return 0.0
	}
	return cv.CoeffOfConstraint(nc.number)
}

func (nc *NumCon) HashKey() uint32 { return uint32(nc.number) }

func (nc *NumCon) Equal(other ConVarMember) bool {
	o, ok := other.(*NumCon)
	return ok && o.number == nc.number
}
