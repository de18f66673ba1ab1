// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

import "math"

// SparseVec is a sparse vector in support/coefficient form. The support
// holds indices into whatever index space the owner defines (active
// variable numbers for rows, active constraint numbers for columns).
type SparseVec struct {
	support []int
	coeff   []float64
}

// Insert appends a nonzero entry.
func (s *SparseVec) Insert(index int, coeff float64) {
	s.support = append(s.support, index)
	s.coeff = append(s.coeff, coeff)
}

// NNZ returns the number of stored nonzeros.
func (s *SparseVec) NNZ() int { return len(s.support) }

// Support returns the index of the i-th nonzero.
func (s *SparseVec) Support(i int) int { return s.support[i] }

// Coeff returns the coefficient of the i-th nonzero.
func (s *SparseVec) Coeff(i int) float64 { return s.coeff[i] }

// Clear empties the vector, keeping its capacity.
func (s *SparseVec) Clear() {
	s.support = s.support[:0]
	s.coeff = s.coeff[:0]
}

// Norm returns the Euclidean norm of the stored coefficients.
func (s *SparseVec) Norm() float64 {
	var sum float64
	for _, c := range s.coeff {
		sum += c * c
	}
	return math.Sqrt(sum)
}

// Row is a constraint in sparse row format: a sparse vector over active
// variable indices plus sense and right-hand side.
type Row struct {
	SparseVec
	sense CSense
	rhs   float64
}

// NewRow builds a row from parallel support/coefficient slices. The slices
// are copied.
func NewRow(support []int, coeff []float64, sense CSense, rhs float64) *Row {
	r := &Row{sense: sense, rhs: rhs}
	r.support = append([]int(nil), support...)
	r.coeff = append([]float64(nil), coeff...)
	return r
}

func (r *Row) Sense() CSense        { return r.sense }
func (r *Row) SetSense(s CSense)    { r.sense = s }
func (r *Row) Rhs() float64         { return r.rhs }
func (r *Row) SetRhs(rhs float64)   { r.rhs = rhs }

// Copy returns an independent copy of the row.
func (r *Row) Copy() *Row {
	return NewRow(r.support, r.coeff, r.sense, r.rhs)
}

// DelInd removes the nonzeros at the given positions (positions into the
// nonzero list, strictly increasing) and reduces the right-hand side by
// rhsDelta. It is used when eliminated variables are stripped from a row.
func (r *Row) DelInd(positions []int, rhsDelta float64) {
	if len(positions) == 0 {
		r.rhs -= rhsDelta
		return
	}
	keepS := r.support[:0]
	keepC := r.coeff[:0]
	next := 0
	for i := range r.support {
		if next < len(positions) && positions[next] == i {
			next++
			continue
		}
		keepS = append(keepS, r.support[i])
		keepC = append(keepC, r.coeff[i])
	}
	r.support = keepS
	r.coeff = keepC
	r.rhs -= rhsDelta
}

// Rename maps every support entry through orig2lp. All mapped entries must
// be valid LP columns; eliminated variables have to be removed with DelInd
// before renaming.
func (r *Row) Rename(orig2lp []int) {
	for i, s := range r.support {
		r.support[i] = orig2lp[s]
	}
}

// Column is a variable in sparse column format: a sparse vector over active
// constraint indices plus objective coefficient and bounds.
type Column struct {
	SparseVec
	obj    float64
	lBound float64
	uBound float64
}

// NewColumn builds a column from parallel support/coefficient slices. The
// slices are copied.
func NewColumn(support []int, coeff []float64, obj, lb, ub float64) *Column {
	c := &Column{obj: obj, lBound: lb, uBound: ub}
	c.support = append([]int(nil), support...)
	c.coeff = append([]float64(nil), coeff...)
	return c
}

func (c *Column) Obj() float64          { return c.obj }
func (c *Column) SetObj(obj float64)    { c.obj = obj }
func (c *Column) LBound() float64       { return c.lBound }
func (c *Column) SetLBound(lb float64)  { c.lBound = lb }
func (c *Column) UBound() float64       { return c.uBound }
func (c *Column) SetUBound(ub float64)  { c.uBound = ub }

// Copy returns an independent copy of the column.
func (c *Column) Copy() *Column {
	return NewColumn(c.support, c.coeff, c.obj, c.lBound, c.uBound)
}
