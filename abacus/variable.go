// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// Variable is the role interface of a pooled variable.
type Variable interface {
	ConVarMember

	// VarType returns the type of the variable.
	VarType() VarType

	// Obj returns the objective function coefficient.
	Obj() float64

	// LBound and UBound return the global bounds.
	LBound() float64
	UBound() float64

	// SetLBound and SetUBound tighten the global bounds, e.g. after a
	// permanent fixing.
	SetLBound(lb float64)
	SetUBound(ub float64)

	// FsVarStat returns the global fixing status of the variable.
	FsVarStat() *FSVarStat
}

// BaseVariable carries type, objective coefficient, global bounds and the
// global fixing status. It implements all of Variable.
type BaseVariable struct {
	BaseConVar

	fsVarStat FSVarStat
	obj       float64
	lBound    float64
	uBound    float64
	varType   VarType
}

// InitVariable initializes the embedded base.
func (v *BaseVariable) InitVariable(master *Master, sub *Sub, dynamic, local bool, obj, lBound, uBound float64, varType VarType) {
	v.cv.init(master, sub, dynamic, local)
	v.obj = obj
	v.lBound = lBound
	v.uBound = uBound
	v.varType = varType
}

func (v *BaseVariable) VarType() VarType      { return v.varType }
func (v *BaseVariable) Obj() float64          { return v.obj }
func (v *BaseVariable) LBound() float64       { return v.lBound }
func (v *BaseVariable) UBound() float64       { return v.uBound }
func (v *BaseVariable) SetLBound(lb float64)  { v.lBound = lb }
func (v *BaseVariable) SetUBound(ub float64)  { v.uBound = ub }
func (v *BaseVariable) FsVarStat() *FSVarStat { return &v.fsVarStat }

// Discrete reports whether the variable carries an integrality condition.
func (v *BaseVariable) Discrete() bool { return v.varType.Discrete() }

// Binary reports whether the variable is binary.
func (v *BaseVariable) Binary() bool { return v.varType == Binary }

// GenColumn generates the sparse column format of v over the active
// constraint set and returns the number of nonzeros.
func GenColumn(v Variable, actCon *ActiveCons, col *Column) int {
	eps := v.convar().master.MachineEps()

	expandConVar(v)
	n := actCon.Number()
	for i := 0; i < n; i++ {
		c := actCon.ConVar(i)
		if c == nil {
			continue
		}
		co := c.Coeff(v)
		if co > eps || co < -eps {
			col.Insert(i, co)
		}
	}
	col.SetObj(v.Obj())
	col.SetLBound(v.LBound())
	col.SetUBound(v.UBound())
	compressConVar(v)
	return col.NNZ()
}

// RedCost returns the reduced cost of v against the dual vector y, which is
// indexed like actCon.
func RedCost(v Variable, actCon *ActiveCons, y []float64) float64 {
	eps := v.convar().master.MachineEps()

	expandConVar(v)
	rc := v.Obj()
	n := actCon.Number()
	for i := 0; i < n; i++ {
		c := actCon.ConVar(i)
		if c == nil {
			continue
		}
		co := c.Coeff(v)
		if co > eps || co < -eps {
			rc -= y[i] * co
		}
	}
	compressConVar(v)
	return rc
}

// VarViolated applies the sense-of-optimization-aware violation test to a
// reduced cost.
func VarViolated(v Variable, rc float64) bool {
	m := v.convar().master
	if m.OptSense().Max() {
		return rc > m.Eps()
	}
	return rc < -m.Eps()
}

// VarUseful reports whether activating v could still improve the LP value
// beyond the incumbent: for a discrete variable the price lpVal plus its
// reduced cost has to beat the primal bound.
func VarUseful(v Variable, actCon *ActiveCons, y []float64, lpVal float64) bool {
	m := v.convar().master
	if !v.VarType().Discrete() {
		return true
	}
	rc := RedCost(v, actCon, y)
	if m.OptSense().Max() {
		return lpVal+rc > m.PrimalBound()
	}
	return lpVal+rc < m.PrimalBound()
}
