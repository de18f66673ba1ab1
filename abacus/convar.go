// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package abacus

// ConVarMember is implemented by everything that can live in a pool slot:
// constraints and variables, including problem-specific realizations that
// embed BaseConstraint or BaseVariable.
type ConVarMember interface {
	// convar returns the shared lifecycle state.
	convar() *ConVar

	// Expand switches the item to its problem-specific dense form.
	// Implementations need not track the expanded flag; the engine calls
	// Expand and Compress only through expandConVar and compressConVar,
	// which keep the flag and make the pair idempotent.
	Expand()

	// Compress releases the dense form again.
	Compress()

	// HashKey provides a key for duplicate detection in a NonDuplPool. As
	// usual for hashing two distinct items may share a key.
	HashKey() uint32

	// Equal reports whether the receiver and other represent the same item
	// in a mathematical sense. Only called for items with equal hash keys.
	Equal(other ConVarMember) bool

	// Rank returns a problem-specific rank used when buffered items are
	// selected by quality.
	Rank() float64
}

// ConVar carries the lifecycle state shared by constraints and variables:
// reference counting from pool slot references, the number of active
// subproblems containing the item, temporary deletion locks, and the
// locality and dynamism flags.
type ConVar struct {
	master *Master
	sub    *Sub // creating subproblem; non-nil iff the item is locally valid

	expanded bool
	dynamic  bool
	local    bool

	nReferences int64
	nActive     int64
	nLocks      int64
}

func (cv *ConVar) init(master *Master, sub *Sub, dynamic, local bool) {
	if local && sub == nil {
		panic("abacus: convar: locally valid item needs a creating subproblem")
	}
	cv.master = master
	cv.sub = sub
	cv.dynamic = dynamic
	cv.local = local
}

// Active reports whether the item is contained in the active set of at
// least one active subproblem.
func (cv *ConVar) Active() bool { return cv.nActive > 0 }

// Local reports whether the item is only valid in the subtree of its
// creating subproblem.
func (cv *ConVar) Local() bool { return cv.local }

// Global reports whether the item is globally valid.
func (cv *ConVar) Global() bool { return !cv.local }

// Dynamic reports whether the item may be removed from an active set after
// it has been added. Static items stay for the lifetime of the node.
func (cv *ConVar) Dynamic() bool { return cv.dynamic }

// Expanded reports whether the dense form is currently available.
func (cv *ConVar) Expanded() bool { return cv.expanded }

// Sub returns the creating subproblem, or nil for a global item.
func (cv *ConVar) Sub() *Sub { return cv.sub }

// SetSub reassociates the item with a subproblem.
func (cv *ConVar) SetSub(sub *Sub) { cv.sub = sub }

// Deletable reports whether the item may be removed from its pool: nobody
// references its slot and no lock is held.
func (cv *ConVar) Deletable() bool { return cv.nReferences == 0 && cv.nLocks == 0 }

// NReferences returns the number of valid PoolSlotRefs to the item's slot.
func (cv *ConVar) NReferences() int64 { return cv.nReferences }

func (cv *ConVar) addReference() { cv.nReferences++ }

func (cv *ConVar) removeReference() {
	cv.nReferences--
	if cv.nReferences < 0 {
		panic("abacus: convar: reference counter below zero")
	}
}

func (cv *ConVar) activate() { cv.nActive++ }

func (cv *ConVar) deactivate() {
	if cv.nActive == 0 {
		panic("abacus: convar: deactivate on inactive item")
	}
	cv.nActive--
}

func (cv *ConVar) lock() { cv.nLocks++ }

func (cv *ConVar) unlock() {
	if cv.nLocks == 0 {
		panic("abacus: convar: unlock without lock")
	}
	cv.nLocks--
}

// expandConVar generates the expanded format of cv if it is not yet
// available. A second expansion is a warned no-op.
func expandConVar(cv ConVarMember) {
	core := cv.convar()
	if core.expanded {
		core.master.log.Warn("convar already expanded")
		return
	}
	cv.Expand()
	core.expanded = true
}

// compressConVar is the counterpart of expandConVar.
func compressConVar(cv ConVarMember) {
	core := cv.convar()
	if !core.expanded {
		core.master.log.Warn("convar already compressed")
		return
	}
	cv.Compress()
	core.expanded = false
}

// BaseConVar supplies the default hooks of a pooled item. Realizations that
// never enter a NonDuplPool can leave HashKey and Equal alone; the defaults
// panic because duplicate detection without them would be silently wrong.
type BaseConVar struct {
	cv ConVar
}

func (b *BaseConVar) convar() *ConVar { return &b.cv }

// Active reports whether the item is active in at least one subproblem.
func (b *BaseConVar) Active() bool { return b.cv.Active() }

// Local reports whether the item is only locally valid.
func (b *BaseConVar) Local() bool { return b.cv.Local() }

// Global reports whether the item is globally valid.
func (b *BaseConVar) Global() bool { return b.cv.Global() }

// Dynamic reports whether the item may leave an active set again.
func (b *BaseConVar) Dynamic() bool { return b.cv.Dynamic() }

// Deletable reports whether the item may be removed from its pool.
func (b *BaseConVar) Deletable() bool { return b.cv.Deletable() }

// CreatingSub returns the subproblem the item is associated with, if any.
func (b *BaseConVar) CreatingSub() *Sub { return b.cv.Sub() }

func (b *BaseConVar) Expand()   {}
func (b *BaseConVar) Compress() {}

func (b *BaseConVar) HashKey() uint32 {
	panic("abacus: HashKey not implemented; required for NonDuplPool storage")
}

func (b *BaseConVar) Equal(ConVarMember) bool {
	panic("abacus: Equal not implemented; required for NonDuplPool storage")
}

func (b *BaseConVar) Rank() float64 { return 0 }

// validInSub reports whether the item may be used in sub: global items
// always, local items only in descendants of their creating subproblem.
func validInSub(cv ConVarMember, sub *Sub) bool {
	core := cv.convar()
	if !core.local {
		return true
	}
	if sub == nil {
		return false
	}
	return core.sub.Ancestor(sub)
}
