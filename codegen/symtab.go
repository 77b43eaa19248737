package codegen

// Symbol is one entry in a per-function symbol table: a variable's name,
// its frame offset (positive bytes below rbp, i.e. addressed as
// [rbp-Offset]), its declared type tag, and how many 8-byte slots it
// spans if it is an array (0 otherwise).
type Symbol struct {
	Name       string
	Offset     int
	Type       string // "int", "float", "bool", "string"
	ArraySlots int
}

// MaxVarsPerFunction is the observable symbol-table limit from spec.md §6.
const MaxVarsPerFunction = 100

// MaxLoopDepth bounds the break/continue label stack, per spec.md §6.
const MaxLoopDepth = 50

// stringVarBytes is how many bytes a declared-string local reserves,
// including its NUL terminator (spec.md §3/§6).
const stringVarBytes = 256

// scalarBytes is the frame footprint of any non-string scalar.
const scalarBytes = 8

// symbolTable is a flat, append-only list of Symbol records for the
// function currently being compiled. Lookup is last-match-wins so that a
// re-declaration of the same name shadows the earlier one, matching
// spec.md's "top of conceptual scope" rule; there is no separate scope
// stack to pop.
type symbolTable struct {
	syms      []Symbol
	frameSize int
}

// declareScalar registers name at the next frame slot and returns it. typ
// is "string" for 256-byte string buffers, anything else is an 8-byte
// scalar slot.
func (t *symbolTable) declareScalar(name, typ string) Symbol {
	size := scalarBytes
	if typ == "string" {
		size = stringVarBytes
	}
	t.frameSize += size
	sym := Symbol{Name: name, Offset: t.frameSize, Type: typ}
	t.syms = append(t.syms, sym)
	return sym
}

// declareArray registers a fixed-size array. Per spec.md §4.4, its base
// offset is the frame offset reached immediately after allocating all of
// its slots, so index 0 is the deepest word and the last index is the
// shallowest.
func (t *symbolTable) declareArray(name, typ string, slots int) Symbol {
	t.frameSize += scalarBytes * slots
	sym := Symbol{Name: name, Offset: t.frameSize, Type: typ, ArraySlots: slots}
	t.syms = append(t.syms, sym)
	return sym
}

// lookup finds the most recently declared symbol named name, nil if
// undeclared.
func (t *symbolTable) lookup(name string) *Symbol {
	for i := len(t.syms) - 1; i >= 0; i-- {
		if t.syms[i].Name == name {
			return &t.syms[i]
		}
	}
	return nil
}

func (t *symbolTable) count() int {
	return len(t.syms)
}
