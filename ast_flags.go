package glintc

// NodeFlags packs the small set of boolean facts the analyzer tracks
// per node into a single machine word (spec §3, §9 "atomic flags on a
// bitfield").
type NodeFlags uint8

const (
	FlagValidated NodeFlags = 1 << iota
	FlagTypeChecked
	FlagConstantExpr
	FlagHasSideEffects
	FlagIsLvalue
	FlagIsMutable
)

func (f NodeFlags) Has(bit NodeFlags) bool { return f&bit != 0 }
func (f NodeFlags) Set(bit NodeFlags) NodeFlags  { return f | bit }
func (f NodeFlags) Clear(bit NodeFlags) NodeFlags { return f &^ bit }
