package glintc

import "golang.org/x/exp/constraints"

// intWidth gives each integer kind's byte width for the widening rules
// of §4.G ("arithmetic requires numeric operands... with widening rules
// for integer literals against a typed context"); signedness comes
// from isSignedInt/isUnsignedInt below.
var intWidth = map[PrimitiveKind]int{
	PrimI8: 1, PrimU8: 1,
	PrimI16: 2, PrimU16: 2,
	PrimI32: 4, PrimU32: 4,
	PrimI64: 8, PrimU64: 8, PrimUsize: 8, PrimIsize: 8,
	PrimI128: 16, PrimU128: 16,
}

func isSignedInt(k PrimitiveKind) bool {
	switch k {
	case PrimI8, PrimI16, PrimI32, PrimI64, PrimI128, PrimIsize:
		return true
	default:
		return false
	}
}

func isUnsignedInt(k PrimitiveKind) bool {
	switch k {
	case PrimU8, PrimU16, PrimU32, PrimU64, PrimU128, PrimUsize:
		return true
	default:
		return false
	}
}

func isInt(k PrimitiveKind) bool  { return isSignedInt(k) || isUnsignedInt(k) }
func isFloat(k PrimitiveKind) bool { return k == PrimF32 || k == PrimF64 }
func isNumeric(k PrimitiveKind) bool { return isInt(k) || isFloat(k) }

// widenInt reports whether a value of kind `from` may widen
// implicitly into `to` without truncation: same signedness and
// `to`'s width is at least `from`'s, using the ordered constraint
// bound supplied by golang.org/x/exp/constraints to keep the width
// comparison generic over both signed and unsigned lookups.
func widenInt[T constraints.Integer](fromWidth, toWidth T, fromSigned, toSigned bool) bool {
	if fromSigned != toSigned {
		return false
	}
	return toWidth >= fromWidth
}

// typesCompatible implements the compatibility relation referenced by
// §4.C/§4.G: identical types are always compatible; Never is
// compatible with anything (a Never-returning expression satisfies any
// expected type, per the "Control flow" rule); numeric literal widening
// follows widenInt.
func typesCompatible(expected, actual *TypeDescriptor) bool {
	if expected == nil || actual == nil {
		return true // resolution already failed and was reported elsewhere
	}
	if actual.Category == CategoryPrimitive && actual.Primitive == PrimNever {
		return true
	}
	if expected.Category != actual.Category {
		return false
	}
	switch expected.Category {
	case CategoryPrimitive:
		if expected.Primitive == actual.Primitive {
			return true
		}
		if isInt(expected.Primitive) && isInt(actual.Primitive) {
			return widenInt(intWidth[actual.Primitive], intWidth[expected.Primitive], isSignedInt(actual.Primitive), isSignedInt(expected.Primitive))
		}
		if isFloat(expected.Primitive) && isFloat(actual.Primitive) {
			return expected.Primitive == PrimF64 && actual.Primitive == PrimF32
		}
		return false
	case CategoryStruct, CategoryEnum:
		return expected.Name == actual.Name
	case CategorySlice, CategoryArray, CategoryPointer, CategoryTaskHandle:
		return typesCompatible(expected.Elem, actual.Elem)
	case CategoryTuple:
		if len(expected.Elems) != len(actual.Elems) {
			return false
		}
		for i := range expected.Elems {
			if !typesCompatible(expected.Elems[i], actual.Elems[i]) {
				return false
			}
		}
		return true
	case CategoryGenericInstance:
		if expected.Base.Name != actual.Base.Name || len(expected.TypeArgs) != len(actual.TypeArgs) {
			return false
		}
		for i := range expected.TypeArgs {
			if !typesCompatible(expected.TypeArgs[i], actual.TypeArgs[i]) {
				return false
			}
		}
		return true
	case CategoryFunction:
		if len(expected.Params) != len(actual.Params) || !typesCompatible(expected.Return, actual.Return) {
			return false
		}
		for i := range expected.Params {
			if !typesCompatible(expected.Params[i], actual.Params[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// binaryResultType applies §4.G's binary-operator typing rule:
// comparisons yield bool; arithmetic requires matching numeric
// operand kinds (after widening) and yields the wider operand's type.
func binaryResultType(op string, left, right *TypeDescriptor) (*TypeDescriptor, bool) {
	if left == nil || right == nil {
		return nil, false
	}
	switch op {
	case "==", "!=", "<", "<=", ">", ">=":
		if left.Category != CategoryPrimitive || right.Category != CategoryPrimitive {
			if typesCompatible(left, right) || typesCompatible(right, left) {
				return Primitive(PrimBool), true
			}
			return nil, false
		}
		if typesCompatible(left, right) || typesCompatible(right, left) {
			return Primitive(PrimBool), true
		}
		return nil, false
	case "&&", "||":
		if left.Category == CategoryPrimitive && left.Primitive == PrimBool &&
			right.Category == CategoryPrimitive && right.Primitive == PrimBool {
			return Primitive(PrimBool), true
		}
		return nil, false
	default: // +, -, *, /, %, bitwise
		if left.Category != CategoryPrimitive || right.Category != CategoryPrimitive || !isNumeric(left.Primitive) || !isNumeric(right.Primitive) {
			return nil, false
		}
		if typesCompatible(left, right) {
			return left, true
		}
		if typesCompatible(right, left) {
			return right, true
		}
		return nil, false
	}
}

// castAllowed implements §4.G "Cast": integer<->integer,
// integer<->float, pointer<->pointer, pointer<->integer, array->pointer
// decay, and identical types.
func castAllowed(from, to *TypeDescriptor) bool {
	if from == nil || to == nil {
		return false
	}
	if from.Category == to.Category && from.typeName() == to.typeName() {
		return true
	}
	if from.Category == CategoryPrimitive && to.Category == CategoryPrimitive {
		if from.Primitive == to.Primitive {
			return true
		}
		if isNumeric(from.Primitive) && isNumeric(to.Primitive) {
			return true
		}
		return false
	}
	if from.Category == CategoryPointer && to.Category == CategoryPointer {
		return true
	}
	if from.Category == CategoryPointer && to.Category == CategoryPrimitive && isInt(to.Primitive) {
		return true
	}
	if from.Category == CategoryPrimitive && isInt(from.Primitive) && to.Category == CategoryPointer {
		return true
	}
	if from.Category == CategoryArray && to.Category == CategoryPointer {
		return typesCompatible(to.Elem, from.Elem)
	}
	return false
}
