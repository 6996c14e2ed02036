package glintc

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// TypeCategory is the discriminant for TypeDescriptor (spec §3).
type TypeCategory int

const (
	CategoryPrimitive TypeCategory = iota
	CategoryStruct
	CategoryEnum
	CategorySlice
	CategoryArray
	CategoryPointer
	CategoryFunction
	CategoryTuple
	CategoryGenericInstance
	CategoryTaskHandle
)

// PrimitiveKind enumerates the fixed primitive set of §3.
type PrimitiveKind int

const (
	PrimVoid PrimitiveKind = iota
	PrimBool
	PrimI8
	PrimI16
	PrimI32
	PrimI64
	PrimI128
	PrimU8
	PrimU16
	PrimU32
	PrimU64
	PrimU128
	PrimUsize
	PrimIsize
	PrimF32
	PrimF64
	PrimChar
	PrimString
	PrimNever
)

var primitiveNames = map[PrimitiveKind]string{
	PrimVoid: "void", PrimBool: "bool", PrimI8: "i8", PrimI16: "i16", PrimI32: "i32",
	PrimI64: "i64", PrimI128: "i128", PrimU8: "u8", PrimU16: "u16", PrimU32: "u32",
	PrimU64: "u64", PrimU128: "u128", PrimUsize: "usize", PrimIsize: "isize",
	PrimF32: "f32", PrimF64: "f64", PrimChar: "char", PrimString: "string", PrimNever: "Never",
}

// primitiveSizes maps each primitive to its size/alignment in bytes on
// a 64-bit target, matching the natural machine alignment rule of §4.C.
var primitiveSizes = map[PrimitiveKind]int{
	PrimVoid: 0, PrimBool: 1, PrimI8: 1, PrimI16: 2, PrimI32: 4, PrimI64: 8, PrimI128: 16,
	PrimU8: 1, PrimU16: 2, PrimU32: 4, PrimU64: 8, PrimU128: 16,
	PrimUsize: 8, PrimIsize: 8, PrimF32: 4, PrimF64: 8, PrimChar: 4, PrimString: 16, PrimNever: 0,
}

const pointerSize = 8

// TypeDescriptor is the shared, reference-counted internal
// representation of a type (spec §3). Primitive descriptors are
// process-wide singletons and are never released to zero.
type TypeDescriptor struct {
	Category TypeCategory
	refcount int32
	singleton bool

	// CategoryPrimitive
	Primitive PrimitiveKind

	// CategoryStruct / CategoryEnum
	Name    string
	Fields  *SymbolTable // struct fields, or enum variants
	Generic bool

	// CategorySlice / CategoryArray / CategoryPointer / CategoryTaskHandle
	Elem        *TypeDescriptor
	ArraySize   int
	PtrMutable  bool

	// CategoryFunction
	Params     []*TypeDescriptor
	Return     *TypeDescriptor
	Extern     bool
	FFIAnnot   string

	// CategoryTuple
	Elems []*TypeDescriptor

	// CategoryGenericInstance
	Base     *TypeDescriptor
	TypeArgs []*TypeDescriptor

	Size          int
	Align         int
	FFICompatible bool
	Const         bool
}

var primitiveSingletons = map[PrimitiveKind]*TypeDescriptor{}

func init() {
	for k := range primitiveNames {
		primitiveSingletons[k] = &TypeDescriptor{
			Category:      CategoryPrimitive,
			Primitive:     k,
			singleton:     true,
			Size:          primitiveSizes[k],
			Align:         primitiveSizes[k],
			FFICompatible: k != PrimString,
			Const:         true,
		}
		if primitiveSingletons[k].Align == 0 && k != PrimVoid && k != PrimNever {
			primitiveSingletons[k].Align = 1
		}
	}
	// string is FFI-compatible in the "pointer to bytes" sense used by
	// the ownership validator (§4.C/§4.H): it is a 2-word slice-like
	// value, which is itself representable across the FFI boundary.
	primitiveSingletons[PrimString].FFICompatible = true
}

// Primitive returns the process-wide singleton descriptor for kind.
// Per invariant 2 of §3, primitive descriptors are never freed: Retain
// and Release are no-ops on them.
func Primitive(kind PrimitiveKind) *TypeDescriptor { return primitiveSingletons[kind] }

func (t *TypeDescriptor) Retain() *TypeDescriptor {
	if t == nil || t.singleton {
		return t
	}
	atomic.AddInt32(&t.refcount, 1)
	return t
}

func (t *TypeDescriptor) Release() {
	if t == nil || t.singleton {
		return
	}
	atomic.AddInt32(&t.refcount, -1)
}

// Slice builds a `[]elem` descriptor: a fat pointer, two
// machine words wide.
func Slice(elem *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{
		Category: CategorySlice, refcount: 1, Elem: elem.Retain(),
		Size: pointerSize * 2, Align: pointerSize, FFICompatible: elem.FFICompatible,
	}
}

// Array builds a `[n]elem` descriptor; size is element size × count.
func Array(elem *TypeDescriptor, n int) *TypeDescriptor {
	return &TypeDescriptor{
		Category: CategoryArray, refcount: 1, Elem: elem.Retain(), ArraySize: n,
		Size: elem.Size * n, Align: elem.Align, FFICompatible: elem.FFICompatible,
	}
}

// Pointer builds a `*T`/`*mut T` descriptor; pointers are always
// pointer-sized regardless of pointee.
func Pointer(pointee *TypeDescriptor, mutable bool) *TypeDescriptor {
	return &TypeDescriptor{
		Category: CategoryPointer, refcount: 1, Elem: pointee.Retain(), PtrMutable: mutable,
		Size: pointerSize, Align: pointerSize, FFICompatible: pointee.FFICompatible,
	}
}

// Tuple builds an ordered-element tuple descriptor.
func Tuple(elems []*TypeDescriptor) *TypeDescriptor {
	size, align := 0, 1
	compat := true
	retained := make([]*TypeDescriptor, len(elems))
	for i, e := range elems {
		retained[i] = e.Retain()
		size += e.Size
		if e.Align > align {
			align = e.Align
		}
		compat = compat && e.FFICompatible
	}
	return &TypeDescriptor{Category: CategoryTuple, refcount: 1, Elems: retained, Size: size, Align: align, FFICompatible: compat}
}

// Struct builds a named struct descriptor over the given field symbol
// table; size/alignment are computed by summing/maxing field types.
func Struct(name string, fields *SymbolTable, generic bool) *TypeDescriptor {
	size, align := 0, 1
	compat := true
	fields.Iterate(func(_ string, e *SymbolEntry) bool {
		if e.Type == nil {
			return true
		}
		size += e.Type.Size
		if e.Type.Align > align {
			align = e.Type.Align
		}
		compat = compat && e.Type.FFICompatible
		return true
	})
	return &TypeDescriptor{
		Category: CategoryStruct, refcount: 1, Name: name, Fields: fields, Generic: generic,
		Size: size, Align: align, FFICompatible: compat,
	}
}

// Enum builds a named enum descriptor; its size is the size of the
// largest variant's associated type plus a tag word, and it is built
// FFI-incompatible (enums with payloads have no fixed C layout here);
// the generic engine sets the flag itself on instantiated enums.
func Enum(name string, variants *SymbolTable, generic bool) *TypeDescriptor {
	size, align := 8, 8 // tag word
	variants.Iterate(func(_ string, e *SymbolEntry) bool {
		if e.Type != nil && e.Type.Size+8 > size {
			size = e.Type.Size + 8
		}
		if e.Type != nil && e.Type.Align > align {
			align = e.Type.Align
		}
		return true
	})
	return &TypeDescriptor{
		Category: CategoryEnum, refcount: 1, Name: name, Fields: variants, Generic: generic,
		Size: size, Align: align, FFICompatible: false,
	}
}

// Function builds a function-type descriptor.
func Function(params []*TypeDescriptor, ret *TypeDescriptor, extern bool, ffiAnnot string) *TypeDescriptor {
	retained := make([]*TypeDescriptor, len(params))
	for i, p := range params {
		retained[i] = p.Retain()
	}
	return &TypeDescriptor{
		Category: CategoryFunction, refcount: 1, Params: retained, Return: ret.Retain(),
		Extern: extern, FFIAnnot: ffiAnnot, Size: pointerSize, Align: pointerSize,
	}
}

// TaskHandle builds the `TaskHandle<T>` descriptor produced by
// `spawn_with_handle`.
func TaskHandle(result *TypeDescriptor) *TypeDescriptor {
	return &TypeDescriptor{Category: CategoryTaskHandle, refcount: 1, Elem: result.Retain(), Size: pointerSize, Align: pointerSize}
}

// GenericInstance builds a `Base<Args...>` descriptor. Callers
// normally obtain these through GenericRegistry.Instantiate rather
// than calling this directly.
func GenericInstance(base *TypeDescriptor, args []*TypeDescriptor) *TypeDescriptor {
	retained := make([]*TypeDescriptor, len(args))
	compat := true
	for i, a := range args {
		retained[i] = a.Retain()
		compat = compat && a.FFICompatible
	}
	return &TypeDescriptor{
		Category: CategoryGenericInstance, refcount: 1, Base: base.Retain(), TypeArgs: retained,
		Size: base.Size, Align: base.Align, FFICompatible: compat,
	}
}

// typeName renders a human-readable, stable type name; generic
// instances render using the same naming scheme as
// GenericStructInfo's concrete names (spec §4.I step 4).
func (t *TypeDescriptor) typeName() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Category {
	case CategoryPrimitive:
		return primitiveNames[t.Primitive]
	case CategoryStruct, CategoryEnum:
		return t.Name
	case CategorySlice:
		return "[]" + t.Elem.typeName()
	case CategoryArray:
		return fmt.Sprintf("[%d]%s", t.ArraySize, t.Elem.typeName())
	case CategoryPointer:
		if t.PtrMutable {
			return "*mut " + t.Elem.typeName()
		}
		return "*const " + t.Elem.typeName()
	case CategoryTuple:
		parts := make([]string, len(t.Elems))
		for i, e := range t.Elems {
			parts[i] = e.typeName()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case CategoryFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.typeName()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Return.typeName())
	case CategoryGenericInstance:
		parts := make([]string, len(t.TypeArgs))
		for i, a := range t.TypeArgs {
			parts[i] = a.typeName()
		}
		return t.Base.typeName() + "_" + strings.Join(parts, "_")
	case CategoryTaskHandle:
		return "TaskHandle<" + t.Elem.typeName() + ">"
	default:
		return "?"
	}
}

func (t *TypeDescriptor) String() string { return t.typeName() }
