package glintc

import "sync/atomic"

// TypeInfoCategory mirrors TypeCategory but is the stable, read-only
// projection attached to AST nodes for downstream consumers (spec
// §4.J); it is derived from the descriptor's discriminant, never from
// name comparison, so aliases like `usize` classify correctly.
type TypeInfoCategory = TypeCategory

var typeInfoIDCounter uint64

func nextTypeInfoID() uint64 { return atomic.AddUint64(&typeInfoIDCounter, 1) }

// TypeInfo is the stable projection of a TypeDescriptor attached to an
// AST node. It carries a monotonic id and is immutable for the
// lifetime of the node it's attached to (invariant 7, §3).
type TypeInfo struct {
	ID       uint64
	Category TypeInfoCategory

	PrimitiveKind PrimitiveKind
	Name          string
	Fields        []TypeInfoField // substituted, collected via symbol-table iteration
	Elem          *TypeInfo
	ArraySize     int // also used for array-as-slice-shaped projection's element count
	PtrMutable    bool
	Params        []*TypeInfo
	Return        *TypeInfo
	Elems         []*TypeInfo // tuple elements, ordered

	Size          int
	Align         int
	FFICompatible bool

	refcount int32
	source   *TypeDescriptor
}

// TypeInfoField is one field/variant entry collected from a struct or
// enum's (possibly generic-instantiated) field symbol table.
type TypeInfoField struct {
	Name string
	Type *TypeInfo
}

func (t *TypeInfo) retain() {
	if t != nil {
		atomic.AddInt32(&t.refcount, 1)
	}
}

func (t *TypeInfo) release() {
	if t != nil {
		atomic.AddInt32(&t.refcount, -1)
	}
}

// NewTypeInfo projects a TypeDescriptor into a fresh, stable TypeInfo.
// Generic instances project to their base's category (e.g. struct)
// with fully-substituted fields; arrays project to slice-shaped
// TypeInfo with the element count occupying the size field.
func NewTypeInfo(t *TypeDescriptor) *TypeInfo {
	if t == nil {
		return nil
	}
	ti := &TypeInfo{
		ID: nextTypeInfoID(), Category: t.Category, Size: t.Size, Align: t.Align,
		FFICompatible: t.FFICompatible, refcount: 0, source: t,
	}
	switch t.Category {
	case CategoryPrimitive:
		ti.PrimitiveKind = t.Primitive
		ti.Name = primitiveNames[t.Primitive]
	case CategoryStruct:
		ti.Name = t.Name
		ti.Fields = collectFields(t.Fields)
	case CategoryEnum:
		ti.Name = t.Name
		ti.Fields = collectFields(t.Fields)
	case CategorySlice:
		ti.Elem = NewTypeInfo(t.Elem)
	case CategoryArray:
		ti.Category = CategorySlice // array projects to slice-shaped TypeInfo
		ti.Elem = NewTypeInfo(t.Elem)
		ti.ArraySize = t.ArraySize
		ti.Size = t.ArraySize
	case CategoryPointer:
		ti.Elem = NewTypeInfo(t.Elem)
		ti.PtrMutable = t.PtrMutable
	case CategoryFunction:
		ti.Params = make([]*TypeInfo, len(t.Params))
		for i, p := range t.Params {
			ti.Params[i] = NewTypeInfo(p)
		}
		ti.Return = NewTypeInfo(t.Return)
	case CategoryTuple:
		ti.Elems = make([]*TypeInfo, len(t.Elems))
		for i, e := range t.Elems {
			ti.Elems[i] = NewTypeInfo(e)
		}
	case CategoryGenericInstance:
		ti.Category = t.Base.Category
		ti.Name = t.typeName()
		if t.Base.Category == CategoryStruct || t.Base.Category == CategoryEnum {
			// The generic engine builds a concrete struct/enum
			// descriptor for the instantiation itself (generics.go);
			// by the time TypeInfo projects it, Fields is already the
			// substituted concrete field table living on `t` itself
			// when it is the instantiation's own Type, or on the base
			// otherwise.
			src := t
			if src.Fields == nil {
				src = t.Base
			}
			ti.Fields = collectFields(src.Fields)
		}
	case CategoryTaskHandle:
		ti.Elem = NewTypeInfo(t.Elem)
	}
	return ti
}

func collectFields(table *SymbolTable) []TypeInfoField {
	if table == nil {
		return nil
	}
	var fields []TypeInfoField
	table.IterateSorted(func(name string, e *SymbolEntry) bool {
		fields = append(fields, TypeInfoField{Name: name, Type: NewTypeInfo(e.Type)})
		return true
	})
	return fields
}
