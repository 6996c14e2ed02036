package glintc

import (
	"strings"
	"sync"
	"sync/atomic"
)

// GenericInstantiation is one monomorphized concrete type produced
// from a generic declaration and a concrete argument list (spec §3).
type GenericInstantiation struct {
	ConcreteName string
	Args         []*TypeDescriptor
	Fields       *SymbolTable
	Type         *TypeDescriptor
	refcount     int32
}

func (g *GenericInstantiation) Retain() *GenericInstantiation {
	atomic.AddInt32(&g.refcount, 1)
	return g
}

func (g *GenericInstantiation) Release() { atomic.AddInt32(&g.refcount, -1) }

// GenericStructInfo tracks one generic declaration and its live
// instantiations (spec §3).
type GenericStructInfo struct {
	Name         string
	Decl         *Node // the generic declaration node (struct or enum)
	Base         *TypeDescriptor
	TypeParams   []string
	FieldTypes   map[string]*Node // field/variant name -> declared type node, pre-substitution
	IsEnum       bool

	mu            sync.RWMutex
	instantiations map[string]*GenericInstantiation
	generating     int32 // atomic "currently generating" guard
	generation     uint64
}

// NewGenericStructInfo registers a generic declaration; typeParamCount
// equals the declared type-parameter list length and never changes
// thereafter (invariant 5).
func NewGenericStructInfo(name string, decl *Node, base *TypeDescriptor, typeParams []string, fieldTypes map[string]*Node, isEnum bool) *GenericStructInfo {
	return &GenericStructInfo{
		Name: name, Decl: decl, Base: base, TypeParams: typeParams, FieldTypes: fieldTypes, IsEnum: isEnum,
		instantiations: make(map[string]*GenericInstantiation),
	}
}

func (g *GenericStructInfo) TypeParamCount() int { return len(g.TypeParams) }

// argsKey builds the structural cache key from an argument list by
// name-wise comparison (invariant 6, spec §4.I step 2).
func argsKey(args []*TypeDescriptor) string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.typeName()
	}
	return strings.Join(names, ",")
}

// concreteName builds the monomorphic name per §4.I step 4, e.g.
// `Vec` + [i32] -> `Vec_i32`.
func concreteName(base string, args []*TypeDescriptor) string {
	var b strings.Builder
	b.WriteString(base)
	for _, a := range args {
		b.WriteByte('_')
		b.WriteString(a.typeName())
	}
	return b.String()
}

// GenericRegistry is the thread-safe, process-unit-wide store of
// monomorphized concrete types (spec §3 "Instantiation registry").
type GenericRegistry struct {
	mu               sync.RWMutex
	generics         map[string]*GenericStructInfo
	totalInstantiated uint64
}

// NewGenericRegistry returns an empty registry.
func NewGenericRegistry() *GenericRegistry {
	return &GenericRegistry{generics: make(map[string]*GenericStructInfo)}
}

// Register records a generic declaration under its name.
func (r *GenericRegistry) Register(info *GenericStructInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generics[info.Name] = info
}

// Lookup returns the GenericStructInfo for name, if registered.
func (r *GenericRegistry) Lookup(name string) (*GenericStructInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.generics[name]
	return info, ok
}

// Stats reports total instantiations performed and the number of
// distinct generic declarations registered; grounded on the teacher's
// Database revision bookkeeping (query.go), surfaced for the CLI's
// `generics` subcommand per SPEC_FULL's supplemented features.
type RegistryStats struct {
	TotalInstantiations uint64
	GenericCount        int
	LiveInstantiations  int
}

func (r *GenericRegistry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	live := 0
	for _, g := range r.generics {
		g.mu.RLock()
		live += len(g.instantiations)
		g.mu.RUnlock()
	}
	return RegistryStats{
		TotalInstantiations: atomic.LoadUint64(&r.totalInstantiated),
		GenericCount:        len(r.generics),
		LiveInstantiations:  live,
	}
}

// Instantiate implements §4.I: given a generic name and concrete type
// arguments, returns the cached instantiation if one exists, otherwise
// builds and caches a new one. Two calls with name-equal argument
// lists return the same instantiation (invariant 6).
func (r *GenericRegistry) Instantiate(a *Analyzer, name string, args []*TypeDescriptor, loc SourceLocation) (*GenericInstantiation, bool) {
	info, ok := r.Lookup(name)
	if !ok {
		a.Diagnostics.Report(UndefinedSymbol, loc, "unknown generic type `"+name+"`")
		return nil, false
	}
	if len(args) != info.TypeParamCount() {
		a.Diagnostics.Report(GenericArgMismatch, loc, "generic `"+name+"` expects "+itoa(info.TypeParamCount())+" type argument(s), got "+itoa(len(args)))
		return nil, false
	}

	key := argsKey(args)

	info.mu.RLock()
	if inst, found := info.instantiations[key]; found {
		info.mu.RUnlock()
		return inst.Retain(), true
	}
	info.mu.RUnlock()

	if !atomic.CompareAndSwapInt32(&info.generating, 0, 1) {
		// Another instantiation of the same generic is in flight;
		// spin until it either completes (re-check cache) or clears.
		for atomic.LoadInt32(&info.generating) == 1 {
		}
		info.mu.RLock()
		if inst, found := info.instantiations[key]; found {
			info.mu.RUnlock()
			return inst.Retain(), true
		}
		info.mu.RUnlock()
		atomic.StoreInt32(&info.generating, 1)
	}
	defer atomic.StoreInt32(&info.generating, 0)

	if detectDirectSelfCycle(info, key, info.TypeParams, args) {
		a.Diagnostics.Report(CyclicInstantiation, loc, "cyclic instantiation of generic `"+name+"`")
		return nil, false
	}

	cname := concreteName(name, args)
	fieldScope := NewScope(a.Global)
	ffiCompat := true
	for fieldName, typeNode := range info.FieldTypes {
		substituted := substituteType(typeNode, info.TypeParams, args, a)
		ft := a.resolveTypeNode(substituted)
		kind := SymField
		if info.IsEnum {
			kind = SymEnumVariant
		}
		fieldScope.InsertSafe(fieldName, &SymbolEntry{Name: fieldName, Kind: kind, Type: ft, Flags: SymFlagInitialized})
		if ft != nil {
			ffiCompat = ffiCompat && ft.FFICompatible
		}
	}

	var concreteType *TypeDescriptor
	if info.IsEnum {
		concreteType = Enum(cname, fieldScope, false)
	} else {
		concreteType = Struct(cname, fieldScope, false)
	}
	concreteType.FFICompatible = ffiCompat
	// Record the originating generic and its concrete arguments on the
	// instantiation's own type so call sites can recover them from
	// context (§4.G step 4) without re-deriving them from the name.
	// Retained like every other TypeDescriptor-typed field (Slice,
	// Pointer, GenericInstance, ...) so refcounts stay accurate.
	retainedArgs := make([]*TypeDescriptor, len(args))
	for i, arg := range args {
		retainedArgs[i] = arg.Retain()
	}
	concreteType.Base = info.Base.Retain()
	concreteType.TypeArgs = retainedArgs

	inst := &GenericInstantiation{ConcreteName: cname, Args: args, Fields: fieldScope, Type: concreteType, refcount: 1}

	info.mu.Lock()
	info.instantiations[key] = inst
	info.generation++
	info.mu.Unlock()

	atomic.AddUint64(&r.totalInstantiated, 1)
	return inst, true
}

// detectDirectSelfCycle reports whether, while instantiating
// info<args>, one of info's own field types (after substitution)
// syntactically denotes info<args> again with no pointer/slice/option
// indirection breaking the chain — an infinite, unconditional
// monomorphization loop (spec §4.I step 3).
func detectDirectSelfCycle(info *GenericStructInfo, key string, params []string, args []*TypeDescriptor) bool {
	for _, typeNode := range info.FieldTypes {
		if fieldMentionsKey(typeNode, info.Name, params, args, key, true) {
			return true
		}
	}
	return false
}

// fieldMentionsKey walks a declared field type node looking for a
// bare (non-indirected) recursive use of `selfName` instantiated with
// the same argsKey currently being built. `direct` stays true only
// through tuple elements and array elements; it goes false under a
// pointer, slice, option or result, and inside the type arguments of a
// named/struct/enum type.
func fieldMentionsKey(n *Node, selfName string, params []string, args []*TypeDescriptor, key string, direct bool) bool {
	if n == nil {
		return false
	}
	switch d := n.Data.(type) {
	case *NamedTypeNode:
		if direct && d.Name == selfName && syntacticArgsKey(d.TypeArgs, params, args) == key {
			return true
		}
		for _, ta := range d.TypeArgs {
			if fieldMentionsKey(ta, selfName, params, args, key, false) {
				return true
			}
		}
		return false
	case *StructTypeNode:
		if direct && d.Name == selfName && syntacticArgsKey(d.TypeArgs, params, args) == key {
			return true
		}
		for _, ta := range d.TypeArgs {
			if fieldMentionsKey(ta, selfName, params, args, key, false) {
				return true
			}
		}
		return false
	case *EnumTypeNode:
		if direct && d.Name == selfName && syntacticArgsKey(d.TypeArgs, params, args) == key {
			return true
		}
		for _, ta := range d.TypeArgs {
			if fieldMentionsKey(ta, selfName, params, args, key, false) {
				return true
			}
		}
		return false
	case *TupleTypeNode:
		for _, e := range d.Elems {
			if fieldMentionsKey(e, selfName, params, args, key, direct) {
				return true
			}
		}
		return false
	case *SliceTypeNode:
		return fieldMentionsKey(d.Elem, selfName, params, args, key, false)
	case *ArrayTypeNode:
		return fieldMentionsKey(d.Elem, selfName, params, args, key, direct)
	case *PointerTypeNode:
		return fieldMentionsKey(d.Pointee, selfName, params, args, key, false)
	case *OptionTypeNode:
		return fieldMentionsKey(d.ElemType, selfName, params, args, key, false)
	case *ResultTypeNode:
		return fieldMentionsKey(d.OkType, selfName, params, args, key, false) ||
			fieldMentionsKey(d.ErrType, selfName, params, args, key, false)
	default:
		return false
	}
}

// syntacticArgsKey renders a type-argument node list's substituted
// names the same way argsKey renders resolved descriptors, without
// requiring a full type resolution pass.
func syntacticArgsKey(nodes []*Node, params []string, args []*TypeDescriptor) string {
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = syntacticTypeName(n, params, args)
	}
	return strings.Join(names, ",")
}

func syntacticTypeName(n *Node, params []string, args []*TypeDescriptor) string {
	if n == nil {
		return "?"
	}
	if base, ok := n.Data.(*BaseTypeNode); ok {
		for i, p := range params {
			if p == base.Name && i < len(args) {
				return args[i].typeName()
			}
		}
		return base.Name
	}
	if named, ok := n.Data.(*NamedTypeNode); ok && len(named.TypeArgs) == 0 {
		for i, p := range params {
			if p == named.Name && i < len(args) {
				return args[i].typeName()
			}
		}
	}
	switch d := n.Data.(type) {
	case *NamedTypeNode:
		return d.Name
	case *StructTypeNode:
		return d.Name
	case *EnumTypeNode:
		return d.Name
	default:
		return "?"
	}
}

// substituteType performs the pure substitution of §4.I step 5: every
// occurrence of a type-parameter name within typeNode is replaced by
// the corresponding concrete argument type node; nested generics
// propagate the substitution recursively. It never mutates typeNode.
func substituteType(typeNode *Node, params []string, args []*TypeDescriptor, a *Analyzer) *Node {
	if typeNode == nil {
		return nil
	}
	indexOf := func(name string) int {
		for i, p := range params {
			if p == name {
				return i
			}
		}
		return -1
	}

	switch d := typeNode.Data.(type) {
	case *BaseTypeNode:
		if i := indexOf(d.Name); i >= 0 && i < len(args) {
			return typeDescriptorToNode(args[i], typeNode.Loc)
		}
		return typeNode
	case *NamedTypeNode:
		if i := indexOf(d.Name); i >= 0 && i < len(args) {
			return typeDescriptorToNode(args[i], typeNode.Loc)
		}
		newArgs := make([]*Node, len(d.TypeArgs))
		for i, ta := range d.TypeArgs {
			newArgs[i] = substituteType(ta, params, args, a)
		}
		return NewNode(KindNamedType, typeNode.Loc, &NamedTypeNode{Name: d.Name, TypeArgs: newArgs})
	case *StructTypeNode:
		if i := indexOf(d.Name); i >= 0 && i < len(args) {
			return typeDescriptorToNode(args[i], typeNode.Loc)
		}
		newArgs := make([]*Node, len(d.TypeArgs))
		for i, ta := range d.TypeArgs {
			newArgs[i] = substituteType(ta, params, args, a)
		}
		return NewNode(KindStructType, typeNode.Loc, &StructTypeNode{Name: d.Name, TypeArgs: newArgs})
	case *EnumTypeNode:
		if i := indexOf(d.Name); i >= 0 && i < len(args) {
			return typeDescriptorToNode(args[i], typeNode.Loc)
		}
		newArgs := make([]*Node, len(d.TypeArgs))
		for i, ta := range d.TypeArgs {
			newArgs[i] = substituteType(ta, params, args, a)
		}
		return NewNode(KindEnumType, typeNode.Loc, &EnumTypeNode{Name: d.Name, TypeArgs: newArgs})
	case *SliceTypeNode:
		return NewNode(KindSliceType, typeNode.Loc, &SliceTypeNode{Elem: substituteType(d.Elem, params, args, a)})
	case *ArrayTypeNode:
		return NewNode(KindArrayType, typeNode.Loc, &ArrayTypeNode{Elem: substituteType(d.Elem, params, args, a), Size: d.Size})
	case *PointerTypeNode:
		return NewNode(KindPointerType, typeNode.Loc, &PointerTypeNode{Pointee: substituteType(d.Pointee, params, args, a), Mutable: d.Mutable})
	case *OptionTypeNode:
		return NewNode(KindOptionType, typeNode.Loc, &OptionTypeNode{ElemType: substituteType(d.ElemType, params, args, a)})
	case *ResultTypeNode:
		return NewNode(KindResultType, typeNode.Loc, &ResultTypeNode{
			OkType: substituteType(d.OkType, params, args, a), ErrType: substituteType(d.ErrType, params, args, a)})
	case *TupleTypeNode:
		newElems := make([]*Node, len(d.Elems))
		for i, e := range d.Elems {
			newElems[i] = substituteType(e, params, args, a)
		}
		return NewNode(KindTupleType, typeNode.Loc, &TupleTypeNode{Elems: newElems})
	default:
		return typeNode
	}
}

// typeDescriptorToNode reifies a resolved TypeDescriptor back into a
// minimal type-node wrapper so substitution output can flow back
// through resolveTypeNode uniformly.
func typeDescriptorToNode(t *TypeDescriptor, loc SourceLocation) *Node {
	switch t.Category {
	case CategoryPrimitive:
		return NewNode(KindBaseType, loc, &BaseTypeNode{Name: primitiveNames[t.Primitive]})
	case CategoryStruct:
		return NewNode(KindStructType, loc, &StructTypeNode{Name: t.Name})
	case CategoryEnum:
		return NewNode(KindEnumType, loc, &EnumTypeNode{Name: t.Name})
	default:
		return NewNode(KindBaseType, loc, &BaseTypeNode{Name: t.typeName()})
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
