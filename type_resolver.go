package glintc

// resolveTypeNode turns a parsed type-reference node into its
// TypeDescriptor, consulting the current scope for every name that is
// not itself a structural type (spec §4.G step 3: "the type-node
// resolver distinguishes STRUCT_TYPE from ENUM_TYPE by consulting the
// symbol table, not by syntax"). It reports UndefinedSymbol/InvalidType
// diagnostics and returns nil on failure rather than panicking, so
// callers can keep analyzing sibling declarations (§7).
func (a *Analyzer) resolveTypeNode(n *Node) *TypeDescriptor {
	if n == nil {
		return nil
	}
	switch d := n.Data.(type) {
	case *BaseTypeNode:
		return a.resolveNamedType(d.Name, nil, n.Loc)
	case *NamedTypeNode:
		return a.resolveNamedType(d.Name, d.TypeArgs, n.Loc)
	case *StructTypeNode:
		return a.resolveNamedType(d.Name, d.TypeArgs, n.Loc)
	case *EnumTypeNode:
		return a.resolveNamedType(d.Name, d.TypeArgs, n.Loc)
	case *SliceTypeNode:
		elem := a.resolveTypeNode(d.Elem)
		if elem == nil {
			return nil
		}
		return Slice(elem)
	case *ArrayTypeNode:
		elem := a.resolveTypeNode(d.Elem)
		if elem == nil {
			return nil
		}
		return Array(elem, d.Size)
	case *PointerTypeNode:
		pointee := a.resolveTypeNode(d.Pointee)
		if pointee == nil {
			return nil
		}
		return Pointer(pointee, d.Mutable)
	case *ResultTypeNode:
		ok := a.resolveTypeNode(d.OkType)
		errT := a.resolveTypeNode(d.ErrType)
		if ok == nil || errT == nil {
			return nil
		}
		inst, found := a.Generics.Instantiate(a, "Result", []*TypeDescriptor{ok, errT}, n.Loc)
		if !found {
			return nil
		}
		return inst.Type
	case *OptionTypeNode:
		elem := a.resolveTypeNode(d.ElemType)
		if elem == nil {
			return nil
		}
		inst, found := a.Generics.Instantiate(a, "Option", []*TypeDescriptor{elem}, n.Loc)
		if !found {
			return nil
		}
		return inst.Type
	case *TupleTypeNode:
		elems := make([]*TypeDescriptor, len(d.Elems))
		for i, e := range d.Elems {
			et := a.resolveTypeNode(e)
			if et == nil {
				return nil
			}
			elems[i] = et
		}
		return Tuple(elems)
	case *TaskHandleTypeNode:
		result := a.resolveTypeNode(d.ResultType)
		if result == nil {
			return nil
		}
		return TaskHandle(result)
	default:
		a.Diagnostics.Report(InvalidType, n.Loc, "not a type reference")
		return nil
	}
}

// resolveNamedType looks name up in the current scope, disambiguating
// a plain primitive/alias, an already-monomorphized concrete type, a
// generic declaration awaiting instantiation, or a bare struct/enum
// (spec §4.G step 3, §4.I).
func (a *Analyzer) resolveNamedType(name string, typeArgNodes []*Node, loc SourceLocation) *TypeDescriptor {
	entry, ok := a.Current.LookupSafe(name)
	if !ok {
		a.Diagnostics.Report(UndefinedSymbol, loc, "undefined type `"+name+"`")
		return nil
	}
	if entry.Kind != SymType {
		a.Diagnostics.Report(InvalidType, loc, "`"+name+"` is not a type")
		return nil
	}
	entry.MarkUsed()

	if entry.GenericParamN == 0 {
		if len(typeArgNodes) != 0 {
			a.Diagnostics.Report(GenericArgMismatch, loc, "`"+name+"` is not generic")
			return nil
		}
		return entry.Type
	}

	args := make([]*TypeDescriptor, len(typeArgNodes))
	for i, tn := range typeArgNodes {
		at := a.resolveTypeNode(tn)
		if at == nil {
			return nil
		}
		args[i] = at
	}
	inst, found := a.Generics.Instantiate(a, name, args, loc)
	if !found {
		return nil
	}
	return inst.Type
}
