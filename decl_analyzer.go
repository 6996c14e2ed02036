package glintc

// analyzeImport registers the module alias carried by an import
// declaration; no transitive resolution is performed in the core
// (spec §4.F "Import").
func (a *Analyzer) analyzeImport(decl *Node) {
	imp, ok := decl.Data.(*ImportDecl)
	if !ok {
		return
	}
	alias := imp.Alias
	if alias == "" {
		alias = imp.Path
	}
	// The imported module's own symbol table is produced by a
	// separate compilation unit pass; the core only records the
	// binding slot so later lookups through the alias chain succeed
	// once it is populated.
	a.Global.AddAlias(alias, imp.Path, NewScope(nil))
}

// analyzeDecl dispatches a single top-level declaration to its
// kind-specific handler (spec §4.F).
func (a *Analyzer) analyzeDecl(decl *Node) {
	decl.Flags = decl.Flags.Set(FlagValidated)
	switch d := decl.Data.(type) {
	case *FunctionDecl:
		a.analyzeFunctionDecl(decl, d)
	case *StructDecl:
		a.analyzeStructDecl(decl, d)
	case *EnumDecl:
		a.analyzeEnumDecl(decl, d)
	case *ExternDecl:
		a.analyzeExternDecl(decl, d)
	case *ConstDecl:
		a.analyzeConstDecl(decl, d)
	case *ImplBlock:
		a.analyzeImplBlock(decl, d)
	default:
		a.Diagnostics.Report(InvalidOperation, decl.Loc, "unexpected top-level declaration")
	}
}

// analyzeParamList inserts each parameter into scope as a PARAMETER
// symbol, rejecting duplicate names within the list (spec §4.F
// "Function": "each parameter name must be unique inside its own
// list").
func (a *Analyzer) analyzeParamList(scope *SymbolTable, params *NodeList) []*TypeDescriptor {
	types := make([]*TypeDescriptor, 0, params.Len())
	for _, pn := range params.Slice() {
		p, ok := pn.Data.(*Param)
		if !ok {
			continue
		}
		pt := a.resolveTypeNode(p.Type)
		types = append(types, pt)
		a.checkOwnershipTag(p.Ownership)
		entry := &SymbolEntry{
			Name: p.Name, Kind: SymParameter, Type: pt, Decl: pn,
			Flags: SymFlagInitialized, Visibility: VisibilityPrivate,
		}
		if p.Mutable {
			entry.Flags |= SymFlagMutable
		}
		if !scope.InsertSafe(p.Name, entry) {
			a.Diagnostics.Report(DuplicateSymbol, pn.Loc, "duplicate parameter `"+p.Name+"`")
		}
	}
	return types
}

// analyzeFunctionDecl implements §4.F "Function": record the
// signature, enter a fresh parameter scope, analyze the body in it,
// and pop the scope on every exit path.
func (a *Analyzer) analyzeFunctionDecl(decl *Node, f *FunctionDecl) {
	retType := a.resolveTypeNode(f.ReturnType)
	if retType == nil {
		retType = Primitive(PrimVoid)
	}

	scope := a.pushScope()
	defer a.popScope()

	paramTypes := a.analyzeParamList(scope, f.Params)
	fnType := Function(paramTypes, retType, false, "")

	if !a.Global.InsertSafe(f.Name, &SymbolEntry{
		Name: f.Name, Kind: SymFunction, Type: fnType, Decl: decl,
		Flags: flagsFor(f.Visibility), Visibility: f.Visibility,
	}) {
		a.Diagnostics.Report(DuplicateSymbol, decl.Loc, "duplicate symbol `"+f.Name+"`")
	}

	prevReturn := a.currentReturnType
	a.currentReturnType = retType
	defer func() { a.currentReturnType = prevReturn }()

	a.analyzeStmt(f.Body)
}

// analyzeStructDecl implements §4.F "Struct": record the type with
// its generic parameters, inserting fields into a dedicated member
// scope; `generic` is true iff type_param_count > 0.
func (a *Analyzer) analyzeStructDecl(decl *Node, s *StructDecl) {
	fieldScope := NewScope(nil)
	fieldTypeNodes := make(map[string]*Node, s.Fields.Len())
	isGeneric := len(s.TypeParams) > 0

	if isGeneric {
		// Generic declarations defer field-type resolution to
		// instantiation time (§4.I step 5): register the raw,
		// unsubstituted type nodes and leave entries untyped until a
		// concrete instantiation asks for them.
		for _, fn := range s.Fields.Slice() {
			fd, ok := fn.Data.(*FieldDecl)
			if !ok {
				continue
			}
			fieldTypeNodes[fd.Name] = fd.Type
			fieldScope.InsertSafe(fd.Name, &SymbolEntry{
				Name: fd.Name, Kind: SymField, Decl: fn,
				Flags: SymFlagInitialized, Visibility: fd.Visibility,
			})
		}
	} else {
		for _, fn := range s.Fields.Slice() {
			fd, ok := fn.Data.(*FieldDecl)
			if !ok {
				continue
			}
			ft := a.resolveTypeNode(fd.Type)
			fieldScope.InsertSafe(fd.Name, &SymbolEntry{
				Name: fd.Name, Kind: SymField, Type: ft, Decl: fn,
				Flags: SymFlagInitialized, Visibility: fd.Visibility,
			})
		}
	}

	structType := Struct(s.Name, fieldScope, isGeneric)
	if !a.Global.InsertSafe(s.Name, &SymbolEntry{
		Name: s.Name, Kind: SymType, Type: structType, Decl: decl,
		Flags: flagsFor(s.Visibility), Visibility: s.Visibility, GenericParamN: len(s.TypeParams),
	}) {
		a.Diagnostics.Report(DuplicateSymbol, decl.Loc, "duplicate symbol `"+s.Name+"`")
		return
	}
	if isGeneric {
		a.Generics.Register(NewGenericStructInfo(s.Name, decl, structType, s.TypeParams, fieldTypeNodes, false))
	}
}

// analyzeEnumDecl mirrors analyzeStructDecl for enums (spec §4.F
// "Struct / enum").
func (a *Analyzer) analyzeEnumDecl(decl *Node, e *EnumDecl) {
	variantScope := NewScope(nil)
	variantTypeNodes := make(map[string]*Node, e.Variants.Len())
	isGeneric := len(e.TypeParams) > 0

	for _, vn := range e.Variants.Slice() {
		v, ok := vn.Data.(*EnumVariant)
		if !ok {
			continue
		}
		if isGeneric {
			variantTypeNodes[v.Name] = v.AssocType
			variantScope.InsertSafe(v.Name, &SymbolEntry{Name: v.Name, Kind: SymEnumVariant, Decl: vn})
			continue
		}
		var vt *TypeDescriptor
		if v.AssocType != nil {
			vt = a.resolveTypeNode(v.AssocType)
		}
		variantScope.InsertSafe(v.Name, &SymbolEntry{Name: v.Name, Kind: SymEnumVariant, Type: vt, Decl: vn})
	}

	enumType := Enum(e.Name, variantScope, isGeneric)
	if !a.Global.InsertSafe(e.Name, &SymbolEntry{
		Name: e.Name, Kind: SymType, Type: enumType, Decl: decl,
		Flags: flagsFor(e.Visibility), Visibility: e.Visibility, GenericParamN: len(e.TypeParams),
	}) {
		a.Diagnostics.Report(DuplicateSymbol, decl.Loc, "duplicate symbol `"+e.Name+"`")
		return
	}
	if isGeneric {
		a.Generics.Register(NewGenericStructInfo(e.Name, decl, enumType, e.TypeParams, variantTypeNodes, true))
	}
}

// analyzeExternDecl implements §4.F "Extern" + §4.H rules 1-3: `gc`
// is rejected, and every pointer parameter must carry a transfer
// annotation.
func (a *Analyzer) analyzeExternDecl(decl *Node, e *ExternDecl) {
	abi := e.Ownership
	if abi != nil {
		tag, _ := abi.Data.(*OwnershipTagNode)
		if tag != nil && tag.Tag == "gc" {
			a.Diagnostics.Report(OwnershipFFIBoundary, decl.Loc, "extern `"+e.Name+"` may not use ownership tag `gc`")
		} else if tag != nil && tag.Tag != "c" && tag.Tag != "pinned" {
			a.Diagnostics.Report(InvalidAnnotation, decl.Loc, "unknown ownership tag `"+tag.Tag+"`")
		}
	}

	scope := NewScope(a.Global)
	paramTypes := make([]*TypeDescriptor, 0, e.Params.Len())
	for _, pn := range e.Params.Slice() {
		p, ok := pn.Data.(*Param)
		if !ok {
			continue
		}
		pt := a.resolveTypeNode(p.Type)
		paramTypes = append(paramTypes, pt)
		if pt != nil && pt.Category == CategoryPointer && p.Transfer == nil {
			a.Diagnostics.Report(OwnershipFFIBoundary, pn.Loc, "extern pointer parameter `"+p.Name+"` requires a transfer annotation")
		}
		scope.InsertSafe(p.Name, &SymbolEntry{Name: p.Name, Kind: SymParameter, Type: pt, Decl: pn, Flags: SymFlagInitialized})
	}

	retType := a.resolveTypeNode(e.ReturnType)
	if retType == nil {
		retType = Primitive(PrimVoid)
	}
	fnType := Function(paramTypes, retType, true, e.ABI)
	if !a.Global.InsertSafe(e.Name, &SymbolEntry{
		Name: e.Name, Kind: SymFunction, Type: fnType, Decl: decl,
		Flags: SymFlagExported, Visibility: VisibilityPublic,
	}) {
		a.Diagnostics.Report(DuplicateSymbol, decl.Loc, "duplicate symbol `"+e.Name+"`")
	}
}

// analyzeConstDecl implements §4.F "Const": a declared type and a
// compile-time-evaluable initializer are both mandatory.
func (a *Analyzer) analyzeConstDecl(decl *Node, c *ConstDecl) {
	if c.Type == nil {
		a.Diagnostics.Report(InvalidOperation, decl.Loc, "const `"+c.Name+"` requires a declared type")
		return
	}
	declaredType := a.resolveTypeNode(c.Type)
	if c.Init == nil {
		a.Diagnostics.Report(InvalidOperation, decl.Loc, "const `"+c.Name+"` requires an initializer")
		return
	}
	value, ok := a.evalConstExpr(c.Init)
	if !ok {
		a.Diagnostics.Report(TypeInferenceFailed, c.Init.Loc, "const `"+c.Name+"` initializer is not compile-time-evaluable")
		return
	}
	valueType := value.Type()
	if declaredType != nil && declaredType.Category == CategoryPrimitive {
		// A folded integer or float takes the declared numeric kind.
		if (value.Kind == ConstInt && isInt(declaredType.Primitive)) || (value.Kind == ConstFloat && isFloat(declaredType.Primitive)) {
			valueType = declaredType
		}
	}
	if declaredType != nil && !typesCompatible(declaredType, valueType) {
		a.Diagnostics.Report(TypeMismatch, decl.Loc, "const `"+c.Name+"` declared as "+declaredType.typeName()+" but initializer is "+valueType.typeName())
	}
	if !a.Global.InsertSafe(c.Name, &SymbolEntry{
		Name: c.Name, Kind: SymConst, Type: declaredType, Decl: decl,
		Flags: flagsFor(c.Visibility) | SymFlagInitialized, Visibility: c.Visibility, ConstValue: value,
	}) {
		a.Diagnostics.Report(DuplicateSymbol, decl.Loc, "duplicate symbol `"+c.Name+"`")
	}
}

// analyzeImplBlock implements §4.F "Impl block / method": methods are
// registered under the owning type's member scope; instance methods
// carry a leading `self` parameter, associated methods do not.
func (a *Analyzer) analyzeImplBlock(decl *Node, i *ImplBlock) {
	targetType := a.resolveTypeNode(i.TargetType)
	if targetType == nil || targetType.Fields == nil {
		a.Diagnostics.Report(InvalidType, decl.Loc, "impl target is not a struct or enum")
		return
	}

	for _, mn := range i.Methods.Slice() {
		m, ok := mn.Data.(*MethodDecl)
		if !ok {
			continue
		}
		scope := a.pushScope()
		if m.IsInstance {
			scope.InsertSafe("self", &SymbolEntry{
				Name: "self", Kind: SymParameter, Type: Pointer(targetType, true),
				Flags: SymFlagInitialized, Visibility: VisibilityPrivate,
			})
		}
		paramTypes := a.analyzeParamList(scope, m.Params)
		retType := a.resolveTypeNode(m.ReturnType)
		if retType == nil {
			retType = Primitive(PrimVoid)
		}

		prevReturn := a.currentReturnType
		a.currentReturnType = retType
		a.analyzeStmt(m.Body)
		a.currentReturnType = prevReturn
		a.popScope()

		methodType := Function(paramTypes, retType, false, "")
		qualified := targetType.Name + "." + m.Name
		if !targetType.Fields.InsertSafe(m.Name, &SymbolEntry{
			Name: m.Name, Kind: SymMethod, Type: methodType, Decl: mn,
			Flags: flagsFor(m.Visibility), Visibility: m.Visibility, IsInstanceMethod: m.IsInstance,
		}) {
			a.Diagnostics.Report(DuplicateSymbol, mn.Loc, "duplicate method `"+qualified+"`")
		}
	}
}

func flagsFor(v Visibility) SymbolFlags {
	if v == VisibilityPublic {
		return SymFlagExported
	}
	return 0
}
