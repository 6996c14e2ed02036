package glintc

// RegisterBuiltins populates the global scope with every primitive,
// alias, predeclared function, and built-in generic enum described in
// spec §4.E / §6. Every entry is marked SymFlagPredeclared.
func RegisterBuiltins(a *Analyzer) {
	registerPrimitives(a)
	registerAliases(a)
	registerPredeclaredFunctions(a)
	registerOptionResult(a)
}

func registerPrimitives(a *Analyzer) {
	for kind, name := range primitiveNames {
		a.Global.InsertSafe(name, &SymbolEntry{
			Name: name, Kind: SymType, Type: Primitive(kind),
			Flags: SymFlagPredeclared | SymFlagExported, Visibility: VisibilityPublic,
		})
	}
}

// registerAliases installs the friendly primitive aliases named in
// §4.E: int->i32, float->f32. usize and isize stay their own 8-byte
// kinds; registerPrimitives has already inserted them, so their
// entries here leave the table unchanged.
func registerAliases(a *Analyzer) {
	aliases := map[string]PrimitiveKind{
		"int":   PrimI32,
		"float": PrimF32,
		"usize": PrimUsize,
		"isize": PrimIsize,
	}
	for alias, kind := range aliases {
		a.Global.InsertSafe(alias, &SymbolEntry{
			Name: alias, Kind: SymType, Type: Primitive(kind),
			Flags: SymFlagPredeclared | SymFlagExported, Visibility: VisibilityPublic,
		})
	}
}

func registerPredeclaredFunctions(a *Analyzer) {
	str := Primitive(PrimString)
	void := Primitive(PrimVoid)
	never := Primitive(PrimNever)
	i32 := Primitive(PrimI32)
	sliceStr := Slice(str)
	sliceI32 := Slice(i32)

	register := func(name string, fn *TypeDescriptor) {
		a.Global.InsertSafe(name, &SymbolEntry{
			Name: name, Kind: SymFunction, Type: fn,
			Flags: SymFlagPredeclared | SymFlagExported, Visibility: VisibilityPublic,
		})
	}

	register("log", Function([]*TypeDescriptor{str}, void, false, ""))
	register("panic", Function([]*TypeDescriptor{str}, never, false, ""))
	// `range` is overloaded (1-arg and 2-arg); since the symbol table
	// has no native overload support, the 2-arg form is registered
	// under a distinct internal name and selected by call-site arity in
	// resolveCallCallee (expr_analyzer.go).
	register("range", Function([]*TypeDescriptor{i32}, sliceI32, false, ""))
	register("range2", Function([]*TypeDescriptor{i32, i32}, sliceI32, false, ""))
	register("args", Function(nil, sliceStr, false, ""))

	infiniteIterator := Struct("InfiniteIterator", NewScope(a.Global), false)
	register("infinite", Function(nil, infiniteIterator, false, ""))
}

// registerOptionResult installs the built-in generic enums Option<T>
// and Result<T,E>, with both their qualified (Option.Some) and
// unqualified (Some) variant names recognized globally (§4.E, §6).
func registerOptionResult(a *Analyzer) {
	// Option<T>
	optionVariants := NewScope(a.Global)
	optionBase := Enum("Option", optionVariants, true)
	optionVariants.InsertSafe("Some", &SymbolEntry{Name: "Some", Kind: SymEnumVariant, Type: nil, Flags: SymFlagPredeclared})
	optionVariants.InsertSafe("None", &SymbolEntry{Name: "None", Kind: SymEnumVariant, Type: Primitive(PrimVoid), Flags: SymFlagPredeclared})

	a.Global.InsertSafe("Option", &SymbolEntry{
		Name: "Option", Kind: SymType, Type: optionBase, GenericParamN: 1,
		Flags: SymFlagPredeclared | SymFlagExported, Visibility: VisibilityPublic,
	})
	a.Global.InsertSafe("Option.Some", &SymbolEntry{Name: "Option.Some", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	a.Global.InsertSafe("Option.None", &SymbolEntry{Name: "Option.None", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	a.Global.InsertSafe("Some", &SymbolEntry{Name: "Some", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	a.Global.InsertSafe("None", &SymbolEntry{Name: "None", Kind: SymEnumVariant, Flags: SymFlagPredeclared})

	optionFieldTypes := map[string]*Node{
		"Some": NewNode(KindBaseType, SourceLocation{}, &BaseTypeNode{Name: "T"}),
		"None": NewNode(KindBaseType, SourceLocation{}, &BaseTypeNode{Name: "void"}),
	}
	a.Generics.Register(NewGenericStructInfo("Option", nil, optionBase, []string{"T"}, optionFieldTypes, true))

	// Result<T, E>
	resultVariants := NewScope(a.Global)
	resultBase := Enum("Result", resultVariants, true)
	resultVariants.InsertSafe("Ok", &SymbolEntry{Name: "Ok", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	resultVariants.InsertSafe("Err", &SymbolEntry{Name: "Err", Kind: SymEnumVariant, Flags: SymFlagPredeclared})

	a.Global.InsertSafe("Result", &SymbolEntry{
		Name: "Result", Kind: SymType, Type: resultBase, GenericParamN: 2,
		Flags: SymFlagPredeclared | SymFlagExported, Visibility: VisibilityPublic,
	})
	a.Global.InsertSafe("Result.Ok", &SymbolEntry{Name: "Result.Ok", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	a.Global.InsertSafe("Result.Err", &SymbolEntry{Name: "Result.Err", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	a.Global.InsertSafe("Ok", &SymbolEntry{Name: "Ok", Kind: SymEnumVariant, Flags: SymFlagPredeclared})
	a.Global.InsertSafe("Err", &SymbolEntry{Name: "Err", Kind: SymEnumVariant, Flags: SymFlagPredeclared})

	resultFieldTypes := map[string]*Node{
		"Ok":  NewNode(KindBaseType, SourceLocation{}, &BaseTypeNode{Name: "T"}),
		"Err": NewNode(KindBaseType, SourceLocation{}, &BaseTypeNode{Name: "E"}),
	}
	a.Generics.Register(NewGenericStructInfo("Result", nil, resultBase, []string{"T", "E"}, resultFieldTypes, true))
}
