package glintc

// analyzePattern implements §4.G "Pattern matching (match)": binds any
// identifiers the pattern introduces into scope and validates the
// pattern shape against subjectType. Always succeeds structurally —
// mismatches are reported as diagnostics, never fatal (§7).
func (a *Analyzer) analyzePattern(pattern *Node, subjectType *TypeDescriptor, scope *SymbolTable) {
	if pattern == nil {
		return
	}
	switch p := pattern.Data.(type) {
	case *WildcardPatternNode:
		// matches anything; binds nothing.
	case *IdentifierPatternNode:
		scope.InsertSafe(p.Name, &SymbolEntry{
			Name: p.Name, Kind: SymVariable, Type: subjectType, Flags: SymFlagInitialized, Visibility: VisibilityPrivate,
		})
	case *EnumPatternNode:
		a.analyzeEnumPattern(pattern, p, subjectType, scope)
	case *StructPatternNode:
		a.analyzeStructPattern(pattern, p, subjectType, scope)
	case *TuplePatternNode:
		a.analyzeTuplePattern(pattern, p, subjectType, scope)
	default:
		a.Diagnostics.Report(InvalidOperation, pattern.Loc, "unsupported pattern")
	}
}

// analyzeEnumPattern implements "Enum pattern E.V(inner) requires the
// expression type be an enum with a variant V; inner pattern is
// matched against the variant's associated type."
func (a *Analyzer) analyzeEnumPattern(n *Node, p *EnumPatternNode, subjectType *TypeDescriptor, scope *SymbolTable) {
	if subjectType == nil || subjectType.Category != CategoryEnum {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "enum pattern requires an enum subject")
		return
	}
	if p.EnumName != "" && p.EnumName != subjectType.Name {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "pattern names `"+p.EnumName+"` but subject is `"+subjectType.Name+"`")
	}
	variant, ok := subjectType.Fields.LookupLocal(p.Variant)
	if !ok {
		a.Diagnostics.Report(UndefinedSymbol, n.Loc, "`"+subjectType.Name+"` has no variant `"+p.Variant+"`")
		return
	}
	if p.Inner != nil {
		a.analyzePattern(p.Inner, variant.Type, scope)
	}
}

// analyzeStructPattern implements "Struct pattern S { f1: p1, .., fn:
// pn } requires the expression type be a struct; each named field must
// exist; non-partial patterns must bind every field exactly once."
func (a *Analyzer) analyzeStructPattern(n *Node, p *StructPatternNode, subjectType *TypeDescriptor, scope *SymbolTable) {
	if subjectType == nil || subjectType.Category != CategoryStruct {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "struct pattern requires a struct subject")
		return
	}
	if p.StructName != "" && p.StructName != subjectType.Name {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "pattern names `"+p.StructName+"` but subject is `"+subjectType.Name+"`")
	}
	seen := make(map[string]bool, len(p.Fields))
	for _, fn := range p.Fields {
		fp, ok := fn.Data.(*FieldPatternNode)
		if !ok {
			continue
		}
		fieldEntry, ok := subjectType.Fields.LookupLocal(fp.Name)
		if !ok {
			a.Diagnostics.Report(UndefinedSymbol, fn.Loc, "`"+subjectType.Name+"` has no field `"+fp.Name+"`")
			continue
		}
		seen[fp.Name] = true
		if fp.Ignored {
			continue
		}
		bindName := fp.Binding
		if bindName == "" {
			bindName = fp.Name
		}
		scope.InsertSafe(bindName, &SymbolEntry{
			Name: bindName, Kind: SymVariable, Type: fieldEntry.Type, Flags: SymFlagInitialized, Visibility: VisibilityPrivate,
		})
	}
	if !p.Partial {
		subjectType.Fields.IterateSorted(func(name string, _ *SymbolEntry) bool {
			if !seen[name] {
				a.Diagnostics.Report(InvalidOperation, n.Loc, "struct pattern does not bind field `"+name+"`; use `..` for a partial match")
			}
			return true
		})
	}
}

// analyzeTuplePattern implements "Tuple pattern (p1, …, pn) requires
// matching element count."
func (a *Analyzer) analyzeTuplePattern(n *Node, p *TuplePatternNode, subjectType *TypeDescriptor, scope *SymbolTable) {
	if subjectType == nil || subjectType.Category != CategoryTuple {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "tuple pattern requires a tuple subject")
		return
	}
	if len(p.Elems) != len(subjectType.Elems) {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "tuple pattern has "+itoa(len(p.Elems))+" element(s), subject has "+itoa(len(subjectType.Elems)))
		return
	}
	for i, elemPattern := range p.Elems {
		a.analyzePattern(elemPattern, subjectType.Elems[i], scope)
	}
}
