package glintc

// analyzeStmt dispatches a single statement to its kind-specific
// handler (spec §4.G).
func (a *Analyzer) analyzeStmt(n *Node) {
	if n == nil {
		return
	}
	n.Flags = n.Flags.Set(FlagValidated)
	switch d := n.Data.(type) {
	case *BlockStmt:
		a.analyzeBlock(d)
	case *ExprStmt:
		a.analyzeExpr(d.Expr)
	case *LetStmt:
		a.analyzeLet(n, d)
	case *ReturnStmt:
		a.analyzeReturn(n, d)
	case *IfStmt:
		a.analyzeIf(d)
	case *ForInStmt:
		a.analyzeForIn(n, d)
	case *MatchStmt:
		a.analyzeMatch(n, d)
	case *IfLetStmt:
		a.analyzeIfLet(n, d)
	case *SpawnStmt:
		a.analyzeExpr(d.Call)
	case *SpawnWithHandleStmt:
		callType := a.analyzeExpr(d.Call)
		if callType != nil {
			n.AttachTypeInfo(NewTypeInfo(TaskHandle(callType)))
		}
	case *UnsafeStmt:
		a.unsafeDepth++
		a.analyzeStmt(d.Body)
		a.unsafeDepth--
	case *BreakStmt, *ContinueStmt:
		// structural only; loop-nesting validation is left to the
		// parser's grammar (the core never rejects an ill-nested
		// break/continue — out of scope per §1).
	default:
		a.Diagnostics.Report(InvalidOperation, n.Loc, "unsupported statement")
	}
}

// analyzeBlock enters a fresh lexical scope for the block's statements
// and pops it on every exit path (spec §5).
func (a *Analyzer) analyzeBlock(b *BlockStmt) {
	a.pushScope()
	defer a.popScope()
	for _, s := range b.Stmts.Slice() {
		a.analyzeStmt(s)
	}
}

// analyzeLet implements the eight numbered steps of §4.G's `let`
// contract verbatim.
func (a *Analyzer) analyzeLet(n *Node, l *LetStmt) {
	// Step 1: reject redeclaration in the current scope.
	if _, exists := a.Current.LookupLocal(l.Name); exists {
		a.Diagnostics.Report(DuplicateSymbol, n.Loc, "`"+l.Name+"` is already declared in this scope")
		return
	}
	// Step 2: the type annotation is mandatory.
	if l.DeclaredType == nil {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "`let "+l.Name+"` requires a type annotation")
		return
	}
	// Step 3: resolve the declared type via the type-node resolver.
	declaredType := a.resolveTypeNode(l.DeclaredType)

	// Step 4: analyze the initializer with the expected type set as
	// resolution context, restoring on exit.
	var initType *TypeDescriptor
	if l.Init != nil {
		a.pushExpectedType(declaredType)
		initType = a.analyzeExpr(l.Init)
		a.popExpectedType()

		// Step 5: check compatibility, naming both types.
		if declaredType != nil && initType != nil && !typesCompatible(declaredType, initType) {
			a.Diagnostics.Report(TypeMismatch, n.Loc,
				"`"+l.Name+"` declared as "+declaredType.typeName()+" but initializer is "+initType.typeName())
		}
	}

	// Step 7: ownership annotations, closed set.
	a.checkOwnershipTag(l.Ownership)
	a.checkBorrowEscape(n, l, declaredType)

	// Step 6 + 8: create and register the symbol, attach TypeInfo.
	flags := SymbolFlags(0)
	if l.Mutable {
		flags |= SymFlagMutable
	}
	if l.Init != nil {
		flags |= SymFlagInitialized
	}
	a.Current.InsertSafe(l.Name, &SymbolEntry{
		Name: l.Name, Kind: SymVariable, Type: declaredType, Decl: n, Flags: flags, Visibility: VisibilityPrivate,
	})
	if declaredType != nil {
		n.AttachTypeInfo(NewTypeInfo(declaredType))
	}
}

// analyzeReturn implements §4.G "Control flow" for `return`: the
// expression type must match the enclosing function's return type (or
// `()` for unit); a Never-typed expression is compatible with any
// expected type.
func (a *Analyzer) analyzeReturn(n *Node, r *ReturnStmt) {
	expected := a.currentReturnType
	if expected == nil {
		expected = Primitive(PrimVoid)
	}
	var actual *TypeDescriptor
	if r.Value != nil {
		a.pushExpectedType(expected)
		actual = a.analyzeExpr(r.Value)
		a.popExpectedType()
	} else {
		actual = Primitive(PrimVoid)
	}
	if actual != nil && !typesCompatible(expected, actual) {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "return type "+actual.typeName()+" does not match declared return type "+expected.typeName())
	}
}

func (a *Analyzer) analyzeIf(i *IfStmt) {
	condType := a.analyzeExpr(i.Cond)
	if condType != nil && (condType.Category != CategoryPrimitive || condType.Primitive != PrimBool) {
		a.Diagnostics.Report(TypeMismatch, i.Cond.Loc, "`if` condition must be bool")
	}
	a.analyzeStmt(i.Then)
	if i.Else != nil {
		a.analyzeStmt(i.Else)
	}
}

// analyzeForIn binds VarName to the iterable's element type in a
// fresh scope spanning the loop body.
func (a *Analyzer) analyzeForIn(n *Node, f *ForInStmt) {
	iterType := a.analyzeExpr(f.Iterable)
	scope := a.pushScope()
	defer a.popScope()
	var elemType *TypeDescriptor
	if iterType != nil && (iterType.Category == CategorySlice || iterType.Category == CategoryArray) {
		elemType = iterType.Elem
	} else if iterType != nil {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "`for ... in` requires a slice or array")
	}
	scope.InsertSafe(f.VarName, &SymbolEntry{
		Name: f.VarName, Kind: SymVariable, Type: elemType, Flags: SymFlagInitialized, Visibility: VisibilityPrivate,
	})
	a.analyzeStmt(f.Body)
}

// analyzeIfLet binds the pattern against the initializer's type in a
// scope spanning `then`, falling back to `else` on refutation.
func (a *Analyzer) analyzeIfLet(n *Node, il *IfLetStmt) {
	initType := a.analyzeExpr(il.Init)
	scope := a.pushScope()
	a.analyzePattern(il.Pattern, initType, scope)
	a.analyzeStmt(il.Then)
	a.popScope()
	if il.Else != nil {
		a.analyzeStmt(il.Else)
	}
}

// analyzeMatch implements §4.G "Pattern matching (match)": each arm's
// pattern is checked against the subject's type in its own scope, the
// optional guard must be bool, and the body is analyzed in that scope.
// Exhaustiveness is reported only as a warning.
func (a *Analyzer) analyzeMatch(n *Node, m *MatchStmt) {
	subjectType := a.analyzeExpr(m.Subject)
	coveredVariants := make(map[string]bool)
	hasWildcard := false

	for _, armNode := range m.Arms.Slice() {
		arm, ok := armNode.Data.(*MatchArm)
		if !ok {
			continue
		}
		scope := a.pushScope()
		a.analyzePattern(arm.Pattern, subjectType, scope)
		if ep, ok := arm.Pattern.Data.(*EnumPatternNode); ok {
			coveredVariants[ep.Variant] = true
		}
		if _, ok := arm.Pattern.Data.(*WildcardPatternNode); ok {
			hasWildcard = true
		}
		if _, ok := arm.Pattern.Data.(*IdentifierPatternNode); ok {
			hasWildcard = true
		}
		if arm.Guard != nil {
			guardType := a.analyzeExpr(arm.Guard)
			if guardType != nil && (guardType.Category != CategoryPrimitive || guardType.Primitive != PrimBool) {
				a.Diagnostics.Report(TypeMismatch, arm.Guard.Loc, "match guard must be bool")
			}
		}
		a.analyzeStmt(arm.Body)
		a.popScope()
	}

	if a.Config.GetBool("analysis.warn_on_inexhaustive_match") && subjectType != nil && subjectType.Category == CategoryEnum && !hasWildcard && subjectType.Fields != nil {
		subjectType.Fields.IterateSorted(func(name string, _ *SymbolEntry) bool {
			if !coveredVariants[name] {
				a.Diagnostics.Report(InexhaustiveMatch, n.Loc, "match does not cover variant `"+name+"` of `"+subjectType.Name+"`")
			}
			return true
		})
	}
}
