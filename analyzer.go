package glintc

// Analyzer orchestrates the semantic core: it owns the global scope,
// tracks the current scope during traversal, accumulates diagnostics,
// and holds the generic instantiation registry (spec §2 data flow).
type Analyzer struct {
	Global      *SymbolTable
	Current     *SymbolTable
	Diagnostics DiagnosticList
	Generics    *GenericRegistry
	Config      AnalyzerConfig

	// expectedType is a save/restore stack used while analyzing
	// initializers and return values against a declared/expected type
	// (spec §4.G step 4, §5 "scoped acquisition... saves and restores
	// on all exit paths").
	expectedTypeStack []*TypeDescriptor

	// enclosing function's return type, for `return` statement
	// checking; save/restored across nested function analysis.
	currentReturnType *TypeDescriptor

	// depth of `unsafe { }` nesting; >0 permits raw pointer deref.
	// Address-of (`&`) is not checked against it.
	unsafeDepth int
}

// NewAnalyzer builds an Analyzer with a fresh global scope populated
// with the built-in registry (spec §4.E) and an empty generic registry.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	if cfg == nil {
		cfg = NewAnalyzerConfig()
	}
	global := NewScope(nil)
	a := &Analyzer{
		Global:   global,
		Current:  global,
		Generics: NewGenericRegistry(),
		Config:   cfg,
	}
	RegisterBuiltins(a)
	return a
}

func (a *Analyzer) pushExpectedType(t *TypeDescriptor) {
	a.expectedTypeStack = append(a.expectedTypeStack, t)
}

func (a *Analyzer) popExpectedType() {
	if len(a.expectedTypeStack) == 0 {
		return
	}
	a.expectedTypeStack = a.expectedTypeStack[:len(a.expectedTypeStack)-1]
}

func (a *Analyzer) expectedType() *TypeDescriptor {
	if len(a.expectedTypeStack) == 0 {
		return nil
	}
	return a.expectedTypeStack[len(a.expectedTypeStack)-1]
}

// pushScope enters a new lexically nested scope and returns it; callers
// must call popScope on every exit path (spec §5).
func (a *Analyzer) pushScope() *SymbolTable {
	s := NewScope(a.Current)
	a.Current = s
	return s
}

func (a *Analyzer) popScope() {
	if a.Current.Parent() != nil {
		a.Current = a.Current.Parent()
	}
}

// Analyze runs the full declaration + statement/expression analysis
// pipeline over program (spec §2 data flow). It returns false only on
// an internal-consistency failure (§7); ordinary semantic errors are
// recorded in a.Diagnostics and analysis continues over sibling
// declarations.
func (a *Analyzer) Analyze(program *Node) bool {
	prog, ok := program.Data.(*Program)
	if !ok {
		return false
	}
	for _, decl := range prog.Imports.Slice() {
		a.analyzeImport(decl)
	}
	// Declaration processing is sequential and deterministic in
	// source order (§5).
	for _, decl := range prog.Decls.Slice() {
		a.analyzeDecl(decl)
	}
	if a.Config.GetBool("analysis.warn_on_unused_private") {
		a.reportUnusedPrivateSymbols()
	}
	return true
}

// reportUnusedPrivateSymbols implements the supplemented feature from
// SPEC_FULL.md §3: any non-pub top-level symbol with `used == false`
// gets a warning, mirroring the teacher's UnusedRulesQuery.
func (a *Analyzer) reportUnusedPrivateSymbols() {
	a.Global.IterateSorted(func(name string, e *SymbolEntry) bool {
		if e.Flags.Has(SymFlagPredeclared) {
			return true
		}
		if e.Visibility == VisibilityPublic {
			return true
		}
		if e.Flags.Has(SymFlagUsed) {
			return true
		}
		loc := SourceLocation{}
		if e.Decl != nil {
			loc = e.Decl.Loc
		}
		a.Diagnostics.Report(UnusedSymbol, loc, "private symbol `"+name+"` is never used")
		return true
	})
}
