package glintc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedType(name string, args ...*Node) *Node {
	return NewNode(KindNamedType, SourceLocation{}, &NamedTypeNode{Name: name, TypeArgs: args})
}

func baseType(name string) *Node {
	return NewNode(KindBaseType, SourceLocation{}, &BaseTypeNode{Name: name})
}

func intLit(raw string) *Node {
	return NewNode(KindLiteralExpr, SourceLocation{}, &LiteralExpr{LiteralKind: LiteralInt, Raw: raw})
}

// boxProgram builds: struct Box<T> { value: T } plus two `let`
// bindings each declared as Box<i32>, mirroring spec §8's generic
// instantiation caching scenario.
func boxProgram() *Node {
	boxFields := NewNodeList(NewNode(KindFieldDecl, SourceLocation{}, &FieldDecl{
		Name: "value", Type: namedType("T"), Visibility: VisibilityPublic,
	}))
	boxDecl := NewNode(KindStructDecl, SourceLocation{}, &StructDecl{
		Name: "Box", Visibility: VisibilityPublic, TypeParams: []string{"T"}, Fields: boxFields,
	})

	letA := NewNode(KindLetStmt, SourceLocation{}, &LetStmt{
		Name: "a", DeclaredType: namedType("Box", baseType("i32")),
	})
	letB := NewNode(KindLetStmt, SourceLocation{}, &LetStmt{
		Name: "b", DeclaredType: namedType("Box", baseType("i32")),
	})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(letA, letB)})

	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", Visibility: VisibilityPublic, ReturnType: baseType("void"),
		Params: NewNodeList(), Body: body,
	})

	return NewNode(KindProgram, SourceLocation{}, &Program{
		Imports: NewNodeList(), Decls: NewNodeList(boxDecl, fn),
	})
}

func TestGenericInstantiationCachesByArgumentIdentity(t *testing.T) {
	a := NewAnalyzer(nil)
	ok := a.Analyze(boxProgram())
	require.True(t, ok)
	require.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())

	stats := a.Generics.Stats()
	assert.Equal(t, uint64(1), stats.TotalInstantiations, "Box<i32> requested twice should instantiate once")
	assert.Equal(t, 1, stats.LiveInstantiations)
}

func TestLetRequiresTypeAnnotation(t *testing.T) {
	a := NewAnalyzer(nil)
	letNode := NewNode(KindLetStmt, SourceLocation{}, &LetStmt{Name: "x", Init: intLit("1")})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(letNode)})
	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", ReturnType: baseType("void"), Params: NewNodeList(), Body: body,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(fn)})

	a.Analyze(program)
	require.True(t, a.Diagnostics.HasErrors())
	assert.Equal(t, InvalidOperation, a.Diagnostics.Items()[0].Kind)
}

// TestResultAssocCallInstantiatesGenericEnum covers spec §8's "Result
// type inference" scenario: `Result<i32,string>.Ok(1)` must resolve
// without diagnostics and drive exactly one instantiation of the
// built-in `Result` generic.
func TestResultAssocCallInstantiatesGenericEnum(t *testing.T) {
	a := NewAnalyzer(nil)
	call := NewNode(KindExprStmt, SourceLocation{}, &ExprStmt{
		Expr: NewNode(KindAssocCallExpr, SourceLocation{}, &AssocCallExpr{
			TypeName: "Result", MethodName: "Ok",
			TypeArgs: []*Node{baseType("i32"), baseType("string")},
			Args:     NewNodeList(intLit("1")),
		}),
	})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(call)})
	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", ReturnType: baseType("void"), Params: NewNodeList(), Body: body,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(fn)})

	ok := a.Analyze(program)
	require.True(t, ok)
	assert.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())
	assert.Equal(t, uint64(1), a.Generics.Stats().TotalInstantiations)
}

func TestAssignmentToImmutableIsRejected(t *testing.T) {
	a := NewAnalyzer(nil)
	letNode := NewNode(KindLetStmt, SourceLocation{}, &LetStmt{
		Name: "x", DeclaredType: baseType("i32"), Init: intLit("1"),
	})
	assign := NewNode(KindExprStmt, SourceLocation{}, &ExprStmt{
		Expr: NewNode(KindAssignExpr, SourceLocation{}, &AssignExpr{
			Target: NewNode(KindIdentifierExpr, SourceLocation{}, &IdentifierExpr{Name: "x"}),
			Value:  intLit("2"),
		}),
	})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(letNode, assign)})
	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", ReturnType: baseType("void"), Params: NewNodeList(), Body: body,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(fn)})

	a.Analyze(program)
	require.True(t, a.Diagnostics.HasErrors())
	found := false
	for _, d := range a.Diagnostics.Items() {
		if d.Kind == ImmutableModification {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPredeclaredFunctionCall(t *testing.T) {
	a := NewAnalyzer(nil)
	call := NewNode(KindExprStmt, SourceLocation{}, &ExprStmt{
		Expr: NewNode(KindCallExpr, SourceLocation{}, &CallExpr{
			Callee: NewNode(KindIdentifierExpr, SourceLocation{}, &IdentifierExpr{Name: "log"}),
			Args:   NewNodeList(NewNode(KindLiteralExpr, SourceLocation{}, &LiteralExpr{LiteralKind: LiteralString, Raw: "hi"})),
		}),
	})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(call)})
	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", ReturnType: baseType("void"), Params: NewNodeList(), Body: body,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(fn)})

	ok := a.Analyze(program)
	require.True(t, ok)
	assert.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())
}

// TestConstSizeofEvaluatesToResolvedTypeSize covers the `sizeof(T)`
// const form required by §4.F/§6: `const N: usize = sizeof(i32);` must
// fold to the resolved type's byte size without a diagnostic.
func TestConstSizeofEvaluatesToResolvedTypeSize(t *testing.T) {
	a := NewAnalyzer(nil)
	sizeofCall := NewNode(KindCallExpr, SourceLocation{}, &CallExpr{
		Callee: NewNode(KindIdentifierExpr, SourceLocation{}, &IdentifierExpr{Name: "sizeof"}),
		Args:   NewNodeList(baseType("i32")),
	})
	constDecl := NewNode(KindConstDecl, SourceLocation{}, &ConstDecl{
		Name: "N", Visibility: VisibilityPublic, Type: baseType("usize"), Init: sizeofCall,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(constDecl)})

	ok := a.Analyze(program)
	require.True(t, ok)
	assert.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())

	entry, found := a.Global.LookupSafe("N")
	require.True(t, found)
	assert.Equal(t, int64(4), entry.ConstValue.Int)
}

// TestRangeTwoArgOverloadResolvesByArity covers the predeclared
// `range(i32, i32) -> []i32` overload (§6): a 2-arg call must resolve
// against the distinct `range2` registration rather than misreporting
// an arity mismatch against the 1-arg form.
func TestRangeTwoArgOverloadResolvesByArity(t *testing.T) {
	a := NewAnalyzer(nil)
	call := NewNode(KindExprStmt, SourceLocation{}, &ExprStmt{
		Expr: NewNode(KindCallExpr, SourceLocation{}, &CallExpr{
			Callee: NewNode(KindIdentifierExpr, SourceLocation{}, &IdentifierExpr{Name: "range"}),
			Args:   NewNodeList(intLit("0"), intLit("10")),
		}),
	})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(call)})
	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", ReturnType: baseType("void"), Params: NewNodeList(), Body: body,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(fn)})

	ok := a.Analyze(program)
	require.True(t, ok)
	assert.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())
}

// TestLetInfersGenericTypeArgsFromDeclaredType covers spec §8's
// canonical "Result type inference" scenario verbatim: a `let` whose
// initializer omits explicit type arguments on the AssocCallExpr must
// infer them from the declared type via the expected-type resolution
// context (§4.G step 4), and the resulting value must be compatible
// with the declared `Result<i32,string>` annotation.
func TestLetInfersGenericTypeArgsFromDeclaredType(t *testing.T) {
	a := NewAnalyzer(nil)
	okCall := NewNode(KindAssocCallExpr, SourceLocation{}, &AssocCallExpr{
		TypeName: "Result", MethodName: "Ok", Args: NewNodeList(intLit("42")),
	})
	letResult := NewNode(KindLetStmt, SourceLocation{}, &LetStmt{
		Name: "result", DeclaredType: NewNode(KindResultType, SourceLocation{}, &ResultTypeNode{
			OkType: baseType("i32"), ErrType: baseType("string"),
		}),
		Init: okCall,
	})
	body := NewNode(KindBlockStmt, SourceLocation{}, &BlockStmt{Stmts: NewNodeList(letResult)})
	fn := NewNode(KindFunctionDecl, SourceLocation{}, &FunctionDecl{
		Name: "main", ReturnType: baseType("void"), Params: NewNodeList(), Body: body,
	})
	program := NewNode(KindProgram, SourceLocation{}, &Program{Imports: NewNodeList(), Decls: NewNodeList(fn)})

	ok := a.Analyze(program)
	require.True(t, ok)
	assert.False(t, a.Diagnostics.HasErrors(), a.Diagnostics.Error())
	assert.Equal(t, uint64(1), a.Generics.Stats().TotalInstantiations)
}

func TestNodeRefcountingReleasesChildrenOnZero(t *testing.T) {
	child := intLit("1")
	parent := NewNode(KindExprStmt, SourceLocation{}, &ExprStmt{Expr: child.Retain()})
	assert.Equal(t, int32(2), child.RefCount())
	parent.Release()
	assert.Equal(t, int32(1), child.RefCount())
}
