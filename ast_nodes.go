package glintc

// Visibility distinguishes `pub` declarations from private ones
// (spec §6 "Visibility modifiers").
type Visibility int

const (
	VisibilityPrivate Visibility = iota
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "pub"
	}
	return "private"
}

// LiteralKind discriminates the literal forms listed in §3.
type LiteralKind int

const (
	LiteralInt LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralChar
	LiteralUnit
)

func appendNonNil(out []*Node, ns ...*Node) []*Node {
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// ---- Program / top-level ----

type Program struct {
	Package *Node // KindPackageDecl
	Imports *NodeList
	Decls   *NodeList
}

func (p *Program) children() []*Node {
	var out []*Node
	out = appendNonNil(out, p.Package)
	out = append(out, p.Imports.Slice()...)
	out = append(out, p.Decls.Slice()...)
	return out
}

type PackageDecl struct{ Name string }

type ImportDecl struct {
	Alias string
	Path  string
	Names []string // imported symbol names, if any were explicitly listed
}

// ---- Declarations ----

type FunctionDecl struct {
	Name       string
	Visibility Visibility
	TypeParams []string
	Params     *NodeList // KindParam
	ReturnType *Node
	Body       *Node // KindBlockStmt
}

func (f *FunctionDecl) children() []*Node {
	var out []*Node
	out = append(out, f.Params.Slice()...)
	out = appendNonNil(out, f.ReturnType, f.Body)
	return out
}

type Param struct {
	Name      string
	Type      *Node
	Mutable   bool
	Ownership *Node // KindOwnershipTag, optional
	Transfer  *Node // KindTransferAnnotation, optional
}

func (p *Param) children() []*Node {
	return appendNonNil(nil, p.Type, p.Ownership, p.Transfer)
}

type FieldDecl struct {
	Name       string
	Type       *Node
	Visibility Visibility
}

func (f *FieldDecl) children() []*Node { return appendNonNil(nil, f.Type) }

type StructDecl struct {
	Name       string
	Visibility Visibility
	TypeParams []string
	Fields     *NodeList // KindFieldDecl
}

func (s *StructDecl) children() []*Node { return s.Fields.Slice() }

type EnumDecl struct {
	Name       string
	Visibility Visibility
	TypeParams []string
	Variants   *NodeList // KindEnumVariant
}

func (e *EnumDecl) children() []*Node { return e.Variants.Slice() }

type EnumVariant struct {
	Name      string
	AssocType *Node // optional
}

func (e *EnumVariant) children() []*Node { return appendNonNil(nil, e.AssocType) }

type ExternDecl struct {
	Name       string
	ABI        string
	Params     *NodeList // KindParam
	ReturnType *Node
	Ownership  *Node // KindOwnershipTag, optional (defaults to `c`)
}

func (e *ExternDecl) children() []*Node {
	var out []*Node
	out = append(out, e.Params.Slice()...)
	out = appendNonNil(out, e.ReturnType, e.Ownership)
	return out
}

type ConstDecl struct {
	Name       string
	Visibility Visibility
	Type       *Node
	Init       *Node
}

func (c *ConstDecl) children() []*Node { return appendNonNil(nil, c.Type, c.Init) }

type ImplBlock struct {
	TargetType *Node
	Methods    *NodeList // KindMethodDecl
}

func (i *ImplBlock) children() []*Node {
	return append(appendNonNil(nil, i.TargetType), i.Methods.Slice()...)
}

type MethodDecl struct {
	Name       string
	Visibility Visibility
	IsInstance bool
	Params     *NodeList
	ReturnType *Node
	Body       *Node
}

func (m *MethodDecl) children() []*Node {
	var out []*Node
	out = append(out, m.Params.Slice()...)
	out = appendNonNil(out, m.ReturnType, m.Body)
	return out
}

// ---- Statements ----

type BlockStmt struct{ Stmts *NodeList }

func (b *BlockStmt) children() []*Node { return b.Stmts.Slice() }

type ExprStmt struct{ Expr *Node }

func (e *ExprStmt) children() []*Node { return appendNonNil(nil, e.Expr) }

type LetStmt struct {
	Name         string
	Mutable      bool
	DeclaredType *Node // mandatory per §4.G
	Init         *Node // optional
	Ownership    *Node // optional, KindOwnershipTag
}

func (l *LetStmt) children() []*Node {
	return appendNonNil(nil, l.DeclaredType, l.Init, l.Ownership)
}

type ReturnStmt struct{ Value *Node }

func (r *ReturnStmt) children() []*Node { return appendNonNil(nil, r.Value) }

type IfStmt struct {
	Cond *Node
	Then *Node
	Else *Node // optional
}

func (i *IfStmt) children() []*Node { return appendNonNil(nil, i.Cond, i.Then, i.Else) }

type ForInStmt struct {
	VarName  string
	Iterable *Node
	Body     *Node
}

func (f *ForInStmt) children() []*Node { return appendNonNil(nil, f.Iterable, f.Body) }

type MatchStmt struct {
	Subject *Node
	Arms    *NodeList // KindMatchArm
}

func (m *MatchStmt) children() []*Node {
	return append(appendNonNil(nil, m.Subject), m.Arms.Slice()...)
}

type MatchArm struct {
	Pattern *Node
	Guard   *Node // optional
	Body    *Node
}

func (m *MatchArm) children() []*Node { return appendNonNil(nil, m.Pattern, m.Guard, m.Body) }

type IfLetStmt struct {
	Pattern *Node
	Init    *Node
	Then    *Node
	Else    *Node // optional
}

func (i *IfLetStmt) children() []*Node {
	return appendNonNil(nil, i.Pattern, i.Init, i.Then, i.Else)
}

type SpawnStmt struct{ Call *Node }

func (s *SpawnStmt) children() []*Node { return appendNonNil(nil, s.Call) }

type SpawnWithHandleStmt struct{ Call *Node }

func (s *SpawnWithHandleStmt) children() []*Node { return appendNonNil(nil, s.Call) }

type UnsafeStmt struct{ Body *Node }

func (u *UnsafeStmt) children() []*Node { return appendNonNil(nil, u.Body) }

type BreakStmt struct{}
type ContinueStmt struct{}

// ---- Expressions ----

type BinaryExpr struct {
	Op    string
	Left  *Node
	Right *Node
}

func (b *BinaryExpr) children() []*Node { return appendNonNil(nil, b.Left, b.Right) }

type UnaryExpr struct {
	Op      string // "*", "&", "-", "!"
	Operand *Node
}

func (u *UnaryExpr) children() []*Node { return appendNonNil(nil, u.Operand) }

// PostfixExpr chains suffixes (calls, field access, index access, …)
// onto a base expression; each suffix is itself one of the suffix
// expression kinds with Base left nil and filled in by the analyzer.
type PostfixExpr struct {
	Base     *Node
	Suffixes *NodeList
}

func (p *PostfixExpr) children() []*Node {
	return append(appendNonNil(nil, p.Base), p.Suffixes.Slice()...)
}

type CallExpr struct {
	Callee *Node
	Args   *NodeList
}

func (c *CallExpr) children() []*Node {
	return append(appendNonNil(nil, c.Callee), c.Args.Slice()...)
}

type AssocCallExpr struct {
	TypeName   string
	MethodName string
	TypeArgs   []*Node // concrete type-argument nodes for Name<T1,...>
	Args       *NodeList
}

func (a *AssocCallExpr) children() []*Node {
	out := append([]*Node{}, a.TypeArgs...)
	return append(out, a.Args.Slice()...)
}

type FieldAccessExpr struct {
	Base  *Node
	Field string
}

func (f *FieldAccessExpr) children() []*Node { return appendNonNil(nil, f.Base) }

type IndexAccessExpr struct {
	Base  *Node
	Index *Node
}

func (i *IndexAccessExpr) children() []*Node { return appendNonNil(nil, i.Base, i.Index) }

type SliceExpr struct {
	Base  *Node
	Start *Node // optional
	End   *Node // optional
}

func (s *SliceExpr) children() []*Node { return appendNonNil(nil, s.Base, s.Start, s.End) }

type SliceLenExpr struct{ Base *Node }

func (s *SliceLenExpr) children() []*Node { return appendNonNil(nil, s.Base) }

type AssignExpr struct {
	Target *Node
	Value  *Node
}

func (a *AssignExpr) children() []*Node { return appendNonNil(nil, a.Target, a.Value) }

type StructLiteralExpr struct {
	TypeName string
	Fields   *NodeList // KindFieldInit
}

func (s *StructLiteralExpr) children() []*Node { return s.Fields.Slice() }

type FieldInit struct {
	Name  string
	Value *Node
}

func (f *FieldInit) children() []*Node { return appendNonNil(nil, f.Value) }

type ArrayLiteralExpr struct{ Elements *NodeList }

func (a *ArrayLiteralExpr) children() []*Node { return a.Elements.Slice() }

type TupleLiteralExpr struct{ Elements *NodeList }

func (t *TupleLiteralExpr) children() []*Node { return t.Elements.Slice() }

type AwaitExpr struct{ Operand *Node }

func (a *AwaitExpr) children() []*Node { return appendNonNil(nil, a.Operand) }

type CastExpr struct {
	Operand    *Node
	TargetType *Node
}

func (c *CastExpr) children() []*Node { return appendNonNil(nil, c.Operand, c.TargetType) }

type IdentifierExpr struct{ Name string }

type LiteralExpr struct {
	LiteralKind LiteralKind
	Raw         string
}

type ConstExpr struct{ Expr *Node }

func (c *ConstExpr) children() []*Node { return appendNonNil(nil, c.Expr) }

// ---- Types ----

type BaseTypeNode struct{ Name string }

// NamedTypeNode is the form the parser actually emits for a reference
// to a user-defined type (`Foo` or `Foo<T1,...>`): at parse time it is
// not yet known whether the name denotes a struct or an enum, so the
// type-node resolver (type_resolver.go) disambiguates
// it by consulting the symbol table rather than by syntax (spec §4.G
// step 3).
type NamedTypeNode struct {
	Name     string
	TypeArgs []*Node
}

func (n *NamedTypeNode) children() []*Node { return append([]*Node{}, n.TypeArgs...) }

type SliceTypeNode struct{ Elem *Node }

func (s *SliceTypeNode) children() []*Node { return appendNonNil(nil, s.Elem) }

type ArrayTypeNode struct {
	Elem *Node
	Size int
}

func (a *ArrayTypeNode) children() []*Node { return appendNonNil(nil, a.Elem) }

type StructTypeNode struct {
	Name     string
	TypeArgs []*Node // optional, for Name<T1,...>
}

func (s *StructTypeNode) children() []*Node { return append([]*Node{}, s.TypeArgs...) }

type EnumTypeNode struct {
	Name     string
	TypeArgs []*Node
}

func (e *EnumTypeNode) children() []*Node { return append([]*Node{}, e.TypeArgs...) }

type PointerTypeNode struct {
	Pointee *Node
	Mutable bool
}

func (p *PointerTypeNode) children() []*Node { return appendNonNil(nil, p.Pointee) }

type ResultTypeNode struct {
	OkType  *Node
	ErrType *Node
}

func (r *ResultTypeNode) children() []*Node { return appendNonNil(nil, r.OkType, r.ErrType) }

type OptionTypeNode struct{ ElemType *Node }

func (o *OptionTypeNode) children() []*Node { return appendNonNil(nil, o.ElemType) }

type TupleTypeNode struct{ Elems []*Node }

func (t *TupleTypeNode) children() []*Node { return append([]*Node{}, t.Elems...) }

type TaskHandleTypeNode struct{ ResultType *Node }

func (t *TaskHandleTypeNode) children() []*Node { return appendNonNil(nil, t.ResultType) }

// ---- Patterns ----

type EnumPatternNode struct {
	EnumName string
	Variant  string
	Inner    *Node // optional
}

func (e *EnumPatternNode) children() []*Node { return appendNonNil(nil, e.Inner) }

type StructPatternNode struct {
	StructName string
	Fields     []*Node // KindFieldPattern
	Partial    bool    // true when `..` is present
}

func (s *StructPatternNode) children() []*Node { return append([]*Node{}, s.Fields...) }

type FieldPatternNode struct {
	Name    string
	Binding string // empty means bind to Name
	Ignored bool
}

type TuplePatternNode struct{ Elems []*Node }

func (t *TuplePatternNode) children() []*Node { return append([]*Node{}, t.Elems...) }

type WildcardPatternNode struct{}

type IdentifierPatternNode struct{ Name string }

// ---- Annotations ----

type OwnershipTagNode struct{ Tag string } // "gc" | "c" | "pinned"

type TransferAnnotationNode struct{ Kind string } // transfer_full | transfer_none | borrowed

type SecurityTagNode struct{ Tag string }

type HumanReviewTagNode struct{ Note string }

type SemanticTagNode struct {
	Key    string
	Params []string
}
