package glintc

// WalkOrder selects whether Walk visits a node before or after its
// children.
type WalkOrder int

const (
	PreOrder WalkOrder = iota
	PostOrder
)

// Walk performs a structured traversal over n and its children,
// calling fn for each visited node. Returning false from fn for a
// pre-order walk skips that node's subtree; the return value is
// ignored in post-order (mirrors tree.Visit's callback traversal,
// generalized to both orders).
func Walk(n *Node, order WalkOrder, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if order == PreOrder {
		if !fn(n) {
			return
		}
		for _, c := range n.Children() {
			Walk(c, order, fn)
		}
		return
	}
	for _, c := range n.Children() {
		Walk(c, order, fn)
	}
	fn(n)
}

// Inspect is a convenience pre-order walk matching the common
// "does this subtree contain X" query shape.
func Inspect(n *Node, fn func(*Node) bool) { Walk(n, PreOrder, fn) }

// Visitor is the structured, interface-based traversal entrypoint,
// offered alongside the callback-based Walk so consumers can pick
// whichever shape fits (spec §4.B).
type Visitor interface {
	Visit(n *Node) (recurse bool)
}

// Accept drives v over n and its children in pre-order.
func Accept(n *Node, v Visitor) {
	Walk(n, PreOrder, func(c *Node) bool { return v.Visit(c) })
}

func cloneChild(n *Node) *Node {
	if n == nil {
		return nil
	}
	return DeepClone(n)
}

func cloneList(l *NodeList) *NodeList {
	if l == nil {
		return NewNodeList()
	}
	return l.DeepClone()
}

func cloneSlice(ns []*Node) []*Node {
	if ns == nil {
		return nil
	}
	out := make([]*Node, len(ns))
	for i, n := range ns {
		out[i] = DeepClone(n)
	}
	return out
}

// DeepClone produces an isomorphic subtree rooted at a brand-new node
// (refcount 1), recursively cloning every owned child so the result
// shares no node with the original (spec §3 invariant on deep clone).
func DeepClone(n *Node) *Node {
	if n == nil {
		return nil
	}
	var data any
	switch d := n.Data.(type) {
	case *Program:
		data = &Program{Package: cloneChild(d.Package), Imports: cloneList(d.Imports), Decls: cloneList(d.Decls)}
	case *PackageDecl:
		cp := *d
		data = &cp
	case *ImportDecl:
		cp := *d
		data = &cp
	case *FunctionDecl:
		data = &FunctionDecl{Name: d.Name, Visibility: d.Visibility, TypeParams: append([]string{}, d.TypeParams...),
			Params: cloneList(d.Params), ReturnType: cloneChild(d.ReturnType), Body: cloneChild(d.Body)}
	case *Param:
		data = &Param{Name: d.Name, Type: cloneChild(d.Type), Mutable: d.Mutable,
			Ownership: cloneChild(d.Ownership), Transfer: cloneChild(d.Transfer)}
	case *FieldDecl:
		data = &FieldDecl{Name: d.Name, Type: cloneChild(d.Type), Visibility: d.Visibility}
	case *StructDecl:
		data = &StructDecl{Name: d.Name, Visibility: d.Visibility, TypeParams: append([]string{}, d.TypeParams...), Fields: cloneList(d.Fields)}
	case *EnumDecl:
		data = &EnumDecl{Name: d.Name, Visibility: d.Visibility, TypeParams: append([]string{}, d.TypeParams...), Variants: cloneList(d.Variants)}
	case *EnumVariant:
		data = &EnumVariant{Name: d.Name, AssocType: cloneChild(d.AssocType)}
	case *ExternDecl:
		data = &ExternDecl{Name: d.Name, ABI: d.ABI, Params: cloneList(d.Params), ReturnType: cloneChild(d.ReturnType), Ownership: cloneChild(d.Ownership)}
	case *ConstDecl:
		data = &ConstDecl{Name: d.Name, Visibility: d.Visibility, Type: cloneChild(d.Type), Init: cloneChild(d.Init)}
	case *ImplBlock:
		data = &ImplBlock{TargetType: cloneChild(d.TargetType), Methods: cloneList(d.Methods)}
	case *MethodDecl:
		data = &MethodDecl{Name: d.Name, Visibility: d.Visibility, IsInstance: d.IsInstance,
			Params: cloneList(d.Params), ReturnType: cloneChild(d.ReturnType), Body: cloneChild(d.Body)}
	case *BlockStmt:
		data = &BlockStmt{Stmts: cloneList(d.Stmts)}
	case *ExprStmt:
		data = &ExprStmt{Expr: cloneChild(d.Expr)}
	case *LetStmt:
		data = &LetStmt{Name: d.Name, Mutable: d.Mutable, DeclaredType: cloneChild(d.DeclaredType), Init: cloneChild(d.Init), Ownership: cloneChild(d.Ownership)}
	case *ReturnStmt:
		data = &ReturnStmt{Value: cloneChild(d.Value)}
	case *IfStmt:
		data = &IfStmt{Cond: cloneChild(d.Cond), Then: cloneChild(d.Then), Else: cloneChild(d.Else)}
	case *ForInStmt:
		data = &ForInStmt{VarName: d.VarName, Iterable: cloneChild(d.Iterable), Body: cloneChild(d.Body)}
	case *MatchStmt:
		data = &MatchStmt{Subject: cloneChild(d.Subject), Arms: cloneList(d.Arms)}
	case *MatchArm:
		data = &MatchArm{Pattern: cloneChild(d.Pattern), Guard: cloneChild(d.Guard), Body: cloneChild(d.Body)}
	case *IfLetStmt:
		data = &IfLetStmt{Pattern: cloneChild(d.Pattern), Init: cloneChild(d.Init), Then: cloneChild(d.Then), Else: cloneChild(d.Else)}
	case *SpawnStmt:
		data = &SpawnStmt{Call: cloneChild(d.Call)}
	case *SpawnWithHandleStmt:
		data = &SpawnWithHandleStmt{Call: cloneChild(d.Call)}
	case *UnsafeStmt:
		data = &UnsafeStmt{Body: cloneChild(d.Body)}
	case *BreakStmt:
		data = &BreakStmt{}
	case *ContinueStmt:
		data = &ContinueStmt{}
	case *BinaryExpr:
		data = &BinaryExpr{Op: d.Op, Left: cloneChild(d.Left), Right: cloneChild(d.Right)}
	case *UnaryExpr:
		data = &UnaryExpr{Op: d.Op, Operand: cloneChild(d.Operand)}
	case *PostfixExpr:
		data = &PostfixExpr{Base: cloneChild(d.Base), Suffixes: cloneList(d.Suffixes)}
	case *CallExpr:
		data = &CallExpr{Callee: cloneChild(d.Callee), Args: cloneList(d.Args)}
	case *AssocCallExpr:
		data = &AssocCallExpr{TypeName: d.TypeName, MethodName: d.MethodName, TypeArgs: cloneSlice(d.TypeArgs), Args: cloneList(d.Args)}
	case *FieldAccessExpr:
		data = &FieldAccessExpr{Base: cloneChild(d.Base), Field: d.Field}
	case *IndexAccessExpr:
		data = &IndexAccessExpr{Base: cloneChild(d.Base), Index: cloneChild(d.Index)}
	case *SliceExpr:
		data = &SliceExpr{Base: cloneChild(d.Base), Start: cloneChild(d.Start), End: cloneChild(d.End)}
	case *SliceLenExpr:
		data = &SliceLenExpr{Base: cloneChild(d.Base)}
	case *AssignExpr:
		data = &AssignExpr{Target: cloneChild(d.Target), Value: cloneChild(d.Value)}
	case *StructLiteralExpr:
		data = &StructLiteralExpr{TypeName: d.TypeName, Fields: cloneList(d.Fields)}
	case *FieldInit:
		data = &FieldInit{Name: d.Name, Value: cloneChild(d.Value)}
	case *ArrayLiteralExpr:
		data = &ArrayLiteralExpr{Elements: cloneList(d.Elements)}
	case *TupleLiteralExpr:
		data = &TupleLiteralExpr{Elements: cloneList(d.Elements)}
	case *AwaitExpr:
		data = &AwaitExpr{Operand: cloneChild(d.Operand)}
	case *CastExpr:
		data = &CastExpr{Operand: cloneChild(d.Operand), TargetType: cloneChild(d.TargetType)}
	case *IdentifierExpr:
		cp := *d
		data = &cp
	case *LiteralExpr:
		cp := *d
		data = &cp
	case *ConstExpr:
		data = &ConstExpr{Expr: cloneChild(d.Expr)}
	case *BaseTypeNode:
		cp := *d
		data = &cp
	case *NamedTypeNode:
		data = &NamedTypeNode{Name: d.Name, TypeArgs: cloneSlice(d.TypeArgs)}
	case *SliceTypeNode:
		data = &SliceTypeNode{Elem: cloneChild(d.Elem)}
	case *ArrayTypeNode:
		data = &ArrayTypeNode{Elem: cloneChild(d.Elem), Size: d.Size}
	case *StructTypeNode:
		data = &StructTypeNode{Name: d.Name, TypeArgs: cloneSlice(d.TypeArgs)}
	case *EnumTypeNode:
		data = &EnumTypeNode{Name: d.Name, TypeArgs: cloneSlice(d.TypeArgs)}
	case *PointerTypeNode:
		data = &PointerTypeNode{Pointee: cloneChild(d.Pointee), Mutable: d.Mutable}
	case *ResultTypeNode:
		data = &ResultTypeNode{OkType: cloneChild(d.OkType), ErrType: cloneChild(d.ErrType)}
	case *OptionTypeNode:
		data = &OptionTypeNode{ElemType: cloneChild(d.ElemType)}
	case *TupleTypeNode:
		data = &TupleTypeNode{Elems: cloneSlice(d.Elems)}
	case *TaskHandleTypeNode:
		data = &TaskHandleTypeNode{ResultType: cloneChild(d.ResultType)}
	case *EnumPatternNode:
		data = &EnumPatternNode{EnumName: d.EnumName, Variant: d.Variant, Inner: cloneChild(d.Inner)}
	case *StructPatternNode:
		data = &StructPatternNode{StructName: d.StructName, Fields: cloneSlice(d.Fields), Partial: d.Partial}
	case *FieldPatternNode:
		cp := *d
		data = &cp
	case *TuplePatternNode:
		data = &TuplePatternNode{Elems: cloneSlice(d.Elems)}
	case *WildcardPatternNode:
		data = &WildcardPatternNode{}
	case *IdentifierPatternNode:
		cp := *d
		data = &cp
	case *OwnershipTagNode:
		cp := *d
		data = &cp
	case *TransferAnnotationNode:
		cp := *d
		data = &cp
	case *SecurityTagNode:
		cp := *d
		data = &cp
	case *HumanReviewTagNode:
		cp := *d
		data = &cp
	case *SemanticTagNode:
		data = &SemanticTagNode{Key: d.Key, Params: append([]string{}, d.Params...)}
	default:
		data = n.Data
	}
	clone := NewNode(n.Kind, n.Loc, data)
	clone.Flags = n.Flags
	return clone
}
