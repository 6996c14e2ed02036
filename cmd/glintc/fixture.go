package main

import (
	"encoding/json"
	"fmt"

	"github.com/glintlang/glintc"
)

// fixtureNode is the on-disk JSON shape the driver reads in place of a
// real front-end parser (source-text lexing/parsing is explicitly out
// of scope for the core, §1): one "kind" discriminant plus whatever
// kind-specific fields that node needs, recursively nesting its
// children the same way.
type fixtureNode struct {
	Kind   string            `json:"kind"`
	Name   string            `json:"name"`
	Op     string            `json:"op"`
	Raw    string            `json:"raw"`
	Lit    string            `json:"literal_kind"`
	Vis    string            `json:"visibility"`
	Tag    string            `json:"tag"`
	Path   string            `json:"path"`
	Alias  string            `json:"alias"`
	ABI    string            `json:"abi"`
	Field  string            `json:"field"`
	Binding string           `json:"binding"`
	Variant string           `json:"variant"`
	EnumName string          `json:"enum_name"`
	StructName string        `json:"struct_name"`
	Mutable bool             `json:"mutable"`
	Instance bool            `json:"is_instance"`
	Partial bool             `json:"partial"`
	Ignored bool             `json:"ignored"`
	Size    int              `json:"size"`
	TypeParams []string      `json:"type_params"`
	Params  []string         `json:"params"`
	Names   []string         `json:"names"`

	Type       *fixtureNode   `json:"type"`
	DeclaredType *fixtureNode `json:"declared_type"`
	ReturnType *fixtureNode   `json:"return_type"`
	TargetType *fixtureNode   `json:"target_type"`
	AssocType  *fixtureNode   `json:"assoc_type"`
	Elem       *fixtureNode   `json:"elem"`
	Pointee    *fixtureNode   `json:"pointee"`
	OkType     *fixtureNode   `json:"ok_type"`
	ErrType    *fixtureNode   `json:"err_type"`
	ElemType   *fixtureNode   `json:"elem_type"`
	Ownership  *fixtureNode   `json:"ownership"`
	Transfer   *fixtureNode   `json:"transfer"`
	Init       *fixtureNode   `json:"init"`
	Value      *fixtureNode   `json:"value"`
	Left       *fixtureNode   `json:"left"`
	Right      *fixtureNode   `json:"right"`
	Operand    *fixtureNode   `json:"operand"`
	Base       *fixtureNode   `json:"base"`
	Callee     *fixtureNode   `json:"callee"`
	Index      *fixtureNode   `json:"index"`
	Start      *fixtureNode   `json:"start"`
	End        *fixtureNode   `json:"end"`
	Target     *fixtureNode   `json:"target"`
	Cond       *fixtureNode   `json:"cond"`
	Then       *fixtureNode   `json:"then"`
	Else       *fixtureNode   `json:"else"`
	Iterable   *fixtureNode   `json:"iterable"`
	VarName    string         `json:"var_name"`
	Subject    *fixtureNode   `json:"subject"`
	Pattern    *fixtureNode   `json:"pattern"`
	Guard      *fixtureNode   `json:"guard"`
	Body       *fixtureNode   `json:"body"`
	Call       *fixtureNode   `json:"call"`
	Inner      *fixtureNode   `json:"inner"`

	Package *fixtureNode   `json:"package"`
	Imports []*fixtureNode `json:"imports"`
	Decls   []*fixtureNode `json:"decls"`
	FieldsL []*fixtureNode `json:"fields"`
	ParamsL []*fixtureNode `json:"params_list"`
	Variants []*fixtureNode `json:"variants"`
	Methods []*fixtureNode  `json:"methods"`
	Stmts   []*fixtureNode  `json:"stmts"`
	Arms    []*fixtureNode  `json:"arms"`
	Args    []*fixtureNode  `json:"args"`
	Elements []*fixtureNode `json:"elements"`
	TypeArgs []*fixtureNode `json:"type_args"`
	Elems    []*fixtureNode `json:"elems"`
	Suffixes []*fixtureNode `json:"suffixes"`
}

// parseFixture reads a JSON AST fixture file and builds the
// equivalent *glintc.Node tree, attaching default zero locations (the
// fixture format carries no source spans, since no lexer produced it).
func parseFixture(data []byte) (*glintc.Node, error) {
	var root fixtureNode
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid fixture JSON: %w", err)
	}
	return buildNode(&root)
}

func vis(s string) glintc.Visibility {
	if s == "pub" {
		return glintc.VisibilityPublic
	}
	return glintc.VisibilityPrivate
}

func litKind(s string) glintc.LiteralKind {
	switch s {
	case "int":
		return glintc.LiteralInt
	case "float":
		return glintc.LiteralFloat
	case "string":
		return glintc.LiteralString
	case "bool":
		return glintc.LiteralBool
	case "char":
		return glintc.LiteralChar
	default:
		return glintc.LiteralUnit
	}
}

func buildNode(f *fixtureNode) (*glintc.Node, error) {
	if f == nil {
		return nil, nil
	}
	loc := glintc.SourceLocation{}
	build := func(fn *fixtureNode) *glintc.Node {
		n, _ := buildNode(fn)
		return n
	}
	buildList := func(fns []*fixtureNode) []*glintc.Node {
		out := make([]*glintc.Node, 0, len(fns))
		for _, c := range fns {
			if n := build(c); n != nil {
				out = append(out, n)
			}
		}
		return out
	}
	nodeList := func(fns []*fixtureNode) *glintc.NodeList {
		l := glintc.NewNodeList()
		for _, n := range buildList(fns) {
			l.Append(n)
		}
		return l
	}

	switch f.Kind {
	case "Program":
		return glintc.NewNode(glintc.KindProgram, loc, &glintc.Program{
			Package: build(f.Package), Imports: nodeList(f.Imports), Decls: nodeList(f.Decls),
		}), nil
	case "PackageDecl":
		return glintc.NewNode(glintc.KindPackageDecl, loc, &glintc.PackageDecl{Name: f.Name}), nil
	case "ImportDecl":
		return glintc.NewNode(glintc.KindImportDecl, loc, &glintc.ImportDecl{Alias: f.Alias, Path: f.Path, Names: f.Names}), nil
	case "FunctionDecl":
		return glintc.NewNode(glintc.KindFunctionDecl, loc, &glintc.FunctionDecl{
			Name: f.Name, Visibility: vis(f.Vis), TypeParams: f.TypeParams,
			Params: nodeList(f.ParamsL), ReturnType: build(f.ReturnType), Body: build(f.Body),
		}), nil
	case "Param":
		return glintc.NewNode(glintc.KindParam, loc, &glintc.Param{
			Name: f.Name, Type: build(f.Type), Mutable: f.Mutable, Ownership: build(f.Ownership), Transfer: build(f.Transfer),
		}), nil
	case "FieldDecl":
		return glintc.NewNode(glintc.KindFieldDecl, loc, &glintc.FieldDecl{Name: f.Name, Type: build(f.Type), Visibility: vis(f.Vis)}), nil
	case "StructDecl":
		return glintc.NewNode(glintc.KindStructDecl, loc, &glintc.StructDecl{
			Name: f.Name, Visibility: vis(f.Vis), TypeParams: f.TypeParams, Fields: nodeList(f.FieldsL),
		}), nil
	case "EnumDecl":
		return glintc.NewNode(glintc.KindEnumDecl, loc, &glintc.EnumDecl{
			Name: f.Name, Visibility: vis(f.Vis), TypeParams: f.TypeParams, Variants: nodeList(f.Variants),
		}), nil
	case "EnumVariant":
		return glintc.NewNode(glintc.KindEnumVariant, loc, &glintc.EnumVariant{Name: f.Name, AssocType: build(f.AssocType)}), nil
	case "ExternDecl":
		return glintc.NewNode(glintc.KindExternDecl, loc, &glintc.ExternDecl{
			Name: f.Name, ABI: f.ABI, Params: nodeList(f.ParamsL), ReturnType: build(f.ReturnType), Ownership: build(f.Ownership),
		}), nil
	case "ConstDecl":
		return glintc.NewNode(glintc.KindConstDecl, loc, &glintc.ConstDecl{
			Name: f.Name, Visibility: vis(f.Vis), Type: build(f.Type), Init: build(f.Init),
		}), nil
	case "ImplBlock":
		return glintc.NewNode(glintc.KindImplBlock, loc, &glintc.ImplBlock{TargetType: build(f.TargetType), Methods: nodeList(f.Methods)}), nil
	case "MethodDecl":
		return glintc.NewNode(glintc.KindMethodDecl, loc, &glintc.MethodDecl{
			Name: f.Name, Visibility: vis(f.Vis), IsInstance: f.Instance, Params: nodeList(f.ParamsL), ReturnType: build(f.ReturnType), Body: build(f.Body),
		}), nil
	case "BlockStmt":
		return glintc.NewNode(glintc.KindBlockStmt, loc, &glintc.BlockStmt{Stmts: nodeList(f.Stmts)}), nil
	case "ExprStmt":
		return glintc.NewNode(glintc.KindExprStmt, loc, &glintc.ExprStmt{Expr: build(f.Value)}), nil
	case "LetStmt":
		return glintc.NewNode(glintc.KindLetStmt, loc, &glintc.LetStmt{
			Name: f.Name, Mutable: f.Mutable, DeclaredType: build(f.DeclaredType), Init: build(f.Init), Ownership: build(f.Ownership),
		}), nil
	case "ReturnStmt":
		return glintc.NewNode(glintc.KindReturnStmt, loc, &glintc.ReturnStmt{Value: build(f.Value)}), nil
	case "IfStmt":
		return glintc.NewNode(glintc.KindIfStmt, loc, &glintc.IfStmt{Cond: build(f.Cond), Then: build(f.Then), Else: build(f.Else)}), nil
	case "ForInStmt":
		return glintc.NewNode(glintc.KindForInStmt, loc, &glintc.ForInStmt{VarName: f.VarName, Iterable: build(f.Iterable), Body: build(f.Body)}), nil
	case "MatchStmt":
		return glintc.NewNode(glintc.KindMatchStmt, loc, &glintc.MatchStmt{Subject: build(f.Subject), Arms: nodeList(f.Arms)}), nil
	case "MatchArm":
		return glintc.NewNode(glintc.KindMatchArm, loc, &glintc.MatchArm{Pattern: build(f.Pattern), Guard: build(f.Guard), Body: build(f.Body)}), nil
	case "IfLetStmt":
		return glintc.NewNode(glintc.KindIfLetStmt, loc, &glintc.IfLetStmt{Pattern: build(f.Pattern), Init: build(f.Init), Then: build(f.Then), Else: build(f.Else)}), nil
	case "SpawnStmt":
		return glintc.NewNode(glintc.KindSpawnStmt, loc, &glintc.SpawnStmt{Call: build(f.Call)}), nil
	case "SpawnWithHandleStmt":
		return glintc.NewNode(glintc.KindSpawnWithHandleStmt, loc, &glintc.SpawnWithHandleStmt{Call: build(f.Call)}), nil
	case "UnsafeStmt":
		return glintc.NewNode(glintc.KindUnsafeStmt, loc, &glintc.UnsafeStmt{Body: build(f.Body)}), nil
	case "BreakStmt":
		return glintc.NewNode(glintc.KindBreakStmt, loc, &glintc.BreakStmt{}), nil
	case "ContinueStmt":
		return glintc.NewNode(glintc.KindContinueStmt, loc, &glintc.ContinueStmt{}), nil
	case "BinaryExpr":
		return glintc.NewNode(glintc.KindBinaryExpr, loc, &glintc.BinaryExpr{Op: f.Op, Left: build(f.Left), Right: build(f.Right)}), nil
	case "UnaryExpr":
		return glintc.NewNode(glintc.KindUnaryExpr, loc, &glintc.UnaryExpr{Op: f.Op, Operand: build(f.Operand)}), nil
	case "PostfixExpr":
		return glintc.NewNode(glintc.KindPostfixExpr, loc, &glintc.PostfixExpr{Base: build(f.Base), Suffixes: nodeList(f.Suffixes)}), nil
	case "CallExpr":
		return glintc.NewNode(glintc.KindCallExpr, loc, &glintc.CallExpr{Callee: build(f.Callee), Args: nodeList(f.Args)}), nil
	case "AssocCallExpr":
		return glintc.NewNode(glintc.KindAssocCallExpr, loc, &glintc.AssocCallExpr{
			TypeName: f.Name, MethodName: f.Field, TypeArgs: buildList(f.TypeArgs), Args: nodeList(f.Args),
		}), nil
	case "FieldAccessExpr":
		return glintc.NewNode(glintc.KindFieldAccessExpr, loc, &glintc.FieldAccessExpr{Base: build(f.Base), Field: f.Field}), nil
	case "IndexAccessExpr":
		return glintc.NewNode(glintc.KindIndexAccessExpr, loc, &glintc.IndexAccessExpr{Base: build(f.Base), Index: build(f.Index)}), nil
	case "SliceExpr":
		return glintc.NewNode(glintc.KindSliceExpr, loc, &glintc.SliceExpr{Base: build(f.Base), Start: build(f.Start), End: build(f.End)}), nil
	case "SliceLenExpr":
		return glintc.NewNode(glintc.KindSliceLenExpr, loc, &glintc.SliceLenExpr{Base: build(f.Base)}), nil
	case "AssignExpr":
		return glintc.NewNode(glintc.KindAssignExpr, loc, &glintc.AssignExpr{Target: build(f.Target), Value: build(f.Value)}), nil
	case "StructLiteralExpr":
		return glintc.NewNode(glintc.KindStructLiteralExpr, loc, &glintc.StructLiteralExpr{TypeName: f.Name, Fields: nodeList(f.FieldsL)}), nil
	case "FieldInit":
		return glintc.NewNode(glintc.KindFieldInit, loc, &glintc.FieldInit{Name: f.Name, Value: build(f.Value)}), nil
	case "ArrayLiteralExpr":
		return glintc.NewNode(glintc.KindArrayLiteralExpr, loc, &glintc.ArrayLiteralExpr{Elements: nodeList(f.Elements)}), nil
	case "TupleLiteralExpr":
		return glintc.NewNode(glintc.KindTupleLiteralExpr, loc, &glintc.TupleLiteralExpr{Elements: nodeList(f.Elements)}), nil
	case "AwaitExpr":
		return glintc.NewNode(glintc.KindAwaitExpr, loc, &glintc.AwaitExpr{Operand: build(f.Operand)}), nil
	case "CastExpr":
		return glintc.NewNode(glintc.KindCastExpr, loc, &glintc.CastExpr{Operand: build(f.Operand), TargetType: build(f.TargetType)}), nil
	case "IdentifierExpr":
		return glintc.NewNode(glintc.KindIdentifierExpr, loc, &glintc.IdentifierExpr{Name: f.Name}), nil
	case "LiteralExpr":
		return glintc.NewNode(glintc.KindLiteralExpr, loc, &glintc.LiteralExpr{LiteralKind: litKind(f.Lit), Raw: f.Raw}), nil
	case "ConstExpr":
		return glintc.NewNode(glintc.KindConstExpr, loc, &glintc.ConstExpr{Expr: build(f.Value)}), nil
	case "BaseType":
		return glintc.NewNode(glintc.KindBaseType, loc, &glintc.BaseTypeNode{Name: f.Name}), nil
	case "NamedType":
		return glintc.NewNode(glintc.KindNamedType, loc, &glintc.NamedTypeNode{Name: f.Name, TypeArgs: buildList(f.TypeArgs)}), nil
	case "SliceType":
		return glintc.NewNode(glintc.KindSliceType, loc, &glintc.SliceTypeNode{Elem: build(f.Elem)}), nil
	case "ArrayType":
		return glintc.NewNode(glintc.KindArrayType, loc, &glintc.ArrayTypeNode{Elem: build(f.Elem), Size: f.Size}), nil
	case "StructType":
		return glintc.NewNode(glintc.KindStructType, loc, &glintc.StructTypeNode{Name: f.Name, TypeArgs: buildList(f.TypeArgs)}), nil
	case "EnumType":
		return glintc.NewNode(glintc.KindEnumType, loc, &glintc.EnumTypeNode{Name: f.Name, TypeArgs: buildList(f.TypeArgs)}), nil
	case "PointerType":
		return glintc.NewNode(glintc.KindPointerType, loc, &glintc.PointerTypeNode{Pointee: build(f.Pointee), Mutable: f.Mutable}), nil
	case "ResultType":
		return glintc.NewNode(glintc.KindResultType, loc, &glintc.ResultTypeNode{OkType: build(f.OkType), ErrType: build(f.ErrType)}), nil
	case "OptionType":
		return glintc.NewNode(glintc.KindOptionType, loc, &glintc.OptionTypeNode{ElemType: build(f.ElemType)}), nil
	case "TupleType":
		return glintc.NewNode(glintc.KindTupleType, loc, &glintc.TupleTypeNode{Elems: buildList(f.Elems)}), nil
	case "TaskHandleType":
		return glintc.NewNode(glintc.KindTaskHandleType, loc, &glintc.TaskHandleTypeNode{ResultType: build(f.ReturnType)}), nil
	case "EnumPattern":
		return glintc.NewNode(glintc.KindEnumPattern, loc, &glintc.EnumPatternNode{EnumName: f.EnumName, Variant: f.Variant, Inner: build(f.Inner)}), nil
	case "StructPattern":
		return glintc.NewNode(glintc.KindStructPattern, loc, &glintc.StructPatternNode{StructName: f.StructName, Fields: buildList(f.FieldsL), Partial: f.Partial}), nil
	case "FieldPattern":
		return glintc.NewNode(glintc.KindFieldPattern, loc, &glintc.FieldPatternNode{Name: f.Name, Binding: f.Binding, Ignored: f.Ignored}), nil
	case "TuplePattern":
		return glintc.NewNode(glintc.KindTuplePattern, loc, &glintc.TuplePatternNode{Elems: buildList(f.Elems)}), nil
	case "WildcardPattern":
		return glintc.NewNode(glintc.KindWildcardPattern, loc, &glintc.WildcardPatternNode{}), nil
	case "IdentifierPattern":
		return glintc.NewNode(glintc.KindIdentifierPattern, loc, &glintc.IdentifierPatternNode{Name: f.Name}), nil
	case "OwnershipTag":
		return glintc.NewNode(glintc.KindOwnershipTag, loc, &glintc.OwnershipTagNode{Tag: f.Tag}), nil
	case "TransferAnnotation":
		return glintc.NewNode(glintc.KindTransferAnnotation, loc, &glintc.TransferAnnotationNode{Kind: f.Name}), nil
	case "SecurityTag":
		return glintc.NewNode(glintc.KindSecurityTag, loc, &glintc.SecurityTagNode{Tag: f.Tag}), nil
	case "HumanReviewTag":
		return glintc.NewNode(glintc.KindHumanReviewTag, loc, &glintc.HumanReviewTagNode{Note: f.Raw}), nil
	case "SemanticTag":
		return glintc.NewNode(glintc.KindSemanticTag, loc, &glintc.SemanticTagNode{Key: f.Name, Params: f.Params}), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown fixture node kind %q", f.Kind)
	}
}
