package glintc

import "strconv"

// analyzeExpr type-checks n and attaches the resulting TypeInfo to it,
// returning the TypeDescriptor so callers can keep checking. Returns
// nil on failure, after reporting a diagnostic (spec §4.G, §7).
func (a *Analyzer) analyzeExpr(n *Node) *TypeDescriptor {
	if n == nil {
		return nil
	}
	t := a.analyzeExprUntyped(n)
	n.Flags = n.Flags.Set(FlagValidated)
	if t != nil {
		n.AttachTypeInfo(NewTypeInfo(t))
		n.Flags = n.Flags.Set(FlagTypeChecked)
	}
	return t
}

func (a *Analyzer) analyzeExprUntyped(n *Node) *TypeDescriptor {
	switch d := n.Data.(type) {
	case *LiteralExpr:
		return a.analyzeLiteral(d)
	case *IdentifierExpr:
		entry, ok := a.Current.LookupSafe(d.Name)
		if !ok {
			a.Diagnostics.Report(UndefinedSymbol, n.Loc, "undefined symbol `"+d.Name+"`")
			return nil
		}
		entry.MarkUsed()
		return entry.Type
	case *ConstExpr:
		return a.analyzeExpr(d.Expr)
	case *BinaryExpr:
		left := a.analyzeExpr(d.Left)
		right := a.analyzeExpr(d.Right)
		result, ok := binaryResultType(d.Op, left, right)
		if !ok {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "operator `"+d.Op+"` not applicable to operand types")
			return nil
		}
		return result
	case *UnaryExpr:
		return a.analyzeUnary(n, d)
	case *PostfixExpr:
		return a.analyzePostfix(n, d)
	case *CallExpr:
		return a.analyzeCall(n, d)
	case *AssocCallExpr:
		return a.analyzeAssocCall(n, d)
	case *FieldAccessExpr:
		return a.analyzeFieldAccess(n, d)
	case *IndexAccessExpr:
		return a.analyzeIndexAccess(n, d)
	case *SliceExpr:
		base := a.analyzeExpr(d.Base)
		if d.Start != nil {
			a.analyzeExpr(d.Start)
		}
		if d.End != nil {
			a.analyzeExpr(d.End)
		}
		if base == nil || (base.Category != CategorySlice && base.Category != CategoryArray) {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "cannot slice a non-sequence type")
			return nil
		}
		return Slice(base.Elem)
	case *SliceLenExpr:
		base := a.analyzeExpr(d.Base)
		if base == nil || (base.Category != CategorySlice && base.Category != CategoryArray) {
			a.Diagnostics.Report(InvalidOperation, n.Loc, ".len requires a slice or array")
			return nil
		}
		return Primitive(PrimUsize)
	case *AssignExpr:
		return a.analyzeAssign(n, d)
	case *StructLiteralExpr:
		return a.analyzeStructLiteral(n, d)
	case *ArrayLiteralExpr:
		return a.analyzeArrayLiteral(n, d)
	case *TupleLiteralExpr:
		elems := make([]*TypeDescriptor, 0, d.Elements.Len())
		for _, e := range d.Elements.Slice() {
			elems = append(elems, a.analyzeExpr(e))
		}
		return Tuple(elems)
	case *AwaitExpr:
		operand := a.analyzeExpr(d.Operand)
		if operand == nil || operand.Category != CategoryTaskHandle {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "await requires a TaskHandle")
			return nil
		}
		return operand.Elem
	case *CastExpr:
		from := a.analyzeExpr(d.Operand)
		to := a.resolveTypeNode(d.TargetType)
		if !castAllowed(from, to) {
			a.Diagnostics.Report(TypeMismatch, n.Loc, "invalid cast")
			return nil
		}
		return to
	default:
		a.Diagnostics.Report(InvalidOperation, n.Loc, "unsupported expression")
		return nil
	}
}

// analyzeLiteral types a literal against the default primitive for its
// kind, unless the resolution context set by the enclosing `let`/return
// (§4.G step 4) names a compatible, more specific numeric type, in
// which case an untyped int/float literal widens to it directly rather
// than forcing a separate widening check at the call site.
func (a *Analyzer) analyzeLiteral(lit *LiteralExpr) *TypeDescriptor {
	switch lit.LiteralKind {
	case LiteralInt:
		if exp := a.expectedType(); exp != nil && exp.Category == CategoryPrimitive && isInt(exp.Primitive) {
			return exp
		}
		return Primitive(PrimI32)
	case LiteralFloat:
		if exp := a.expectedType(); exp != nil && exp.Category == CategoryPrimitive && isFloat(exp.Primitive) {
			return exp
		}
		return Primitive(PrimF32)
	case LiteralString:
		return Primitive(PrimString)
	case LiteralBool:
		return Primitive(PrimBool)
	case LiteralChar:
		return Primitive(PrimChar)
	case LiteralUnit:
		return Primitive(PrimVoid)
	default:
		return Primitive(PrimVoid)
	}
}

func (a *Analyzer) analyzeUnary(n *Node, u *UnaryExpr) *TypeDescriptor {
	switch u.Op {
	case "*":
		if a.unsafeDepth == 0 {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "raw pointer dereference requires an `unsafe` block")
		}
		operand := a.analyzeExpr(u.Operand)
		if operand == nil || operand.Category != CategoryPointer {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "cannot dereference a non-pointer")
			return nil
		}
		return operand.Elem
	case "&":
		operand := a.analyzeExpr(u.Operand)
		if operand == nil {
			return nil
		}
		return Pointer(operand, false)
	case "-":
		operand := a.analyzeExpr(u.Operand)
		if operand == nil || operand.Category != CategoryPrimitive || !isNumeric(operand.Primitive) {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "unary `-` requires a numeric operand")
			return nil
		}
		return operand
	case "!":
		operand := a.analyzeExpr(u.Operand)
		if operand == nil || operand.Category != CategoryPrimitive || operand.Primitive != PrimBool {
			a.Diagnostics.Report(InvalidOperation, n.Loc, "unary `!` requires a bool operand")
			return nil
		}
		return operand
	default:
		a.Diagnostics.Report(InvalidOperation, n.Loc, "unknown unary operator `"+u.Op+"`")
		return nil
	}
}

// analyzePostfix threads a base expression's type through a chain of
// suffixes (call, field access, index access, …), filling in each
// suffix's Base pointer from the prior link before delegating to its
// own analyzer.
func (a *Analyzer) analyzePostfix(n *Node, p *PostfixExpr) *TypeDescriptor {
	current := p.Base
	currentType := a.analyzeExpr(current)
	for _, suffix := range p.Suffixes.Slice() {
		switch s := suffix.Data.(type) {
		case *FieldAccessExpr:
			s.Base = current
			currentType = a.analyzeFieldAccess(suffix, s)
		case *IndexAccessExpr:
			s.Base = current
			currentType = a.analyzeIndexAccess(suffix, s)
		case *CallExpr:
			s.Callee = current
			currentType = a.analyzeCall(suffix, s)
		default:
			a.Diagnostics.Report(InvalidOperation, suffix.Loc, "invalid postfix suffix")
			return nil
		}
		current = suffix
		if currentType == nil {
			return nil
		}
	}
	return currentType
}

func (a *Analyzer) analyzeCall(n *Node, c *CallExpr) *TypeDescriptor {
	calleeType := a.resolveCallCallee(c)
	args := make([]*TypeDescriptor, 0, c.Args.Len())
	for _, an := range c.Args.Slice() {
		args = append(args, a.analyzeExpr(an))
	}
	if calleeType == nil || calleeType.Category != CategoryFunction {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "call target is not a function")
		return nil
	}
	n.Flags = n.Flags.Set(FlagHasSideEffects)
	if calleeType.Extern {
		a.validateFFICall(n, calleeType, args)
	}
	if len(args) != len(calleeType.Params) {
		a.Diagnostics.Report(GenericArgMismatch, n.Loc, "call expects "+itoa(len(calleeType.Params))+" argument(s), got "+itoa(len(args)))
		return calleeType.Return
	}
	for i, pt := range calleeType.Params {
		if args[i] != nil && pt != nil && !typesCompatible(pt, args[i]) {
			a.Diagnostics.Report(TypeMismatch, n.Loc, "argument "+itoa(i+1)+": expected "+pt.typeName()+", got "+args[i].typeName())
		}
	}
	return calleeType.Return
}

// resolveCallCallee resolves a call's callee type, special-casing the
// predeclared `range` overload set: `range(i32)` and `range(i32, i32)`
// are registered under distinct symbol names (builtins.go) since the
// symbol table has no native overloading, so the 2-arg form must be
// selected by the call's own arity rather than by the identifier alone.
func (a *Analyzer) resolveCallCallee(c *CallExpr) *TypeDescriptor {
	if id, ok := c.Callee.Data.(*IdentifierExpr); ok && id.Name == "range" && c.Args.Len() == 2 {
		if entry, ok := a.Current.LookupSafe("range2"); ok {
			entry.MarkUsed()
			c.Callee.AttachTypeInfo(NewTypeInfo(entry.Type))
			c.Callee.Flags = c.Callee.Flags.Set(FlagValidated).Set(FlagTypeChecked)
			return entry.Type
		}
	}
	return a.analyzeExpr(c.Callee)
}

// analyzeAssocCall resolves `Type.method(args)` / `Type::variant` style
// calls by looking the method up in the target type's member scope. If
// the call omits explicit type arguments for a generic target, it falls
// back to the resolution context pushed by the enclosing `let`/return
// (§4.G step 4) to infer them — the way `let r: Result<i32,string> =
// Result.Ok(42)` instantiates `Result<i32,string>` from the declared
// type rather than leaving the call untyped.
func (a *Analyzer) analyzeAssocCall(n *Node, ac *AssocCallExpr) *TypeDescriptor {
	typeEntry, ok := a.Current.LookupSafe(ac.TypeName)
	if !ok || typeEntry.Kind != SymType {
		a.Diagnostics.Report(UndefinedSymbol, n.Loc, "undefined type `"+ac.TypeName+"`")
		return nil
	}
	target := typeEntry.Type

	var args []*TypeDescriptor
	switch {
	case len(ac.TypeArgs) > 0:
		args = make([]*TypeDescriptor, len(ac.TypeArgs))
		for i, tn := range ac.TypeArgs {
			args[i] = a.resolveTypeNode(tn)
		}
	case typeEntry.GenericParamN > 0:
		expected := a.expectedType()
		if expected == nil || expected.Base == nil || expected.Base.Name != ac.TypeName {
			a.Diagnostics.Report(TypeInferenceFailed, n.Loc,
				"cannot infer type arguments for generic `"+ac.TypeName+"`; provide them explicitly or assign to a typed `let`")
			return nil
		}
		args = expected.TypeArgs
	}

	if len(args) > 0 {
		inst, found := a.Generics.Instantiate(a, ac.TypeName, args, n.Loc)
		if !found {
			return nil
		}
		target = inst.Type
	}
	if target == nil || target.Fields == nil {
		return nil
	}
	method, ok := target.Fields.LookupLocal(ac.MethodName)
	if !ok {
		a.Diagnostics.Report(UndefinedSymbol, n.Loc, "`"+ac.TypeName+"` has no member `"+ac.MethodName+"`")
		return nil
	}
	method.MarkUsed()
	n.Flags = n.Flags.Set(FlagHasSideEffects)
	for _, an := range ac.Args.Slice() {
		a.analyzeExpr(an)
	}
	// An enum-variant "call" is a constructor: its value is the enum
	// itself, not the variant's associated payload type. A genuine
	// associated/instance method yields its declared return type.
	switch method.Kind {
	case SymEnumVariant:
		return target
	default:
		if method.Type != nil && method.Type.Category == CategoryFunction {
			return method.Type.Return
		}
		return method.Type
	}
}

func (a *Analyzer) analyzeFieldAccess(n *Node, f *FieldAccessExpr) *TypeDescriptor {
	base := a.analyzeExpr(f.Base)
	if base == nil {
		return nil
	}
	if base.Category == CategoryPointer {
		base = base.Elem
	}
	if base == nil || base.Fields == nil {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "field access on a non-struct type")
		return nil
	}
	entry, ok := base.Fields.LookupLocal(f.Field)
	if !ok {
		a.Diagnostics.Report(UndefinedSymbol, n.Loc, "`"+base.Name+"` has no field `"+f.Field+"`")
		return nil
	}
	entry.MarkUsed()
	return entry.Type
}

func (a *Analyzer) analyzeIndexAccess(n *Node, ix *IndexAccessExpr) *TypeDescriptor {
	base := a.analyzeExpr(ix.Base)
	idx := a.analyzeExpr(ix.Index)
	if base == nil || (base.Category != CategorySlice && base.Category != CategoryArray) {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "indexing requires a slice or array")
		return nil
	}
	if idx == nil || idx.Category != CategoryPrimitive || !isInt(idx.Primitive) {
		a.Diagnostics.Report(InvalidOperation, n.Loc, "index must be an integer")
	}
	return base.Elem
}

// analyzeAssign implements §4.G "Assignment": target mutability is
// checked first, then both sides, then compatibility.
func (a *Analyzer) analyzeAssign(n *Node, asn *AssignExpr) *TypeDescriptor {
	n.Flags = n.Flags.Set(FlagHasSideEffects)
	if !a.checkAssignTarget(asn.Target) {
		return nil
	}
	targetType := a.analyzeExpr(asn.Target)
	valueType := a.analyzeExpr(asn.Value)
	if targetType != nil && valueType != nil && !typesCompatible(targetType, valueType) {
		a.Diagnostics.Report(TypeMismatch, n.Loc, "cannot assign "+valueType.typeName()+" to "+targetType.typeName())
	}
	return targetType
}

// checkAssignTarget walks the assignment target per §4.G's
// mutability rules, reporting IMMUTABLE_MODIFICATION /
// OWNERSHIP_TRANSFER_VIOLATION as appropriate, and returns whether the
// target is assignable at all.
func (a *Analyzer) checkAssignTarget(target *Node) bool {
	switch t := target.Data.(type) {
	case *IdentifierExpr:
		entry, ok := a.Current.LookupSafe(t.Name)
		if !ok {
			a.Diagnostics.Report(UndefinedSymbol, target.Loc, "undefined symbol `"+t.Name+"`")
			return false
		}
		if entry.Kind != SymVariable && entry.Kind != SymParameter {
			a.Diagnostics.Report(InvalidOperation, target.Loc, "`"+t.Name+"` is not assignable")
			return false
		}
		if !entry.Flags.Has(SymFlagMutable) {
			a.Diagnostics.ReportWithHint(ImmutableModification, target.Loc, "cannot assign to immutable `"+t.Name+"`", "declare with `mut` to allow assignment")
			return false
		}
		target.Flags = target.Flags.Set(FlagIsLvalue).Set(FlagIsMutable)
		return true
	case *FieldAccessExpr:
		if !a.checkAssignTarget(t.Base) {
			return false
		}
		target.Flags = target.Flags.Set(FlagIsLvalue).Set(FlagIsMutable)
		return true
	case *IndexAccessExpr:
		if !a.checkAssignTarget(t.Base) {
			return false
		}
		target.Flags = target.Flags.Set(FlagIsLvalue).Set(FlagIsMutable)
		return true
	case *UnaryExpr:
		if t.Op != "*" {
			a.Diagnostics.Report(InvalidOperation, target.Loc, "invalid assignment target")
			return false
		}
		ptrType := a.analyzeExpr(t.Operand)
		if ptrType == nil || ptrType.Category != CategoryPointer {
			a.Diagnostics.Report(InvalidOperation, target.Loc, "cannot assign through a non-pointer dereference")
			return false
		}
		if !ptrType.PtrMutable {
			a.Diagnostics.Report(OwnershipTransferViolation, target.Loc, "cannot assign through const pointer")
			return false
		}
		target.Flags = target.Flags.Set(FlagIsLvalue).Set(FlagIsMutable)
		return true
	default:
		a.Diagnostics.Report(InvalidOperation, target.Loc, "invalid assignment target")
		return false
	}
}

func (a *Analyzer) analyzeStructLiteral(n *Node, s *StructLiteralExpr) *TypeDescriptor {
	entry, ok := a.Current.LookupSafe(s.TypeName)
	if !ok || entry.Kind != SymType || entry.Type.Fields == nil {
		a.Diagnostics.Report(UndefinedSymbol, n.Loc, "undefined struct type `"+s.TypeName+"`")
		return nil
	}
	seen := make(map[string]bool, s.Fields.Len())
	for _, fn := range s.Fields.Slice() {
		fi, ok := fn.Data.(*FieldInit)
		if !ok {
			continue
		}
		fieldEntry, ok := entry.Type.Fields.LookupLocal(fi.Name)
		if !ok {
			a.Diagnostics.Report(UndefinedSymbol, fn.Loc, "`"+s.TypeName+"` has no field `"+fi.Name+"`")
			continue
		}
		seen[fi.Name] = true
		valType := a.analyzeExpr(fi.Value)
		if valType != nil && fieldEntry.Type != nil && !typesCompatible(fieldEntry.Type, valType) {
			a.Diagnostics.Report(TypeMismatch, fn.Loc, "field `"+fi.Name+"` expects "+fieldEntry.Type.typeName()+", got "+valType.typeName())
		}
	}
	entry.Type.Fields.IterateSorted(func(name string, _ *SymbolEntry) bool {
		if !seen[name] {
			a.Diagnostics.Report(TypeInferenceFailed, n.Loc, "missing field `"+name+"` in `"+s.TypeName+"` literal")
		}
		return true
	})
	return entry.Type
}

func (a *Analyzer) analyzeArrayLiteral(n *Node, arr *ArrayLiteralExpr) *TypeDescriptor {
	elems := arr.Elements.Slice()
	if len(elems) == 0 {
		return Array(Primitive(PrimVoid), 0)
	}
	first := a.analyzeExpr(elems[0])
	for _, e := range elems[1:] {
		et := a.analyzeExpr(e)
		if first != nil && et != nil && !typesCompatible(first, et) {
			a.Diagnostics.Report(TypeMismatch, n.Loc, "array elements must share a type")
		}
	}
	if first == nil {
		return nil
	}
	return Array(first, len(elems))
}

// evalConstExpr implements the compile-time-evaluable subset accepted
// for CONST initializers (§4.F "Const" / §6): literals, `sizeof(T)`, a
// reference to another const, and arithmetic over those. Every node
// that folds successfully is marked FlagConstantExpr (spec §3).
func (a *Analyzer) evalConstExpr(n *Node) (ConstValue, bool) {
	v, ok := a.evalConstExprKind(n)
	if ok {
		n.Flags = n.Flags.Set(FlagConstantExpr)
	}
	return v, ok
}

func (a *Analyzer) evalConstExprKind(n *Node) (ConstValue, bool) {
	switch d := n.Data.(type) {
	case *LiteralExpr:
		return literalConstValue(d)
	case *IdentifierExpr:
		entry, ok := a.Current.LookupSafe(d.Name)
		if !ok || entry.Kind != SymConst {
			return ConstValue{}, false
		}
		return entry.ConstValue, true
	case *BinaryExpr:
		left, lok := a.evalConstExpr(d.Left)
		right, rok := a.evalConstExpr(d.Right)
		if !lok || !rok {
			return ConstValue{}, false
		}
		return foldConst(d.Op, left, right)
	case *CallExpr:
		return a.evalSizeofCall(d, n.Loc)
	default:
		return ConstValue{}, false
	}
}

// evalSizeofCall recognizes the `sizeof(T)` const form named by §4.F
// and §6: a single-argument call to `sizeof` whose argument is a type
// reference rather than a value expression, evaluated to the resolved
// type's byte size.
func (a *Analyzer) evalSizeofCall(c *CallExpr, loc SourceLocation) (ConstValue, bool) {
	id, ok := c.Callee.Data.(*IdentifierExpr)
	if !ok || id.Name != "sizeof" || c.Args.Len() != 1 {
		return ConstValue{}, false
	}
	t := a.resolveTypeNode(c.Args.At(0))
	if t == nil {
		return ConstValue{}, false
	}
	return ConstValue{Kind: ConstInt, Int: int64(t.Size)}, true
}

func literalConstValue(lit *LiteralExpr) (ConstValue, bool) {
	switch lit.LiteralKind {
	case LiteralInt:
		v, err := strconv.ParseInt(lit.Raw, 10, 64)
		if err != nil {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: v}, true
	case LiteralFloat:
		v, err := strconv.ParseFloat(lit.Raw, 64)
		if err != nil {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstFloat, Float: v}, true
	case LiteralString:
		return ConstValue{Kind: ConstString, Str: lit.Raw}, true
	case LiteralBool:
		return ConstValue{Kind: ConstBool, Bool: lit.Raw == "true"}, true
	default:
		return ConstValue{}, false
	}
}

func foldConst(op string, left, right ConstValue) (ConstValue, bool) {
	if left.Kind != ConstInt || right.Kind != ConstInt {
		return ConstValue{}, false
	}
	switch op {
	case "+":
		return ConstValue{Kind: ConstInt, Int: left.Int + right.Int}, true
	case "-":
		return ConstValue{Kind: ConstInt, Int: left.Int - right.Int}, true
	case "*":
		return ConstValue{Kind: ConstInt, Int: left.Int * right.Int}, true
	case "/":
		if right.Int == 0 {
			return ConstValue{}, false
		}
		return ConstValue{Kind: ConstInt, Int: left.Int / right.Int}, true
	default:
		return ConstValue{}, false
	}
}
