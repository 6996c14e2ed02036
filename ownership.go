package glintc

// validOwnershipTags is the closed set accepted everywhere an
// ownership annotation appears (spec §4.H rule 1).
var validOwnershipTags = map[string]bool{"gc": true, "c": true, "pinned": true}

// checkOwnershipTag validates a `let`/parameter ownership annotation
// against the closed tag set, reporting INVALID_ANNOTATION otherwise
// (spec §4.G step 7, §4.H rule 1).
func (a *Analyzer) checkOwnershipTag(n *Node) {
	if n == nil {
		return
	}
	tag, ok := n.Data.(*OwnershipTagNode)
	if !ok {
		return
	}
	if !validOwnershipTags[tag.Tag] {
		a.Diagnostics.Report(InvalidAnnotation, n.Loc, "unknown ownership tag `"+tag.Tag+"`")
	}
}

// validateFFICall implements §4.H's crossing-point half of the
// ownership validator: for each pointer-typed parameter of the
// `extern` callee that has a matching argument, it reports
// OWNERSHIP_FFI_BOUNDARY when that pointer type is not FFI-compatible.
// Transfer annotations are checked only at the declaration
// (analyzeExternDecl), not here.
func (a *Analyzer) validateFFICall(n *Node, fnType *TypeDescriptor, args []*TypeDescriptor) {
	for i, pt := range fnType.Params {
		if i >= len(args) {
			break
		}
		if pt != nil && pt.Category == CategoryPointer && !pt.FFICompatible {
			a.Diagnostics.Report(OwnershipFFIBoundary, n.Loc, "argument "+itoa(i+1)+" crosses the FFI boundary through a non-FFI-compatible pointee")
		}
	}
}

// checkBorrowEscape implements the coarse, declaration-level half of
// §4.H rule 5: it reports a `gc`-tagged `let` whose declared type is a
// const pointer. It does not look at `borrowed` transfer annotations,
// at returns, or at assignments into `pinned`/`gc` fields. Deeper,
// flow-sensitive lifetime analysis is out of scope for the core (§4.H
// rule 5, "non-goal").
func (a *Analyzer) checkBorrowEscape(letNode *Node, l *LetStmt, declaredType *TypeDescriptor) {
	if l.Ownership == nil {
		return
	}
	tag, ok := l.Ownership.Data.(*OwnershipTagNode)
	if !ok || tag.Tag != "gc" {
		return
	}
	if declaredType != nil && declaredType.Category == CategoryPointer && !declaredType.PtrMutable {
		// A `gc`-tagged binding of a borrowed const pointer is the one
		// shape the core can flag without flow analysis: the pointee's
		// lifetime is not owned by this binding, yet `gc` promises the
		// collector will keep it alive past the borrow's source scope.
		a.Diagnostics.ReportWithHint(OwnershipTransferViolation, letNode.Loc,
			"`gc`-tagged binding of a borrowed pointer may outlive its source",
			"borrow the value with `c` or `pinned`, or copy it, instead of tagging it `gc`")
	}
}
