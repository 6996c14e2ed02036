package glintc

import (
	"sort"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/maps"
)

// SymbolKind discriminates what a SymbolEntry denotes (spec §3).
type SymbolKind int

const (
	SymVariable SymbolKind = iota
	SymFunction
	SymType
	SymParameter
	SymField
	SymMethod
	SymEnumVariant
	SymTypeParameter
	SymConst
)

func (k SymbolKind) String() string {
	switch k {
	case SymVariable:
		return "variable"
	case SymFunction:
		return "function"
	case SymType:
		return "type"
	case SymParameter:
		return "parameter"
	case SymField:
		return "field"
	case SymMethod:
		return "method"
	case SymEnumVariant:
		return "enum_variant"
	case SymTypeParameter:
		return "type_parameter"
	case SymConst:
		return "const"
	default:
		return "unknown"
	}
}

// SymbolFlags packs the small boolean facts a SymbolEntry tracks.
type SymbolFlags uint8

const (
	SymFlagUsed SymbolFlags = 1 << iota
	SymFlagExported
	SymFlagMutable
	SymFlagInitialized
	SymFlagPredeclared
)

func (f SymbolFlags) Has(bit SymbolFlags) bool { return f&bit != 0 }

// SymbolEntry is a single binding in a SymbolTable (spec §3).
type SymbolEntry struct {
	Name       string
	Kind       SymbolKind
	Type       *TypeDescriptor
	Decl       *Node // originating declaration node, if any
	ScopeID    uint64
	Flags      SymbolFlags
	Visibility Visibility

	IsInstanceMethod bool
	GenericParamN    int // >0 for generic declarations

	ConstValue ConstValue // valid only when Kind == SymConst
}

func (e *SymbolEntry) setFlag(bit SymbolFlags, on bool) {
	if on {
		e.Flags |= bit
	} else {
		e.Flags &^= bit
	}
}

// MarkUsed flips the `used` flag; mutable/visibility/etc. are assigned
// once at declaration time and never change thereafter (invariant 4).
func (e *SymbolEntry) MarkUsed() { e.setFlag(SymFlagUsed, true) }

// ModuleAlias binds an import alias to a module path and the symbol
// table exported by that module (spec §3).
type ModuleAlias struct {
	Alias   string
	Path    string
	Symbols *SymbolTable
}

var scopeCounter uint64

func nextScopeID() uint64 { return atomic.AddUint64(&scopeCounter, 1) }

// SymbolTable is a single lexical scope: a bucketed name→entry map
// guarded by a reader/writer lock, with an optional parent for lexical
// nesting and a list of import aliases (spec §3, §4.D).
type SymbolTable struct {
	mu      sync.RWMutex
	id      uint64
	parent  *SymbolTable
	entries map[string]*SymbolEntry
	aliases []ModuleAlias
}

// NewScope creates a fresh scope with the given (possibly nil) parent
// and a freshly allocated, monotonically increasing scope id.
func NewScope(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{id: nextScopeID(), parent: parent, entries: make(map[string]*SymbolEntry)}
}

// ID returns this scope's atomically allocated identifier.
func (t *SymbolTable) ID() uint64 { return t.id }

// Parent returns the lexically enclosing scope, or nil for the global
// scope.
func (t *SymbolTable) Parent() *SymbolTable { return t.parent }

// InsertSafe inserts entry under name if no entry with that name
// already exists in this scope (not ancestor scopes); it reports
// whether the insertion happened. Thread-safe (spec §4.D).
func (t *SymbolTable) InsertSafe(name string, entry *SymbolEntry) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, exists := t.entries[name]; exists {
		return false
	}
	entry.ScopeID = t.id
	t.entries[name] = entry
	return true
}

// LookupLocal looks up name in this scope only, never crossing into a
// parent (invariant 3).
func (t *SymbolTable) LookupLocal(name string) (*SymbolEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.entries[name]
	return e, ok
}

// LookupSafe walks this scope, then its ancestors, then aliased
// module symbol tables, until name is found or the chain is exhausted.
func (t *SymbolTable) LookupSafe(name string) (*SymbolEntry, bool) {
	for s := t; s != nil; s = s.parent {
		if e, ok := s.LookupLocal(name); ok {
			return e, ok
		}
	}
	for s := t; s != nil; s = s.parent {
		if e, ok := s.lookupAlias(name); ok {
			return e, ok
		}
	}
	return nil, false
}

func (t *SymbolTable) lookupAlias(name string) (*SymbolEntry, bool) {
	t.mu.RLock()
	aliases := append([]ModuleAlias{}, t.aliases...)
	t.mu.RUnlock()
	for _, a := range aliases {
		if a.Symbols == nil {
			continue
		}
		if e, ok := a.Symbols.LookupLocal(name); ok {
			return e, ok
		}
	}
	return nil, false
}

// AddAlias registers a module alias binding; lookup through aliases is
// an additional step taken after local/ancestor lookup fails.
func (t *SymbolTable) AddAlias(alias, path string, symbols *SymbolTable) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.aliases = append(t.aliases, ModuleAlias{Alias: alias, Path: path, Symbols: symbols})
}

// Iterate yields (name, entry) pairs for every entry declared directly
// in this scope; cb returning false stops iteration early. Callers
// must not assume any particular order from the underlying map — use
// IterateSorted for deterministic output (e.g. CLI dumps).
func (t *SymbolTable) Iterate(cb func(name string, entry *SymbolEntry) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for name, entry := range t.entries {
		if !cb(name, entry) {
			return
		}
	}
}

// IterateSorted is like Iterate but visits entries in lexicographic
// name order, for reproducible diagnostics and CLI output.
func (t *SymbolTable) IterateSorted(cb func(name string, entry *SymbolEntry) bool) {
	t.mu.RLock()
	names := maps.Keys(t.entries)
	entries := make(map[string]*SymbolEntry, len(t.entries))
	for k, v := range t.entries {
		entries[k] = v
	}
	t.mu.RUnlock()
	sort.Strings(names)
	for _, name := range names {
		if !cb(name, entries[name]) {
			return
		}
	}
}

// Count returns the number of entries declared directly in this scope.
func (t *SymbolTable) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
