package transform

import (
	"fmt"

	"slate/internal/symgraph"
)

// Rename records one generated-name decision for the dump output.
type Rename struct {
	Qualified string
	Kind      symgraph.SymbolKind
	From      string
	To        string
}

// Transform assigns generated names to every application symbol in set,
// walking types base-first so that overriding members can copy the name
// already given to the member they override. Imported symbols keep the
// generated names their metadata carried; their names are only reserved so
// fresh allocations cannot collide with them.
func Transform(set *symgraph.SymbolSet, mode Mode) []Rename {
	t := &transformer{set: set, mode: mode}
	t.init()

	order := set.InheritanceOrder()
	for _, id := range order {
		t.transformType(id)
	}
	// Fragment names follow the primary, which is transformed by now.
	for _, id := range order {
		typ := set.Type(id)
		if !typ.IsPrimary() {
			typ.GeneratedName = set.Type(typ.Primary).GeneratedName
		}
	}
	return t.renames
}

type transformer struct {
	set     *symgraph.SymbolSet
	mode    Mode
	types   *ShortNamer
	renames []Rename
}

// init seeds the type-name scope with every name the output script cannot
// reuse: imported types and preserved application types.
func (t *transformer) init() {
	t.types = NewShortNamer()
	for _, id := range t.set.InheritanceOrder() {
		typ := t.set.Type(id)
		if !typ.IsApplication() || typ.Flags&symgraph.FlagPreserve != 0 {
			t.types.Reserve(typ.GeneratedName)
		}
	}
}

func (t *transformer) transformType(id symgraph.TypeID) {
	typ := t.set.Type(id)
	if typ.IsApplication() && typ.IsPrimary() {
		t.nameType(typ)
	}
	if !typ.IsPrimary() {
		return
	}

	members := NewShortNamer()
	for name := range t.set.InheritedGeneratedNames(id) {
		members.Reserve(name)
	}
	for _, mid := range typ.Members {
		t.nameMember(typ, t.set.Member(mid), members)
	}
}

func (t *transformer) nameType(typ *symgraph.TypeSymbol) {
	from := typ.Name
	switch {
	case typ.Flags&symgraph.FlagPreserve != 0:
		typ.GeneratedName = typ.Name
	case t.mode == ModeObfuscate:
		typ.GeneratedName = t.types.Next()
	default:
		typ.GeneratedName = t.unique(t.types, Internalize(typ.Name))
	}
	if typ.GeneratedName != from {
		t.record(typ.QualifiedName(), typ.Kind, from, typ.GeneratedName)
	}
}

func (t *transformer) nameMember(owner *symgraph.TypeSymbol, m *symgraph.MemberSymbol, scope *ShortNamer) {
	from := m.Name
	switch {
	case !owner.IsApplication():
		scope.Reserve(m.GeneratedName)
		return
	case m.Overrides.IsValid():
		// Overriding members answer to the same generated name as the
		// member they override, all the way up the chain.
		m.GeneratedName = t.set.Member(m.Overrides).GeneratedName
		scope.Reserve(m.GeneratedName)
	case m.Flags&symgraph.FlagPreserve != 0:
		m.GeneratedName = m.Name
		scope.Reserve(m.GeneratedName)
	case t.mode == ModeObfuscate && m.Flags&symgraph.FlagPublic == 0:
		m.GeneratedName = scope.Next()
	default:
		m.GeneratedName = t.unique(scope, Internalize(m.Name))
	}
	if m.GeneratedName != from {
		t.record(owner.QualifiedName()+"."+m.Name, m.Kind, from, m.GeneratedName)
	}
}

// unique reserves base in scope, suffixing it when the plain form is
// already taken.
func (t *transformer) unique(scope *ShortNamer, base string) string {
	name := base
	for i := 1; scope.Taken(name) || IsReserved(name); i++ {
		name = fmt.Sprintf("%s$%d", base, i)
	}
	scope.Reserve(name)
	return name
}

func (t *transformer) record(qualified string, kind symgraph.SymbolKind, from, to string) {
	t.renames = append(t.renames, Rename{Qualified: qualified, Kind: kind, From: from, To: to})
}
