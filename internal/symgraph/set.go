package symgraph

import (
	"fmt"

	"fortio.org/safecast"
)

// Hints provide optional capacity suggestions for the symbol arenas.
type Hints struct{ Types, Members uint }

// SymbolSet owns every TypeSymbol and MemberSymbol of one compilation. It is
// created once per compile call, populated by the metadata importer and the
// metadata builder, renamed in place by the transformer pipeline, and read
// by the emitter. A set must never be shared across concurrent compiles.
type SymbolSet struct {
	types   []TypeSymbol   // index 0 reserved for NoTypeID
	members []MemberSymbol // index 0 reserved for NoMemberID
	byName  map[string]TypeID

	deps    []string
	depSeen map[string]struct{}

	// ScriptName is the logical script name used by the output template.
	ScriptName string
}

// NewSymbolSet builds an empty set with optional capacity hints.
func NewSymbolSet(h Hints) *SymbolSet {
	typeCap, err := safecast.Conv[uint32](h.Types)
	if err != nil {
		panic(fmt.Errorf("type capacity overflow: %w", err))
	}
	memberCap, err := safecast.Conv[uint32](h.Members)
	if err != nil {
		panic(fmt.Errorf("member capacity overflow: %w", err))
	}
	if typeCap == 0 {
		typeCap = 32
	}
	if memberCap == 0 {
		memberCap = 128
	}
	return &SymbolSet{
		types:   make([]TypeSymbol, 1, typeCap+1),
		members: make([]MemberSymbol, 1, memberCap+1),
		byName:  make(map[string]TypeID),
		depSeen: make(map[string]struct{}),
	}
}

// NewType allocates a type symbol and returns its ID. The symbol's ID and
// Primary fields are filled in; an empty GeneratedName defaults to the
// source name.
func (s *SymbolSet) NewType(sym *TypeSymbol) TypeID {
	if sym == nil {
		panic("symgraph.NewType: nil symbol")
	}
	value, err := safecast.Conv[uint32](len(s.types))
	if err != nil {
		panic(fmt.Errorf("type arena overflow: %w", err))
	}
	id := TypeID(value)
	sym.ID = id
	if !sym.Primary.IsValid() {
		sym.Primary = id
	}
	if sym.GeneratedName == "" {
		sym.GeneratedName = sym.Name
	}
	s.types = append(s.types, *sym)
	return id
}

// NewMember allocates a member symbol, appends it to its owner's member
// list, and returns its ID.
func (s *SymbolSet) NewMember(sym *MemberSymbol) MemberID {
	if sym == nil {
		panic("symgraph.NewMember: nil symbol")
	}
	owner := s.Type(sym.Owner)
	if owner == nil {
		panic(fmt.Errorf("symgraph.NewMember: invalid owner %d", sym.Owner))
	}
	value, err := safecast.Conv[uint32](len(s.members))
	if err != nil {
		panic(fmt.Errorf("member arena overflow: %w", err))
	}
	id := MemberID(value)
	sym.ID = id
	if sym.GeneratedName == "" {
		sym.GeneratedName = sym.Name
	}
	s.members = append(s.members, *sym)
	owner.Members = append(owner.Members, id)
	return id
}

// Type returns the type symbol pointer or nil for an invalid ID.
func (s *SymbolSet) Type(id TypeID) *TypeSymbol {
	if !id.IsValid() || int(id) >= len(s.types) {
		return nil
	}
	return &s.types[id]
}

// Member returns the member symbol pointer or nil for an invalid ID.
func (s *SymbolSet) Member(id MemberID) *MemberSymbol {
	if !id.IsValid() || int(id) >= len(s.members) {
		return nil
	}
	return &s.members[id]
}

// TypeCount reports the number of allocated types excluding the sentinel.
func (s *SymbolSet) TypeCount() int { return len(s.types) - 1 }

// MemberCount reports the number of allocated members excluding the sentinel.
func (s *SymbolSet) MemberCount() int { return len(s.members) - 1 }

// TypeIDs returns every allocated type ID in allocation order.
func (s *SymbolSet) TypeIDs() []TypeID {
	out := make([]TypeID, 0, len(s.types)-1)
	for i := 1; i < len(s.types); i++ {
		out = append(out, TypeID(i))
	}
	return out
}

// DeclareTypeName registers a qualified source name for id. When the name is
// already taken the existing ID is returned with ok=false; partial types use
// this to find their primary fragment.
func (s *SymbolSet) DeclareTypeName(qualified string, id TypeID) (TypeID, bool) {
	if existing, taken := s.byName[qualified]; taken {
		return existing, false
	}
	s.byName[qualified] = id
	return id, true
}

// LookupType resolves a qualified source name to the primary fragment.
func (s *SymbolSet) LookupType(qualified string) (TypeID, bool) {
	id, ok := s.byName[qualified]
	return id, ok
}

// AddDependency records an external script module name, preserving first-seen
// order and dropping duplicates.
func (s *SymbolSet) AddDependency(module string) {
	if module == "" {
		return
	}
	if _, seen := s.depSeen[module]; seen {
		return
	}
	s.depSeen[module] = struct{}{}
	s.deps = append(s.deps, module)
}

// Dependencies returns the ordered external module names. Callers must not
// modify the returned slice.
func (s *SymbolSet) Dependencies() []string {
	return s.deps
}
