package symgraph

import (
	"fmt"
)

// Validate checks structural invariants of the set: every member is owned by
// the type holding it, references stay in range, primary fragments are
// consistent, and base chains are acyclic. Intended for tests and debug
// assertions, not for user-facing diagnostics.
func (s *SymbolSet) Validate() error {
	owned := make(map[MemberID]TypeID, s.MemberCount())
	for i := 1; i < len(s.types); i++ {
		id := TypeID(i)
		t := &s.types[i]
		if t.ID != id {
			return fmt.Errorf("type %d: stored ID %d", i, t.ID)
		}
		if t.Base.IsValid() && s.Type(t.Base) == nil {
			return fmt.Errorf("type %s: dangling base %d", t.QualifiedName(), t.Base)
		}
		if s.Type(t.Primary) == nil {
			return fmt.Errorf("type %s: dangling primary %d", t.QualifiedName(), t.Primary)
		}
		for _, iface := range t.Interfaces {
			if s.Type(iface) == nil {
				return fmt.Errorf("type %s: dangling interface %d", t.QualifiedName(), iface)
			}
		}
		for _, mid := range t.Members {
			m := s.Member(mid)
			if m == nil {
				return fmt.Errorf("type %s: dangling member %d", t.QualifiedName(), mid)
			}
			if m.Owner != id {
				return fmt.Errorf("member %s: owner %d listed under type %d", m.Name, m.Owner, id)
			}
			if prev, dup := owned[mid]; dup {
				return fmt.Errorf("member %s: owned by both type %d and type %d", m.Name, prev, id)
			}
			owned[mid] = id
		}
	}

	for i := 1; i < len(s.members); i++ {
		m := &s.members[i]
		if m.ID != MemberID(i) {
			return fmt.Errorf("member %d: stored ID %d", i, m.ID)
		}
		if _, ok := owned[m.ID]; !ok {
			return fmt.Errorf("member %s: not listed by its owner", m.Name)
		}
		if m.Overrides.IsValid() && s.Member(m.Overrides) == nil {
			return fmt.Errorf("member %s: dangling override %d", m.Name, m.Overrides)
		}
	}

	// base chains must terminate
	for i := 1; i < len(s.types); i++ {
		seen := make(map[TypeID]bool)
		for id := TypeID(i); id.IsValid(); id = s.Type(id).Base {
			if seen[id] {
				return fmt.Errorf("type %s: cyclic base chain", s.types[i].QualifiedName())
			}
			seen[id] = true
		}
	}
	return nil
}
