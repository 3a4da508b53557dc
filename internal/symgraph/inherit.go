package symgraph

// InheritanceOrder returns every type ID ordered so that a type's base class
// and implemented interfaces appear strictly before the type itself. The
// order is deterministic for a fixed set: ties are broken by allocation
// order. The base chain is acyclic by construction (the metadata builder
// refuses cyclic bases), which bounds the walk.
func (s *SymbolSet) InheritanceOrder() []TypeID {
	order := make([]TypeID, 0, s.TypeCount())
	visited := make(map[TypeID]bool, s.TypeCount())

	var visit func(id TypeID)
	visit = func(id TypeID) {
		if !id.IsValid() || visited[id] {
			return
		}
		visited[id] = true
		t := s.Type(id)
		visit(t.Base)
		for _, iface := range t.Interfaces {
			visit(iface)
		}
		order = append(order, id)
	}

	for i := 1; i < len(s.types); i++ {
		visit(TypeID(i))
	}
	return order
}

// Ancestors returns every base class and implemented interface of id,
// transitively, each exactly once, nearest first.
func (s *SymbolSet) Ancestors(id TypeID) []TypeID {
	var out []TypeID
	seen := map[TypeID]bool{id: true}

	var walk func(id TypeID)
	walk = func(id TypeID) {
		if !id.IsValid() || seen[id] {
			return
		}
		seen[id] = true
		out = append(out, id)
		t := s.Type(id)
		walk(t.Base)
		for _, iface := range t.Interfaces {
			walk(iface)
		}
	}

	t := s.Type(id)
	if t == nil {
		return nil
	}
	walk(t.Base)
	for _, iface := range t.Interfaces {
		walk(iface)
	}
	return out
}

// FindInherited searches the ancestors of owner for a member this one could
// override or implement: methods match methods with the same name and arity,
// other kinds match members of the same kind and name. Returns NoMemberID
// when nothing matches.
func (s *SymbolSet) FindInherited(owner TypeID, name string, kind SymbolKind, arity int) MemberID {
	for _, ancestor := range s.Ancestors(owner) {
		for _, mid := range s.Type(ancestor).Members {
			m := s.Member(mid)
			if m.Name != name || m.Kind != kind {
				continue
			}
			if kind == SymbolMethod && m.Arity != arity {
				continue
			}
			return mid
		}
	}
	return NoMemberID
}

// InheritedGeneratedNames collects the generated names of every member
// visible on id through inheritance (ancestors and implemented interfaces).
func (s *SymbolSet) InheritedGeneratedNames(id TypeID) map[string]struct{} {
	names := make(map[string]struct{})
	for _, ancestor := range s.Ancestors(id) {
		for _, mid := range s.Type(ancestor).Members {
			names[s.Member(mid).GeneratedName] = struct{}{}
		}
	}
	return names
}

// OverrideRoot follows the override chain of id up to the root declaration.
func (s *SymbolSet) OverrideRoot(id MemberID) MemberID {
	for {
		m := s.Member(id)
		if m == nil || !m.Overrides.IsValid() {
			return id
		}
		id = m.Overrides
	}
}
