package metabuild

import (
	"strings"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/symgraph"
)

// resolveTypeRef resolves a dotted name seen inside namespace ns, trying
// enclosing namespace prefixes from innermost to outermost before the bare
// name.
func (b *builder) resolveTypeRef(ns, name string) (symgraph.TypeID, bool) {
	for ns != "" {
		if id, ok := b.set.LookupType(ns + "." + name); ok {
			return b.set.Type(id).Primary, true
		}
		if i := strings.LastIndexByte(ns, '.'); i >= 0 {
			ns = ns[:i]
		} else {
			ns = ""
		}
	}
	if id, ok := b.set.LookupType(name); ok {
		return b.set.Type(id).Primary, true
	}
	return symgraph.NoTypeID, false
}

func (b *builder) resolveBases() {
	for _, d := range b.decls {
		decl, id := d.decl, d.id
		if decl.Kind != ast.DeclClass && decl.Kind != ast.DeclInterface {
			continue
		}
		// bases attach to the primary fragment of partial types
		t := b.set.Type(b.set.Type(id).Primary)
		for _, ref := range decl.Bases {
			target, ok := b.resolveTypeRef(decl.Namespace, ref.Name)
			if !ok {
				diag.Errorf(b.reporter, diag.SemaUnknownBase, ref.Span,
					"unknown type %s in base list of %s", ref.Name, decl.QualifiedName())
				continue
			}
			if target == t.ID {
				diag.Errorf(b.reporter, diag.SemaCyclicBase, ref.Span,
					"type %s cannot inherit from itself", decl.QualifiedName())
				continue
			}
			switch b.set.Type(target).Kind {
			case symgraph.SymbolInterface:
				t.Interfaces = appendUnique(t.Interfaces, target)
			case symgraph.SymbolClass:
				if decl.Kind == ast.DeclInterface {
					diag.Errorf(b.reporter, diag.SemaBaseNotClass, ref.Span,
						"interface %s cannot extend class %s", decl.QualifiedName(), ref.Name)
					continue
				}
				if t.Base.IsValid() && t.Base != target {
					diag.Errorf(b.reporter, diag.SemaBaseNotClass, ref.Span,
						"type %s already has base class %s", decl.QualifiedName(),
						b.set.Type(t.Base).QualifiedName())
					continue
				}
				t.Base = target
			default:
				diag.Errorf(b.reporter, diag.SemaBaseNotClass, ref.Span,
					"%s %s cannot appear in a base list",
					b.set.Type(target).Kind, ref.Name)
			}
		}
	}
}

// checkBaseCycles enforces the acyclic inheritance invariant the transformer
// relies on. Both base-class and interface-extension edges are walked; a
// cycle is reported once and broken by clearing the edge that closed it.
func (b *builder) checkBaseCycles() {
	const (
		white = iota
		gray
		black
	)
	state := map[symgraph.TypeID]int{}

	var visit func(id symgraph.TypeID)
	visit = func(id symgraph.TypeID) {
		state[id] = gray
		t := b.set.Type(id)
		if base := t.Base; base.IsValid() {
			switch state[base] {
			case gray:
				diag.Errorf(b.reporter, diag.SemaCyclicBase, t.Span,
					"cyclic base chain through %s", t.QualifiedName())
				t.Base = symgraph.NoTypeID
			case white:
				visit(base)
			}
		}
		kept := t.Interfaces[:0]
		for _, iface := range t.Interfaces {
			if state[iface] == gray {
				diag.Errorf(b.reporter, diag.SemaCyclicBase, t.Span,
					"cyclic base chain through %s", t.QualifiedName())
				continue
			}
			if state[iface] == white {
				visit(iface)
			}
			kept = append(kept, iface)
		}
		t.Interfaces = kept
		state[id] = black
	}

	for _, id := range b.appTypes {
		if state[id] == white {
			visit(id)
		}
	}
}

func (b *builder) declareMembers() {
	for _, d := range b.decls {
		decl := d.decl
		owner := b.set.Type(d.id).Primary

		if decl.Kind == ast.DeclEnum {
			for ordinal, c := range decl.Cases {
				if b.findSibling(owner, c.Name, symgraph.SymbolEnumCase, 0).IsValid() {
					diag.Errorf(b.reporter, diag.SemaDuplicateMember, c.Span,
						"duplicate enum case %s in %s", c.Name, decl.QualifiedName())
					continue
				}
				b.set.NewMember(&symgraph.MemberSymbol{
					Name:    c.Name,
					Kind:    symgraph.SymbolEnumCase,
					Flags:   symgraph.FlagApplication,
					Owner:   owner,
					Ordinal: ordinal,
					Span:    c.Span,
				})
			}
			continue
		}

		for _, m := range decl.Members {
			kind := memberKind(m.Kind)
			arity := len(m.Params)
			if b.findSibling(owner, m.Name, kind, arity).IsValid() {
				diag.Errorf(b.reporter, diag.SemaDuplicateMember, m.NameSpan,
					"duplicate member %s in %s", m.Name, decl.QualifiedName())
				continue
			}
			flags := declFlags(m.Mods)
			if decl.Kind == ast.DeclInterface {
				// interface members are part of the public contract
				flags |= symgraph.FlagPublic
			}
			b.set.NewMember(&symgraph.MemberSymbol{
				Name:  m.Name,
				Kind:  kind,
				Flags: flags,
				Owner: owner,
				Arity: arity,
				Span:  m.NameSpan,
			})
		}
	}
}

// findSibling matches the duplicate-detection rule: methods collide on
// name+arity, everything else on name.
func (b *builder) findSibling(owner symgraph.TypeID, name string, kind symgraph.SymbolKind, arity int) symgraph.MemberID {
	for _, mid := range b.set.Type(owner).Members {
		m := b.set.Member(mid)
		if m.Name != name {
			continue
		}
		if kind == symgraph.SymbolMethod && m.Kind == symgraph.SymbolMethod && m.Arity != arity {
			continue
		}
		return mid
	}
	return symgraph.NoMemberID
}

// linkOverrides connects each member to the inherited member it overrides or
// implements. The link is a non-owning back-reference; the transformer uses
// it to keep renames consistent along the chain.
func (b *builder) linkOverrides() {
	for _, id := range b.appTypes {
		t := b.set.Type(id)
		if !t.IsPrimary() {
			continue
		}
		for _, mid := range t.Members {
			m := b.set.Member(mid)
			overridden := b.set.FindInherited(id, m.Name, m.Kind, m.Arity)
			if overridden.IsValid() {
				m.Overrides = overridden
				continue
			}
			if m.Flags&symgraph.FlagOverride != 0 {
				diag.Errorf(b.reporter, diag.SemaBadOverride, m.Span,
					"member %s.%s overrides nothing", t.QualifiedName(), m.Name)
			}
		}
	}
}

func appendUnique(ids []symgraph.TypeID, id symgraph.TypeID) []symgraph.TypeID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
