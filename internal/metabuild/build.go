// Package metabuild populates the symbol graph with the current
// compilation's own types. It walks the parsed unit list after reference
// metadata has been imported, so base and interface references can resolve
// against both application and imported types.
package metabuild

import (
	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/symgraph"
)

// Build declares every type and member found in units into set and returns
// the application type IDs, partial fragments included. Override links are
// established here; generated names keep their source-derived defaults so
// the conflict validator sees meaningful names.
func Build(units []*ast.Unit, set *symgraph.SymbolSet, reporter diag.Reporter) []symgraph.TypeID {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	b := &builder{set: set, reporter: reporter}

	for _, unit := range units {
		for _, req := range unit.Requires {
			set.AddDependency(req.Module)
		}
		for _, decl := range unit.Decls {
			b.declareType(decl)
		}
	}
	b.resolveBases()
	b.checkBaseCycles()
	b.declareMembers()
	b.linkOverrides()
	return b.appTypes
}

type declared struct {
	decl *ast.TypeDecl
	id   symgraph.TypeID
}

type builder struct {
	set      *symgraph.SymbolSet
	reporter diag.Reporter
	appTypes []symgraph.TypeID
	decls    []declared
}

func declFlags(mods ast.Modifiers) symgraph.SymbolFlags {
	flags := symgraph.FlagApplication
	if mods.Has(ast.ModPublic) {
		flags |= symgraph.FlagPublic
	}
	if mods.Has(ast.ModPreserve) {
		flags |= symgraph.FlagPreserve
	}
	if mods.Has(ast.ModStatic) {
		flags |= symgraph.FlagStatic
	}
	if mods.Has(ast.ModTest) {
		flags |= symgraph.FlagTest
	}
	if mods.Has(ast.ModOverride) {
		flags |= symgraph.FlagOverride
	}
	return flags
}

func declKind(kind ast.DeclKind) symgraph.SymbolKind {
	switch kind {
	case ast.DeclClass:
		return symgraph.SymbolClass
	case ast.DeclInterface:
		return symgraph.SymbolInterface
	case ast.DeclEnum:
		return symgraph.SymbolEnum
	case ast.DeclDelegate:
		return symgraph.SymbolDelegate
	}
	return symgraph.SymbolInvalid
}

func memberKind(kind ast.MemberKind) symgraph.SymbolKind {
	switch kind {
	case ast.MemberField:
		return symgraph.SymbolField
	case ast.MemberMethod:
		return symgraph.SymbolMethod
	case ast.MemberProperty:
		return symgraph.SymbolProperty
	case ast.MemberEvent:
		return symgraph.SymbolEvent
	}
	return symgraph.SymbolInvalid
}

func (b *builder) declareType(decl *ast.TypeDecl) {
	qualified := decl.QualifiedName()
	sym := &symgraph.TypeSymbol{
		Name:      decl.Name,
		Namespace: decl.Namespace,
		Kind:      declKind(decl.Kind),
		Flags:     declFlags(decl.Mods),
		Span:      decl.NameSpan,
	}

	if existing, taken := b.set.LookupType(qualified); taken {
		primary := b.set.Type(existing)
		if !primary.IsApplication() {
			diag.Errorf(b.reporter, diag.SemaDuplicateType, decl.NameSpan,
				"type %s is already declared by a referenced script", qualified)
			return
		}
		bothPartial := decl.Mods.Has(ast.ModPartial) && b.declaredPartial(existing)
		if bothPartial && declKind(decl.Kind) == primary.Kind {
			// a later fragment joins the earlier primary fragment; its
			// members end up on the primary so the whole logical type
			// shares one rename scope, and its modifiers apply to the
			// whole logical type
			sym.Primary = existing
			primary.Flags |= sym.Flags
			id := b.set.NewType(sym)
			b.record(decl, id)
			return
		}
		if bothPartial {
			diag.Errorf(b.reporter, diag.SemaPartialKindMismatch, decl.NameSpan,
				"partial fragments of %s disagree on the declaration kind", qualified)
			return
		}
		diag.Errorf(b.reporter, diag.SemaDuplicateType, decl.NameSpan,
			"duplicate declaration of type %s (missing 'partial'?)", qualified)
		return
	}

	id := b.set.NewType(sym)
	b.set.DeclareTypeName(qualified, id)
	b.record(decl, id)
}

func (b *builder) record(decl *ast.TypeDecl, id symgraph.TypeID) {
	b.appTypes = append(b.appTypes, id)
	b.decls = append(b.decls, declared{decl: decl, id: id})
}

// declaredPartial reports whether the fragment that owns id was written
// with the partial modifier.
func (b *builder) declaredPartial(id symgraph.TypeID) bool {
	for _, d := range b.decls {
		if d.id == id {
			return d.decl.Mods.Has(ast.ModPartial)
		}
	}
	return false
}
