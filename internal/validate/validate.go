// Package validate checks the symbol graph for name conflicts before any
// renaming runs, while generated names still equal the source names. Running
// the check here keeps transformation free of error paths: once the graph
// validates, renaming cannot introduce a collision because shortened names
// are allocated from collision-free scopes.
package validate

import (
	"slate/internal/diag"
	"slate/internal/symgraph"
)

// CheckTypeNames reports every pair of application types whose generated
// names collide in the flat script namespace. Imported types are skipped
// entirely. Delegates are exempt: they are erased during emission and occupy
// no script name. Partial fragments are counted once through their primary
// fragment.
func CheckTypeNames(set *symgraph.SymbolSet, r diag.Reporter) {
	claimed := make(map[string]symgraph.TypeID)
	for _, id := range set.TypeIDs() {
		typ := set.Type(id)
		if !typ.IsApplication() || !typ.IsPrimary() || typ.Kind == symgraph.SymbolDelegate {
			continue
		}
		prev, taken := claimed[typ.GeneratedName]
		if !taken {
			claimed[typ.GeneratedName] = id
			continue
		}
		holder := set.Type(prev)
		diag.Errorf(r, diag.SemaNameConflict, typ.Span,
			"type %s conflicts with %s: both emit as %q",
			typ.QualifiedName(), holder.QualifiedName(), typ.GeneratedName)
	}
}

// CheckMemberNames reports members of one type whose generated names collide
// with a sibling or with an inherited member of the same name that they do
// not override. Like CheckTypeNames it runs before renaming.
func CheckMemberNames(set *symgraph.SymbolSet, r diag.Reporter) {
	for _, id := range set.TypeIDs() {
		typ := set.Type(id)
		if !typ.IsApplication() || !typ.IsPrimary() || typ.Kind == symgraph.SymbolDelegate {
			continue
		}
		claimed := make(map[string]symgraph.MemberID)
		for _, mid := range typ.Members {
			m := set.Member(mid)
			if m.Overrides.IsValid() {
				// Overriding members reuse the overridden slot.
				continue
			}
			if prev, taken := claimed[m.GeneratedName]; taken {
				holder := set.Member(prev)
				diag.Errorf(r, diag.SemaNameConflict, m.Span,
					"member %s.%s conflicts with %s.%s: both emit as %q",
					typ.QualifiedName(), m.Name,
					typ.QualifiedName(), holder.Name, m.GeneratedName)
				continue
			}
			claimed[m.GeneratedName] = mid
		}
	}
}

// Check runs every pre-transform validation pass.
func Check(set *symgraph.SymbolSet, r diag.Reporter) {
	CheckTypeNames(set, r)
	CheckMemberNames(set, r)
}
