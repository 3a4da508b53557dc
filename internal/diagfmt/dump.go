package diagfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"slate/internal/symgraph"
	"slate/internal/transform"
)

// DumpSymbols writes a textual dump of the full symbol graph: one block per
// primary type sorted by qualified name, members in declaration order. The
// format is stable so golden tests can compare it byte for byte.
func DumpSymbols(w io.Writer, set *symgraph.SymbolSet) {
	ids := set.TypeIDs()
	sort.Slice(ids, func(i, j int) bool {
		a, b := set.Type(ids[i]), set.Type(ids[j])
		if a.QualifiedName() != b.QualifiedName() {
			return a.QualifiedName() < b.QualifiedName()
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		typ := set.Type(id)
		if !typ.IsPrimary() {
			continue
		}
		fmt.Fprintf(w, "%s %s -> %s%s\n",
			typ.Kind, typ.QualifiedName(), typ.GeneratedName, flagSuffix(typ.Flags))
		if typ.Base.IsValid() {
			fmt.Fprintf(w, "  : %s\n", set.Type(typ.Base).QualifiedName())
		}
		for _, iface := range typ.Interfaces {
			fmt.Fprintf(w, "  : %s\n", set.Type(iface).QualifiedName())
		}
		for _, mid := range typ.Members {
			m := set.Member(mid)
			fmt.Fprintf(w, "  %s %s -> %s%s\n",
				m.Kind, memberLabel(m), m.GeneratedName, flagSuffix(m.Flags))
		}
	}
}

func memberLabel(m *symgraph.MemberSymbol) string {
	if m.Kind == symgraph.SymbolMethod {
		return fmt.Sprintf("%s/%d", m.Name, m.Arity)
	}
	return m.Name
}

func flagSuffix(f symgraph.SymbolFlags) string {
	labels := f.Strings()
	// application is the default for dumped code; only the exceptions
	// are worth printing
	kept := labels[:0]
	for _, l := range labels {
		if l != "application" {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return " [" + strings.Join(kept, ",") + "]"
}

// DumpRenames writes the minification rename map, one sorted line per
// renamed symbol.
func DumpRenames(w io.Writer, renames []transform.Rename) {
	lines := make([]string, 0, len(renames))
	for _, r := range renames {
		lines = append(lines, fmt.Sprintf("%s: %s -> %s (%s)", r.Qualified, r.From, r.To, r.Kind))
	}
	sort.Strings(lines)
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
