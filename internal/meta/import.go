package meta

import (
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"slate/internal/diag"
	"slate/internal/source"
	"slate/internal/symgraph"
)

// ImportFile reads one .slmeta reference and populates set with its types,
// flagged as imported (non-application) symbols. Problems are reported with
// the file path as location; the importer never panics on malformed input.
func ImportFile(path string, set *symgraph.SymbolSet, fs *source.FileSet, reporter diag.Reporter) {
	// #nosec G304 -- path comes from compiler options
	content, err := os.ReadFile(path)
	if err != nil {
		reportAt(path, fs, reporter, diag.MetaUnreadable, "cannot read reference metadata: "+err.Error())
		return
	}

	var pkg Package
	if err := msgpack.Unmarshal(content, &pkg); err != nil {
		reportAt(path, fs, reporter, diag.MetaUnreadable, "malformed reference metadata: "+err.Error())
		return
	}
	if pkg.Schema != schemaVersion {
		reportAt(path, fs, reporter, diag.MetaBadSchema, "unsupported metadata schema version")
		return
	}
	Import(&pkg, set, spanFor(path, fs), reporter)
}

// Import merges an already-decoded package into set.
func Import(pkg *Package, set *symgraph.SymbolSet, at source.Span, reporter diag.Reporter) {
	// first pass: allocate types so cross-references can resolve
	ids := make([]symgraph.TypeID, len(pkg.Types))
	for i, rec := range pkg.Types {
		id := set.NewType(&symgraph.TypeSymbol{
			Name:          rec.Name,
			Namespace:     rec.Namespace,
			GeneratedName: rec.GeneratedName,
			Kind:          symgraph.SymbolKind(rec.Kind),
			Flags:         symgraph.SymbolFlags(rec.Flags) &^ symgraph.FlagApplication,
			Span:          at,
		})
		ids[i] = id
		if _, ok := set.DeclareTypeName(rec.qualifiedName(), id); !ok {
			diag.Errorf(reporter, diag.MetaDuplicateType, at,
				"reference metadata redeclares type %s", rec.qualifiedName())
		}
	}

	// second pass: wire bases, interfaces, and members
	for i, rec := range pkg.Types {
		t := set.Type(ids[i])
		if rec.Base != "" {
			if base, ok := set.LookupType(rec.Base); ok {
				t.Base = base
			} else {
				diag.Errorf(reporter, diag.MetaDanglingRef, at,
					"type %s references unknown base %s", rec.qualifiedName(), rec.Base)
			}
		}
		for _, name := range rec.Interfaces {
			if iface, ok := set.LookupType(name); ok {
				t.Interfaces = append(t.Interfaces, iface)
			} else {
				diag.Errorf(reporter, diag.MetaDanglingRef, at,
					"type %s references unknown interface %s", rec.qualifiedName(), name)
			}
		}
		for _, mrec := range rec.Members {
			set.NewMember(&symgraph.MemberSymbol{
				Name:          mrec.Name,
				GeneratedName: mrec.GeneratedName,
				Kind:          symgraph.SymbolKind(mrec.Kind),
				Flags:         symgraph.SymbolFlags(mrec.Flags) &^ symgraph.FlagApplication,
				Owner:         ids[i],
				Arity:         mrec.Arity,
				Ordinal:       mrec.Ordinal,
				Span:          at,
			})
		}
	}

	// third pass: re-derive override links now that all members exist
	for _, id := range ids {
		t := set.Type(id)
		for _, mid := range t.Members {
			m := set.Member(mid)
			if overridden := set.FindInherited(id, m.Name, m.Kind, m.Arity); overridden.IsValid() {
				m.Overrides = overridden
			}
		}
	}

	// importing a compiled script makes it a runtime dependency
	set.AddDependency(pkg.Name)
	for _, dep := range pkg.Dependencies {
		set.AddDependency(dep)
	}
}

func spanFor(path string, fs *source.FileSet) source.Span {
	if fs == nil {
		return source.Span{}
	}
	if id, ok := fs.Lookup(path); ok {
		return source.Span{File: id}
	}
	id := fs.AddVirtual(path, nil)
	return source.Span{File: id}
}

func reportAt(path string, fs *source.FileSet, reporter diag.Reporter, code diag.Code, msg string) {
	diag.Error(reporter, code, spanFor(path, fs), msg)
}
