package meta

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"slate/internal/symgraph"
)

// Export snapshots the application types of set into a wire package so a
// later compilation can import them. Test-flavor types are not exported;
// they never outlive their own compilation.
func Export(set *symgraph.SymbolSet) *Package {
	pkg := &Package{
		Schema:       schemaVersion,
		Name:         set.ScriptName,
		Dependencies: append([]string(nil), set.Dependencies()...),
	}
	for _, id := range set.TypeIDs() {
		t := set.Type(id)
		if !t.IsApplication() || !t.IsPrimary() || t.IsTest() {
			continue
		}
		rec := TypeRec{
			Name:          t.Name,
			Namespace:     t.Namespace,
			GeneratedName: t.GeneratedName,
			Kind:          uint8(t.Kind),
			Flags:         wireFlags(t.Flags),
		}
		if t.Base.IsValid() {
			rec.Base = set.Type(t.Base).QualifiedName()
		}
		for _, iface := range t.Interfaces {
			rec.Interfaces = append(rec.Interfaces, set.Type(iface).QualifiedName())
		}
		for _, mid := range t.Members {
			m := set.Member(mid)
			rec.Members = append(rec.Members, MemberRec{
				Name:          m.Name,
				GeneratedName: m.GeneratedName,
				Kind:          uint8(m.Kind),
				Flags:         wireFlags(m.Flags),
				Arity:         m.Arity,
				Ordinal:       m.Ordinal,
			})
		}
		pkg.Types = append(pkg.Types, rec)
	}
	return pkg
}

// WriteFile serializes pkg and writes it atomically via a temp file rename.
func WriteFile(path string, pkg *Package) error {
	payload, err := msgpack.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}
