// Package meta reads and writes .slmeta reference metadata: the types a
// previously compiled script exposes, serialized with msgpack so later
// compilations can import them without reparsing sources.
package meta

import (
	"slate/internal/symgraph"
)

// Current schema version - increment when the payload format changes.
const schemaVersion uint16 = 1

// Package is the wire root of one .slmeta file.
type Package struct {
	// Schema version for safe invalidation when the format changes.
	Schema uint16

	// Name is the script name of the compiled package; importing it makes
	// the name a script dependency of the current compilation.
	Name string

	// Dependencies the exported package itself requires.
	Dependencies []string

	Types []TypeRec
}

// TypeRec is one exported type. Base and Interfaces reference other types by
// qualified source name; override links are re-derived on import.
type TypeRec struct {
	Name          string
	Namespace     string
	GeneratedName string
	Kind          uint8
	Flags         uint16
	Base          string
	Interfaces    []string
	Members       []MemberRec
}

// MemberRec is one exported member.
type MemberRec struct {
	Name          string
	GeneratedName string
	Kind          uint8
	Flags         uint16
	Arity         int
	Ordinal       int
}

func (r TypeRec) qualifiedName() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// wireFlags keeps only the flag bits that survive export: imported symbols
// are never application or test symbols in the importing compilation.
func wireFlags(f symgraph.SymbolFlags) uint16 {
	return uint16(f &^ (symgraph.FlagApplication | symgraph.FlagTest))
}
