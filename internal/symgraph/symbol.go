// Package symgraph holds the symbol graph for one compilation: every type
// and member known to the compiler, both imported from reference metadata
// and declared by the current sources. The graph is built once per compile,
// renamed in place by the transformer pipeline, and read by the emitter.
package symgraph

import (
	"slate/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolClass
	SymbolInterface
	SymbolEnum
	SymbolDelegate
	SymbolField
	SymbolMethod
	SymbolProperty
	SymbolEvent
	SymbolEnumCase
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolClass:
		return "class"
	case SymbolInterface:
		return "interface"
	case SymbolEnum:
		return "enum"
	case SymbolDelegate:
		return "delegate"
	case SymbolField:
		return "field"
	case SymbolMethod:
		return "method"
	case SymbolProperty:
		return "property"
	case SymbolEvent:
		return "event"
	case SymbolEnumCase:
		return "enum case"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// IsType reports whether the kind names a type-level symbol.
func (k SymbolKind) IsType() bool {
	switch k {
	case SymbolClass, SymbolInterface, SymbolEnum, SymbolDelegate:
		return true
	default:
		return false
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	// FlagApplication marks symbols declared by the current compilation,
	// as opposed to ones imported from reference metadata.
	FlagApplication SymbolFlags = 1 << iota
	FlagPublic
	FlagStatic
	// FlagPreserve pins the generated name to the internalized source name
	// even when minification is on.
	FlagPreserve
	// FlagTest marks a type that only participates in the test flavor of
	// the output.
	FlagTest
	FlagOverride
)

// Strings returns textual flag labels for dumps.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&FlagApplication != 0 {
		labels = append(labels, "application")
	}
	if f&FlagPublic != 0 {
		labels = append(labels, "public")
	}
	if f&FlagStatic != 0 {
		labels = append(labels, "static")
	}
	if f&FlagPreserve != 0 {
		labels = append(labels, "preserve")
	}
	if f&FlagTest != 0 {
		labels = append(labels, "test")
	}
	if f&FlagOverride != 0 {
		labels = append(labels, "override")
	}
	return labels
}

// TypeSymbol describes one type. Base is at most one class (single
// inheritance); Interfaces lists implemented interfaces. Members are owned
// exclusively by this type. Primary points at the primary fragment of a
// partial type and equals the type's own ID for non-partial types.
type TypeSymbol struct {
	ID            TypeID
	Name          string
	Namespace     string
	GeneratedName string
	Kind          SymbolKind
	Flags         SymbolFlags
	Base          TypeID
	Interfaces    []TypeID
	Members       []MemberID
	Primary       TypeID
	Span          source.Span
}

// QualifiedName returns the dotted source name used in diagnostics.
func (t *TypeSymbol) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "." + t.Name
}

// IsApplication reports whether the type was declared by the current
// compilation.
func (t *TypeSymbol) IsApplication() bool { return t.Flags&FlagApplication != 0 }

// IsPrimary reports whether this fragment is the primary fragment of its
// logical type. Non-partial types are always primary.
func (t *TypeSymbol) IsPrimary() bool { return !t.Primary.IsValid() || t.Primary == t.ID }

// IsTest reports whether the type belongs to the test flavor output.
func (t *TypeSymbol) IsTest() bool { return t.Flags&FlagTest != 0 }

// MemberSymbol describes one member owned by exactly one type. Overrides is
// a non-owning back-reference to the member this one overrides or
// implements; the ownership graph stays a strict tree.
type MemberSymbol struct {
	ID            MemberID
	Name          string
	GeneratedName string
	Kind          SymbolKind
	Flags         SymbolFlags
	Owner         TypeID
	Overrides     MemberID
	Arity         int // parameter count, used for override matching
	Ordinal       int // enum cases: constant value
	Span          source.Span
}

// IsApplication reports whether the member was declared by the current
// compilation.
func (m *MemberSymbol) IsApplication() bool { return m.Flags&FlagApplication != 0 }
