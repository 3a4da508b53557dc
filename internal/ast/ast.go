// Package ast defines the syntax tree produced by the model-building stage.
// One Unit corresponds to one input source; the driver holds the ordered
// unit list, order-significant only for diagnostic locations.
package ast

import (
	"slate/internal/source"
	"slate/internal/token"
)

// Unit is the root of one parsed compilation unit.
type Unit struct {
	File     source.FileID
	Requires []Require
	Decls    []*TypeDecl
}

// Require declares a dependency on an external script module.
type Require struct {
	Module string
	Span   source.Span
}

// DeclKind enumerates the type declaration forms.
type DeclKind uint8

const (
	DeclClass DeclKind = iota
	DeclInterface
	DeclEnum
	DeclDelegate
)

func (k DeclKind) String() string {
	switch k {
	case DeclClass:
		return "class"
	case DeclInterface:
		return "interface"
	case DeclEnum:
		return "enum"
	case DeclDelegate:
		return "delegate"
	}
	return "invalid"
}

// Modifiers are declaration modifier flags.
type Modifiers uint8

const (
	ModPartial Modifiers = 1 << iota
	ModTest
	ModPublic
	ModPreserve
	ModStatic
	ModOverride
)

func (m Modifiers) Has(flag Modifiers) bool { return m&flag != 0 }

// TypeDecl is one type declaration (class, interface, enum, or delegate).
type TypeDecl struct {
	Kind      DeclKind
	Name      string
	Namespace string // dotted enclosing namespace, may be empty
	Mods      Modifiers
	Bases     []TypeRef // first resolvable class becomes the base, rest are interfaces
	Members   []*MemberDecl
	Cases     []EnumCase // enum only
	Params    []Param    // delegate only
	Span      source.Span
	NameSpan  source.Span
}

// QualifiedName returns the dotted source name used in diagnostics.
func (d *TypeDecl) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// TypeRef is an unresolved dotted type name.
type TypeRef struct {
	Name string
	Span source.Span
}

// EnumCase is one named enum constant.
type EnumCase struct {
	Name string
	Span source.Span
}

// MemberKind enumerates member declaration forms.
type MemberKind uint8

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberProperty
	MemberEvent
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	case MemberProperty:
		return "property"
	case MemberEvent:
		return "event"
	}
	return "invalid"
}

// MemberDecl is one member declaration inside a class or interface.
type MemberDecl struct {
	Kind     MemberKind
	Name     string
	Mods     Modifiers
	Type     TypeRef // field/property/method return type (optional for methods)
	Params   []Param // methods only
	Body     *Block  // methods only, nil for abstract/interface members
	Span     source.Span
	NameSpan source.Span
}

// Param is one formal parameter.
type Param struct {
	Name string
	Type TypeRef
	Span source.Span
}

// Block is an ordered statement list.
type Block struct {
	Stmts []Stmt
	Span  source.Span
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	StmtSpan() source.Span
	isStmt()
}

// VarStmt declares a method-local variable.
type VarStmt struct {
	Name string
	Init Expr // may be nil
	Span source.Span
}

// AssignStmt assigns Value to Target.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Span   source.Span
}

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	E    Expr
	Span source.Span
}

// ReturnStmt returns from the enclosing method.
type ReturnStmt struct {
	E    Expr // may be nil
	Span source.Span
}

func (s *VarStmt) StmtSpan() source.Span    { return s.Span }
func (s *AssignStmt) StmtSpan() source.Span { return s.Span }
func (s *ExprStmt) StmtSpan() source.Span   { return s.Span }
func (s *ReturnStmt) StmtSpan() source.Span { return s.Span }

func (*VarStmt) isStmt()    {}
func (*AssignStmt) isStmt() {}
func (*ExprStmt) isStmt()   {}
func (*ReturnStmt) isStmt() {}

// Expr is implemented by all expression nodes.
type Expr interface {
	ExprSpan() source.Span
	isExpr()
}

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Span source.Span
}

// This refers to the receiver object.
type This struct {
	Span source.Span
}

// LitKind classifies literal expressions.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitString
	LitBool
	LitNull
)

// Lit is a literal expression; Text keeps the source form for ints and the
// decoded value for strings.
type Lit struct {
	Kind LitKind
	Text string
	Span source.Span
}

// Member is a dotted member access.
type Member struct {
	Recv Expr
	Name string
	Span source.Span
}

// Call invokes Fn with Args.
type Call struct {
	Fn   Expr
	Args []Expr
	Span source.Span
}

// New instantiates a type.
type New struct {
	Type TypeRef
	Args []Expr
	Span source.Span
}

// Binary is a binary operator expression.
type Binary struct {
	Op   token.Kind
	L, R Expr
	Span source.Span
}

func (e *Ident) ExprSpan() source.Span  { return e.Span }
func (e *This) ExprSpan() source.Span   { return e.Span }
func (e *Lit) ExprSpan() source.Span    { return e.Span }
func (e *Member) ExprSpan() source.Span { return e.Span }
func (e *Call) ExprSpan() source.Span   { return e.Span }
func (e *New) ExprSpan() source.Span    { return e.Span }
func (e *Binary) ExprSpan() source.Span { return e.Span }

func (*Ident) isExpr()  {}
func (*This) isExpr()   {}
func (*Lit) isExpr()    {}
func (*Member) isExpr() {}
func (*Call) isExpr()   {}
func (*New) isExpr()    {}
func (*Binary) isExpr() {}
