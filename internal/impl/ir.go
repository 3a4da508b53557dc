// Package impl lowers parsed method bodies into a small IR the emitter can
// serialize directly. Identifier references are resolved here against the
// renamed symbol graph: locals and parameters bind to their generated local
// names, member references bind to member symbols, and bare type names bind
// to type symbols. Lowering runs after the rename pipeline, so every symbol
// already carries its final generated name.
package impl

import (
	"slate/internal/ast"
	"slate/internal/symgraph"
)

// Program holds the lowered body of every method that has one.
type Program struct {
	Bodies map[symgraph.MemberID]*Body
}

// Body is the lowered form of one method body. Params lists the generated
// parameter names in declaration order.
type Body struct {
	Params []string
	Stmts  []Stmt
}

// Stmt is implemented by lowered statement nodes.
type Stmt interface{ isStmt() }

// VarDecl declares a local; Init may be nil.
type VarDecl struct {
	Name string
	Init Expr
}

// Assign stores Value into Target.
type Assign struct {
	Target Expr
	Value  Expr
}

// ExprStmt evaluates E for its side effects.
type ExprStmt struct{ E Expr }

// Return exits the method; E may be nil.
type Return struct{ E Expr }

func (*VarDecl) isStmt()  {}
func (*Assign) isStmt()   {}
func (*ExprStmt) isStmt() {}
func (*Return) isStmt()   {}

// Expr is implemented by lowered expression nodes.
type Expr interface{ isExpr() }

// LocalRef names a local or parameter by its generated name.
type LocalRef struct{ Name string }

// ThisRef is the receiver object.
type ThisRef struct{}

// TypeRef references a type; the emitter writes its generated name.
type TypeRef struct{ Type symgraph.TypeID }

// MemberRef accesses a resolved member of Recv.
type MemberRef struct {
	Recv   Expr
	Member symgraph.MemberID
}

// DynamicRef accesses a member of Recv whose static type is unknown; the
// name passes through unrenamed.
type DynamicRef struct {
	Recv Expr
	Name string
}

// Literal carries a literal value in its source form.
type Literal struct {
	Kind ast.LitKind
	Text string
}

// Call invokes Fn with Args.
type Call struct {
	Fn   Expr
	Args []Expr
}

// New instantiates a type.
type New struct {
	Type symgraph.TypeID
	Args []Expr
}

// Binary applies operator Op, already in target syntax.
type Binary struct {
	Op   string
	L, R Expr
}

func (*LocalRef) isExpr()   {}
func (*ThisRef) isExpr()    {}
func (*TypeRef) isExpr()    {}
func (*MemberRef) isExpr()  {}
func (*DynamicRef) isExpr() {}
func (*Literal) isExpr()    {}
func (*Call) isExpr()       {}
func (*New) isExpr()        {}
func (*Binary) isExpr()     {}
