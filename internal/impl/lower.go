package impl

import (
	"strings"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/symgraph"
	"slate/internal/token"
	"slate/internal/transform"
)

// Build lowers every method body found in units and returns the resulting
// program. When minify is set, locals and parameters get fresh short names;
// otherwise they keep their internalized source names.
func Build(units []*ast.Unit, set *symgraph.SymbolSet, minify bool, reporter diag.Reporter) *Program {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	prog := &Program{Bodies: make(map[symgraph.MemberID]*Body)}
	b := &lowerer{set: set, minify: minify, reporter: reporter, prog: prog}

	for _, unit := range units {
		for _, decl := range unit.Decls {
			if decl.Kind != ast.DeclClass {
				continue
			}
			owner, ok := set.LookupType(decl.QualifiedName())
			if !ok {
				continue // declaration failed earlier
			}
			owner = set.Type(owner).Primary
			for _, m := range decl.Members {
				if m.Body == nil {
					continue
				}
				mid := b.memberFor(owner, m)
				if !mid.IsValid() {
					continue
				}
				prog.Bodies[mid] = b.lowerBody(owner, decl.Namespace, m)
			}
		}
	}
	return prog
}

type lowerer struct {
	set      *symgraph.SymbolSet
	minify   bool
	reporter diag.Reporter
	prog     *Program

	// per-body state
	owner symgraph.TypeID
	ns    string
	scope *transform.LocalScope
}

// memberFor finds the member symbol a declaration produced, using the same
// matching rule the metadata builder applies when detecting duplicates.
func (b *lowerer) memberFor(owner symgraph.TypeID, m *ast.MemberDecl) symgraph.MemberID {
	for _, mid := range b.set.Type(owner).Members {
		sym := b.set.Member(mid)
		if sym.Name != m.Name {
			continue
		}
		if sym.Kind == symgraph.SymbolMethod && sym.Arity != len(m.Params) {
			continue
		}
		return mid
	}
	return symgraph.NoMemberID
}

func (b *lowerer) lowerBody(owner symgraph.TypeID, ns string, m *ast.MemberDecl) *Body {
	b.owner, b.ns = owner, ns
	b.scope = transform.NewLocalScope(b.minify)

	// Generated type names referenced by the body live in the enclosing
	// scope; locals must not shadow them.
	for _, id := range b.typesReferenced(m) {
		b.scope.Reserve(b.set.Type(id).GeneratedName)
	}

	body := &Body{}
	for _, p := range m.Params {
		body.Params = append(body.Params, b.scope.Declare(p.Name))
	}
	for _, s := range m.Body.Stmts {
		if lowered := b.lowerStmt(s); lowered != nil {
			body.Stmts = append(body.Stmts, lowered)
		}
	}
	return body
}

func (b *lowerer) lowerStmt(s ast.Stmt) Stmt {
	switch s := s.(type) {
	case *ast.VarStmt:
		var init Expr
		if s.Init != nil {
			init = b.lowerExpr(s.Init)
		}
		return &VarDecl{Name: b.scope.Declare(s.Name), Init: init}
	case *ast.AssignStmt:
		return &Assign{Target: b.lowerExpr(s.Target), Value: b.lowerExpr(s.Value)}
	case *ast.ExprStmt:
		return &ExprStmt{E: b.lowerExpr(s.E)}
	case *ast.ReturnStmt:
		ret := &Return{}
		if s.E != nil {
			ret.E = b.lowerExpr(s.E)
		}
		return ret
	}
	return nil
}

func (b *lowerer) lowerExpr(e ast.Expr) Expr {
	switch e := e.(type) {
	case *ast.Ident:
		return b.lowerIdent(e)
	case *ast.This:
		return &ThisRef{}
	case *ast.Lit:
		return &Literal{Kind: e.Kind, Text: e.Text}
	case *ast.Member:
		return b.lowerMember(e)
	case *ast.Call:
		call := &Call{Fn: b.lowerExpr(e.Fn)}
		for _, arg := range e.Args {
			call.Args = append(call.Args, b.lowerExpr(arg))
		}
		return call
	case *ast.New:
		typ, ok := b.resolveType(e.Type.Name)
		if !ok {
			diag.Errorf(b.reporter, diag.SemaUnknownName, e.Type.Span,
				"unknown type %s", e.Type.Name)
			return &Literal{Kind: ast.LitNull, Text: "null"}
		}
		obj := &New{Type: typ}
		for _, arg := range e.Args {
			obj.Args = append(obj.Args, b.lowerExpr(arg))
		}
		return obj
	case *ast.Binary:
		return &Binary{Op: binaryOp(e.Op), L: b.lowerExpr(e.L), R: b.lowerExpr(e.R)}
	}
	return &Literal{Kind: ast.LitNull, Text: "null"}
}

// lowerIdent resolves a bare identifier: local or parameter first, then a
// member of the enclosing type or its ancestors, then a type name.
func (b *lowerer) lowerIdent(e *ast.Ident) Expr {
	if gen, ok := b.scope.Lookup(e.Name); ok {
		return &LocalRef{Name: gen}
	}
	if mid := b.findMember(b.owner, e.Name); mid.IsValid() {
		return &MemberRef{Recv: &ThisRef{}, Member: mid}
	}
	if typ, ok := b.resolveType(e.Name); ok {
		return &TypeRef{Type: typ}
	}
	diag.Errorf(b.reporter, diag.SemaUnknownName, e.Span, "unknown name %s", e.Name)
	return &LocalRef{Name: transform.Internalize(e.Name)}
}

// lowerMember resolves a dotted access. Static receivers resolve against the
// receiver type's members; accesses through values of unknown static type
// pass the member name through unchanged.
func (b *lowerer) lowerMember(e *ast.Member) Expr {
	recv := b.lowerExpr(e.Recv)
	switch r := recv.(type) {
	case *TypeRef:
		if mid := b.findMember(r.Type, e.Name); mid.IsValid() {
			return &MemberRef{Recv: recv, Member: mid}
		}
		diag.Errorf(b.reporter, diag.SemaUnknownName, e.Span,
			"type %s has no member %s", b.set.Type(r.Type).QualifiedName(), e.Name)
		return &DynamicRef{Recv: recv, Name: e.Name}
	case *ThisRef:
		if mid := b.findMember(b.owner, e.Name); mid.IsValid() {
			return &MemberRef{Recv: recv, Member: mid}
		}
		diag.Errorf(b.reporter, diag.SemaUnknownName, e.Span,
			"type %s has no member %s", b.set.Type(b.owner).QualifiedName(), e.Name)
		return &DynamicRef{Recv: recv, Name: e.Name}
	default:
		return &DynamicRef{Recv: recv, Name: e.Name}
	}
}

// findMember looks up a member by name on a type and its ancestors,
// nearest declaration first.
func (b *lowerer) findMember(owner symgraph.TypeID, name string) symgraph.MemberID {
	chain := append([]symgraph.TypeID{owner}, b.set.Ancestors(owner)...)
	for _, tid := range chain {
		for _, mid := range b.set.Type(tid).Members {
			if b.set.Member(mid).Name == name {
				return mid
			}
		}
	}
	return symgraph.NoMemberID
}

// resolveType resolves a dotted type name seen inside the current namespace,
// trying enclosing prefixes innermost first.
func (b *lowerer) resolveType(name string) (symgraph.TypeID, bool) {
	for ns := b.ns; ns != ""; {
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

// typesReferenced walks a body and collects every type its expressions
// resolve to, in first-reference order.
func (b *lowerer) typesReferenced(m *ast.MemberDecl) []symgraph.TypeID {
	var out []symgraph.TypeID
	seen := make(map[symgraph.TypeID]struct{})
	add := func(name string) {
		typ, ok := b.resolveType(name)
		if !ok {
			return
		}
		if _, dup := seen[typ]; dup {
			return
		}
		seen[typ] = struct{}{}
		out = append(out, typ)
	}
	params := make(map[string]struct{}, len(m.Params))
	for _, p := range m.Params {
		params[p.Name] = struct{}{}
	}
	locals := make(map[string]struct{})

	var walkExpr func(e ast.Expr)
	walkExpr = func(e ast.Expr) {
		switch e := e.(type) {
		case *ast.Ident:
			if _, p := params[e.Name]; p {
				return
			}
			if _, l := locals[e.Name]; l {
				return
			}
			if b.findMember(b.owner, e.Name).IsValid() {
				return
			}
			add(e.Name)
		case *ast.Member:
			walkExpr(e.Recv)
		case *ast.Call:
			walkExpr(e.Fn)
			for _, arg := range e.Args {
				walkExpr(arg)
			}
		case *ast.New:
			add(e.Type.Name)
			for _, arg := range e.Args {
				walkExpr(arg)
			}
		case *ast.Binary:
			walkExpr(e.L)
			walkExpr(e.R)
		}
	}
	for _, s := range m.Body.Stmts {
		switch s := s.(type) {
		case *ast.VarStmt:
			if s.Init != nil {
				walkExpr(s.Init)
			}
			locals[s.Name] = struct{}{}
		case *ast.AssignStmt:
			walkExpr(s.Target)
			walkExpr(s.Value)
		case *ast.ExprStmt:
			walkExpr(s.E)
		case *ast.ReturnStmt:
			if s.E != nil {
				walkExpr(s.E)
			}
		}
	}
	return out
}

func binaryOp(k token.Kind) string {
	switch k {
	case token.Plus:
		return "+"
	case token.Minus:
		return "-"
	case token.Star:
		return "*"
	case token.Slash:
		return "/"
	case token.EqEq:
		return "==="
	case token.BangEq:
		return "!=="
	case token.Lt:
		return "<"
	case token.Gt:
		return ">"
	case token.LtEq:
		return "<="
	case token.GtEq:
		return ">="
	}
	return "?"
}
