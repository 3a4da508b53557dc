// Package emit serializes the renamed symbol graph and lowered method
// bodies into script text. The symbol graph is read-only here; every name
// written comes from a GeneratedName assigned earlier in the pipeline.
//
// The emitted script is flat: the target has no namespacing, so every
// primary non-delegate type becomes one top-level var. Classes become
// constructor functions with prototype members, enums become object
// literals mapping case names to ordinals, interfaces become empty marker
// objects, delegates are erased.
package emit

import (
	"fmt"
	"io"
	"strings"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/impl"
	"slate/internal/source"
	"slate/internal/symgraph"
)

// Options control one generation run.
type Options struct {
	// IncludeTests keeps test-flavored types in the output; the main
	// artifact is generated with it off.
	IncludeTests bool
	// Template, when non-empty, wraps the script body. See Template.
	Template string
	// Aliases overrides the default module alias table.
	Aliases AliasTable
	// Reporter receives the assertion log for contained internal faults.
	Reporter diag.Reporter
}

// Generate writes the script for set and prog to w. A panic while
// serializing is contained here: the fault is logged through the reporter
// as a non-fatal assertion and Generate returns what was written so far,
// so the caller can still flush and close the sink.
func Generate(w io.Writer, set *symgraph.SymbolSet, prog *impl.Program, opts Options) (err error) {
	body := func() (text string) {
		defer func() {
			if r := recover(); r != nil {
				diag.Warning(opts.Reporter, diag.EmitInternalAssert,
					source.Span{}, fmt.Sprintf("internal fault during script generation: %v", r))
				text = ""
			}
		}()
		g := &generator{set: set, prog: prog, opts: opts}
		return g.script()
	}()

	out := body
	if opts.Template != "" {
		t := Template{Text: opts.Template, Aliases: opts.Aliases}
		out = t.Render(set.ScriptName, set.Dependencies(), body)
	}
	_, err = io.WriteString(w, out)
	return err
}

type generator struct {
	set  *symgraph.SymbolSet
	prog *impl.Program
	opts Options
	buf  strings.Builder
}

func (g *generator) script() string {
	for _, id := range g.set.InheritanceOrder() {
		typ := g.set.Type(id)
		if !typ.IsApplication() || !typ.IsPrimary() {
			continue
		}
		if typ.IsTest() && !g.opts.IncludeTests {
			continue
		}
		switch typ.Kind {
		case symgraph.SymbolClass:
			g.class(typ)
		case symgraph.SymbolInterface:
			g.printf("var %s = {};\n\n", typ.GeneratedName)
		case symgraph.SymbolEnum:
			g.enum(typ)
		case symgraph.SymbolDelegate:
			// erased
		}
	}
	return g.buf.String()
}

func (g *generator) class(typ *symgraph.TypeSymbol) {
	name := typ.GeneratedName

	g.printf("var %s = function() {\n", name)
	if typ.Base.IsValid() {
		g.printf("\t%s.call(this);\n", g.set.Type(typ.Base).GeneratedName)
	}
	for _, mid := range g.instanceSlots(typ) {
		g.printf("\tthis.%s = null;\n", g.set.Member(mid).GeneratedName)
	}
	g.printf("};\n")

	if typ.Base.IsValid() {
		g.printf("%s.prototype = Object.create(%s.prototype);\n",
			name, g.set.Type(typ.Base).GeneratedName)
	}
	for _, mid := range typ.Members {
		m := g.set.Member(mid)
		if m.Flags&symgraph.FlagStatic != 0 {
			g.staticMember(name, m)
			continue
		}
		if m.Kind == symgraph.SymbolMethod {
			g.printf("%s.prototype.%s = ", name, m.GeneratedName)
			g.methodValue(m)
			g.printf(";\n")
		}
	}
	g.printf("\n")
}

func (g *generator) staticMember(typeName string, m *symgraph.MemberSymbol) {
	switch m.Kind {
	case symgraph.SymbolMethod:
		g.printf("%s.%s = ", typeName, m.GeneratedName)
		g.methodValue(m)
		g.printf(";\n")
	default:
		g.printf("%s.%s = null;\n", typeName, m.GeneratedName)
	}
}

// instanceSlots lists the type's own data-carrying members, statics
// excluded; each becomes a null-initialized slot in the constructor.
func (g *generator) instanceSlots(typ *symgraph.TypeSymbol) []symgraph.MemberID {
	var out []symgraph.MemberID
	for _, mid := range typ.Members {
		m := g.set.Member(mid)
		if m.Flags&symgraph.FlagStatic != 0 {
			continue
		}
		switch m.Kind {
		case symgraph.SymbolField, symgraph.SymbolProperty, symgraph.SymbolEvent:
			out = append(out, mid)
		}
	}
	return out
}

func (g *generator) enum(typ *symgraph.TypeSymbol) {
	g.printf("var %s = {\n", typ.GeneratedName)
	for _, mid := range typ.Members {
		m := g.set.Member(mid)
		if m.Kind != symgraph.SymbolEnumCase {
			continue
		}
		g.printf("\t%s: %d,\n", m.GeneratedName, m.Ordinal)
	}
	g.printf("};\n\n")
}

func (g *generator) methodValue(m *symgraph.MemberSymbol) {
	body := g.prog.Bodies[m.ID]
	if body == nil {
		g.printf("function() {}")
		return
	}
	g.printf("function(%s) {\n", strings.Join(body.Params, ", "))
	for _, s := range body.Stmts {
		g.printf("\t")
		g.stmt(s)
		g.printf("\n")
	}
	g.printf("}")
}

func (g *generator) stmt(s impl.Stmt) {
	switch s := s.(type) {
	case *impl.VarDecl:
		if s.Init != nil {
			g.printf("var %s = %s;", s.Name, g.expr(s.Init))
		} else {
			g.printf("var %s;", s.Name)
		}
	case *impl.Assign:
		g.printf("%s = %s;", g.expr(s.Target), g.expr(s.Value))
	case *impl.ExprStmt:
		g.printf("%s;", g.expr(s.E))
	case *impl.Return:
		if s.E != nil {
			g.printf("return %s;", g.expr(s.E))
		} else {
			g.printf("return;")
		}
	default:
		panic(fmt.Sprintf("emit: unhandled statement %T", s))
	}
}

func (g *generator) expr(e impl.Expr) string {
	switch e := e.(type) {
	case *impl.LocalRef:
		return e.Name
	case *impl.ThisRef:
		return "this"
	case *impl.TypeRef:
		return g.set.Type(e.Type).GeneratedName
	case *impl.MemberRef:
		return g.expr(e.Recv) + "." + g.set.Member(e.Member).GeneratedName
	case *impl.DynamicRef:
		return g.expr(e.Recv) + "." + e.Name
	case *impl.Literal:
		return literal(e)
	case *impl.Call:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a)
		}
		return g.expr(e.Fn) + "(" + strings.Join(args, ", ") + ")"
	case *impl.New:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = g.expr(a)
		}
		return "new " + g.set.Type(e.Type).GeneratedName + "(" + strings.Join(args, ", ") + ")"
	case *impl.Binary:
		return "(" + g.expr(e.L) + " " + e.Op + " " + g.expr(e.R) + ")"
	default:
		panic(fmt.Sprintf("emit: unhandled expression %T", e))
	}
}

func literal(l *impl.Literal) string {
	if l.Kind == ast.LitString {
		return quote(l.Text)
	}
	return l.Text
}

// quote renders a string literal in single quotes with minimal escaping.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}
