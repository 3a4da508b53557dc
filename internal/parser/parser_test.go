package parser

import (
	"testing"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/source"
)

func parseSrc(t *testing.T, src string) (*ast.Unit, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sl", []byte(src))
	bag := diag.NewBag(32)
	unit := ParseUnit(fs.Get(id), diag.BagReporter{Bag: bag})
	return unit, bag
}

func TestParseClassWithMembers(t *testing.T) {
	unit, bag := parseSrc(t, `
namespace App.Core {
    public class Greeter : Base, IGreeter {
        field name: string;
        property Name: string;
        event Changed;
        method Greet(who: string): string {
            var msg = "hi";
            return msg;
        }
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(unit.Decls) != 1 {
		t.Fatalf("decl count = %d", len(unit.Decls))
	}
	decl := unit.Decls[0]
	if decl.QualifiedName() != "App.Core.Greeter" {
		t.Fatalf("qualified name = %q", decl.QualifiedName())
	}
	if !decl.Mods.Has(ast.ModPublic) {
		t.Fatal("public modifier lost")
	}
	if len(decl.Bases) != 2 || decl.Bases[0].Name != "Base" || decl.Bases[1].Name != "IGreeter" {
		t.Fatalf("bases = %+v", decl.Bases)
	}
	if len(decl.Members) != 4 {
		t.Fatalf("member count = %d", len(decl.Members))
	}
	method := decl.Members[3]
	if method.Kind != ast.MemberMethod || method.Name != "Greet" {
		t.Fatalf("method = %+v", method)
	}
	if len(method.Params) != 1 || method.Params[0].Name != "who" {
		t.Fatalf("params = %+v", method.Params)
	}
	if method.Body == nil || len(method.Body.Stmts) != 2 {
		t.Fatalf("body = %+v", method.Body)
	}
}

func TestParseEnumAndDelegate(t *testing.T) {
	unit, bag := parseSrc(t, `
enum Color { Red, Green, Blue }
delegate Callback(value: int): int;
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(unit.Decls) != 2 {
		t.Fatalf("decl count = %d", len(unit.Decls))
	}
	enum := unit.Decls[0]
	if enum.Kind != ast.DeclEnum || len(enum.Cases) != 3 || enum.Cases[2].Name != "Blue" {
		t.Fatalf("enum = %+v", enum)
	}
	del := unit.Decls[1]
	if del.Kind != ast.DeclDelegate || len(del.Params) != 1 {
		t.Fatalf("delegate = %+v", del)
	}
}

func TestParseRequire(t *testing.T) {
	unit, bag := parseSrc(t, `
require "jquery";
require "app/util";
class C {}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if len(unit.Requires) != 2 || unit.Requires[0].Module != "jquery" {
		t.Fatalf("requires = %+v", unit.Requires)
	}
}

func TestParsePartialAndTestModifiers(t *testing.T) {
	unit, bag := parseSrc(t, `
partial class Widget { field a: int; }
test class WidgetTests { method Run() { } }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if !unit.Decls[0].Mods.Has(ast.ModPartial) {
		t.Fatal("partial modifier lost")
	}
	if !unit.Decls[1].Mods.Has(ast.ModTest) {
		t.Fatal("test modifier lost")
	}
}

func TestParseRecoversInsideClass(t *testing.T) {
	unit, bag := parseSrc(t, `
class Broken {
    field : int;
    method Ok() { }
}
`)
	if !bag.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	if len(unit.Decls) != 1 {
		t.Fatalf("decl count = %d", len(unit.Decls))
	}
	found := false
	for _, m := range unit.Decls[0].Members {
		if m.Name == "Ok" {
			found = true
		}
	}
	if !found {
		t.Fatal("parser did not recover to the next member")
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	unit, bag := parseSrc(t, `
class C {
    method M(): int {
        var x = 1 + 2 * 3;
        return x;
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	body := unit.Decls[0].Members[0].Body
	varStmt, ok := body.Stmts[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("stmt = %T", body.Stmts[0])
	}
	add, ok := varStmt.Init.(*ast.Binary)
	if !ok {
		t.Fatalf("init = %T", varStmt.Init)
	}
	if _, ok := add.R.(*ast.Binary); !ok {
		t.Fatalf("rhs of + is %T, want *ast.Binary (multiplication binds tighter)", add.R)
	}
}
