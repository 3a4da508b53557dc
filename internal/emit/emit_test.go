package emit

import (
	"strings"
	"testing"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/impl"
	"slate/internal/metabuild"
	"slate/internal/parser"
	"slate/internal/source"
	"slate/internal/symgraph"
	"slate/internal/transform"
)

func TestTemplateSubstitution(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	set.ScriptName = "Foo"
	set.AddDependency("jquery")
	set.AddDependency("bar")

	tpl := Template{Text: "var x = {name}; // {requires} {dependencies} {script}"}
	got := tpl.Render(set.ScriptName, set.Dependencies(), "alert(1);")
	want := "var x = Foo; // 'jquery', 'bar' $, bar alert(1);"
	if got != want {
		t.Fatalf("rendered\n%q\nwant\n%q", got, want)
	}
}

func TestTemplateStripsLeadingWhitespace(t *testing.T) {
	tpl := Template{Text: "\n\t  {script} tail\n"}
	if got := tpl.Render("S", nil, "x();"); got != "x(); tail\n" {
		t.Fatalf("rendered %q", got)
	}
}

func TestTemplateSinglePass(t *testing.T) {
	// placeholder-like text inside substituted values must not be
	// substituted again
	tpl := Template{Text: "{script}"}
	if got := tpl.Render("S", nil, "log('{name}');"); got != "log('{name}');" {
		t.Fatalf("substitution re-scanned output: %q", got)
	}
}

func TestTemplateAliasOverride(t *testing.T) {
	tpl := Template{
		Text:    "{dependencies}",
		Aliases: AliasTable{"jquery": "$", "underscore": "_"},
	}
	got := tpl.Render("S", []string{"JQuery", "Underscore", "other"}, "")
	if got != "$, _, other" {
		t.Fatalf("bindings = %q", got)
	}
}

// compile runs the pipeline through lowering for one source string.
func compile(t *testing.T, src string, mode transform.Mode) (*symgraph.SymbolSet, *impl.Program) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.sl", []byte(src))
	bag := diag.NewBag(0)
	reporter := diag.BagReporter{Bag: bag}

	unit := parser.ParseUnit(fs.Get(id), reporter)
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	units := []*ast.Unit{unit}
	metabuild.Build(units, set, reporter)
	if bag.HasErrors() {
		t.Fatalf("pipeline errors: %v", bag.Items())
	}
	transform.Transform(set, mode)
	prog := impl.Build(units, set, mode == transform.ModeObfuscate, reporter)
	if bag.HasErrors() {
		t.Fatalf("lowering errors: %v", bag.Items())
	}
	return set, prog
}

func TestGenerateClassShape(t *testing.T) {
	src := `
class Base {
	field tag: string;
	method label(): string {
		return tag;
	}
}
class Derived : Base {
	override method label(): string {
		return "d";
	}
}
`
	set, prog := compile(t, src, transform.ModeInternalize)
	var out strings.Builder
	if err := Generate(&out, set, prog, Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	script := out.String()

	for _, want := range []string{
		"var Base = function() {",
		"this.tag = null;",
		"Base.prototype.label = function() {",
		"return this.tag;",
		"var Derived = function() {",
		"Base.call(this);",
		"Derived.prototype = Object.create(Base.prototype);",
		"Derived.prototype.label = function() {",
		"return 'd';",
	} {
		if !strings.Contains(script, want) {
			t.Fatalf("output missing %q:\n%s", want, script)
		}
	}
	if base := strings.Index(script, "var Base"); base > strings.Index(script, "var Derived") {
		t.Fatalf("base emitted after derived:\n%s", script)
	}
}

func TestGenerateEnumAndInterface(t *testing.T) {
	src := `
enum Color { Red, Green }
interface Shape {
	method area(): int;
}
delegate Callback(value: int);
`
	set, prog := compile(t, src, transform.ModeInternalize)
	var out strings.Builder
	if err := Generate(&out, set, prog, Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	script := out.String()

	if !strings.Contains(script, "var Color = {") ||
		!strings.Contains(script, "Red: 0,") ||
		!strings.Contains(script, "Green: 1,") {
		t.Fatalf("enum not emitted as object literal:\n%s", script)
	}
	if !strings.Contains(script, "var Shape = {};") {
		t.Fatalf("interface marker missing:\n%s", script)
	}
	if strings.Contains(script, "Callback") {
		t.Fatalf("delegate not erased:\n%s", script)
	}
}

func TestGenerateExcludesTestTypes(t *testing.T) {
	src := `
class App {
	method run() {
		return;
	}
}
test class AppTests {
	method check() {
		return;
	}
}
`
	set, prog := compile(t, src, transform.ModeInternalize)

	var main strings.Builder
	if err := Generate(&main, set, prog, Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if strings.Contains(main.String(), "AppTests") {
		t.Fatalf("main artifact contains test type:\n%s", main.String())
	}

	var flavored strings.Builder
	if err := Generate(&flavored, set, prog, Options{IncludeTests: true}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(flavored.String(), "AppTests") {
		t.Fatalf("test artifact misses test type:\n%s", flavored.String())
	}
}

func TestGenerateContainsInternalFaults(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	typ := set.NewType(&symgraph.TypeSymbol{
		Name: "Broken", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication,
	})
	mid := set.NewMember(&symgraph.MemberSymbol{
		Name: "go", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication, Owner: typ,
	})
	prog := &impl.Program{Bodies: map[symgraph.MemberID]*impl.Body{
		mid: {Stmts: []impl.Stmt{
			// dangling member reference makes serialization panic
			&impl.ExprStmt{E: &impl.MemberRef{Recv: &impl.ThisRef{}, Member: symgraph.MemberID(999)}},
		}},
	}}

	bag := diag.NewBag(0)
	var out strings.Builder
	err := Generate(&out, set, prog, Options{Reporter: diag.BagReporter{Bag: bag}})
	if err != nil {
		t.Fatalf("Generate returned error for contained fault: %v", err)
	}
	if bag.HasErrors() {
		t.Fatalf("contained fault escalated to an error: %v", bag.Items())
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.EmitInternalAssert {
		t.Fatalf("assertion log missing: %v", bag.Items())
	}
}
