package metabuild

import (
	"testing"

	"slate/internal/ast"
	"slate/internal/diag"
	"slate/internal/parser"
	"slate/internal/source"
	"slate/internal/symgraph"
)

func buildSrc(t *testing.T, srcs ...string) (*symgraph.SymbolSet, []symgraph.TypeID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(32)
	reporter := diag.BagReporter{Bag: bag}

	var units []*ast.Unit
	for _, src := range srcs {
		id := fs.AddVirtual("test.sl", []byte(src))
		units = append(units, parser.ParseUnit(fs.Get(id), reporter))
	}
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}

	set := symgraph.NewSymbolSet(symgraph.Hints{})
	appTypes := Build(units, set, reporter)
	return set, appTypes, bag
}

func TestBuildLinksOverrides(t *testing.T) {
	set, _, bag := buildSrc(t, `
interface IShape {
    method Area(): int;
}
class Shape : IShape {
    method Area(): int { return 0; }
    method Name(): string { return "shape"; }
}
class Circle : Shape {
    override method Area(): int { return 3; }
}
`)
	if bag.HasErrors() {
		t.Fatalf("errors: %v", bag.Items())
	}
	if err := set.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	circleID, _ := set.LookupType("Circle")
	shapeID, _ := set.LookupType("Shape")
	ifaceID, _ := set.LookupType("IShape")

	circleArea := findMember(t, set, circleID, "Area")
	shapeArea := findMember(t, set, shapeID, "Area")
	ifaceArea := findMember(t, set, ifaceID, "Area")

	if set.Member(circleArea).Overrides != shapeArea {
		t.Fatal("Circle.Area does not override Shape.Area")
	}
	if set.Member(shapeArea).Overrides != ifaceArea {
		t.Fatal("Shape.Area does not implement IShape.Area")
	}
	if set.Member(findMember(t, set, shapeID, "Name")).Overrides.IsValid() {
		t.Fatal("Shape.Name overrides something")
	}
}

func TestBuildOverrideNothingReported(t *testing.T) {
	_, _, bag := buildSrc(t, `
class Base { }
class Derived : Base {
    override method Missing(): int { return 0; }
}
`)
	if !hasCode(bag, diag.SemaBadOverride) {
		t.Fatalf("expected bad-override, got %v", bag.Items())
	}
}

func TestBuildPartialFragmentsMerge(t *testing.T) {
	set, appTypes, bag := buildSrc(t, `
partial class Widget { field a: int; }
partial class Widget { field b: int; }
`)
	if bag.HasErrors() {
		t.Fatalf("errors: %v", bag.Items())
	}
	if len(appTypes) != 2 {
		t.Fatalf("app types = %d, want both fragments", len(appTypes))
	}

	primaryID, _ := set.LookupType("Widget")
	primary := set.Type(primaryID)
	if len(primary.Members) != 2 {
		t.Fatalf("primary owns %d members, want 2", len(primary.Members))
	}

	fragments := 0
	for _, id := range appTypes {
		if !set.Type(id).IsPrimary() {
			fragments++
			if set.Type(id).Primary != primaryID {
				t.Fatal("fragment points at the wrong primary")
			}
			if len(set.Type(id).Members) != 0 {
				t.Fatal("non-primary fragment owns members")
			}
		}
	}
	if fragments != 1 {
		t.Fatalf("fragments = %d, want 1", fragments)
	}
}

func TestBuildPartialFragmentFlagsMerge(t *testing.T) {
	set, _, bag := buildSrc(t, `
partial class Harness { field a: int; }
test partial class Harness { field b: int; }
partial preserve class Keeper { }
partial class Keeper { }
`)
	if bag.HasErrors() {
		t.Fatalf("errors: %v", bag.Items())
	}

	harnessID, _ := set.LookupType("Harness")
	if !set.Type(harnessID).IsTest() {
		t.Fatal("test modifier on a later fragment did not reach the primary")
	}
	keeperID, _ := set.LookupType("Keeper")
	if set.Type(keeperID).Flags&symgraph.FlagPreserve == 0 {
		t.Fatal("preserve modifier lost when declared on the first fragment")
	}
}

func TestBuildPartialKindMismatch(t *testing.T) {
	_, _, bag := buildSrc(t, `
partial class Widget { }
partial interface Widget { }
`)
	if !hasCode(bag, diag.SemaPartialKindMismatch) {
		t.Fatalf("expected partial-kind-mismatch, got %v", bag.Items())
	}
}

func TestBuildDuplicateTypeReported(t *testing.T) {
	_, _, bag := buildSrc(t, `
class Foo { }
class Foo { }
`)
	if !hasCode(bag, diag.SemaDuplicateType) {
		t.Fatalf("expected duplicate-type, got %v", bag.Items())
	}
}

func TestBuildBreaksBaseCycle(t *testing.T) {
	set, _, bag := buildSrc(t, `
class A : B { }
class B : A { }
`)
	if !hasCode(bag, diag.SemaCyclicBase) {
		t.Fatalf("expected cyclic-base, got %v", bag.Items())
	}
	// the invariant must hold afterwards so the transformer terminates
	if err := set.Validate(); err != nil {
		t.Fatalf("validate after cycle break: %v", err)
	}
}

func TestBuildBreaksInterfaceCycle(t *testing.T) {
	set, _, bag := buildSrc(t, `
interface A : B {
    method Run(): int;
}
interface B : A {
    method Run(): int;
}
`)
	if !hasCode(bag, diag.SemaCyclicBase) {
		t.Fatalf("expected cyclic-base, got %v", bag.Items())
	}
	// both walks must terminate once the closing edge is gone
	if got, want := len(set.InheritanceOrder()), set.TypeCount(); got != want {
		t.Fatalf("inheritance order covers %d of %d types", got, want)
	}
	aID, _ := set.LookupType("A")
	bID, _ := set.LookupType("B")
	for _, id := range []symgraph.TypeID{aID, bID} {
		run := findMember(t, set, id, "Run")
		root := set.OverrideRoot(run)
		if set.Member(root).Overrides.IsValid() {
			t.Fatalf("override root of %s.Run still overrides something",
				set.Type(id).QualifiedName())
		}
	}
}

func TestBuildAccumulatesRequires(t *testing.T) {
	set, _, _ := buildSrc(t, `
require "jquery";
require "app/util";
require "jquery";
class C { }
`)
	deps := set.Dependencies()
	if len(deps) != 2 || deps[0] != "jquery" || deps[1] != "app/util" {
		t.Fatalf("dependencies = %v", deps)
	}
}

func TestBuildNamespaceScopedResolution(t *testing.T) {
	set, _, bag := buildSrc(t, `
namespace App {
    class Base { method M(): int; }
    class Derived : Base {
        override method M(): int { return 1; }
    }
}
`)
	if bag.HasErrors() {
		t.Fatalf("errors: %v", bag.Items())
	}
	derivedID, ok := set.LookupType("App.Derived")
	if !ok {
		t.Fatal("App.Derived missing")
	}
	baseID, _ := set.LookupType("App.Base")
	if set.Type(derivedID).Base != baseID {
		t.Fatal("base not resolved through the namespace prefix")
	}
}

func findMember(t *testing.T, set *symgraph.SymbolSet, owner symgraph.TypeID, name string) symgraph.MemberID {
	t.Helper()
	for _, mid := range set.Type(owner).Members {
		if set.Member(mid).Name == name {
			return mid
		}
	}
	t.Fatalf("member %s not found on %s", name, set.Type(owner).QualifiedName())
	return symgraph.NoMemberID
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
