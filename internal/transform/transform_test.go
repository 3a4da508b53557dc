package transform

import (
	"testing"

	"slate/internal/symgraph"
)

func TestInternalizeIdempotent(t *testing.T) {
	cases := map[string]string{
		"plain":   "plain",
		"9lives":  "_9lives",
		"var":     "_var",
		"a-b":     "a_b",
		"get me":  "get_me",
		"$cache":  "$cache",
		"_hidden": "_hidden",
	}
	for in, want := range cases {
		got := Internalize(in)
		if got != want {
			t.Fatalf("Internalize(%q) = %q, want %q", in, got, want)
		}
		if again := Internalize(got); again != got {
			t.Fatalf("Internalize not idempotent: %q -> %q -> %q", in, got, again)
		}
	}
}

func TestShortNamerSkipsReservedAndTaken(t *testing.T) {
	n := NewShortNamer()
	n.Reserve("a")
	if got := n.Next(); got != "b" {
		t.Fatalf("Next after reserving a = %q, want b", got)
	}
	seen := map[string]struct{}{"a": {}, "b": {}}
	for i := 0; i < 5000; i++ {
		name := n.Next()
		if IsReserved(name) {
			t.Fatalf("Next returned reserved word %q", name)
		}
		if _, dup := seen[name]; dup {
			t.Fatalf("Next returned duplicate %q", name)
		}
		seen[name] = struct{}{}
	}
}

func TestShortNameOrdinals(t *testing.T) {
	if got := shortName(0); got != "a" {
		t.Fatalf("shortName(0) = %q, want a", got)
	}
	if got := shortName(51); got != "Z" {
		t.Fatalf("shortName(51) = %q, want Z", got)
	}
	if got := shortName(52); got != "aa" {
		t.Fatalf("shortName(52) = %q, want aa", got)
	}
}

// buildHierarchy creates Base with Run and Stop, Middle extending Base
// overriding Run, and Leaf extending Middle overriding Run again.
func buildHierarchy(t *testing.T) (*symgraph.SymbolSet, [3]symgraph.MemberID) {
	t.Helper()
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	base := set.NewType(&symgraph.TypeSymbol{
		Name: "Base", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication,
	})
	middle := set.NewType(&symgraph.TypeSymbol{
		Name: "Middle", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication, Base: base,
	})
	leaf := set.NewType(&symgraph.TypeSymbol{
		Name: "Leaf", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication, Base: middle,
	})
	baseRun := set.NewMember(&symgraph.MemberSymbol{
		Name: "Run", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication, Owner: base,
	})
	set.NewMember(&symgraph.MemberSymbol{
		Name: "Stop", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication, Owner: base,
	})
	midRun := set.NewMember(&symgraph.MemberSymbol{
		Name: "Run", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication | symgraph.FlagOverride,
		Owner: middle, Overrides: baseRun,
	})
	leafRun := set.NewMember(&symgraph.MemberSymbol{
		Name: "Run", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication | symgraph.FlagOverride,
		Owner: leaf, Overrides: midRun,
	})
	return set, [3]symgraph.MemberID{baseRun, midRun, leafRun}
}

func TestTransformOverrideChainSharesName(t *testing.T) {
	set, runs := buildHierarchy(t)
	Transform(set, ModeObfuscate)
	root := set.Member(runs[0]).GeneratedName
	if root == "Run" {
		t.Fatalf("obfuscation left the root method name unchanged")
	}
	for _, id := range runs[1:] {
		if got := set.Member(id).GeneratedName; got != root {
			t.Fatalf("override generated name = %q, want root's %q", got, root)
		}
	}
}

func TestTransformSiblingAndInheritedUniqueness(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	base := set.NewType(&symgraph.TypeSymbol{
		Name: "Base", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication,
	})
	derived := set.NewType(&symgraph.TypeSymbol{
		Name: "Derived", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication, Base: base,
	})
	names := []string{"alpha", "beta", "gamma", "delta"}
	for _, name := range names {
		set.NewMember(&symgraph.MemberSymbol{
			Name: name, Kind: symgraph.SymbolField, Flags: symgraph.FlagApplication, Owner: base,
		})
	}
	for _, name := range names {
		set.NewMember(&symgraph.MemberSymbol{
			Name: name + "2", Kind: symgraph.SymbolField, Flags: symgraph.FlagApplication, Owner: derived,
		})
	}
	Transform(set, ModeObfuscate)

	seen := make(map[string]string)
	for _, tid := range set.TypeIDs() {
		for _, mid := range set.Type(tid).Members {
			m := set.Member(mid)
			if prev, dup := seen[m.GeneratedName]; dup {
				t.Fatalf("generated name %q used by both %s and %s", m.GeneratedName, prev, m.Name)
			}
			seen[m.GeneratedName] = m.Name
		}
	}
}

func TestTransformPreserveAndPublic(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	typ := set.NewType(&symgraph.TypeSymbol{
		Name: "Api", Kind: symgraph.SymbolClass,
		Flags: symgraph.FlagApplication | symgraph.FlagPreserve,
	})
	pinned := set.NewMember(&symgraph.MemberSymbol{
		Name: "Fetch", Kind: symgraph.SymbolMethod,
		Flags: symgraph.FlagApplication | symgraph.FlagPreserve, Owner: typ,
	})
	public := set.NewMember(&symgraph.MemberSymbol{
		Name: "Handle", Kind: symgraph.SymbolMethod,
		Flags: symgraph.FlagApplication | symgraph.FlagPublic, Owner: typ,
	})
	private := set.NewMember(&symgraph.MemberSymbol{
		Name: "helper", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication, Owner: typ,
	})
	Transform(set, ModeObfuscate)

	if got := set.Type(typ).GeneratedName; got != "Api" {
		t.Fatalf("preserved type renamed to %q", got)
	}
	if got := set.Member(pinned).GeneratedName; got != "Fetch" {
		t.Fatalf("preserved member renamed to %q", got)
	}
	if got := set.Member(public).GeneratedName; got != "Handle" {
		t.Fatalf("public member obfuscated to %q", got)
	}
	if got := set.Member(private).GeneratedName; got == "helper" {
		t.Fatalf("private member kept its source name under obfuscation")
	}
}

func TestTransformImportedReservedNotRenamed(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	imported := set.NewType(&symgraph.TypeSymbol{
		Name: "Element", GeneratedName: "a", Kind: symgraph.SymbolClass,
	})
	app := set.NewType(&symgraph.TypeSymbol{
		Name: "Widget", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication,
	})
	Transform(set, ModeObfuscate)

	if got := set.Type(imported).GeneratedName; got != "a" {
		t.Fatalf("imported type renamed to %q", got)
	}
	if got := set.Type(app).GeneratedName; got == "a" {
		t.Fatalf("application type collided with imported generated name")
	}
}

func TestTransformFragmentsFollowPrimary(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	primary := set.NewType(&symgraph.TypeSymbol{
		Name: "Editor", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication,
	})
	fragment := set.NewType(&symgraph.TypeSymbol{
		Name: "Editor", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication, Primary: primary,
	})
	Transform(set, ModeObfuscate)

	p := set.Type(primary).GeneratedName
	if f := set.Type(fragment).GeneratedName; f != p {
		t.Fatalf("fragment generated name %q, want primary's %q", f, p)
	}
}

func TestTransformDeterministic(t *testing.T) {
	run := func() []Rename {
		set, _ := buildHierarchy(t)
		return Transform(set, ModeObfuscate)
	}
	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("rename counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("rename %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestTransformInternalizeKeepsReadableNames(t *testing.T) {
	set := symgraph.NewSymbolSet(symgraph.Hints{})
	typ := set.NewType(&symgraph.TypeSymbol{
		Name: "App", Kind: symgraph.SymbolClass, Flags: symgraph.FlagApplication,
	})
	m := set.NewMember(&symgraph.MemberSymbol{
		Name: "delete", Kind: symgraph.SymbolMethod, Flags: symgraph.FlagApplication, Owner: typ,
	})
	Transform(set, ModeInternalize)

	if got := set.Type(typ).GeneratedName; got != "App" {
		t.Fatalf("internalize renamed App to %q", got)
	}
	if got := set.Member(m).GeneratedName; got != "_delete" {
		t.Fatalf("reserved word member internalized to %q, want _delete", got)
	}
}

func TestLocalScopeMinified(t *testing.T) {
	s := NewLocalScope(true)
	s.Reserve("a")
	first := s.Declare("count")
	if first != "b" {
		t.Fatalf("first minified local = %q, want b", first)
	}
	if again := s.Declare("count"); again != first {
		t.Fatalf("redeclared local got new name %q", again)
	}
	second := s.Declare("total")
	if second == first {
		t.Fatalf("two locals share name %q", first)
	}
}

func TestLocalScopeReadable(t *testing.T) {
	s := NewLocalScope(false)
	if got := s.Declare("if"); got != "_if" {
		t.Fatalf("reserved local = %q, want _if", got)
	}
	s.Reserve("count")
	if got := s.Declare("count"); got != "count$1" {
		t.Fatalf("shadowed local = %q, want count$1", got)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatalf("Lookup found undeclared name")
	}
}
