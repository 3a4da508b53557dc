package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slate/internal/buildpipeline"
	"slate/internal/diag"
)

func writeSource(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const appSrc = `
require "jquery";

namespace App {
	class Greeter {
		field name: string;
		method greet(): string {
			return "hi, " + name;
		}
	}
}
`

func TestCompileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "app.sl", appSrc)
	out := filepath.Join(dir, "app.js")

	res, ok := New().Compile(Options{
		Sources:  []string{src},
		OutPath:  out,
		Reporter: diag.NopReporter{},
	})
	if !ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	script, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	for _, want := range []string{"var Greeter = function()", "Greeter.prototype.greet"} {
		if !strings.Contains(string(script), want) {
			t.Fatalf("artifact missing %q:\n%s", want, script)
		}
	}
	if deps := res.Set.Dependencies(); len(deps) != 1 || deps[0] != "jquery" {
		t.Fatalf("dependencies = %v, want [jquery]", deps)
	}
}

func TestCompileWritesMetadataSidecar(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "lib.sl", `
namespace Lib {
	class Counter {
		field count: int;
		method bump() {
			count = count + 1;
		}
	}
}
`)
	out := filepath.Join(dir, "lib.js")

	if res, ok := New().Compile(Options{
		Sources:  []string{src},
		OutPath:  out,
		Reporter: diag.NopReporter{},
	}); !ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}

	sidecar := filepath.Join(dir, "lib.slmeta")
	if _, err := os.Stat(sidecar); err != nil {
		t.Fatalf("metadata sidecar not written: %v", err)
	}

	app := writeSource(t, dir, "app.sl", `
namespace App {
	class Clicker : Lib.Counter {
	}
}
`)
	res, ok := New().Compile(Options{
		Sources:    []string{app},
		References: []string{sidecar},
		OutPath:    filepath.Join(dir, "app.js"),
		Reporter:   diag.NopReporter{},
	})
	if !ok {
		t.Fatalf("compile against sidecar failed: %v", res.Bag.Items())
	}
	counter, found := res.Set.LookupType("Lib.Counter")
	if !found {
		t.Fatalf("imported type missing from graph")
	}
	if res.Set.Type(counter).IsApplication() {
		t.Fatalf("imported type flagged as application")
	}
}

func TestCompileFailFastLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "bad.sl", "class {") // missing name
	out := filepath.Join(dir, "bad.js")

	res, ok := New().Compile(Options{
		Sources:  []string{src},
		OutPath:  out,
		Reporter: diag.NopReporter{},
	})
	if ok {
		t.Fatalf("compile of malformed source succeeded")
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("failed compile accumulated no errors")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("failed compile left an artifact behind")
	}
}

func TestCompileStopsBeforeTransformOnConflict(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "dup.sl", `
namespace A { class Timer {} }
namespace B { class Timer {} }
`)
	out := filepath.Join(dir, "dup.js")

	res, ok := New().Compile(Options{
		Sources:  []string{src},
		OutPath:  out,
		Minify:   true,
		Reporter: diag.NopReporter{},
	})
	if ok {
		t.Fatalf("conflicting input compiled successfully")
	}
	if res.Bag.Items()[0].Code != diag.SemaNameConflict {
		t.Fatalf("code = %v, want SemaNameConflict", res.Bag.Items()[0].Code)
	}
	if res.Renames != nil {
		t.Fatalf("transformation ran after a validation failure")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("failed compile left an artifact behind")
	}
}

func TestDriverIsReusable(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.sl", "class {")
	good := writeSource(t, dir, "good.sl", appSrc)
	d := New()

	if _, ok := d.Compile(Options{Sources: []string{bad}, Reporter: diag.NopReporter{}}); ok {
		t.Fatalf("bad input succeeded")
	}
	res, ok := d.Compile(Options{
		Sources:  []string{good},
		OutPath:  filepath.Join(dir, "good.js"),
		Reporter: diag.NopReporter{},
	})
	if !ok {
		t.Fatalf("errors leaked into the next compile: %v", res.Bag.Items())
	}
}

func TestCompileWritesTestArtifact(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "app.sl", `
class App {
	method run() {
		return;
	}
}
test class AppChecks {
	method smoke() {
		return;
	}
}
`)
	out := filepath.Join(dir, "app.js")

	res, ok := New().Compile(Options{
		Sources:      []string{src},
		OutPath:      out,
		IncludeTests: true,
		Reporter:     diag.NopReporter{},
	})
	if !ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	if !res.HasTests {
		t.Fatalf("test type not detected")
	}
	main, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if strings.Contains(string(main), "AppChecks") {
		t.Fatalf("main artifact contains test type")
	}
	flavored, err := os.ReadFile(filepath.Join(dir, "app.test.js"))
	if err != nil {
		t.Fatalf("read test artifact: %v", err)
	}
	if !strings.Contains(string(flavored), "AppChecks") {
		t.Fatalf("test artifact misses test type")
	}
}

func TestCompileMinifyProducesRenames(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "app.sl", appSrc)

	res, ok := New().Compile(Options{
		Sources:  []string{src},
		Minify:   true,
		DumpMode: DumpRenames,
		Reporter: diag.NopReporter{},
	})
	if !ok {
		t.Fatalf("compile failed: %v", res.Bag.Items())
	}
	if len(res.Renames) == 0 {
		t.Fatalf("minified compile recorded no renames")
	}
}

func TestCompileEmitsStageEvents(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "app.sl", appSrc)

	var events []buildpipeline.Event
	collect := collectorSink{events: &events}
	_, ok := New().Compile(Options{
		Sources:  []string{src},
		Reporter: diag.NopReporter{},
		Progress: collect,
	})
	if !ok {
		t.Fatalf("compile failed")
	}
	var done []buildpipeline.Stage
	for _, evt := range events {
		if evt.File == "" && evt.Status == buildpipeline.StatusDone {
			done = append(done, evt.Stage)
		}
	}
	want := buildpipeline.Stages()
	if len(done) != len(want) {
		t.Fatalf("done stages = %v, want %v", done, want)
	}
	for i := range want {
		if done[i] != want[i] {
			t.Fatalf("stage order = %v, want %v", done, want)
		}
	}
}

type collectorSink struct{ events *[]buildpipeline.Event }

func (c collectorSink) OnEvent(evt buildpipeline.Event) {
	*c.events = append(*c.events, evt)
}
