// Package driver runs one compilation end to end. Five stages execute in a
// fixed order: import reference metadata, build the code model, build
// metadata (conflict validation, test detection, renaming), build the
// implementation, generate the script. After every stage the driver checks
// the accumulated diagnostics and stops at the first stage that reported an
// error, so a failed compile never produces output.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slate/internal/ast"
	"slate/internal/buildpipeline"
	"slate/internal/diag"
	"slate/internal/emit"
	"slate/internal/impl"
	"slate/internal/meta"
	"slate/internal/metabuild"
	"slate/internal/parser"
	"slate/internal/source"
	"slate/internal/symgraph"
	"slate/internal/transform"
	"slate/internal/validate"
)

// DumpMode selects the debug payloads a compile collects for rendering.
type DumpMode uint8

const (
	DumpNone DumpMode = iota
	DumpSymbols
	DumpRenames
	DumpAll
)

// Symbols reports whether the symbol graph dump is requested.
func (m DumpMode) Symbols() bool { return m == DumpSymbols || m == DumpAll }

// Renames reports whether the rename map dump is requested.
func (m DumpMode) Renames() bool { return m == DumpRenames || m == DumpAll }

// Options configure one Compile call.
type Options struct {
	// Sources are the .sl input paths, order significant only for
	// diagnostic locations.
	Sources []string
	// References are .slmeta reference metadata paths.
	References []string

	// OutPath names the script artifact. Empty means no script is
	// written, which is what `slate dump` uses.
	OutPath string
	// ScriptName is the logical script name the template sees. Defaults
	// to the OutPath base without extension.
	ScriptName string

	Minify       bool
	IncludeTests bool

	// Template optionally wraps the script body; Aliases overrides the
	// default module alias table.
	Template string
	Aliases  emit.AliasTable

	// Reporter is the host error sink. Nil falls back to a stderr stream.
	Reporter diag.Reporter
	// MaxDiagnostics caps accumulation; 0 means no cap.
	MaxDiagnostics int

	DumpMode DumpMode

	// Progress receives stage events; nil disables progress reporting.
	Progress buildpipeline.ProgressSink
}

// Result carries everything a compile produced besides the artifact.
type Result struct {
	OK       bool
	Bag      *diag.Bag
	Files    *source.FileSet
	Set      *symgraph.SymbolSet
	Program  *impl.Program
	Renames  []transform.Rename
	HasTests bool
	Timings  buildpipeline.Timings
}

// Driver is a reusable compiler instance. Each Compile call gets a fresh
// diagnostic bag and symbol set, so one Driver value can run many
// compilations in sequence. A Driver must not be shared across concurrent
// compiles; concurrent hosts create one Driver per compilation.
type Driver struct{}

// New returns a Driver.
func New() *Driver { return &Driver{} }

// Compile runs the pipeline over opts and reports success. Details beyond
// the boolean are in the Result.
func (d *Driver) Compile(opts Options) (*Result, bool) {
	res := &Result{
		Bag:   diag.NewBag(opts.MaxDiagnostics),
		Files: source.NewFileSet(),
		Set:   symgraph.NewSymbolSet(symgraph.Hints{}),
	}
	res.Set.ScriptName = scriptName(opts)

	reporter := diag.Reporter(diag.BagReporter{Bag: res.Bag})
	if opts.Reporter != nil {
		reporter = diag.MultiReporter{reporter, opts.Reporter}
	} else {
		reporter = diag.MultiReporter{reporter, diag.StreamReporter{Out: os.Stderr, Files: res.Files}}
	}

	c := &compilation{opts: opts, res: res, reporter: reporter}

	stages := []struct {
		stage buildpipeline.Stage
		run   func()
	}{
		{buildpipeline.StageImport, c.importMetadata},
		{buildpipeline.StageParse, c.buildModel},
		{buildpipeline.StageMetadata, c.buildMetadata},
		{buildpipeline.StageLower, c.buildImplementation},
		{buildpipeline.StageEmit, c.generateScript},
	}
	for _, s := range stages {
		c.emit(buildpipeline.Event{Stage: s.stage, Status: buildpipeline.StatusWorking})
		started := time.Now()
		s.run()
		elapsed := time.Since(started)
		res.Timings.Set(s.stage, elapsed)
		if res.Bag.HasErrors() {
			c.emit(buildpipeline.Event{Stage: s.stage, Status: buildpipeline.StatusError, Elapsed: elapsed})
			return res, false
		}
		c.emit(buildpipeline.Event{Stage: s.stage, Status: buildpipeline.StatusDone, Elapsed: elapsed})
	}
	res.OK = true
	return res, true
}

type compilation struct {
	opts     Options
	res      *Result
	reporter diag.Reporter
	units    []*ast.Unit
}

func (c *compilation) emit(evt buildpipeline.Event) {
	if c.opts.Progress != nil {
		c.opts.Progress.OnEvent(evt)
	}
}

func (c *compilation) importMetadata() {
	for _, path := range c.opts.References {
		meta.ImportFile(path, c.res.Set, c.res.Files, c.reporter)
	}
}

func (c *compilation) buildModel() {
	for _, path := range c.opts.Sources {
		id, err := c.res.Files.Load(path)
		if err != nil {
			diag.Errorf(c.reporter, diag.MetaUnreadable, source.Span{},
				"%s: cannot read source: %v", path, err)
			continue
		}
		c.emit(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
		c.units = append(c.units, parser.ParseUnit(c.res.Files.Get(id), c.reporter))
		c.emit(buildpipeline.Event{File: path, Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})
	}
}

// buildMetadata declares the application's own symbols, validates the graph
// on its source-derived names, detects test types, and renames. Validation
// runs before renaming so conflict messages carry meaningful names;
// renaming runs unconditionally, the readable mode normalizes names too.
func (c *compilation) buildMetadata() {
	appTypes := metabuild.Build(c.units, c.res.Set, c.reporter)
	if c.res.Bag.HasErrors() {
		return
	}
	validate.Check(c.res.Set, c.reporter)
	if c.res.Bag.HasErrors() {
		return
	}
	for _, id := range appTypes {
		if c.res.Set.Type(id).IsTest() {
			c.res.HasTests = true
			break
		}
	}
	mode := transform.ModeInternalize
	if c.opts.Minify {
		mode = transform.ModeObfuscate
	}
	c.res.Renames = transform.Transform(c.res.Set, mode)
}

func (c *compilation) buildImplementation() {
	c.res.Program = impl.Build(c.units, c.res.Set, c.opts.Minify, c.reporter)
}

func (c *compilation) generateScript() {
	if c.opts.OutPath == "" {
		return
	}
	c.writeArtifact(c.opts.OutPath, false)
	if c.res.Bag.HasErrors() {
		return
	}
	if c.res.HasTests && c.opts.IncludeTests {
		c.writeArtifact(testArtifactPath(c.opts.OutPath), true)
		if c.res.Bag.HasErrors() {
			return
		}
	}
	// The metadata sidecar lets a later compilation reference this script.
	if err := meta.WriteFile(metaArtifactPath(c.opts.OutPath), meta.Export(c.res.Set)); err != nil {
		diag.Errorf(c.reporter, diag.EmitSinkUnwritable, source.Span{},
			"%s: cannot write metadata: %v", metaArtifactPath(c.opts.OutPath), err)
	}
}

// writeArtifact generates one script file. The sink is flushed and closed
// on every exit path; a failed write abandons the artifact without
// crashing.
func (c *compilation) writeArtifact(path string, includeTests bool) {
	f, err := os.Create(path)
	if err != nil {
		diag.Errorf(c.reporter, diag.EmitSinkUnwritable, source.Span{},
			"%s: cannot open output: %v", path, err)
		return
	}
	genErr := emit.Generate(f, c.res.Set, c.res.Program, emit.Options{
		IncludeTests: includeTests,
		Template:     c.opts.Template,
		Aliases:      c.opts.Aliases,
		Reporter:     c.reporter,
	})
	closeErr := f.Close()
	if genErr == nil {
		genErr = closeErr
	}
	if genErr != nil {
		diag.Errorf(c.reporter, diag.EmitSinkUnwritable, source.Span{},
			"%s: cannot write output: %v", path, genErr)
	}
}

func scriptName(opts Options) string {
	if opts.ScriptName != "" {
		return opts.ScriptName
	}
	if opts.OutPath == "" {
		return "script"
	}
	base := filepath.Base(opts.OutPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// testArtifactPath derives the secondary test-flavored artifact name:
// app.js becomes app.test.js.
func testArtifactPath(outPath string) string {
	ext := filepath.Ext(outPath)
	return fmt.Sprintf("%s.test%s", strings.TrimSuffix(outPath, ext), ext)
}

// metaArtifactPath derives the reference metadata sidecar name: app.js
// becomes app.slmeta.
func metaArtifactPath(outPath string) string {
	return strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".slmeta"
}
