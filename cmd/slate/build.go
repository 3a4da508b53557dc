package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"slate/internal/buildpipeline"
	"slate/internal/diag"
	"slate/internal/diagfmt"
	"slate/internal/driver"
	"slate/internal/emit"
)

var (
	buildOut          string
	buildRefs         []string
	buildMinify       bool
	buildIncludeTests bool
	buildTemplate     string
	buildUI           string
)

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output script path")
	buildCmd.Flags().StringSliceVar(&buildRefs, "ref", nil, "reference metadata file (.slmeta), repeatable")
	buildCmd.Flags().BoolVar(&buildMinify, "minify", false, "obfuscate generated names")
	buildCmd.Flags().BoolVar(&buildIncludeTests, "include-tests", false, "also write the test-flavored artifact")
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "output template file")
	buildCmd.Flags().StringVar(&buildUI, "ui", "auto", "interactive progress (auto|on|off)")
}

var buildCmd = &cobra.Command{
	Use:   "build [sources...]",
	Short: "Compile Slate sources to a script artifact",
	Long: `Compile .sl sources into a script artifact. With explicit source
arguments a single target is built from the command line flags; without
arguments the slate.toml manifest is loaded and every [[target]] it defines
is built, concurrently when there are several.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	colorOn, err := applyColorMode(mustString(cmd, "color"))
	if err != nil {
		return err
	}
	mode, err := readUIMode(buildUI)
	if err != nil {
		return err
	}
	maxDiags := mustInt(cmd, "max-diagnostics")
	quiet := mustBool(cmd, "quiet")

	targets, err := buildTargets(args)
	if err != nil {
		return err
	}

	if len(targets) == 1 {
		return buildOne(targets[0], buildRunConfig{
			color:    colorOn,
			quiet:    quiet,
			maxDiags: maxDiags,
			useTUI:   shouldUseTUI(mode),
		})
	}

	// Concurrent targets each get their own Driver and SymbolSet; only
	// the host-level fan-out is parallel, a single compilation stays
	// sequential.
	var g errgroup.Group
	for _, target := range targets {
		target := target
		g.Go(func() error {
			return buildOne(target, buildRunConfig{
				color:    colorOn,
				quiet:    quiet,
				maxDiags: maxDiags,
				useTUI:   false,
			})
		})
	}
	return g.Wait()
}

type buildRunConfig struct {
	color    bool
	quiet    bool
	maxDiags int
	useTUI   bool
}

// buildTargets assembles the target list: command-line sources form one
// ad-hoc target, otherwise the manifest supplies them.
func buildTargets(args []string) ([]targetConfig, error) {
	if len(args) > 0 {
		out := buildOut
		if out == "" {
			base := filepath.Base(args[0])
			out = strings.TrimSuffix(base, filepath.Ext(base)) + ".js"
		}
		return []targetConfig{{
			Sources:      args,
			References:   buildRefs,
			Out:          out,
			Minify:       buildMinify,
			IncludeTests: buildIncludeTests,
			Template:     buildTemplate,
		}}, nil
	}

	manifest, ok, err := loadProjectManifest(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s", noSlateTomlMessage)
	}
	targets := make([]targetConfig, len(manifest.Config.Targets))
	for i, target := range manifest.Config.Targets {
		targets[i] = resolveTargetPaths(manifest.Root, target)
	}
	return targets, nil
}

func buildOne(target targetConfig, run buildRunConfig) error {
	sources, err := collectSources(target.Sources)
	if err != nil {
		return err
	}
	opts, err := targetOptions(target, sources, run.maxDiags)
	if err != nil {
		return err
	}

	var res *driver.Result
	var ok bool
	if run.useTUI {
		res, ok = runCompileWithUI(targetTitle(target), sources, opts)
	} else {
		if !run.quiet {
			opts.Progress = buildpipeline.WriterSink{Out: os.Stdout}
		}
		res, ok = driver.New().Compile(opts)
	}

	res.Bag.Sort()
	diagfmt.Pretty(os.Stderr, res.Bag, res.Files, diagfmt.PrettyOpts{
		Color:       run.color,
		ShowNotes:   true,
		ShowPreview: true,
	})
	if !ok {
		return fmt.Errorf("build failed with %d error(s)", res.Bag.ErrorCount())
	}
	if !run.quiet {
		fmt.Printf("wrote %s\n", target.Out)
	}
	return nil
}

// targetOptions converts manifest/flag configuration into driver options.
func targetOptions(target targetConfig, sources []string, maxDiags int) (driver.Options, error) {
	opts := driver.Options{
		Sources:        sources,
		References:     target.References,
		OutPath:        target.Out,
		Minify:         target.Minify,
		IncludeTests:   target.IncludeTests,
		MaxDiagnostics: maxDiags,
		Reporter:       diag.NopReporter{}, // diagnostics render from the bag afterwards
	}
	if target.Name != "" {
		opts.ScriptName = target.Name
	}
	if target.Template != "" {
		text, err := os.ReadFile(target.Template)
		if err != nil {
			return driver.Options{}, fmt.Errorf("template: %w", err)
		}
		opts.Template = string(text)
	}
	if len(target.Aliases) > 0 {
		aliases := emit.DefaultAliases()
		for module, binding := range target.Aliases {
			aliases[strings.ToLower(module)] = binding
		}
		opts.Aliases = aliases
	}
	return opts, nil
}

// collectSources expands each entry: files are taken as-is, directories are
// walked for .sl files. The result is deduplicated and sorted for a stable
// unit order.
func collectSources(entries []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}
	for _, entry := range entries {
		info, err := os.Stat(entry)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", entry, err)
		}
		if !info.IsDir() {
			add(entry)
			continue
		}
		err = filepath.WalkDir(entry, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".sl" {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no .sl sources found")
	}
	sort.Strings(out)
	return out, nil
}

func targetTitle(target targetConfig) string {
	if target.Name != "" {
		return target.Name
	}
	return filepath.Base(target.Out)
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func mustInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}
