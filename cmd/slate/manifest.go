package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const noSlateTomlMessage = "no slate.toml found\npass source files explicitly, e.g.:\n  slate build src/app.sl"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig  `toml:"package"`
	Targets []targetConfig `toml:"target"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

// targetConfig describes one build target; a manifest may carry several and
// they build concurrently.
type targetConfig struct {
	Name         string            `toml:"name"`
	Sources      []string          `toml:"sources"`
	References   []string          `toml:"references"`
	Out          string            `toml:"out"`
	Minify       bool              `toml:"minify"`
	IncludeTests bool              `toml:"include_tests"`
	Template     string            `toml:"template"`
	Aliases      map[string]string `toml:"aliases"`
}

func findSlateToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "slate.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findSlateToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("target") {
		return projectConfig{}, fmt.Errorf("%s: manifest defines no [[target]] section", path)
	}
	for i, target := range cfg.Targets {
		if len(target.Sources) == 0 {
			return projectConfig{}, fmt.Errorf("%s: target %d lists no sources", path, i)
		}
		if target.Out == "" {
			return projectConfig{}, fmt.Errorf("%s: target %d has no out path", path, i)
		}
	}
	return cfg, nil
}

// resolveTargetPaths rebases a target's relative paths onto the manifest
// root so builds behave the same from any working directory.
func resolveTargetPaths(root string, target targetConfig) targetConfig {
	rebase := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	out := target
	out.Sources = make([]string, len(target.Sources))
	for i, s := range target.Sources {
		out.Sources[i] = rebase(s)
	}
	out.References = make([]string, len(target.References))
	for i, r := range target.References {
		out.References[i] = rebase(r)
	}
	out.Out = rebase(target.Out)
	out.Template = rebase(target.Template)
	return out
}
