package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init [path|name]",
	Short: "Initialize a new slate project",
	Long: `Initialize a new slate project by creating a project manifest (slate.toml)
and a hello-world source (src/main.sl). If [path|name] is omitted, the
current directory is initialized. If a non-existing name is provided, a
directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) == 0 || args[0] == "." {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = wd
	} else if filepath.IsAbs(args[0]) {
		target = args[0]
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		target = filepath.Join(wd, args[0])
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return err
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", target)
	}

	manifestPath := filepath.Join(target, "slate.toml")
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("%s already exists", manifestPath)
	}

	name := projectName(filepath.Base(target))
	manifest := fmt.Sprintf(`[package]
name = %q

[[target]]
name = %q
sources = ["src"]
out = "out/%s.js"
`, name, name, name)

	srcDir := filepath.Join(target, "src")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return err
	}
	mainPath := filepath.Join(srcDir, "main.sl")
	const hello = `namespace App {
	class Main {
		method run(): string {
			return "hello, slate";
		}
	}
}
`
	if err := os.WriteFile(manifestPath, []byte(manifest), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(mainPath, []byte(hello), 0o644); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %s\n", manifestPath)
	fmt.Fprintf(out, "created %s\n", mainPath)
	return nil
}

// projectName sanitizes a directory basename into a manifest-friendly name.
func projectName(base string) string {
	name := strings.ToLower(strings.TrimSpace(base))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "slate-project"
	}
	return b.String()
}
