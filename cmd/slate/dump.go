package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"slate/internal/diag"
	"slate/internal/diagfmt"
	"slate/internal/driver"
)

var (
	dumpWhat   string
	dumpRefs   []string
	dumpMinify bool
)

func init() {
	dumpCmd.Flags().StringVar(&dumpWhat, "what", "all", "payload to dump (symbols|renames|all)")
	dumpCmd.Flags().StringSliceVar(&dumpRefs, "ref", nil, "reference metadata file (.slmeta), repeatable")
	dumpCmd.Flags().BoolVar(&dumpMinify, "minify", false, "dump the obfuscated name assignment")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [sources...]",
	Short: "Dump the symbol graph or rename map without writing a script",
	Long: `Run the pipeline through transformation and print debug payloads in a
stable textual form suitable for golden files. No script artifact is
written.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	if _, err := applyColorMode(mustString(cmd, "color")); err != nil {
		return err
	}
	mode, err := readDumpMode(dumpWhat)
	if err != nil {
		return err
	}
	sources, err := collectSources(args)
	if err != nil {
		return err
	}

	res, ok := driver.New().Compile(driver.Options{
		Sources:        sources,
		References:     dumpRefs,
		Minify:         dumpMinify,
		DumpMode:       mode,
		MaxDiagnostics: mustInt(cmd, "max-diagnostics"),
		Reporter:       diag.NopReporter{},
	})
	if !ok {
		res.Bag.Sort()
		fmt.Fprintln(os.Stderr, diag.FormatGolden(res.Bag.Items(), res.Files))
		return fmt.Errorf("dump failed with %d error(s)", res.Bag.ErrorCount())
	}

	out := cmd.OutOrStdout()
	if mode.Symbols() {
		diagfmt.DumpSymbols(out, res.Set)
	}
	if mode.Renames() {
		diagfmt.DumpRenames(out, res.Renames)
	}
	return nil
}

func readDumpMode(value string) (driver.DumpMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "symbols":
		return driver.DumpSymbols, nil
	case "renames":
		return driver.DumpRenames, nil
	case "", "all":
		return driver.DumpAll, nil
	default:
		return driver.DumpNone, fmt.Errorf("invalid --what value %q (expected symbols|renames|all)", value)
	}
}
