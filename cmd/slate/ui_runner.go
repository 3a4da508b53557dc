package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"slate/internal/buildpipeline"
	"slate/internal/driver"
	"slate/internal/ui"
)

type compileOutcome struct {
	result *driver.Result
	ok     bool
}

// runCompileWithUI drives one compilation behind the interactive progress
// view. The driver runs on its own goroutine and feeds stage events through
// a channel the Bubble Tea model drains.
func runCompileWithUI(title string, files []string, opts driver.Options) (*driver.Result, bool) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		opts.Progress = buildpipeline.ChannelSink{Ch: events}
		res, ok := driver.New().Compile(opts)
		outcomeCh <- compileOutcome{result: res, ok: ok}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, false
	}
	return outcome.result, outcome.ok
}
