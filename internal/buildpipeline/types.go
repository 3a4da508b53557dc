// Package buildpipeline defines the progress vocabulary shared by the
// compiler driver and the interactive front end.
package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageImport is the reference metadata import stage.
	StageImport Stage = "import"
	// StageParse is the source parsing stage.
	StageParse Stage = "parse"
	// StageMetadata is the symbol graph build stage, validation and
	// renaming included.
	StageMetadata Stage = "metadata"
	// StageLower is the method body lowering stage.
	StageLower Stage = "lower"
	// StageEmit is the script generation stage.
	StageEmit Stage = "emit"
)

// Stages lists the pipeline phases in execution order.
func Stages() []Stage {
	return []Stage{StageImport, StageParse, StageMetadata, StageLower, StageEmit}
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the stage is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the stage is done.
	StatusDone Status = "done"
	// StatusError indicates the stage reported errors.
	StatusError Status = "error"
)

// Event reports progress for one input (or for the whole stage when File is
// empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	if t.stages == nil {
		return false
	}
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
