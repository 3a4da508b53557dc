// Package transform assigns generated names to every eligible symbol in a
// symbol graph. Two mutually exclusive strategies exist: internalization
// (stable, readable, target-safe names) and obfuscation (shortest available
// names). Both honor the inheritance-order traversal that keeps overriding
// members renamed consistently with the members they override.
package transform

// Mode selects the renaming strategy for one compilation. It is a closed
// variant: the pipeline switches on it rather than dispatching through an
// open interface.
type Mode uint8

const (
	// ModeInternalize normalizes names without shortening them. Used when
	// minification is off; it still always runs.
	ModeInternalize Mode = iota
	// ModeObfuscate assigns the shortest free identifier per scope.
	ModeObfuscate
)

func (m Mode) String() string {
	switch m {
	case ModeInternalize:
		return "internalize"
	case ModeObfuscate:
		return "obfuscate"
	}
	return "invalid"
}
