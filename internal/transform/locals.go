package transform

import "fmt"

// LocalScope renames the locals and parameters of one method body. When
// minifying, locals get fresh short names; otherwise they keep their
// internalized source names. Either way names stay unique within the scope.
type LocalScope struct {
	minify bool
	namer  *ShortNamer
	names  map[string]string
}

// NewLocalScope creates a scope for one body. Minify selects short names
// over internalized ones.
func NewLocalScope(minify bool) *LocalScope {
	return &LocalScope{
		minify: minify,
		namer:  NewShortNamer(),
		names:  make(map[string]string),
	}
}

// Reserve blocks a generated name in this scope without binding a source
// name, so locals cannot shadow it.
func (s *LocalScope) Reserve(name string) {
	s.namer.Reserve(name)
}

// Declare binds a source-level name and returns its generated name.
// Redeclaring a name returns the existing binding.
func (s *LocalScope) Declare(name string) string {
	if gen, ok := s.names[name]; ok {
		return gen
	}
	var gen string
	if s.minify {
		gen = s.namer.Next()
	} else {
		gen = Internalize(name)
		for i := 1; s.namer.Taken(gen) || IsReserved(gen); i++ {
			gen = fmt.Sprintf("%s$%d", Internalize(name), i)
		}
		s.namer.Reserve(gen)
	}
	s.names[name] = gen
	return gen
}

// Lookup resolves a source name declared earlier in this scope.
func (s *LocalScope) Lookup(name string) (string, bool) {
	gen, ok := s.names[name]
	return gen, ok
}
