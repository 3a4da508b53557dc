package transform

// shortAlphabet orders the candidate first characters of shortened names;
// continuation characters may also be digits.
const (
	shortAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	shortCont     = shortAlphabet + "0123456789"
)

// ShortNamer hands out the shortest identifier not yet taken in one scope.
// Allocation order is fixed by the alphabet, so two runs over the same
// reservation sequence produce identical names.
type ShortNamer struct {
	next  int
	taken map[string]struct{}
}

// NewShortNamer creates an empty allocator scope.
func NewShortNamer() *ShortNamer {
	return &ShortNamer{taken: make(map[string]struct{})}
}

// Reserve marks name as unavailable in this scope.
func (n *ShortNamer) Reserve(name string) {
	n.taken[name] = struct{}{}
}

// Taken reports whether name is unavailable in this scope.
func (n *ShortNamer) Taken(name string) bool {
	_, ok := n.taken[name]
	return ok
}

// Next returns the shortest identifier that is neither taken in this scope
// nor a reserved word, and reserves it.
func (n *ShortNamer) Next() string {
	for {
		candidate := shortName(n.next)
		n.next++
		if IsReserved(candidate) || n.Taken(candidate) {
			continue
		}
		n.Reserve(candidate)
		return candidate
	}
}

// shortName maps an ordinal to an identifier: a..z, A..Z, then two-character
// names with digit continuations, and so on.
func shortName(i int) string {
	out := []byte{shortAlphabet[i%len(shortAlphabet)]}
	i /= len(shortAlphabet)
	for i > 0 {
		i--
		out = append(out, shortCont[i%len(shortCont)])
		i /= len(shortCont)
	}
	return string(out)
}
