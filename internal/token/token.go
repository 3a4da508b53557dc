package token

import (
	"slate/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwNamespace && t.Kind <= KwNull
}

// IsModifier reports whether the token is a declaration modifier keyword.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwPartial, KwTest, KwPublic, KwPreserve, KwStatic:
		return true
	default:
		return false
	}
}
