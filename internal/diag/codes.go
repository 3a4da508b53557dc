package diag

import (
	"fmt"
)

// Code is a stable numeric diagnostic identifier. Ranges are reserved per
// stage: 1xxx lexer, 2xxx parser, 3xxx metadata import, 4xxx semantic
// analysis, 5xxx emission.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectSemicolon    Code = 2004
	SynUnclosedBrace      Code = 2005
	SynUnexpectedTopLevel Code = 2006
	SynDuplicateModifier  Code = 2007
	SynExpectMember       Code = 2008
	SynBadRequire         Code = 2009

	// Metadata import
	MetaUnreadable    Code = 3001
	MetaBadSchema     Code = 3002
	MetaDuplicateType Code = 3003
	MetaDanglingRef   Code = 3004

	// Semantic
	SemaNameConflict        Code = 4001
	SemaUnknownBase         Code = 4002
	SemaUnknownInterface    Code = 4003
	SemaPartialKindMismatch Code = 4004
	SemaDuplicateMember     Code = 4005
	SemaBadOverride         Code = 4006
	SemaUnknownName         Code = 4007
	SemaBaseNotClass        Code = 4008
	SemaDuplicateType       Code = 4009
	SemaCyclicBase          Code = 4010

	// Emission
	EmitSinkUnwritable Code = 5001
	EmitInternalAssert Code = 5002
)

var codeNames = map[Code]string{
	UnknownCode:           "unknown",
	LexUnknownChar:        "lex-unknown-char",
	LexUnterminatedString: "lex-unterminated-string",
	LexBadNumber:          "lex-bad-number",

	SynUnexpectedToken:    "syn-unexpected-token",
	SynExpectIdentifier:   "syn-expect-identifier",
	SynExpectType:         "syn-expect-type",
	SynExpectSemicolon:    "syn-expect-semicolon",
	SynUnclosedBrace:      "syn-unclosed-brace",
	SynUnexpectedTopLevel: "syn-unexpected-top-level",
	SynDuplicateModifier:  "syn-duplicate-modifier",
	SynExpectMember:       "syn-expect-member",
	SynBadRequire:         "syn-bad-require",

	MetaUnreadable:    "meta-unreadable",
	MetaBadSchema:     "meta-bad-schema",
	MetaDuplicateType: "meta-duplicate-type",
	MetaDanglingRef:   "meta-dangling-ref",

	SemaNameConflict:        "sema-name-conflict",
	SemaUnknownBase:         "sema-unknown-base",
	SemaUnknownInterface:    "sema-unknown-interface",
	SemaPartialKindMismatch: "sema-partial-kind-mismatch",
	SemaDuplicateMember:     "sema-duplicate-member",
	SemaBadOverride:         "sema-bad-override",
	SemaUnknownName:         "sema-unknown-name",
	SemaBaseNotClass:        "sema-base-not-class",
	SemaDuplicateType:       "sema-duplicate-type",
	SemaCyclicBase:          "sema-cyclic-base",

	EmitSinkUnwritable: "emit-sink-unwritable",
	EmitInternalAssert: "emit-internal-assert",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code-%04d", uint16(c))
}
