package token

// Kind enumerates token categories of the Slate declaration language.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Ident
	IntLit
	StringLit

	// keywords
	KwNamespace
	KwClass
	KwInterface
	KwEnum
	KwDelegate
	KwField
	KwMethod
	KwProperty
	KwEvent
	KwVar
	KwReturn
	KwRequire
	KwPartial
	KwTest
	KwPublic
	KwPreserve
	KwStatic
	KwOverride
	KwThis
	KwNew
	KwTrue
	KwFalse
	KwNull

	// punctuation and operators
	LBrace
	RBrace
	LParen
	RParen
	Colon
	Semicolon
	Comma
	Dot
	Assign
	Plus
	Minus
	Star
	Slash
	EqEq
	BangEq
	Lt
	Gt
	LtEq
	GtEq
)

var kindNames = map[Kind]string{
	Invalid:     "invalid",
	EOF:         "eof",
	Ident:       "identifier",
	IntLit:      "int literal",
	StringLit:   "string literal",
	KwNamespace: "'namespace'",
	KwClass:     "'class'",
	KwInterface: "'interface'",
	KwEnum:      "'enum'",
	KwDelegate:  "'delegate'",
	KwField:     "'field'",
	KwMethod:    "'method'",
	KwProperty:  "'property'",
	KwEvent:     "'event'",
	KwVar:       "'var'",
	KwReturn:    "'return'",
	KwRequire:   "'require'",
	KwPartial:   "'partial'",
	KwTest:      "'test'",
	KwPublic:    "'public'",
	KwPreserve:  "'preserve'",
	KwStatic:    "'static'",
	KwOverride:  "'override'",
	KwThis:      "'this'",
	KwNew:       "'new'",
	KwTrue:      "'true'",
	KwFalse:     "'false'",
	KwNull:      "'null'",
	LBrace:      "'{'",
	RBrace:      "'}'",
	LParen:      "'('",
	RParen:      "')'",
	Colon:       "':'",
	Semicolon:   "';'",
	Comma:       "','",
	Dot:         "'.'",
	Assign:      "'='",
	Plus:        "'+'",
	Minus:       "'-'",
	Star:        "'*'",
	Slash:       "'/'",
	EqEq:        "'=='",
	BangEq:      "'!='",
	Lt:          "'<'",
	Gt:          "'>'",
	LtEq:        "'<='",
	GtEq:        "'>='",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}
