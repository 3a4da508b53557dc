package token

var keywords = map[string]Kind{
	"namespace": KwNamespace,
	"class":     KwClass,
	"interface": KwInterface,
	"enum":      KwEnum,
	"delegate":  KwDelegate,
	"field":     KwField,
	"method":    KwMethod,
	"property":  KwProperty,
	"event":     KwEvent,
	"var":       KwVar,
	"return":    KwReturn,
	"require":   KwRequire,
	"partial":   KwPartial,
	"test":      KwTest,
	"public":    KwPublic,
	"preserve":  KwPreserve,
	"static":    KwStatic,
	"override":  KwOverride,
	"this":      KwThis,
	"new":       KwNew,
	"true":      KwTrue,
	"false":     KwFalse,
	"null":      KwNull,
}

// LookupKeyword returns the keyword kind for text, or Ident.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
