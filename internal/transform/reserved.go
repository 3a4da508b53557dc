package transform

// reservedWords are identifiers the emitted script may never use for a
// symbol: target-language keywords plus object-model names that live on
// every prototype.
var reservedWords = map[string]struct{}{
	"arguments":   {},
	"break":       {},
	"case":        {},
	"catch":       {},
	"class":       {},
	"const":       {},
	"constructor": {},
	"continue":    {},
	"debugger":    {},
	"default":     {},
	"delete":      {},
	"do":          {},
	"else":        {},
	"enum":        {},
	"eval":        {},
	"export":      {},
	"extends":     {},
	"false":       {},
	"finally":     {},
	"for":         {},
	"function":    {},
	"if":          {},
	"implements":  {},
	"import":      {},
	"in":          {},
	"instanceof":  {},
	"interface":   {},
	"let":         {},
	"new":         {},
	"null":        {},
	"package":     {},
	"private":     {},
	"protected":   {},
	"prototype":   {},
	"public":      {},
	"return":      {},
	"static":      {},
	"super":       {},
	"switch":      {},
	"this":        {},
	"throw":       {},
	"true":        {},
	"try":         {},
	"typeof":      {},
	"var":         {},
	"void":        {},
	"while":       {},
	"with":        {},
	"yield":       {},
}

// IsReserved reports whether name may not be used as a generated identifier.
func IsReserved(name string) bool {
	_, ok := reservedWords[name]
	return ok
}
