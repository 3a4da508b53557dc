package emit

import "strings"

// AliasTable maps external module names, case-insensitively, to the
// identifier the module binds to in script scope. Modules without an entry
// bind to their own name.
type AliasTable map[string]string

// DefaultAliases returns the stock alias table. jQuery conventionally binds
// to $ rather than a variable named jquery.
func DefaultAliases() AliasTable {
	return AliasTable{"jquery": "$"}
}

// Binding returns the in-scope identifier for module.
func (a AliasTable) Binding(module string) string {
	if alias, ok := a[strings.ToLower(module)]; ok {
		return alias
	}
	return module
}

// Template wraps generated script text in host-supplied boilerplate. Four
// placeholder tokens are each substituted once, literally and in a single
// pass, so placeholder-like text inside the substituted values survives
// untouched: {name}, {requires}, {dependencies}, {script}.
type Template struct {
	Text    string
	Aliases AliasTable
}

// Render strips the template's leading whitespace and substitutes the
// placeholders. {requires} becomes a comma-joined single-quoted module list;
// {dependencies} becomes the comma-joined binding names of the same modules.
func (t Template) Render(name string, deps []string, script string) string {
	aliases := t.Aliases
	if aliases == nil {
		aliases = DefaultAliases()
	}
	quoted := make([]string, len(deps))
	bindings := make([]string, len(deps))
	for i, dep := range deps {
		quoted[i] = "'" + dep + "'"
		bindings[i] = aliases.Binding(dep)
	}
	r := strings.NewReplacer(
		"{name}", name,
		"{requires}", strings.Join(quoted, ", "),
		"{dependencies}", strings.Join(bindings, ", "),
		"{script}", script,
	)
	return r.Replace(strings.TrimLeft(t.Text, " \t\r\n"))
}
