package diag

import (
	"fmt"
	"sort"
	"strings"

	"slate/internal/source"
)

// FormatGolden renders diagnostics one per line in a stable order, suitable
// for golden files and CLI short output:
//
//	path:line:col CODE SEVERITY message
func FormatGolden(diags []Diagnostic, fs *source.FileSet) string {
	if len(diags) == 0 {
		return ""
	}

	lines := make([]string, 0, len(diags))
	for _, d := range diags {
		loc := d.Primary.String()
		if fs != nil {
			loc = fs.Position(d.Primary)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s", loc, d.Code, d.Severity, d.Message))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}
