package output

import (
	"fmt"
	"strings"

	"depthlint/internal/lint"
)

// TSV renders findings as tab-separated rows with a header line.
func TSV(findings []lint.Finding) string {
	var buf strings.Builder

	buf.WriteString("Rule\tSeverity\tFile\tLine\tColumn\tMessage\n")
	for _, f := range findings {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\n",
			f.Rule, f.Severity, f.File, f.Line, f.Column, f.Message))
	}

	return buf.String()
}
