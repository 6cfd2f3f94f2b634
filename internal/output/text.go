package output

import (
	"fmt"
	"strings"

	"depthlint/internal/lint"
)

// Text renders findings one per line in the usual file:line:col form.
func Text(findings []lint.Finding) string {
	var buf strings.Builder

	for _, f := range findings {
		buf.WriteString(fmt.Sprintf("%s:%d:%d %s [%s] %s\n",
			f.File, f.Line, f.Column, f.Severity, f.Rule, f.Message))
	}

	return buf.String()
}

// Summary renders the one-line scan summary printed after a run.
func Summary(files, findings int) string {
	if findings == 0 {
		return fmt.Sprintf("%d files scanned, no violations", files)
	}
	return fmt.Sprintf("%d files scanned, %d violations", files, findings)
}
