package lint

import (
	"depthlint/internal/parser"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Severity indicates the severity level of a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is a single lint result.
type Finding struct {
	File     string
	Line     int
	Column   int
	Rule     string
	Severity Severity
	Message  string
}

// ReportFunc delivers a violation for a node. It is injected at
// registration time so the same rule logic can be tested with a recording
// callback.
type ReportFunc func(node *sitter.Node, message string)

// Rule contributes node-kind handlers to a traversal engine. Rules hold no
// per-file state; each node visit is an independent evaluation.
type Rule interface {
	Name() string
	Register(engine *parser.Engine, report ReportFunc)
}

// Run applies rules to one parsed file and returns findings in document
// order.
func Run(ctx *parser.Context, root *sitter.Node, rules []Rule) []Finding {
	engine := parser.NewEngine()
	var findings []Finding

	for _, rule := range rules {
		name := rule.Name()
		rule.Register(engine, func(node *sitter.Node, message string) {
			loc := ctx.Location(node)
			findings = append(findings, Finding{
				File:     loc.File,
				Line:     loc.Line,
				Column:   loc.Column,
				Rule:     name,
				Severity: SeverityWarning,
				Message:  message,
			})
		})
	}

	engine.Walk(ctx, root)
	return findings
}
