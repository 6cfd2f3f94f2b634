package lint

import (
	"fmt"
	"strings"

	"depthlint/internal/parser"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// MaxDepthRuleName identifies the rule in findings and reports.
const MaxDepthRuleName = "max-import-depth"

// DefaultMaxDepth is the permitted number of parent-directory segments
// when no limit is configured.
const DefaultMaxDepth = 2

// Classify decides whether a module specifier exceeds the permitted
// upward traversal depth. Non-relative specifiers (anything not starting
// with ".") are never checked. Depth is the count of non-overlapping
// "../" substrings anywhere in the specifier; occurrences past the leading
// run still count and no path normalization is performed.
func Classify(specifier string, limit int) (string, bool) {
	if !strings.HasPrefix(specifier, ".") {
		return "", false
	}
	if strings.Count(specifier, "../") <= limit {
		return "", false
	}
	msg := fmt.Sprintf("Import/export path \"%s\" must not exceed the maximum depth (%d levels)", specifier, limit)
	return msg, true
}

// MaxDepthRule flags static imports, dynamic import() calls, require()
// calls and re-exports whose relative specifier traverses more than limit
// parent directories. The only state is the configured limit.
type MaxDepthRule struct {
	limit int
}

func NewMaxDepthRule(limit int) *MaxDepthRule {
	return &MaxDepthRule{limit: limit}
}

func (r *MaxDepthRule) Name() string { return MaxDepthRuleName }

func (r *MaxDepthRule) Limit() int { return r.limit }

// Register wires the rule's handlers into the traversal engine. Both
// import_statement and export_statement carry the specifier in their
// "source" field; call_expression covers dynamic import and require.
func (r *MaxDepthRule) Register(engine *parser.Engine, report ReportFunc) {
	engine.Register("import_statement", func(ctx *parser.Context, node *sitter.Node) {
		r.checkSource(ctx, node, report)
	})
	engine.Register("export_statement", func(ctx *parser.Context, node *sitter.Node) {
		r.checkSource(ctx, node, report)
	})
	engine.Register("call_expression", func(ctx *parser.Context, node *sitter.Node) {
		r.checkCall(ctx, node, report)
	})
}

// checkSource handles static imports and re-exports. A named re-export
// without a source clause has no "source" field and is skipped.
func (r *MaxDepthRule) checkSource(ctx *parser.Context, node *sitter.Node, report ReportFunc) {
	src := node.ChildByFieldName("source")
	if src == nil || src.Kind() != "string" {
		return
	}
	r.classifyAndReport(ctx.Text(src), node, report)
}

// checkCall handles dynamic import() and require() call forms. Computed
// and template arguments cannot be classified statically and are skipped.
func (r *MaxDepthRule) checkCall(ctx *parser.Context, node *sitter.Node, report ReportFunc) {
	callee := node.ChildByFieldName("function")
	if callee == nil || !isModuleCallee(ctx, callee) {
		return
	}

	arg := firstArgument(node)
	if arg == nil || arg.Kind() != "string" {
		return
	}
	r.classifyAndReport(ctx.Text(arg), node, report)
}

func (r *MaxDepthRule) classifyAndReport(raw string, node *sitter.Node, report ReportFunc) {
	specifier := parser.TrimQuoted(raw)
	if msg, violated := Classify(specifier, r.limit); violated {
		report(node, msg)
	}
}

// isModuleCallee reports whether the callee is the dynamic-import
// operator, a bare identifier named require, or a member access carrying
// require on either side (require.cache-style namespacing as well as
// window.require).
func isModuleCallee(ctx *parser.Context, callee *sitter.Node) bool {
	switch callee.Kind() {
	case "import":
		return true
	case "identifier":
		return ctx.Text(callee) == "require"
	case "member_expression":
		obj := callee.ChildByFieldName("object")
		prop := callee.ChildByFieldName("property")
		return ctx.Text(obj) == "require" || ctx.Text(prop) == "require"
	default:
		return false
	}
}

// firstArgument returns the first expression in the call's argument list,
// skipping punctuation tokens.
func firstArgument(call *sitter.Node) *sitter.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		switch child.Kind() {
		case "(", ")", ",", "comment":
			continue
		}
		return child
	}
	return nil
}
