package lint

import (
	"fmt"
	"strings"
	"testing"

	"depthlint/internal/parser"
)

func TestClassifyNonRelative(t *testing.T) {
	specifiers := []string{"", "lodash", "@scope/pkg", "/abs/path", "utils/helpers"}
	for _, spec := range specifiers {
		for limit := 0; limit <= 3; limit++ {
			if _, violated := Classify(spec, limit); violated {
				t.Errorf("Classify(%q, %d) flagged a non-relative specifier", spec, limit)
			}
		}
	}
}

func TestClassifyDepthBoundary(t *testing.T) {
	for limit := 0; limit <= 4; limit++ {
		atLimit := strings.Repeat("../", limit) + "mod"
		if limit == 0 {
			atLimit = "./mod"
		}
		if _, violated := Classify(atLimit, limit); violated {
			t.Errorf("Classify(%q, %d): depth == limit must not violate", atLimit, limit)
		}

		overLimit := "./" + strings.Repeat("../", limit+1) + "mod"
		if _, violated := Classify(overLimit, limit); !violated {
			t.Errorf("Classify(%q, %d): depth == limit+1 must violate", overLimit, limit)
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		specifier string
		limit     int
		violated  bool
		message   string
	}{
		{"../../../utils", 2, true, `Import/export path "../../../utils" must not exceed the maximum depth (2 levels)`},
		{"../../utils", 2, false, ""},
		{"./sibling", 2, false, ""},
		// Interior parent segments count too; no normalization.
		{"./a/../../b", 1, true, `Import/export path "./a/../../b" must not exceed the maximum depth (1 levels)`},
		{"./a/../../b", 2, false, ""},
	}

	for _, tt := range tests {
		msg, violated := Classify(tt.specifier, tt.limit)
		if violated != tt.violated {
			t.Errorf("Classify(%q, %d) violated = %v, want %v", tt.specifier, tt.limit, violated, tt.violated)
		}
		if msg != tt.message {
			t.Errorf("Classify(%q, %d) message = %q, want %q", tt.specifier, tt.limit, msg, tt.message)
		}
	}
}

func TestClassifyIdempotent(t *testing.T) {
	first, fv := Classify("../../../deep", 2)
	second, sv := Classify("../../../deep", 2)
	if first != second || fv != sv {
		t.Errorf("repeated classification diverged: (%q,%v) vs (%q,%v)", first, fv, second, sv)
	}
}

func lintSource(t *testing.T, path, src string, limit int) []Finding {
	t.Helper()

	p := parser.NewParser(parser.NewGrammarLoader())
	tree, err := p.ParseFile(path, []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	defer tree.Close()

	ctx := &parser.Context{Source: []byte(src), Path: path}
	return Run(ctx, tree.RootNode(), []Rule{NewMaxDepthRule(limit)})
}

func TestStaticImport(t *testing.T) {
	findings := lintSource(t, "a.js", `import utils from "../../../utils";`, 2)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}

	want := `Import/export path "../../../utils" must not exceed the maximum depth (2 levels)`
	if findings[0].Message != want {
		t.Errorf("message = %q, want %q", findings[0].Message, want)
	}
	if findings[0].Rule != MaxDepthRuleName {
		t.Errorf("rule = %q, want %q", findings[0].Rule, MaxDepthRuleName)
	}
	if findings[0].Line != 1 {
		t.Errorf("line = %d, want 1", findings[0].Line)
	}
}

func TestFourShapesProduceIdenticalMessages(t *testing.T) {
	sources := map[string]string{
		"static.js":   `import utils from "../../../utils";`,
		"dynamic.js":  `import("../../../utils");`,
		"require.js":  `require("../../../utils");`,
		"reexport.js": `export * from "../../../utils";`,
	}

	want := `Import/export path "../../../utils" must not exceed the maximum depth (2 levels)`
	for path, src := range sources {
		findings := lintSource(t, path, src, 2)
		if len(findings) != 1 {
			t.Fatalf("%s: expected 1 finding, got %d", path, len(findings))
		}
		if findings[0].Message != want {
			t.Errorf("%s: message = %q, want %q", path, findings[0].Message, want)
		}
	}
}

func TestWithinLimitShapes(t *testing.T) {
	sources := []string{
		`import utils from "../../utils";`,
		`import("../../utils");`,
		`require("../../utils");`,
		`export * from "../../utils";`,
		`export { helper } from "../../utils";`,
	}
	for _, src := range sources {
		if findings := lintSource(t, "ok.js", src, 2); len(findings) != 0 {
			t.Errorf("source %q: expected no findings, got %d", src, len(findings))
		}
	}
}

func TestDynamicImportComputedArgumentSkipped(t *testing.T) {
	src := "const target = \"../../../deep\";\n" +
		"import(target);\n" +
		"import(`../../../${name}`);\n"
	if findings := lintSource(t, "dyn.js", src, 2); len(findings) != 0 {
		t.Errorf("computed dynamic imports must be skipped, got %d findings", len(findings))
	}
}

func TestRequireMemberAccess(t *testing.T) {
	findings := lintSource(t, "member.js", `window.require("../../../../pkg");`, 2)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	want := `Import/export path "../../../../pkg" must not exceed the maximum depth (2 levels)`
	if findings[0].Message != want {
		t.Errorf("message = %q, want %q", findings[0].Message, want)
	}
	if findings[0].Line != 1 || findings[0].Column != 1 {
		t.Errorf("finding should reference the call node, got %d:%d", findings[0].Line, findings[0].Column)
	}
}

func TestRequireNamespaced(t *testing.T) {
	findings := lintSource(t, "ns.js", `require.main.require; require("../../../a");`, 2)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
}

func TestUnrelatedCalleesIgnored(t *testing.T) {
	src := `load("../../../a"); fs.readFile("../../../b"); notrequire("../../../c");`
	if findings := lintSource(t, "calls.js", src, 2); len(findings) != 0 {
		t.Errorf("unrelated callees must be ignored, got %d findings", len(findings))
	}
}

func TestReExports(t *testing.T) {
	src := "export * from \"../../../deep\";\n" +
		"export { named } from \"../../../deep\";\n" +
		"const local = 1;\n" +
		"export { local };\n"
	findings := lintSource(t, "reexport.js", src, 2)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings (wildcard + named with source), got %d", len(findings))
	}
	for i, f := range findings {
		if f.Line != i+1 {
			t.Errorf("finding %d at line %d, want %d", i, f.Line, i+1)
		}
	}
}

func TestDocumentOrder(t *testing.T) {
	var lines []string
	for i := 0; i < 5; i++ {
		lines = append(lines, fmt.Sprintf(`import m%d from "../../../m%d";`, i, i))
	}
	findings := lintSource(t, "ordered.js", strings.Join(lines, "\n"), 2)
	if len(findings) != 5 {
		t.Fatalf("expected 5 findings, got %d", len(findings))
	}
	for i := 1; i < len(findings); i++ {
		if findings[i].Line <= findings[i-1].Line {
			t.Errorf("findings out of document order: line %d after line %d", findings[i].Line, findings[i-1].Line)
		}
	}
}

func TestTypeScriptSources(t *testing.T) {
	src := "import helper from \"../../../helpers\";\n" +
		"export * from \"../../../types\";\n"
	findings := lintSource(t, "deep.ts", src, 2)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings in typescript source, got %d", len(findings))
	}
}
