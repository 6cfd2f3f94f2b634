package parser

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"app.js", "javascript"},
		{"component.jsx", "javascript"},
		{"mod.mjs", "javascript"},
		{"legacy.cjs", "javascript"},
		{"service.ts", "typescript"},
		{"service.mts", "typescript"},
		{"service.cts", "typescript"},
		{"view.tsx", "tsx"},
		{"readme.md", ""},
		{"main.go", ""},
		{"noext", ""},
	}

	for _, tt := range tests {
		if got := DetectLanguage(tt.path); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseUnsupportedLanguage(t *testing.T) {
	p := NewParser(NewGrammarLoader())
	if _, err := p.ParseFile("notes.txt", []byte("hello")); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestEngineDispatchInDocumentOrder(t *testing.T) {
	src := "import a from \"./a\";\nimport b from \"./b\";\nimport c from \"./c\";\n"

	p := NewParser(NewGrammarLoader())
	tree, err := p.ParseFile("order.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	ctx := &Context{Source: []byte(src), Path: "order.js"}

	var visited []string
	engine := NewEngine()
	engine.Register("import_statement", func(ctx *Context, node *sitter.Node) {
		visited = append(visited, TrimQuoted(ctx.Text(node.ChildByFieldName("source"))))
	})
	engine.Walk(ctx, tree.RootNode())

	want := []string{"./a", "./b", "./c"}
	if len(visited) != len(want) {
		t.Fatalf("visited %d imports, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestEngineMultipleHandlersSameKind(t *testing.T) {
	src := `import a from "./a";`

	p := NewParser(NewGrammarLoader())
	tree, err := p.ParseFile("multi.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	ctx := &Context{Source: []byte(src), Path: "multi.js"}

	var calls []string
	engine := NewEngine()
	engine.Register("import_statement", func(ctx *Context, node *sitter.Node) {
		calls = append(calls, "first")
	})
	engine.Register("import_statement", func(ctx *Context, node *sitter.Node) {
		calls = append(calls, "second")
	})
	engine.Walk(ctx, tree.RootNode())

	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Errorf("handlers ran as %v, want [first second]", calls)
	}
}

func TestContextLocation(t *testing.T) {
	src := "const x = 1;\nimport a from \"./a\";\n"

	p := NewParser(NewGrammarLoader())
	tree, err := p.ParseFile("loc.js", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	ctx := &Context{Source: []byte(src), Path: "loc.js"}

	var loc Location
	engine := NewEngine()
	engine.Register("import_statement", func(ctx *Context, node *sitter.Node) {
		loc = ctx.Location(node)
	})
	engine.Walk(ctx, tree.RootNode())

	if loc.File != "loc.js" || loc.Line != 2 || loc.Column != 1 {
		t.Errorf("location = %+v, want loc.js:2:1", loc)
	}
}

func TestTrimQuoted(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"./a"`, "./a"},
		{`'./a'`, "./a"},
		{"`./a`", "./a"},
		{`  "./a"  `, "./a"},
		{"plain", "plain"},
		{`""`, ""},
	}
	for _, tt := range tests {
		if got := TrimQuoted(tt.in); got != tt.want {
			t.Errorf("TrimQuoted(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
