package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Location is a 1-based position inside a source file.
type Location struct {
	File   string
	Line   int
	Column int
}

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// Tree wraps a parsed syntax tree. Close must be called when the caller is
// done with the root node.
type Tree struct {
	inner *sitter.Tree
}

func (t *Tree) RootNode() *sitter.Node {
	return t.inner.RootNode()
}

func (t *Tree) Close() {
	t.inner.Close()
}

// ParseFile parses content with the grammar detected from the path's
// extension. The caller owns the returned tree.
func (p *Parser) ParseFile(path string, content []byte) (*Tree, error) {
	lang := DetectLanguage(path)
	if lang == "" {
		return nil, errors.New("unsupported language")
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}

	return &Tree{inner: tree}, nil
}

// DetectLanguage maps a file path to a grammar name, or "" when the file
// is not lintable.
func DetectLanguage(path string) string {
	switch filepath.Ext(path) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".mts", ".cts":
		return "typescript"
	case ".tsx":
		return "tsx"
	default:
		return ""
	}
}

// TrimQuoted strips surrounding quotes from a string literal's text.
func TrimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}
