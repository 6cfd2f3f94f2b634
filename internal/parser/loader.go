package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// GrammarLoader holds the statically linked tree-sitter grammars.
type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
	}

	gl.languages["javascript"] = sitter.NewLanguage(tree_sitter_javascript.Language())
	gl.languages["typescript"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	gl.languages["tsx"] = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())

	return gl
}

func (gl *GrammarLoader) Language(lang string) *sitter.Language {
	return gl.languages[lang]
}
