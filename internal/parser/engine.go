package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeHandler processes a single node during traversal.
type NodeHandler func(ctx *Context, node *sitter.Node)

// Context carries the source bytes and file identity shared by all
// handlers during one traversal.
type Context struct {
	Source []byte
	Path   string
}

// Engine walks a syntax tree depth-first and dispatches handlers by node
// kind. Handlers never recurse themselves; child visitation follows
// document order.
type Engine struct {
	handlers map[string][]NodeHandler
}

func NewEngine() *Engine {
	return &Engine{handlers: make(map[string][]NodeHandler)}
}

// Register adds a handler for a node kind. Multiple handlers for the same
// kind run in registration order.
func (e *Engine) Register(kind string, h NodeHandler) {
	e.handlers[kind] = append(e.handlers[kind], h)
}

func (e *Engine) Walk(ctx *Context, node *sitter.Node) {
	if node == nil {
		return
	}

	for _, h := range e.handlers[node.Kind()] {
		h(ctx, node)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.Walk(ctx, node.Child(i))
	}
}

func (c *Context) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *Context) Location(node *sitter.Node) Location {
	return Location{
		File:   c.Path,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}
