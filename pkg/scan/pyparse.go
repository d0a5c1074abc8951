package scan

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/matzehuels/depchecker/pkg/errors"
)

// parsePython parses src. Trees containing syntax errors are rejected.
func parsePython(ctx context.Context, src []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse python")
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.New(errors.ErrCodeParse, "invalid python syntax")
	}
	return root, nil
}

// children returns the named children of n.
func children(n *sitter.Node) []*sitter.Node {
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// visit calls fn for n and every descendant, depth first. Returning false
// from fn skips the node's subtree.
func visit(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		visit(n.Child(i), fn)
	}
}

// importNames returns the dotted names imported anywhere below root:
//
//	import a.b, c as d        -> a.b, c
//	from m import x, y as z   -> m.x, m.y
//	from m import *           -> m
//
// Relative and __future__ imports are left out.
func importNames(root *sitter.Node, src []byte) []string {
	var names []string
	visit(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "import_statement":
			for _, c := range children(n) {
				if name := importedName(c, src); name != "" {
					names = append(names, name)
				}
			}
			return false
		case "import_from_statement":
			names = append(names, fromImportNames(n, src)...)
			return false
		case "future_import_statement":
			return false
		}
		return true
	})
	return names
}

func fromImportNames(n *sitter.Node, src []byte) []string {
	module := n.ChildByFieldName("module_name")
	if module == nil || module.Type() != "dotted_name" {
		return nil
	}
	prefix := module.Content(src)
	if prefix == "__future__" {
		return nil
	}

	var names []string
	for _, c := range children(n) {
		if c.StartByte() == module.StartByte() {
			continue
		}
		switch c.Type() {
		case "wildcard_import":
			names = append(names, prefix)
		default:
			if name := importedName(c, src); name != "" {
				names = append(names, prefix+"."+name)
			}
		}
	}
	return names
}

// importedName returns the name of a dotted_name or aliased_import node.
func importedName(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "dotted_name":
		return compact(n.Content(src))
	case "aliased_import":
		if name := n.ChildByFieldName("name"); name != nil {
			return compact(name.Content(src))
		}
	}
	return ""
}

// compact drops whitespace and line continuations inside a dotted name.
func compact(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\\'
	}), "")
}

// stringValue returns the text of a string or concatenated_string literal.
// Escape sequences are kept as written.
func stringValue(n *sitter.Node, src []byte) (string, bool) {
	switch n.Type() {
	case "string":
		return unquote(n.Content(src)), true
	case "concatenated_string":
		var b strings.Builder
		for _, c := range children(n) {
			if c.Type() != "string" {
				continue
			}
			b.WriteString(unquote(c.Content(src)))
		}
		return b.String(), true
	}
	return "", false
}

// unquote strips the prefix letters and quotes of a Python string literal.
func unquote(lit string) string {
	lit = strings.TrimLeft(lit, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if len(lit) >= 2*len(q) && strings.HasPrefix(lit, q) && strings.HasSuffix(lit, q) {
			return lit[len(q) : len(lit)-len(q)]
		}
	}
	return lit
}

// docstrings returns the module, class and function docstrings below root.
func docstrings(root *sitter.Node, src []byte) []string {
	var docs []string
	if doc, ok := leadingString(root, src); ok {
		docs = append(docs, doc)
	}
	visit(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition", "class_definition":
			if body := n.ChildByFieldName("body"); body != nil {
				if doc, ok := leadingString(body, src); ok {
					docs = append(docs, doc)
				}
			}
		}
		return true
	})
	return docs
}

// leadingString returns the string literal forming the first statement of
// a module or block.
func leadingString(block *sitter.Node, src []byte) (string, bool) {
	for _, stmt := range children(block) {
		if stmt.Type() == "comment" {
			continue
		}
		if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
			return "", false
		}
		return stringValue(stmt.NamedChild(0), src)
	}
	return "", false
}

// doctestPrompt starts an interactive example line.
const doctestPrompt = ">>> "

// doctestImports parses every ">>> " line of text on its own and returns
// the names those lines import. Lines that are not valid Python are
// skipped.
func doctestImports(ctx context.Context, text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		code, ok := strings.CutPrefix(strings.TrimSpace(line), doctestPrompt)
		if !ok {
			continue
		}
		src := []byte(code)
		root, err := parsePython(ctx, src)
		if err != nil {
			continue
		}
		names = append(names, importNames(root, src)...)
	}
	return names
}
