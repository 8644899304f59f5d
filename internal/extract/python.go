package extract

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// extractPython walks the Python syntax tree and captures the module part of
// both import forms: `import X` and `from X import Y` capture X only.
func extractPython(ctx context.Context, source []byte) ([]string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("syntax errors in source")
	}

	var refs []string
	collectImports(root, source, &refs)
	return refs, nil
}

// collectImports recurses over named nodes gathering import targets.
func collectImports(node *sitter.Node, source []byte, refs *[]string) {
	switch node.Type() {
	case "import_statement":
		// import a.b, c -> one dotted_name or aliased_import per target
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "dotted_name":
				*refs = append(*refs, child.Content(source))
			case "aliased_import":
				if name := child.ChildByFieldName("name"); name != nil {
					*refs = append(*refs, name.Content(source))
				}
			}
		}
		return
	case "import_from_statement":
		// from X import Y -> capture X only, including relative prefixes
		if module := node.ChildByFieldName("module_name"); module != nil {
			*refs = append(*refs, module.Content(source))
		}
		return
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		collectImports(node.NamedChild(i), source, refs)
	}
}
