package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ddddddO/gtree"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Outline writes the node hierarchy of n as an indented tree, one line per
// node with its kind and distinguishing fields.
func Outline(w io.Writer, n tree.Node) error {
	if tree.IsNil(n) {
		return nil
	}

	root := gtree.NewRoot(label(n))
	addChildren(root, n)

	if err := gtree.OutputFromRoot(w, root); err != nil {
		return fmt.Errorf("render outline: %w", err)
	}

	return nil
}

func addChildren(parent *gtree.Node, n tree.Node) {
	for idx, child := range tree.Children(n) {
		// Sibling labels must be unique or gtree merges them.
		node := parent.Add("[" + strconv.Itoa(idx) + "] " + label(child))
		addChildren(node, child)
	}
}

func label(n tree.Node) string {
	kind := string(n.Kind())

	switch typed := n.(type) {
	case *tree.CompilationUnit:
		if typed.SourcePath != "" {
			return kind + " " + typed.SourcePath
		}
	case *tree.PackageDecl:
		return kind + " " + typed.Name
	case *tree.Import:
		if typed.Static {
			return kind + " static " + typed.Qualid
		}

		return kind + " " + typed.Qualid
	case *tree.ClassDecl:
		return kind + " " + typed.Keyword + " " + typed.SimpleName() + typeSuffix(typed.Type)
	case *tree.MethodDecl:
		if typed.Constructor {
			return kind + " constructor " + typed.SimpleName()
		}

		return kind + " " + typed.SimpleName()
	case *tree.Identifier:
		return kind + " " + typed.Name + typeSuffix(typed.Type)
	case *tree.FieldAccess:
		return kind + " ." + typed.SimpleName() + typeSuffix(typed.Type)
	case *tree.Annotation:
		return kind + typeSuffix(typed.Type)
	case *tree.Modifier:
		return kind + " " + typed.Keyword
	case *tree.Literal:
		return kind + " " + typed.Source
	case *tree.NamedVariable:
		return kind + typeSuffix(typed.Type)
	}

	return kind
}

func typeSuffix(javaType tree.JavaType) string {
	if tree.IsUnresolved(javaType) {
		return ""
	}

	return " : " + javaType.Describe()
}
