package java

import (
	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/typeutil"
)

// AddAnnotation places an argument-less annotation first on one class,
// on a line of its own, and imports the annotation type.
type AddAnnotation struct {
	ClassID        tree.ID
	AnnotationType string
}

// Name implements rewrite.Recipe.
func (r *AddAnnotation) Name() string { return "java.AddAnnotation" }

// Description implements rewrite.Recipe.
func (r *AddAnnotation) Description() string {
	return "Annotate a class with " + r.AnnotationType + "."
}

// Key implements rewrite.Keyed.
func (r *AddAnnotation) Key() string {
	return r.Name() + ":" + string(r.ClassID) + ":" + r.AnnotationType
}

// Visitor implements rewrite.Recipe.
func (r *AddAnnotation) Visitor() rewrite.Visitor {
	return rewrite.VisitorFunc(r.visit)
}

func (r *AddAnnotation) visit(p *rewrite.Pass, n tree.Node) (tree.Node, error) {
	class, ok := n.(*tree.ClassDecl)
	if !ok || class.ID != r.ClassID {
		return n, nil
	}

	for _, existing := range class.Annotations {
		if typeutil.IsOfType(existing.Type, r.AnnotationType) {
			return n, nil
		}
	}

	indent := tree.Indentation(tree.FirstPrefix(class))
	annotation := tree.NewAnnotation("", r.AnnotationType)
	out := *class

	// The annotation takes over the leading whitespace of the first element,
	// which moves to a new line.
	switch {
	case len(class.Annotations) > 0:
		annotation = tree.WithPrefix(annotation, class.Annotations[0].Prefix)
		out.Annotations = append([]*tree.Annotation{annotation},
			tree.FormatFirstPrefix(class.Annotations, "\n"+indent)...)
	case len(class.Modifiers) > 0:
		annotation = tree.WithPrefix(annotation, class.Modifiers[0].Prefix)
		out.Annotations = []*tree.Annotation{annotation}
		out.Modifiers = tree.FormatFirstPrefix(class.Modifiers, "\n"+indent)
	default:
		annotation = tree.WithPrefix(annotation, class.KeywordPrefix)
		out.Annotations = []*tree.Annotation{annotation}
		out.KeywordPrefix = "\n" + indent
	}

	p.MaybeAddImport(r.AnnotationType)

	return &out, nil
}
