// Package spring holds migrations for Spring applications.
package spring

import (
	"github.com/Sumatoshi-tech/codemod/pkg/recipes/java"
	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
	"github.com/Sumatoshi-tech/codemod/pkg/search"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/typeutil"
)

// Annotation types handled by [ConstructorInjection].
const (
	InjectFQN                  = "javax.inject.Inject"
	AutowiredFQN               = "org.springframework.beans.factory.annotation.Autowired"
	NonnullFQN                 = "javax.annotation.Nonnull"
	RequiredArgsConstructorFQN = "lombok.RequiredArgsConstructor"
	requiredAttribute          = "required"
	setterPrefix               = "set"
)

// markerTypes lists the injection markers in the order their imports are
// released.
//
//nolint:gochecknoglobals // Fixed lookup table.
var markerTypes = []string{InjectFQN, AutowiredFQN}

// ConstructorInjection turns field injection into constructor injection:
// injected fields become private final, their setters are removed and a
// constructor (or Lombok's RequiredArgsConstructor) is provided.
type ConstructorInjection struct {
	// GenerateMarkerAnnotation annotates the class with
	// @RequiredArgsConstructor instead of generating a constructor.
	GenerateMarkerAnnotation bool `mapstructure:"generateMarkerAnnotation"`
	// GenerateNonNullAnnotations replaces each required injection marker with
	// @Nonnull.
	GenerateNonNullAnnotations bool `mapstructure:"generateNonNullAnnotations"`
}

// Name implements rewrite.Recipe.
func (r *ConstructorInjection) Name() string { return "spring.ConstructorInjection" }

// Description implements rewrite.Recipe.
func (r *ConstructorInjection) Description() string {
	return "Replace @Inject and @Autowired field injection with constructor injection."
}

// Applicable implements rewrite.Applicable.
func (r *ConstructorInjection) Applicable(cu *tree.CompilationUnit) bool {
	return search.UsesAnyType(cu, markerTypes...)
}

// Visitor implements rewrite.Recipe.
func (r *ConstructorInjection) Visitor() rewrite.Visitor {
	return rewrite.VisitorFunc(r.visit)
}

func (r *ConstructorInjection) visit(p *rewrite.Pass, n tree.Node) (tree.Node, error) {
	class, ok := n.(*tree.ClassDecl)
	if !ok || class.Body == nil {
		return n, nil
	}

	var injected []string

	for _, field := range class.Fields() {
		if hasMarker(field) {
			injected = append(injected, field.VarNames()...)
		}
	}

	if len(injected) == 0 {
		return n, nil
	}

	names := make(map[string]bool, len(injected))
	setters := make(map[string]bool, len(injected))

	for _, name := range injected {
		names[name] = true
		setters[setterPrefix+tree.Capitalize(name)] = true
	}

	hasConstructor, err := java.HasConstructorFor(class, names)
	if err != nil {
		return nil, err
	}

	statements := make([]tree.Statement, 0, len(class.Body.Statements))

	for _, stmt := range class.Body.Statements {
		switch member := stmt.(type) {
		case *tree.VariableDecls:
			if hasMarker(member) {
				stmt = r.rewriteField(p, member)
			}
		case *tree.MethodDecl:
			if !member.Constructor && setters[member.SimpleName()] {
				continue
			}
		}

		statements = append(statements, stmt)
	}

	if !hasConstructor {
		if r.GenerateMarkerAnnotation {
			p.DoAfterVisit(&java.AddAnnotation{ClassID: class.ID, AnnotationType: RequiredArgsConstructorFQN})
		} else {
			p.DoAfterVisit(&java.GenerateConstructorUsingFields{ClassID: class.ID, Fields: injected})
		}
	}

	return class.WithBody(class.Body.WithStatements(statements)), nil
}

// rewriteField strips the injection markers of one field and makes it
// private final.
func (r *ConstructorInjection) rewriteField(p *rewrite.Pass, field *tree.VariableDecls) *tree.VariableDecls {
	kept := make([]*tree.Annotation, 0, len(field.Annotations))
	stripped := make(map[string]bool, len(markerTypes))
	annotatedNonnull := hasAnnotation(field, NonnullFQN)

	for _, annotation := range field.Annotations {
		marker, isMarker := typeutil.IsAnyOf(annotation.Type, markerTypes...)
		if !isMarker {
			kept = append(kept, annotation)

			continue
		}

		stripped[marker] = true

		if r.GenerateNonNullAnnotations && !annotatedNonnull && isRequired(annotation) {
			kept = append(kept, nonnull(annotation))
			annotatedNonnull = true

			p.MaybeAddImport(NonnullFQN)
		}
	}

	typeExpr := field.TypeExpr

	var modifiers []*tree.Modifier

	if len(field.Modifiers) > 0 {
		modifiers = tree.NewModifiers(field.Modifiers[0].Prefix, "private", "final")
	} else {
		modifiers = tree.NewModifiers(tree.FirstPrefix(typeExpr), "private", "final")
		typeExpr = tree.WithLeadingPrefix(typeExpr, " ")
	}

	// With every annotation gone the declaration starts at its modifiers.
	if len(kept) == 0 && len(field.Annotations) > 0 {
		modifiers = tree.FormatFirstPrefix(modifiers, field.Annotations[0].Prefix)
	}

	for _, marker := range markerTypes {
		if stripped[marker] {
			p.MaybeRemoveImport(marker)
		}
	}

	return field.WithAnnotations(kept).WithModifiers(modifiers).WithTypeExpr(typeExpr)
}

func hasMarker(field *tree.VariableDecls) bool {
	return hasAnnotation(field, markerTypes...)
}

func hasAnnotation(field *tree.VariableDecls, fqcns ...string) bool {
	for _, annotation := range field.Annotations {
		if _, ok := typeutil.IsAnyOf(annotation.Type, fqcns...); ok {
			return true
		}
	}

	return false
}

// isRequired reports whether an injection marker demands a value: it has no
// required attribute, or required is set to true.
func isRequired(annotation *tree.Annotation) bool {
	for _, arg := range annotation.Args {
		assign, ok := arg.(*tree.Assign)
		if !ok {
			continue
		}

		name, ok := assign.Variable.(*tree.Identifier)
		if !ok || name.Name != requiredAttribute {
			continue
		}

		literal, ok := assign.Assignment.(*tree.Literal)
		if !ok {
			// A non-literal value cannot be proven true.
			return false
		}

		if value, isBool := literal.Value.(bool); isBool {
			return value
		}

		return literal.Source == "true"
	}

	return true
}

// nonnull replaces a marker with @Nonnull in the same position.
func nonnull(marker *tree.Annotation) *tree.Annotation {
	class := tree.BuildClass(NonnullFQN)

	return &tree.Annotation{
		Meta:           tree.Meta{ID: tree.NewID(), Prefix: marker.Prefix},
		AnnotationType: tree.NewIdentifier(tree.PrefixOf(marker.AnnotationType), class.SimpleName(), class),
		Type:           class,
	}
}
