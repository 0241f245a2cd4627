package java

import (
	"maps"
	"slices"
	"strings"

	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
	"github.com/Sumatoshi-tech/codemod/pkg/search"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/typeutil"
)

// RenameConstant renames references to static constants of DeclaringType
// according to Renames (old name to new name). References are matched by
// resolved owner type, never by spelling, and the declaring type's own body
// is left alone.
type RenameConstant struct {
	DeclaringType string            `mapstructure:"declaringType" validate:"required"`
	Renames       map[string]string `mapstructure:"renames"       validate:"required,min=1,dive,keys,required,endkeys,required"`
}

// Name implements rewrite.Recipe.
func (r *RenameConstant) Name() string { return "java.RenameConstant" }

// Description implements rewrite.Recipe.
func (r *RenameConstant) Description() string {
	if r.DeclaringType == "" || len(r.Renames) == 0 {
		return "Rename static constants of a type, matching references by resolved owner."
	}

	pairs := make([]string, 0, len(r.Renames))
	for _, old := range slices.Sorted(maps.Keys(r.Renames)) {
		pairs = append(pairs, old+" -> "+r.Renames[old])
	}

	return "Rename constants of " + r.DeclaringType + ": " + strings.Join(pairs, ", ") + "."
}

// Applicable implements rewrite.Applicable.
func (r *RenameConstant) Applicable(cu *tree.CompilationUnit) bool {
	return search.UsesType(cu, r.DeclaringType)
}

// Visitor implements rewrite.Recipe.
func (r *RenameConstant) Visitor() rewrite.Visitor {
	return rewrite.VisitorFunc(r.visit)
}

func (r *RenameConstant) visit(p *rewrite.Pass, n tree.Node) (tree.Node, error) {
	switch typed := n.(type) {
	case *tree.ClassDecl:
		if !r.isDeclaring(typed) {
			p.MaybeRemoveImport(r.DeclaringType)
		}

		return n, nil
	case *tree.FieldAccess:
		return r.visitFieldAccess(p, typed), nil
	case *tree.Identifier:
		return r.visitIdentifier(p, typed), nil
	default:
		return n, nil
	}
}

// visitFieldAccess handles qualified references: Type.OLD becomes Type.NEW
// with the qualifier re-synthesized.
func (r *RenameConstant) visitFieldAccess(p *rewrite.Pass, access *tree.FieldAccess) tree.Node {
	if access.Name == nil || !typeutil.IsOfType(typeutil.TypeOf(access.Target), r.DeclaringType) {
		return access
	}

	renamed, ok := r.Renames[access.Name.Name]
	if !ok || r.insideDeclaring(p) {
		return access
	}

	owner := tree.BuildClass(r.DeclaringType)
	name := access.Name.
		WithName(renamed).
		WithFieldType(r.field(renamed, owner, access.Name.FieldType))

	return access.WithTarget(r.qualifier(access.Target, owner)).WithName(name)
}

// qualifier spells the declaring type the way the original target did: a
// bare simple name stays simple, a fully-qualified name stays fully
// qualified, anything else becomes the outer-qualified class name.
func (r *RenameConstant) qualifier(target tree.Expression, owner *tree.Class) *tree.Identifier {
	spelled := owner.ClassName()

	if _, isIdent := target.(*tree.Identifier); isIdent {
		spelled = owner.SimpleName()
	} else if written, ok := tree.QualifiedName(target); ok && written == owner.FQN {
		spelled = owner.FQN
	}

	return tree.NewIdentifier(tree.FirstPrefix(target), spelled, owner)
}

// visitIdentifier handles unqualified references reached through a static
// import.
func (r *RenameConstant) visitIdentifier(p *rewrite.Pass, ident *tree.Identifier) tree.Node {
	if ident.FieldType == nil || !typeutil.FieldOwnerIs(ident.FieldType, r.DeclaringType) {
		return ident
	}

	renamed, ok := r.Renames[ident.Name]
	if !ok {
		return ident
	}

	// The selected name of a field access belongs to the qualified rule.
	if access, isAccess := p.Cursor().ParentValue().(*tree.FieldAccess); isAccess && access.Name == p.Cursor().Value() {
		return ident
	}

	if r.insideDeclaring(p) {
		return ident
	}

	p.AddStaticImport(r.DeclaringType, renamed)
	p.MaybeRemoveStaticImport(r.DeclaringType, ident.Name)

	return ident.
		WithName(renamed).
		WithFieldType(r.field(renamed, ident.FieldType.Owner, ident.FieldType))
}

func (r *RenameConstant) field(name string, owner tree.JavaType, previous *tree.Variable) *tree.Variable {
	field := &tree.Variable{Name: name, Owner: owner}

	if previous != nil {
		field.Type = previous.Type
		field.Flags = previous.Flags
	}

	return field
}

// insideDeclaring reports whether the nearest enclosing class is the
// declaring type.
func (r *RenameConstant) insideDeclaring(p *rewrite.Pass) bool {
	class, ok := rewrite.Enclosing[*tree.ClassDecl](p.Cursor())

	return ok && r.isDeclaring(class)
}

// isDeclaring matches by resolved type, or by simple name when the class
// type is unresolved.
func (r *RenameConstant) isDeclaring(class *tree.ClassDecl) bool {
	if !tree.IsUnresolved(class.Type) {
		return typeutil.IsOfClassType(class.Type, r.DeclaringType)
	}

	return class.SimpleName() == tree.BuildClass(r.DeclaringType).SimpleName()
}
