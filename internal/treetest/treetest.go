// Package treetest builds small, conventionally formatted trees for tests.
// Members are indented by four spaces and statements by eight.
package treetest

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

const (
	memberLead    = "\n    "
	methodLead    = "\n\n    "
	statementLead = "\n        "
)

// Unit builds a compilation unit. Imports prefixed with "static " are static
// imports.
func Unit(pkg string, imports []string, classes ...*tree.ClassDecl) *tree.CompilationUnit {
	cu := &tree.CompilationUnit{
		Meta: tree.Meta{ID: tree.NewID()},
		EOF:  "\n",
	}

	if pkg != "" {
		cu.Package = &tree.PackageDecl{Meta: tree.Meta{ID: tree.NewID()}, Name: pkg}
	}

	for idx, imp := range imports {
		prefix := "\n"
		if idx == 0 {
			prefix = "\n\n"
			if pkg == "" {
				prefix = ""
			}
		}

		qualid, static := strings.CutPrefix(imp, "static ")
		cu.Imports = append(cu.Imports, tree.NewImport(prefix, qualid, static))
	}

	for idx, class := range classes {
		prefix := "\n\n"
		if idx == 0 && pkg == "" && len(imports) == 0 {
			prefix = ""
		}

		cu.Classes = append(cu.Classes, tree.WithLeadingPrefix(class, prefix))
	}

	return cu
}

// Class builds "public class Name { members }". Fields follow each other on
// consecutive lines; methods are separated by a blank line.
func Class(fqn string, members ...tree.Statement) *tree.ClassDecl {
	class := tree.BuildClass(fqn)
	statements := make([]tree.Statement, 0, len(members))

	for _, member := range members {
		lead := memberLead
		if _, isField := member.(*tree.VariableDecls); !isField && len(statements) > 0 {
			lead = methodLead
		}

		statements = append(statements, tree.WithLeadingPrefix(member, lead))
	}

	return &tree.ClassDecl{
		Meta:          tree.Meta{ID: tree.NewID()},
		Modifiers:     tree.NewModifiers("", "public"),
		Keyword:       "class",
		KeywordPrefix: " ",
		Name:          tree.NewIdentifier(" ", class.SimpleName(), class),
		Body:          tree.NewBlock(" ", statements, "\n"),
		Type:          class,
	}
}

// Annotation builds "@Simple" or "@Simple(args)" for the annotation type fqn.
func Annotation(fqn string, args ...tree.Expression) *tree.Annotation {
	annotation := tree.NewAnnotation("", fqn)
	if len(args) > 0 {
		annotation.Args = args
	}

	return annotation
}

// Required builds the annotation argument "required = value".
func Required(value bool) tree.Expression {
	return tree.NewAssign("",
		tree.NewIdentifier("", "required", nil),
		tree.NewLiteral("", value, strconv.FormatBool(value), tree.PrimitiveBoolean))
}

// Field builds a field declaration. modifiers is a space-separated keyword
// list and may be empty; every annotation sits on its own line.
func Field(modifiers, typeFQN, name string, annotations ...*tree.Annotation) *tree.VariableDecls {
	class := tree.BuildClass(typeFQN)
	decl := &tree.VariableDecls{
		Meta:     tree.Meta{ID: tree.NewID()},
		TypeExpr: tree.NewIdentifier(" ", class.SimpleName(), class),
		Vars: []*tree.NamedVariable{{
			Meta: tree.Meta{ID: tree.NewID()},
			Name: tree.NewIdentifier(" ", name, nil),
			Type: class,
		}},
	}

	for _, annotation := range annotations {
		decl.Annotations = append(decl.Annotations, tree.WithPrefix(annotation, memberLead))
	}

	if keywords := strings.Fields(modifiers); len(keywords) > 0 {
		decl.Modifiers = tree.NewModifiers(memberLead, keywords...)
	} else if len(annotations) > 0 {
		decl.TypeExpr = tree.WithPrefix(decl.TypeExpr, memberLead)
	}

	return tree.WithLeadingPrefix(decl, "")
}

// Param is a constructor or method parameter.
type Param struct {
	TypeFQN string
	Name    string
}

// Constructor builds a public constructor assigning every parameter to the
// field of the same name.
func Constructor(className string, params ...Param) *tree.MethodDecl {
	body := make([]tree.Statement, 0, len(params))
	for _, param := range params {
		body = append(body, assignThis(param))
	}

	return &tree.MethodDecl{
		Meta:        tree.Meta{ID: tree.NewID()},
		Modifiers:   tree.NewModifiers("", "public"),
		Name:        tree.NewIdentifier(" ", className, nil),
		Params:      parameters(params),
		Body:        tree.NewBlock(" ", body, memberLead),
		Constructor: true,
	}
}

// Setter builds "public void setName(Type name) { this.name = name; }".
func Setter(typeFQN, field string) *tree.MethodDecl {
	param := Param{TypeFQN: typeFQN, Name: field}

	return &tree.MethodDecl{
		Meta:       tree.Meta{ID: tree.NewID()},
		Modifiers:  tree.NewModifiers("", "public"),
		ReturnType: tree.NewIdentifier(" ", "void", nil),
		Name:       tree.NewIdentifier(" ", "set"+tree.Capitalize(field), nil),
		Params:     parameters([]Param{param}),
		Body:       tree.NewBlock(" ", []tree.Statement{assignThis(param)}, memberLead),
	}
}

// Method builds "public Type name() { statements }"; returnType "void" has no
// resolved type.
func Method(returnType, name string, statements ...tree.Statement) *tree.MethodDecl {
	var returnRef tree.JavaType
	if returnType != "void" {
		returnRef = tree.BuildClass(returnType)
	}

	body := make([]tree.Statement, 0, len(statements))
	for _, stmt := range statements {
		body = append(body, tree.WithLeadingPrefix(stmt, statementLead))
	}

	simple := returnType
	if class, ok := returnRef.(*tree.Class); ok {
		simple = class.SimpleName()
	}

	return &tree.MethodDecl{
		Meta:       tree.Meta{ID: tree.NewID()},
		Modifiers:  tree.NewModifiers("", "public"),
		ReturnType: tree.NewIdentifier(" ", simple, returnRef),
		Name:       tree.NewIdentifier(" ", name, nil),
		Body:       tree.NewBlock(" ", body, memberLead),
	}
}

// Return builds "return expr".
func Return(expr tree.Expression) *tree.Return {
	return &tree.Return{
		Meta: tree.Meta{ID: tree.NewID()},
		Expr: tree.WithPrefix(expr, " "),
	}
}

// Const builds a qualified constant reference such as
// "Props.Mode.ON_TRACE" where qualifier is the qualifier as written and
// ownerFQN the type it denotes. Upper-case qualifier segments resolve to the
// matching prefix of ownerFQN; package segments stay unresolved.
func Const(qualifier, ownerFQN, member string) *tree.FieldAccess {
	owner := tree.BuildClass(ownerFQN)
	fqnSegments := strings.Split(ownerFQN, ".")
	segments := strings.Split(qualifier, ".")
	offset := len(fqnSegments) - len(segments)

	var target tree.Expression

	for idx, segment := range segments {
		var segmentType tree.JavaType
		if segment != "" && unicode.IsUpper([]rune(segment)[0]) && offset >= 0 {
			segmentType = tree.BuildClass(strings.Join(fqnSegments[:offset+idx+1], "."))
		}

		ident := tree.NewIdentifier("", segment, segmentType)
		if target == nil {
			target = ident

			continue
		}

		target = tree.NewFieldAccess("", target, ident, segmentType)
	}

	return tree.NewFieldAccess("", target, tree.NewFieldIdentifier("", member, owner, owner), owner)
}

// StaticRef builds an unqualified reference to a static member of ownerFQN.
func StaticRef(ownerFQN, member string) *tree.Identifier {
	owner := tree.BuildClass(ownerFQN)

	return tree.NewFieldIdentifier("", member, owner, owner)
}

func parameters(params []Param) []tree.Statement {
	out := make([]tree.Statement, 0, len(params))

	for idx, param := range params {
		class := tree.BuildClass(param.TypeFQN)
		prefix := ""

		if idx > 0 {
			prefix = " "
		}

		out = append(out, &tree.VariableDecls{
			Meta:     tree.Meta{ID: tree.NewID()},
			TypeExpr: tree.NewIdentifier(prefix, class.SimpleName(), class),
			Vars: []*tree.NamedVariable{{
				Meta: tree.Meta{ID: tree.NewID()},
				Name: tree.NewIdentifier(" ", param.Name, nil),
				Type: class,
			}},
		})
	}

	return out
}

func assignThis(param Param) tree.Statement {
	class := tree.BuildClass(param.TypeFQN)

	return tree.NewAssign(statementLead,
		tree.NewFieldAccess("", tree.NewIdentifier("", "this", nil), tree.NewIdentifier("", param.Name, nil), class),
		tree.NewIdentifier("", param.Name, nil))
}
