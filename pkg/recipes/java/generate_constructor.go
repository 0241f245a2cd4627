package java

import (
	"strings"

	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

const defaultIndent = "    "

// GenerateConstructorUsingFields adds a public constructor to one class that
// takes the named fields, in order, and assigns each to its field. Nothing is
// generated when a constructor with exactly these parameter names exists.
type GenerateConstructorUsingFields struct {
	ClassID tree.ID
	Fields  []string
}

// Name implements rewrite.Recipe.
func (r *GenerateConstructorUsingFields) Name() string { return "java.GenerateConstructorUsingFields" }

// Description implements rewrite.Recipe.
func (r *GenerateConstructorUsingFields) Description() string {
	return "Generate a constructor initializing " + strings.Join(r.Fields, ", ") + "."
}

// Key implements rewrite.Keyed.
func (r *GenerateConstructorUsingFields) Key() string {
	return r.Name() + ":" + string(r.ClassID) + ":" + strings.Join(r.Fields, ",")
}

// Visitor implements rewrite.Recipe.
func (r *GenerateConstructorUsingFields) Visitor() rewrite.Visitor {
	return rewrite.VisitorFunc(r.visit)
}

func (r *GenerateConstructorUsingFields) visit(_ *rewrite.Pass, n tree.Node) (tree.Node, error) {
	class, ok := n.(*tree.ClassDecl)
	if !ok || class.ID != r.ClassID || class.Body == nil || len(r.Fields) == 0 {
		return n, nil
	}

	want := make(map[string]bool, len(r.Fields))
	for _, field := range r.Fields {
		want[field] = true
	}

	exists, err := HasConstructorFor(class, want)
	if err != nil {
		return nil, err
	}

	if exists {
		return n, nil
	}

	declared := make(map[string]*tree.VariableDecls)
	lastField := -1

	for idx, stmt := range class.Body.Statements {
		decl, isField := stmt.(*tree.VariableDecls)
		if !isField {
			continue
		}

		lastField = idx

		for _, name := range decl.VarNames() {
			declared[name] = decl
		}
	}

	params := make([]tree.Statement, 0, len(r.Fields))
	for idx, field := range r.Fields {
		decl, found := declared[field]
		if !found {
			return nil, rewrite.Invariant(class, "field %q is not declared", field)
		}

		params = append(params, parameter(decl, field, idx))
	}

	indent := defaultIndent
	if lastField >= 0 {
		indent = tree.Indentation(tree.FirstPrefix(class.Body.Statements[lastField]))
	}

	constructor := r.constructor(class, params, indent)

	statements := make([]tree.Statement, 0, len(class.Body.Statements)+1)
	statements = append(statements, class.Body.Statements[:lastField+1]...)
	statements = append(statements, constructor)
	statements = append(statements, class.Body.Statements[lastField+1:]...)

	return class.WithBody(class.Body.WithStatements(statements)), nil
}

func (r *GenerateConstructorUsingFields) constructor(class *tree.ClassDecl, params []tree.Statement, indent string) *tree.MethodDecl {
	bodyIndent := indent + indent
	if indent == "" {
		bodyIndent = defaultIndent
	}

	assignments := make([]tree.Statement, 0, len(r.Fields))

	for idx, field := range r.Fields {
		param, _ := params[idx].(*tree.VariableDecls)
		fieldType := param.Vars[0].Type

		assignments = append(assignments, tree.NewAssign("\n"+bodyIndent,
			tree.NewFieldAccess("",
				tree.NewIdentifier("", "this", class.Type),
				tree.NewFieldIdentifier("", field, class.Type, fieldType),
				fieldType),
			tree.NewIdentifier("", field, fieldType)))
	}

	return &tree.MethodDecl{
		Meta:        tree.Meta{ID: tree.NewID()},
		Modifiers:   tree.NewModifiers("\n\n"+indent, "public"),
		Name:        tree.NewIdentifier(" ", class.SimpleName(), class.Type),
		Params:      params,
		Body:        tree.NewBlock(" ", assignments, "\n"+indent),
		Constructor: true,
	}
}

// parameter declares "Type name" with the field's type expression.
func parameter(field *tree.VariableDecls, name string, position int) *tree.VariableDecls {
	prefix := ""
	if position > 0 {
		prefix = " "
	}

	var varType tree.JavaType

	for _, named := range field.Vars {
		if named.Name != nil && named.Name.Name == name {
			varType = named.Type
		}
	}

	return &tree.VariableDecls{
		Meta:     tree.Meta{ID: tree.NewID()},
		TypeExpr: tree.Fresh(tree.WithPrefix(field.TypeExpr, prefix)),
		Vars: []*tree.NamedVariable{{
			Meta: tree.Meta{ID: tree.NewID()},
			Name: tree.NewIdentifier(" ", name, varType),
			Type: varType,
		}},
	}
}

// HasConstructorFor reports whether class declares a constructor whose
// parameter names are exactly names. A parameter that is not a variable
// declaration violates the grammar and is reported as an invariant error.
func HasConstructorFor(class *tree.ClassDecl, names map[string]bool) (bool, error) {
	for _, method := range class.Methods() {
		if !method.Constructor {
			continue
		}

		params := make(map[string]bool, len(method.Params))

		for _, param := range method.Params {
			decl, ok := param.(*tree.VariableDecls)
			if !ok {
				return false, rewrite.Invariant(param, "constructor %s has a %s parameter", method.SimpleName(), param.Kind())
			}

			for _, name := range decl.VarNames() {
				params[name] = true
			}
		}

		if sameSet(params, names) {
			return true, nil
		}
	}

	return false, nil
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}

	for key := range a {
		if !b[key] {
			return false
		}
	}

	return true
}
