// Package printer renders trees back to source text. Printing is lossless
// with respect to the formatting metadata the tree carries: every prefix is
// emitted verbatim before its node.
package printer

import (
	"strings"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Print renders n as source text.
func Print(n tree.Node) string {
	var sb strings.Builder

	p := &printer{out: &sb}
	p.node(n)

	return sb.String()
}

type printer struct {
	out *strings.Builder
}

func (p *printer) write(parts ...string) {
	for _, part := range parts {
		p.out.WriteString(part)
	}
}

//nolint:cyclop,funlen,gocyclo // One case per node variant.
func (p *printer) node(n tree.Node) {
	if tree.IsNil(n) {
		return
	}

	p.write(n.Metadata().Prefix)

	switch typed := n.(type) {
	case *tree.CompilationUnit:
		if typed.Package != nil {
			p.node(typed.Package)
		}

		for _, imp := range typed.Imports {
			p.node(imp)
		}

		for _, class := range typed.Classes {
			p.node(class)
		}

		p.write(typed.EOF)
	case *tree.PackageDecl:
		p.write("package ", typed.Name, ";")
	case *tree.Import:
		if typed.Static {
			p.write("import static ", typed.Qualid, ";")
		} else {
			p.write("import ", typed.Qualid, ";")
		}
	case *tree.ClassDecl:
		p.annotations(typed.Annotations)
		p.modifiers(typed.Modifiers)
		p.write(typed.KeywordPrefix, typed.Keyword)
		p.node(typed.Name)
		p.node(typed.Body)
	case *tree.Block:
		p.write("{")

		for _, stmt := range typed.Statements {
			p.node(stmt)

			if needsSemicolon(stmt) {
				p.write(";")
			}
		}

		p.write(typed.End, "}")
	case *tree.VariableDecls:
		p.annotations(typed.Annotations)
		p.modifiers(typed.Modifiers)
		p.node(typed.TypeExpr)

		for idx, named := range typed.Vars {
			if idx > 0 {
				p.write(",")
			}

			p.node(named)
		}
	case *tree.NamedVariable:
		p.node(typed.Name)

		if !tree.IsNil(typed.Initializer) {
			p.write(typed.OpPrefix, "=")
			p.node(typed.Initializer)
		}
	case *tree.MethodDecl:
		p.annotations(typed.Annotations)
		p.modifiers(typed.Modifiers)
		p.node(typed.ReturnType)
		p.node(typed.Name)
		p.write("(")

		for idx, param := range typed.Params {
			if idx > 0 {
				p.write(",")
			}

			p.node(param)
		}

		p.write(typed.ParamsEnd, ")")

		if typed.Body != nil {
			p.node(typed.Body)
		} else {
			p.write(";")
		}
	case *tree.Annotation:
		p.write("@")
		p.node(typed.AnnotationType)

		if typed.Args != nil {
			p.write("(")
			p.list(typed.Args)
			p.write(")")
		}
	case *tree.Identifier:
		p.write(typed.Name)
	case *tree.FieldAccess:
		p.node(typed.Target)
		p.write(".")
		p.node(typed.Name)
	case *tree.Assign:
		p.node(typed.Variable)
		p.write(typed.OpPrefix, "=")
		p.node(typed.Assignment)
	case *tree.Modifier:
		p.write(typed.Keyword)
	case *tree.Literal:
		p.write(typed.Source)
	case *tree.MethodInvocation:
		if !tree.IsNil(typed.Select) {
			p.node(typed.Select)
			p.write(".")
		}

		p.node(typed.Name)
		p.write("(")
		p.list(typed.Args)
		p.write(typed.ArgsEnd, ")")
	case *tree.Return:
		p.write("return")
		p.node(typed.Expr)
	}
}

func (p *printer) annotations(annotations []*tree.Annotation) {
	for _, annotation := range annotations {
		p.node(annotation)
	}
}

func (p *printer) modifiers(modifiers []*tree.Modifier) {
	for _, modifier := range modifiers {
		p.node(modifier)
	}
}

func (p *printer) list(exprs []tree.Expression) {
	for idx, expr := range exprs {
		if idx > 0 {
			p.write(",")
		}

		p.node(expr)
	}
}

func needsSemicolon(stmt tree.Statement) bool {
	switch stmt.(type) {
	case *tree.ClassDecl, *tree.MethodDecl, *tree.Block:
		return false
	default:
		return true
	}
}
