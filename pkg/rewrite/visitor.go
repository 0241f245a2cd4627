package rewrite

import (
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

// Visitor rewrites one node at a time. Visit is called after the node's
// children have been visited, with the node rebuilt around any rewritten
// children. It returns the node unchanged, a replacement, or nil to delete
// the node from a list.
type Visitor interface {
	Visit(p *Pass, n tree.Node) (tree.Node, error)
}

// PreVisitor is implemented by visitors that prune the traversal. When
// PreVisit returns false the subtree is returned untouched and Visit is not
// called for it.
type PreVisitor interface {
	PreVisit(p *Pass, n tree.Node) (bool, error)
}

// VisitorFunc adapts a function to [Visitor].
type VisitorFunc func(p *Pass, n tree.Node) (tree.Node, error)

// Visit implements Visitor.
func (f VisitorFunc) Visit(p *Pass, n tree.Node) (tree.Node, error) {
	return f(p, n)
}

// visit drives the depth-first traversal of n.
func (p *Pass) visit(n tree.Node) (tree.Node, error) {
	if tree.IsNil(n) {
		return n, nil
	}

	parent := p.cursor
	p.cursor = parent.Push(n)

	defer func() { p.cursor = parent }()

	if pre, ok := p.visitor.(PreVisitor); ok {
		descend, err := pre.PreVisit(p, n)
		if err != nil {
			return nil, err
		}

		if !descend {
			return n, nil
		}
	}

	rebuilt, err := p.visitChildren(n)
	if err != nil {
		return nil, err
	}

	return p.visitor.Visit(p, rebuilt)
}

// rebuild accumulates child rewrites for one parent. After the first error
// every further call is a no-op.
type rebuild struct {
	p       *Pass
	parent  tree.Node
	changed bool
	err     error
}

// child visits a single child slot. A nil replacement is accepted only for
// optional slots.
func child[T tree.Node](r *rebuild, n T, optional bool) T {
	if r.err != nil || tree.IsNil(n) {
		return n
	}

	result, err := r.p.visit(n)
	if err != nil {
		r.err = err

		return n
	}

	if tree.IsNil(result) {
		if !optional {
			r.err = Invariant(r.parent, "required %s child deleted", n.Kind())

			return n
		}

		r.changed = true

		var zero T

		return zero
	}

	typed, ok := result.(T)
	if !ok {
		r.err = Invariant(r.parent, "%s child replaced by %s", n.Kind(), result.Kind())

		return n
	}

	if tree.Node(typed) != tree.Node(n) {
		r.changed = true
	}

	return typed
}

// children visits a list slot. Deleted elements are dropped; the input slice
// is returned when no element changed.
func children[T tree.Node](r *rebuild, list []T) []T {
	if r.err != nil || len(list) == 0 {
		return list
	}

	var out []T

	for idx, elem := range list {
		if tree.IsNil(elem) {
			r.err = Invariant(r.parent, "nil element in child list")

			return list
		}

		result, err := r.p.visit(elem)
		if err != nil {
			r.err = err

			return list
		}

		deleted := tree.IsNil(result)

		var typed T

		if !deleted {
			var ok bool

			typed, ok = result.(T)
			if !ok {
				r.err = Invariant(r.parent, "%s element replaced by %s", elem.Kind(), result.Kind())

				return list
			}
		}

		if out == nil {
			if !deleted && tree.Node(typed) == tree.Node(elem) {
				continue
			}

			out = make([]T, idx, len(list))
			copy(out, list[:idx])
		}

		if !deleted {
			out = append(out, typed)
		}
	}

	if out == nil {
		return list
	}

	r.changed = true

	return out
}

func (r *rebuild) result(original, rebuilt tree.Node) (tree.Node, error) {
	if r.err != nil {
		return nil, r.err
	}

	if !r.changed {
		return original, nil
	}

	return rebuilt, nil
}

// visitChildren rewrites the children of n and rebuilds n only when a child
// changed.
//
//nolint:cyclop,funlen,gocyclo // One case per node variant.
func (p *Pass) visitChildren(n tree.Node) (tree.Node, error) {
	r := &rebuild{p: p, parent: n}

	switch typed := n.(type) {
	case *tree.CompilationUnit:
		c := *typed
		c.Package = child(r, typed.Package, true)
		c.Imports = children(r, typed.Imports)
		c.Classes = children(r, typed.Classes)

		return r.result(typed, &c)
	case *tree.ClassDecl:
		c := *typed
		c.Annotations = children(r, typed.Annotations)
		c.Modifiers = children(r, typed.Modifiers)
		c.Name = child(r, typed.Name, false)
		c.Body = child(r, typed.Body, true)

		return r.result(typed, &c)
	case *tree.Block:
		c := *typed
		c.Statements = children(r, typed.Statements)

		return r.result(typed, &c)
	case *tree.VariableDecls:
		c := *typed
		c.Annotations = children(r, typed.Annotations)
		c.Modifiers = children(r, typed.Modifiers)
		c.TypeExpr = child(r, typed.TypeExpr, true)
		c.Vars = children(r, typed.Vars)

		return r.result(typed, &c)
	case *tree.NamedVariable:
		c := *typed
		c.Name = child(r, typed.Name, false)
		c.Initializer = child(r, typed.Initializer, true)

		return r.result(typed, &c)
	case *tree.MethodDecl:
		c := *typed
		c.Annotations = children(r, typed.Annotations)
		c.Modifiers = children(r, typed.Modifiers)
		c.ReturnType = child(r, typed.ReturnType, true)
		c.Name = child(r, typed.Name, false)
		c.Params = children(r, typed.Params)
		c.Body = child(r, typed.Body, true)

		return r.result(typed, &c)
	case *tree.Annotation:
		c := *typed
		c.AnnotationType = child(r, typed.AnnotationType, false)
		c.Args = children(r, typed.Args)

		return r.result(typed, &c)
	case *tree.FieldAccess:
		c := *typed
		c.Target = child(r, typed.Target, false)
		c.Name = child(r, typed.Name, false)

		return r.result(typed, &c)
	case *tree.Assign:
		c := *typed
		c.Variable = child(r, typed.Variable, false)
		c.Assignment = child(r, typed.Assignment, false)

		return r.result(typed, &c)
	case *tree.MethodInvocation:
		c := *typed
		c.Select = child(r, typed.Select, true)
		c.Name = child(r, typed.Name, false)
		c.Args = children(r, typed.Args)

		return r.result(typed, &c)
	case *tree.Return:
		c := *typed
		c.Expr = child(r, typed.Expr, true)

		return r.result(typed, &c)
	case *tree.PackageDecl, *tree.Import, *tree.Identifier, *tree.Modifier, *tree.Literal:
		return n, nil
	default:
		return nil, Invariant(nil, "unknown node variant %T", n)
	}
}
