package tree

// Traversal capacity constants.
const (
	defaultStackCap = 64
	stackCapGrowth  = 32
)

// Children returns the direct children of n in source order. Absent
// optional children are omitted.
func Children(n Node) []Node {
	var out []Node

	appendNode := func(child Node) {
		if !IsNil(child) {
			out = append(out, child)
		}
	}

	switch typed := n.(type) {
	case *CompilationUnit:
		if typed.Package != nil {
			appendNode(typed.Package)
		}

		for _, imp := range typed.Imports {
			appendNode(imp)
		}

		for _, class := range typed.Classes {
			appendNode(class)
		}
	case *ClassDecl:
		appendAnnotations(&out, typed.Annotations)
		appendModifiers(&out, typed.Modifiers)

		if typed.Name != nil {
			appendNode(typed.Name)
		}

		if typed.Body != nil {
			appendNode(typed.Body)
		}
	case *Block:
		for _, stmt := range typed.Statements {
			appendNode(stmt)
		}
	case *VariableDecls:
		appendAnnotations(&out, typed.Annotations)
		appendModifiers(&out, typed.Modifiers)
		appendNode(typed.TypeExpr)

		for _, named := range typed.Vars {
			if named != nil {
				appendNode(named)
			}
		}
	case *NamedVariable:
		if typed.Name != nil {
			appendNode(typed.Name)
		}

		appendNode(typed.Initializer)
	case *MethodDecl:
		appendAnnotations(&out, typed.Annotations)
		appendModifiers(&out, typed.Modifiers)
		appendNode(typed.ReturnType)

		if typed.Name != nil {
			appendNode(typed.Name)
		}

		for _, param := range typed.Params {
			appendNode(param)
		}

		if typed.Body != nil {
			appendNode(typed.Body)
		}
	case *Annotation:
		appendNode(typed.AnnotationType)

		for _, arg := range typed.Args {
			appendNode(arg)
		}
	case *FieldAccess:
		appendNode(typed.Target)

		if typed.Name != nil {
			appendNode(typed.Name)
		}
	case *Assign:
		appendNode(typed.Variable)
		appendNode(typed.Assignment)
	case *MethodInvocation:
		appendNode(typed.Select)

		if typed.Name != nil {
			appendNode(typed.Name)
		}

		for _, arg := range typed.Args {
			appendNode(arg)
		}
	case *Return:
		appendNode(typed.Expr)
	case *PackageDecl, *Import, *Identifier, *Modifier, *Literal:
		// Leaves.
	}

	return out
}

func appendAnnotations(out *[]Node, annotations []*Annotation) {
	for _, annotation := range annotations {
		if annotation != nil {
			*out = append(*out, annotation)
		}
	}
}

func appendModifiers(out *[]Node, modifiers []*Modifier) {
	for _, modifier := range modifiers {
		if modifier != nil {
			*out = append(*out, modifier)
		}
	}
}

// Find returns all nodes in the tree (including root) for which predicate is
// true, in pre-order. Returns nil if root is nil.
func Find(root Node, predicate func(Node) bool) []Node {
	if IsNil(root) {
		return nil
	}

	var result []Node

	Walk(root, func(n Node) bool {
		if predicate(n) {
			result = append(result, n)
		}

		return true
	})

	return result
}

// Walk visits nodes in pre-order. Children of a node are skipped when fn
// returns false.
func Walk(root Node, fn func(Node) bool) {
	if IsNil(root) {
		return
	}

	stack := make([]Node, 0, defaultStackCap)
	stack = append(stack, root)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(curr) {
			continue
		}

		stack = pushChildrenReversed(stack, Children(curr))
	}
}

// WalkWithParent visits nodes in pre-order, passing each node's parent
// (nil for the root).
func WalkWithParent(root Node, fn func(n, parent Node) bool) {
	if IsNil(root) {
		return
	}

	type frame struct {
		node   Node
		parent Node
	}

	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.node, top.parent) {
			continue
		}

		children := Children(top.node)
		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, frame{node: children[idx], parent: top.node})
		}
	}
}

// Ancestors returns the path from root to the parent of target, or nil when
// target is not in the tree.
func Ancestors(root, target Node) []Node {
	if IsNil(root) || IsNil(target) {
		return nil
	}

	type frame struct {
		node Node
		path []Node
	}

	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.node == target {
			return top.path
		}

		path := append(append([]Node{}, top.path...), top.node)
		children := Children(top.node)

		for idx := len(children) - 1; idx >= 0; idx-- {
			stack = append(stack, frame{node: children[idx], path: path})
		}
	}

	return nil
}

// FindByID returns the first node carrying the identity, or nil.
func FindByID(root Node, nodeID ID) Node {
	var found Node

	Walk(root, func(n Node) bool {
		if found != nil {
			return false
		}

		if n.Metadata().ID == nodeID {
			found = n

			return false
		}

		return true
	})

	return found
}

func pushChildrenReversed(stack, children []Node) []Node {
	if cap(stack) < len(stack)+len(children) {
		grown := make([]Node, len(stack), len(stack)+len(children)+stackCapGrowth)
		copy(grown, stack)
		stack = grown
	}

	for idx := len(children) - 1; idx >= 0; idx-- {
		stack = append(stack, children[idx])
	}

	return stack
}
