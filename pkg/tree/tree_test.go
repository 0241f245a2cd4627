package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

func TestClassNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fqn       string
		pkg       string
		className string
		simple    string
		outermost string
	}{
		{
			fqn:       "org.springframework.boot.autoconfigure.web.ErrorProperties.IncludeStacktrace",
			pkg:       "org.springframework.boot.autoconfigure.web",
			className: "ErrorProperties.IncludeStacktrace",
			simple:    "IncludeStacktrace",
			outermost: "org.springframework.boot.autoconfigure.web.ErrorProperties",
		},
		{fqn: "java.util.List", pkg: "java.util", className: "List", simple: "List", outermost: "java.util.List"},
		{fqn: "Foo", pkg: "", className: "Foo", simple: "Foo", outermost: "Foo"},
		{fqn: "a.b.c", pkg: "a.b", className: "c", simple: "c", outermost: "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.fqn, func(t *testing.T) {
			t.Parallel()

			class := tree.BuildClass(tt.fqn)

			assert.Equal(t, tt.pkg, class.PackageName())
			assert.Equal(t, tt.className, class.ClassName())
			assert.Equal(t, tt.simple, class.SimpleName())
			assert.Equal(t, tt.outermost, class.OutermostFQN())
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	list := &tree.Class{FQN: "java.util.List", TypeParameters: []tree.JavaType{tree.BuildClass("a.B"), nil}}
	field := &tree.Variable{Name: "ON_PARAM", Owner: tree.BuildClass("a.Mode")}

	assert.Equal(t, "java.util.List<a.B, ?>", list.Describe())
	assert.Equal(t, "a.Mode#ON_PARAM", field.Describe())
	assert.Equal(t, "?#x", (&tree.Variable{Name: "x"}).Describe())
	assert.Equal(t, "int", tree.PrimitiveInt.Describe())
}

func TestIsUnresolved(t *testing.T) {
	t.Parallel()

	var nilClass *tree.Class

	assert.True(t, tree.IsUnresolved(nil))
	assert.True(t, tree.IsUnresolved(nilClass))
	assert.True(t, tree.IsUnresolved(&tree.Class{}))
	assert.True(t, tree.IsUnresolved(tree.Primitive("")))
	assert.False(t, tree.IsUnresolved(tree.BuildClass("a.B")))
}

func TestImportParts(t *testing.T) {
	t.Parallel()

	typeImport := tree.NewImport("", "java.util.List", false)
	assert.Equal(t, "java.util.List", typeImport.TypeName())
	assert.Equal(t, "java.util", typeImport.PackageName())
	assert.Empty(t, typeImport.Member())

	wildcard := tree.NewImport("", "java.util.*", false)
	assert.True(t, wildcard.IsWildcard())
	assert.Empty(t, wildcard.TypeName())
	assert.Equal(t, "java.util", wildcard.PackageName())

	static := tree.NewImport("", "a.b.Mode.ON_PARAM", true)
	assert.Equal(t, "a.b.Mode", static.TypeName())
	assert.Equal(t, "a.b", static.PackageName())
	assert.Equal(t, "ON_PARAM", static.Member())
}

func TestWithPrefixKeepsIdentity(t *testing.T) {
	t.Parallel()

	ident := tree.NewIdentifier(" ", "foo", nil)

	assert.Same(t, ident, tree.WithPrefix(ident, " "))

	moved := tree.WithPrefix(ident, "\n")
	assert.NotSame(t, ident, moved)
	assert.Equal(t, "\n", moved.Prefix)
	assert.Equal(t, " ", ident.Prefix)
	assert.Equal(t, ident.ID, moved.ID)

	fresh := tree.Fresh(ident)
	assert.NotEqual(t, ident.ID, fresh.ID)
}

func TestWithMarkerCopiesMarkers(t *testing.T) {
	t.Parallel()

	ident := tree.WithMarker(tree.NewIdentifier("", "foo", nil), "a", "1")
	marked := tree.WithMarker(ident, "b", "2")

	assert.Equal(t, tree.Markers{"a": "1"}, ident.Markers)
	assert.Equal(t, tree.Markers{"a": "1", "b": "2"}, marked.Markers)
	assert.Same(t, marked, tree.WithMarker(marked, "b", "2"))
}

func TestEqualIgnoresFormatting(t *testing.T) {
	t.Parallel()

	class := tree.BuildClass("a.B")
	left := tree.NewIdentifier(" ", "B", class)
	right := tree.NewIdentifier("\n\t", "B", class)

	var nilIdent *tree.Identifier

	assert.True(t, tree.Equal(left, right))
	assert.Equal(t, tree.Fingerprint(left), tree.Fingerprint(right))
	assert.False(t, tree.Equal(left, tree.NewIdentifier(" ", "C", class)))
	assert.False(t, tree.Equal(left, tree.NewIdentifier(" ", "B", tree.BuildClass("a.C"))))
	assert.True(t, tree.Equal(nil, nilIdent))
	assert.False(t, tree.Equal(left, nil))
}

func sampleClass() (*tree.ClassDecl, *tree.VariableDecls, *tree.Identifier) {
	name := tree.NewIdentifier(" ", "name", nil)
	field := &tree.VariableDecls{
		Meta:     tree.Meta{ID: tree.NewID(), Prefix: "\n    "},
		TypeExpr: tree.NewIdentifier("", "String", nil),
		Vars:     []*tree.NamedVariable{{Meta: tree.Meta{ID: tree.NewID()}, Name: name}},
	}
	class := &tree.ClassDecl{
		Meta:    tree.Meta{ID: tree.NewID()},
		Keyword: "class",
		Name:    tree.NewIdentifier(" ", "Foo", nil),
		Body:    tree.NewBlock(" ", []tree.Statement{field}, "\n"),
	}

	return class, field, name
}

func kinds(nodes []tree.Node) []tree.Kind {
	out := make([]tree.Kind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind())
	}

	return out
}

func TestWalkPreOrder(t *testing.T) {
	t.Parallel()

	class, _, _ := sampleClass()

	var visited []tree.Node

	tree.Walk(class, func(n tree.Node) bool {
		visited = append(visited, n)

		return true
	})

	assert.Equal(t, []tree.Kind{
		tree.KindClassDecl, tree.KindIdentifier, tree.KindBlock, tree.KindVariableDecls,
		tree.KindIdentifier, tree.KindNamedVariable, tree.KindIdentifier,
	}, kinds(visited))
}

func TestWalkSkipsChildren(t *testing.T) {
	t.Parallel()

	class, _, _ := sampleClass()

	var visited []tree.Node

	tree.Walk(class, func(n tree.Node) bool {
		visited = append(visited, n)

		return n.Kind() != tree.KindBlock
	})

	assert.Equal(t, []tree.Kind{tree.KindClassDecl, tree.KindIdentifier, tree.KindBlock}, kinds(visited))
}

func TestWalkWithParent(t *testing.T) {
	t.Parallel()

	class, field, _ := sampleClass()
	parents := make(map[tree.Node]tree.Node)

	tree.WalkWithParent(class, func(n, parent tree.Node) bool {
		parents[n] = parent

		return true
	})

	assert.Nil(t, parents[class])
	assert.Same(t, class.Body, parents[field])
}

func TestAncestorsAndFindByID(t *testing.T) {
	t.Parallel()

	class, field, name := sampleClass()

	path := tree.Ancestors(class, name)
	require.Len(t, path, 4)
	assert.Equal(t, []tree.Kind{
		tree.KindClassDecl, tree.KindBlock, tree.KindVariableDecls, tree.KindNamedVariable,
	}, kinds(path))
	assert.Nil(t, tree.Ancestors(class, tree.NewIdentifier("", "other", nil)))

	assert.Same(t, field, tree.FindByID(class, field.ID))
	assert.Nil(t, tree.FindByID(class, tree.NewID()))

	identifiers := tree.Find(class, func(n tree.Node) bool { return n.Kind() == tree.KindIdentifier })
	assert.Len(t, identifiers, 3)
}

func TestLeadingPrefix(t *testing.T) {
	t.Parallel()

	_, field, _ := sampleClass()

	assert.Equal(t, "\n    ", tree.FirstPrefix(field))
	assert.Equal(t, "    ", tree.Indentation(tree.FirstPrefix(field)))
	assert.Empty(t, tree.Indentation(" "))

	moved := tree.WithLeadingPrefix(field, "\n  ")
	assert.Empty(t, moved.Prefix)
	assert.Equal(t, "\n  ", tree.FirstPrefix(moved))
	assert.Equal(t, "\n    ", field.Prefix)

	withModifiers := field.WithModifiers(tree.NewModifiers("", "private", "final"))
	moved = tree.WithLeadingPrefix(withModifiers, "\n\t")
	assert.Equal(t, "\n\t", moved.Modifiers[0].Prefix)
	assert.Equal(t, " ", moved.Modifiers[1].Prefix)
	assert.True(t, moved.HasModifier("final"))
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	access := tree.NewFieldAccess("",
		tree.NewFieldAccess("", tree.NewIdentifier("", "a", nil), tree.NewIdentifier("", "Mode", nil), nil),
		tree.NewIdentifier("", "ON_PARAM", nil), nil)

	name, ok := tree.QualifiedName(access)
	require.True(t, ok)
	assert.Equal(t, "a.Mode.ON_PARAM", name)

	_, ok = tree.QualifiedName(tree.NewLiteral("", 1, "1", tree.PrimitiveInt))
	assert.False(t, ok)
}

func TestIsNilTypedPointer(t *testing.T) {
	t.Parallel()

	var block *tree.Block

	assert.True(t, tree.IsNil(block))
	assert.True(t, tree.IsNil(nil))
	assert.False(t, tree.IsNil(tree.NewBlock("", nil, "")))
	assert.Empty(t, tree.PrefixOf(block))
}
