package typeutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/typeutil"
)

const injectFQN = "javax.inject.Inject"

func TestIsOfType(t *testing.T) {
	t.Parallel()

	var nilClass *tree.Class

	tests := []struct {
		name string
		ref  tree.JavaType
		fqcn string
		want bool
	}{
		{name: "exact class", ref: tree.BuildClass(injectFQN), fqcn: injectFQN, want: true},
		{name: "other class", ref: tree.BuildClass("javax.inject.Named"), fqcn: injectFQN, want: false},
		{name: "nil", ref: nil, fqcn: injectFQN, want: false},
		{name: "typed nil", ref: nilClass, fqcn: injectFQN, want: false},
		{
			name: "generic arguments ignored",
			ref:  &tree.Class{FQN: "java.util.List", TypeParameters: []tree.JavaType{tree.BuildClass("java.lang.String")}},
			fqcn: "java.util.List",
			want: true,
		},
		{name: "nested separator not normalized", ref: tree.BuildClass("a.Outer$Inner"), fqcn: "a.Outer.Inner", want: false},
		{name: "primitive", ref: tree.PrimitiveInt, fqcn: "int", want: true},
		{
			name: "field by declared type",
			ref:  &tree.Variable{Name: "x", Owner: tree.BuildClass("a.B"), Type: tree.BuildClass("a.C")},
			fqcn: "a.C",
			want: true,
		},
		{name: "empty fqcn", ref: tree.BuildClass(injectFQN), fqcn: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, typeutil.IsOfType(tt.ref, tt.fqcn))
		})
	}
}

func TestIsAnyOf(t *testing.T) {
	t.Parallel()

	match, ok := typeutil.IsAnyOf(tree.BuildClass("b.Autowired"), "a.Inject", "b.Autowired")
	assert.True(t, ok)
	assert.Equal(t, "b.Autowired", match)

	_, ok = typeutil.IsAnyOf(nil, "a.Inject")
	assert.False(t, ok)
}

func TestSameType(t *testing.T) {
	t.Parallel()

	assert.True(t, typeutil.SameType(tree.BuildClass("a.B"), tree.BuildClass("a.B")))
	assert.False(t, typeutil.SameType(tree.BuildClass("a.B"), tree.PrimitiveInt))
	assert.False(t, typeutil.SameType(nil, nil))
	assert.True(t, typeutil.SameType(tree.PrimitiveBoolean, tree.PrimitiveBoolean))
}

func TestFieldOwnerIs(t *testing.T) {
	t.Parallel()

	field := &tree.Variable{Name: "ON_TRACE_PARAM", Owner: tree.BuildClass("a.Props.Mode")}

	assert.True(t, typeutil.FieldOwnerIs(field, "a.Props.Mode"))
	assert.False(t, typeutil.FieldOwnerIs(field, "a.Props"))
	assert.False(t, typeutil.FieldOwnerIs(nil, "a.Props.Mode"))
	assert.False(t, typeutil.FieldOwnerIs(&tree.Variable{Name: "X"}, "a.Props.Mode"))
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	class := tree.BuildClass("a.B")

	assert.Equal(t, class, typeutil.TypeOf(tree.NewIdentifier("", "B", class)))
	assert.Nil(t, typeutil.TypeOf(tree.NewModifier("", "final")))

	var ident *tree.Identifier

	assert.Nil(t, typeutil.TypeOf(ident))
}
