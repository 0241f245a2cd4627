package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/pkg/recipes"
)

func TestParseSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want optionSet
	}{
		{raw: "generateMarkerAnnotation=true", want: optionSet{key: "generateMarkerAnnotation", value: "true"}},
		{raw: " key = value ", want: optionSet{key: "key", value: "value"}},
		{raw: "renames.OLD=NEW", want: optionSet{key: "renames", nested: "OLD", value: "NEW"}},
		{
			raw:  "java.RenameConstant:renames.OLD=NEW",
			want: optionSet{recipe: "java.RenameConstant", key: "renames", nested: "OLD", value: "NEW"},
		},
		{raw: "declaringType=a.b=c", want: optionSet{key: "declaringType", value: "a.b=c"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			got, err := parseSet(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSetErrors(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"novalue", "=value", ":key=value", "recipe:=value"} {
		_, err := parseSet(raw)
		require.ErrorIs(t, err, ErrInvalidSet, raw)
	}
}

func TestMergeSets(t *testing.T) {
	t.Parallel()

	registry := recipes.Default()
	selected := []string{"spring.ConstructorInjection", "java.RenameConstant"}
	base := map[string]map[string]any{
		"spring.ConstructorInjection": {"generatenonnullannotations": false},
		"java.RenameConstant":         {"renames": map[string]any{"A": "B"}},
	}

	merged, err := mergeSets(registry, selected, base, []string{
		"generateNonNullAnnotations=true",
		"renames.C=D",
		"java.RenameConstant:declaringType=a.Mode",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"generateNonNullAnnotations": "true"}, merged["spring.ConstructorInjection"])
	assert.Equal(t, map[string]any{
		"renames":       map[string]any{"A": "B", "C": "D"},
		"declaringType": "a.Mode",
	}, merged["java.RenameConstant"])

	// The base options are not modified.
	assert.Equal(t, false, base["spring.ConstructorInjection"]["generatenonnullannotations"])
	assert.Equal(t, map[string]any{"A": "B"}, base["java.RenameConstant"]["renames"])
}
