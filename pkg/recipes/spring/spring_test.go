package spring_test

import (
	"context"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/internal/treetest"
	"github.com/Sumatoshi-tech/codemod/pkg/printer"
	"github.com/Sumatoshi-tech/codemod/pkg/recipes/spring"
	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

func source(text string) string {
	return strings.TrimPrefix(dedent.Dedent(text), "\n")
}

func run(t *testing.T, recipe rewrite.Recipe, cu *tree.CompilationUnit) *rewrite.Result {
	t.Helper()

	result, err := rewrite.NewEngine().Run(context.Background(), recipe, cu)
	require.NoError(t, err)

	return result
}

func injectedFoo(members ...tree.Statement) *tree.CompilationUnit {
	return treetest.Unit("a", []string{spring.InjectFQN},
		treetest.Class("a.Foo", append([]tree.Statement{
			treetest.Field("private", "a.Bar", "bar", treetest.Annotation(spring.InjectFQN)),
		}, members...)...))
}

func TestConstructorInjectionGeneratesConstructor(t *testing.T) {
	t.Parallel()

	result := run(t, &spring.ConstructorInjection{}, injectedFoo())

	want := source(`
		package a;

		public class Foo {
		    private final Bar bar;

		    public Foo(Bar bar) {
		        this.bar = bar;
		    }
		}
	`)
	assert.True(t, result.Changed)
	assert.Equal(t, want, printer.Print(result.After))
	assert.Equal(t, []string{"spring.ConstructorInjection", "java.GenerateConstructorUsingFields"}, result.Applied)

	again := run(t, &spring.ConstructorInjection{}, result.After)
	assert.False(t, again.Changed)
}

func TestConstructorInjectionNonNull(t *testing.T) {
	t.Parallel()

	result := run(t, &spring.ConstructorInjection{GenerateNonNullAnnotations: true}, injectedFoo())

	want := source(`
		package a;

		import javax.annotation.Nonnull;

		public class Foo {
		    @Nonnull
		    private final Bar bar;

		    public Foo(Bar bar) {
		        this.bar = bar;
		    }
		}
	`)
	assert.Equal(t, want, printer.Print(result.After))
}

func TestConstructorInjectionOptionalDependency(t *testing.T) {
	t.Parallel()

	cu := treetest.Unit("a", []string{spring.AutowiredFQN},
		treetest.Class("a.Foo",
			treetest.Field("", "a.Baz", "baz", treetest.Annotation(spring.AutowiredFQN, treetest.Required(false))),
		))

	result := run(t, &spring.ConstructorInjection{GenerateNonNullAnnotations: true}, cu)

	want := source(`
		package a;

		public class Foo {
		    private final Baz baz;

		    public Foo(Baz baz) {
		        this.baz = baz;
		    }
		}
	`)
	assert.Equal(t, want, printer.Print(result.After))
}

func TestConstructorInjectionMarkerAnnotation(t *testing.T) {
	t.Parallel()

	result := run(t, &spring.ConstructorInjection{GenerateMarkerAnnotation: true}, injectedFoo())

	want := source(`
		package a;

		import lombok.RequiredArgsConstructor;

		@RequiredArgsConstructor
		public class Foo {
		    private final Bar bar;
		}
	`)
	assert.Equal(t, want, printer.Print(result.After))
}

func TestConstructorInjectionRemovesSetters(t *testing.T) {
	t.Parallel()

	cu := injectedFoo(
		treetest.Field("private", "a.Qux", "qux"),
		treetest.Setter("a.Bar", "bar"),
		treetest.Setter("a.Qux", "qux"),
	)

	result := run(t, &spring.ConstructorInjection{}, cu)

	want := source(`
		package a;

		public class Foo {
		    private final Bar bar;
		    private Qux qux;

		    public Foo(Bar bar) {
		        this.bar = bar;
		    }

		    public void setQux(Qux qux) {
		        this.qux = qux;
		    }
		}
	`)
	assert.Equal(t, want, printer.Print(result.After))
}

func TestConstructorInjectionKeepsExistingConstructor(t *testing.T) {
	t.Parallel()

	cu := injectedFoo(treetest.Constructor("Foo", treetest.Param{TypeFQN: "a.Bar", Name: "bar"}))

	result := run(t, &spring.ConstructorInjection{GenerateMarkerAnnotation: true}, cu)

	printed := printer.Print(result.After)
	assert.Equal(t, []string{"spring.ConstructorInjection"}, result.Applied)
	assert.Equal(t, 1, strings.Count(printed, "public Foo("))
	assert.NotContains(t, printed, "RequiredArgsConstructor")
	assert.Contains(t, printed, "private final Bar bar;")
}

func TestConstructorInjectionExistingConstructorInAnyOrder(t *testing.T) {
	t.Parallel()

	fields := func(members ...tree.Statement) *tree.CompilationUnit {
		return treetest.Unit("a", []string{spring.InjectFQN},
			treetest.Class("a.Foo", append([]tree.Statement{
				treetest.Field("private", "a.Bar", "bar", treetest.Annotation(spring.InjectFQN)),
				treetest.Field("private", "a.Baz", "baz", treetest.Annotation(spring.InjectFQN)),
			}, members...)...))
	}

	reordered := fields(treetest.Constructor("Foo",
		treetest.Param{TypeFQN: "a.Baz", Name: "baz"}, treetest.Param{TypeFQN: "a.Bar", Name: "bar"}))

	result := run(t, &spring.ConstructorInjection{}, reordered)

	assert.Equal(t, []string{"spring.ConstructorInjection"}, result.Applied)
	assert.Equal(t, 1, strings.Count(printer.Print(result.After), "public Foo("))

	partial := fields(treetest.Constructor("Foo", treetest.Param{TypeFQN: "a.Baz", Name: "baz"}))

	result = run(t, &spring.ConstructorInjection{}, partial)

	assert.Equal(t, []string{"spring.ConstructorInjection", "java.GenerateConstructorUsingFields"}, result.Applied)
	assert.Equal(t, 2, strings.Count(printer.Print(result.After), "public Foo("))
}

func TestConstructorInjectionLeavesOtherClassesAlone(t *testing.T) {
	t.Parallel()

	cu := treetest.Unit("a", []string{spring.InjectFQN},
		treetest.Class("a.Foo",
			treetest.Field("private", "a.Bar", "bar", treetest.Annotation(spring.InjectFQN)),
		),
		treetest.Class("a.Plain",
			treetest.Field("private", "a.Bar", "bar"),
		))

	result := run(t, &spring.ConstructorInjection{}, cu)

	assert.Same(t, cu.Classes[1], result.After.Classes[1])
}

func TestConstructorInjectionNotApplicable(t *testing.T) {
	t.Parallel()

	cu := treetest.Unit("a", nil, treetest.Class("a.Foo", treetest.Field("private", "a.Bar", "bar")))

	result := run(t, &spring.ConstructorInjection{}, cu)

	assert.False(t, result.Changed)
	assert.Same(t, cu, result.After)
}

func TestConstructorInjectionIgnoresSourcePath(t *testing.T) {
	t.Parallel()

	for _, sourcePath := range []string{"", "Foo.java", "src/Foo", "Foo.java.orig", "Foo.jav", "Foo.py"} {
		t.Run(sourcePath, func(t *testing.T) {
			t.Parallel()

			cu := injectedFoo()
			cu.SourcePath = sourcePath

			result := run(t, &spring.ConstructorInjection{}, cu)

			assert.True(t, result.Changed)
			assert.Contains(t, printer.Print(result.After), "private final Bar bar;")
		})
	}
}

func TestConstructorInjectionRejectsMalformedConstructor(t *testing.T) {
	t.Parallel()

	broken := &tree.MethodDecl{
		Meta:        tree.Meta{ID: tree.NewID()},
		Modifiers:   tree.NewModifiers("", "public"),
		Name:        tree.NewIdentifier(" ", "Foo", nil),
		Params:      []tree.Statement{tree.NewLiteral("", 1, "1", tree.PrimitiveInt)},
		Body:        tree.NewBlock(" ", nil, "\n    "),
		Constructor: true,
	}
	cu := injectedFoo(broken)

	result, err := rewrite.NewEngine().Run(context.Background(), &spring.ConstructorInjection{}, cu)

	require.ErrorIs(t, err, rewrite.ErrInvariantViolation)
	assert.Same(t, cu, result.After)
	assert.False(t, result.Changed)
}

func TestMigrateIncludeStackTraceConstants(t *testing.T) {
	t.Parallel()

	cu := treetest.Unit("a", []string{"org.springframework.boot.autoconfigure.web.ErrorProperties"},
		treetest.Class("a.Foo",
			treetest.Method("void", "mode",
				treetest.Return(treetest.Const("ErrorProperties.IncludeStacktrace", spring.IncludeStacktraceFQN, "ON_TRACE_PARAM"))),
		))

	recipe := spring.NewMigrateErrorPropertiesIncludeStackTraceConstants()
	result := run(t, recipe, cu)

	want := source(`
		package a;

		import org.springframework.boot.autoconfigure.web.ErrorProperties;

		public class Foo {
		    public void mode() {
		        return ErrorProperties.IncludeStacktrace.ON_PARAM;
		    }
		}
	`)
	assert.Equal(t, "spring.boot2.MigrateErrorPropertiesIncludeStackTraceConstants", recipe.Name())
	assert.Equal(t, want, printer.Print(result.After))
}

func TestMigrateIncludeStackTraceConstantsSkipsDeclaringType(t *testing.T) {
	t.Parallel()

	cu := treetest.Unit("org.springframework.boot.autoconfigure.web", nil,
		treetest.Class(spring.IncludeStacktraceFQN,
			treetest.Method("void", "mode",
				treetest.Return(treetest.Const("IncludeStacktrace", spring.IncludeStacktraceFQN, "ON_TRACE_PARAM"))),
		))

	result := run(t, spring.NewMigrateErrorPropertiesIncludeStackTraceConstants(), cu)

	assert.False(t, result.Changed)
	assert.Contains(t, printer.Print(result.After), "IncludeStacktrace.ON_TRACE_PARAM")
}
