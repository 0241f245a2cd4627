package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/internal/treetest"
	"github.com/Sumatoshi-tech/codemod/pkg/printer"
	"github.com/Sumatoshi-tech/codemod/pkg/recipes"
	"github.com/Sumatoshi-tech/codemod/pkg/recipes/spring"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/treeio"
)

const stacktrace = "org.springframework.boot.autoconfigure.web.ErrorProperties.IncludeStacktrace"

func source(text string) string {
	return strings.TrimPrefix(dedent.Dedent(text), "\n")
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())

	return out.String(), err
}

// writeConfig writes a config file into a fresh directory.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".codemod.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dedent.Dedent(content)), 0o600))

	return path
}

func writeUnit(t *testing.T, name string, cu *tree.CompilationUnit) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, treeio.WriteFile(path, cu))

	return path
}

func injectedFoo(sourcePath string, members ...tree.Statement) *tree.CompilationUnit {
	cu := treetest.Unit("a", []string{spring.InjectFQN},
		treetest.Class("a.Foo", append([]tree.Statement{
			treetest.Field("private", "a.Bar", "bar", treetest.Annotation(spring.InjectFQN)),
		}, members...)...))
	cu.SourcePath = sourcePath

	return cu
}

func readSource(t *testing.T, path string) string {
	t.Helper()

	cu, err := treeio.ReadFile(path)
	require.NoError(t, err)

	return printer.Print(cu)
}

var injectedSource = source(`
	package a;

	import javax.inject.Inject;

	public class Foo {
	    @Inject
	    private Bar bar;
	}
`)

var constructorSource = source(`
	package a;

	public class Foo {
	    private final Bar bar;

	    public Foo(Bar bar) {
	        this.bar = bar;
	    }
	}
`)

func TestRunWritesRewrittenDocument(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.json", injectedFoo("src/a/Foo.java"))
	require.Equal(t, injectedSource, readSource(t, doc))

	out, err := execute(t, "--config", writeConfig(t, ""), "run", "--recipe", "spring.ConstructorInjection", "--write", doc)
	require.NoError(t, err)

	assert.Contains(t, out, "1 unit: 1 changed, 0 failed, 0 skipped")
	assert.Contains(t, out, "wrote ")
	assert.Equal(t, constructorSource, readSource(t, doc))
}

func TestRunDiffAndEmitSource(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.yaml.lz4", injectedFoo("src/a/Foo.java"))
	emitDir := t.TempDir()

	out, err := execute(t, "--config", writeConfig(t, ""),
		"run", "-r", "spring.ConstructorInjection", "--diff", "--emit-source", emitDir, doc)
	require.NoError(t, err)

	assert.Contains(t, out, "--- a/src/a/Foo.java")
	assert.Contains(t, out, "-import javax.inject.Inject;")
	assert.Contains(t, out, "+    private final Bar bar;")
	assert.Contains(t, out, "+    public Foo(Bar bar) {")
	assert.Contains(t, out, "emitted ")

	emitted, err := os.ReadFile(filepath.Join(emitDir, "src", "a", "Foo.java"))
	require.NoError(t, err)
	assert.Equal(t, constructorSource, string(emitted))

	// Without --write the document is untouched.
	assert.Equal(t, injectedSource, readSource(t, doc))
}

func TestRunOptionsFromConfigAndFlags(t *testing.T) {
	t.Parallel()

	fromConfig := writeConfig(t, `
		recipes:
		  - name: spring.ConstructorInjection
		    options:
		      generateNonNullAnnotations: true
	`)

	tests := []struct {
		name string
		args []string
	}{
		{name: "config", args: []string{"--config", fromConfig, "run"}},
		{name: "unscoped set", args: []string{"--config", writeConfig(t, ""), "run", "-r", "spring.*", "--set", "generateNonNullAnnotations=true"}},
		{
			name: "scoped set",
			args: []string{
				"--config", writeConfig(t, ""), "run", "-r", "spring.ConstructorInjection",
				"--set", "spring.ConstructorInjection:generateNonNullAnnotations=true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := writeUnit(t, "Foo.java.msgpack", injectedFoo("src/a/Foo.java"))

			_, err := execute(t, append(tt.args, "--write", doc)...)
			require.NoError(t, err)

			printed := readSource(t, doc)
			assert.Contains(t, printed, "import javax.annotation.Nonnull;")
			assert.Contains(t, printed, "    @Nonnull\n    private final Bar bar;")
		})
	}
}

func TestRunRenameConstantWithSets(t *testing.T) {
	t.Parallel()

	cu := treetest.Unit("a", []string{stacktrace}, treetest.Class("a.Foo",
		treetest.Method("void", "mode", treetest.Return(treetest.Const("IncludeStacktrace", stacktrace, "ON_TRACE_PARAM"))),
	))
	doc := writeUnit(t, "Foo.java.json", cu)

	_, err := execute(t, "--config", writeConfig(t, ""), "run", "-r", "java.RenameConstant",
		"--set", "declaringType="+stacktrace, "--set", "renames.ON_TRACE_PARAM=ON_PARAM", "--write", doc)
	require.NoError(t, err)

	assert.Contains(t, readSource(t, doc), "return IncludeStacktrace.ON_PARAM;")
}

func TestRunConfigRenamePairs(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `
		recipes:
		  - name: java.RenameConstant
		    options:
		      declaringType: `+stacktrace+`
		      renames: ["ON_TRACE_PARAM=ON_PARAM"]
	`)

	cu := treetest.Unit("a", []string{stacktrace}, treetest.Class("a.Foo",
		treetest.Method("void", "mode", treetest.Return(treetest.Const("IncludeStacktrace", stacktrace, "ON_TRACE_PARAM"))),
	))
	doc := writeUnit(t, "Foo.java.json", cu)

	_, err := execute(t, "--config", cfg, "run", "--write", doc)
	require.NoError(t, err)

	assert.Contains(t, readSource(t, doc), "return IncludeStacktrace.ON_PARAM;")
}

func TestRunSkipsVendoredUnits(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.json", injectedFoo("vendor/a/Foo.java"))

	out, err := execute(t, "--config", writeConfig(t, ""), "run", "-r", "spring.ConstructorInjection", "--write", doc)
	require.NoError(t, err)

	assert.Contains(t, out, "0 units: 0 changed, 0 failed, 1 skipped")
	assert.Equal(t, injectedSource, readSource(t, doc))
}

func TestRunSkipsOtherLanguages(t *testing.T) {
	t.Parallel()

	python := writeUnit(t, "foo.py.json", injectedFoo("src/a/foo.py"))
	unknown := writeUnit(t, "Foo.json", injectedFoo("src/a/Foo.java.orig"))

	out, err := execute(t, "--config", writeConfig(t, ""), "run", "-r", "spring.ConstructorInjection", "--write", python, unknown)
	require.NoError(t, err)

	assert.Contains(t, out, "1 unit: 1 changed, 0 failed, 1 skipped")
	assert.Equal(t, injectedSource, readSource(t, python))
	assert.NotEqual(t, injectedSource, readSource(t, unknown))
}

func TestRunReportsFailedUnits(t *testing.T) {
	t.Parallel()

	broken := &tree.MethodDecl{
		Meta:        tree.Meta{ID: tree.NewID()},
		Modifiers:   tree.NewModifiers("", "public"),
		Name:        tree.NewIdentifier(" ", "Foo", nil),
		Params:      []tree.Statement{tree.NewLiteral("", 1, "1", tree.PrimitiveInt)},
		Body:        tree.NewBlock(" ", nil, "\n    "),
		Constructor: true,
	}
	failing := writeUnit(t, "Foo.java.json", injectedFoo("src/a/Foo.java", broken))
	passing := writeUnit(t, "Bar.java.json", injectedFoo("src/a/Bar.java"))

	out, err := execute(t, "--config", writeConfig(t, ""), "run", "-r", "spring.ConstructorInjection", "--write", failing, passing)
	require.ErrorIs(t, err, ErrUnitsFailed)

	assert.Contains(t, out, "FAIL src/a/Foo.java")
	assert.Contains(t, out, "2 units: 1 changed, 1 failed, 0 skipped")
	assert.Equal(t, constructorSource, readSource(t, passing))
}

func TestRunQuietSuppressesSummary(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.json", injectedFoo("src/a/Foo.java"))

	out, err := execute(t, "--config", writeConfig(t, ""), "--quiet", "run", "-r", "spring.ConstructorInjection", doc)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunMetricsFile(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.json", injectedFoo("src/a/Foo.java"))
	metrics := filepath.Join(t.TempDir(), "codemod.prom")

	_, err := execute(t, "--config", writeConfig(t, ""), "run", "-r", "spring.ConstructorInjection",
		"--workers", "2", "--metrics-file", metrics, doc)
	require.NoError(t, err)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Regexp(t, `codemod[._]recipe[._]runs`, string(data))
	assert.Contains(t, string(data), `recipe="spring.ConstructorInjection"`)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.json", injectedFoo("src/a/Foo.java"))

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "no recipe", args: []string{"run", doc}, want: ErrNoRecipesSelected},
		{name: "unknown recipe", args: []string{"run", "-r", "kotlin.Nope", doc}, want: recipes.ErrUnknownRecipe},
		{name: "malformed set", args: []string{"run", "-r", "spring.*", "--set", "novalue", doc}, want: ErrInvalidSet},
		{name: "unclaimed set", args: []string{"run", "-r", "spring.*", "--set", "nope=1", doc}, want: ErrUnclaimedSet},
		{name: "set for unselected recipe", args: []string{"run", "-r", "spring.ConstructorInjection", "--set", "java.RenameConstant:renames.A=B", doc}, want: ErrUnclaimedSet},
		{name: "bad option", args: []string{"run", "-r", "spring.ConstructorInjection", "--set", "spring.ConstructorInjection:generateMarkerAnnotation=maybe", doc}, want: recipes.ErrInvalidOptions},
		{name: "unsupported input", args: []string{"run", "-r", "spring.*", "Foo.java"}, want: treeio.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, append([]string{"--config", writeConfig(t, "")}, tt.args...)...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecipesCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "recipes")
	require.NoError(t, err)

	for _, descriptor := range recipes.Default().All() {
		assert.Contains(t, out, descriptor.Name)
	}

	assert.Contains(t, out, "generateNonNullAnnotations")

	markdown, err := execute(t, "recipes", "--markdown")
	require.NoError(t, err)
	assert.Contains(t, markdown, "| spring.ConstructorInjection |")
}

func TestPrintCommand(t *testing.T) {
	t.Parallel()

	doc := writeUnit(t, "Foo.java.json", injectedFoo("src/a/Foo.java"))

	out, err := execute(t, "print", doc)
	require.NoError(t, err)
	assert.Equal(t, injectedSource, out)

	outline, err := execute(t, "print", "--outline", doc)
	require.NoError(t, err)
	assert.Contains(t, outline, "CompilationUnit src/a/Foo.java")
	assert.Contains(t, outline, "ClassDecl class Foo")
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()

	valid := writeUnit(t, "Foo.java.yaml", injectedFoo("src/a/Foo.java"))

	out, err := execute(t, "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	invalid := filepath.Join(t.TempDir(), "Bad.java.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"kind": "Bogus", "id": "x"}`), 0o600))

	out, err = execute(t, "validate", invalid)
	require.ErrorIs(t, err, treeio.ErrInvalidDocument)
	assert.Contains(t, out, "is invalid")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "codemod "))
}
