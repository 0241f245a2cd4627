package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/codemod/pkg/config"
	"github.com/Sumatoshi-tech/codemod/pkg/observability"
	"github.com/Sumatoshi-tech/codemod/pkg/printer"
	"github.com/Sumatoshi-tech/codemod/pkg/recipes"
	"github.com/Sumatoshi-tech/codemod/pkg/rewrite"
	"github.com/Sumatoshi-tech/codemod/pkg/search"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
	"github.com/Sumatoshi-tech/codemod/pkg/treeio"
)

var (
	// ErrNoRecipesSelected is returned when neither --recipe nor the config
	// selects a recipe.
	ErrNoRecipesSelected = errors.New("no recipes selected. Use --recipe, e.g.: --recipe spring.ConstructorInjection")
	// ErrUnitsFailed is returned when at least one unit failed to rewrite.
	ErrUnitsFailed = errors.New("some units failed")
)

const (
	runRecipeName  = "codemod.run"
	emitDirPerm    = 0o750
	emitFilePerm   = 0o600
	flagWorkers    = "workers"
	batchSpanName  = "codemod.batch"
	attrBatchUnits = "batch.units"
	attrBatchWork  = "batch.workers"
)

// RunCommand holds the flags of the run command.
type RunCommand struct {
	global *GlobalOptions

	recipes     []string
	sets        []string
	workers     int
	write       bool
	emitSource  string
	diff        bool
	metricsFile string
	noColor     bool
}

// input is one tree document selected for the batch.
type input struct {
	path       string
	sourcePath string
	unit       *tree.CompilationUnit
}

// runSummary counts batch outcomes.
type runSummary struct {
	units     int
	changed   int
	failed    int
	skipped   int
	written   uint64
	emitted   uint64
	startedAt time.Time
}

// NewRunCommand creates the run command.
func NewRunCommand(global *GlobalOptions) *cobra.Command {
	rc := &RunCommand{global: global}

	cmd := &cobra.Command{
		Use:   "run <tree-document>...",
		Short: "Apply recipes to tree documents",
		Long: `Apply the selected recipes, in order, to every tree document.

Examples:
  codemod run --recipe spring.ConstructorInjection --diff src/**/*.java.json
  codemod run --recipe 'spring.*' --set generateNonNullAnnotations=true --write Foo.java.yaml
  codemod run --recipe java.RenameConstant \
    --set declaringType=a.Mode --set renames.OLD=NEW --emit-source out/ Foo.java.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringArrayVarP(&rc.recipes, "recipe", "r", nil, "Recipe name or glob pattern (repeatable; default: recipes from config)")
	cmd.Flags().StringArrayVar(&rc.sets, "set", nil, "Recipe option as [recipe:]key=value; key.sub=value fills a map option (repeatable)")
	cmd.Flags().IntVar(&rc.workers, flagWorkers, 0, "Number of units rewritten in parallel (0 = unbounded)")
	cmd.Flags().BoolVarP(&rc.write, "write", "w", false, "Write rewritten trees back to their documents")
	cmd.Flags().StringVar(&rc.emitSource, "emit-source", "", "Directory receiving the printed source of every processed unit")
	cmd.Flags().BoolVar(&rc.diff, "diff", false, "Print a unified diff of every changed unit")
	cmd.Flags().StringVar(&rc.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, files []string) error {
	ctx := cmd.Context()

	if rc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := config.LoadConfig(rc.global.ConfigPath)
	if err != nil {
		return err
	}

	providers, err := observability.Init(ctx, observabilityConfig(cfg, rc.global), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	defer func() {
		shutdownErr := providers.Shutdown(context.WithoutCancel(ctx))
		if shutdownErr != nil {
			providers.Logger.WarnContext(ctx, "observability shutdown failed", "error", shutdownErr)
		}
	}()

	recipe, err := rc.buildRecipe(recipes.Default(), cfg)
	if err != nil {
		return err
	}

	metricsPath := rc.metricsFile
	if metricsPath == "" {
		metricsPath = cfg.Observability.MetricsFile
	}

	recorder, textfile, err := newRecorder(providers, metricsPath)
	if err != nil {
		return err
	}

	workers := cfg.Run.Workers
	if cmd.Flags().Changed(flagWorkers) {
		workers = rc.workers
	}

	summary := &runSummary{startedAt: time.Now()}

	inputs, err := loadInputs(ctx, providers, files, cfg.Run.SkipVendored, summary)
	if err != nil {
		return err
	}

	engine := rewrite.NewEngine(
		rewrite.WithLogger(providers.Logger),
		rewrite.WithTracer(providers.Tracer),
		rewrite.WithMetrics(recorder),
		rewrite.WithMaxChainDepth(cfg.Run.MaxChainDepth),
	)

	units := make([]*tree.CompilationUnit, len(inputs))
	for idx, in := range inputs {
		units[idx] = in.unit
	}

	batchCtx, span := providers.Tracer.Start(ctx, batchSpanName, trace.WithAttributes(
		attribute.Int(attrBatchUnits, len(units)),
		attribute.Int(attrBatchWork, workers),
	))

	results, runErr := engine.RunBatch(batchCtx, recipe, units, workers)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}

	span.End()

	err = rc.report(cmd, inputs, results, summary)
	if err != nil {
		return err
	}

	if textfile != nil {
		err = errors.Join(textfile.WriteFile(metricsPath), textfile.Shutdown(ctx))
		if err != nil {
			return err
		}
	}

	writeSummary(summaryWriter(cmd, rc.global), summary, rc.emitSource)

	if runErr != nil {
		return runErr
	}

	if summary.failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrUnitsFailed, summary.failed, summary.units)
	}

	return nil
}

// buildRecipe selects recipes from flags, falling back to the config, and
// groups several under one composite.
func (rc *RunCommand) buildRecipe(registry *recipes.Registry, cfg *config.Config) (rewrite.Recipe, error) {
	patterns := rc.recipes
	if len(patterns) == 0 {
		patterns = cfg.RecipeNames()
	}

	if len(patterns) == 0 {
		return nil, ErrNoRecipesSelected
	}

	selected, err := registry.ExpandPatterns(patterns)
	if err != nil {
		return nil, err
	}

	options, err := mergeSets(registry, selected, cfg.RecipeOptions(), rc.sets)
	if err != nil {
		return nil, err
	}

	built, err := registry.BuildAll(selected, options)
	if err != nil {
		return nil, err
	}

	if len(built) == 1 {
		return built[0], nil
	}

	return rewrite.NewComposite(runRecipeName, "Recipes selected for this run: "+strings.Join(selected, ", "), built...), nil
}

// newRecorder returns the run recorder and, when path is set, the textfile
// exporter backing it.
func newRecorder(providers observability.Providers, path string) (*observability.RecipeMetrics, *observability.PrometheusTextfile, error) {
	if path == "" {
		recorder, err := observability.NewRecipeMetrics(providers.Meter)

		return recorder, nil, err
	}

	textfile, err := observability.NewPrometheusTextfile()
	if err != nil {
		return nil, nil, err
	}

	recorder, err := observability.NewRecipeMetrics(textfile.Meter())
	if err != nil {
		return nil, nil, err
	}

	return recorder, textfile, nil
}

func loadInputs(
	ctx context.Context, providers observability.Providers, files []string, skipVendored bool, summary *runSummary,
) ([]input, error) {
	inputs := make([]input, 0, len(files))

	for _, path := range files {
		cu, err := treeio.ReadFile(path)
		if err != nil {
			return nil, err
		}

		sourcePath := cu.SourcePath
		if sourcePath == "" {
			sourcePath = treeio.SourcePathFor(path)
		}

		if skipVendored && search.IsVendored(sourcePath) {
			providers.Logger.DebugContext(ctx, "skipping vendored unit", "source", sourcePath)

			summary.skipped++

			continue
		}

		// Built-in recipes target Java; units enry names as another
		// language are not handed to them.
		if language := search.Language(sourcePath); language != "" && language != search.LanguageJava {
			providers.Logger.DebugContext(ctx, "skipping non-Java unit", "source", sourcePath, "language", language)

			summary.skipped++

			continue
		}

		inputs = append(inputs, input{path: path, sourcePath: sourcePath, unit: cu})
	}

	return inputs, nil
}

// report prints diffs and failures and performs --write and --emit-source.
func (rc *RunCommand) report(cmd *cobra.Command, inputs []input, results []*rewrite.Result, summary *runSummary) error {
	out := cmd.OutOrStdout()
	failure := color.New(color.FgRed)

	for idx, result := range results {
		in := inputs[idx]
		summary.units++

		if result.Err != nil {
			summary.failed++

			failure.Fprintf(out, "FAIL %s: %v\n", in.sourcePath, result.Err)

			continue
		}

		if result.Changed {
			summary.changed++

			err := rc.writeChanged(out, in, result, summary)
			if err != nil {
				return err
			}
		}

		if rc.emitSource != "" {
			size, err := emitSource(rc.emitSource, in.sourcePath, result.After)
			if err != nil {
				return err
			}

			summary.emitted += size
		}
	}

	return nil
}

func (rc *RunCommand) writeChanged(out io.Writer, in input, result *rewrite.Result, summary *runSummary) error {
	if rc.diff {
		writeColoredDiff(out, printer.UnifiedDiff(in.sourcePath, printer.Print(result.Before), printer.Print(result.After)))
	}

	if !rc.write {
		return nil
	}

	err := treeio.WriteFile(in.path, result.After)
	if err != nil {
		return fmt.Errorf("write %s: %w", in.path, err)
	}

	info, err := os.Stat(in.path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", in.path, err)
	}

	summary.written += uint64(info.Size()) //nolint:gosec // File sizes are never negative.

	return nil
}

// emitSource writes the printed unit under dir, keeping its source path
// when that path is local.
func emitSource(dir, sourcePath string, cu *tree.CompilationUnit) (uint64, error) {
	rel := filepath.FromSlash(sourcePath)
	if !filepath.IsLocal(rel) {
		rel = filepath.Base(rel)
	}

	target := filepath.Join(dir, rel)

	err := os.MkdirAll(filepath.Dir(target), emitDirPerm)
	if err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	text := printer.Print(cu)

	err = os.WriteFile(target, []byte(text), emitFilePerm)
	if err != nil {
		return 0, fmt.Errorf("emit source %s: %w", target, err)
	}

	return uint64(len(text)), nil
}

func writeColoredDiff(w io.Writer, diff string) {
	header := color.New(color.Bold)
	hunk := color.New(color.FgCyan)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case line == "":
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			header.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			hunk.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			added.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			removed.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

func writeSummary(w io.Writer, summary *runSummary, emitDir string) {
	fmt.Fprintf(w, "%d %s: %d changed, %d failed, %d skipped (%s)\n",
		summary.units, plural(summary.units, "unit", "units"),
		summary.changed, summary.failed, summary.skipped,
		time.Since(summary.startedAt).Round(time.Millisecond))

	if summary.written > 0 {
		fmt.Fprintf(w, "wrote %s of tree documents\n", humanize.Bytes(summary.written))
	}

	if summary.emitted > 0 {
		fmt.Fprintf(w, "emitted %s of source to %s\n", humanize.Bytes(summary.emitted), emitDir)
	}
}

func plural(count int, one, many string) string {
	if count == 1 {
		return one
	}

	return many
}
