// Package rewrite is the recipe engine: it drives visitors over immutable
// trees, applies their deferred import edits and chains follow-up recipes
// until the work list drains.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/codemod/pkg/printer"
	"github.com/Sumatoshi-tech/codemod/pkg/tree"
)

const tracerName = "codemod/rewrite"

// RunRecorder receives one observation per finished run.
type RunRecorder interface {
	RecordRun(ctx context.Context, recipe string, changed bool, err error, duration time.Duration)
}

// Result is the outcome of running a recipe over one compilation unit.
type Result struct {
	SourcePath string
	Before     *tree.CompilationUnit
	// After is the rewritten unit; it equals Before when nothing changed or
	// the run failed.
	After   *tree.CompilationUnit
	Changed bool
	// Applied lists, in order, the recipes whose pass changed the unit.
	Applied []string
	Err     error
}

// Engine runs recipes. It is safe for concurrent use.
type Engine struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	metrics       RunRecorder
	maxChainDepth int
}

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithTracer sets the tracer used for run spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// WithMetrics sets the recorder notified after each run.
func WithMetrics(recorder RunRecorder) Option {
	return func(e *Engine) {
		e.metrics = recorder
	}
}

// WithMaxChainDepth overrides [DefaultMaxChainDepth]. Recipes implementing
// [ChainLimited] take precedence.
func WithMaxChainDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxChainDepth = depth
		}
	}
}

// NewEngine creates an engine. Without options it logs nowhere and records
// no telemetry.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:        nooptrace.NewTracerProvider().Tracer(tracerName),
		maxChainDepth: DefaultMaxChainDepth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run applies recipe and every follow-up it schedules to cu. Runs are
// atomic: on error the returned result carries the original unit and the
// error is also returned.
func (e *Engine) Run(ctx context.Context, recipe Recipe, cu *tree.CompilationUnit) (*Result, error) {
	if cu == nil {
		return nil, Invariant(nil, "nil compilation unit")
	}

	ctx, span := e.tracer.Start(ctx, "codemod.recipe.run", trace.WithAttributes(
		attribute.String("recipe", recipe.Name()),
		attribute.String("source", cu.SourcePath),
	))
	defer span.End()

	start := time.Now()
	result := &Result{SourcePath: cu.SourcePath, Before: cu, After: cu}

	after, applied, err := e.drain(ctx, recipe, cu)
	if err != nil {
		result.Err = err

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.ErrorContext(ctx, "recipe run failed",
			"recipe", recipe.Name(), "source", cu.SourcePath, "error", err)
	} else {
		result.After = after
		result.Applied = applied
		// Changed compares printed source, not node pointers.
		result.Changed = after != cu && printer.Print(after) != printer.Print(cu)
	}

	span.SetAttributes(attribute.Bool("changed", result.Changed))

	if e.metrics != nil {
		e.metrics.RecordRun(ctx, recipe.Name(), result.Changed, err, time.Since(start))
	}

	if result.Changed {
		e.logger.InfoContext(ctx, "unit changed",
			"recipe", recipe.Name(), "source", cu.SourcePath, "applied", applied)
	}

	return result, err
}

type workItem struct {
	recipe Recipe
	depth  int
}

// drain runs the FIFO work list seeded with recipe.
func (e *Engine) drain(ctx context.Context, recipe Recipe, cu *tree.CompilationUnit) (*tree.CompilationUnit, []string, error) {
	limit := e.maxChainDepth
	if limited, ok := recipe.(ChainLimited); ok && limited.MaxChainDepth() > 0 {
		limit = limited.MaxChainDepth()
	}

	exec := NewExecutionContext()
	current := cu
	work := []workItem{{recipe: recipe}}

	var applied []string

	for len(work) > 0 {
		if err := ctx.Err(); err != nil {
			return cu, nil, fmt.Errorf("run %s: %w", recipe.Name(), err)
		}

		item := work[0]
		work = work[1:]

		if item.depth > limit {
			return cu, nil, fmt.Errorf("%w: %s at depth %d (limit %d)", ErrChainTooDeep, item.recipe.Name(), item.depth, limit)
		}

		next, scheduled, err := e.apply(ctx, exec, item.recipe, current)
		if err != nil {
			return cu, nil, err
		}

		if next != current {
			applied = append(applied, item.recipe.Name())
			current = next
		}

		for _, followUp := range scheduled {
			work = append(work, workItem{recipe: followUp, depth: item.depth + 1})
		}

		if declared, ok := item.recipe.(FollowUps); ok {
			for _, followUp := range declared.FollowUps() {
				work = append(work, workItem{recipe: followUp, depth: item.depth + 1})
			}
		}
	}

	return current, applied, nil
}

// apply runs one pass of recipe over cu, honoring its applicability check.
func (e *Engine) apply(
	ctx context.Context, exec *ExecutionContext, recipe Recipe, cu *tree.CompilationUnit,
) (out *tree.CompilationUnit, scheduled []Recipe, err error) {
	if applicable, ok := recipe.(Applicable); ok && !applicable.Applicable(cu) {
		e.logger.DebugContext(ctx, "recipe not applicable", "recipe", recipe.Name(), "source", cu.SourcePath)

		return cu, nil, nil
	}

	if recipe.Visitor() == nil {
		return cu, nil, nil
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			out, scheduled = nil, nil
			err = fmt.Errorf("%w: %s: %v", ErrRecipePanic, recipe.Name(), recovered)
		}
	}()

	pass := newPass(ctx, recipe, cu, exec, e.logger)

	visited, err := pass.visit(cu)
	if err != nil {
		return nil, nil, tagRecipe(err, recipe)
	}

	rewritten, ok := visited.(*tree.CompilationUnit)
	if !ok || rewritten == nil {
		return nil, nil, tagRecipe(Invariant(cu, "compilation unit replaced or deleted"), recipe)
	}

	rewritten, scheduled, err = pass.queue.ApplyAll(rewritten)
	if err != nil {
		return nil, nil, tagRecipe(err, recipe)
	}

	e.logger.DebugContext(ctx, "pass finished",
		"recipe", recipe.Name(), "source", cu.SourcePath,
		"rewritten", rewritten != cu, "scheduled", len(scheduled))

	return rewritten, scheduled, nil
}

func tagRecipe(err error, recipe Recipe) error {
	var invariant *InvariantError
	if errors.As(err, &invariant) && invariant.Recipe == "" {
		invariant.Recipe = recipe.Name()
	}

	return err
}
