package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal    = "codemod.recipe.runs.total"
	metricChangedTotal = "codemod.recipe.changed.total"
	metricErrorsTotal  = "codemod.recipe.errors.total"
	metricRunDuration  = "codemod.recipe.duration.seconds"

	attrRecipe = "recipe"
	attrStatus = "status"

	statusUnchanged = "unchanged"
	statusChanged   = "changed"
	statusError     = "error"
)

// durationBucketBoundaries covers 100µs to 30s: a single unit usually takes
// well under a millisecond, chained runs over large units take longer.
var durationBucketBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30}

// RecipeMetrics holds the OTel instruments recorded once per recipe run. It
// satisfies rewrite.RunRecorder.
type RecipeMetrics struct {
	runsTotal    metric.Int64Counter
	changedTotal metric.Int64Counter
	errorsTotal  metric.Int64Counter
	runDuration  metric.Float64Histogram
}

// NewRecipeMetrics creates recipe metric instruments from the given meter.
func NewRecipeMetrics(mt metric.Meter) (*RecipeMetrics, error) {
	runsTotal, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Recipe runs over compilation units"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	changedTotal, err := mt.Int64Counter(metricChangedTotal,
		metric.WithDescription("Recipe runs that changed their unit"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricChangedTotal, err)
	}

	errorsTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Recipe runs that failed"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	runDuration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Recipe run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	return &RecipeMetrics{
		runsTotal:    runsTotal,
		changedTotal: changedTotal,
		errorsTotal:  errorsTotal,
		runDuration:  runDuration,
	}, nil
}

// RecordRun records one finished run of recipe.
func (rm *RecipeMetrics) RecordRun(ctx context.Context, recipe string, changed bool, err error, duration time.Duration) {
	status := statusUnchanged

	switch {
	case err != nil:
		status = statusError
	case changed:
		status = statusChanged
	}

	recipeAttr := metric.WithAttributes(attribute.String(attrRecipe, recipe))

	rm.runsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrRecipe, recipe),
		attribute.String(attrStatus, status),
	))
	rm.runDuration.Record(ctx, duration.Seconds(), recipeAttr)

	if changed {
		rm.changedTotal.Add(ctx, 1, recipeAttr)
	}

	if err != nil {
		rm.errorsTotal.Add(ctx, 1, recipeAttr)
	}
}
