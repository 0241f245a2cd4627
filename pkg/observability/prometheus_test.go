package observability_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemod/pkg/observability"
)

func TestPrometheusTextfileWritesRecipeMetrics(t *testing.T) {
	t.Parallel()

	textfile, err := observability.NewPrometheusTextfile()
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, textfile.Shutdown(context.Background())) })

	metrics, err := observability.NewRecipeMetrics(textfile.Meter())
	require.NoError(t, err)

	metrics.RecordRun(context.Background(), "spring.ConstructorInjection", true, nil, time.Millisecond)

	path := filepath.Join(t.TempDir(), "codemod.prom")
	require.NoError(t, textfile.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	body := string(data)
	assert.Regexp(t, `codemod[._]recipe[._]runs`, body)
	assert.Contains(t, body, `recipe="spring.ConstructorInjection"`)
	assert.Contains(t, body, "target_info")
}

func TestPrometheusTextfileIndependentRegistries(t *testing.T) {
	t.Parallel()

	first, err := observability.NewPrometheusTextfile()
	require.NoError(t, err)

	second, err := observability.NewPrometheusTextfile()
	require.NoError(t, err)

	_, err = observability.NewRecipeMetrics(first.Meter())
	require.NoError(t, err)

	_, err = observability.NewRecipeMetrics(second.Meter())
	require.NoError(t, err)

	require.NoError(t, first.Shutdown(context.Background()))
	require.NoError(t, second.Shutdown(context.Background()))
}

func TestPrometheusTextfileBadPath(t *testing.T) {
	t.Parallel()

	textfile, err := observability.NewPrometheusTextfile()
	require.NoError(t, err)

	err = textfile.WriteFile(filepath.Join(t.TempDir(), "missing", "codemod.prom"))
	require.Error(t, err)
}
