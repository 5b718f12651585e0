package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/piwi3910/PlateCut/internal/engine"
	"github.com/piwi3910/PlateCut/internal/model"
)

func TestInit_StdoutExportsSolverSpans(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	var buf bytes.Buffer
	ctx := context.Background()

	shutdown, err := Init(ctx, Options{ServiceName: "platecut-test", ServiceVersion: "test", Stdout: &buf})
	require.NoError(t, err)

	settings := model.DefaultSettings()
	settings.Algorithm = model.AlgorithmBestFit
	_, err = engine.Solve(ctx, settings, []model.Piece{model.NewPiece("A", 10, 10)},
		engine.WithTracer(otel.Tracer("platecut/test")))
	require.NoError(t, err)

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, buf.String(), "Solver.Solve")
	assert.Contains(t, buf.String(), "solver.algorithm")
}

func TestInit_DiscardByDefault(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	shutdown, err := Init(context.Background(), Options{ServiceName: "platecut-test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
