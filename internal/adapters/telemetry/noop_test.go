package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/imprint/internal/adapters/telemetry"
	"go.trai.ch/imprint/internal/core/ports"
)

func TestNoop_Record(t *testing.T) {
	tel := telemetry.NewNoop()

	ctx, v := tel.Record(context.Background(), "probe")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, got)

	n, err := v.Stdout().Write([]byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	v.Cached()
	v.Complete(errors.New("ignored"))
	assert.NoError(t, tel.Close())
}
