package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vito "github.com/vito/progrock"
	"go.trai.ch/imprint/internal/adapters/telemetry/progrock"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/imprint/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func collectDebug(t *testing.T) (*mocks.MockLogger, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var lines []string
	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		lines = append(lines, msg)
	}).AnyTimes()
	return log, &lines
}

func TestRecorder_Record(t *testing.T) {
	log, _ := collectDebug(t)
	recorder := progrock.New(log)

	ctx, vertex := recorder.Record(context.Background(), "docker build")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("Step 1/3\n"))
	require.NoError(t, err)
	_, err = vertex.Stderr().Write([]byte("warning\n"))
	require.NoError(t, err)

	vertex.Complete(nil)
	require.NoError(t, recorder.Close())
}

func TestRecorder_Close_SummarizesSteps(t *testing.T) {
	log, lines := collectDebug(t)
	recorder := progrock.New(log)

	_, login := recorder.Record(context.Background(), "login registry.example.com")
	login.Complete(nil)

	_, build := recorder.Record(context.Background(), "build acme/app:abc1234")
	build.Cached()
	build.Complete(nil)

	_, push := recorder.Record(context.Background(), "docker push acme/app:abc1234")
	push.Complete(errors.New("denied"))

	_, pending := recorder.Record(context.Background(), "docker push acme/app:latest")
	_ = pending

	require.NoError(t, recorder.Close())

	require.Len(t, *lines, 4)
	assert.Contains(t, (*lines)[0], `step "login registry.example.com" done in`)
	assert.Equal(t, `step "build acme/app:abc1234" cached`, (*lines)[1])
	assert.Contains(t, (*lines)[2], `step "docker push acme/app:abc1234" failed after`)
	assert.Contains(t, (*lines)[2], ": denied")
	assert.Equal(t, `step "docker push acme/app:latest" did not complete`, (*lines)[3])
}

func TestSummary_Canceled(t *testing.T) {
	v := &vito.Vertex{Name: "docker build", Canceled: true}
	assert.Equal(t, `step "docker build" canceled after 0s`, progrock.Summary(v))
}

func TestSummary_ErrorWinsOverCached(t *testing.T) {
	msg := "exit status 1"
	v := &vito.Vertex{Name: "docker pull", Cached: true, Error: &msg}
	assert.Equal(t, `step "docker pull" failed after 0s: exit status 1`, progrock.Summary(v))
}
