// Package progrock provides the progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"time"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/imprint/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using progrock.
// Vertices are collected on a tape and summarized through the logger on Close.
type Recorder struct {
	tape   *progrock.Tape
	rec    *progrock.Recorder
	logger ports.Logger
}

// New creates a new Recorder backed by an in-memory tape.
func New(logger ports.Logger) *Recorder {
	tape := progrock.NewTape()
	return &Recorder{
		tape:   tape,
		rec:    progrock.NewRecorder(tape),
		logger: logger,
	}
}

// Record starts a vertex for a workflow step. Vertex digests derive from the step name,
// so recording the same step twice reuses its vertex.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := r.rec.Vertex(digest.FromString(name), name)
	vertex := &Vertex{vertex: v}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close completes the recording session and logs one debug line per recorded step.
func (r *Recorder) Close() error {
	r.rec.Complete()
	if err := r.rec.Close(); err != nil {
		return err
	}

	for _, v := range r.tape.Vertices() {
		r.logger.Debug(Summary(v))
	}
	return nil
}

// Summary describes the outcome of a recorded step on a single line.
func Summary(v *progrock.Vertex) string {
	switch {
	case v.GetError() != "":
		return fmt.Sprintf("step %q failed after %s: %s", v.GetName(), elapsed(v), v.GetError())
	case v.GetCanceled():
		return fmt.Sprintf("step %q canceled after %s", v.GetName(), elapsed(v))
	case v.GetCached():
		return fmt.Sprintf("step %q cached", v.GetName())
	case v.GetCompleted() == nil:
		return fmt.Sprintf("step %q did not complete", v.GetName())
	default:
		return fmt.Sprintf("step %q done in %s", v.GetName(), elapsed(v))
	}
}

func elapsed(v *progrock.Vertex) time.Duration {
	if v.GetStarted() == nil || v.GetCompleted() == nil {
		return 0
	}
	return v.GetCompleted().AsTime().Sub(v.GetStarted().AsTime()).Round(time.Millisecond)
}
