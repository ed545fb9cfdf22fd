// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs argv once and classifies its exit code according to policy.
// Output is captured, streamed to the vertex carried by ctx and logged line by line at debug level.
func (e *Executor) Execute(
	ctx context.Context, argv []string, policy domain.ExecPolicy,
) (*domain.CommandResult, error) {
	if len(argv) == 0 {
		return nil, domain.ErrEmptyCommand
	}

	shown := domain.Redact(argv, policy.Secrets)
	e.logger.Debug("run_cmd: " + strings.Join(shown, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // user provided command

	var stdout, stderr lockedBuffer
	stdoutLog := &logWriter{logger: e.logger}
	stderrLog := &logWriter{logger: e.logger}

	outWriters := []io.Writer{&stdout, stdoutLog}
	errWriters := []io.Writer{stderrLog}
	if policy.CombineOutput {
		errWriters = append(errWriters, &stdout)
	} else {
		errWriters = append(errWriters, &stderr)
	}
	if v, ok := ports.VertexFromContext(ctx); ok {
		outWriters = append(outWriters, v.Stdout())
		errWriters = append(errWriters, v.Stderr())
	}

	cmd.Stdout = io.MultiWriter(outWriters...)
	cmd.Stderr = io.MultiWriter(errWriters...)

	runErr := cmd.Run()
	stdoutLog.Flush()
	stderrLog.Flush()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, zerr.With(zerr.Wrap(ctxErr, "command interrupted"), "command", argv[0])
	}

	result := &domain.CommandResult{
		Args:         shown,
		ExitCode:     exitCode(runErr),
		ExpectedCode: policy.ExpectedCode,
		Stdout:       stdout.String(),
		Stderr:       stderr.String(),
	}

	if runErr != nil && result.ExitCode == -1 && result.Stderr == "" {
		// The process never started, keep the reason for the error message.
		result.Stderr = runErr.Error()
	}

	if result.Succeeded() || policy.NoRaise {
		return result, nil
	}

	return result, domain.NewCommandError(result)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// lockedBuffer serializes writes from the stdout and stderr copy goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// logWriter forwards complete lines to the logger and buffers partial ones.
type logWriter struct {
	logger  ports.Logger
	pending []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.pending = append(w.pending, p...)
	for {
		i := bytes.IndexByte(w.pending, '\n')
		if i < 0 {
			break
		}
		w.emit(w.pending[:i])
		w.pending = w.pending[i+1:]
	}
	return len(p), nil
}

// Flush logs whatever is left after the last newline.
func (w *logWriter) Flush() {
	if len(w.pending) > 0 {
		w.emit(w.pending)
		w.pending = nil
	}
}

func (w *logWriter) emit(line []byte) {
	if s := strings.TrimRight(string(line), "\r"); s != "" {
		w.logger.Debug(s)
	}
}
