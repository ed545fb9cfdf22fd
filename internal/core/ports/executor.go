// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/imprint/internal/core/domain"
)

// Executor defines the interface for running external commands.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs argv as a child process and blocks until it exits.
	//
	// Under the raising policy a mismatching exit code is returned as a *domain.CommandError.
	// With policy.NoRaise the result is returned with a nil error and the caller decides.
	Execute(ctx context.Context, argv []string, policy domain.ExecPolicy) (*domain.CommandResult, error)
}
