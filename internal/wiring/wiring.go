// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/imprint/internal/adapters/config"
	_ "go.trai.ch/imprint/internal/adapters/env"
	_ "go.trai.ch/imprint/internal/adapters/fs"
	_ "go.trai.ch/imprint/internal/adapters/logger"
	_ "go.trai.ch/imprint/internal/adapters/shell"
	_ "go.trai.ch/imprint/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/imprint/internal/app"
	_ "go.trai.ch/imprint/internal/engine/orchestrator"
)
