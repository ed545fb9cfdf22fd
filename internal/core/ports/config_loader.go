package ports

import "go.trai.ch/imprint/internal/core/domain"

// ConfigLoader defines the interface for loading the plugin configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration once. The given dotenv files are applied first,
	// without overriding variables that are already set.
	Load(envFiles []string) (*domain.Config, error)
}
