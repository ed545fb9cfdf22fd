package ports

// Environment gives read access to ambient variables.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type Environment interface {
	LookupEnv(key string) (string, bool)
}
