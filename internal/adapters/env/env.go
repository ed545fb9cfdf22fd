// Package env provides access to ambient variables.
package env

import (
	"os"

	"go.trai.ch/imprint/internal/core/ports"
)

var (
	_ ports.Environment = OS{}
	_ ports.Environment = Map(nil)
)

// OS reads variables from the process environment.
type OS struct{}

// LookupEnv returns the value of key from the process environment.
func (OS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map is a fixed set of variables.
type Map map[string]string

// LookupEnv returns the value stored under key.
func (m Map) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}
