package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
)

//go:embed example.yaml
var exampleYAML []byte

// ExampleYAML returns the annotated example configuration written by Init.
func ExampleYAML() []byte {
	return append([]byte(nil), exampleYAML...)
}

// ErrConfigExists is returned by Init when the target file exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("configuration file already exists (use --force to overwrite)")

// Init writes the example configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ErrConfigExists
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return os.WriteFile(configPath, exampleYAML, 0o600)
}
