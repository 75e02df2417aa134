package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig invalid declaration file
var ErrInvalidConfig = errors.New("invalid config")

// LoadFile loads and parses a YAML declaration file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	file, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse parses YAML data into a File, unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var file File

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := file.validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Marshal serializes a File to YAML.
func Marshal(file *File) ([]byte, error) {
	return yaml.Marshal(file)
}

func (file *File) validate() error {
	if file.Settings.CacheSize < 0 {
		return fmt.Errorf("%w: settings.cacheSize must not be negative", ErrInvalidConfig)
	}
	if file.Settings.CacheTTL < 0 {
		return fmt.Errorf("%w: settings.cacheTTL must not be negative", ErrInvalidConfig)
	}

	for idx, ns := range file.Namespaces {
		if ns.Namespace == "" {
			return fmt.Errorf("%w: namespaces[%d] without namespace", ErrInvalidConfig, idx)
		}
	}
	for idx, rm := range file.ResultMaps {
		if rm.Type == "" {
			return fmt.Errorf("%w: resultMaps[%d] without type", ErrInvalidConfig, idx)
		}
	}
	return nil
}
