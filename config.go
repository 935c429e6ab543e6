package workerpool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk form of Options. JSON documents are accepted
// as well, being valid YAML.
type fileConfig struct {
	Size         *int        `yaml:"size"`
	ThreadParams threadBlock `yaml:"thread_params"`
	SpawnRetry   RetryPolicy `yaml:"spawn_retry"`
}

type threadBlock struct {
	StackSize   int   `yaml:"stack_size"`
	PrintErrors *bool `yaml:"print_errors"`
	Affinity    []int `yaml:"affinity"`
}

// LoadOptions reads Options from a YAML or JSON file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("workerpool: read config: %w", err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes Options from YAML or JSON. Missing keys keep the
// values of DefaultOptions; unknown keys are rejected. The result is
// validated.
func ParseOptions(data []byte) (Options, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("workerpool: parse config: %w", err)
	}

	opts := DefaultOptions()
	if fc.Size != nil {
		opts.Size = *fc.Size
	}
	opts.Thread.StackSize = fc.ThreadParams.StackSize
	opts.Thread.Affinity = fc.ThreadParams.Affinity
	if fc.ThreadParams.PrintErrors != nil {
		opts.Thread.PrintErrors = *fc.ThreadParams.PrintErrors
	}
	opts.SpawnRetry = fc.SpawnRetry
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	opts.FillDefaults()
	return opts, nil
}
