package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Default catalog locations, relative to the working directory.
const (
	DefaultProvidersFile    = "config/providers.json"
	DefaultInstructionsFile = "config/instructions.json"
)

// FileSource reads each catalog from a JSON file holding an array of records.
// The files are read on every call.
type FileSource struct {
	ProvidersPath    string
	InstructionsPath string
}

// NewFileSource returns a FileSource for the given paths. Empty paths fall
// back to the defaults.
func NewFileSource(providersPath, instructionsPath string) *FileSource {
	if providersPath == "" {
		providersPath = DefaultProvidersFile
	}
	if instructionsPath == "" {
		instructionsPath = DefaultInstructionsFile
	}
	return &FileSource{
		ProvidersPath:    providersPath,
		InstructionsPath: instructionsPath,
	}
}

// LoadProviders implements Source.
func (f *FileSource) LoadProviders(ctx context.Context) ([]Provider, error) {
	return readJSONArray[Provider](ctx, f.ProvidersPath)
}

// LoadInstructions implements Source.
func (f *FileSource) LoadInstructions(ctx context.Context) ([]Instruction, error) {
	return readJSONArray[Instruction](ctx, f.InstructionsPath)
}

func readJSONArray[T any](ctx context.Context, path string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return items, nil
}
