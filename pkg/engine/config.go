package engine

import "github.com/rhuss/llmhub/pkg/catalog"

// DefaultParameters are the base call parameters every request starts from.
var DefaultParameters = catalog.Parameters{
	"temperature": 0.7,
	"max_tokens":  1000,
}

// Config holds configuration for the engine.
type Config struct {
	// Defaults are layered over DefaultParameters; keys they omit keep
	// the built-in values.
	Defaults catalog.Parameters
}

func (c Config) defaults() catalog.Parameters {
	return DefaultParameters.Overlay(c.Defaults)
}
