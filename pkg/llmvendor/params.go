package llmvendor

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/rhuss/llmhub/pkg/catalog"
)

// Sampling holds the call parameters adapters forward. Nil fields are
// omitted from the vendor request.
type Sampling struct {
	Temperature *float64
	MaxTokens   *int
	TopP        *float64
}

// ReadSampling extracts temperature, max_tokens and top_p from params.
// Values decoded from JSON arrive as float64; integral floats are accepted
// for max_tokens.
func ReadSampling(vendorName string, params catalog.Parameters) (Sampling, error) {
	var s Sampling
	var err error
	if s.Temperature, err = Float(params, "temperature"); err != nil {
		return s, invalidParam(vendorName, err)
	}
	if s.MaxTokens, err = Int(params, "max_tokens"); err != nil {
		return s, invalidParam(vendorName, err)
	}
	if s.TopP, err = Float(params, "top_p"); err != nil {
		return s, invalidParam(vendorName, err)
	}
	return s, nil
}

// Float returns params[key] as a float64, or nil when the key is absent.
func Float(params catalog.Parameters, key string) (*float64, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", key, err)
		}
		f = parsed
	default:
		return nil, fmt.Errorf("parameter %s: expected a number, got %T", key, v)
	}
	return &f, nil
}

// Int returns params[key] as an int, or nil when the key is absent.
func Int(params catalog.Parameters, key string) (*int, error) {
	f, err := Float(params, key)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) {
		return nil, fmt.Errorf("parameter %s: expected an integer, got %v", key, *f)
	}
	i := int(*f)
	return &i, nil
}

func invalidParam(vendorName string, err error) *CallError {
	return &CallError{Vendor: vendorName, Message: err.Error(), Err: err}
}
