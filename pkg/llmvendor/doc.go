// Package llmvendor defines the single-method capability every LLM vendor
// adapter implements, the registry the engine dispatches through, and the
// error types adapters return.
//
// Adapters receive fully merged parameters: defaults are applied by the
// engine, never by an adapter. Credentials are passed to adapter
// constructors; nothing in this package or its subpackages reads the
// process environment.
package llmvendor
