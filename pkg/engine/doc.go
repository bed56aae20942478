// Package engine resolves chat requests. The Engine implements
// transport.Hub: for each chat it loads both catalogs fresh, looks up the
// provider and instruction set by ID, merges call parameters, and dispatches
// to the vendor adapter registered for the provider's vendor tag. Nothing is
// cached between requests.
package engine
