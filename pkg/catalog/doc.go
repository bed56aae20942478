// Package catalog loads the two static catalogs that drive llmhub: provider
// definitions (vendor, model, default parameters) and instruction sets
// (system prompt, parameter overrides).
//
// Catalogs are read from a [Source] on every request and never cached. A
// [Store] wraps a Source and applies the load-failure policy: by default a
// failed load is logged and treated as an empty catalog, so every lookup
// reports "not found". In strict mode the failure is returned as
// [ErrCatalogUnavailable] instead.
//
// Two sources are provided: [FileSource] reads JSON arrays from disk, and the
// postgres subpackage reads the same records from PostgreSQL.
package catalog
