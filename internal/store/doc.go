// Package store holds the preset list for a running session.
//
// [Store] is the single source of truth between the backend and the UI. Reads are
// push-based: [Store.Observe] hands out a channel that immediately receives the
// current list and then every later publish. [Store.Current] is the synchronous
// snapshot.
//
// Writes go through the mutation methods. Each one resolves positional indices to
// names, calls the backend, and reloads the full list on success. The one
// exception is [Store.AddSoundToPreset], which only edits local state because the
// backend has no endpoint for it; the next [Store.Load] discards that edit.
//
// # Error Handling
//
// No method returns an error. Backend failures are logged and leave the list as it
// was, except for [Store.Load], which publishes an empty list. Out-of-range indices
// are ignored. Callers cannot tell a failed mutation from one whose reload brought
// no change, except through the logs.
//
// # Concurrency
//
// All methods are safe for concurrent use. Mutations are not serialized against
// each other: two overlapping reloads race and the last response to arrive wins.
package store
