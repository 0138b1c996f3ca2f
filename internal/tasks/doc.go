// Package tasks runs bulk preset operations against the backend with real-time progress reporting.
//
// # Import
//
// [ImportEngine.Import] creates many presets at once, typically read back from a JSON export:
//
//  1. Validates every entry (name and type are required)
//  2. Fetches the backend's current list and skips names that already exist
//  3. Creates the remaining presets on a rate limited worker pool
//  4. Returns a per-preset result in input order
//
// The backend only accepts a name and a type when creating a preset, so sounds in
// the input are counted in [PresetImportResult.SoundsDropped] and otherwise ignored.
//
// # Progress Reporting
//
// Import reports each phase ([Validate], [FetchExisting], [CreatePresets]) as a [ProgressUpdate]
// with step counters, a display message and, for created or failed presets, the [PresetImportResult].
// Sends never block: when the channel is full or nobody reads it, the update is dropped.
package tasks
