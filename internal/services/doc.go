// Package services implements the HTTP client for the preset backend.
//
// # Transport
//
// [APIService] is the raw layer: it joins paths onto the configured base URL,
// stamps every request with an X-Request-ID, optionally waits on a
// [rate.Limiter], and returns the full [APIResponse] without judging the status.
//
// # Preset Contract
//
// [PresetService] speaks the backend's REST contract on top of [APIService]:
//   - GET    /api/presets
//   - PUT    /api/preset/{name}/modifyName   {newName}
//   - PUT    /api/sound/{name}/modifyName    {newName, presetName}
//   - POST   /api/preset/addPreset           {name, type, isFactoryPreset}
//   - DELETE /api/preset/{name}
//   - DELETE /api/sound/{name}               {presetName}
//
// Presets and sounds are addressed by name. Names in paths are percent-encoded.
// There is no endpoint for adding a sound to a preset, and sounds are not sent when
// a preset is created.
//
// # API Mappings
//
// The backend returns samples; [PresetService.ListPresets] maps [WirePreset] to
// [models.Preset] and [WireSample] to [models.Sound]. This is the only place the
// wire shape is translated.
//
// # Error Handling
//
// Transport failures and non-2xx responses are returned wrapped in
// [shared.ErrAPIRequest]. Callers decide whether to surface or swallow them.
package services
