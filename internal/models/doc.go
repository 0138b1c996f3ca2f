// Package models defines the client-side shapes of the preset domain.
//
//   - [Preset] : a named, typed, ordered collection of sounds
//   - [Sound] : a named reference to a sample URL
//
// These are the shapes the store and the UI work with. The backend's wire shape
// (samples, isFactoryPresets) lives in the services package and is translated
// only when the preset list is loaded.
package models
