package store

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
)

// Backend is the name-addressed preset API the store proxies.
//
// [services.PresetService] is the production implementation.
type Backend interface {
	ListPresets(ctx context.Context) ([]models.Preset, error)
	RenamePreset(ctx context.Context, name, newName string) error
	RenameSound(ctx context.Context, presetName, soundName, newName string) error
	AddPreset(ctx context.Context, preset models.Preset) error
	DeletePreset(ctx context.Context, name string) error
	DeleteSound(ctx context.Context, presetName, soundName string) error
}

// Store mirrors the backend's preset list and broadcasts every change.
type Store struct {
	backend     Backend
	logger      *log.Logger
	mu          sync.RWMutex
	presets     []models.Preset
	subscribers map[chan []models.Preset]struct{}
}

// New creates a Store with an empty list. Call [Store.Load] to fetch from the backend.
func New(backend Backend, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{
		backend:     backend,
		logger:      shared.WithLogger(logger, "component", "store"),
		presets:     []models.Preset{},
		subscribers: make(map[chan []models.Preset]struct{}),
	}
}

// Observe subscribes to the preset list.
//
// The channel receives the current list right away and then every later publish.
// It buffers one value: a subscriber that falls behind gets the newest list, not a backlog.
// The returned func unsubscribes and closes the channel.
func (s *Store) Observe() (<-chan []models.Preset, func()) {
	ch := make(chan []models.Preset, 1)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	ch <- models.ClonePresets(s.presets)
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subscribers[ch]; ok {
				delete(s.subscribers, ch)
				close(ch)
			}
		})
	}
}

// Current returns a snapshot of the latest published list.
func (s *Store) Current() []models.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ClonePresets(s.presets)
}

// Load fetches the full list from the backend and publishes it.
//
// On failure the error is logged and an empty list is published.
func (s *Store) Load(ctx context.Context) {
	presets, err := s.backend.ListPresets(ctx)
	if err != nil {
		s.logger.Error("failed to load presets", "error", err)
		presets = []models.Preset{}
	}

	s.mu.Lock()
	s.publish(presets)
	s.mu.Unlock()

	s.logger.Debug("presets loaded", "count", len(presets))
}

// RenamePreset renames the preset at index and reloads on success.
func (s *Store) RenamePreset(ctx context.Context, index int, newName string) {
	name, ok := s.presetName(index)
	if !ok {
		s.logger.Debug("rename preset ignored: index out of range", "index", index)
		return
	}

	if err := s.backend.RenamePreset(ctx, name, newName); err != nil {
		s.logger.Error("failed to rename preset", "preset", name, "new_name", newName, "error", err)
		return
	}
	s.Load(ctx)
}

// RenameSound renames a sound inside the preset at presetIndex and reloads on success.
func (s *Store) RenameSound(ctx context.Context, presetIndex, soundIndex int, newName string) {
	presetName, soundName, ok := s.soundName(presetIndex, soundIndex)
	if !ok {
		s.logger.Debug("rename sound ignored: index out of range", "preset_index", presetIndex, "sound_index", soundIndex)
		return
	}

	if err := s.backend.RenameSound(ctx, presetName, soundName, newName); err != nil {
		s.logger.Error("failed to rename sound", "preset", presetName, "sound", soundName, "new_name", newName, "error", err)
		return
	}
	s.Load(ctx)
}

// AddPreset creates a preset on the backend and reloads on success.
//
// Only name and type reach the backend; preset.Sounds are dropped there.
func (s *Store) AddPreset(ctx context.Context, preset models.Preset) {
	if err := s.backend.AddPreset(ctx, preset); err != nil {
		s.logger.Error("failed to add preset", "preset", preset.Name, "error", err)
		return
	}
	if len(preset.Sounds) > 0 {
		s.logger.Warn("sounds are not sent when creating a preset", "preset", preset.Name, "dropped", len(preset.Sounds))
	}
	s.Load(ctx)
}

// DeletePreset deletes the preset at index and reloads on success.
func (s *Store) DeletePreset(ctx context.Context, index int) {
	name, ok := s.presetName(index)
	if !ok {
		s.logger.Debug("delete preset ignored: index out of range", "index", index)
		return
	}

	if err := s.backend.DeletePreset(ctx, name); err != nil {
		s.logger.Error("failed to delete preset", "preset", name, "error", err)
		return
	}
	s.Load(ctx)
}

// AddSoundToPreset appends sound to the preset at presetIndex and publishes.
//
// The backend is not contacted. The sound exists only until the next [Store.Load].
func (s *Store) AddSoundToPreset(presetIndex int, sound models.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if presetIndex < 0 || presetIndex >= len(s.presets) {
		s.logger.Debug("add sound ignored: index out of range", "preset_index", presetIndex)
		return
	}

	next := models.ClonePresets(s.presets)
	next[presetIndex].Sounds = append(next[presetIndex].Sounds, sound)
	s.publish(next)

	s.logger.Info("sound added locally", "preset", next[presetIndex].Name, "sound", sound.Name)
}

// DeleteSoundFromPreset deletes a sound from the preset at presetIndex and reloads on success.
func (s *Store) DeleteSoundFromPreset(ctx context.Context, presetIndex, soundIndex int) {
	presetName, soundName, ok := s.soundName(presetIndex, soundIndex)
	if !ok {
		s.logger.Debug("delete sound ignored: index out of range", "preset_index", presetIndex, "sound_index", soundIndex)
		return
	}

	if err := s.backend.DeleteSound(ctx, presetName, soundName); err != nil {
		s.logger.Error("failed to delete sound", "preset", presetName, "sound", soundName, "error", err)
		return
	}
	s.Load(ctx)
}

func (s *Store) presetName(index int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.presets) {
		return "", false
	}
	return s.presets[index].Name, true
}

func (s *Store) soundName(presetIndex, soundIndex int) (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if presetIndex < 0 || presetIndex >= len(s.presets) {
		return "", "", false
	}
	p := s.presets[presetIndex]
	if soundIndex < 0 || soundIndex >= len(p.Sounds) {
		return "", "", false
	}
	return p.Name, p.Sounds[soundIndex].Name, true
}

// publish replaces the list and notifies subscribers. Callers hold the write lock.
func (s *Store) publish(presets []models.Preset) {
	s.presets = models.ClonePresets(presets)
	for ch := range s.subscribers {
		// Drop any undelivered value so the subscriber sees the newest list.
		select {
		case <-ch:
		default:
		}
		ch <- models.ClonePresets(s.presets)
	}
}
