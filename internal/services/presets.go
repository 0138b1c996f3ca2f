package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
)

// WireSample is a sample as the backend returns it.
type WireSample struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// WirePreset is a preset as the backend returns it from GET /api/presets.
type WirePreset struct {
	Name             string       `json:"name"`
	Type             string       `json:"type"`
	IsFactoryPresets bool         `json:"isFactoryPresets,omitempty"`
	Samples          []WireSample `json:"samples"`
}

type renamePresetRequest struct {
	NewName string `json:"newName"`
}

type renameSoundRequest struct {
	NewName    string `json:"newName"`
	PresetName string `json:"presetName"`
}

type addPresetRequest struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	IsFactoryPreset bool   `json:"isFactoryPreset"`
}

type deleteSoundRequest struct {
	PresetName string `json:"presetName"`
}

// PresetService talks to the preset backend's REST contract.
type PresetService struct {
	api *APIService
}

// NewPresetService creates a PresetService on top of the given [APIService].
func NewPresetService(api *APIService) *PresetService {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &PresetService{api: api}
}

// Name returns the service name.
func (s *PresetService) Name() string {
	return "Preset Backend"
}

// ListPresets retrieves every preset with its sounds.
//
// Calls GET /api/presets.
func (s *PresetService) ListPresets(ctx context.Context) ([]models.Preset, error) {
	resp, err := s.api.Get(ctx, "/api/presets")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := checkStatus(resp, nil); err != nil {
		return nil, err
	}

	var wire []WirePreset
	if err := json.Unmarshal(resp.Body, &wire); err != nil {
		return nil, fmt.Errorf("%w: failed to decode presets: %v", shared.ErrAPIRequest, err)
	}

	return MapPresets(wire), nil
}

// RenamePreset renames the preset called name.
//
// Calls PUT /api/preset/{name}/modifyName.
func (s *PresetService) RenamePreset(ctx context.Context, name, newName string) error {
	path := "/api/preset/" + url.PathEscape(name) + "/modifyName"
	return s.send(ctx, http.MethodPut, path, renamePresetRequest{NewName: newName}, shared.ErrPresetNotFound)
}

// RenameSound renames a sound inside the preset called presetName.
//
// Calls PUT /api/sound/{name}/modifyName.
func (s *PresetService) RenameSound(ctx context.Context, presetName, soundName, newName string) error {
	body := renameSoundRequest{NewName: newName, PresetName: presetName}
	return s.send(ctx, http.MethodPut, "/api/sound/"+url.PathEscape(soundName)+"/modifyName", body, shared.ErrSoundNotFound)
}

// AddPreset creates a preset from its name and type.
//
// Calls POST /api/preset/addPreset. The backend has no way to receive sounds here,
// so preset.Sounds is not sent.
func (s *PresetService) AddPreset(ctx context.Context, preset models.Preset) error {
	body := addPresetRequest{Name: preset.Name, Type: preset.Type, IsFactoryPreset: false}
	return s.send(ctx, http.MethodPost, "/api/preset/addPreset", body, nil)
}

// DeletePreset removes the preset called name.
//
// Calls DELETE /api/preset/{name}.
func (s *PresetService) DeletePreset(ctx context.Context, name string) error {
	resp, err := s.api.Delete(ctx, "/api/preset/"+url.PathEscape(name), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return checkStatus(resp, shared.ErrPresetNotFound)
}

// DeleteSound removes a sound from the preset called presetName.
//
// Calls DELETE /api/sound/{name} with the owning preset in the body.
func (s *PresetService) DeleteSound(ctx context.Context, presetName, soundName string) error {
	body := deleteSoundRequest{PresetName: presetName}
	return s.send(ctx, http.MethodDelete, "/api/sound/"+url.PathEscape(soundName), body, shared.ErrSoundNotFound)
}

// send issues a JSON mutation. A 404 is also reported as notFound when it is set.
func (s *PresetService) send(ctx context.Context, method, path string, body any, notFound error) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := s.api.Do(ctx, method, path, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	return checkStatus(resp, notFound)
}

func checkStatus(resp *APIResponse, notFound error) error {
	err := statusError(resp)
	if err != nil && notFound != nil && resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", notFound, err)
	}
	return err
}

func statusError(resp *APIResponse) error {
	if resp.OK() {
		return nil
	}

	if resp.IsJSON {
		if m, ok := resp.JSONData.(map[string]any); ok {
			for _, key := range []string{"error", "message", "detail"} {
				if msg, ok := m[key].(string); ok && msg != "" {
					return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, msg)
				}
			}
		}
	}

	if len(resp.Body) > 0 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}
	return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
}

// MapPresets converts the backend representation into [models.Preset] values.
func MapPresets(wire []WirePreset) []models.Preset {
	presets := make([]models.Preset, len(wire))
	for i, wp := range wire {
		sounds := make([]models.Sound, len(wp.Samples))
		for j, sample := range wp.Samples {
			sounds[j] = models.Sound{Name: sample.Name, URL: sample.URL}
		}
		presets[i] = models.Preset{
			Name:    wp.Name,
			Type:    wp.Type,
			Factory: wp.IsFactoryPresets,
			Sounds:  sounds,
		}
	}
	return presets
}
