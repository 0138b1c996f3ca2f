package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Validate Phase = iota
	FetchExisting
	CreatePresets
)

func (p Phase) String() string {
	switch p {
	case Validate:
		return "validate"
	case FetchExisting:
		return "fetch_existing"
	case CreatePresets:
		return "create_presets"
	default:
		return ""
	}
}

func validateUpdate(total, invalid int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Validate,
		Step:    total - invalid,
		Total:   total,
		Message: fmt.Sprintf("Validated %d presets (%d invalid)", total, invalid),
	}
}

func fetchExistingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchExisting,
		Step:    step,
		Total:   total,
		Message: "Fetching existing presets from backend...",
	}
}

func existingFoundUpdate(count, skipped int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchExisting,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Backend has %d presets, skipping %d", count, skipped),
	}
}

func presetCreatedUpdate(step, total int, res PresetImportResult) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Name)
	if res.SoundsDropped > 0 {
		msg += fmt.Sprintf(" (%d sounds not sent)", res.SoundsDropped)
	}
	return ProgressUpdate{
		Phase:   CreatePresets,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}

func presetFailedUpdate(step, total int, res PresetImportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePresets,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Name, res.Error),
		Data:    res,
	}
}
