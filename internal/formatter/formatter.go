// package formatter renders the preset list to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/presetx/internal/models"
	"github.com/desertthunder/presetx/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats in the order they are documented.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat resolves a user-supplied format name. "markdown" and "text" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// ExportToCSV converts presets to CSV with columns: Preset, Type, Factory, Sound, URL.
//
// Each sound is one record. A preset without sounds is written once with empty sound columns.
func ExportToCSV(presets []models.Preset) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Preset", "Type", "Factory", "Sound", "URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range presets {
		factory := strconv.FormatBool(p.Factory)
		if len(p.Sounds) == 0 {
			if err := writer.Write([]string{p.Name, p.Type, factory, "", ""}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
			continue
		}
		for _, s := range p.Sounds {
			if err := writer.Write([]string{p.Name, p.Type, factory, s.Name, s.URL}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts presets to a Markdown document with one section per preset.
func ExportToMarkdown(presets []models.Preset) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Presets\n\n")
	buf.WriteString(fmt.Sprintf("**Presets**: %d\n\n", len(presets)))

	for _, p := range presets {
		buf.WriteString(fmt.Sprintf("## %s\n\n", p.Name))
		buf.WriteString(fmt.Sprintf("**Type**: %s\n", p.Type))
		if p.Factory {
			buf.WriteString("**Factory**: yes\n")
		}
		buf.WriteString(fmt.Sprintf("**Sounds**: %d\n\n", len(p.Sounds)))

		for i, s := range p.Sounds {
			buf.WriteString(fmt.Sprintf("%d. [%s](%s)\n", i+1, s.Name, s.URL))
		}
		if len(p.Sounds) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts presets to plain text format
func ExportToText(presets []models.Preset) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Presets: %d\n\n", len(presets)))

	for i, p := range presets {
		buf.WriteString(fmt.Sprintf("%d. %s (%s, %s)\n", i+1, p.Name, p.Type, shared.Pluralize(len(p.Sounds), "sound")))
		for _, s := range p.Sounds {
			buf.WriteString(fmt.Sprintf("   - %s <%s>\n", s.Name, s.URL))
		}
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts presets to indented JSON.
func ExportToJSON(presets []models.Preset) ([]byte, error) {
	if presets == nil {
		presets = []models.Preset{}
	}
	return shared.MarshalJSON(presets, true)
}

// Export renders presets in the given format.
func Export(presets []models.Preset, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(presets)
	case FormatMarkdown:
		return ExportToMarkdown(presets)
	case FormatText:
		return ExportToText(presets)
	case FormatJSON:
		return ExportToJSON(presets)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// DefaultFilename is presets.{format}.
func DefaultFilename(format Format) string {
	return "presets." + string(format)
}

// WriteExport writes presets to path in the given format and returns the path written.
//
// Defaults to [DefaultFilename] when path is empty. Parent directories are created.
func WriteExport(presets []models.Preset, format Format, path string) (string, error) {
	if path == "" {
		path = DefaultFilename(format)
	}

	data, err := Export(presets, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// ReadJSONExport reads presets back from a file written with [FormatJSON].
func ReadJSONExport(path string) ([]models.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var presets []models.Preset
	if err := json.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("%w: %s is not a JSON preset list: %v", shared.ErrInvalidInput, path, err)
	}
	return models.ClonePresets(presets), nil
}
